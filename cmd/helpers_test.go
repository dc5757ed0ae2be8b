package cmd

import (
	"testing"

	"github.com/ariagrep/ariagrep/internal/aria"
	"github.com/ariagrep/ariagrep/internal/dom"
	"github.com/ariagrep/ariagrep/internal/locator"
)

func parseDoc(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestSplitRoles(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"button", []string{"button"}},
		{"button,link", []string{"button", "link"}},
		{" button , link ,,", []string{"button", "link"}},
	}
	for _, tt := range tests {
		got := splitRoles(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitRoles(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for _, r := range tt.want {
			if !got[r] {
				t.Errorf("splitRoles(%q) missing %q", tt.in, r)
			}
		}
	}
}

func TestDescribeElement_States(t *testing.T) {
	doc := parseDoc(t, `
		<label for="c">I agree</label>
		<input type="checkbox" id="c" checked>
		<h2 id="h">Section</h2>
		<button id="b" aria-pressed="true" aria-expanded="false" disabled>Toggle</button>
		<input type="checkbox" id="m" indeterminate>`)

	p := aria.NewPass()
	p.Open()
	defer p.Close()

	find := func(id string) *dom.Node {
		var n *dom.Node
		doc.Walk(func(c *dom.Node) bool {
			if c.ID() == id {
				n = c
				return false
			}
			return true
		})
		if n == nil {
			t.Fatalf("no element with id %q", id)
		}
		return n
	}

	chk := find("c")
	info := describeElement(p, chk, p.Role(chk), p.AccessibleName(chk, false))
	if info.Role != "checkbox" || info.Name != "I agree" || info.Tag != "input" {
		t.Errorf("checkbox info = %+v", info)
	}
	if info.Checked != "true" {
		t.Errorf("Checked = %q, want %q", info.Checked, "true")
	}

	h := find("h")
	info = describeElement(p, h, p.Role(h), p.AccessibleName(h, false))
	if info.Level != 2 {
		t.Errorf("heading Level = %d, want 2", info.Level)
	}
	if info.Checked != "" {
		t.Errorf("heading Checked = %q, want empty (not applicable omitted)", info.Checked)
	}

	b := find("b")
	info = describeElement(p, b, p.Role(b), p.AccessibleName(b, false))
	if info.Pressed != "true" || info.Expanded != "false" || !info.Disabled {
		t.Errorf("button info = %+v", info)
	}

	m := find("m")
	info = describeElement(p, m, p.Role(m), p.AccessibleName(m, false))
	if info.Checked != "mixed" {
		t.Errorf("indeterminate Checked = %q, want %q", info.Checked, "mixed")
	}
}

func TestRunQuery(t *testing.T) {
	doc := parseDoc(t, `
		<button id="a">Save</button>
		<button id="b" hidden>Save draft</button>`)

	infos := runQuery(doc, locator.Query{Role: "button"}, 0)
	if len(infos) != 1 {
		t.Fatalf("got %d matches, want 1", len(infos))
	}
	if infos[0].ID != "a" || infos[0].Name != "Save" {
		t.Errorf("match = %+v", infos[0])
	}

	infos = runQuery(doc, locator.Query{Role: "button", IncludeHidden: true}, 0)
	if len(infos) != 2 {
		t.Errorf("include-hidden got %d matches, want 2", len(infos))
	}
}

func TestCollectTree(t *testing.T) {
	doc := parseDoc(t, `
		<main>
			<h1>Title</h1>
			<button>Go</button>
			<button hidden>Ghost</button>
		</main>`)

	p := aria.NewPass()
	p.Open()
	defer p.Close()

	var infos []elementInfo
	collectTree(p, doc.DocumentElement(), false, nil, 0, 0, 0, &infos)

	var roles []string
	for _, info := range infos {
		roles = append(roles, info.Role)
	}
	// document(html), main, heading, button; the hidden button is skipped.
	want := []string{"document", "main", "heading", "button"}
	if len(roles) != len(want) {
		t.Fatalf("collected %v, want %v", roles, want)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Fatalf("collected %v, want %v", roles, want)
		}
	}

	// Role filter keeps only requested roles.
	infos = nil
	collectTree(p, doc.DocumentElement(), false, map[string]bool{"button": true}, 0, 0, 0, &infos)
	if len(infos) != 1 || infos[0].Role != "button" {
		t.Errorf("role-filtered collect = %+v", infos)
	}

	// max-elements caps the output.
	infos = nil
	collectTree(p, doc.DocumentElement(), false, nil, 0, 2, 0, &infos)
	if len(infos) != 2 {
		t.Errorf("max-elements got %d, want 2", len(infos))
	}
}
