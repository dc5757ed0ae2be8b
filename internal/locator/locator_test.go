package locator

import (
	"testing"

	"github.com/ariagrep/ariagrep/internal/aria"
	"github.com/ariagrep/ariagrep/internal/dom"
)

const samplePage = `
<html><body>
	<h1 id="title">Dashboard</h1>
	<button id="save">Save changes</button>
	<button id="draft" hidden>Save draft</button>
	<a href="/docs" id="docs">Documentation</a>
	<label for="agree">I agree</label>
	<input type="checkbox" id="agree" checked>
	<button id="off" disabled>Disabled action</button>
</body></html>`

func findAll(t *testing.T, q Query, limit int) []Match {
	t.Helper()
	doc, err := dom.ParseString(samplePage)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	p := aria.NewPass()
	p.Open()
	defer p.Close()
	return Find(p, doc, q, limit)
}

func ids(matches []Match) []string {
	var out []string
	for _, m := range matches {
		out = append(out, m.Node.ID())
	}
	return out
}

func TestFind_ByRole(t *testing.T) {
	matches := findAll(t, Query{Role: "button"}, 0)
	got := ids(matches)
	want := []string{"save", "off"}
	if len(got) != len(want) {
		t.Fatalf("matched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matched %v, want %v", got, want)
		}
	}
}

func TestFind_HiddenExcludedByDefault(t *testing.T) {
	if matches := findAll(t, Query{Role: "button", Name: "Save draft"}, 0); len(matches) != 0 {
		t.Errorf("hidden button matched: %v", ids(matches))
	}
	matches := findAll(t, Query{Role: "button", Name: "Save draft", IncludeHidden: true}, 0)
	if len(matches) != 1 || matches[0].Node.ID() != "draft" {
		t.Errorf("include-hidden matched %v, want [draft]", ids(matches))
	}
}

func TestFind_NameMatching(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"substring", Query{Name: "save"}, []string{"save"}},
		{"case insensitive", Query{Name: "SAVE CHANGES"}, []string{"save"}},
		{"exact match", Query{Name: "Save changes", Exact: true}, []string{"save"}},
		{"exact is case sensitive", Query{Name: "save changes", Exact: true}, nil},
		{"role and name", Query{Role: "link", Name: "doc"}, []string{"docs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(findAll(t, tt.query, 0))
			if len(got) != len(tt.want) {
				t.Fatalf("matched %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("matched %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFind_Limit(t *testing.T) {
	matches := findAll(t, Query{Role: "button"}, 1)
	if len(matches) != 1 {
		t.Fatalf("limit ignored: matched %d elements", len(matches))
	}
	if matches[0].Node.ID() != "save" {
		t.Errorf("limit should keep document order, got %q", matches[0].Node.ID())
	}
}

func TestFind_StateConstraints(t *testing.T) {
	yes, no := true, false
	level1 := 1

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"checked", Query{Role: "checkbox", Checked: &yes}, []string{"agree"}},
		{"unchecked excludes", Query{Role: "checkbox", Checked: &no}, nil},
		{"disabled", Query{Role: "button", Disabled: &yes}, []string{"off"}},
		{"enabled", Query{Role: "button", Disabled: &no}, []string{"save"}},
		{"level", Query{Role: "heading", Level: &level1}, []string{"title"}},
		{"expanded requires expandable", Query{Role: "button", Expanded: &no}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(findAll(t, tt.query, 0))
			if len(got) != len(tt.want) {
				t.Fatalf("matched %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("matched %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFind_MatchCarriesRoleAndName(t *testing.T) {
	matches := findAll(t, Query{Role: "link"}, 0)
	if len(matches) != 1 {
		t.Fatalf("matched %d links, want 1", len(matches))
	}
	if matches[0].Role != "link" || matches[0].Name != "Documentation" {
		t.Errorf("match = {%q %q}, want {link Documentation}", matches[0].Role, matches[0].Name)
	}
}

func TestFind_ShadowContent(t *testing.T) {
	doc, err := dom.ParseString(`
		<div><template shadowrootmode="open"><button id="t"><slot></slot></button></template>Click me</div>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	p := aria.NewPass()
	p.Open()
	defer p.Close()
	matches := Find(p, doc, Query{Role: "button", Name: "Click me"}, 0)
	if len(matches) != 1 || matches[0].Node.ID() != "t" {
		t.Errorf("shadow button not found: %v", matches)
	}
}
