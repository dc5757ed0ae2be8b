package dom

import "testing"

func TestLabels_ForAttributeAndWrapping(t *testing.T) {
	doc := mustParse(t, `
		<label for="u" id="l1">User</label>
		<label id="l2">Name <input id="u"></label>
		<label for="other">Unrelated</label>`)
	input := byID(doc, "u")
	labels := input.Labels()
	if len(labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(labels))
	}
	if labels[0].ID() != "l1" || labels[1].ID() != "l2" {
		t.Errorf("labels out of document order: %q, %q", labels[0].ID(), labels[1].ID())
	}
}

func TestLabels_OnlyLabelableTags(t *testing.T) {
	doc := mustParse(t, `<label id="l">Wrap <div id="d">x</div></label>`)
	if labels := byID(doc, "d").Labels(); labels != nil {
		t.Errorf("div should have no labels, got %d", len(labels))
	}
}

func TestLabels_ScopedToShadowTree(t *testing.T) {
	doc := mustParse(t, `
		<label for="u">Outside</label>
		<div><template shadowrootmode="open"><input id="u"></template></div>`)
	if labels := byID(doc, "u").Labels(); len(labels) != 0 {
		t.Errorf("label outside the shadow tree should not associate, got %d", len(labels))
	}
}

func TestInputType(t *testing.T) {
	tests := []struct {
		html string
		want string
	}{
		{`<input id="t">`, "text"},
		{`<input id="t" type="">`, "text"},
		{`<input id="t" type="CHECKBOX">`, "checkbox"},
		{`<input id="t" type=" radio ">`, "radio"},
	}
	for _, tt := range tests {
		doc := mustParse(t, tt.html)
		if got := byID(doc, "t").InputType(); got != tt.want {
			t.Errorf("InputType of %s = %q, want %q", tt.html, got, tt.want)
		}
	}
}

func TestValue(t *testing.T) {
	doc := mustParse(t, `<input id="i" value="5"><textarea id="a">body text</textarea>`)
	if got := byID(doc, "i").Value(); got != "5" {
		t.Errorf("input Value = %q, want %q", got, "5")
	}
	if got := byID(doc, "a").Value(); got != "body text" {
		t.Errorf("textarea Value = %q, want %q", got, "body text")
	}
}

func TestSelectOptions(t *testing.T) {
	doc := mustParse(t, `
		<select id="s">
			<option id="o1">One</option>
			<optgroup label="g"><option id="o2" selected>Two</option></optgroup>
		</select>`)
	sel := byID(doc, "s")
	if got := len(sel.SelectOptions()); got != 2 {
		t.Fatalf("SelectOptions = %d options, want 2", got)
	}
	selected := sel.SelectedOptions()
	if len(selected) != 1 || selected[0].ID() != "o2" {
		t.Errorf("SelectedOptions = %v, want [o2]", selected)
	}
	if !byID(doc, "o2").OptionSelected() {
		t.Error("OptionSelected(o2) = false, want true")
	}
}

func TestSelectSize(t *testing.T) {
	tests := []struct {
		size string
		want int
	}{
		{"4", 4},
		{"", 0},
		{"abc", 0},
		{"2x", 0},
		{" 3 ", 3},
	}
	for _, tt := range tests {
		doc := mustParse(t, `<select id="s" size="`+tt.size+`"></select>`)
		if got := byID(doc, "s").SelectSize(); got != tt.want {
			t.Errorf("SelectSize(%q) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestIndeterminateAndDetailsOpen(t *testing.T) {
	doc := mustParse(t, `
		<input id="i" type="checkbox" indeterminate>
		<details id="d" open><summary>s</summary></details>
		<details id="c"><summary>s</summary></details>`)
	if !byID(doc, "i").Indeterminate() {
		t.Error("Indeterminate = false, want true")
	}
	if !byID(doc, "d").DetailsOpen() {
		t.Error("DetailsOpen(open) = false, want true")
	}
	if byID(doc, "c").DetailsOpen() {
		t.Error("DetailsOpen(closed) = true, want false")
	}
}
