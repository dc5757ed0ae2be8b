package dom

import "strings"

// labelableTags are form-associated tags that can have associated
// <label> elements.
var labelableTags = map[string]bool{
	"input": true, "textarea": true, "select": true, "button": true,
	"output": true, "meter": true, "progress": true,
}

// Labels returns the <label> elements associated with a form control, in
// document order: labels whose for attribute references the control's id
// within the same scope, and ancestor labels wrapping the control.
func (n *Node) Labels() []*Node {
	if !labelableTags[n.tag] {
		return nil
	}
	var labels []*Node
	id := n.ID()
	collectLabels(n.Scope().container, n, id, &labels)
	return labels
}

func collectLabels(root, control *Node, id string, out *[]*Node) {
	for _, c := range root.children {
		if !c.IsElement() {
			continue
		}
		if c.tag == "label" {
			if forID := c.attrs["for"]; forID != "" {
				if id != "" && forID == id {
					*out = append(*out, c)
				}
			} else if c.Contains(control) {
				*out = append(*out, c)
			}
		}
		collectLabels(c, control, id, out)
	}
}

// InputType returns the lowercase type attribute of an input element.
// A missing or blank type behaves as "text".
func (n *Node) InputType() string {
	t := strings.ToLower(strings.TrimSpace(n.attrs["type"]))
	if n.tag == "input" && t == "" {
		return "text"
	}
	return t
}

// Value returns the control's current value: the value attribute for
// inputs, the text content for textareas.
func (n *Node) Value() string {
	if n.tag == "textarea" {
		return n.TextContent()
	}
	return n.attrs["value"]
}

// OptionSelected reports whether an <option> carries the selected flag.
func (n *Node) OptionSelected() bool {
	return n.tag == "option" && n.HasAttr("selected")
}

// SelectOptions returns all <option> descendants of a <select>, in
// document order.
func (n *Node) SelectOptions() []*Node {
	var opts []*Node
	collectOptions(n, &opts)
	return opts
}

// SelectedOptions returns the <option> descendants carrying the selected
// flag. Defaulting rules (first option when none selected) belong to the
// name computation, not the oracle.
func (n *Node) SelectedOptions() []*Node {
	var sel []*Node
	for _, opt := range n.SelectOptions() {
		if opt.HasAttr("selected") {
			sel = append(sel, opt)
		}
	}
	return sel
}

func collectOptions(n *Node, out *[]*Node) {
	for _, c := range n.children {
		if !c.IsElement() {
			continue
		}
		if c.tag == "option" {
			*out = append(*out, c)
		}
		collectOptions(c, out)
	}
}

// SelectSize returns the parsed size attribute of a <select>, 0 when
// absent or unparseable.
func (n *Node) SelectSize() int {
	size := 0
	for _, r := range strings.TrimSpace(n.attrs["size"]) {
		if r < '0' || r > '9' {
			return 0
		}
		size = size*10 + int(r-'0')
		if size > 1<<20 {
			break
		}
	}
	return size
}

// Indeterminate reports the static indeterminate marker on an input. In
// live documents this is a DOM property; static markup conveys it with an
// attribute.
func (n *Node) Indeterminate() bool {
	return n.tag == "input" && n.HasAttr("indeterminate")
}

// DetailsOpen reports whether a <details> element is open.
func (n *Node) DetailsOpen() bool {
	return n.tag == "details" && n.HasAttr("open")
}
