package aria

import (
	"strings"

	"github.com/ariagrep/ariagrep/internal/dom"
)

// embedded tracks, for one kind of reference, whether the current node is
// the referenced element itself or content nested inside it. Naming rules
// differ at the two levels.
type embedded int

const (
	embedNone embedded = iota
	embedSelf
	embedDescendant
)

// nameOptions is the traversal context threaded through the recursion.
// It is copied at every descent; sibling branches never observe each
// other's flags. The visited set is shared across one top-level
// computation and is the cycle guard.
type nameOptions struct {
	includeHidden bool
	visited       map[*dom.Node]bool

	labelledBy      embedded
	label           embedded
	target          embedded
	textAlternative bool
}

// child returns the context for descending one level: every "self" flag
// becomes "descendant".
func (o nameOptions) child() nameOptions {
	c := o
	if c.labelledBy == embedSelf {
		c.labelledBy = embedDescendant
	}
	if c.label == embedSelf {
		c.label = embedDescendant
	}
	if c.target == embedSelf {
		c.target = embedDescendant
	}
	return c
}

// prohibitedNameRoles never receive an accessible name; they are purely
// presentational or typographic.
var prohibitedNameRoles = map[string]bool{
	"caption": true, "code": true, "definition": true, "deletion": true,
	"emphasis": true, "generic": true, "insertion": true, "mark": true,
	"paragraph": true, "presentation": true, "strong": true,
	"subscript": true, "suggestion": true, "superscript": true,
	"term": true, "none": true,
}

// rangeRoles expose their value as the embedded-control name.
var rangeRoles = map[string]bool{
	"progressbar": true, "scrollbar": true, "slider": true,
	"spinbutton": true, "meter": true,
}

// AccessibleName computes the normalized accessible name of the node.
// When includeHidden is true, hidden nodes contribute to the name as if
// they were rendered.
func (p *Pass) AccessibleName(n *dom.Node, includeHidden bool) string {
	if n == nil || !n.IsElement() {
		return ""
	}
	key := nameKey{node: n, includeHidden: includeHidden}
	if p.names != nil {
		if name, ok := p.names[key]; ok {
			return name
		}
	}
	name := ""
	if !prohibitedNameRoles[p.Role(n)] {
		name = normalize(p.textAlternative(n, nameOptions{
			includeHidden: includeHidden,
			visited:       map[*dom.Node]bool{},
			target:        embedSelf,
		}))
	}
	if p.names != nil {
		p.names[key] = name
	}
	return name
}

// textAlternative is the recursive worker. Rules run in strict priority
// order; the first one producing a usable string wins.
func (p *Pass) textAlternative(n *dom.Node, o nameOptions) string {
	// Cycle guard. Must run before any other work on this node.
	if o.visited[n] {
		return ""
	}
	childOpts := o.child()

	// Hidden nodes contribute nothing, except when the caller asked for
	// hidden content or the node is the direct labelledby target.
	if !o.includeHidden && o.labelledBy != embedSelf && p.IsHiddenForAria(n) {
		o.visited[n] = true
		return ""
	}

	labelledBy, hasLabelledBy := labelledByElements(n)

	// aria-labelledby resolution happens only at the top of the
	// recursion, never inside another labelledby expansion.
	if o.labelledBy == embedNone && hasLabelledBy {
		var parts []string
		for _, ref := range labelledBy {
			refOpts := o
			refOpts.labelledBy = embedSelf
			refOpts.label = embedNone
			refOpts.target = embedNone
			refOpts.textAlternative = false
			parts = append(parts, p.textAlternative(ref, refOpts))
		}
		if name := strings.Join(parts, " "); !isBlank(name) {
			return name
		}
	}

	role := p.Role(n)
	tag := n.Tag()

	// Embedded control: inside a label or labelledby expansion, a form
	// control exposes its raw value rather than its aggregated content.
	// Skipped when the node is itself the label or the labelledby target.
	if o.label != embedNone || o.labelledBy == embedDescendant {
		if !isOwnLabel(n) && !containsNode(labelledBy, n) {
			if value, handled := p.embeddedControlValue(n, role, tag, o, childOpts); handled {
				return value
			}
		}
	}

	// Explicit aria-label wins outright when non-blank.
	if label := n.Attr("aria-label"); !isBlank(label) {
		o.visited[n] = true
		return label
	}

	if role != "presentation" && role != "none" {
		if name, handled := p.nativeSemanticsName(n, tag, o, childOpts, hasLabelledBy); handled {
			return name
		}
	}

	// Name from content.
	if allowsNameFromContent(role, o.target == embedDescendant) ||
		o.labelledBy != embedNone || o.label != embedNone || o.textAlternative {
		o.visited[n] = true
		accumulated := p.accumulatedText(n, childOpts)
		if !isBlank(accumulated) {
			return accumulated
		}
	}

	// Title fallback. Iframes get it even with a presentation role.
	if (role != "presentation" && role != "none") || tag == "iframe" {
		o.visited[n] = true
		if title := n.Attr("title"); !isBlank(title) {
			return title
		}
	}

	return ""
}

// embeddedControlValue implements the role-specific raw value extraction
// for controls encountered while expanding a label or labelledby
// reference. The second return value reports whether the role matched.
func (p *Pass) embeddedControlValue(n *dom.Node, role, tag string, o, childOpts nameOptions) (string, bool) {
	switch {
	case role == "textbox":
		o.visited[n] = true
		if tag == "input" || tag == "textarea" {
			return n.Value(), true
		}
		return n.TextContent(), true

	case role == "combobox" || role == "listbox":
		o.visited[n] = true
		var selected []*dom.Node
		if tag == "select" {
			selected = n.SelectedOptions()
			// A native select with options but no selection exposes the
			// first option.
			if len(selected) == 0 {
				if opts := n.SelectOptions(); len(opts) > 0 {
					selected = opts[:1]
				}
			}
		} else {
			listbox := n
			if role == "combobox" {
				listbox = p.findOwnedByRole(n, "listbox")
			}
			if listbox != nil {
				for _, el := range descendantsAndOwned(listbox) {
					if el.Attr("aria-selected") == "true" && p.Role(el) == "option" {
						selected = append(selected, el)
					}
				}
			}
		}
		if len(selected) == 0 && tag == "input" {
			// The accname spec does not fall back to the value here; real
			// engines do for input-backed comboboxes.
			return n.Value(), true
		}
		var parts []string
		for _, opt := range selected {
			parts = append(parts, p.textAlternative(opt, childOpts))
		}
		return strings.Join(parts, " "), true

	case rangeRoles[role]:
		o.visited[n] = true
		if n.HasAttr("aria-valuetext") {
			return n.Attr("aria-valuetext"), true
		}
		if n.HasAttr("aria-valuenow") {
			return n.Attr("aria-valuenow"), true
		}
		return n.Attr("value"), true

	case role == "menu":
		o.visited[n] = true
		return "", true
	}
	return "", false
}

// nativeSemanticsName implements the ordered tag-specific rules. The
// second return value reports whether a rule claimed the node (even with
// an empty result).
func (p *Pass) nativeSemanticsName(n *dom.Node, tag string, o, childOpts nameOptions, hasLabelledBy bool) (string, bool) {
	switch tag {
	case "input":
		t := n.InputType()
		switch t {
		case "button", "submit", "reset":
			o.visited[n] = true
			if value := n.Attr("value"); !isBlank(value) {
				return value, true
			}
			if t == "submit" {
				return "Submit", true
			}
			if t == "reset" {
				return "Reset", true
			}
			return n.Attr("title"), true
		case "image":
			o.visited[n] = true
			// The accname spec skips associated labels for image inputs;
			// real engines consult them.
			if labels := n.Labels(); len(labels) > 0 && o.labelledBy == embedNone {
				return p.namesFromLabels(labels, o), true
			}
			if alt := n.Attr("alt"); !isBlank(alt) {
				return alt, true
			}
			if title := n.Attr("title"); !isBlank(title) {
				return title, true
			}
			return "Submit", true
		}
		if !hasLabelledBy {
			return p.labeledControlName(n, tag, t, o), true
		}

	case "button":
		if !hasLabelledBy {
			o.visited[n] = true
			// Real engines consult associated labels for buttons too.
			if labels := n.Labels(); len(labels) > 0 {
				return p.namesFromLabels(labels, o), true
			}
			// Fall through to content aggregation.
			return "", false
		}

	case "output":
		if !hasLabelledBy {
			o.visited[n] = true
			if labels := n.Labels(); len(labels) > 0 {
				return p.namesFromLabels(labels, o), true
			}
			return n.Attr("title"), true
		}

	case "textarea", "select":
		if !hasLabelledBy {
			return p.labeledControlName(n, tag, "", o), true
		}

	case "fieldset":
		if !hasLabelledBy {
			o.visited[n] = true
			if legend := firstChildTag(n, "legend"); legend != nil {
				expanded := childOpts
				expanded.textAlternative = true
				return p.textAlternative(legend, expanded), true
			}
			return n.Attr("title"), true
		}

	case "figure":
		if !hasLabelledBy {
			o.visited[n] = true
			if caption := firstChildTag(n, "figcaption"); caption != nil {
				expanded := childOpts
				expanded.textAlternative = true
				return p.textAlternative(caption, expanded), true
			}
			return n.Attr("title"), true
		}

	case "img":
		o.visited[n] = true
		if alt := n.Attr("alt"); !isBlank(alt) {
			return alt, true
		}
		return n.Attr("title"), true

	case "table":
		o.visited[n] = true
		if caption := firstChildTag(n, "caption"); caption != nil {
			expanded := childOpts
			expanded.textAlternative = true
			if name := p.textAlternative(caption, expanded); !isBlank(name) {
				return name, true
			}
		}
		// The accname spec ignores summary; real engines expose it.
		if summary := n.Attr("summary"); summary != "" {
			return summary, true
		}
		// The title attribute is intentionally not consulted for tables.
		return "", true

	case "area":
		o.visited[n] = true
		if alt := n.Attr("alt"); !isBlank(alt) {
			return alt, true
		}
		return n.Attr("title"), true
	}

	if tag == "svg" || insideSVG(n) {
		o.visited[n] = true
		if title := firstChildTag(n, "title"); title != nil {
			expanded := childOpts
			expanded.textAlternative = true
			// svg title elements never render; their text still names the
			// graphic.
			expanded.includeHidden = true
			return p.textAlternative(title, expanded), true
		}
	}
	if tag == "a" && insideSVG(n) {
		if title := n.Attr("xlink:title"); !isBlank(title) {
			o.visited[n] = true
			return title, true
		}
	}
	return "", false
}

// labeledControlName names text-entry fields and selects: associated
// labels first, then placeholder, except that a title beats the
// placeholder when both are present.
func (p *Pass) labeledControlName(n *dom.Node, tag, inputType string, o nameOptions) string {
	o.visited[n] = true
	if labels := n.Labels(); len(labels) > 0 {
		return p.namesFromLabels(labels, o)
	}
	usePlaceholder := tag == "textarea" ||
		(tag == "input" && placeholderInputTypes[inputType])
	title := n.Attr("title")
	if !usePlaceholder || title != "" {
		return title
	}
	return n.Attr("placeholder")
}

var placeholderInputTypes = map[string]bool{
	"text": true, "password": true, "search": true, "tel": true,
	"email": true, "url": true,
}

// namesFromLabels expands each associated label with the embedding flag
// "is the label itself", joining non-empty results with single spaces.
func (p *Pass) namesFromLabels(labels []*dom.Node, o nameOptions) string {
	var parts []string
	for _, label := range labels {
		opts := o
		opts.label = embedSelf
		opts.labelledBy = embedNone
		opts.target = embedNone
		opts.textAlternative = false
		if name := p.textAlternative(label, opts); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// nameFromContentRoles always aggregate their descendant content.
var nameFromContentRoles = map[string]bool{
	"button": true, "cell": true, "checkbox": true, "columnheader": true,
	"gridcell": true, "heading": true, "link": true, "menuitem": true,
	"menuitemcheckbox": true, "menuitemradio": true, "option": true,
	"radio": true, "row": true, "rowheader": true, "switch": true,
	"tab": true, "tooltip": true, "treeitem": true,
}

// targetDescendantContentRoles additionally aggregate content, but only
// while naming the original query target or its descendants.
var targetDescendantContentRoles = map[string]bool{
	"": true, "caption": true, "code": true, "contentinfo": true,
	"definition": true, "deletion": true, "emphasis": true, "generic": true,
	"insertion": true, "list": true, "listitem": true, "mark": true,
	"none": true, "paragraph": true, "presentation": true, "region": true,
	"row": true, "rowgroup": true, "section": true, "strong": true,
	"subscript": true, "superscript": true, "table": true, "term": true,
	"time": true,
}

func allowsNameFromContent(role string, targetDescendant bool) bool {
	if nameFromContentRoles[role] {
		return true
	}
	return targetDescendant && targetDescendantContentRoles[role]
}

// accumulatedText concatenates, in document order: the ::before pseudo
// content, each child (slot-assigned nodes replace a slot's own children;
// shadow children are included when present; aria-owns targets are
// appended), and the ::after pseudo content. Non-inline children are
// wrapped in single spaces.
func (p *Pass) accumulatedText(n *dom.Node, o nameOptions) string {
	var tokens []string
	visit := func(c *dom.Node, skipSlotted bool) {
		if skipSlotted && c.AssignedSlot() != nil {
			return
		}
		if c.IsElement() {
			token := p.textAlternative(c, o)
			if c.Style().Display != "inline" || c.Tag() == "br" {
				token = " " + token + " "
			}
			tokens = append(tokens, token)
		} else if c.IsText() {
			tokens = append(tokens, c.Text())
		}
	}

	tokens = append(tokens, pseudoToken(n, "before"))
	if assigned := n.AssignedNodes(); n.Tag() == "slot" && len(assigned) > 0 {
		for _, c := range assigned {
			visit(c, false)
		}
	} else {
		for _, c := range n.Children() {
			visit(c, true)
		}
		if sr := n.ShadowRoot(); sr != nil {
			for _, c := range sr.Children() {
				visit(c, true)
			}
		}
		for _, owned := range idRefs(n, n.Attr("aria-owns")) {
			visit(owned, true)
		}
	}
	tokens = append(tokens, pseudoToken(n, "after"))
	return strings.Join(tokens, "")
}

func pseudoToken(n *dom.Node, which string) string {
	ps := n.Pseudo(which)
	if ps.Content == "" {
		return ""
	}
	if ps.Display != "inline" {
		return " " + ps.Content + " "
	}
	return ps.Content
}

// labelledByElements resolves the aria-labelledby reference list. The
// boolean reports whether the attribute is present at all, which several
// native rules condition on even when no id resolves.
func labelledByElements(n *dom.Node) ([]*dom.Node, bool) {
	if !n.HasAttr("aria-labelledby") {
		return nil, false
	}
	return idRefs(n, n.Attr("aria-labelledby")), true
}

// idRefs resolves a whitespace-separated id list within the node's
// enclosing shadow-root-or-document scope, in listed order, deduplicated
// by first occurrence. Unresolvable ids are skipped.
func idRefs(n *dom.Node, value string) []*dom.Node {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	scope := n.Scope()
	seen := map[*dom.Node]bool{}
	var refs []*dom.Node
	for _, id := range strings.Fields(value) {
		if el := scope.ByID(id); el != nil && !seen[el] {
			seen[el] = true
			refs = append(refs, el)
		}
	}
	return refs
}

// findOwnedByRole returns the first descendant or aria-owned element with
// the given role.
func (p *Pass) findOwnedByRole(n *dom.Node, role string) *dom.Node {
	for _, el := range descendantsAndOwned(n) {
		if p.Role(el) == role {
			return el
		}
	}
	return nil
}

// descendantsAndOwned lists light-tree element descendants followed by
// aria-owns targets and their descendants, in document order.
func descendantsAndOwned(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	collectElements(n, &out)
	for _, ref := range idRefs(n, n.Attr("aria-owns")) {
		out = append(out, ref)
		collectElements(ref, &out)
	}
	return out
}

func collectElements(n *dom.Node, out *[]*dom.Node) {
	for _, c := range n.Children() {
		if !c.IsElement() {
			continue
		}
		*out = append(*out, c)
		collectElements(c, out)
	}
}

func isOwnLabel(n *dom.Node) bool {
	for _, label := range n.Labels() {
		if label == n {
			return true
		}
	}
	return false
}

func containsNode(list []*dom.Node, n *dom.Node) bool {
	for _, el := range list {
		if el == n {
			return true
		}
	}
	return false
}

func firstChildTag(n *dom.Node, tag string) *dom.Node {
	for _, c := range n.Children() {
		if c.IsElement() && c.Tag() == tag {
			return c
		}
	}
	return nil
}

func insideSVG(n *dom.Node) bool {
	parent := n.ParentOrShadowHost()
	return parent != nil && parent.ClosestTag("svg") != nil
}

// normalize folds the accumulated string into accname "flat string" form:
// newlines and non-breaking spaces become ordinary spaces, zero-width
// characters and soft hyphens are dropped, whitespace runs collapse to a
// single space, and the ends are trimmed.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\u00a0': // no-break space
			return ' '
		case '\u200b', '\u00ad': // zero-width space, soft hyphen
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func isBlank(s string) bool {
	return normalize(s) == ""
}
