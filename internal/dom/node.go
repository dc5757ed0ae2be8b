package dom

import "strings"

// Kind distinguishes the node types the semantics engine cares about.
// Comments, doctypes and processing instructions are dropped at parse time.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
)

// Node is an element or text node in the parsed document. Nodes are built
// once by Parse and never mutated afterwards; the engine only reads them.
type Node struct {
	kind Kind
	tag  string // lowercase tag name, "" for text nodes
	text string // character data, "" for elements

	attrs map[string]string

	parent   *Node
	children []*Node

	// Declarative shadow DOM. shadowRoot is a synthetic "#shadow-root"
	// container whose children are the shadow tree; host points back from
	// that container to the element it is attached to.
	shadowRoot *Node
	host       *Node

	// Content projection. assignedSlot is set on light-tree children of a
	// shadow host that were matched to a <slot>; assigned is the reverse
	// list on the slot element itself.
	assignedSlot *Node
	assigned     []*Node

	// scope is the enclosing shadow-root container, nil for the document
	// scope. Fixed at parse time.
	scope *Node

	doc *Document

	// lazily computed style, owned by style.go
	style       *Style
	pseudoCache map[string]PseudoStyle
}

// Document owns a parsed tree. The root is a synthetic container holding
// the top-level nodes (usually a single <html> element).
type Document struct {
	root  *Node
	sheet *stylesheet
}

// Root returns the synthetic document container node.
func (d *Document) Root() *Node { return d.root }

// DocumentElement returns the first element child of the document,
// normally <html>.
func (d *Document) DocumentElement() *Node {
	for _, c := range d.root.children {
		if c.IsElement() {
			return c
		}
	}
	return nil
}

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool { return n.kind == ElementNode }

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool { return n.kind == TextNode }

// Tag returns the lowercase tag name, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the character data of a text node.
func (n *Node) Text() string { return n.text }

// Attr returns the value of an attribute, or "" when absent.
func (n *Node) Attr(name string) string { return n.attrs[name] }

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.attrs["id"] }

// Parent returns the parent node within the same tree (light or shadow).
// Children of a shadow root container report that container.
func (n *Node) Parent() *Node { return n.parent }

// ParentElement returns the parent if it is a regular element, skipping
// document and shadow-root containers.
func (n *Node) ParentElement() *Node {
	p := n.parent
	if p == nil || !p.IsElement() || p.tag == "" {
		return nil
	}
	return p
}

// ParentOrShadowHost returns the parent element, crossing a shadow
// boundary: for a top-level node of a shadow tree it returns the host.
func (n *Node) ParentOrShadowHost() *Node {
	p := n.parent
	if p == nil {
		return nil
	}
	if p.host != nil {
		return p.host
	}
	if !p.IsElement() || p.tag == "" {
		return nil
	}
	return p
}

// Children returns the node's children in document order. For a shadow
// host this is the light tree; use ShadowRoot for the shadow tree.
func (n *Node) Children() []*Node { return n.children }

// ShadowRoot returns the synthetic shadow-root container, or nil.
func (n *Node) ShadowRoot() *Node { return n.shadowRoot }

// Host returns the shadow host of a shadow-root container, or nil.
func (n *Node) Host() *Node { return n.host }

// IsShadowRoot reports whether the node is a shadow-root container.
func (n *Node) IsShadowRoot() bool { return n.host != nil }

// AssignedSlot returns the slot this light-tree node was projected into.
func (n *Node) AssignedSlot() *Node { return n.assignedSlot }

// AssignedNodes returns the light-tree nodes projected into this slot.
func (n *Node) AssignedNodes() []*Node { return n.assigned }

// Scope identifies an id-lookup scope: a shadow root or the document.
type Scope struct {
	container *Node // shadow-root container, or the document root
}

// Scope returns the enclosing shadow-root-or-document scope.
func (n *Node) Scope() Scope {
	if n.scope != nil {
		return Scope{container: n.scope}
	}
	return Scope{container: n.doc.root}
}

// ByID resolves an id within this scope only, never descending into
// nested shadow trees. Malformed ids simply never match.
func (s Scope) ByID(id string) *Node {
	if id == "" || s.container == nil {
		return nil
	}
	return findByID(s.container, id)
}

func findByID(n *Node, id string) *Node {
	for _, c := range n.children {
		if !c.IsElement() {
			continue
		}
		if c.attrs["id"] == id {
			return c
		}
		// Light-tree descendants stay in scope; shadow trees do not.
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Contains reports whether other is n or a descendant of n in the same
// tree (not crossing shadow boundaries).
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// ClosestTag walks up light-tree and shadow-host parents looking for an
// element with one of the given lowercase tag names.
func (n *Node) ClosestTag(tags ...string) *Node {
	for cur := n; cur != nil; cur = cur.ParentOrShadowHost() {
		for _, t := range tags {
			if cur.tag == t {
				return cur
			}
		}
	}
	return nil
}

// TextContent concatenates all descendant text in the light tree.
func (n *Node) TextContent() string {
	var b strings.Builder
	appendText(n, &b)
	return b.String()
}

func appendText(n *Node, b *strings.Builder) {
	if n.IsText() {
		b.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		appendText(c, b)
	}
}

// Walk visits every element in composed document order, descending into
// shadow trees after the light children of their host. It stops early
// when fn returns false.
func (d *Document) Walk(fn func(*Node) bool) {
	walk(d.root, fn)
}

func walk(n *Node, fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !c.IsElement() {
			continue
		}
		if !fn(c) {
			return false
		}
		if c.shadowRoot != nil {
			if !walk(c.shadowRoot, fn) {
				return false
			}
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
