package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads an HTML document and builds the wrapper tree the semantics
// engine operates on: declarative shadow roots are attached, slot
// assignment is resolved, and <style> rules are collected.
func Parse(r io.Reader) (*Document, error) {
	src, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &Document{}
	root := &Node{kind: ElementNode, doc: doc}
	doc.root = root
	b := &builder{doc: doc}
	b.buildChildren(src, root, nil)
	doc.sheet = b.sheet()
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

type builder struct {
	doc       *Document
	styleText []string
}

func (b *builder) buildChildren(src *html.Node, parent *Node, scope *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			parent.children = append(parent.children, &Node{
				kind:   TextNode,
				text:   c.Data,
				parent: parent,
				scope:  scope,
				doc:    b.doc,
			})
		case html.ElementNode:
			tag := strings.ToLower(c.Data)
			if tag == "template" && isShadowRootTemplate(c) {
				b.attachShadowRoot(c, parent)
				continue
			}
			n := &Node{
				kind:   ElementNode,
				tag:    tag,
				attrs:  attrMap(c),
				parent: parent,
				scope:  scope,
				doc:    b.doc,
			}
			if tag == "style" {
				b.styleText = append(b.styleText, textOf(c))
			}
			parent.children = append(parent.children, n)
			b.buildChildren(c, n, scope)
			if n.shadowRoot != nil {
				assignSlots(n)
			}
		}
	}
}

// attachShadowRoot turns a <template shadowrootmode=...> child into the
// parent's shadow tree. The template itself does not appear in the light
// tree. Later templates on the same host are ignored.
func (b *builder) attachShadowRoot(tpl *html.Node, host *Node) {
	if host.shadowRoot != nil || host.tag == "" {
		return
	}
	container := &Node{
		kind:  ElementNode,
		tag:   "#shadow-root",
		attrs: map[string]string{},
		host:  host,
		doc:   b.doc,
		scope: host.scope,
	}
	host.shadowRoot = container
	b.buildChildren(tpl, container, container)
}

func isShadowRootTemplate(c *html.Node) bool {
	for _, a := range c.Attr {
		key := strings.ToLower(a.Key)
		if key == "shadowrootmode" || key == "shadowroot" {
			mode := strings.ToLower(a.Val)
			return mode == "open" || mode == "closed"
		}
	}
	return false
}

// assignSlots distributes the host's light-tree children into the slots
// of its shadow tree. Only direct children participate; children that
// match no slot stay unassigned (and are hidden for ARIA).
func assignSlots(host *Node) {
	slots := map[string]*Node{}
	collectSlots(host.shadowRoot, slots)
	for _, child := range host.children {
		name := ""
		if child.IsElement() {
			name = child.attrs["slot"]
		}
		if slot := slots[name]; slot != nil {
			child.assignedSlot = slot
			slot.assigned = append(slot.assigned, child)
		}
	}
}

// collectSlots gathers slot elements by name within one shadow tree,
// first slot of a given name wins. Nested shadow trees have their own
// slot namespaces and are skipped.
func collectSlots(n *Node, slots map[string]*Node) {
	for _, c := range n.children {
		if !c.IsElement() {
			continue
		}
		if c.tag == "slot" {
			name := c.attrs["name"]
			if _, ok := slots[name]; !ok {
				slots[name] = c
			}
		}
		// Descending into light children only; a nested host's shadow
		// tree keeps its own slot namespace.
		collectSlots(c, slots)
	}
}

func attrMap(c *html.Node) map[string]string {
	m := make(map[string]string, len(c.Attr))
	for _, a := range c.Attr {
		key := strings.ToLower(a.Key)
		if _, ok := m[key]; !ok {
			m[key] = a.Val
		}
	}
	return m
}

func textOf(c *html.Node) string {
	var b strings.Builder
	for n := c.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return b.String()
}
