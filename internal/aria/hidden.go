package aria

import (
	"strings"

	"github.com/ariagrep/ariagrep/internal/dom"
)

// metadataTags never render and are always hidden for ARIA.
var metadataTags = map[string]bool{
	"style": true, "script": true, "noscript": true, "template": true,
}

// IsHiddenForAria reports whether the element is excluded from the
// accessibility tree.
func (p *Pass) IsHiddenForAria(n *dom.Node) bool {
	if n == nil || !n.IsElement() {
		return false
	}
	if metadataTags[n.Tag()] {
		return true
	}
	style := n.Style()
	isSlot := n.Tag() == "slot"
	if style.Display == "contents" && !isSlot {
		// display:contents is not rendered itself, but its children are.
		for _, child := range n.Children() {
			if child.IsElement() && !p.IsHiddenForAria(child) {
				return false
			}
			if child.IsText() && strings.TrimSpace(child.Text()) != "" {
				return false
			}
		}
		return true
	}
	// Options inside a select are not affected by their own visibility
	// style, and neither are slots: both are governed purely by the
	// propagated check below.
	isOptionInsideSelect := n.Tag() == "option" && n.ClosestTag("select") != nil
	if !isOptionInsideSelect && !isSlot && !isStyleVisible(style) {
		return true
	}
	return p.belongsToHiddenSubtree(n)
}

func isStyleVisible(s dom.Style) bool {
	if s.Visibility != "visible" && s.Visibility != "" {
		return false
	}
	return s.ContentVisibility != "hidden"
}

// belongsToHiddenSubtree walks the ancestor chain (crossing shadow
// boundaries) looking for display:none, aria-hidden=true, or an
// unassigned light child of a shadow host. Memoized per pass scope with
// recursive reuse of the parent's result.
func (p *Pass) belongsToHiddenSubtree(n *dom.Node) bool {
	if p.hidden != nil {
		if hidden, ok := p.hidden[n]; ok {
			return hidden
		}
	}
	hidden := false
	// When the parent hosts a shadow tree, only assigned children render.
	if parent := n.ParentElement(); parent != nil && parent.ShadowRoot() != nil && n.AssignedSlot() == nil {
		hidden = true
	}
	if !hidden {
		style := n.Style()
		hidden = style.Display == "none" ||
			style.ContentVisibility == "hidden" ||
			ariaBool(n.Attr("aria-hidden"))
	}
	if !hidden {
		if parent := n.ParentOrShadowHost(); parent != nil {
			hidden = p.belongsToHiddenSubtree(parent)
		}
	}
	if p.hidden != nil {
		p.hidden[n] = hidden
	}
	return hidden
}

func ariaBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
