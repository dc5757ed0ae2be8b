package aria

import (
	"strconv"
	"strings"

	"github.com/ariagrep/ariagrep/internal/dom"
)

// validRoles is the set of concrete (non-abstract) ARIA roles. Abstract
// roles like "widget" or "roletype" are intentionally absent: spelling
// one in a role attribute does not make it valid.
var validRoles = map[string]bool{
	"alert": true, "alertdialog": true, "application": true, "article": true,
	"banner": true, "blockquote": true, "button": true, "caption": true,
	"cell": true, "checkbox": true, "code": true, "columnheader": true,
	"combobox": true, "complementary": true, "contentinfo": true,
	"definition": true, "deletion": true, "dialog": true, "directory": true,
	"document": true, "emphasis": true, "feed": true, "figure": true,
	"form": true, "generic": true, "grid": true, "gridcell": true,
	"group": true, "heading": true, "img": true, "insertion": true,
	"link": true, "list": true, "listbox": true, "listitem": true,
	"log": true, "main": true, "mark": true, "marquee": true, "math": true,
	"menu": true, "menubar": true, "menuitem": true, "menuitemcheckbox": true,
	"menuitemradio": true, "meter": true, "navigation": true, "none": true,
	"note": true, "option": true, "paragraph": true, "presentation": true,
	"progressbar": true, "radio": true, "radiogroup": true, "region": true,
	"row": true, "rowgroup": true, "rowheader": true, "scrollbar": true,
	"search": true, "searchbox": true, "separator": true, "slider": true,
	"spinbutton": true, "status": true, "strong": true, "subscript": true,
	"superscript": true, "switch": true, "tab": true, "table": true,
	"tablist": true, "tabpanel": true, "term": true, "textbox": true,
	"time": true, "timer": true, "toolbar": true, "tooltip": true,
	"tree": true, "treegrid": true, "treeitem": true,
}

// globalAriaAttributes are the states and properties that apply to any
// role. Their presence on an element cancels an explicit none/presentation
// override.
var globalAriaAttributes = []string{
	"aria-atomic", "aria-busy", "aria-controls", "aria-current",
	"aria-describedby", "aria-details", "aria-dropeffect", "aria-flowto",
	"aria-grabbed", "aria-hidden", "aria-keyshortcuts", "aria-label",
	"aria-labelledby", "aria-live", "aria-owns", "aria-relevant",
	"aria-roledescription",
}

func hasGlobalAriaAttribute(n *dom.Node) bool {
	for _, attr := range globalAriaAttributes {
		if n.HasAttr(attr) {
			return true
		}
	}
	return false
}

// sectioningContentTags suppress the implicit banner/contentinfo role of
// header and footer elements nested inside them.
var sectioningContentTags = []string{"article", "aside", "main", "nav", "section"}

// implicitRoleByTag maps tag names to their implicit role. Entries are
// functions because several tags need predicate logic over the element.
var implicitRoleByTag = map[string]func(*dom.Node) string{
	"a":          hrefLinkRole,
	"area":       hrefLinkRole,
	"article":    constRole("article"),
	"aside":      constRole("complementary"),
	"blockquote": constRole("blockquote"),
	"button":     constRole("button"),
	"caption":    constRole("caption"),
	"code":       constRole("code"),
	"datalist":   constRole("listbox"),
	"dd":         constRole("definition"),
	"del":        constRole("deletion"),
	"details":    constRole("group"),
	"dfn":        constRole("term"),
	"dialog":     constRole("dialog"),
	"div":        constRole("generic"),
	"dt":         constRole("term"),
	"em":         constRole("emphasis"),
	"fieldset":   constRole("group"),
	"figure":     constRole("figure"),
	"footer": func(n *dom.Node) string {
		if n.ClosestTag(sectioningContentTags...) != nil {
			return ""
		}
		return "contentinfo"
	},
	"form": func(n *dom.Node) string {
		if hasExplicitName(n) {
			return "form"
		}
		return ""
	},
	"h1": constRole("heading"), "h2": constRole("heading"),
	"h3": constRole("heading"), "h4": constRole("heading"),
	"h5": constRole("heading"), "h6": constRole("heading"),
	"header": func(n *dom.Node) string {
		if n.ClosestTag(sectioningContentTags...) != nil {
			return ""
		}
		return "banner"
	},
	"hr":   constRole("separator"),
	"html": constRole("document"),
	"img": func(n *dom.Node) string {
		alt, hasAlt := n.Attr("alt"), n.HasAttr("alt")
		if hasAlt && alt == "" && !hasGlobalAriaAttribute(n) && !hasNumericTabIndex(n) {
			return "presentation"
		}
		return "img"
	},
	"input":    inputRole,
	"ins":      constRole("insertion"),
	"li":       constRole("listitem"),
	"main":     constRole("main"),
	"mark":     constRole("mark"),
	"math":     constRole("math"),
	"menu":     constRole("list"),
	"meter":    constRole("meter"),
	"nav":      constRole("navigation"),
	"ol":       constRole("list"),
	"optgroup": constRole("group"),
	"option":   constRole("option"),
	"output":   constRole("status"),
	"p":        constRole("paragraph"),
	"progress": constRole("progressbar"),
	"section": func(n *dom.Node) string {
		if hasExplicitName(n) {
			return "region"
		}
		return ""
	},
	"select": func(n *dom.Node) string {
		if n.HasAttr("multiple") || n.SelectSize() > 1 {
			return "listbox"
		}
		return "combobox"
	},
	"strong":   constRole("strong"),
	"sub":      constRole("subscript"),
	"sup":      constRole("superscript"),
	"svg":      constRole("img"),
	"table":    constRole("table"),
	"tbody":    constRole("rowgroup"),
	"td":       tableCellRole,
	"textarea": constRole("textbox"),
	"tfoot":    constRole("rowgroup"),
	"th":       tableHeaderRole,
	"thead":    constRole("rowgroup"),
	"time":     constRole("time"),
	"tr":       constRole("row"),
	"ul":       constRole("list"),
}

func constRole(role string) func(*dom.Node) string {
	return func(*dom.Node) string { return role }
}

func hrefLinkRole(n *dom.Node) string {
	if n.HasAttr("href") {
		return "link"
	}
	return ""
}

func hasExplicitName(n *dom.Node) bool {
	return n.HasAttr("aria-label") || n.HasAttr("aria-labelledby") || n.HasAttr("title")
}

func hasNumericTabIndex(n *dom.Node) bool {
	v := strings.TrimSpace(n.Attr("tabindex"))
	if v == "" {
		return false
	}
	_, err := strconv.Atoi(v)
	return err == nil
}

// textualInputTypes are the input types that can be promoted to combobox
// by a resolvable list attribute.
var textualInputTypes = map[string]bool{
	"email": true, "tel": true, "text": true, "url": true,
}

func inputRole(n *dom.Node) string {
	t := n.InputType()
	if t == "search" {
		if n.HasAttr("list") {
			return "combobox"
		}
		return "searchbox"
	}
	if textualInputTypes[t] {
		if list := n.Scope().ByID(n.Attr("list")); list != nil && list.Tag() == "datalist" {
			return "combobox"
		}
		return "textbox"
	}
	switch t {
	case "hidden":
		return ""
	case "button", "image", "reset", "submit":
		return "button"
	case "checkbox":
		return "checkbox"
	case "radio":
		return "radio"
	case "number":
		return "spinbutton"
	case "range":
		return "slider"
	case "file":
		return "button"
	case "password":
		return "textbox"
	}
	// Unknown types behave as text inputs.
	return "textbox"
}

func tableCellRole(n *dom.Node) string {
	if isInExplicitGrid(n) {
		return "gridcell"
	}
	return "cell"
}

func tableHeaderRole(n *dom.Node) string {
	if isInExplicitGrid(n) {
		return "gridcell"
	}
	switch n.Attr("scope") {
	case "row":
		return "rowheader"
	case "col":
		return "columnheader"
	}
	return "columnheader"
}

func isInExplicitGrid(n *dom.Node) bool {
	table := n.ClosestTag("table")
	if table == nil {
		return false
	}
	role := explicitRole(table)
	return role == "grid" || role == "treegrid"
}

// presentationParents is the child-tag to allowed-parent-tags table that
// drives presentation role inheritance: the walk continues only while
// each ancestor step stays inside this table.
var presentationParents = map[string][]string{
	"dd":    {"dl", "div"},
	"div":   {"dl"},
	"dt":    {"dl", "div"},
	"li":    {"ol", "ul"},
	"tbody": {"table"},
	"td":    {"tr"},
	"tfoot": {"table"},
	"th":    {"tr"},
	"thead": {"table"},
	"tr":    {"thead", "tbody", "tfoot", "table"},
}

// explicitRole returns the first valid concrete role token of the role
// attribute, or "".
func explicitRole(n *dom.Node) string {
	for _, token := range strings.Fields(n.Attr("role")) {
		if validRoles[strings.ToLower(token)] {
			return strings.ToLower(token)
		}
	}
	return ""
}

// implicitRole computes the per-tag implicit role and applies presentation
// inheritance: walking up strictly through the table-defined tag chain, an
// ancestor with an uncancelled explicit none/presentation role makes the
// descendant presentational too.
func implicitRole(n *dom.Node) string {
	fn := implicitRoleByTag[n.Tag()]
	if fn == nil {
		return ""
	}
	role := fn(n)
	if role == "" {
		return ""
	}
	for ancestor := n; ancestor != nil; {
		parent := ancestor.ParentOrShadowHost()
		allowed := presentationParents[ancestor.Tag()]
		if len(allowed) == 0 || parent == nil || !containsString(allowed, parent.Tag()) {
			break
		}
		parentExplicit := explicitRole(parent)
		if parentExplicit == "none" || parentExplicit == "presentation" {
			// The accessibility conflict-resolution algorithm would also
			// consider focusability here; only global ARIA attributes
			// cancel the override in this implementation.
			if !hasGlobalAriaAttribute(parent) {
				return parentExplicit
			}
		}
		ancestor = parent
	}
	return role
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func computeRole(n *dom.Node) string {
	explicit := explicitRole(n)
	if explicit == "" {
		return implicitRole(n)
	}
	if explicit == "none" || explicit == "presentation" {
		if hasGlobalAriaAttribute(n) {
			return implicitRole(n)
		}
	}
	return explicit
}

// Role resolves the node's ARIA role. It returns "" when neither an
// explicit nor an implicit role applies.
func (p *Pass) Role(n *dom.Node) string {
	if n == nil || !n.IsElement() {
		return ""
	}
	if p.roles != nil {
		if role, ok := p.roles[n]; ok {
			return role
		}
	}
	role := computeRole(n)
	if p.roles != nil {
		p.roles[n] = role
	}
	return role
}
