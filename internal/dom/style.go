package dom

import (
	"strings"
)

// Style holds the computed style properties the semantics engine consults.
type Style struct {
	Display           string
	Visibility        string
	ContentVisibility string
}

// PseudoStyle describes a ::before or ::after pseudo element. Content is
// the concatenation of quoted string tokens of the content property;
// unsupported tokens (counters, attr()) contribute nothing.
type PseudoStyle struct {
	Content string
	Display string
}

// Tags that never generate boxes regardless of author styles.
var nonRenderedTags = map[string]bool{
	"head": true, "meta": true, "title": true, "link": true,
	"style": true, "script": true, "noscript": true, "template": true,
	"base": true,
}

// Per-tag user-agent display defaults. Anything absent defaults to inline.
var blockTags = map[string]bool{
	"html": true, "body": true, "div": true, "p": true, "main": true,
	"section": true, "article": true, "aside": true, "nav": true,
	"header": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "ul": true, "ol": true, "li": true,
	"dl": true, "dt": true, "dd": true, "figure": true, "figcaption": true,
	"blockquote": true, "pre": true, "form": true, "fieldset": true,
	"legend": true, "hr": true, "address": true, "details": true,
	"summary": true, "dialog": true, "optgroup": true, "option": true,
}

var displayDefaults = map[string]string{
	"table": "table", "caption": "table-caption",
	"thead": "table-header-group", "tbody": "table-row-group",
	"tfoot": "table-footer-group", "tr": "table-row",
	"td": "table-cell", "th": "table-cell",
	"button": "inline-block", "input": "inline-block",
	"select": "inline-block", "textarea": "inline-block",
	"img": "inline-block", "meter": "inline-block", "progress": "inline-block",
	"slot": "contents",
}

func defaultDisplay(tag string) string {
	if nonRenderedTags[tag] {
		return "none"
	}
	if d, ok := displayDefaults[tag]; ok {
		return d
	}
	if blockTags[tag] {
		return "block"
	}
	return "inline"
}

// Style returns the node's computed style. Cascade order: UA default,
// matching <style> rules (document order, higher specificity wins), then
// the inline style attribute. The hidden attribute maps to display:none.
// Visibility inherits from the parent when not declared.
func (n *Node) Style() Style {
	if n.style != nil {
		return *n.style
	}
	s := Style{
		Display:    defaultDisplay(n.tag),
		Visibility: "",
	}
	decls := n.doc.sheet.match(n, "")
	applyDecls(&s, decls)
	applyDecls(&s, parseInlineStyle(n.attrs["style"]))
	if n.HasAttr("hidden") {
		s.Display = "none"
	}
	if s.Visibility == "" {
		if p := n.ParentElement(); p != nil {
			s.Visibility = p.Style().Visibility
		} else if host := n.hostOfTree(); host != nil {
			s.Visibility = host.Style().Visibility
		} else {
			s.Visibility = "visible"
		}
	}
	n.style = &s
	return s
}

// hostOfTree returns the shadow host when the node sits at the top of a
// shadow tree, for visibility inheritance across the boundary.
func (n *Node) hostOfTree() *Node {
	if n.parent != nil && n.parent.host != nil {
		return n.parent.host
	}
	return nil
}

// Pseudo returns the ::before or ::after style of the node. which must be
// "before" or "after".
func (n *Node) Pseudo(which string) PseudoStyle {
	if n.pseudoCache != nil {
		if ps, ok := n.pseudoCache[which]; ok {
			return ps
		}
	}
	ps := PseudoStyle{Display: "inline"}
	for _, d := range n.doc.sheet.match(n, which) {
		switch d.prop {
		case "content":
			ps.Content = parseContentValue(d.value)
		case "display":
			ps.Display = d.value
		}
	}
	if n.pseudoCache == nil {
		n.pseudoCache = map[string]PseudoStyle{}
	}
	n.pseudoCache[which] = ps
	return ps
}

func applyDecls(s *Style, decls []decl) {
	for _, d := range decls {
		switch d.prop {
		case "display":
			s.Display = d.value
		case "visibility":
			s.Visibility = d.value
		case "content-visibility":
			s.ContentVisibility = d.value
		}
	}
}

type decl struct {
	prop  string
	value string
}

type rule struct {
	sel   selector
	decls []decl
	spec  int // specificity: id*100 + class*10 + tag
	order int
}

type selector struct {
	tag     string
	id      string
	classes []string
	pseudo  string // "", "before" or "after"
}

type stylesheet struct {
	rules []rule
}

func (b *builder) sheet() *stylesheet {
	sh := &stylesheet{}
	order := 0
	for _, text := range b.styleText {
		for _, r := range parseRules(text) {
			r.order = order
			order++
			sh.rules = append(sh.rules, r)
		}
	}
	return sh
}

// match returns the declarations applying to the node (and pseudo
// element, if any), lowest precedence first.
func (sh *stylesheet) match(n *Node, pseudo string) []decl {
	if sh == nil || len(sh.rules) == 0 {
		return nil
	}
	var matched []rule
	for _, r := range sh.rules {
		if r.sel.pseudo != pseudo {
			continue
		}
		if r.sel.matches(n) {
			matched = append(matched, r)
		}
	}
	// Insertion sort by (specificity, order); small rule counts expected.
	for i := 1; i < len(matched); i++ {
		for j := i; j > 0; j-- {
			a, b := matched[j-1], matched[j]
			if a.spec > b.spec || (a.spec == b.spec && a.order > b.order) {
				matched[j-1], matched[j] = b, a
			} else {
				break
			}
		}
	}
	var decls []decl
	for _, r := range matched {
		decls = append(decls, r.decls...)
	}
	return decls
}

func (sel selector) matches(n *Node) bool {
	if !n.IsElement() || n.tag == "" {
		return false
	}
	if sel.tag != "" && sel.tag != "*" && sel.tag != n.tag {
		return false
	}
	if sel.id != "" && sel.id != n.attrs["id"] {
		return false
	}
	if len(sel.classes) > 0 {
		have := map[string]bool{}
		for _, c := range strings.Fields(n.attrs["class"]) {
			have[c] = true
		}
		for _, c := range sel.classes {
			if !have[c] {
				return false
			}
		}
	}
	return true
}

// parseRules handles the simple subset of CSS the oracle models: comma
// separated compound selectors (tag, .class, #id, ::before/::after) with
// flat declaration blocks. Anything it cannot parse is skipped.
func parseRules(text string) []rule {
	var rules []rule
	text = stripComments(text)
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			break
		}
		closeIdx := strings.IndexByte(text[open:], '}')
		if closeIdx < 0 {
			break
		}
		selText := strings.TrimSpace(text[:open])
		body := text[open+1 : open+closeIdx]
		text = text[open+closeIdx+1:]
		decls := parseInlineStyle(body)
		if len(decls) == 0 {
			continue
		}
		for _, one := range strings.Split(selText, ",") {
			sel, spec, ok := parseSelector(strings.TrimSpace(one))
			if !ok {
				continue
			}
			rules = append(rules, rule{sel: sel, decls: decls, spec: spec})
		}
	}
	return rules
}

func parseSelector(s string) (selector, int, bool) {
	var sel selector
	if s == "" {
		return sel, 0, false
	}
	if i := strings.Index(s, "::"); i >= 0 {
		p := strings.ToLower(s[i+2:])
		if p != "before" && p != "after" {
			return sel, 0, false
		}
		sel.pseudo = p
		s = s[:i]
	}
	// Combinators, attribute selectors and pseudo-classes are out of
	// scope for the oracle.
	if strings.ContainsAny(s, " >+~[:") {
		return sel, 0, false
	}
	spec := 0
	for s != "" {
		switch s[0] {
		case '.':
			s = s[1:]
			name, rest := takeIdent(s)
			if name == "" {
				return sel, 0, false
			}
			sel.classes = append(sel.classes, name)
			spec += 10
			s = rest
		case '#':
			s = s[1:]
			name, rest := takeIdent(s)
			if name == "" {
				return sel, 0, false
			}
			sel.id = name
			spec += 100
			s = rest
		default:
			name, rest := takeIdent(s)
			if name == "" {
				return sel, 0, false
			}
			sel.tag = strings.ToLower(name)
			if sel.tag != "*" {
				spec++
			}
			s = rest
		}
	}
	return sel, spec, true
}

func takeIdent(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '.' || c == '#' {
			break
		}
		i++
	}
	return s[:i], s[i:]
}

func parseInlineStyle(s string) []decl {
	if s == "" {
		return nil
	}
	var decls []decl
	for _, part := range strings.Split(s, ";") {
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(part[:colon]))
		value := strings.TrimSpace(part[colon+1:])
		value = strings.TrimSuffix(value, "!important")
		value = strings.ToLower(strings.TrimSpace(value))
		if prop == "" || value == "" {
			continue
		}
		if prop == "content" {
			// content values keep their original case and quoting
			decls = append(decls, decl{prop: prop, value: strings.TrimSpace(part[colon+1:])})
			continue
		}
		decls = append(decls, decl{prop: prop, value: value})
	}
	return decls
}

// parseContentValue concatenates the quoted string tokens of a content
// property value.
func parseContentValue(v string) string {
	var b strings.Builder
	i := 0
	for i < len(v) {
		q := v[i]
		if q != '"' && q != '\'' {
			i++
			continue
		}
		i++
		start := i
		for i < len(v) && v[i] != q {
			i++
		}
		if i >= len(v) {
			break
		}
		b.WriteString(v[start:i])
		i++
	}
	return b.String()
}

// stripComments removes /* ... */ comments.
func stripComments(s string) string {
	for {
		open := strings.Index(s, "/*")
		if open < 0 {
			return s
		}
		closeIdx := strings.Index(s[open+2:], "*/")
		if closeIdx < 0 {
			return s[:open]
		}
		s = s[:open] + s[open+2+closeIdx+2:]
	}
}
