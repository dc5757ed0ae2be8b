// Package locator matches elements of a parsed document against semantic
// queries: an ARIA role, an accessible name, and optional state
// constraints, the way a screen-reader user would identify them.
package locator

import (
	"strings"

	"github.com/ariagrep/ariagrep/internal/aria"
	"github.com/ariagrep/ariagrep/internal/dom"
)

// Query describes the elements to find. Zero-value fields are not
// constrained; state pointers are nil when the caller does not care.
type Query struct {
	Role          string
	Name          string
	Exact         bool // full-string name match instead of case-insensitive substring
	IncludeHidden bool

	Checked  *bool
	Selected *bool
	Pressed  *bool
	Expanded *bool
	Disabled *bool
	Level    *int
}

// Match pairs a matched node with the semantics that matched it.
type Match struct {
	Node *dom.Node
	Role string
	Name string
}

// Find walks the document in composed order (shadow trees included) and
// returns elements matching the query, up to limit (0 = unlimited). The
// pass must be open; all role/name lookups share its cache.
func Find(p *aria.Pass, doc *dom.Document, q Query, limit int) []Match {
	var matches []Match
	doc.Walk(func(n *dom.Node) bool {
		if !q.IncludeHidden && p.IsHiddenForAria(n) {
			return true
		}
		role := p.Role(n)
		if q.Role != "" && role != q.Role {
			return true
		}
		name := p.AccessibleName(n, q.IncludeHidden)
		if !nameMatches(name, q.Name, q.Exact) {
			return true
		}
		if !stateMatches(p, n, q) {
			return true
		}
		matches = append(matches, Match{Node: n, Role: role, Name: name})
		return limit == 0 || len(matches) < limit
	})
	return matches
}

func nameMatches(name, want string, exact bool) bool {
	if want == "" {
		return true
	}
	if exact {
		return name == want
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(want))
}

func stateMatches(p *aria.Pass, n *dom.Node, q Query) bool {
	if q.Checked != nil && p.Checked(n) != *q.Checked {
		return false
	}
	if q.Selected != nil && p.Selected(n) != *q.Selected {
		return false
	}
	if q.Pressed != nil && (p.Pressed(n) == aria.PressedTrue) != *q.Pressed {
		return false
	}
	if q.Expanded != nil {
		expanded := p.Expanded(n)
		if expanded == aria.ExpandedNone {
			return false
		}
		if (expanded == aria.ExpandedTrue) != *q.Expanded {
			return false
		}
	}
	if q.Disabled != nil && p.Disabled(n) != *q.Disabled {
		return false
	}
	if q.Level != nil && p.Level(n) != *q.Level {
		return false
	}
	return true
}
