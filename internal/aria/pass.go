// Package aria computes the ARIA role, accessible name and semantic state
// properties that assistive technology would expose for nodes of a parsed
// document. The behavior follows the HTML-AAM role mapping and the
// accessible name computation, with a small number of deliberate
// deviations that match real rendering engines; those are marked where
// they occur.
package aria

import "github.com/ariagrep/ariagrep/internal/dom"

type nameKey struct {
	node          *dom.Node
	includeHidden bool
}

// Pass is the caller-owned cache bracketing a batch of semantic queries
// over one document snapshot. Open and Close are reference counted:
// nested opens share one cache generation, and the close that returns the
// count to zero drops everything, so no result ever survives between two
// disjoint passes. A Pass must not be shared across documents that mutate
// independently.
type Pass struct {
	refs   int
	roles  map[*dom.Node]string
	hidden map[*dom.Node]bool
	names  map[nameKey]string
}

// NewPass returns an unopened pass. Calls made while the pass is closed
// still produce correct results, just without memoization.
func NewPass() *Pass {
	return &Pass{}
}

// Open starts (or joins) a cache generation.
func (p *Pass) Open() {
	if p.refs == 0 {
		p.roles = make(map[*dom.Node]string)
		p.hidden = make(map[*dom.Node]bool)
		p.names = make(map[nameKey]string)
	}
	p.refs++
}

// Close leaves the current cache generation, dropping all memoized
// results when this was the last open scope.
func (p *Pass) Close() {
	if p.refs == 0 {
		return
	}
	p.refs--
	if p.refs == 0 {
		p.roles = nil
		p.hidden = nil
		p.names = nil
	}
}
