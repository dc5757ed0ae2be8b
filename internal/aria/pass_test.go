package aria

import "testing"

func TestPass_ResultsStableWithinScope(t *testing.T) {
	doc := mustParse(t, `<label for="t">Amount</label><input id="t" value="3">`)
	n := byID(t, doc, "t")
	p := NewPass()
	p.Open()
	defer p.Close()

	first := p.AccessibleName(n, false)
	second := p.AccessibleName(n, false)
	if first != second {
		t.Errorf("repeated lookups diverged: %q then %q", first, second)
	}
	if first != "Amount" {
		t.Errorf("AccessibleName = %q, want %q", first, "Amount")
	}
	if p.Role(n) != p.Role(n) {
		t.Error("repeated role lookups diverged")
	}
}

func TestPass_RefCounting(t *testing.T) {
	doc := mustParse(t, `<button id="t">Go</button>`)
	n := byID(t, doc, "t")
	p := NewPass()

	p.Open()
	p.Open()
	if got := p.AccessibleName(n, false); got != "Go" {
		t.Fatalf("AccessibleName = %q, want %q", got, "Go")
	}
	if len(p.names) == 0 {
		t.Error("open pass should memoize names")
	}

	p.Close()
	if p.names == nil {
		t.Error("inner close must not drop the shared cache generation")
	}
	p.Close()
	if p.names != nil || p.roles != nil || p.hidden != nil {
		t.Error("final close should drop all memoized results")
	}

	// Extra closes are tolerated.
	p.Close()

	// Reopening starts a fresh generation.
	p.Open()
	if p.names == nil {
		t.Error("reopen should allocate a new cache")
	}
	p.Close()
}

func TestPass_ClosedPassStillComputes(t *testing.T) {
	doc := mustParse(t, `<button id="t" aria-label="Save">x</button>`)
	n := byID(t, doc, "t")
	p := NewPass()
	if got := p.AccessibleName(n, false); got != "Save" {
		t.Errorf("AccessibleName on closed pass = %q, want %q", got, "Save")
	}
	if got := p.Role(n); got != "button" {
		t.Errorf("Role on closed pass = %q, want %q", got, "button")
	}
	if p.names != nil {
		t.Error("closed pass must not memoize")
	}
}

func TestPass_HiddenAndVisibleNamesCachedSeparately(t *testing.T) {
	doc := mustParse(t, `<button id="t" hidden>Ghost</button>`)
	n := byID(t, doc, "t")
	p := NewPass()
	p.Open()
	defer p.Close()

	if got := p.AccessibleName(n, false); got != "" {
		t.Errorf("visible-only name = %q, want empty", got)
	}
	if got := p.AccessibleName(n, true); got != "Ghost" {
		t.Errorf("hidden-inclusive name = %q, want %q", got, "Ghost")
	}
	// The earlier result must not be clobbered by the second key.
	if got := p.AccessibleName(n, false); got != "" {
		t.Errorf("visible-only name after hidden lookup = %q, want empty", got)
	}
}
