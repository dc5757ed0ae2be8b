package aria

import (
	"strconv"
	"strings"

	"github.com/ariagrep/ariagrep/internal/dom"
)

// Checked is the tri-state result of the checked computation, with an
// explicit "not applicable" value for roles outside the allow-list.
type Checked int

const (
	CheckedFalse Checked = iota
	CheckedTrue
	CheckedMixed
	CheckedNotApplicable
)

func (c Checked) String() string {
	switch c {
	case CheckedTrue:
		return "true"
	case CheckedMixed:
		return "mixed"
	case CheckedNotApplicable:
		return "none"
	}
	return "false"
}

// Pressed is the tri-state aria-pressed value.
type Pressed int

const (
	PressedFalse Pressed = iota
	PressedTrue
	PressedMixed
)

func (p Pressed) String() string {
	switch p {
	case PressedTrue:
		return "true"
	case PressedMixed:
		return "mixed"
	}
	return "false"
}

// Expanded distinguishes "not expandable" from collapsed.
type Expanded int

const (
	ExpandedNone Expanded = iota
	ExpandedFalse
	ExpandedTrue
)

func (e Expanded) String() string {
	switch e {
	case ExpandedTrue:
		return "true"
	case ExpandedFalse:
		return "false"
	}
	return "none"
}

var selectedRoles = map[string]bool{
	"gridcell": true, "option": true, "row": true, "tab": true,
	"rowheader": true, "columnheader": true, "treeitem": true,
}

// Selected reports the selected state: the native flag for options, else
// aria-selected for the allowed roles.
func (p *Pass) Selected(n *dom.Node) bool {
	if n.Tag() == "option" {
		return n.OptionSelected()
	}
	if selectedRoles[p.Role(n)] {
		return ariaBool(n.Attr("aria-selected"))
	}
	return false
}

var checkedRoles = map[string]bool{
	"checkbox": true, "menuitemcheckbox": true, "option": true,
	"radio": true, "switch": true, "menuitemradio": true, "treeitem": true,
}

// CheckedState computes the tri-state checked value. Mixed is only
// reported when allowMixed is set; roles outside the allow-list yield
// CheckedNotApplicable.
func (p *Pass) CheckedState(n *dom.Node, allowMixed bool) Checked {
	tag := n.Tag()
	if allowMixed && tag == "input" && n.Indeterminate() {
		return CheckedMixed
	}
	if tag == "input" {
		if t := n.InputType(); t == "checkbox" || t == "radio" {
			if n.HasAttr("checked") {
				return CheckedTrue
			}
			return CheckedFalse
		}
	}
	if checkedRoles[p.Role(n)] {
		checked := n.Attr("aria-checked")
		if checked == "true" {
			return CheckedTrue
		}
		if allowMixed && checked == "mixed" {
			return CheckedMixed
		}
		return CheckedFalse
	}
	return CheckedNotApplicable
}

// Checked collapses the tri-state to a boolean: mixed and not-applicable
// both report false.
func (p *Pass) Checked(n *dom.Node) bool {
	return p.CheckedState(n, false) == CheckedTrue
}

// Pressed reads aria-pressed for button-role nodes only.
func (p *Pass) Pressed(n *dom.Node) Pressed {
	if p.Role(n) == "button" {
		switch n.Attr("aria-pressed") {
		case "true":
			return PressedTrue
		case "mixed":
			return PressedMixed
		}
	}
	return PressedFalse
}

var expandedRoles = map[string]bool{
	"application": true, "button": true, "checkbox": true, "combobox": true,
	"gridcell": true, "link": true, "listbox": true, "menuitem": true,
	"row": true, "rowheader": true, "tab": true, "treeitem": true,
	"columnheader": true, "menuitemcheckbox": true, "menuitemradio": true,
	"rowgroup": true, "switch": true,
}

// Expanded reports the disclosure state: the native open flag for
// details, else aria-expanded for the allowed roles. ExpandedNone means
// "not expandable", distinct from collapsed.
func (p *Pass) Expanded(n *dom.Node) Expanded {
	if n.Tag() == "details" {
		if n.DetailsOpen() {
			return ExpandedTrue
		}
		return ExpandedFalse
	}
	if expandedRoles[p.Role(n)] {
		if !n.HasAttr("aria-expanded") {
			return ExpandedNone
		}
		if ariaBool(n.Attr("aria-expanded")) {
			return ExpandedTrue
		}
		return ExpandedFalse
	}
	return ExpandedNone
}

var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

var levelRoles = map[string]bool{
	"heading": true, "listitem": true, "row": true, "treeitem": true,
}

// Level returns the native heading level, else a positive integer parsed
// from aria-level for the allowed roles. 0 means "no level".
func (p *Pass) Level(n *dom.Node) int {
	if level, ok := headingLevels[n.Tag()]; ok {
		return level
	}
	if levelRoles[p.Role(n)] {
		if level, err := strconv.Atoi(strings.TrimSpace(n.Attr("aria-level"))); err == nil && level >= 1 {
			return level
		}
	}
	return 0
}

var nativeFormControlTags = map[string]bool{
	"button": true, "input": true, "select": true, "textarea": true,
	"option": true, "optgroup": true,
}

var disabledRoles = map[string]bool{
	"application": true, "button": true, "composite": true,
	"gridcell": true, "group": true, "input": true, "link": true,
	"menuitem": true, "scrollbar": true, "separator": true, "tab": true,
	"checkbox": true, "columnheader": true, "combobox": true, "grid": true,
	"listbox": true, "menu": true, "menubar": true,
	"menuitemcheckbox": true, "menuitemradio": true, "option": true,
	"radio": true, "radiogroup": true, "row": true, "rowheader": true,
	"searchbox": true, "select": true, "slider": true, "spinbutton": true,
	"switch": true, "tablist": true, "textbox": true, "toolbar": true,
	"tree": true, "treegrid": true, "treeitem": true,
}

// Disabled reports whether the element is disabled, natively or through
// aria-disabled anywhere up the (shadow-crossing) ancestor chain.
func (p *Pass) Disabled(n *dom.Node) bool {
	return isNativelyDisabled(n) || p.hasExplicitAriaDisabled(n, false)
}

func isNativelyDisabled(n *dom.Node) bool {
	if !nativeFormControlTags[n.Tag()] {
		return false
	}
	return n.HasAttr("disabled") || belongsToDisabledFieldset(n)
}

// belongsToDisabledFieldset walks strictly through light-tree parents; a
// shadow boundary stops fieldset inheritance.
func belongsToDisabledFieldset(n *dom.Node) bool {
	for cur := n.ParentElement(); cur != nil; cur = cur.ParentElement() {
		if cur.Tag() == "fieldset" && cur.HasAttr("disabled") {
			return true
		}
	}
	return false
}

// hasExplicitAriaDisabled walks upward including across shadow host
// boundaries; the first aria-disabled set to exactly "true" or "false"
// wins. The role allow-list applies only at the starting element since
// aria-disabled inherits to all descendants.
func (p *Pass) hasExplicitAriaDisabled(n *dom.Node, isAncestor bool) bool {
	if n == nil {
		return false
	}
	if isAncestor || disabledRoles[p.Role(n)] {
		switch strings.ToLower(strings.TrimSpace(n.Attr("aria-disabled"))) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return p.hasExplicitAriaDisabled(n.ParentOrShadowHost(), true)
}
