package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ariagrep/ariagrep/internal/aria"
	"github.com/ariagrep/ariagrep/internal/dom"
	"github.com/ariagrep/ariagrep/internal/locator"
)

// loadDocument parses the HTML document named by args[0], or stdin when
// no argument is given (or it is "-").
func loadDocument(args []string) (*dom.Document, error) {
	if len(args) == 0 || args[0] == "-" {
		doc, err := dom.Parse(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("parse stdin: %w", err)
		}
		return doc, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", args[0], err)
	}
	return doc, nil
}

// splitRoles parses a comma-separated role list into a set.
func splitRoles(rolesStr string) map[string]bool {
	roleSet := make(map[string]bool)
	for _, r := range strings.Split(rolesStr, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			roleSet[r] = true
		}
	}
	return roleSet
}

// elementInfo is the compact element representation shared by read, find
// and the MCP tools.
type elementInfo struct {
	Role     string `yaml:"r"                  json:"r"`
	Name     string `yaml:"n,omitempty"        json:"n,omitempty"`
	Tag      string `yaml:"tag"                json:"tag"`
	ID       string `yaml:"id,omitempty"       json:"id,omitempty"`
	Depth    int    `yaml:"depth,omitempty"    json:"depth,omitempty"`
	Checked  string `yaml:"checked,omitempty"  json:"checked,omitempty"`
	Selected bool   `yaml:"selected,omitempty" json:"selected,omitempty"`
	Pressed  string `yaml:"pressed,omitempty"  json:"pressed,omitempty"`
	Expanded string `yaml:"expanded,omitempty" json:"expanded,omitempty"`
	Level    int    `yaml:"level,omitempty"    json:"level,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// describeElement fills an elementInfo from the engine's view of a node.
// State fields use their string forms so "mixed" and "none" survive
// serialization; defaults are omitted.
func describeElement(p *aria.Pass, n *dom.Node, role, name string) elementInfo {
	info := elementInfo{
		Role: role,
		Name: name,
		Tag:  n.Tag(),
		ID:   n.ID(),
	}
	if checked := p.CheckedState(n, true); checked != aria.CheckedNotApplicable && checked != aria.CheckedFalse {
		info.Checked = checked.String()
	}
	info.Selected = p.Selected(n)
	if pressed := p.Pressed(n); pressed != aria.PressedFalse {
		info.Pressed = pressed.String()
	}
	if expanded := p.Expanded(n); expanded != aria.ExpandedNone {
		info.Expanded = expanded.String()
	}
	info.Level = p.Level(n)
	info.Disabled = p.Disabled(n)
	return info
}

// runQuery brackets one locator query in a pass scope.
func runQuery(doc *dom.Document, q locator.Query, limit int) []elementInfo {
	pass := aria.NewPass()
	pass.Open()
	defer pass.Close()

	var infos []elementInfo
	for _, m := range locator.Find(pass, doc, q, limit) {
		infos = append(infos, describeElement(pass, m.Node, m.Role, m.Name))
	}
	return infos
}
