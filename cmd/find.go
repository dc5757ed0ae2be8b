package cmd

import (
	"fmt"

	"github.com/ariagrep/ariagrep/internal/locator"
	"github.com/ariagrep/ariagrep/internal/output"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [file]",
	Short: "Find elements by ARIA role and accessible name",
	Long:  "Search an HTML document (file or stdin) for elements matching an ARIA role and/or accessible name, the way a screen-reader user would identify them.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("role", "", "ARIA role to match (e.g. \"button\", \"textbox\")")
	findCmd.Flags().String("name", "", "Accessible name to match (case-insensitive substring)")
	findCmd.Flags().Bool("exact", false, "Require exact name match instead of substring")
	findCmd.Flags().Bool("include-hidden", false, "Match elements hidden from the accessibility tree")
	findCmd.Flags().Int("limit", 10, "Max matching elements to return")
	findCmd.Flags().Bool("checked", false, "Require checked state")
	findCmd.Flags().Bool("selected", false, "Require selected state")
	findCmd.Flags().Bool("pressed", false, "Require pressed state")
	findCmd.Flags().Bool("expanded", false, "Require expanded state")
	findCmd.Flags().Bool("disabled", false, "Require disabled state")
	findCmd.Flags().Int("level", 0, "Require heading/item level")
}

// findResult is the top-level output of the find command.
type findResult struct {
	OK      bool          `yaml:"ok"             json:"ok"`
	Action  string        `yaml:"action"         json:"action"`
	Role    string        `yaml:"role,omitempty" json:"role,omitempty"`
	Name    string        `yaml:"name,omitempty" json:"name,omitempty"`
	Matches []elementInfo `yaml:"matches"        json:"matches"`
	Total   int           `yaml:"total"          json:"total"`
}

func runFind(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("role")
	name, _ := cmd.Flags().GetString("name")
	exact, _ := cmd.Flags().GetBool("exact")
	includeHidden, _ := cmd.Flags().GetBool("include-hidden")
	limit, _ := cmd.Flags().GetInt("limit")

	if role == "" && name == "" {
		return fmt.Errorf("specify at least one of --role or --name")
	}

	doc, err := loadDocument(args)
	if err != nil {
		return err
	}

	q := locator.Query{
		Role:          role,
		Name:          name,
		Exact:         exact,
		IncludeHidden: includeHidden,
	}
	applyStateFlags(cmd, &q)

	matches := runQuery(doc, q, limit)

	result := findResult{
		OK:      true,
		Action:  "find",
		Role:    role,
		Name:    name,
		Matches: matches,
		Total:   len(matches),
	}
	if result.Matches == nil {
		result.Matches = []elementInfo{}
	}
	return output.Print(result)
}

// applyStateFlags copies explicitly-set state flags into the query;
// unset flags leave the corresponding state unconstrained.
func applyStateFlags(cmd *cobra.Command, q *locator.Query) {
	if cmd.Flags().Changed("checked") {
		v, _ := cmd.Flags().GetBool("checked")
		q.Checked = &v
	}
	if cmd.Flags().Changed("selected") {
		v, _ := cmd.Flags().GetBool("selected")
		q.Selected = &v
	}
	if cmd.Flags().Changed("pressed") {
		v, _ := cmd.Flags().GetBool("pressed")
		q.Pressed = &v
	}
	if cmd.Flags().Changed("expanded") {
		v, _ := cmd.Flags().GetBool("expanded")
		q.Expanded = &v
	}
	if cmd.Flags().Changed("disabled") {
		v, _ := cmd.Flags().GetBool("disabled")
		q.Disabled = &v
	}
	if cmd.Flags().Changed("level") {
		v, _ := cmd.Flags().GetInt("level")
		q.Level = &v
	}
}
