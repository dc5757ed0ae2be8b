package cmd

import (
	"fmt"
	"time"

	"github.com/ariagrep/ariagrep/internal/locator"
	"github.com/ariagrep/ariagrep/internal/output"
	"github.com/spf13/cobra"
)

// waitResult is the output of a wait command.
type waitResult struct {
	OK       bool   `yaml:"ok"                  json:"ok"`
	Action   string `yaml:"action"              json:"action"`
	Elapsed  string `yaml:"elapsed"             json:"elapsed"`
	Match    string `yaml:"match,omitempty"     json:"match,omitempty"`
	TimedOut bool   `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait [file]",
	Short: "Wait for an element matching a semantic query to appear",
	Long:  "Re-parse the document and re-run the role/name query until it matches (or no longer matches, with --gone) or the timeout is reached. The document is read fresh on every poll.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("role", "", "Wait for element with this ARIA role")
	waitCmd.Flags().String("name", "", "Wait for element with this accessible name (substring match)")
	waitCmd.Flags().Bool("exact", false, "Require exact name match")
	waitCmd.Flags().Bool("include-hidden", false, "Match hidden elements too")
	waitCmd.Flags().Bool("gone", false, "Invert: wait until the query NO LONGER matches")
	waitCmd.Flags().Int("timeout", 30, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("role")
	name, _ := cmd.Flags().GetString("name")
	exact, _ := cmd.Flags().GetBool("exact")
	includeHidden, _ := cmd.Flags().GetBool("include-hidden")
	gone, _ := cmd.Flags().GetBool("gone")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	if role == "" && name == "" {
		return fmt.Errorf("specify at least one of --role or --name")
	}

	q := locator.Query{
		Role:          role,
		Name:          name,
		Exact:         exact,
		IncludeHidden: includeHidden,
	}

	timeout := time.Duration(timeoutSec) * time.Second
	interval := time.Duration(intervalMs) * time.Millisecond
	deadline := time.Now().Add(timeout)
	start := time.Now()

	for {
		doc, err := loadDocument(args)
		if err != nil {
			if time.Now().After(deadline) {
				return fmt.Errorf("timeout after %s (last error: %w)", timeout, err)
			}
			time.Sleep(interval)
			continue
		}

		matched := len(runQuery(doc, q, 1)) > 0
		conditionMet := matched
		if gone {
			conditionMet = !matched
		}

		if conditionMet {
			return output.Print(waitResult{
				OK:      true,
				Action:  "wait",
				Elapsed: time.Since(start).Round(time.Millisecond).String(),
				Match:   describeCondition(role, name, gone),
			})
		}

		if time.Now().After(deadline) {
			if err := output.Print(waitResult{
				OK:       false,
				Action:   "wait",
				Elapsed:  time.Since(start).Round(time.Millisecond).String(),
				TimedOut: true,
			}); err != nil {
				return err
			}
			return fmt.Errorf("timeout after %s waiting for %s", timeout, describeCondition(role, name, gone))
		}
		time.Sleep(interval)
	}
}

func describeCondition(role, name string, gone bool) string {
	desc := ""
	if role != "" {
		desc = "role=" + role
	}
	if name != "" {
		if desc != "" {
			desc += " "
		}
		desc += fmt.Sprintf("name=%q", name)
	}
	if gone {
		desc += " (gone)"
	}
	return desc
}
