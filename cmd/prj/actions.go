// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"prj-cli/internal/dispatch"

	"github.com/spf13/cobra"
)

// actionSpecs describes the six lifecycle commands. Each gets its own cobra
// command with identical flags; only the dispatched action differs.
var actionSpecs = []struct {
	use    string
	short  string
	action dispatch.Action
}{
	{
		use:    "configure",
		short:  "Run the project's configure command",
		action: dispatch.Configure,
	},
	{
		use:    "compile",
		short:  "Run the project's compile command",
		action: dispatch.Compile,
	},
	{
		use:    "install",
		short:  "Run the project's install command",
		action: dispatch.Install,
	},
	{
		use:    "test",
		short:  "Pick a test target and run the project's test command on it",
		action: dispatch.Test,
	},
	{
		use:    "retest",
		short:  "Re-run the test command on the last chosen target",
		action: dispatch.QuickRetest,
	},
	{
		use:    "test-update",
		short:  "Pick a test target and run the test-update command on it",
		action: dispatch.TestUpdate,
	},
}

// actionCommands builds the six lifecycle cobra commands.
func actionCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(actionSpecs))
	for _, spec := range actionSpecs {
		action := spec.action
		var (
			anchorFile string
			dryRun     bool
		)
		c := &cobra.Command{
			Use:   spec.use,
			Short: spec.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runAction(cmd, action, anchorFile, dryRun)
			},
		}
		c.Flags().StringVarP(&anchorFile, "file", "f", "", "resolve the project from this file or directory (default: current directory)")
		c.Flags().BoolVar(&dryRun, "dry-run", false, "print the resolved command without executing it")
		cmds = append(cmds, c)
	}
	return cmds
}

// runAction dispatches one lifecycle action anchored at anchorFile.
func runAction(cmd *cobra.Command, action dispatch.Action, anchorFile string, dryRun bool) error {
	anchor, err := resolveAnchor(anchorFile)
	if err != nil {
		return err
	}

	session, err := newDispatchSession(dryRun)
	if err != nil {
		return err
	}

	err = session.Dispatch(cmd.Context(), action, anchor)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dispatch.ErrPromptCancelled):
		fmt.Fprintln(os.Stderr, SubtitleStyle.Render("Aborted."))
		return nil
	default:
		// Dispatch errors already name the action; suppress cobra's usage
		// text so exit codes and messages pass through untouched.
		cmd.SilenceUsage = true
		return err
	}
}

// resolveAnchor turns the --file flag into an absolute anchor path,
// defaulting to the current working directory.
func resolveAnchor(anchorFile string) (string, error) {
	if anchorFile == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	if _, err := os.Stat(anchorFile); err != nil {
		return "", fmt.Errorf("anchor path %q: %w", anchorFile, err)
	}
	return anchorFile, nil
}
