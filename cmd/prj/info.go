// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"prj-cli/internal/dispatch"
	"prj-cli/internal/project"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	infoFile string

	// infoCmd shows the resolved commands for the anchor directory.
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Show the project and commands resolved for this directory",
		Long: `Show the enclosing project and, per action, the effective command and
run directory after scope resolution and expression evaluation.`,
		RunE: runInfo,
	}
)

func init() {
	infoCmd.Flags().StringVarP(&infoFile, "file", "f", "", "resolve the project from this file or directory (default: current directory)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	anchor, err := resolveAnchor(infoFile)
	if err != nil {
		return err
	}

	session, err := newDispatchSession(true)
	if err != nil {
		return err
	}

	markdown, err := renderInfo(session, anchor)
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return err
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// renderInfo builds the markdown report for every action at the anchor. An
// action whose command cannot be evaluated (e.g. test-update-cmd unset) is
// reported inline rather than failing the whole report.
func renderInfo(session *dispatch.Session, anchor string) (string, error) {
	actions := []dispatch.Action{
		dispatch.Configure,
		dispatch.Compile,
		dispatch.Install,
		dispatch.Test,
		dispatch.TestUpdate,
	}

	var (
		prj  project.Project
		rows []string
	)
	for _, action := range actions {
		p, inv, err := session.Plan(action, anchor)
		if err != nil {
			var exprErr *dispatch.ExprError
			if errors.As(err, &exprErr) {
				prj = p
				rows = append(rows, fmt.Sprintf("| %s | _not configured_ | |", action))
				continue
			}
			return "", err
		}
		prj = p
		rows = append(rows, fmt.Sprintf("| %s | `%s` | `%s` |", action, inv.Command, inv.Dir))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\nRoot: `%s`\n\n", prj.Name, prj.Root)
	sb.WriteString("| Action | Command | Directory |\n")
	sb.WriteString("|--------|---------|-----------|\n")
	sb.WriteString(strings.Join(rows, "\n"))
	sb.WriteString("\n")

	return sb.String(), nil
}
