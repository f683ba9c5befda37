// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prj-cli/pkg/prjfile"

	"github.com/spf13/cobra"
)

var (
	initProject string
	initForce   bool

	// initCmd creates a new prjfile
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new prjfile.cue in the current directory",
		Long: `Create a new prjfile.cue in the current directory.

A prjfile with a 'project' field marks the directory as a project root.
Nested prjfiles without the field override individual keys for their
subtree.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().StringVar(&initProject, "project", "", "project name (default: directory name)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing prjfile.cue")
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(prjfile.FileName); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", prjfile.FileName)
	}

	name := initProject
	if name == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		name = filepath.Base(wd)
	}

	content := generatePrjfile(name)
	if err := os.WriteFile(prjfile.FileName, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(prjfile.FileName)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Adjust the commands for your build system")
	fmt.Println("  2. Run 'prj info' to see the resolved commands")
	fmt.Println("  3. Run 'prj compile' from anywhere inside the project")

	return nil
}

// generatePrjfile renders a starter scope file marking a project root. Only
// the project field is active; the command keys start as comments since the
// defaults cover the common autotools flow.
func generatePrjfile(name string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %q\n", prjfile.KeyProject, name)
	sb.WriteString("\n")
	sb.WriteString("// Uncomment to override the built-in defaults:\n")
	fmt.Fprintf(&sb, "// %q: \"./configure\"\n", prjfile.KeyConfigureCmd)
	fmt.Fprintf(&sb, "// %q: \"make\"\n", prjfile.KeyCompileCmd)
	fmt.Fprintf(&sb, "// %q: \"make install\"\n", prjfile.KeyInstallCmd)
	fmt.Fprintf(&sb, "// %q: \"make test\"\n", prjfile.KeyTestCmd)
	fmt.Fprintf(&sb, "// %q: \"tests\"\n", prjfile.KeyTestFilesDir)

	return sb.String()
}
