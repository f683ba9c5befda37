// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"prj-cli/internal/cmdexpr"
	"prj-cli/internal/config"
	"prj-cli/internal/dispatch"
	"prj-cli/internal/issue"
	"prj-cli/internal/project"
	"prj-cli/internal/runtime"
	"prj-cli/internal/scope"
	"prj-cli/internal/tui"

	"github.com/charmbracelet/log"
)

type (
	// runtimeRunner executes dispatched commands on a runtime, wiring the
	// process stdio through and converting non-zero exits into ExitError so
	// the prj process mirrors the command's exit code.
	runtimeRunner struct {
		rt runtime.Runtime
	}

	// dryRunner prints the resolved invocation instead of executing it.
	dryRunner struct {
		out io.Writer
	}

	// pickerPrompter asks for test targets with the Bubble Tea file picker.
	pickerPrompter struct {
		showHidden bool
		height     int
	}
)

func (r *runtimeRunner) Run(ctx context.Context, command, dir string) error {
	res, err := r.rt.Run(ctx, command, dir, runtime.StdIO())
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

func (r *dryRunner) Run(_ context.Context, command, dir string) error {
	fmt.Fprintf(r.out, "%s %s\n", SubtitleStyle.Render("would run in "+dir+":"), CmdStyle.Render(command))
	return nil
}

func (p *pickerPrompter) ChoosePath(ctx context.Context, title, startDir string) (string, error) {
	path, err := tui.ChoosePath(ctx, tui.PickerOptions{
		Title:            title,
		CurrentDirectory: startDir,
		ShowHidden:       p.showHidden,
		Height:           p.height,
		FileAllowed:      true,
		DirAllowed:       true,
	})
	if errors.Is(err, tui.ErrCancelled) {
		return "", dispatch.ErrPromptCancelled
	}
	return path, err
}

// newDispatchSession builds a dispatch session from the loaded application
// configuration. With dryRun set the session resolves and prompts as usual
// but prints the final invocation instead of executing it.
func newDispatchSession(dryRun bool) (*dispatch.Session, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, issue.WrapWithOperation(err, "locate home directory")
	}

	cfg, err := config.Load()
	if err != nil {
		// initRootConfig already warned; fall back to defaults so the
		// action itself can still run.
		cfg = config.DefaultConfig()
	}

	var runner dispatch.Runner
	if dryRun {
		runner = &dryRunner{out: os.Stdout}
	} else {
		rt, err := runtime.ForName(string(cfg.DefaultRuntime))
		if err != nil {
			return nil, err
		}
		runner = &runtimeRunner{rt: rt}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "prj"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return dispatch.NewSession(dispatch.SessionConfig{
		Projects:  project.NewResolver(home),
		Store:     scope.NewStore(home),
		Evaluator: cmdexpr.New(home),
		Runner:    runner,
		Prompter: &pickerPrompter{
			showHidden: cfg.Picker.ShowHidden,
			height:     cfg.Picker.Height,
		},
		Logger: logger,
	}), nil
}
