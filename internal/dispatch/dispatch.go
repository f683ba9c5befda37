// SPDX-License-Identifier: MPL-2.0

// Package dispatch orchestrates action invocations.
//
// For every action the flow is: resolve the enclosing project, resolve the
// action's command and directory configuration against the anchor's scope
// chain, compose the absolute run directory, evaluate the command
// expression, and hand the resulting (command, directory) pair to the
// runner. Test-flavored actions additionally pick a test target — by prompt
// or from the per-project selection cache — and append it, relative to the
// run directory, as the command's single argument.
//
// Each invocation is atomic: either a fully resolved pair reaches the
// runner, or the invocation is abandoned with nothing executed. There is no
// retry logic at this layer.
package dispatch

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"prj-cli/internal/cmdexpr"
	"prj-cli/internal/memo"
	"prj-cli/internal/project"
	"prj-cli/pkg/fspath"
	"prj-cli/pkg/prjfile"
)

type (
	// ProjectResolver locates the project enclosing an anchor path.
	ProjectResolver interface {
		Resolve(anchor string) (project.Project, error)
	}

	// ConfigStore resolves a configuration key against the scope chain from
	// anchor up to root, falling back to built-in defaults.
	ConfigStore interface {
		Resolve(root, anchor, key string) (string, error)
	}

	// Runner executes a command string with the given working directory.
	// Dispatch is fire-and-forget: it neither awaits completion semantics
	// nor inspects exit codes; a Runner error means the hand-off failed.
	Runner interface {
		Run(ctx context.Context, command, dir string) error
	}

	// Prompter asks the user to choose a file or directory under startDir
	// and returns the chosen absolute path. A cancelled prompt returns an
	// error wrapping ErrPromptCancelled.
	Prompter interface {
		ChoosePath(ctx context.Context, title, startDir string) (string, error)
	}

	// Session wires the collaborators for a sequence of action invocations
	// and owns the per-project test selection cache. A Session is safe for
	// concurrent use when its collaborators are.
	Session struct {
		projects   ProjectResolver
		store      ConfigStore
		eval       *cmdexpr.Evaluator
		runner     Runner
		prompter   Prompter
		selections *memo.SelectionCache[project.Project]
		logger     *log.Logger
	}

	// SessionConfig carries the collaborators for NewSession.
	SessionConfig struct {
		Projects  ProjectResolver
		Store     ConfigStore
		Evaluator *cmdexpr.Evaluator
		Runner    Runner
		Prompter  Prompter
		// Logger is optional; a silent logger is used when nil.
		Logger *log.Logger
	}
)

// NewSession creates a Session with an empty selection cache.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		projects:   cfg.Projects,
		store:      cfg.Store,
		eval:       cfg.Evaluator,
		runner:     cfg.Runner,
		prompter:   cfg.Prompter,
		selections: memo.NewSelectionCache[project.Project](),
		logger:     logger,
	}
}

// Dispatch runs one action anchored at the given path.
func (s *Session) Dispatch(ctx context.Context, action Action, anchor string) error {
	prj, err := s.projects.Resolve(anchor)
	if err != nil {
		return err
	}

	inv, err := s.resolve(prj, action, anchor)
	if err != nil {
		return err
	}

	if action.usesSelection() {
		target, err := s.selectTarget(ctx, prj, action, anchor, inv.Dir)
		if err != nil {
			return err
		}
		inv.Command += " " + target
	}

	s.logger.Debug("dispatching action",
		"action", action.String(),
		"project", prj.Name,
		"command", inv.Command,
		"dir", inv.Dir,
	)
	return s.runner.Run(ctx, inv.Command, inv.Dir)
}

// Plan resolves the (command, run directory) pair for action without
// prompting, touching the selection cache, or executing anything. Used for
// configuration inspection.
func (s *Session) Plan(action Action, anchor string) (project.Project, Invocation, error) {
	prj, err := s.projects.Resolve(anchor)
	if err != nil {
		return project.Project{}, Invocation{}, err
	}
	inv, err := s.resolve(prj, action, anchor)
	return prj, inv, err
}

// Invocation is a resolved (command, run directory) pair.
type Invocation struct {
	// Command is the evaluated command string.
	Command string
	// Dir is the absolute run directory.
	Dir string
}

// resolve computes the evaluated command and absolute run directory for
// action, with every key resolved independently against the anchor's scope
// chain.
func (s *Session) resolve(prj project.Project, action Action, anchor string) (Invocation, error) {
	override, err := s.store.Resolve(prj.Root, anchor, action.directoryKey())
	if err != nil {
		return Invocation{}, err
	}
	runDir := fspath.RunDir(prj.Root, override)

	rawCmd, err := s.store.Resolve(prj.Root, anchor, action.commandKey())
	if err != nil {
		return Invocation{}, err
	}
	command, err := s.eval.Evaluate(rawCmd)
	if err != nil {
		return Invocation{}, &ExprError{Action: action, Err: err}
	}

	return Invocation{Command: command, Dir: runDir}, nil
}

// selectTarget produces the run-dir-relative test target for action: via the
// prompt (remembering the choice) for Test and TestUpdate, via the cache for
// QuickRetest.
func (s *Session) selectTarget(ctx context.Context, prj project.Project, action Action, anchor, runDir string) (string, error) {
	if !action.prompts() {
		rel, ok := s.selections.Recall(prj)
		if !ok {
			return "", &NoSelectionError{Project: prj}
		}
		return rel, nil
	}

	testFilesRel, err := s.store.Resolve(prj.Root, anchor, prjfile.KeyTestFilesDir)
	if err != nil {
		return "", err
	}
	startDir := fspath.RunDir(prj.Root, testFilesRel)

	chosen, err := s.prompter.ChoosePath(ctx, "Select a test target", startDir)
	if err != nil {
		return "", err
	}
	chosenAbs, err := fspath.Abs(chosen)
	if err != nil {
		return "", err
	}

	// The argument is relative to the run directory, not to the test-files
	// directory and not to the project root: the command executes with the
	// run directory as its working directory.
	rel, err := fspath.RelativeTo(runDir, chosenAbs)
	if err != nil {
		return "", err
	}

	s.selections.Remember(prj, rel)
	return rel, nil
}
