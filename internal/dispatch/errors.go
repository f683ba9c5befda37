// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"

	"prj-cli/internal/project"
)

// ErrPromptCancelled reports that the user aborted the test-target prompt.
// Dispatch returns it unchanged; callers abort the invocation silently
// instead of surfacing it as a failure.
var ErrPromptCancelled = errors.New("prompt cancelled")

type (
	// ExprError reports that an action's configured command expression could
	// not be evaluated. Nothing is executed when it occurs.
	ExprError struct {
		// Action is the action whose command was malformed.
		Action Action
		// Err is the evaluation failure.
		Err error
	}

	// NoSelectionError reports a quick retest against a project that has not
	// completed a test prompt in this session.
	NoSelectionError struct {
		// Project is the project with no recorded selection.
		Project project.Project
	}
)

// Error implements the error interface, naming the offending action.
func (e *ExprError) Error() string {
	return fmt.Sprintf("%s action: %v", e.Action, e.Err)
}

// Unwrap returns the evaluation failure.
func (e *ExprError) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *NoSelectionError) Error() string {
	return fmt.Sprintf("no previous test selection for project %s; run the test action first", e.Project.Name)
}
