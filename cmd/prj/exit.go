// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

// ExitError carries a process exit code through the error chain so Execute
// can terminate with the code of the dispatched command instead of a generic
// failure status.
type ExitError struct {
	// Code is the exit code of the dispatched command (non-zero).
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}
