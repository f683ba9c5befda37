// SPDX-License-Identifier: MPL-2.0

// Package tui implements the interactive prompts using Bubble Tea.
//
// The only prompt the application needs is the test target picker: a
// filesystem browser that lets the user choose the file or directory a test
// command should run against.
package tui

import "errors"

// ErrCancelled is returned when the user cancels a prompt (esc or ctrl+c).
var ErrCancelled = errors.New("cancelled by user")
