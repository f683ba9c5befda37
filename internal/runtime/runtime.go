// SPDX-License-Identifier: MPL-2.0

// Package runtime executes resolved action commands in their run directory.
//
// Two runtimes are available: the virtual runtime interprets the command
// in-process with mvdan/sh, and the native runtime hands it to the system
// shell. Both take the command string and working directory as-is; nothing
// here inspects or understands the output of whatever build tool runs.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
)

type (
	// IO carries the standard streams for a command run.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Result reports how a command run ended.
	Result struct {
		// ExitCode is the command's exit status; 0 on success.
		ExitCode int
	}

	// Runtime runs a command string with the given working directory.
	Runtime interface {
		// Name identifies the runtime ("virtual", "native").
		Name() string
		// Available reports whether this runtime can run on this host.
		Available() bool
		// Run executes command from dir. A non-nil error means the command
		// could not be run at all; an unsuccessful command is a nil error
		// with a non-zero Result.ExitCode.
		Run(ctx context.Context, command, dir string, streams IO) (Result, error)
	}
)

// StdIO returns the process's own standard streams.
func StdIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// ForName returns the runtime registered under name. A runtime that cannot
// run on this host is rejected here rather than failing on first use.
func ForName(name string) (Runtime, error) {
	var rt Runtime
	switch name {
	case "", VirtualName:
		rt = NewVirtualRuntime()
	case NativeName:
		rt = NewNativeRuntime()
	default:
		return nil, fmt.Errorf("unknown runtime %q (valid: %s, %s)", name, VirtualName, NativeName)
	}

	if !rt.Available() {
		return nil, fmt.Errorf("runtime %q is not available on this host", rt.Name())
	}
	return rt, nil
}
