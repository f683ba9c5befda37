// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualName is the name of the built-in shell runtime.
const VirtualName = "virtual"

// VirtualRuntime executes commands with the embedded mvdan/sh interpreter.
// It needs no shell on the host, which keeps behavior identical across
// platforms.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string { return VirtualName }

// Available always reports true; the interpreter is built in.
func (r *VirtualRuntime) Available() bool { return true }

// Run parses and interprets command with dir as the working directory.
func (r *VirtualRuntime) Run(ctx context.Context, command, dir string, streams IO) (Result, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return Result{ExitCode: 1}, fmt.Errorf("parsing command: %w", err)
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(streams.Stdin, streams.Stdout, streams.Stderr),
	)
	if err != nil {
		return Result{ExitCode: 1}, fmt.Errorf("creating interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return Result{ExitCode: int(exitStatus)}, nil
		}
		return Result{ExitCode: 1}, fmt.Errorf("running command: %w", err)
	}

	return Result{ExitCode: 0}, nil
}
