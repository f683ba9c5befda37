// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
)

// NativeName is the name of the system-shell runtime.
const NativeName = "native"

// NativeRuntime executes commands through the host's shell, for users whose
// commands rely on shell functions or rc-file setup the virtual runtime
// cannot see.
type NativeRuntime struct {
	// Shell overrides shell discovery when set.
	Shell string
}

// NewNativeRuntime creates a native runtime.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string { return NativeName }

// Available reports whether a usable shell was found.
func (r *NativeRuntime) Available() bool {
	_, err := r.shell()
	return err == nil
}

// Run executes command via `<shell> -c` with dir as the working directory.
func (r *NativeRuntime) Run(ctx context.Context, command, dir string, streams IO) (Result, error) {
	shell, err := r.shell()
	if err != nil {
		return Result{ExitCode: 1}, err
	}

	cmd := exec.CommandContext(ctx, shell, append(shellArgs(shell), command)...)
	cmd.Dir = dir
	cmd.Stdin = streams.Stdin
	cmd.Stdout = streams.Stdout
	cmd.Stderr = streams.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{ExitCode: exitErr.ExitCode()}, nil
		}
		return Result{ExitCode: 1}, fmt.Errorf("executing command: %w", err)
	}

	return Result{ExitCode: 0}, nil
}

// shell picks the shell to use: explicit override, then platform defaults.
func (r *NativeRuntime) shell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	if goruntime.GOOS == "windows" {
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		return shell, nil
	}
	if bash, err := exec.LookPath("bash"); err == nil {
		return bash, nil
	}
	if sh, err := exec.LookPath("sh"); err == nil {
		return sh, nil
	}
	return "", fmt.Errorf("no shell found")
}

// shellArgs returns the flag that makes shell run a command string.
func shellArgs(shell string) []string {
	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}
