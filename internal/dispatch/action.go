// SPDX-License-Identifier: MPL-2.0

package dispatch

import "prj-cli/pkg/prjfile"

// Action is one of the six user-triggered operations.
type Action int

// The closed set of actions.
const (
	Configure Action = iota
	Compile
	Install
	Test
	QuickRetest
	TestUpdate
)

// String returns the user-facing action name.
func (a Action) String() string {
	switch a {
	case Configure:
		return "configure"
	case Compile:
		return "compile"
	case Install:
		return "install"
	case Test:
		return "test"
	case QuickRetest:
		return "retest"
	case TestUpdate:
		return "test-update"
	default:
		return "unknown"
	}
}

// commandKey returns the configuration key holding this action's command
// expression. QuickRetest replays the test command.
func (a Action) commandKey() string {
	switch a {
	case Configure:
		return prjfile.KeyConfigureCmd
	case Compile:
		return prjfile.KeyCompileCmd
	case Install:
		return prjfile.KeyInstallCmd
	case Test, QuickRetest:
		return prjfile.KeyTestCmd
	case TestUpdate:
		return prjfile.KeyTestUpdateCmd
	default:
		return ""
	}
}

// directoryKey returns the configuration key holding this action's run
// directory override.
func (a Action) directoryKey() string {
	switch a {
	case Configure:
		return prjfile.KeyConfigureCmdDir
	case Compile:
		return prjfile.KeyCompileCmdDir
	case Install:
		return prjfile.KeyInstallCmdDir
	case Test, QuickRetest:
		return prjfile.KeyTestCmdDir
	case TestUpdate:
		return prjfile.KeyTestUpdateCmdDir
	default:
		return ""
	}
}

// prompts reports whether this action asks the user to pick a test target.
func (a Action) prompts() bool {
	return a == Test || a == TestUpdate
}

// usesSelection reports whether this action appends a test target argument.
func (a Action) usesSelection() bool {
	return a == Test || a == QuickRetest || a == TestUpdate
}
