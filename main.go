// SPDX-License-Identifier: MPL-2.0

// prj resolves and runs per-project lifecycle commands (configure, compile,
// install, test) from prjfile.cue scope files.
package main

import cmd "prj-cli/cmd/prj"

func main() {
	cmd.Execute()
}
