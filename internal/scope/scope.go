// SPDX-License-Identifier: MPL-2.0

// Package scope resolves configuration values against the hierarchy of
// prjfile.cue scope files inside a project.
//
// Each key resolves independently: the walk starts at the anchor's directory
// and climbs toward (and including) the project root, and the nearest scope
// binding the key wins. A subdirectory may therefore override a command while
// inheriting the root's directory, or vice versa. Keys bound nowhere fall
// back to built-in defaults. Scope files are re-read on every lookup; the
// store holds no cache, so edits take effect on the next invocation.
package scope

import (
	"fmt"
	"os"
	"path/filepath"

	"prj-cli/pkg/fspath"
	"prj-cli/pkg/prjfile"
)

// defaults are the built-in values for unconfigured keys. Directory keys and
// test-update-cmd are deliberately absent: an unset directory means "run from
// the project root", and an unset test-update command is a configuration
// error surfaced at evaluation time rather than a guessable default.
var defaults = map[string]string{
	prjfile.KeyConfigureCmd: "./configure",
	prjfile.KeyCompileCmd:   "make",
	prjfile.KeyInstallCmd:   "make install",
	prjfile.KeyTestCmd:      "make test",
}

// Store reads scope files on demand.
type Store struct {
	home string
}

// NewStore creates a Store. The home path is passed to prjfile parsing so
// scope files may reference the `home` binding in command expressions.
func NewStore(home string) *Store {
	return &Store{home: home}
}

// Lookup walks the scope chain from anchor up to and including root and
// returns the value bound to key in the nearest scope that defines it.
// The boolean reports whether any scope bound the key. Errors come only from
// unreadable or malformed scope files, never from an unbound key.
func (s *Store) Lookup(root, anchor, key string) (string, bool, error) {
	rootAbs, err := fspath.Abs(root)
	if err != nil {
		return "", false, err
	}
	anchorAbs, err := fspath.Abs(anchor)
	if err != nil {
		return "", false, err
	}

	dir := anchorAbs
	if info, statErr := os.Stat(anchorAbs); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(anchorAbs)
	}
	if !fspath.WithinRoot(rootAbs, dir) {
		return "", false, fmt.Errorf("anchor %s is outside project root %s", anchorAbs, rootAbs)
	}

	for {
		if prjfile.Exists(dir) {
			pf, err := prjfile.ParseDir(dir, prjfile.WithHome(s.home))
			if err != nil {
				return "", false, err
			}
			if v, ok := pf.Lookup(key); ok {
				return v, true, nil
			}
		}

		if dir == rootAbs {
			return "", false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Walk escaped without meeting root; anchor/root mismatch.
			return "", false, fmt.Errorf("scope walk from %s never reached root %s", anchorAbs, rootAbs)
		}
		dir = parent
	}
}

// Resolve is Lookup with default fallback: unbound keys yield the built-in
// default for that key, or the empty string for keys that have none.
func (s *Store) Resolve(root, anchor, key string) (string, error) {
	v, ok, err := s.Lookup(root, anchor, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return defaults[key], nil
	}
	return v, nil
}

// Default returns the built-in default for key, empty when the key has none.
func Default(key string) string {
	return defaults[key]
}
