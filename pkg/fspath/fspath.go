// SPDX-License-Identifier: MPL-2.0

// Package fspath provides the path composition helpers used by action
// dispatch: resolving a run directory from a project root plus an optional
// relative override, and converting chosen test targets to run-dir-relative
// arguments.
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RunDir composes the absolute working directory for an action.
//
// When override is empty the run directory is the project root itself.
// Otherwise the result is root joined with override. Overrides are accepted
// with or without a trailing separator, and parent-directory traversal is
// passed through untouched: composing paths is this function's whole job,
// sandboxing is the configuration author's.
func RunDir(root, override string) string {
	if override == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(root, override)
}

// RelativeTo converts target to a path relative to base. Both paths must be
// absolute; the result is the exact argument a command run with base as its
// working directory should receive.
func RelativeTo(base, target string) (string, error) {
	if !filepath.IsAbs(base) {
		return "", fmt.Errorf("base path %q is not absolute", base)
	}
	if !filepath.IsAbs(target) {
		return "", fmt.Errorf("target path %q is not absolute", target)
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("relativizing %q against %q: %w", target, base, err)
	}
	return rel, nil
}

// Abs wraps filepath.Abs with a descriptive error.
func Abs(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path for %q: %w", p, err)
	}
	return abs, nil
}

// WithinRoot reports whether p is root itself or lies underneath it. Both
// paths are cleaned before comparison; neither is required to exist.
func WithinRoot(root, p string) bool {
	root = filepath.Clean(root)
	p = filepath.Clean(p)
	if p == root {
		return true
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}
