// SPDX-License-Identifier: MPL-2.0

// Package project identifies the project enclosing an arbitrary path.
//
// A directory is a project root when its prjfile.cue declares a `project`
// name. Resolution walks upward from the anchor path and stops at the
// nearest such directory; prjfiles that only bind overrides (no project
// field) are passed over, they scope configuration but do not start a
// project.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"prj-cli/pkg/fspath"
	"prj-cli/pkg/prjfile"
)

// ErrNoProject reports that a path is not inside any recognized project.
var ErrNoProject = errors.New("no enclosing project found")

type (
	// Project is an identity plus a root path. The struct is comparable so
	// it can key per-project state such as the test selection cache.
	Project struct {
		// Name is the declared project name.
		Name string
		// Root is the absolute path of the project root directory.
		Root string
	}

	// Resolver locates projects for anchor paths.
	Resolver struct {
		home string
	}
)

// NewResolver creates a Resolver. The home path is threaded through to
// prjfile parsing so root prjfiles may reference the `home` binding.
func NewResolver(home string) *Resolver {
	return &Resolver{home: home}
}

// String returns "name (root)".
func (p Project) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Root)
}

// Resolve finds the project enclosing anchor. The anchor may be a file or a
// directory; it does not need to exist, in which case its directory portion
// is used. Returns ErrNoProject (wrapped) when the walk reaches the
// filesystem root without finding a project-declaring prjfile.
func (r *Resolver) Resolve(anchor string) (Project, error) {
	abs, err := fspath.Abs(anchor)
	if err != nil {
		return Project{}, err
	}

	dir := abs
	if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		if prjfile.Exists(dir) {
			pf, err := prjfile.ParseDir(dir, prjfile.WithHome(r.home))
			if err != nil {
				return Project{}, fmt.Errorf("resolving project at %s: %w", dir, err)
			}
			if name := pf.Project(); name != "" {
				return Project{Name: name, Root: dir}, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Project{}, fmt.Errorf("%w for %s", ErrNoProject, abs)
		}
		dir = parent
	}
}
