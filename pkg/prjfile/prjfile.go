// SPDX-License-Identifier: MPL-2.0

// Package prjfile parses prjfile.cue scope files.
//
// A prjfile binds configuration values for the directory it lives in and
// everything beneath it (until a deeper prjfile overrides a key). Values are
// CUE expressions evaluated when the file is parsed, which happens fresh on
// every action invocation — so a command built from the injected `home`
// binding reflects the environment at dispatch time, not at edit time.
package prjfile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"prj-cli/internal/cueutil"
)

// FileName is the scope file name looked up in each directory.
const FileName = "prjfile.cue"

// Recognized configuration keys. These names are the wire format shared with
// existing configuration files and must not drift.
const (
	KeyProject = "project"

	KeyConfigureCmd     = "configure-cmd"
	KeyCompileCmd       = "compile-cmd"
	KeyInstallCmd       = "install-cmd"
	KeyTestCmd          = "test-cmd"
	KeyTestUpdateCmd    = "test-update-cmd"
	KeyConfigureCmdDir  = "configure-cmd-directory"
	KeyCompileCmdDir    = "compile-cmd-directory"
	KeyInstallCmdDir    = "install-cmd-directory"
	KeyTestCmdDir       = "test-cmd-directory"
	KeyTestUpdateCmdDir = "test-update-cmd-directory"
	KeyTestFilesDir     = "test-files-directory"
)

//go:embed prjfile_schema.cue
var prjfileSchema string

type (
	// Prjfile is one parsed scope file.
	Prjfile struct {
		// FilePath is the absolute path the file was read from.
		FilePath string

		values map[string]string
	}

	// Option configures parsing.
	Option func(*parseOptions)

	parseOptions struct {
		home string
	}
)

// WithHome predeclares the `home` binding referenced by command expressions.
func WithHome(home string) Option {
	return func(o *parseOptions) { o.home = home }
}

// Exists reports whether dir contains a prjfile.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}

// ParseDir reads and parses the prjfile in dir.
func ParseDir(dir string, opts ...Option) (*Prjfile, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prjfile at %s: %w", path, err)
	}
	return ParseBytes(data, path, opts...)
}

// ParseBytes parses prjfile content. The path is used for error messages and
// recorded as FilePath.
func ParseBytes(data []byte, path string, opts ...Option) (*Prjfile, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	cueOpts := []cueutil.Option{cueutil.WithFilename(path)}
	if o.home != "" {
		cueOpts = append(cueOpts, cueutil.WithScope(map[string]string{"home": o.home}))
	}

	result, err := cueutil.ParseAndDecode[map[string]string](prjfileSchema, data, "#Prjfile", cueOpts...)
	if err != nil {
		return nil, err
	}

	values := *result
	if values == nil {
		values = map[string]string{}
	}

	return &Prjfile{FilePath: path, values: values}, nil
}

// Project returns the declared project name, empty when this scope file does
// not mark a project root.
func (p *Prjfile) Project() string {
	return p.values[KeyProject]
}

// Lookup returns the value bound to key in this scope, if any.
func (p *Prjfile) Lookup(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}
