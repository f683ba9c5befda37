// SPDX-License-Identifier: MPL-2.0

// Package cueutil centralizes the CUE parsing flow shared by prjfile and
// app-config loading: compile schema, compile user data, unify, validate,
// decode. Errors are formatted with JSON-path prefixes so users see which
// field of which file is wrong.
package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize caps parsed file size. Scope and config files are tiny;
// anything near this limit is a mistake or an attack.
const DefaultMaxFileSize int64 = 1 << 20

type (
	// Option configures a parse operation.
	Option func(*options)

	options struct {
		filename    string
		scope       map[string]string
		maxFileSize int64
	}
)

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithScope predeclares string bindings that the user data may reference by
// identifier. Scope files use this to receive the `home` binding their
// command expressions concatenate or interpolate.
func WithScope(bindings map[string]string) Option {
	return func(o *options) { o.scope = bindings }
}

// ParseAndDecode performs the three-step CUE parsing flow and decodes the
// unified value into T. The schemaPath names the root definition inside the
// schema source (e.g. "#Prjfile").
func ParseAndDecode[T any](schema string, data []byte, schemaPath string, opts ...Option) (*T, error) {
	o := options{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}
	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if int64(len(data)) > o.maxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), o.maxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	compileOpts := []cue.BuildOption{cue.Filename(filename)}
	if len(o.scope) > 0 {
		var sb strings.Builder
		for field, val := range o.scope {
			fmt.Fprintf(&sb, "%s: %q\n", field, val)
		}
		scopeValue := ctx.CompileString(sb.String())
		if scopeValue.Err() != nil {
			return nil, fmt.Errorf("internal error: failed to compile scope bindings: %w", scopeValue.Err())
		}
		compileOpts = append(compileOpts, cue.Scope(scopeValue))
	}

	userValue := ctx.CompileBytes(data, compileOpts...)
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &result, nil
}

// FormatError formats a CUE error as <file>: <json-path>: <message>,
// collapsing multi-error validation failures into an indented list.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()
		// CUE sometimes repeats the path inside the message itself.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}
		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path (["cmds", "0", "name"]) to JSON-path
// notation ("cmds[0].name").
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}
