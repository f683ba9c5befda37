// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"path/filepath"
	"testing"

	"prj-cli/pkg/fspath"
)

func TestRunDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		root     string
		override string
		want     string
	}{
		{name: "no override yields root", root: "/proj", override: "", want: "/proj"},
		{name: "simple override", root: "/proj", override: "src", want: "/proj/src"},
		{name: "override with trailing separator", root: "/proj", override: "src/", want: "/proj/src"},
		{name: "root with trailing separator", root: "/proj/", override: "src", want: "/proj/src"},
		{name: "nested override", root: "/proj", override: "build/debug", want: "/proj/build/debug"},
		{name: "parent traversal passes through", root: "/proj", override: "../other", want: "/other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fspath.RunDir(tt.root, tt.override)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("RunDir(%q, %q) = %q, want %q", tt.root, tt.override, got, tt.want)
			}
		})
	}
}

func TestRelativeTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    string
		target  string
		want    string
		wantErr bool
	}{
		{name: "sibling directory", base: "/proj/src", target: "/proj/tests/foo.t", want: "../tests/foo.t"},
		{name: "target under base", base: "/proj", target: "/proj/tests/foo.t", want: "tests/foo.t"},
		{name: "target equals base", base: "/proj", target: "/proj", want: "."},
		{name: "relative base rejected", base: "proj", target: "/proj/x", wantErr: true},
		{name: "relative target rejected", base: "/proj", target: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fspath.RelativeTo(filepath.FromSlash(tt.base), filepath.FromSlash(tt.target))
			if (err != nil) != tt.wantErr {
				t.Fatalf("RelativeTo(%q, %q) error = %v, wantErr %v", tt.base, tt.target, err, tt.wantErr)
			}
			if err == nil && got != filepath.FromSlash(tt.want) {
				t.Errorf("RelativeTo(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
			}
		})
	}
}

func TestWithinRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root string
		p    string
		want bool
	}{
		{name: "root itself", root: "/proj", p: "/proj", want: true},
		{name: "direct child", root: "/proj", p: "/proj/src", want: true},
		{name: "deep descendant", root: "/proj", p: "/proj/a/b/c", want: true},
		{name: "sibling with shared prefix", root: "/proj", p: "/project", want: false},
		{name: "outside", root: "/proj", p: "/other", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fspath.WithinRoot(filepath.FromSlash(tt.root), filepath.FromSlash(tt.p)); got != tt.want {
				t.Errorf("WithinRoot(%q, %q) = %v, want %v", tt.root, tt.p, got, tt.want)
			}
		})
	}
}
