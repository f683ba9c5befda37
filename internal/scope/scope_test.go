// SPDX-License-Identifier: MPL-2.0

package scope_test

import (
	"os"
	"path/filepath"
	"testing"

	"prj-cli/internal/scope"
	"prj-cli/pkg/prjfile"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// layout builds a project with a root prjfile and a src/ override that binds
// only the compile command, leaving every other key inherited.
func layout(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, prjfile.FileName),
		"project: \"demo\"\n"+
			"\"compile-cmd\": \"make all\"\n"+
			"\"compile-cmd-directory\": \"build\"\n"+
			"\"test-cmd\": \"perl t/harness\"\n")
	writeFile(t, filepath.Join(root, "src", prjfile.FileName),
		"\"compile-cmd\": \"make -C .. src-only\"\n")
	writeFile(t, filepath.Join(root, "src", "deep", "x.c"), "")
	return root
}

func TestStore_Lookup(t *testing.T) {
	t.Parallel()

	root := layout(t)
	s := scope.NewStore("")

	tests := []struct {
		name      string
		anchor    string
		key       string
		want      string
		wantBound bool
	}{
		{
			name:      "nearest scope wins",
			anchor:    filepath.Join(root, "src", "deep", "x.c"),
			key:       prjfile.KeyCompileCmd,
			want:      "make -C .. src-only",
			wantBound: true,
		},
		{
			name:      "unbound in subdir falls through to root",
			anchor:    filepath.Join(root, "src", "deep", "x.c"),
			key:       prjfile.KeyCompileCmdDir,
			want:      "build",
			wantBound: true,
		},
		{
			name:      "root anchor sees root scope",
			anchor:    root,
			key:       prjfile.KeyCompileCmd,
			want:      "make all",
			wantBound: true,
		},
		{
			name:      "key bound nowhere",
			anchor:    filepath.Join(root, "src", "deep", "x.c"),
			key:       prjfile.KeyInstallCmd,
			wantBound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, bound, err := s.Lookup(root, tt.anchor, tt.key)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.key, err)
			}
			if bound != tt.wantBound {
				t.Fatalf("Lookup(%q) bound = %v, want %v", tt.key, bound, tt.wantBound)
			}
			if bound && got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestStore_LookupKeysResolveIndependently(t *testing.T) {
	t.Parallel()

	// Two sibling subdirectories with different compile overrides must not
	// contaminate each other.
	root := t.TempDir()
	writeFile(t, filepath.Join(root, prjfile.FileName), "project: \"demo\"\n")
	writeFile(t, filepath.Join(root, "a", prjfile.FileName), "\"compile-cmd\": \"make a\"\n")
	writeFile(t, filepath.Join(root, "b", prjfile.FileName), "\"compile-cmd\": \"make b\"\n")

	s := scope.NewStore("")

	gotA, _, err := s.Lookup(root, filepath.Join(root, "a"), prjfile.KeyCompileCmd)
	if err != nil {
		t.Fatal(err)
	}
	gotB, _, err := s.Lookup(root, filepath.Join(root, "b"), prjfile.KeyCompileCmd)
	if err != nil {
		t.Fatal(err)
	}
	if gotA != "make a" || gotB != "make b" {
		t.Errorf("sibling overrides leaked: a=%q b=%q", gotA, gotB)
	}
}

func TestStore_Resolve(t *testing.T) {
	t.Parallel()

	root := layout(t)
	s := scope.NewStore("")
	anchor := filepath.Join(root, "src", "deep", "x.c")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "bound key", key: prjfile.KeyTestCmd, want: "perl t/harness"},
		{name: "unbound command key gets default", key: prjfile.KeyInstallCmd, want: "make install"},
		{name: "unbound configure key gets default", key: prjfile.KeyConfigureCmd, want: "./configure"},
		{name: "unbound directory key stays empty", key: prjfile.KeyTestCmdDir, want: ""},
		{name: "test-update command has no default", key: prjfile.KeyTestUpdateCmd, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.Resolve(root, anchor, tt.key)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestStore_LookupAnchorOutsideRoot(t *testing.T) {
	t.Parallel()

	root := layout(t)
	s := scope.NewStore("")

	if _, _, err := s.Lookup(root, t.TempDir(), prjfile.KeyCompileCmd); err == nil {
		t.Fatal("anchor outside the project root should be rejected")
	}
}

func TestStore_HomeBindingReachesScopeFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, prjfile.FileName),
		"project: \"demo\"\n\"install-cmd\": \"make install PREFIX=\" + home + \"/.local\"\n")

	s := scope.NewStore("/home/bob")
	got, err := s.Resolve(root, root, prjfile.KeyInstallCmd)
	if err != nil {
		t.Fatal(err)
	}
	if want := "make install PREFIX=/home/bob/.local"; got != want {
		t.Errorf("install-cmd = %q, want %q", got, want)
	}
}
