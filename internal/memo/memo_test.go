// SPDX-License-Identifier: MPL-2.0

package memo_test

import (
	"fmt"
	"sync"
	"testing"

	"prj-cli/internal/memo"
)

type ident struct {
	name string
	root string
}

func TestSelectionCache_RememberRecall(t *testing.T) {
	t.Parallel()

	c := memo.NewSelectionCache[ident]()
	alpha := ident{name: "alpha", root: "/a"}
	beta := ident{name: "beta", root: "/b"}

	if _, ok := c.Recall(alpha); ok {
		t.Error("Recall on fresh cache should report absence")
	}

	c.Remember(alpha, "tests/foo.t")
	c.Remember(beta, "spec/bar_spec.rb")

	if got, ok := c.Recall(alpha); !ok || got != "tests/foo.t" {
		t.Errorf("Recall(alpha) = %q, %v; want %q, true", got, ok, "tests/foo.t")
	}
	if got, ok := c.Recall(beta); !ok || got != "spec/bar_spec.rb" {
		t.Errorf("Recall(beta) = %q, %v; want %q, true", got, ok, "spec/bar_spec.rb")
	}

	// A new selection replaces the old one.
	c.Remember(alpha, "tests/other.t")
	if got, _ := c.Recall(alpha); got != "tests/other.t" {
		t.Errorf("Recall(alpha) after overwrite = %q, want %q", got, "tests/other.t")
	}
}

func TestSelectionCache_IdentityNotRootString(t *testing.T) {
	t.Parallel()

	// Two distinct identities sharing a root path must keep separate entries.
	c := memo.NewSelectionCache[ident]()
	c.Remember(ident{name: "one", root: "/shared"}, "a.t")
	c.Remember(ident{name: "two", root: "/shared"}, "b.t")

	if got, _ := c.Recall(ident{name: "one", root: "/shared"}); got != "a.t" {
		t.Errorf("Recall(one) = %q, want %q", got, "a.t")
	}
}

func TestSelectionCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := memo.NewSelectionCache[int]()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Remember(i, fmt.Sprintf("t/%d.t", i))
			if got, ok := c.Recall(i); !ok || got != fmt.Sprintf("t/%d.t", i) {
				t.Errorf("Recall(%d) = %q, %v", i, got, ok)
			}
		}()
	}
	wg.Wait()
}
