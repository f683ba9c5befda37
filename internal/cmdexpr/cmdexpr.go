// SPDX-License-Identifier: MPL-2.0

// Package cmdexpr evaluates configured command values into concrete command
// strings.
//
// The expression language is deliberately closed and total: string literals,
// quoting, and a leading-tilde home expansion. Together with the CUE-level
// concatenation evaluated at scope-file load, that covers commands built from
// computed paths without ever reaching arbitrary code. Dynamic shell
// expansions — command substitution, parameter expansion, process
// substitution, arithmetic — are rejected as malformed, not evaluated.
// Evaluation runs at dispatch time, so the same expression may yield
// different strings in different environments.
package cmdexpr

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Error reports a malformed command expression.
type Error struct {
	// Expr is the offending expression as configured.
	Expr string
	// Cause describes what made it malformed.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("malformed command expression %q: %v", e.Expr, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Evaluator turns command expressions into final command strings.
type Evaluator struct {
	home string
}

// New creates an Evaluator that expands `~` to home.
func New(home string) *Evaluator {
	return &Evaluator{home: home}
}

// Evaluate parses expr as a single command of literal words, expands any
// leading-tilde home shorthand, and returns the resulting command string with
// argument boundaries preserved. Anything outside the closed grammar returns
// an *Error.
func (e *Evaluator) Evaluate(expr string) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", &Error{Expr: expr, Cause: fmt.Errorf("empty expression")}
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(expr), "")
	if err != nil {
		return "", &Error{Expr: expr, Cause: err}
	}
	if len(file.Stmts) != 1 {
		return "", &Error{Expr: expr, Cause: fmt.Errorf("must be a single command")}
	}

	stmt := file.Stmts[0]
	if stmt.Negated || stmt.Background || stmt.Coprocess || len(stmt.Redirs) > 0 {
		return "", &Error{Expr: expr, Cause: fmt.Errorf("redirections and job control are not allowed")}
	}
	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok {
		return "", &Error{Expr: expr, Cause: fmt.Errorf("compound commands are not allowed")}
	}
	if len(call.Assigns) > 0 {
		return "", &Error{Expr: expr, Cause: fmt.Errorf("variable assignments are not allowed")}
	}
	if err := checkClosed(call); err != nil {
		return "", &Error{Expr: expr, Cause: err}
	}

	cfg := &expand.Config{Env: expand.ListEnviron("HOME=" + e.home)}
	fields, err := expand.Fields(cfg, call.Args...)
	if err != nil {
		return "", &Error{Expr: expr, Cause: err}
	}

	quoted := make([]string, len(fields))
	for i, field := range fields {
		q, err := syntax.Quote(field, syntax.LangBash)
		if err != nil {
			return "", &Error{Expr: expr, Cause: err}
		}
		quoted[i] = q
	}

	return strings.Join(quoted, " "), nil
}

// checkClosed rejects every word part that would make evaluation dynamic.
func checkClosed(call *syntax.CallExpr) error {
	var found error
	syntax.Walk(call, func(node syntax.Node) bool {
		if found != nil {
			return false
		}
		switch node.(type) {
		case *syntax.CmdSubst:
			found = fmt.Errorf("command substitution is not allowed")
		case *syntax.ParamExp:
			found = fmt.Errorf("parameter expansion is not allowed")
		case *syntax.ArithmExp:
			found = fmt.Errorf("arithmetic expansion is not allowed")
		case *syntax.ProcSubst:
			found = fmt.Errorf("process substitution is not allowed")
		case *syntax.ExtGlob:
			found = fmt.Errorf("extended globs are not allowed")
		}
		return found == nil
	})
	if found != nil {
		return found
	}

	// Unquoted glob metacharacters survive field expansion as literals and
	// would be re-expanded by the executing shell. Only top-level word parts
	// are unquoted; quoted segments keep them literal all the way through.
	for _, word := range call.Args {
		for _, part := range word.Parts {
			if lit, ok := part.(*syntax.Lit); ok && strings.ContainsAny(lit.Value, "*?[") {
				return fmt.Errorf("glob patterns are not allowed")
			}
		}
	}
	return nil
}
