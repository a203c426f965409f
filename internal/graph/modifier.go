// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package graph

import (
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/vektah/gqlparser/v2/ast"
)

// Modifier is the sole row-filtering and authorization seam: every entity
// load invokes it once, after the base query is built and before it
// executes. The hook receives the entity-type discriminator, the caller's
// field selection (opaque to this layer) and the not-yet-executed query,
// and returns the query unchanged, a narrowed query, or an error that
// aborts the load for that entity type only.
type Modifier interface {
	ModifyQuery(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error)
}

// ModifierFunc adapts a function to the Modifier interface.
type ModifierFunc func(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error)

func (f ModifierFunc) ModifyQuery(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
	return f(rctx, typ, sel, q)
}

// ErrDenied marks a hook rejection. Check with errors.Is.
var ErrDenied = errors.New("graph: access denied")

// ErrSkip may be returned by a policy rule to abstain and pass evaluation
// to the next rule in the chain.
var ErrSkip = errors.New("graph: skip rule")

// Denyf returns a formatted wrapped deny decision.
func Denyf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, ErrDenied)...)
}

// AccessError is what a hook rejection looks like to the caller: the load
// of one entity type was refused; loads of other types are unaffected.
type AccessError struct {
	Type EntityType
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("graph: access denied for entity type %s: %v", e.Type, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Passthrough is the reference policy: allow every known entity type
// unchanged. The allow default is deliberate and documented; an entity
// type missing from the switch is refused rather than silently granted.
func Passthrough() Modifier {
	return ModifierFunc(func(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
		switch typ {
		case TypeEntity, TypeKey, TypeDevice, TypeSignature, TypeCertifier:
			return q, nil
		}
		return nil, Denyf("no policy for entity type %s", typ)
	})
}

// Rule is one step of a Policy chain. A rule may narrow the query and
// allow it onward (nil error), abstain (ErrSkip), or refuse it (any other
// error).
type Rule interface {
	EvalQuery(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error)

func (f RuleFunc) EvalQuery(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
	return f(rctx, typ, sel, q)
}

// Policy chains rules into a Modifier. Rules run in order; each may narrow
// the query before handing it to the next. A rule returning ErrSkip leaves
// the query as it received it. The end of the chain allows.
type Policy []Rule

func (p Policy) ModifyQuery(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
	for _, rule := range p {
		next, err := rule.EvalQuery(rctx, typ, sel, q)
		if errors.Is(err, ErrSkip) {
			continue
		}
		if err != nil {
			return nil, err
		}
		q = next
	}
	return q, nil
}

// DenyType refuses every load of the given entity types and abstains for
// all others.
func DenyType(types ...EntityType) Rule {
	return RuleFunc(func(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
		for _, t := range types {
			if t == typ {
				return nil, Denyf("loads of %s are refused", typ)
			}
		}
		return nil, ErrSkip
	})
}

// FilterType attaches a narrowing to every load of one entity type (for
// example a row-level visibility predicate) and abstains for all others.
func FilterType(t EntityType, narrow func(*bun.SelectQuery) *bun.SelectQuery) Rule {
	return RuleFunc(func(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
		if typ != t {
			return nil, ErrSkip
		}
		return narrow(q), nil
	})
}
