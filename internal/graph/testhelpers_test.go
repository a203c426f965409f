// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package graph

import (
	"context"
	"testing"
	"time"

	"github.com/massimiliano-mantione/radicle-graphql/internal/db"
	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/uptrace/bun"
	"github.com/vektah/gqlparser/v2/ast"
)

// newTestStore opens an in-memory sqlite store scoped to the test name.
func newTestStore(t *testing.T) db.Store {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	s, err := db.NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	return s
}

// newTestContext binds a fresh request context over the store's pool. The
// context is closed when the test ends.
func newTestContext(t *testing.T, s db.Store, mod Modifier) *Context {
	t.Helper()
	rctx, err := NewContext(context.Background(), s.Bun(), mod)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	t.Cleanup(func() { _ = rctx.Close() })
	return rctx
}

func seedEntity(t *testing.T, s db.Store, hash string, status model.EntityStatus) {
	t.Helper()
	err := s.CreateEntity(context.Background(), model.Entity{
		Hash:      hash,
		Parent:    "parent-" + hash,
		Revision:  1,
		Timestamp: time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC),
		Status:    status,
		Name:      "entity-" + hash,
	})
	if err != nil {
		t.Fatalf("seeding entity %s: %v", hash, err)
	}
}

func seedKey(t *testing.T, s db.Store, data string, algo model.KeyAlgo) int {
	t.Helper()
	id, err := s.CreateKey(context.Background(), model.Key{Data: data, Algo: algo})
	if err != nil {
		t.Fatalf("seeding key %s: %v", data, err)
	}
	return id
}

// countingModifier wraps another modifier and counts invocations per entity
// type.
type countingModifier struct {
	inner Modifier
	calls map[EntityType]int
}

func newCountingModifier(inner Modifier) *countingModifier {
	if inner == nil {
		inner = Passthrough()
	}
	return &countingModifier{inner: inner, calls: map[EntityType]int{}}
}

func (c *countingModifier) ModifyQuery(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
	c.calls[typ]++
	return c.inner.ModifyQuery(rctx, typ, sel, q)
}

func (c *countingModifier) total() int {
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}
