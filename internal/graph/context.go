// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// Package graph is the typed read surface over the registry tables: per-type
// loaders, reference resolution and the per-request query-modifier hook.
// Every client-facing load funnels through it; the mutation layer and the
// transport are separate collaborators sharing the model types.
package graph // import "github.com/massimiliano-mantione/radicle-graphql/internal/graph"

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Context is the per-request handle. It exclusively owns one connection
// checked out of the shared pool for the lifetime of one request; all
// entity loads of that request execute on it. Contexts are not shared
// between requests.
type Context struct {
	ctx  context.Context
	conn bun.Conn
	mod  Modifier
}

// NewContext checks a connection out of db's pool and binds it to the
// request. The caller must Close the context on every exit path so the
// connection returns to the pool. A nil modifier gets the default
// allow-by-default policy.
func NewContext(ctx context.Context, db *bun.DB, mod Modifier) (*Context, error) {
	if mod == nil {
		mod = Passthrough()
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: acquiring pooled connection: %w", err)
	}
	return &Context{ctx: ctx, conn: conn, mod: mod}, nil
}

// Context returns the request's cancellation context.
func (c *Context) Context() context.Context { return c.ctx }

// Conn borrows the request's connection. Ownership never transfers; the
// handle is valid until Close.
func (c *Context) Conn() bun.IDB { return c.conn }

// Modifier returns the hook applied to every query built on this context.
func (c *Context) Modifier() Modifier { return c.mod }

// Close releases the connection back to the pool.
func (c *Context) Close() error {
	return c.conn.Close()
}
