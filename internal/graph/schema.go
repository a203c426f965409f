// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package graph

import (
	"errors"
	"fmt"

	"github.com/massimiliano-mantione/radicle-graphql/internal/db"
	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/uptrace/bun"
	"github.com/vektah/gqlparser/v2/ast"
)

// Schema is the root read surface composing the closed set of entity
// types into one addressable namespace. Each entity type contributes a
// listing loader and a by-key batch loader; adding a type is additive and
// does not touch existing loaders.
type Schema struct {
	reverse ReverseLookup
}

// Option configures a Schema.
type Option func(*Schema)

// WithReverseLookup enables the to-many edges through the given
// implementation. Left unset, those edges stay disabled.
func WithReverseLookup(r ReverseLookup) Option {
	return func(s *Schema) { s.reverse = r }
}

// NewSchema returns the root surface over all five entity types.
func NewSchema(opts ...Option) *Schema {
	s := &Schema{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EntityFilter narrows an entity listing by key columns.
type EntityFilter struct{ Hash *string }

// KeyFilter narrows a key listing.
type KeyFilter struct{ ID *int }

// DeviceFilter narrows a device listing.
type DeviceFilter struct{ Key *int }

// SignatureFilter narrows a signature listing; Key and Hash combine.
type SignatureFilter struct {
	Key  *int
	Hash *string
}

// CertifierFilter narrows a certifier listing.
type CertifierFilter struct {
	Certifier *string
	Entity    *string
}

// load builds the base query for one entity type, runs it through the
// modifier hook and executes the (possibly narrowed) result. All reads of
// this package funnel through here, which is what makes the hook the sole
// authorization seam.
func (s *Schema) load(rctx *Context, typ EntityType, sel ast.SelectionSet, dest any, narrow func(*bun.SelectQuery) *bun.SelectQuery) error {
	q := rctx.Conn().NewSelect().Model(dest)
	if narrow != nil {
		q = narrow(q)
	}
	q, err := rctx.Modifier().ModifyQuery(rctx, typ, sel, q)
	if err != nil {
		var ae *AccessError
		if errors.As(err, &ae) {
			return err
		}
		return &AccessError{Type: typ, Err: err}
	}
	if err := q.Scan(rctx.Context()); err != nil {
		return fmt.Errorf("graph: loading %s rows: %w", typ, err)
	}
	return nil
}

// Entities lists entities, optionally narrowed to one hash.
func (s *Schema) Entities(rctx *Context, sel ast.SelectionSet, f EntityFilter) ([]model.Entity, error) {
	var rows []db.EntityRow
	err := s.load(rctx, TypeEntity, sel, &rows, func(q *bun.SelectQuery) *bun.SelectQuery {
		if f.Hash != nil {
			q = q.Where("hash = ?", *f.Hash)
		}
		return q.Order("hash ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.Entity, len(rows))
	for i, r := range rows {
		out[i] = r.ToModel()
	}
	return out, nil
}

// EntitiesByHash batch-fetches entities keyed by hash. An empty key set
// performs no storage round-trip.
func (s *Schema) EntitiesByHash(rctx *Context, sel ast.SelectionSet, hashes []string) (map[string]model.Entity, error) {
	out := make(map[string]model.Entity, len(hashes))
	if len(hashes) == 0 {
		return out, nil
	}
	var rows []db.EntityRow
	err := s.load(rctx, TypeEntity, sel, &rows, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("hash IN (?)", bun.In(hashes))
	})
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.Hash] = r.ToModel()
	}
	return out, nil
}

// Keys lists keys, optionally narrowed to one id.
func (s *Schema) Keys(rctx *Context, sel ast.SelectionSet, f KeyFilter) ([]model.Key, error) {
	var rows []db.KeyRow
	err := s.load(rctx, TypeKey, sel, &rows, func(q *bun.SelectQuery) *bun.SelectQuery {
		if f.ID != nil {
			q = q.Where("id = ?", *f.ID)
		}
		return q.Order("id ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.Key, len(rows))
	for i, r := range rows {
		out[i] = r.ToModel()
	}
	return out, nil
}

// KeysByID batch-fetches keys keyed by id. An empty key set performs no
// storage round-trip.
func (s *Schema) KeysByID(rctx *Context, sel ast.SelectionSet, ids []int) (map[int]model.Key, error) {
	out := make(map[int]model.Key, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []db.KeyRow
	err := s.load(rctx, TypeKey, sel, &rows, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id IN (?)", bun.In(ids))
	})
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.ToModel()
	}
	return out, nil
}

// Devices lists devices, optionally narrowed to one key id.
func (s *Schema) Devices(rctx *Context, sel ast.SelectionSet, f DeviceFilter) ([]model.Device, error) {
	var rows []db.DeviceRow
	err := s.load(rctx, TypeDevice, sel, &rows, func(q *bun.SelectQuery) *bun.SelectQuery {
		if f.Key != nil {
			q = q.Where("? = ?", bun.Ident("key"), *f.Key)
		}
		return q.Order("key ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.Device, len(rows))
	for i, r := range rows {
		out[i] = r.ToModel()
	}
	return out, nil
}

// Signatures lists signatures, optionally narrowed by key id and hash.
func (s *Schema) Signatures(rctx *Context, sel ast.SelectionSet, f SignatureFilter) ([]model.Signature, error) {
	var rows []db.SignatureRow
	err := s.load(rctx, TypeSignature, sel, &rows, func(q *bun.SelectQuery) *bun.SelectQuery {
		if f.Key != nil {
			q = q.Where("? = ?", bun.Ident("key"), *f.Key)
		}
		if f.Hash != nil {
			q = q.Where("hash = ?", *f.Hash)
		}
		return q.Order("key ASC").Order("hash ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.Signature, len(rows))
	for i, r := range rows {
		out[i] = r.ToModel()
	}
	return out, nil
}

// Certifiers lists certifiers, optionally narrowed by either side of the
// composite key.
func (s *Schema) Certifiers(rctx *Context, sel ast.SelectionSet, f CertifierFilter) ([]model.Certifier, error) {
	var rows []db.CertifierRow
	err := s.load(rctx, TypeCertifier, sel, &rows, func(q *bun.SelectQuery) *bun.SelectQuery {
		if f.Certifier != nil {
			q = q.Where("certifier = ?", *f.Certifier)
		}
		if f.Entity != nil {
			q = q.Where("entity = ?", *f.Entity)
		}
		return q.Order("certifier ASC").Order("entity ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.Certifier, len(rows))
	for i, r := range rows {
		out[i] = r.ToModel()
	}
	return out, nil
}
