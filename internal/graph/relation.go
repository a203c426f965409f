// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package graph

import (
	"fmt"

	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/vektah/gqlparser/v2/ast"
)

// A reference field stores the key of the target entity, not the entity
// itself; resolution is a primary-key lookup on the request's connection,
// performed on demand. RefError is the typed failure for a required
// reference whose target row is gone.
type RefError struct {
	From EntityType
	To   EntityType
	Key  any
}

func (e *RefError) Error() string {
	return fmt.Sprintf("graph: %s references %s %v which does not exist", e.From, e.To, e.Key)
}

// ReverseLookup is the seam for to-many edges (all rows of one entity type
// whose reference field equals a given key). The registry schema declares
// these edges but does not enable them; a Schema built without a
// ReverseLookup refuses them, and enabling them later does not touch the
// entity declarations.
type ReverseLookup interface {
	// KeysOfEntity lists the keys registered under an entity.
	KeysOfEntity(rctx *Context, sel ast.SelectionSet, hash string) ([]model.Key, error)
	// SignaturesOfEntity lists the signatures over an entity's hash.
	SignaturesOfEntity(rctx *Context, sel ast.SelectionSet, hash string) ([]model.Signature, error)
}

// ErrReverseLookupDisabled reports use of a to-many edge on a schema that
// has none enabled.
var ErrReverseLookupDisabled = fmt.Errorf("graph: reverse (to-many) lookups are not enabled")

// DeviceKey resolves the device's required reference to its key.
func (s *Schema) DeviceKey(rctx *Context, sel ast.SelectionSet, d model.Device) (model.Key, error) {
	return s.keyRef(rctx, sel, TypeDevice, d.Key)
}

// SignatureKey resolves the signature's required reference to its key.
func (s *Schema) SignatureKey(rctx *Context, sel ast.SelectionSet, sig model.Signature) (model.Key, error) {
	return s.keyRef(rctx, sel, TypeSignature, sig.Key)
}

// SignatureEntity resolves the signature's required reference to the
// signed entity.
func (s *Schema) SignatureEntity(rctx *Context, sel ast.SelectionSet, sig model.Signature) (model.Entity, error) {
	return s.entityRef(rctx, sel, TypeSignature, sig.Hash)
}

// SignatureBy resolves the signature's optional reference to the acting
// entity. An absent reference resolves to nil with no storage round-trip.
func (s *Schema) SignatureBy(rctx *Context, sel ast.SelectionSet, sig model.Signature) (*model.Entity, error) {
	if sig.By == nil {
		return nil, nil
	}
	e, err := s.entityRef(rctx, sel, TypeSignature, *sig.By)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CertifierCertifier resolves the certifying entity.
func (s *Schema) CertifierCertifier(rctx *Context, sel ast.SelectionSet, c model.Certifier) (model.Entity, error) {
	return s.entityRef(rctx, sel, TypeCertifier, c.Certifier)
}

// CertifierEntity resolves the certified entity.
func (s *Schema) CertifierEntity(rctx *Context, sel ast.SelectionSet, c model.Certifier) (model.Entity, error) {
	return s.entityRef(rctx, sel, TypeCertifier, c.Entity)
}

// EntityKeys is the (disabled) to-many edge from an entity to its keys.
func (s *Schema) EntityKeys(rctx *Context, sel ast.SelectionSet, e model.Entity) ([]model.Key, error) {
	if s.reverse == nil {
		return nil, ErrReverseLookupDisabled
	}
	return s.reverse.KeysOfEntity(rctx, sel, e.Hash)
}

// EntitySignatures is the (disabled) to-many edge from an entity to the
// signatures over it.
func (s *Schema) EntitySignatures(rctx *Context, sel ast.SelectionSet, e model.Entity) ([]model.Signature, error) {
	if s.reverse == nil {
		return nil, ErrReverseLookupDisabled
	}
	return s.reverse.SignaturesOfEntity(rctx, sel, e.Hash)
}

func (s *Schema) keyRef(rctx *Context, sel ast.SelectionSet, from EntityType, id int) (model.Key, error) {
	keys, err := s.KeysByID(rctx, sel, []int{id})
	if err != nil {
		return model.Key{}, err
	}
	k, ok := keys[id]
	if !ok {
		return model.Key{}, &RefError{From: from, To: TypeKey, Key: id}
	}
	return k, nil
}

func (s *Schema) entityRef(rctx *Context, sel ast.SelectionSet, from EntityType, hash string) (model.Entity, error) {
	entities, err := s.EntitiesByHash(rctx, sel, []string{hash})
	if err != nil {
		return model.Entity{}, err
	}
	e, ok := entities[hash]
	if !ok {
		return model.Entity{}, &RefError{From: from, To: TypeEntity, Key: hash}
	}
	return e, nil
}
