// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/uptrace/bun"
)

// Store is the mutation-side surface over the registry tables, one
// implementation per database backend. Reads that answer client queries do
// not go through Store; they run in internal/graph so every load passes the
// query-modifier hook. Store reads exist for mutation round-trips and
// tooling.
type Store interface {
	// Bun exposes the underlying pooled handle. Request contexts check
	// their per-request connection out of it.
	Bun() *bun.DB

	// Maintain runs engine-specific housekeeping (vacuum and friends).
	Maintain(ctx context.Context) error

	// Entity methods
	CreateEntity(ctx context.Context, e model.Entity) error
	GetEntity(ctx context.Context, hash string) (*model.Entity, error)
	UpdateEntityStatus(ctx context.Context, hash string, status model.EntityStatus) error
	DeleteEntity(ctx context.Context, hash string) error

	// Key methods
	CreateKey(ctx context.Context, k model.Key) (int, error)
	GetKey(ctx context.Context, id int) (*model.Key, error)
	DeleteKey(ctx context.Context, id int) error

	// Device methods
	CreateDevice(ctx context.Context, d model.Device) error
	GetDevice(ctx context.Context, key int) (*model.Device, error)
	DeleteDevice(ctx context.Context, key int) error

	// Signature methods
	CreateSignature(ctx context.Context, s model.Signature) error
	GetSignature(ctx context.Context, key int, hash string) (*model.Signature, error)
	DeleteSignature(ctx context.Context, key int, hash string) error

	// Certifier methods
	CreateCertifier(ctx context.Context, c model.Certifier) error
	GetCertifier(ctx context.Context, certifier, entity string) (*model.Certifier, error)
	DeleteCertifier(ctx context.Context, certifier, entity string) error
}

// bunStore carries the delegation shared by every backend; the engine
// types embed it and add their own maintenance behavior.
type bunStore struct {
	bun *bun.DB
}

func (s *bunStore) Bun() *bun.DB { return s.bun }

func (s *bunStore) CreateEntity(ctx context.Context, e model.Entity) error {
	return CreateEntityBun(ctx, s.bun, e)
}

func (s *bunStore) GetEntity(ctx context.Context, hash string) (*model.Entity, error) {
	return GetEntityBun(ctx, s.bun, hash)
}

func (s *bunStore) UpdateEntityStatus(ctx context.Context, hash string, status model.EntityStatus) error {
	return UpdateEntityStatusBun(ctx, s.bun, hash, status)
}

func (s *bunStore) DeleteEntity(ctx context.Context, hash string) error {
	return DeleteEntityBun(ctx, s.bun, hash)
}

func (s *bunStore) CreateKey(ctx context.Context, k model.Key) (int, error) {
	return CreateKeyBun(ctx, s.bun, k)
}

func (s *bunStore) GetKey(ctx context.Context, id int) (*model.Key, error) {
	return GetKeyBun(ctx, s.bun, id)
}

func (s *bunStore) DeleteKey(ctx context.Context, id int) error {
	return DeleteKeyBun(ctx, s.bun, id)
}

func (s *bunStore) CreateDevice(ctx context.Context, d model.Device) error {
	return CreateDeviceBun(ctx, s.bun, d)
}

func (s *bunStore) GetDevice(ctx context.Context, key int) (*model.Device, error) {
	return GetDeviceBun(ctx, s.bun, key)
}

func (s *bunStore) DeleteDevice(ctx context.Context, key int) error {
	return DeleteDeviceBun(ctx, s.bun, key)
}

func (s *bunStore) CreateSignature(ctx context.Context, sig model.Signature) error {
	return CreateSignatureBun(ctx, s.bun, sig)
}

func (s *bunStore) GetSignature(ctx context.Context, key int, hash string) (*model.Signature, error) {
	return GetSignatureBun(ctx, s.bun, key, hash)
}

func (s *bunStore) DeleteSignature(ctx context.Context, key int, hash string) error {
	return DeleteSignatureBun(ctx, s.bun, key, hash)
}

func (s *bunStore) CreateCertifier(ctx context.Context, c model.Certifier) error {
	return CreateCertifierBun(ctx, s.bun, c)
}

func (s *bunStore) GetCertifier(ctx context.Context, certifier, entity string) (*model.Certifier, error) {
	return GetCertifierBun(ctx, s.bun, certifier, entity)
}

func (s *bunStore) DeleteCertifier(ctx context.Context, certifier, entity string) error {
	return DeleteCertifierBun(ctx, s.bun, certifier, entity)
}
