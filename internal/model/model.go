// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the domain types shared by the read layer and the
// mutation layer: the five registry entities and their enumerated scalars.
// Values are immutable once decoded; every read produces a fresh value.
package model // import "github.com/massimiliano-mantione/radicle-graphql/internal/model"

import (
	"fmt"
	"time"
)

// Entity is a row of the entities table. Multiple rows may share a logical
// identity through Name while differing in Hash/Revision/Status; revision
// monotonicity is enforced by the mutation layer, not here.
type Entity struct {
	Hash      string
	Parent    string
	Revision  int32
	Timestamp time.Time
	Status    EntityStatus
	Name      string
	Info      *string
}

// String returns the name@revision representation.
func (e Entity) String() string {
	return fmt.Sprintf("%s@%d", e.Name, e.Revision)
}

// Key is a registered cryptographic key.
type Key struct {
	ID   int
	Data string
	Algo KeyAlgo
}

// Device references exactly one Key by id; the key's lifecycle is not owned
// by the device. Address may be absent.
type Device struct {
	Key     int
	Address *string
}

// Signature is keyed by the (Key, Hash) pair. Key references a Key row,
// Hash references the signed Entity, and By optionally references the
// acting Entity.
type Signature struct {
	Key  int
	Hash string
	Data string
	By   *string
}

// Certifier is keyed by the (Certifier, Entity) pair; both columns
// reference Entity rows.
type Certifier struct {
	Certifier string
	Entity    string
}
