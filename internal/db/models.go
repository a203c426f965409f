// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"time"

	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/uptrace/bun"
)

// The row types below are the static schema declarations: one struct per
// table, column order and primary keys expressed through Bun tags. They are
// the only place that knows how a table is shaped; everything above them
// works with the plain model types.

// EntityRow maps the `entities` table.
type EntityRow struct {
	bun.BaseModel `bun:"table:entities"`
	Hash          string             `bun:"hash,pk"`
	Parent        string             `bun:"parent"`
	Revision      int32              `bun:"revision"`
	Timestamp     time.Time          `bun:"timestamp"`
	Status        model.EntityStatus `bun:"status"`
	Name          string             `bun:"name"`
	Info          sql.NullString     `bun:"info"`
}

// KeyRow maps the `keys` table.
type KeyRow struct {
	bun.BaseModel `bun:"table:keys"`
	ID            int           `bun:"id,pk,autoincrement"`
	Data          string        `bun:"data"`
	Algo          model.KeyAlgo `bun:"algo"`
}

// DeviceRow maps the `devices` table. The primary key doubles as the
// reference to the owning key's id.
type DeviceRow struct {
	bun.BaseModel `bun:"table:devices"`
	Key           int            `bun:"key,pk"`
	Address       sql.NullString `bun:"address"`
}

// SignatureRow maps the `signatures` table; (key, hash) is a composite
// primary key, order-significant.
type SignatureRow struct {
	bun.BaseModel `bun:"table:signatures"`
	Key           int            `bun:"key,pk"`
	Hash          string         `bun:"hash,pk"`
	Data          string         `bun:"data"`
	By            sql.NullString `bun:"by"`
}

// CertifierRow maps the `certifiers` table; (certifier, entity) is a
// composite primary key.
type CertifierRow struct {
	bun.BaseModel `bun:"table:certifiers"`
	Certifier     string `bun:"certifier,pk"`
	Entity        string `bun:"entity,pk"`
}

// --- Mapping helpers (centralized conversions) ---

// ToModel decodes the row into a fresh domain value.
func (r EntityRow) ToModel() model.Entity {
	e := model.Entity{
		Hash:      r.Hash,
		Parent:    r.Parent,
		Revision:  r.Revision,
		Timestamp: r.Timestamp,
		Status:    r.Status,
		Name:      r.Name,
	}
	if r.Info.Valid {
		info := r.Info.String
		e.Info = &info
	}
	return e
}

// EntityRowFromModel encodes a domain value for storage.
func EntityRowFromModel(e model.Entity) EntityRow {
	r := EntityRow{
		Hash:      e.Hash,
		Parent:    e.Parent,
		Revision:  e.Revision,
		Timestamp: e.Timestamp,
		Status:    e.Status,
		Name:      e.Name,
	}
	if e.Info != nil {
		r.Info = sql.NullString{String: *e.Info, Valid: true}
	}
	return r
}

func (r KeyRow) ToModel() model.Key {
	return model.Key{ID: r.ID, Data: r.Data, Algo: r.Algo}
}

func KeyRowFromModel(k model.Key) KeyRow {
	return KeyRow{ID: k.ID, Data: k.Data, Algo: k.Algo}
}

func (r DeviceRow) ToModel() model.Device {
	d := model.Device{Key: r.Key}
	if r.Address.Valid {
		addr := r.Address.String
		d.Address = &addr
	}
	return d
}

func DeviceRowFromModel(d model.Device) DeviceRow {
	r := DeviceRow{Key: d.Key}
	if d.Address != nil {
		r.Address = sql.NullString{String: *d.Address, Valid: true}
	}
	return r
}

func (r SignatureRow) ToModel() model.Signature {
	s := model.Signature{Key: r.Key, Hash: r.Hash, Data: r.Data}
	if r.By.Valid {
		by := r.By.String
		s.By = &by
	}
	return s
}

func SignatureRowFromModel(s model.Signature) SignatureRow {
	r := SignatureRow{Key: s.Key, Hash: s.Hash, Data: s.Data}
	if s.By != nil {
		r.By = sql.NullString{String: *s.By, Valid: true}
	}
	return r
}

func (r CertifierRow) ToModel() model.Certifier {
	return model.Certifier{Certifier: r.Certifier, Entity: r.Entity}
}

func CertifierRowFromModel(c model.Certifier) CertifierRow {
	return CertifierRow{Certifier: c.Certifier, Entity: c.Entity}
}
