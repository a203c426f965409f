// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/uptrace/bun"
)

// Bun-level helpers shared by every engine-specific Store. They accept
// bun.IDB so they run equally against a *bun.DB, a pooled bun.Conn or a
// transaction. Column names that collide with SQL keywords (`key`, `by`)
// go through bun.Ident so each dialect quotes them its own way.

// CreateEntityBun inserts an entity row.
func CreateEntityBun(ctx context.Context, idb bun.IDB, e model.Entity) error {
	row := EntityRowFromModel(e)
	_, err := idb.NewInsert().Model(&row).Exec(ctx)
	return MapDBError(err)
}

// GetEntityBun fetches one entity by hash.
func GetEntityBun(ctx context.Context, idb bun.IDB, hash string) (*model.Entity, error) {
	var row EntityRow
	err := idb.NewSelect().Model(&row).Where("hash = ?", hash).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e := row.ToModel()
	return &e, nil
}

// UpdateEntityStatusBun rewrites the status column of one entity.
func UpdateEntityStatusBun(ctx context.Context, idb bun.IDB, hash string, status model.EntityStatus) error {
	res, err := idb.NewUpdate().Model((*EntityRow)(nil)).
		Set("status = ?", status).
		Where("hash = ?", hash).
		Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	return errIfNoRows(res)
}

// DeleteEntityBun removes one entity by hash.
func DeleteEntityBun(ctx context.Context, idb bun.IDB, hash string) error {
	res, err := idb.NewDelete().Model((*EntityRow)(nil)).Where("hash = ?", hash).Exec(ctx)
	if err != nil {
		return err
	}
	return errIfNoRows(res)
}

// CreateKeyBun inserts a key row and returns the assigned id. When k.ID is
// zero the engine assigns the next id; otherwise the given id is used.
func CreateKeyBun(ctx context.Context, idb bun.IDB, k model.Key) (int, error) {
	row := KeyRowFromModel(k)
	_, err := idb.NewInsert().Model(&row).Exec(ctx)
	if err != nil {
		return 0, MapDBError(err)
	}
	return row.ID, nil
}

// GetKeyBun fetches one key by id.
func GetKeyBun(ctx context.Context, idb bun.IDB, id int) (*model.Key, error) {
	var row KeyRow
	err := idb.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	k := row.ToModel()
	return &k, nil
}

// DeleteKeyBun removes one key by id.
func DeleteKeyBun(ctx context.Context, idb bun.IDB, id int) error {
	res, err := idb.NewDelete().Model((*KeyRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return errIfNoRows(res)
}

// CreateDeviceBun inserts a device row.
func CreateDeviceBun(ctx context.Context, idb bun.IDB, d model.Device) error {
	row := DeviceRowFromModel(d)
	_, err := idb.NewInsert().Model(&row).Exec(ctx)
	return MapDBError(err)
}

// GetDeviceBun fetches one device by its key id.
func GetDeviceBun(ctx context.Context, idb bun.IDB, key int) (*model.Device, error) {
	var row DeviceRow
	err := idb.NewSelect().Model(&row).Where("? = ?", bun.Ident("key"), key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d := row.ToModel()
	return &d, nil
}

// DeleteDeviceBun removes one device by its key id.
func DeleteDeviceBun(ctx context.Context, idb bun.IDB, key int) error {
	res, err := idb.NewDelete().Model((*DeviceRow)(nil)).
		Where("? = ?", bun.Ident("key"), key).
		Exec(ctx)
	if err != nil {
		return err
	}
	return errIfNoRows(res)
}

// CreateSignatureBun inserts a signature row. A second row with the same
// (key, hash) tuple maps to ErrDuplicate; rows are never silently merged.
func CreateSignatureBun(ctx context.Context, idb bun.IDB, s model.Signature) error {
	row := SignatureRowFromModel(s)
	_, err := idb.NewInsert().Model(&row).Exec(ctx)
	return MapDBError(err)
}

// GetSignatureBun fetches one signature by its composite key.
func GetSignatureBun(ctx context.Context, idb bun.IDB, key int, hash string) (*model.Signature, error) {
	var row SignatureRow
	err := idb.NewSelect().Model(&row).
		Where("? = ?", bun.Ident("key"), key).
		Where("hash = ?", hash).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s := row.ToModel()
	return &s, nil
}

// DeleteSignatureBun removes one signature by its composite key.
func DeleteSignatureBun(ctx context.Context, idb bun.IDB, key int, hash string) error {
	res, err := idb.NewDelete().Model((*SignatureRow)(nil)).
		Where("? = ?", bun.Ident("key"), key).
		Where("hash = ?", hash).
		Exec(ctx)
	if err != nil {
		return err
	}
	return errIfNoRows(res)
}

// CreateCertifierBun inserts a certifier row.
func CreateCertifierBun(ctx context.Context, idb bun.IDB, c model.Certifier) error {
	row := CertifierRowFromModel(c)
	_, err := idb.NewInsert().Model(&row).Exec(ctx)
	return MapDBError(err)
}

// GetCertifierBun fetches one certifier by its composite key.
func GetCertifierBun(ctx context.Context, idb bun.IDB, certifier, entity string) (*model.Certifier, error) {
	var row CertifierRow
	err := idb.NewSelect().Model(&row).
		Where("certifier = ?", certifier).
		Where("entity = ?", entity).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c := row.ToModel()
	return &c, nil
}

// DeleteCertifierBun removes one certifier by its composite key.
func DeleteCertifierBun(ctx context.Context, idb bun.IDB, certifier, entity string) error {
	res, err := idb.NewDelete().Model((*CertifierRow)(nil)).
		Where("certifier = ?", certifier).
		Where("entity = ?", entity).
		Exec(ctx)
	if err != nil {
		return err
	}
	return errIfNoRows(res)
}

// errIfNoRows maps a zero-row write result to ErrNotFound.
func errIfNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
