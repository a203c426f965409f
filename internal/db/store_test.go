// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
)

func testEntity(hash string) model.Entity {
	return model.Entity{
		Hash:      hash,
		Parent:    "parent-" + hash,
		Revision:  1,
		Timestamp: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Status:    model.EntityStatusCurrent,
		Name:      "entity-" + hash,
	}
}

func TestEntityCRUD(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()

		info := "first revision"
		e := testEntity("h1")
		e.Info = &info
		if err := s.CreateEntity(ctx, e); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}

		got, err := s.GetEntity(ctx, "h1")
		if err != nil {
			t.Fatalf("GetEntity failed: %v", err)
		}
		if got.Hash != e.Hash || got.Parent != e.Parent || got.Revision != e.Revision {
			t.Errorf("round-trip mismatch: got %+v want %+v", got, e)
		}
		if got.Status != model.EntityStatusCurrent {
			t.Errorf("status = %v, want CURRENT", got.Status)
		}
		if got.Info == nil || *got.Info != info {
			t.Errorf("info = %v, want %q", got.Info, info)
		}
		if !got.Timestamp.Equal(e.Timestamp) {
			t.Errorf("timestamp = %v, want %v", got.Timestamp, e.Timestamp)
		}

		if err := s.UpdateEntityStatus(ctx, "h1", model.EntityStatusOld); err != nil {
			t.Fatalf("UpdateEntityStatus failed: %v", err)
		}
		got, err = s.GetEntity(ctx, "h1")
		if err != nil {
			t.Fatalf("GetEntity after update failed: %v", err)
		}
		if got.Status != model.EntityStatusOld {
			t.Errorf("status after update = %v, want OLD", got.Status)
		}

		if err := s.DeleteEntity(ctx, "h1"); err != nil {
			t.Fatalf("DeleteEntity failed: %v", err)
		}
		if _, err := s.GetEntity(ctx, "h1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetEntity after delete: got %v, want ErrNotFound", err)
		}
	})
}

func TestEntityOptionalInfoAbsent(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()
		if err := s.CreateEntity(ctx, testEntity("h-noinfo")); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}
		got, err := s.GetEntity(ctx, "h-noinfo")
		if err != nil {
			t.Fatalf("GetEntity failed: %v", err)
		}
		if got.Info != nil {
			t.Errorf("info = %v, want nil", *got.Info)
		}
	})
}

func TestEntityDuplicateHash(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()
		if err := s.CreateEntity(ctx, testEntity("dup")); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}
		if err := s.CreateEntity(ctx, testEntity("dup")); !errors.Is(err, ErrDuplicate) {
			t.Errorf("duplicate CreateEntity: got %v, want ErrDuplicate", err)
		}
	})
}

func TestKeyCRUD(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()

		id, err := s.CreateKey(ctx, model.Key{Data: "key-data", Algo: model.KeyAlgoFoo})
		if err != nil {
			t.Fatalf("CreateKey failed: %v", err)
		}
		if id == 0 {
			t.Fatalf("CreateKey returned zero id")
		}

		got, err := s.GetKey(ctx, id)
		if err != nil {
			t.Fatalf("GetKey failed: %v", err)
		}
		if got.Data != "key-data" || got.Algo != model.KeyAlgoFoo {
			t.Errorf("round-trip mismatch: got %+v", got)
		}

		id2, err := s.CreateKey(ctx, model.Key{Data: "other-data", Algo: model.KeyAlgoBar})
		if err != nil {
			t.Fatalf("second CreateKey failed: %v", err)
		}
		if id2 == id {
			t.Errorf("expected distinct assigned ids, both are %d", id)
		}

		if err := s.DeleteKey(ctx, id); err != nil {
			t.Fatalf("DeleteKey failed: %v", err)
		}
		if _, err := s.GetKey(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetKey after delete: got %v, want ErrNotFound", err)
		}
	})
}

func TestDeviceCRUD(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()

		id, err := s.CreateKey(ctx, model.Key{Data: "dev-key", Algo: model.KeyAlgoBar})
		if err != nil {
			t.Fatalf("CreateKey failed: %v", err)
		}

		addr := "10.0.0.1"
		if err := s.CreateDevice(ctx, model.Device{Key: id, Address: &addr}); err != nil {
			t.Fatalf("CreateDevice failed: %v", err)
		}

		got, err := s.GetDevice(ctx, id)
		if err != nil {
			t.Fatalf("GetDevice failed: %v", err)
		}
		if got.Key != id || got.Address == nil || *got.Address != addr {
			t.Errorf("round-trip mismatch: got %+v", got)
		}

		if err := s.CreateDevice(ctx, model.Device{Key: id}); !errors.Is(err, ErrDuplicate) {
			t.Errorf("duplicate CreateDevice: got %v, want ErrDuplicate", err)
		}

		if err := s.DeleteDevice(ctx, id); err != nil {
			t.Fatalf("DeleteDevice failed: %v", err)
		}
		if err := s.DeleteDevice(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("second DeleteDevice: got %v, want ErrNotFound", err)
		}
	})
}

func TestSignatureCompositeKey(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()

		id, err := s.CreateKey(ctx, model.Key{Data: "sig-key", Algo: model.KeyAlgoFoo})
		if err != nil {
			t.Fatalf("CreateKey failed: %v", err)
		}
		if err := s.CreateEntity(ctx, testEntity("signed")); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}
		if err := s.CreateEntity(ctx, testEntity("actor")); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}

		by := "actor"
		sig := model.Signature{Key: id, Hash: "signed", Data: "sig-bytes", By: &by}
		if err := s.CreateSignature(ctx, sig); err != nil {
			t.Fatalf("CreateSignature failed: %v", err)
		}

		// Same (key, hash) pair must be refused.
		if err := s.CreateSignature(ctx, sig); !errors.Is(err, ErrDuplicate) {
			t.Errorf("duplicate CreateSignature: got %v, want ErrDuplicate", err)
		}

		// Same key against a different entity is a distinct row.
		if err := s.CreateEntity(ctx, testEntity("signed2")); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}
		if err := s.CreateSignature(ctx, model.Signature{Key: id, Hash: "signed2", Data: "more"}); err != nil {
			t.Fatalf("CreateSignature with new hash failed: %v", err)
		}

		got, err := s.GetSignature(ctx, id, "signed")
		if err != nil {
			t.Fatalf("GetSignature failed: %v", err)
		}
		if got.Data != "sig-bytes" || got.By == nil || *got.By != by {
			t.Errorf("round-trip mismatch: got %+v", got)
		}

		got2, err := s.GetSignature(ctx, id, "signed2")
		if err != nil {
			t.Fatalf("GetSignature failed: %v", err)
		}
		if got2.By != nil {
			t.Errorf("by = %v, want nil", *got2.By)
		}

		if err := s.DeleteSignature(ctx, id, "signed"); err != nil {
			t.Fatalf("DeleteSignature failed: %v", err)
		}
		if _, err := s.GetSignature(ctx, id, "signed"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetSignature after delete: got %v, want ErrNotFound", err)
		}
	})
}

func TestCertifierCompositeKey(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()

		for _, h := range []string{"org", "proj", "proj2"} {
			if err := s.CreateEntity(ctx, testEntity(h)); err != nil {
				t.Fatalf("CreateEntity(%s) failed: %v", h, err)
			}
		}

		if err := s.CreateCertifier(ctx, model.Certifier{Certifier: "org", Entity: "proj"}); err != nil {
			t.Fatalf("CreateCertifier failed: %v", err)
		}
		if err := s.CreateCertifier(ctx, model.Certifier{Certifier: "org", Entity: "proj"}); !errors.Is(err, ErrDuplicate) {
			t.Errorf("duplicate CreateCertifier: got %v, want ErrDuplicate", err)
		}
		if err := s.CreateCertifier(ctx, model.Certifier{Certifier: "org", Entity: "proj2"}); err != nil {
			t.Fatalf("CreateCertifier with new entity failed: %v", err)
		}

		got, err := s.GetCertifier(ctx, "org", "proj")
		if err != nil {
			t.Fatalf("GetCertifier failed: %v", err)
		}
		if got.Certifier != "org" || got.Entity != "proj" {
			t.Errorf("round-trip mismatch: got %+v", got)
		}

		if err := s.DeleteCertifier(ctx, "org", "proj"); err != nil {
			t.Fatalf("DeleteCertifier failed: %v", err)
		}
		if err := s.DeleteCertifier(ctx, "org", "proj"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second DeleteCertifier: got %v, want ErrNotFound", err)
		}
	})
}

func TestEnumRoundTripThroughStorage(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()

		for _, algo := range []model.KeyAlgo{model.KeyAlgoFoo, model.KeyAlgoBar} {
			id, err := s.CreateKey(ctx, model.Key{Data: "d-" + algo.String(), Algo: algo})
			if err != nil {
				t.Fatalf("CreateKey(%s) failed: %v", algo, err)
			}
			got, err := s.GetKey(ctx, id)
			if err != nil {
				t.Fatalf("GetKey(%s) failed: %v", algo, err)
			}
			if got.Algo != algo {
				t.Errorf("algo round-trip: got %v, want %v", got.Algo, algo)
			}
		}

		for i, status := range []model.EntityStatus{model.EntityStatusOld, model.EntityStatusCurrent, model.EntityStatusDraft} {
			e := testEntity("enum-" + status.String())
			e.Revision = int32(i)
			e.Status = status
			if err := s.CreateEntity(ctx, e); err != nil {
				t.Fatalf("CreateEntity(%s) failed: %v", status, err)
			}
			got, err := s.GetEntity(ctx, e.Hash)
			if err != nil {
				t.Fatalf("GetEntity(%s) failed: %v", status, err)
			}
			if got.Status != status {
				t.Errorf("status round-trip: got %v, want %v", got.Status, status)
			}
		}
	})
}

// TestCorruptEnumTokenSurfacesDecodeError plants an out-of-range token via
// raw SQL, bypassing the typed codec, and checks the read path reports a
// typed decode failure instead of guessing a member.
func TestCorruptEnumTokenSurfacesDecodeError(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()

		res, err := s.Bun().Exec(`INSERT INTO keys (data, algo) VALUES (?, ?)`, "corrupt", "QUUX")
		if err != nil {
			t.Fatalf("raw insert failed: %v", err)
		}
		id64, err := res.LastInsertId()
		if err != nil {
			t.Fatalf("LastInsertId failed: %v", err)
		}

		_, err = s.GetKey(ctx, int(id64))
		if err == nil {
			t.Fatalf("expected decode failure, got nil error")
		}
		var de *model.DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected *model.DecodeError, got %T: %v", err, err)
		}
		if de.Raw != "QUUX" {
			t.Errorf("DecodeError.Raw = %q, want %q", de.Raw, "QUUX")
		}
	})
}

func TestStoreLifecycleHelpers(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		if !IsInitialized() {
			t.Errorf("IsInitialized = false inside WithTestStore")
		}
		if DefaultStore() != s {
			t.Errorf("DefaultStore did not return the active store")
		}
		if err := s.Maintain(context.Background()); err != nil {
			t.Errorf("Maintain failed: %v", err)
		}
	})
}
