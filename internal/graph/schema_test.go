// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/uptrace/bun"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestEntitiesListingAndFilter(t *testing.T) {
	s := newTestStore(t)
	seedEntity(t, s, "a1", model.EntityStatusCurrent)
	seedEntity(t, s, "b2", model.EntityStatusDraft)
	seedEntity(t, s, "c3", model.EntityStatusOld)

	schema := NewSchema()
	rctx := newTestContext(t, s, nil)

	all, err := schema.Entities(rctx, nil, EntityFilter{})
	if err != nil {
		t.Fatalf("Entities failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	// Ordered by hash.
	if all[0].Hash != "a1" || all[2].Hash != "c3" {
		t.Errorf("unexpected order: %v %v %v", all[0].Hash, all[1].Hash, all[2].Hash)
	}

	hash := "b2"
	one, err := schema.Entities(rctx, nil, EntityFilter{Hash: &hash})
	if err != nil {
		t.Fatalf("filtered Entities failed: %v", err)
	}
	if len(one) != 1 || one[0].Hash != "b2" || one[0].Status != model.EntityStatusDraft {
		t.Errorf("filtered listing = %+v, want the single b2 row", one)
	}

	missing := "nope"
	none, err := schema.Entities(rctx, nil, EntityFilter{Hash: &missing})
	if err != nil {
		t.Fatalf("Entities with absent hash failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty listing, got %d rows", len(none))
	}
}

func TestKeysListingAndBatchLoad(t *testing.T) {
	s := newTestStore(t)
	id1 := seedKey(t, s, "k1", model.KeyAlgoFoo)
	id2 := seedKey(t, s, "k2", model.KeyAlgoBar)
	id3 := seedKey(t, s, "k3", model.KeyAlgoFoo)

	schema := NewSchema()
	rctx := newTestContext(t, s, nil)

	keys, err := schema.Keys(rctx, nil, KeyFilter{})
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("len(keys) = %d, want 3", len(keys))
	}

	batch, err := schema.KeysByID(rctx, nil, []int{id1, id3})
	if err != nil {
		t.Fatalf("KeysByID failed: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("len(batch) = %d, want 2", len(batch))
	}
	if batch[id1].Data != "k1" || batch[id3].Algo != model.KeyAlgoFoo {
		t.Errorf("batch contents wrong: %+v", batch)
	}
	if _, ok := batch[id2]; ok {
		t.Errorf("batch contains unrequested id %d", id2)
	}
}

func TestBatchLoadEmptyKeySetSkipsStorage(t *testing.T) {
	s := newTestStore(t)
	schema := NewSchema()

	counting := newCountingModifier(nil)
	rctx := newTestContext(t, s, counting)

	keys, err := schema.KeysByID(rctx, nil, nil)
	if err != nil {
		t.Fatalf("KeysByID(nil) failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected empty map, got %v", keys)
	}
	ents, err := schema.EntitiesByHash(rctx, nil, []string{})
	if err != nil {
		t.Fatalf("EntitiesByHash(empty) failed: %v", err)
	}
	if len(ents) != 0 {
		t.Errorf("expected empty map, got %v", ents)
	}
	// No query was built, so the hook never fired.
	if counting.total() != 0 {
		t.Errorf("hook fired %d times for empty key sets, want 0", counting.total())
	}
}

func TestSignaturesCombinedFilter(t *testing.T) {
	s := newTestStore(t)
	seedEntity(t, s, "signed-a", model.EntityStatusCurrent)
	seedEntity(t, s, "signed-b", model.EntityStatusCurrent)
	id1 := seedKey(t, s, "k1", model.KeyAlgoFoo)
	id2 := seedKey(t, s, "k2", model.KeyAlgoBar)

	ctx := newTestContext(t, s, nil)
	for _, sig := range []model.Signature{
		{Key: id1, Hash: "signed-a", Data: "s1"},
		{Key: id1, Hash: "signed-b", Data: "s2"},
		{Key: id2, Hash: "signed-a", Data: "s3"},
	} {
		if err := s.CreateSignature(ctx.Context(), sig); err != nil {
			t.Fatalf("seeding signature: %v", err)
		}
	}

	schema := NewSchema()

	all, err := schema.Signatures(ctx, nil, SignatureFilter{})
	if err != nil {
		t.Fatalf("Signatures failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}

	byKey, err := schema.Signatures(ctx, nil, SignatureFilter{Key: &id1})
	if err != nil {
		t.Fatalf("Signatures by key failed: %v", err)
	}
	if len(byKey) != 2 {
		t.Errorf("len(byKey) = %d, want 2", len(byKey))
	}

	hash := "signed-a"
	both, err := schema.Signatures(ctx, nil, SignatureFilter{Key: &id1, Hash: &hash})
	if err != nil {
		t.Fatalf("Signatures by key and hash failed: %v", err)
	}
	if len(both) != 1 || both[0].Data != "s1" {
		t.Errorf("combined filter = %+v, want the single s1 row", both)
	}
}

func TestCertifiersFilter(t *testing.T) {
	s := newTestStore(t)
	for _, h := range []string{"org", "proj1", "proj2"} {
		seedEntity(t, s, h, model.EntityStatusCurrent)
	}
	ctx := newTestContext(t, s, nil)
	for _, c := range []model.Certifier{
		{Certifier: "org", Entity: "proj1"},
		{Certifier: "org", Entity: "proj2"},
		{Certifier: "proj1", Entity: "proj2"},
	} {
		if err := s.CreateCertifier(ctx.Context(), c); err != nil {
			t.Fatalf("seeding certifier: %v", err)
		}
	}

	schema := NewSchema()
	org := "org"
	certs, err := schema.Certifiers(ctx, nil, CertifierFilter{Certifier: &org})
	if err != nil {
		t.Fatalf("Certifiers failed: %v", err)
	}
	if len(certs) != 2 {
		t.Errorf("len(certs) = %d, want 2", len(certs))
	}

	proj2 := "proj2"
	pair, err := schema.Certifiers(ctx, nil, CertifierFilter{Certifier: &org, Entity: &proj2})
	if err != nil {
		t.Fatalf("Certifiers by pair failed: %v", err)
	}
	if len(pair) != 1 || pair[0].Entity != "proj2" {
		t.Errorf("pair filter = %+v, want the single (org, proj2) row", pair)
	}
}

func TestContextIsolation(t *testing.T) {
	s := newTestStore(t)
	seedEntity(t, s, "shared", model.EntityStatusCurrent)
	schema := NewSchema()

	// Two concurrent request contexts each own their connection; a deny
	// policy on one must not leak into the other.
	denyAll := ModifierFunc(func(rctx *Context, typ EntityType, sel ast.SelectionSet, q *bun.SelectQuery) (*bun.SelectQuery, error) {
		return nil, Denyf("nothing is visible")
	})

	restricted := newTestContext(t, s, denyAll)
	open := newTestContext(t, s, nil)

	if _, err := schema.Entities(restricted, nil, EntityFilter{}); err == nil {
		t.Fatalf("restricted context unexpectedly allowed the load")
	}
	got, err := schema.Entities(open, nil, EntityFilter{})
	if err != nil {
		t.Fatalf("open context failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("open context saw %d rows, want 1", len(got))
	}
}
