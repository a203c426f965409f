// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "testing"

func TestEntityString(t *testing.T) {
	e := Entity{Name: "monadic", Revision: 3}
	if got := e.String(); got != "monadic@3" {
		t.Fatalf("Entity.String() = %q", got)
	}
}

func TestOptionalFieldsDistinguishAbsent(t *testing.T) {
	d := Device{Key: 7}
	if d.Address != nil {
		t.Fatal("zero Device has a non-nil address")
	}
	addr := "seed.example.org"
	d.Address = &addr
	if d.Address == nil || *d.Address != addr {
		t.Fatal("address not carried")
	}
}
