// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"database/sql/driver"
	"fmt"
)

// DecodeError is returned when a value read from storage does not belong to
// the closed set of an enumerated type. The offending raw value is kept so
// callers can report exactly what the database handed back.
type DecodeError struct {
	Type string // enum type name, e.g. "KeyAlgo"
	Raw  string // the stored value that failed to parse
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("model: invalid %s value %q in storage", e.Type, e.Raw)
}

// KeyAlgo is the algorithm of a registered key. The storage and wire form is
// the literal variant name.
type KeyAlgo string

const (
	KeyAlgoFoo KeyAlgo = "FOO"
	KeyAlgoBar KeyAlgo = "BAR"
)

// ParseKeyAlgo returns the variant matching text exactly. Matching is
// case-sensitive; anything outside the closed set reports false.
func ParseKeyAlgo(text string) (KeyAlgo, bool) {
	switch text {
	case "FOO":
		return KeyAlgoFoo, true
	case "BAR":
		return KeyAlgoBar, true
	}
	return "", false
}

// String returns the canonical variant name.
func (a KeyAlgo) String() string { return string(a) }

// Valid reports whether a is a member of the closed set.
func (a KeyAlgo) Valid() bool {
	_, ok := ParseKeyAlgo(string(a))
	return ok
}

// Value implements driver.Valuer by rendering the canonical name.
func (a KeyAlgo) Value() (driver.Value, error) {
	if !a.Valid() {
		return nil, &DecodeError{Type: "KeyAlgo", Raw: string(a)}
	}
	return string(a), nil
}

// Scan implements sql.Scanner. A stored value outside the closed set is a
// data-integrity violation and surfaces as a *DecodeError, never a panic.
func (a *KeyAlgo) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return fmt.Errorf("model: scanning KeyAlgo: %w", err)
	}
	v, ok := ParseKeyAlgo(text)
	if !ok {
		return &DecodeError{Type: "KeyAlgo", Raw: text}
	}
	*a = v
	return nil
}

// EntityStatus is the soft-versioning status of an entity row.
type EntityStatus string

const (
	EntityStatusOld     EntityStatus = "OLD"
	EntityStatusCurrent EntityStatus = "CURRENT"
	EntityStatusDraft   EntityStatus = "DRAFT"
)

// ParseEntityStatus returns the variant matching text exactly (case-sensitive).
func ParseEntityStatus(text string) (EntityStatus, bool) {
	switch text {
	case "OLD":
		return EntityStatusOld, true
	case "CURRENT":
		return EntityStatusCurrent, true
	case "DRAFT":
		return EntityStatusDraft, true
	}
	return "", false
}

// String returns the canonical variant name.
func (s EntityStatus) String() string { return string(s) }

// Valid reports whether s is a member of the closed set.
func (s EntityStatus) Valid() bool {
	_, ok := ParseEntityStatus(string(s))
	return ok
}

// Value implements driver.Valuer by rendering the canonical name.
func (s EntityStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, &DecodeError{Type: "EntityStatus", Raw: string(s)}
	}
	return string(s), nil
}

// Scan implements sql.Scanner; see KeyAlgo.Scan for the error contract.
func (s *EntityStatus) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return fmt.Errorf("model: scanning EntityStatus: %w", err)
	}
	v, ok := ParseEntityStatus(text)
	if !ok {
		return &DecodeError{Type: "EntityStatus", Raw: text}
	}
	*s = v
	return nil
}

// scanText normalizes the raw driver representation of a text column.
func scanText(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unexpected column type %T", src)
	}
}
