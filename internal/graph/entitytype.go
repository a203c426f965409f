// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package graph

// EntityType discriminates the closed set of entity types reachable from
// the query root. Access policy dispatches on these constants, not on type
// name strings, so a new entity type is a new explicit case everywhere a
// policy switch exists.
type EntityType uint8

const (
	TypeEntity EntityType = iota
	TypeKey
	TypeDevice
	TypeSignature
	TypeCertifier
)

// AllEntityTypes lists every member of the closed set.
var AllEntityTypes = []EntityType{TypeEntity, TypeKey, TypeDevice, TypeSignature, TypeCertifier}

// String returns the entity type's name.
func (t EntityType) String() string {
	switch t {
	case TypeEntity:
		return "Entity"
	case TypeKey:
		return "Key"
	case TypeDevice:
		return "Device"
	case TypeSignature:
		return "Signature"
	case TypeCertifier:
		return "Certifier"
	}
	return "Unknown"
}
