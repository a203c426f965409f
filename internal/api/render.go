// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"time"

	"github.com/massimiliano-mantione/radicle-graphql/internal/graph"
	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/vektah/gqlparser/v2/ast"
)

// Rendering walks the caller's selection and emits exactly the fields
// asked for. Reference fields are resolved in one batch per target type
// per parent list, so resolving a root field touches each referenced
// entity type once regardless of row count.

func renderEntities(ents []model.Entity, sel ast.SelectionSet) []interface{} {
	out := make([]interface{}, len(ents))
	for i, e := range ents {
		out[i] = renderEntity(e, sel)
	}
	return out
}

func renderEntity(e model.Entity, sel ast.SelectionSet) map[string]interface{} {
	m := map[string]interface{}{}
	for _, f := range selectionFields(sel) {
		key := f.Alias
		if key == "" {
			key = f.Name
		}
		switch f.Name {
		case "__typename":
			m[key] = "Entity"
		case "hash":
			m[key] = e.Hash
		case "parent":
			m[key] = e.Parent
		case "revision":
			m[key] = int(e.Revision)
		case "timestamp":
			m[key] = e.Timestamp.UTC().Format(time.RFC3339)
		case "status":
			m[key] = e.Status.String()
		case "name":
			m[key] = e.Name
		case "info":
			m[key] = strOrNull(e.Info)
		}
	}
	return m
}

func renderKeys(keys []model.Key, sel ast.SelectionSet) []interface{} {
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = renderKey(k, sel)
	}
	return out
}

func renderKey(k model.Key, sel ast.SelectionSet) map[string]interface{} {
	m := map[string]interface{}{}
	for _, f := range selectionFields(sel) {
		key := f.Alias
		if key == "" {
			key = f.Name
		}
		switch f.Name {
		case "__typename":
			m[key] = "Key"
		case "id":
			m[key] = k.ID
		case "data":
			m[key] = k.Data
		case "algo":
			m[key] = k.Algo.String()
		}
	}
	return m
}

func (s *Server) renderDevices(rctx *graph.Context, devs []model.Device, sel ast.SelectionSet) (interface{}, error) {
	keyField := findField(sel, "key")
	var keys map[int]model.Key
	if keyField != nil {
		ids := make([]int, 0, len(devs))
		seen := map[int]bool{}
		for _, d := range devs {
			if !seen[d.Key] {
				seen[d.Key] = true
				ids = append(ids, d.Key)
			}
		}
		var err error
		keys, err = s.schema.KeysByID(rctx, keyField.SelectionSet, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]interface{}, len(devs))
	for i, d := range devs {
		m := map[string]interface{}{}
		for _, f := range selectionFields(sel) {
			key := f.Alias
			if key == "" {
				key = f.Name
			}
			switch f.Name {
			case "__typename":
				m[key] = "Device"
			case "key":
				k, ok := keys[d.Key]
				if !ok {
					return nil, &graph.RefError{From: graph.TypeDevice, To: graph.TypeKey, Key: d.Key}
				}
				m[key] = renderKey(k, f.SelectionSet)
			case "address":
				m[key] = strOrNull(d.Address)
			}
		}
		out[i] = m
	}
	return out, nil
}

func (s *Server) renderSignatures(rctx *graph.Context, sigs []model.Signature, sel ast.SelectionSet) (interface{}, error) {
	keyField := findField(sel, "key")
	hashField := findField(sel, "hash")
	byField := findField(sel, "by")

	var keys map[int]model.Key
	if keyField != nil {
		ids := make([]int, 0, len(sigs))
		seen := map[int]bool{}
		for _, sig := range sigs {
			if !seen[sig.Key] {
				seen[sig.Key] = true
				ids = append(ids, sig.Key)
			}
		}
		var err error
		keys, err = s.schema.KeysByID(rctx, keyField.SelectionSet, ids)
		if err != nil {
			return nil, err
		}
	}

	// One entity batch covers both reference fields; the selection handed
	// to the hook is the signed-entity one when present.
	var entities map[string]model.Entity
	if hashField != nil || byField != nil {
		entitySel := ast.SelectionSet{}
		if hashField != nil {
			entitySel = hashField.SelectionSet
		} else if byField != nil {
			entitySel = byField.SelectionSet
		}
		hashes := make([]string, 0, len(sigs))
		seen := map[string]bool{}
		for _, sig := range sigs {
			if hashField != nil && !seen[sig.Hash] {
				seen[sig.Hash] = true
				hashes = append(hashes, sig.Hash)
			}
			if byField != nil && sig.By != nil && !seen[*sig.By] {
				seen[*sig.By] = true
				hashes = append(hashes, *sig.By)
			}
		}
		var err error
		entities, err = s.schema.EntitiesByHash(rctx, entitySel, hashes)
		if err != nil {
			return nil, err
		}
	}

	out := make([]interface{}, len(sigs))
	for i, sig := range sigs {
		m := map[string]interface{}{}
		for _, f := range selectionFields(sel) {
			key := f.Alias
			if key == "" {
				key = f.Name
			}
			switch f.Name {
			case "__typename":
				m[key] = "Signature"
			case "key":
				k, ok := keys[sig.Key]
				if !ok {
					return nil, &graph.RefError{From: graph.TypeSignature, To: graph.TypeKey, Key: sig.Key}
				}
				m[key] = renderKey(k, f.SelectionSet)
			case "hash":
				e, ok := entities[sig.Hash]
				if !ok {
					return nil, &graph.RefError{From: graph.TypeSignature, To: graph.TypeEntity, Key: sig.Hash}
				}
				m[key] = renderEntity(e, f.SelectionSet)
			case "data":
				m[key] = sig.Data
			case "by":
				if sig.By == nil {
					m[key] = nil
					continue
				}
				e, ok := entities[*sig.By]
				if !ok {
					return nil, &graph.RefError{From: graph.TypeSignature, To: graph.TypeEntity, Key: *sig.By}
				}
				m[key] = renderEntity(e, f.SelectionSet)
			}
		}
		out[i] = m
	}
	return out, nil
}

func (s *Server) renderCertifiers(rctx *graph.Context, certs []model.Certifier, sel ast.SelectionSet) (interface{}, error) {
	certField := findField(sel, "certifier")
	entField := findField(sel, "entity")

	var entities map[string]model.Entity
	if certField != nil || entField != nil {
		entitySel := ast.SelectionSet{}
		if certField != nil {
			entitySel = certField.SelectionSet
		} else if entField != nil {
			entitySel = entField.SelectionSet
		}
		hashes := make([]string, 0, 2*len(certs))
		seen := map[string]bool{}
		for _, c := range certs {
			if certField != nil && !seen[c.Certifier] {
				seen[c.Certifier] = true
				hashes = append(hashes, c.Certifier)
			}
			if entField != nil && !seen[c.Entity] {
				seen[c.Entity] = true
				hashes = append(hashes, c.Entity)
			}
		}
		var err error
		entities, err = s.schema.EntitiesByHash(rctx, entitySel, hashes)
		if err != nil {
			return nil, err
		}
	}

	out := make([]interface{}, len(certs))
	for i, c := range certs {
		m := map[string]interface{}{}
		for _, f := range selectionFields(sel) {
			key := f.Alias
			if key == "" {
				key = f.Name
			}
			switch f.Name {
			case "__typename":
				m[key] = "Certifier"
			case "certifier":
				e, ok := entities[c.Certifier]
				if !ok {
					return nil, &graph.RefError{From: graph.TypeCertifier, To: graph.TypeEntity, Key: c.Certifier}
				}
				m[key] = renderEntity(e, f.SelectionSet)
			case "entity":
				e, ok := entities[c.Entity]
				if !ok {
					return nil, &graph.RefError{From: graph.TypeCertifier, To: graph.TypeEntity, Key: c.Entity}
				}
				m[key] = renderEntity(e, f.SelectionSet)
			}
		}
		out[i] = m
	}
	return out, nil
}

// findField returns the first selected field with the given name, if any.
func findField(sel ast.SelectionSet, name string) *ast.Field {
	for _, f := range selectionFields(sel) {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func strOrNull(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
