// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/massimiliano-mantione/radicle-graphql/internal/db"
	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// execMutation resolves the root fields of a mutation operation in order.
// Mutations go straight to the store; the query-modifier hook guards
// reads, not writes.
func (s *Server) execMutation(ctx context.Context, sel ast.SelectionSet, vars map[string]interface{}) graphQLResponse {
	data := map[string]interface{}{}
	var errs gqlerror.List

	for _, f := range selectionFields(sel) {
		key := f.Alias
		if key == "" {
			key = f.Name
		}
		val, err := s.resolveMutationField(ctx, f, vars)
		if err != nil {
			data[key] = nil
			errs = append(errs, fieldError(f.Name, err))
			continue
		}
		data[key] = val
	}

	return graphQLResponse{Data: data, Errors: errs}
}

func (s *Server) resolveMutationField(ctx context.Context, f *ast.Field, vars map[string]interface{}) (interface{}, error) {
	args := f.ArgumentMap(vars)
	switch f.Name {
	case "__typename":
		return "Mutation", nil

	case "createEntity":
		e, err := entityFromInput(args["input"])
		if err != nil {
			return nil, err
		}
		if err := s.store.CreateEntity(ctx, e); err != nil {
			return nil, err
		}
		return renderEntity(e, f.SelectionSet), nil

	case "updateEntityStatus":
		hash, err := reqString(args, "hash")
		if err != nil {
			return nil, err
		}
		rawStatus, err := reqString(args, "status")
		if err != nil {
			return nil, err
		}
		status, ok := model.ParseEntityStatus(rawStatus)
		if !ok {
			return nil, fmt.Errorf("invalid EntityStatus %q", rawStatus)
		}
		if err := s.store.UpdateEntityStatus(ctx, hash, status); err != nil {
			return nil, err
		}
		e, err := s.store.GetEntity(ctx, hash)
		if err != nil {
			return nil, err
		}
		return renderEntity(*e, f.SelectionSet), nil

	case "deleteEntity":
		hash, err := reqString(args, "hash")
		if err != nil {
			return nil, err
		}
		return deleted(s.store.DeleteEntity(ctx, hash))

	case "createKey":
		k, err := keyFromInput(args["input"])
		if err != nil {
			return nil, err
		}
		id, err := s.store.CreateKey(ctx, k)
		if err != nil {
			return nil, err
		}
		k.ID = id
		return renderKey(k, f.SelectionSet), nil

	case "deleteKey":
		id, err := reqInt(args, "id")
		if err != nil {
			return nil, err
		}
		return deleted(s.store.DeleteKey(ctx, id))

	case "createDevice":
		d, err := deviceFromInput(args["input"])
		if err != nil {
			return nil, err
		}
		if err := s.store.CreateDevice(ctx, d); err != nil {
			return nil, err
		}
		// The key reference renders only on read paths; creation returns
		// the scalar shape.
		m := map[string]interface{}{}
		for _, sub := range selectionFields(f.SelectionSet) {
			key := sub.Alias
			if key == "" {
				key = sub.Name
			}
			switch sub.Name {
			case "__typename":
				m[key] = "Device"
			case "address":
				m[key] = strOrNull(d.Address)
			case "key":
				k, err := s.store.GetKey(ctx, d.Key)
				if err != nil {
					return nil, err
				}
				m[key] = renderKey(*k, sub.SelectionSet)
			}
		}
		return m, nil

	case "deleteDevice":
		key, err := reqInt(args, "key")
		if err != nil {
			return nil, err
		}
		return deleted(s.store.DeleteDevice(ctx, key))

	case "createSignature":
		sig, err := signatureFromInput(args["input"])
		if err != nil {
			return nil, err
		}
		if err := s.store.CreateSignature(ctx, sig); err != nil {
			return nil, err
		}
		m := map[string]interface{}{}
		for _, sub := range selectionFields(f.SelectionSet) {
			key := sub.Alias
			if key == "" {
				key = sub.Name
			}
			switch sub.Name {
			case "__typename":
				m[key] = "Signature"
			case "data":
				m[key] = sig.Data
			case "key":
				k, err := s.store.GetKey(ctx, sig.Key)
				if err != nil {
					return nil, err
				}
				m[key] = renderKey(*k, sub.SelectionSet)
			case "hash":
				e, err := s.store.GetEntity(ctx, sig.Hash)
				if err != nil {
					return nil, err
				}
				m[key] = renderEntity(*e, sub.SelectionSet)
			case "by":
				if sig.By == nil {
					m[key] = nil
					continue
				}
				e, err := s.store.GetEntity(ctx, *sig.By)
				if err != nil {
					return nil, err
				}
				m[key] = renderEntity(*e, sub.SelectionSet)
			}
		}
		return m, nil

	case "deleteSignature":
		key, err := reqInt(args, "key")
		if err != nil {
			return nil, err
		}
		hash, err := reqString(args, "hash")
		if err != nil {
			return nil, err
		}
		return deleted(s.store.DeleteSignature(ctx, key, hash))

	case "createCertifier":
		c, err := certifierFromInput(args["input"])
		if err != nil {
			return nil, err
		}
		if err := s.store.CreateCertifier(ctx, c); err != nil {
			return nil, err
		}
		m := map[string]interface{}{}
		for _, sub := range selectionFields(f.SelectionSet) {
			key := sub.Alias
			if key == "" {
				key = sub.Name
			}
			switch sub.Name {
			case "__typename":
				m[key] = "Certifier"
			case "certifier":
				e, err := s.store.GetEntity(ctx, c.Certifier)
				if err != nil {
					return nil, err
				}
				m[key] = renderEntity(*e, sub.SelectionSet)
			case "entity":
				e, err := s.store.GetEntity(ctx, c.Entity)
				if err != nil {
					return nil, err
				}
				m[key] = renderEntity(*e, sub.SelectionSet)
			}
		}
		return m, nil

	case "deleteCertifier":
		certifier, err := reqString(args, "certifier")
		if err != nil {
			return nil, err
		}
		entity, err := reqString(args, "entity")
		if err != nil {
			return nil, err
		}
		return deleted(s.store.DeleteCertifier(ctx, certifier, entity))
	}
	return nil, gqlerror.Errorf("unknown mutation field %q", f.Name)
}

// deleted maps a delete outcome to the Boolean result: true on success,
// false when the addressed row did not exist.
func deleted(err error) (interface{}, error) {
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return nil, err
	}
	return true, nil
}

func inputMap(v interface{}) (map[string]interface{}, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an input object, got %T", v)
	}
	return m, nil
}

func entityFromInput(v interface{}) (model.Entity, error) {
	in, err := inputMap(v)
	if err != nil {
		return model.Entity{}, err
	}
	hash, err := reqString(in, "hash")
	if err != nil {
		return model.Entity{}, err
	}
	parent, err := reqString(in, "parent")
	if err != nil {
		return model.Entity{}, err
	}
	revision, err := reqInt(in, "revision")
	if err != nil {
		return model.Entity{}, err
	}
	ts, err := asTime(in["timestamp"])
	if err != nil {
		return model.Entity{}, err
	}
	rawStatus, err := reqString(in, "status")
	if err != nil {
		return model.Entity{}, err
	}
	status, ok := model.ParseEntityStatus(rawStatus)
	if !ok {
		return model.Entity{}, fmt.Errorf("invalid EntityStatus %q", rawStatus)
	}
	name, err := reqString(in, "name")
	if err != nil {
		return model.Entity{}, err
	}
	return model.Entity{
		Hash:      hash,
		Parent:    parent,
		Revision:  int32(revision),
		Timestamp: ts,
		Status:    status,
		Name:      name,
		Info:      optString(in, "info"),
	}, nil
}

func keyFromInput(v interface{}) (model.Key, error) {
	in, err := inputMap(v)
	if err != nil {
		return model.Key{}, err
	}
	data, err := reqString(in, "data")
	if err != nil {
		return model.Key{}, err
	}
	rawAlgo, err := reqString(in, "algo")
	if err != nil {
		return model.Key{}, err
	}
	algo, ok := model.ParseKeyAlgo(rawAlgo)
	if !ok {
		return model.Key{}, fmt.Errorf("invalid KeyAlgo %q", rawAlgo)
	}
	k := model.Key{Data: data, Algo: algo}
	if id := optInt(in, "id"); id != nil {
		k.ID = *id
	}
	return k, nil
}

func deviceFromInput(v interface{}) (model.Device, error) {
	in, err := inputMap(v)
	if err != nil {
		return model.Device{}, err
	}
	key, err := reqInt(in, "key")
	if err != nil {
		return model.Device{}, err
	}
	return model.Device{Key: key, Address: optString(in, "address")}, nil
}

func signatureFromInput(v interface{}) (model.Signature, error) {
	in, err := inputMap(v)
	if err != nil {
		return model.Signature{}, err
	}
	key, err := reqInt(in, "key")
	if err != nil {
		return model.Signature{}, err
	}
	hash, err := reqString(in, "hash")
	if err != nil {
		return model.Signature{}, err
	}
	data, err := reqString(in, "data")
	if err != nil {
		return model.Signature{}, err
	}
	return model.Signature{Key: key, Hash: hash, Data: data, By: optString(in, "by")}, nil
}

func certifierFromInput(v interface{}) (model.Certifier, error) {
	in, err := inputMap(v)
	if err != nil {
		return model.Certifier{}, err
	}
	certifier, err := reqString(in, "certifier")
	if err != nil {
		return model.Certifier{}, err
	}
	entity, err := reqString(in, "entity")
	if err != nil {
		return model.Certifier{}, err
	}
	return model.Certifier{Certifier: certifier, Entity: entity}, nil
}
