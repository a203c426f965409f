// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"github.com/massimiliano-mantione/radicle-graphql/internal/graph"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// execQuery resolves the root fields of a query operation. A failing root
// field nulls only its own slot and contributes an error; sibling fields
// still resolve.
func (s *Server) execQuery(rctx *graph.Context, sel ast.SelectionSet, vars map[string]interface{}) graphQLResponse {
	data := map[string]interface{}{}
	var errs gqlerror.List

	for _, f := range selectionFields(sel) {
		key := f.Alias
		if key == "" {
			key = f.Name
		}
		val, err := s.resolveRootField(rctx, f, vars)
		if err != nil {
			data[key] = nil
			errs = append(errs, fieldError(f.Name, err))
			continue
		}
		data[key] = val
	}

	return graphQLResponse{Data: data, Errors: errs}
}

func (s *Server) resolveRootField(rctx *graph.Context, f *ast.Field, vars map[string]interface{}) (interface{}, error) {
	args := f.ArgumentMap(vars)
	switch f.Name {
	case "__typename":
		return "Query", nil
	case "entities":
		ents, err := s.schema.Entities(rctx, f.SelectionSet, graph.EntityFilter{Hash: optString(args, "hash")})
		if err != nil {
			return nil, err
		}
		return renderEntities(ents, f.SelectionSet), nil
	case "keys":
		keys, err := s.schema.Keys(rctx, f.SelectionSet, graph.KeyFilter{ID: optInt(args, "id")})
		if err != nil {
			return nil, err
		}
		return renderKeys(keys, f.SelectionSet), nil
	case "devices":
		devs, err := s.schema.Devices(rctx, f.SelectionSet, graph.DeviceFilter{Key: optInt(args, "key")})
		if err != nil {
			return nil, err
		}
		return s.renderDevices(rctx, devs, f.SelectionSet)
	case "signatures":
		sigs, err := s.schema.Signatures(rctx, f.SelectionSet, graph.SignatureFilter{
			Key:  optInt(args, "key"),
			Hash: optString(args, "hash"),
		})
		if err != nil {
			return nil, err
		}
		return s.renderSignatures(rctx, sigs, f.SelectionSet)
	case "certifiers":
		certs, err := s.schema.Certifiers(rctx, f.SelectionSet, graph.CertifierFilter{
			Certifier: optString(args, "certifier"),
			Entity:    optString(args, "entity"),
		})
		if err != nil {
			return nil, err
		}
		return s.renderCertifiers(rctx, certs, f.SelectionSet)
	}
	return nil, gqlerror.Errorf("unknown query field %q", f.Name)
}

// selectionFields flattens a selection set into its fields, inlining
// fragments. Fragment definitions are resolved by the validator before
// execution starts.
func selectionFields(sel ast.SelectionSet) []*ast.Field {
	fields := make([]*ast.Field, 0, len(sel))
	for _, s := range sel {
		switch v := s.(type) {
		case *ast.Field:
			fields = append(fields, v)
		case *ast.InlineFragment:
			fields = append(fields, selectionFields(v.SelectionSet)...)
		case *ast.FragmentSpread:
			if v.Definition != nil {
				fields = append(fields, selectionFields(v.Definition.SelectionSet)...)
			}
		}
	}
	return fields
}
