// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// Package api serves the registry schema over HTTP. It parses and
// validates GraphQL operations against the embedded SDL, hands reads to
// the graph layer (one request context, one pooled connection) and writes
// to the store.
package api // import "github.com/massimiliano-mantione/radicle-graphql/internal/api"

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/massimiliano-mantione/radicle-graphql/internal/db"
	"github.com/massimiliano-mantione/radicle-graphql/internal/graph"
	"github.com/massimiliano-mantione/radicle-graphql/internal/logging"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

//go:embed schema.graphql
var schemaSDL string

// gqlSchema is the compiled SDL every inbound operation validates against.
var gqlSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})

// Server is the GraphQL HTTP endpoint.
type Server struct {
	store  db.Store
	schema *graph.Schema
	mod    graph.Modifier
}

// NewServer wires the endpoint. A nil modifier keeps the default
// allow-by-default policy.
func NewServer(store db.Store, schema *graph.Schema, mod graph.Modifier) *Server {
	return &Server{store: store, schema: schema, mod: mod}
}

// Handler returns the route table for the endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// graphQLRequest is the standard POST body shape.
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// graphQLResponse is the standard response envelope.
type graphQLResponse struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors gqlerror.List          `json:"errors,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, graphQLResponse{Errors: gqlerror.List{gqlerror.Errorf("invalid request body: %v", err)}})
		return
	}

	doc, listErr := gqlparser.LoadQuery(gqlSchema, req.Query)
	if listErr != nil {
		writeResponse(w, graphQLResponse{Errors: listErr})
		return
	}

	op := pickOperation(doc, req.OperationName)
	if op == nil {
		writeResponse(w, graphQLResponse{Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", req.OperationName)}})
		return
	}

	vars, varErr := validator.VariableValues(gqlSchema, op, req.Variables)
	if varErr != nil {
		writeResponse(w, graphQLResponse{Errors: gqlerror.List{gqlerror.WrapPath(nil, varErr)}})
		return
	}

	resp := s.execute(r, op, vars)
	writeResponse(w, resp)
}

// execute runs one validated operation. Reads get a fresh request context
// owning one pooled connection, released on every exit path.
func (s *Server) execute(r *http.Request, op *ast.OperationDefinition, vars map[string]interface{}) graphQLResponse {
	switch op.Operation {
	case ast.Query:
		rctx, err := graph.NewContext(r.Context(), s.store.Bun(), s.mod)
		if err != nil {
			logging.Errorf("api: acquiring request context: %v", err)
			return graphQLResponse{Errors: gqlerror.List{gqlerror.Errorf("storage unavailable")}}
		}
		defer func() { _ = rctx.Close() }()
		return s.execQuery(rctx, op.SelectionSet, vars)
	case ast.Mutation:
		return s.execMutation(r.Context(), op.SelectionSet, vars)
	default:
		return graphQLResponse{Errors: gqlerror.List{gqlerror.Errorf("unsupported operation %q", op.Operation)}}
	}
}

// pickOperation selects by name, or the sole operation when unnamed.
func pickOperation(doc *ast.QueryDocument, name string) *ast.OperationDefinition {
	if name == "" {
		if len(doc.Operations) == 1 {
			return doc.Operations[0]
		}
		return nil
	}
	for _, op := range doc.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

func writeResponse(w http.ResponseWriter, resp graphQLResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Errorf("api: writing response: %v", err)
	}
}

// fieldError turns a resolver failure into a GraphQL error with a stable
// machine-readable code.
func fieldError(path string, err error) *gqlerror.Error {
	code := "INTERNAL"
	var accessErr *graph.AccessError
	var refErr *graph.RefError
	switch {
	case errors.As(err, &accessErr):
		code = "ACCESS_DENIED"
	case errors.As(err, &refErr):
		code = "INTEGRITY_VIOLATION"
	case isDecodeError(err):
		code = "DECODE_ERROR"
	case errors.Is(err, db.ErrDuplicate):
		code = "DUPLICATE"
	case errors.Is(err, db.ErrNotFound):
		code = "NOT_FOUND"
	}
	gerr := gqlerror.Errorf("%s: %v", path, err)
	gerr.Extensions = map[string]interface{}{"code": code}
	return gerr
}
