// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/massimiliano-mantione/radicle-graphql/internal/model"
)

// Argument maps mix literal values (int64, string) with JSON-decoded
// variable values (float64, json.Number), so the coercions below accept
// both shapes.

func asInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, err
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("expected an Int, got %T", v)
}

func asString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a String, got %T", v)
	}
	return s, nil
}

func asTime(v interface{}) (time.Time, error) {
	s, err := asString(v)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid Time value %q: %w", s, err)
	}
	return t, nil
}

// optInt extracts an optional Int argument; absence and explicit null both
// report nil.
func optInt(args map[string]interface{}, name string) *int {
	v, ok := args[name]
	if !ok || v == nil {
		return nil
	}
	n, err := asInt(v)
	if err != nil {
		return nil
	}
	return &n
}

// optString extracts an optional String argument.
func optString(args map[string]interface{}, name string) *string {
	v, ok := args[name]
	if !ok || v == nil {
		return nil
	}
	s, err := asString(v)
	if err != nil {
		return nil
	}
	return &s
}

// reqInt extracts a required Int argument.
func reqInt(args map[string]interface{}, name string) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required argument %q", name)
	}
	return asInt(v)
}

// reqString extracts a required String argument.
func reqString(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument %q", name)
	}
	return asString(v)
}

func isDecodeError(err error) bool {
	var de *model.DecodeError
	return errors.As(err, &de)
}
