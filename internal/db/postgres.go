// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the PostgreSQL implementation of the database store.
package db

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// PostgresStore is the PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	bunStore
}

// Maintain runs VACUUM ANALYZE.
func (s *PostgresStore) Maintain(ctx context.Context) error {
	if _, err := s.bun.ExecContext(ctx, "VACUUM ANALYZE;"); err != nil {
		return fmt.Errorf("postgres vacuum failed: %w", err)
	}
	return nil
}
