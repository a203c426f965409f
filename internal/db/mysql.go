// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the MySQL implementation of the database store.
package db

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLStore is the MySQL implementation of the Store interface.
type MySQLStore struct {
	bunStore
}

// Maintain runs OPTIMIZE TABLE over every table. Per-table failures are
// remembered and reported after the full pass.
func (s *MySQLStore) Maintain(ctx context.Context) error {
	rows, err := s.bun.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return fmt.Errorf("mysql show tables failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var table string
	var lastErr error
	for rows.Next() {
		if err := rows.Scan(&table); err != nil {
			return fmt.Errorf("mysql read table name failed: %w", err)
		}
		if _, err := s.bun.ExecContext(ctx, fmt.Sprintf("OPTIMIZE TABLE %s", table)); err != nil {
			dbLogf("db: mysql optimize table %s failed: %v", table, err)
			lastErr = err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if lastErr != nil {
		return fmt.Errorf("mysql optimize encountered errors: %w", lastErr)
	}
	return nil
}
