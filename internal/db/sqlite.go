// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the SQLite implementation of the database store.
package db

import (
	"fmt"

	"context"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bunStore
}

// Maintain runs PRAGMA optimize, VACUUM and a WAL checkpoint, then verifies
// integrity. PRAGMA optimize may not be useful in some environments (e.g.
// in-memory databases); its errors are non-fatal.
func (s *SqliteStore) Maintain(ctx context.Context) error {
	if _, err := s.bun.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		dbLogf("db: sqlite optimize failed (ignored): %v", err)
	}
	if _, err := s.bun.ExecContext(ctx, "VACUUM;"); err != nil {
		return fmt.Errorf("sqlite vacuum failed: %w", err)
	}
	// WAL checkpoint; ignore errors if not supported.
	_, _ = s.bun.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")

	var res string
	if row := s.bun.QueryRowContext(ctx, "PRAGMA integrity_check;"); row != nil {
		_ = row.Scan(&res)
		if res != "ok" {
			return fmt.Errorf("sqlite integrity_check failed: %s", res)
		}
	}
	return nil
}
