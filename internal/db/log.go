// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/massimiliano-mantione/radicle-graphql/internal/logging"

func dbLogf(format string, v ...any) {
	logging.Debugf(format, v...)
}
