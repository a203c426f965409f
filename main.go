// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for the radicle-graphql server.
//
// Usage:
//
//	go run . serve [flags]
//	./radicle-graphql serve [flags]
//
// See --help for the full command tree.
package main

import (
	"os"

	"github.com/massimiliano-mantione/radicle-graphql/internal/cli"
	"github.com/massimiliano-mantione/radicle-graphql/internal/logging"
)

// Set at build time using -ldflags, e.g.:
// go build -ldflags "-X main.version=1.2.3"
var (
	version   = "dev"
	gitCommit = "dev"
	buildDate = ""
)

func main() {
	cli.SetVersion(version, gitCommit, buildDate)
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
