// Package migrations holds the goose migrations of the postgres blob store.
package migrations

import "embed"

// FS contains every *.sql migration at its root.
//
//go:embed *.sql
var FS embed.FS
