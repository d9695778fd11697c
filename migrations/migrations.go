// Package migrations встраивает goose SQL миграции, общие для
// хранилищ PostgreSQL и SQLite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
