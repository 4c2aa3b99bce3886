// Package migrations embeds the schema files applied by the SQLite
// state store on open.
package migrations

import "embed"

// FS holds the numbered migration files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
