package migrations

import "embed"

// FS embeds the Postgres schema migrations.
//
//go:embed *.sql
var FS embed.FS
