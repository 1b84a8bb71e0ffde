package migrations

import "embed"

// FS holds the SQL migrations applied at startup when the postgres backend
// is selected.
//
//go:embed *.sql
var FS embed.FS
