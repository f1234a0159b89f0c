package migrations

import "embed"

// FS stores the forward-only schema files for each backend, one directory per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
