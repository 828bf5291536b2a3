// Package migrations embeds the goose migrations of the SQL slot backends.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
