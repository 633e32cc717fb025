// Package migrations embeds SQL migration files.
package migrations

import "embed"

// FS contiene las migraciones de la base de identidades.
//
//go:embed *.sql
var FS embed.FS
