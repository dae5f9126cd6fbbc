// Package database embeds the SQL migrations so the binaries do not depend on
// the working directory.
package database

import "embed"

//go:embed migrations
var Migrations embed.FS

const (
	PostgresMigrationsDir = "migrations/postgres"
	OracleMigrationsDir   = "migrations/oracle"
)
