package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds all Go-registered migrations; each migration file
// registers itself in its init func.
var Migrations = migrate.NewMigrations()
