package migrations

import "embed"

// FS embeds the SQL migration files stored in this directory. The
// golang-migrate library reads them via the iofs driver when applying
// migrations.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the application expects; Migrate moves
// the database to exactly this version.
const Version = 1
