package migrations

import "embed"

// FS holds the schema migrations (users and campaigns tables). They are
// applied by golang-migrate through its iofs source driver.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the application expects.
const Version = 1
