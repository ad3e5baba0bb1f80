// Package migrations holds the SQL schema applied by `estate-hub migrate`.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
