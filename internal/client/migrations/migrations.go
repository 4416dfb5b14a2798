// Package migrations embeds the client database schema; it is applied with
// goose when the database is opened.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
