// Package unfollower embeds the schema migrations shared by the migrate
// command and the storage backends.
package unfollower

import "embed"

// Migrations holds migrations/postgres and migrations/sqlite.
//
//go:embed migrations
var Migrations embed.FS
