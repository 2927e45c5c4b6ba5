// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files, one directory per dialect
// (mysql, postgres, sqlite). Files are applied in lexical order.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS
