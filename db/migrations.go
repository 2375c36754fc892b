// Package db embeds the SQL migrations for the scan journal.
package db

import "embed"

// Migrations holds the goose migration files under "migrations/".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory within Migrations passed to goose.
const MigrationsDir = "migrations"
