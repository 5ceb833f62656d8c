package repository

import (
	"github.com/pkg/errors"
	"github.com/talkincode/plantstore/internal/domain"
	"gorm.io/gorm"
)

// sqliteTables holds DDL for tables whose ids must never be reused.
// The sqlite dialector maps a primary key id to a plain rowid alias, which
// hands out the id of the last deleted row again, so these are created with
// AUTOINCREMENT before AutoMigrate sees them. Column types match what
// AutoMigrate generates so it leaves the table alone.
var sqliteTables = []string{
	"CREATE TABLE IF NOT EXISTS `plants` (" +
		"`id` integer PRIMARY KEY AUTOINCREMENT," +
		"`name` text NOT NULL," +
		"`image` text NOT NULL," +
		"`price` real NOT NULL," +
		"`created_at` datetime," +
		"`updated_at` datetime)",
}

// Migrate creates or updates the schema of every table in domain.Tables.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		for _, ddl := range sqliteTables {
			if err := db.Exec(ddl).Error; err != nil {
				return errors.Wrap(err, "create sqlite table")
			}
		}
	}
	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
