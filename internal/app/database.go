package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/plantstore/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// getDatabase opens the configured database and tunes its connection pool.
func getDatabase(cfg *config.AppConfig) (*gorm.DB, error) {
	dbcfg := cfg.Database
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if dbcfg.Debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(dbcfg.Type) {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
			dbcfg.Host, dbcfg.Port, dbcfg.User, dbcfg.Passwd, dbcfg.Name, cfg.System.Location)
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormConfig)
	case "sqlite", "sqlite3":
		dbPath := cfg.SqlitePath()
		if dbPath != ":memory:" && !strings.HasPrefix(dbPath, "file:") {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return nil, errors.Wrap(err, "create sqlite dir")
			}
		}
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
	default:
		return nil, errors.Errorf("unsupported database type %q", dbcfg.Type)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if db.Dialector.Name() == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(dbcfg.MaxConn)
		sqlDB.SetMaxIdleConns(dbcfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}
