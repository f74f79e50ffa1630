// database/bootstrap.go
package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agrotrack/entities"
	"agrotrack/pkg/lifecycle"
)

// Memory is the DSN of a private in-memory database.
const Memory = ":memory:"

// OpenSQLite opens (or creates) the database at path and brings the schema up
// to date.
func OpenSQLite(path string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == Memory {
		// every new connection would get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate then repairs legacy culture rows.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&entities.Field{},
		&entities.Culture{},
		&entities.Harvest{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	n, err := normalizeCultureStatuses(db)
	if err != nil {
		return fmt.Errorf("normalize statuses: %w", err)
	}
	if n > 0 {
		log.Warn("normalized legacy culture statuses", zap.Int("rows", n))
	}
	return nil
}

// normalizeCultureStatuses rewrites rows whose status is not a canonical value.
// Case or whitespace variants are folded; empty or unknown values fall back to
// the initial status.
func normalizeCultureStatuses(db *gorm.DB) (int, error) {
	type row struct {
		ID     uint
		Status string
	}
	var rows []row
	if err := db.Raw(`SELECT id, status FROM cultures`).Scan(&rows).Error; err != nil {
		return 0, fmt.Errorf("scan cultures: %w", err)
	}

	fixed := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			st, err := lifecycle.ParseStatus(r.Status)
			if err == nil && string(st) == r.Status {
				continue
			}
			if err != nil {
				st = lifecycle.InitialStatus
			}
			if err := tx.Exec(`UPDATE cultures SET status = ? WHERE id = ?`, string(st), r.ID).Error; err != nil {
				return err
			}
			fixed++
		}
		return nil
	})
	return fixed, err
}
