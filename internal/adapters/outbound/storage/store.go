// Package storage persists floors and products in a local SQLite database
// through gorm and serves live queries over them.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abdidvp/rackmap/internal/domain"
)

var _ domain.InventoryStore = (*Store)(nil)

// Store implements domain.InventoryStore on SQLite.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
	hub *hub
}

// Open connects to the SQLite file at path, creating it and its directory if
// needed, and migrates the schema. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: gormlogger.New(gormWriter{log.Sugar()}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// SQLite serializes writers; one connection also keeps ":memory:" alive.
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&floorRecord{}, &productRecord{}, &palletRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating database %s: %w", path, err)
	}

	log.Debug("database opened", zap.String("path", path))

	return &Store{db: db, log: log, hub: newHub()}, nil
}

// Close ends all live queries and closes the database.
func (s *Store) Close() error {
	s.hub.close()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reset deletes every product and then every floor in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&productRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&floorRecord{}).Error
	})
	if err != nil {
		return &domain.StorageError{Op: "reset warehouse", Err: err}
	}
	s.hub.publish(productsTable, floorsTable)
	s.log.Info("warehouse reset")
	return nil
}

// gormWriter routes gorm's own log lines into zap.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}
