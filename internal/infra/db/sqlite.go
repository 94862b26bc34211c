package db

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormZapWriter struct {
	logger *zap.Logger
}

func (w gormZapWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Infof(format, args...)
}

// Open opens (or creates) the sqlite-backed alert collection at path. A file
// that cannot be opened or migrated is moved aside and replaced by a fresh
// empty store: a corrupt collection degrades the service, it never downs it.
func Open(path string, log *zap.Logger) (*gorm.DB, error) {
	db, err := open(path, log)
	if err == nil {
		return db, nil
	}

	backup := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
	log.Error("alert store unreadable, starting empty",
		zap.String("path", path),
		zap.String("moved_to", backup),
		zap.Error(err),
	)
	if renameErr := os.Rename(path, backup); renameErr != nil {
		return nil, fmt.Errorf("open alert store: %w", err)
	}
	return open(path, log)
}

func open(path string, log *zap.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		gormZapWriter{logger: log},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	// sqlite permits a single writer; one connection serializes every
	// read-then-write store operation.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&alertModel{}); err != nil {
		return nil, err
	}

	return db, nil
}
