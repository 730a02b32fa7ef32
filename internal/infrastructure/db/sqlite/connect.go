package sqlite

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// pure-Go driver registered by modernc.org/sqlite
const driverName = "sqlite"

const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?" + pragmas
}

// New opens the SQLite database at path. Writes are serialized through a
// single connection.
func New(logger *zap.Logger, path string) (*gorm.DB, error) {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: driverName,
			DSN:        dsn(path),
		}),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Discard,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logger.Info("sqlite opened", zap.String("path", path))

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
