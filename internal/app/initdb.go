package app

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/openshelf/config"
)

// getDatabase opens the postgres handle with a pooled connection set so
// one slow request never blocks unrelated ones. Unique-constraint errors
// are translated so services can map them to Conflict.
func getDatabase(cfg config.DBConfig) *gorm.DB {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		panic(errors.Wrap(err, "open database connection"))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(errors.Wrap(err, "acquire database pool"))
	}
	maxConn := cfg.MaxConn
	if maxConn <= 0 {
		maxConn = 100
	}
	idleConn := cfg.IdleConn
	if idleConn <= 0 {
		idleConn = 10
	}
	sqlDB.SetMaxOpenConns(maxConn)
	sqlDB.SetMaxIdleConns(idleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
