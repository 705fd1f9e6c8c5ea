package database

import (
	stdlog "log"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Config describes how to reach the primary database and its optional read replicas.
type Config struct {
	DSN           string
	ReplicaDSNs   []string
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration
}

// Open connects to PostgreSQL and returns the process-wide pool. Reads are
// spread over ReplicaDSNs when any are configured; writes always go to DSN.
func Open(cfg Config) (*gorm.DB, error) {
	return OpenDialector(postgres.New(postgres.Config{
		DSN:                  cfg.DSN,
		PreferSimpleProtocol: true,
	}), cfg)
}

// OpenDialector is Open for an arbitrary gorm dialector.
func OpenDialector(dialector gorm.Dialector, cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         newGormLogger(cfg.SlowThreshold),
	})
	if err != nil {
		return nil, err
	}

	if len(cfg.ReplicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaDSNs))
		for _, dsn := range cfg.ReplicaDSNs {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		if cfg.MaxOpenConns > 0 {
			resolver = resolver.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			resolver = resolver.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if err := db.Use(resolver); err != nil {
			return nil, err
		}
		log.Info().Int("replicas", len(replicas)).Msg("read replicas registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	return db, nil
}

// newGormLogger routes gorm's query log through the global zerolog logger.
func newGormLogger(slowThreshold time.Duration) logger.Interface {
	if slowThreshold <= 0 {
		slowThreshold = time.Second
	}
	return logger.New(
		stdlog.New(log.Logger, "", 0),
		logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
