package database

import (
	"context"
	"fmt"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
)

const (
	PgxDriverName    = "pgx"
	OracleDriverName = "oracle"
)

// DriverName maps the configured db.driver to the database/sql driver name.
func DriverName(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return PgxDriverName, nil
	case config.DriverOracle:
		return OracleDriverName, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewSQLXDB opens and pings the configured database.
func NewSQLXDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driverName, err := DriverName(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DB.Driver, err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DB.Driver, err)
	}

	logger.Get().Info("Connected to database",
		zap.String("driver", cfg.DB.Driver),
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port),
		zap.String("name", cfg.DB.DBName),
	)
	return db, nil
}
