package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	migrations "trivia-api/database"
	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers "pgx5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Oracle errors that make a statement a no-op when re-running migrations.
var ignorableOracleErrors = []string{
	"ORA-00955", // name is already used by an existing object
	"ORA-00942", // table or view does not exist
	"ORA-01418", // specified index does not exist
}

// Execer is satisfied by *sql.DB and *sqlx.DB.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// RunMigrations applies (or with down rolls back) the schema for the
// configured driver. Postgres goes through golang-migrate; Oracle uses the
// statement runner over the same embedded files.
func RunMigrations(ctx context.Context, cfg *config.Config, db Execer, down bool) error {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return RunPostgresMigrations(cfg.GetDSN(), down)
	case config.DriverOracle:
		return RunOracleMigrations(ctx, db, migrations.Migrations, migrations.OracleMigrationsDir, down)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

// RunPostgresMigrations runs the embedded Postgres migrations with golang-migrate.
func RunPostgresMigrations(dsn string, down bool) error {
	src, err := iofs.New(migrations.Migrations, migrations.PostgresMigrationsDir)
	if err != nil {
		return fmt.Errorf("could not open migrations source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Get().Warn("failed to close migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	logger.Get().Info("Migrations completed",
		zap.Bool("down", down),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// RunOracleMigrations executes every *.up.sql (or *.down.sql in reverse) file
// in dir. Each file holds exactly one statement.
func RunOracleMigrations(ctx context.Context, db Execer, fsys fs.FS, dir string, down bool) error {
	files, err := MigrationFiles(fsys, dir, down)
	if err != nil {
		return err
	}

	for _, name := range files {
		content, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		stmt := oracleStatement(string(content))
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if isIgnorableOracleError(err) {
				logger.Get().Info("Skipped migration", zap.String("file", name), zap.String("reason", err.Error()))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}

	logger.Get().Info("Migrations completed", zap.Bool("down", down), zap.Int("files", len(files)))
	return nil
}

// MigrationFiles lists the up (ascending) or down (descending) files in dir.
func MigrationFiles(fsys fs.FS, dir string, down bool) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := ".up.sql"
	if down {
		suffix = ".down.sql"
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	if down {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}
	return files, nil
}

// oracleStatement trims the trailing terminator go-ora rejects.
func oracleStatement(content string) string {
	stmt := strings.TrimSpace(content)
	stmt = strings.TrimSuffix(stmt, ";")
	return strings.TrimSpace(stmt)
}

func isIgnorableOracleError(err error) bool {
	msg := err.Error()
	for _, code := range ignorableOracleErrors {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}

// migrateURL switches a postgres:// DSN to the scheme of the pgx/v5 migrate driver.
func migrateURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}
