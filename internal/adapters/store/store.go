package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"wiwbot/internal/core/domain"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// SQL persists endpoint configuration in the wiw_endpoints table.
type SQL struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and applies pending migrations.
func Open(driver, dsn string) (*SQL, error) {
	var db *sql.DB
	var err error

	switch driver {
	case DriverSQLite:
		db, err = openSQLite(dsn)
	case DriverPostgres:
		db, err = openPostgres(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info().Str("driver", driver).Msg("endpoint store initialized")

	return New(db, driver), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, driver string) *SQL {
	return &SQL{db: db, driver: driver}
}

func openSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	return db, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

const (
	selectEndpoint = `SELECT format, url, api_token FROM wiw_endpoints WHERE room = ? LIMIT 1`
	deleteEndpoint = `DELETE FROM wiw_endpoints WHERE room = ?`
	insertEndpoint = `INSERT INTO wiw_endpoints (room, format, url, api_token) VALUES (?, ?, ?, ?)`
)

func (s *SQL) Get(ctx context.Context, room string) (domain.EndpointConfig, error) {
	config := domain.EndpointConfig{Room: room}

	var format string
	err := s.db.QueryRowContext(ctx, s.rebind(selectEndpoint), room).Scan(&format, &config.URL, &config.APIToken)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EndpointConfig{}, domain.ErrEndpointNotFound
	}
	if err != nil {
		return domain.EndpointConfig{}, fmt.Errorf("querying endpoint: %w", err)
	}

	// stored formats are not re-validated here; the service rejects those it cannot report
	config.Format = domain.Format(format)

	return config, nil
}

// Set replaces the room's endpoint in a single transaction.
func (s *SQL) Set(ctx context.Context, config domain.EndpointConfig) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, s.rebind(deleteEndpoint), config.Room); err != nil {
		return fmt.Errorf("deleting endpoint: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.rebind(insertEndpoint),
		config.Room,
		string(config.Format),
		config.URL,
		config.APIToken,
	)
	if err != nil {
		return fmt.Errorf("inserting endpoint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing endpoint: %w", err)
	}

	log.Debug().Str("room", config.Room).Str("format", string(config.Format)).Msg("stored endpoint")

	return nil
}

// rebind rewrites ? placeholders into the driver's bind syntax.
func (s *SQL) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	sb := &strings.Builder{}
	n := 0

	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}

		n++
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(n))
	}

	return sb.String()
}
