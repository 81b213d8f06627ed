// Package sqlstore persists feedback in a SQL database through database/sql.
// SQLite (modernc.org/sqlite, pure Go) and PostgreSQL (lib/pq) are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/retry"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var schemas = map[string]string{
	DriverSQLite: `
CREATE TABLE IF NOT EXISTS feedback (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	origin TEXT NOT NULL DEFAULT '',
	destination TEXT NOT NULL DEFAULT '',
	departure_date TEXT NOT NULL DEFAULT '',
	miles_available INTEGER NOT NULL DEFAULT 0,
	rating INTEGER NOT NULL,
	comments TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
)`,
	DriverPostgres: `
CREATE TABLE IF NOT EXISTS feedback (
	id BIGSERIAL PRIMARY KEY,
	origin VARCHAR(3) NOT NULL DEFAULT '',
	destination VARCHAR(3) NOT NULL DEFAULT '',
	departure_date VARCHAR(10) NOT NULL DEFAULT '',
	miles_available BIGINT NOT NULL DEFAULT 0,
	rating SMALLINT NOT NULL,
	comments TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`,
}

const insertFeedback = `
INSERT INTO feedback (origin, destination, departure_date, miles_available, rating, comments, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`

// Store implements domain.FeedbackRepository on a *sql.DB.
type Store struct {
	db     *sql.DB
	driver string
	clock  timeutil.Clock
}

// Open connects to the database, waits for it to answer and creates the
// feedback table if it does not exist.
func Open(ctx context.Context, driver, dsn string, clock timeutil.Clock) (*Store, error) {
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite serializes writers; a single connection also keeps :memory: databases shared.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ping := retry.DefaultConfig.WithOnRetry(func(attempt int, err error, wait time.Duration) {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("driver", driver).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("Waiting for database")
	})
	if err := retry.Do(ctx, func() error { return db.PingContext(ctx) }, ping); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	store := New(db, driver, clock)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an already opened database. The schema is not touched.
func New(db *sql.DB, driver string, clock timeutil.Clock) *Store {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Store{db: db, driver: driver, clock: clock}
}

// Migrate creates the feedback table if missing.
func (s *Store) Migrate(ctx context.Context) error {
	schema, ok := schemas[s.driver]
	if !ok {
		return fmt.Errorf("unsupported storage driver %q", s.driver)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create feedback table: %w", err)
	}
	return nil
}

// Save inserts feedback and sets its ID and CreatedAt.
func (s *Store) Save(ctx context.Context, feedback *domain.Feedback) error {
	createdAt := s.clock.Now().UTC()

	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(insertFeedback),
		feedback.Origin,
		feedback.Destination,
		feedback.DepartureDate,
		feedback.MilesAvailable,
		feedback.Rating,
		feedback.Comments,
		createdAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	feedback.ID = id
	feedback.CreatedAt = createdAt
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $N for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ensure Store implements domain.FeedbackRepository at compile time.
var _ domain.FeedbackRepository = (*Store)(nil)
