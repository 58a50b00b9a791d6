package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hance08/ledger/internal/store"
	"github.com/hance08/ledger/migrations"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Options struct {
	// LockTimeout is applied with SET LOCAL lock_timeout in every unit of work.
	LockTimeout time.Duration
	MaxConns    int32
}

type Store struct {
	db          DBTX
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewStore connects a pgx pool, migrates the schema and returns a Store.
func NewStore(ctx context.Context, databaseURL string, migrationsFS fs.FS, opts Options) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is not set")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	if err := runMigrations(databaseURL, migrationsFS); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if opts.LockTimeout <= 0 {
		opts.LockTimeout = 5 * time.Second
	}

	return &Store{db: pool, pool: pool, lockTimeout: opts.LockTimeout}, nil
}

func (s *Store) ExecTx(ctx context.Context, fn func(store.Repository) error) error {
	if s.pool == nil {
		return store.ErrAlreadyInTransaction
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translate(err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// SET does not take bind parameters.
	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, timeout); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}

	if err := fn(&Store{db: tx, lockTimeout: s.lockTimeout}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translate(err))
	}
	return nil
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) inTx() bool {
	return s.pool == nil
}

func runMigrations(databaseURL string, migrationsFS fs.FS) error {
	sourceDriver, err := iofs.New(migrationsFS, migrations.PostgresDir)
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, migrateURL(databaseURL))
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up): %w", err)
	}
	return nil
}

// migrateURL rewrites a postgres:// URL to the scheme of the pgx/v5 migrate driver.
func migrateURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

// SQLSTATE codes the store cares about.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeForeignKeyViolation  = "23503"
	codeInvalidText          = "22P02"
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	idempotencyKeyConstraint = "transactions_idempotency_key_unique"
)

func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeLockNotAvailable, codeDeadlockDetected:
		return fmt.Errorf("%w: %v", store.ErrLockTimeout, err)
	case codeUniqueViolation:
		if pgErr.ConstraintName == idempotencyKeyConstraint {
			return fmt.Errorf("%w: %v", store.ErrDuplicateIdempotencyKey, err)
		}
		return fmt.Errorf("%w: %v", store.ErrConstraintViolation, err)
	case codeCheckViolation, codeForeignKeyViolation:
		return fmt.Errorf("%w: %v", store.ErrConstraintViolation, err)
	case codeInvalidText:
		return fmt.Errorf("%w: %v", store.ErrRecordNotFound, err)
	}
	return err
}

var _ store.Store = (*Store)(nil)
