package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"albumcheck/internal/services"
)

//go:embed schema.sql
var schemaSQL string

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store wraps the catalog database handle. It is opened once per run.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to an existing catalog. A missing file or a database without
// a tracks table is reported as services.ErrStoreUnavailable.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "open", "catalog path is empty", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "open", fmt.Sprintf("%s does not exist", path), nil)
		}
		return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "open", "stat catalog", err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "open", fmt.Sprintf("%s is a directory", path), nil)
	}

	store, err := openDB(path)
	if err != nil {
		return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "open", path, err)
	}

	ok, err := store.hasTracksTable(context.Background())
	if err != nil {
		_ = store.Close()
		return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "open", "inspect schema", err)
	}
	if !ok {
		_ = store.Close()
		return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "open", fmt.Sprintf("%s has no tracks table", path), nil)
	}
	return store, nil
}

// Create opens the catalog at path, creating the file and the tracks table
// when they do not exist yet.
func Create(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("catalog path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	store, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := retryOnBusy(ctx, func() error {
		_, execErr := store.db.ExecContext(ctx, schemaSQL)
		return execErr
	}); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return store, nil
}

func openDB(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// The playlist manager owns the journal mode; only connection-local
	// settings are applied here.
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db, path: path}, nil
}

// Path returns the catalog file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) hasTracksTable(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'tracks'",
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy reruns op while SQLite reports lock contention, doubling the
// delay up to busyRetryMaxBackoff.
func retryOnBusy(ctx context.Context, op func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", count), ",")
}
