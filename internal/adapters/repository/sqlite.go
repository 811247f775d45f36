package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/studytrack/internal/domain/model"
	"github.com/okian/studytrack/internal/domain/tier"
	"github.com/okian/studytrack/pkg/metrics"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// createdAtLayout is fixed width so that text ordering matches time ordering.
// It matches SQLite's strftime('%Y-%m-%d %H:%M:%f').
const createdAtLayout = "2006-01-02 15:04:05.000"

const schema = `
CREATE TABLE IF NOT EXISTS performance (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	student_name TEXT NOT NULL,
	score REAL NOT NULL,
	tier_label TEXT NOT NULL,
	tier_code TEXT NOT NULL,
	course TEXT NOT NULL DEFAULT '',
	subject TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
);`

// SQLiteStore is a durable Store backed by a single SQLite file.
//
// The pool is capped at one connection, so all access is serialized.
type SQLiteStore struct {
	db   *sql.DB
	path string
	opts options

	mu     sync.Mutex
	closed bool
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// performance table exists.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	const op = "repository.open"
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: create dir: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db, o.busyTimeout); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: create schema: %w: %w", op, ErrStore, err)
	}

	return &SQLiteStore{db: db, path: path, opts: o}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB, busy time.Duration) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds()),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Path returns the database path.
func (s *SQLiteStore) Path() string { return s.path }

// Append implements Store. The insert is a single statement, so a failure
// leaves earlier records untouched.
func (s *SQLiteStore) Append(ctx context.Context, rec model.PerformanceRecord) (model.PerformanceRecord, error) {
	const op = "repository.append"
	if err := s.checkOpen(); err != nil {
		return model.PerformanceRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	start := time.Now()
	defer observe("append", start)

	rec.TierCode, rec.TierLabel = tier.Classify(rec.Score)
	rec.CreatedAt = s.opts.now().UTC().Truncate(time.Millisecond)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO performance (student_name, score, tier_label, tier_code, course, subject, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.StudentName, rec.Score, rec.TierLabel, string(rec.TierCode), rec.Course, rec.Subject,
		rec.CreatedAt.Format(createdAtLayout),
	)
	if err != nil {
		metrics.RecordRepositoryError("append")
		return model.PerformanceRecord{}, fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		metrics.RecordRepositoryError("append")
		return model.PerformanceRecord{}, fmt.Errorf("%s: last insert id: %w: %w", op, ErrStore, err)
	}
	rec.ID = id
	return rec, nil
}

// MostRecent implements Store.
func (s *SQLiteStore) MostRecent(ctx context.Context, name string) (model.PerformanceRecord, error) {
	const op = "repository.most_recent"
	if err := s.checkOpen(); err != nil {
		return model.PerformanceRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	start := time.Now()
	defer observe("most_recent", start)

	var (
		rec       model.PerformanceRecord
		code      string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, student_name, score, tier_label, tier_code, course, subject, created_at
		 FROM performance
		 WHERE student_name = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, name,
	).Scan(&rec.ID, &rec.StudentName, &rec.Score, &rec.TierLabel, &code, &rec.Course, &rec.Subject, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PerformanceRecord{}, ErrNotFound
	}
	if err != nil {
		metrics.RecordRepositoryError("most_recent")
		return model.PerformanceRecord{}, fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
	rec.TierCode = tier.Code(code)
	rec.CreatedAt, err = time.ParseInLocation(createdAtLayout, createdAt, time.UTC)
	if err != nil {
		return model.PerformanceRecord{}, fmt.Errorf("%s: parse created_at %q: %w: %w", op, createdAt, ErrStore, err)
	}
	return rec, nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	const op = "repository.count"
	if err := s.checkOpen(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM performance`).Scan(&n); err != nil {
		metrics.RecordRepositoryError("count")
		return 0, fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}

// Close implements Store. It is safe to call more than once.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *SQLiteStore) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func observe(op string, start time.Time) {
	metrics.RecordRepositoryLatency(op, float64(time.Since(start).Microseconds())/1000)
}
