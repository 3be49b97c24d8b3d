package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/placement-prep/internal/types"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS resumes (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	data TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps resumes in a local SQLite file.
type SQLiteStore struct {
	pool *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, &StoreError{Backend: "sqlite", Message: "database path is empty"}
	}
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &StoreError{Backend: "sqlite", Message: "failed to open database", Cause: err}
	}

	// sqlite wants a single writer
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, &StoreError{Backend: "sqlite", Message: "failed to ping database", Cause: err}
	}
	if _, err := pool.ExecContext(ctx, sqliteSchema); err != nil {
		_ = pool.Close()
		return nil, &StoreError{Backend: "sqlite", Message: "failed to create resumes table", Cause: err}
	}
	return &SQLiteStore{pool: pool}, nil
}

// SaveResume implements ResumeStore.
func (s *SQLiteStore) SaveResume(ctx context.Context, resume *types.Resume) (uuid.UUID, error) {
	id, err := assignID(resume)
	if err != nil {
		return uuid.Nil, err
	}
	data, err := encodeResume(resume)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC().UnixNano()
	_, err = s.pool.ExecContext(ctx,
		`INSERT INTO resumes (id, full_name, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET full_name = excluded.full_name, data = excluded.data, updated_at = excluded.updated_at`,
		id.String(), resume.PersonalInfo.FullName, string(data), now, now,
	)
	if err != nil {
		return uuid.Nil, &StoreError{Backend: "sqlite", Message: fmt.Sprintf("failed to save resume %s", id), Cause: err}
	}
	return id, nil
}

// GetResume implements ResumeStore.
func (s *SQLiteStore) GetResume(ctx context.Context, id uuid.UUID) (*Record, error) {
	var (
		data             string
		created, updated int64
	)
	err := s.pool.QueryRowContext(ctx,
		`SELECT data, created_at, updated_at FROM resumes WHERE id = ?`,
		id.String(),
	).Scan(&data, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Backend: "sqlite", Message: fmt.Sprintf("failed to get resume %s", id), Cause: err}
	}
	resume, err := decodeResume([]byte(data))
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        id,
		Resume:    resume,
		CreatedAt: time.Unix(0, created).UTC(),
		UpdatedAt: time.Unix(0, updated).UTC(),
	}, nil
}

// DeleteResume implements ResumeStore.
func (s *SQLiteStore) DeleteResume(ctx context.Context, id uuid.UUID) error {
	res, err := s.pool.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id.String())
	if err != nil {
		return &StoreError{Backend: "sqlite", Message: fmt.Sprintf("failed to delete resume %s", id), Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &StoreError{Backend: "sqlite", Message: "failed to read affected rows", Cause: err}
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListResumes implements ResumeStore.
func (s *SQLiteStore) ListResumes(ctx context.Context) ([]Summary, error) {
	rows, err := s.pool.QueryContext(ctx,
		`SELECT id, full_name, updated_at FROM resumes ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, &StoreError{Backend: "sqlite", Message: "failed to list resumes", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	summaries := []Summary{}
	for rows.Next() {
		var (
			rawID   string
			summary Summary
			updated int64
		)
		if err := rows.Scan(&rawID, &summary.FullName, &updated); err != nil {
			return nil, &StoreError{Backend: "sqlite", Message: "failed to scan resume", Cause: err}
		}
		if summary.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("invalid stored id %q: %w", rawID, err)
		}
		summary.UpdatedAt = time.Unix(0, updated).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Backend: "sqlite", Message: "failed to iterate resumes", Cause: err}
	}
	return summaries, nil
}

// Close implements ResumeStore.
func (s *SQLiteStore) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Close()
}
