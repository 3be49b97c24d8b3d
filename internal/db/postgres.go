package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/placement-prep/internal/types"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore wraps a PostgreSQL connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the resumes table exists
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &StoreError{Backend: "postgres", Message: "failed to connect to database", Cause: err}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &StoreError{Backend: "postgres", Message: "failed to ping database", Cause: err}
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, &StoreError{Backend: "postgres", Message: "failed to create resumes table", Cause: err}
	}

	return &PostgresStore{pool: pool}, nil
}

// SaveResume implements ResumeStore.
func (s *PostgresStore) SaveResume(ctx context.Context, resume *types.Resume) (uuid.UUID, error) {
	id, err := assignID(resume)
	if err != nil {
		return uuid.Nil, err
	}
	data, err := encodeResume(resume)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO resumes (id, full_name, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET full_name = $2, data = $3, updated_at = NOW()`,
		id, resume.PersonalInfo.FullName, data,
	)
	if err != nil {
		return uuid.Nil, &StoreError{Backend: "postgres", Message: fmt.Sprintf("failed to save resume %s", id), Cause: err}
	}
	return id, nil
}

// GetResume implements ResumeStore.
func (s *PostgresStore) GetResume(ctx context.Context, id uuid.UUID) (*Record, error) {
	var data []byte
	record := &Record{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT data, created_at, updated_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&data, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Backend: "postgres", Message: fmt.Sprintf("failed to get resume %s", id), Cause: err}
	}
	if record.Resume, err = decodeResume(data); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteResume implements ResumeStore.
func (s *PostgresStore) DeleteResume(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return &StoreError{Backend: "postgres", Message: fmt.Sprintf("failed to delete resume %s", id), Cause: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListResumes implements ResumeStore.
func (s *PostgresStore) ListResumes(ctx context.Context) ([]Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, full_name, updated_at FROM resumes ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, &StoreError{Backend: "postgres", Message: "failed to list resumes", Cause: err}
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.ID, &summary.FullName, &summary.UpdatedAt); err != nil {
			return nil, &StoreError{Backend: "postgres", Message: "failed to scan resume", Cause: err}
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Backend: "postgres", Message: "failed to iterate resumes", Cause: err}
	}
	return summaries, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
