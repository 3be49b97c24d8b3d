// Package db provides persistence for resumes edited in the builder.
//
// Resumes are stored as opaque JSON blobs keyed by a UUID. The backend is
// selected from a URL: memory://, postgres://, redis:// or sqlite://.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/placement-prep/internal/types"
)

// ErrNotFound is returned when no resume exists for the requested id.
var ErrNotFound = errors.New("resume not found")

// ResumeStore persists resumes.
type ResumeStore interface {
	// SaveResume inserts or replaces a resume. A resume without an id gets a
	// new one; the id is written back into resume.ID and returned.
	SaveResume(ctx context.Context, resume *types.Resume) (uuid.UUID, error)
	GetResume(ctx context.Context, id uuid.UUID) (*Record, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	// ListResumes returns summaries ordered by most recently updated first.
	ListResumes(ctx context.Context) ([]Summary, error)
	Close() error
}

// Record is a stored resume with its bookkeeping timestamps.
type Record struct {
	ID        uuid.UUID    `json:"id"`
	Resume    types.Resume `json:"resume"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Summary is the listing view of a stored resume.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreError describes a backend failure.
type StoreError struct {
	Backend string
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s store: %s", e.Backend, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Open connects to the store described by rawURL. An empty URL opens an
// in-memory store.
func Open(ctx context.Context, rawURL string) (ResumeStore, error) {
	if strings.TrimSpace(rawURL) == "" {
		return NewMemoryStore(), nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}
	switch u.Scheme {
	case "memory":
		return NewMemoryStore(), nil
	case "postgres", "postgresql":
		return ConnectPostgres(ctx, rawURL)
	case "redis", "rediss":
		return ConnectRedis(ctx, rawURL)
	case "sqlite":
		return OpenSQLite(ctx, strings.TrimPrefix(rawURL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", u.Scheme)
	}
}

// assignID returns the resume's id, generating one when it is empty.
func assignID(resume *types.Resume) (uuid.UUID, error) {
	if resume == nil {
		return uuid.Nil, errors.New("resume is nil")
	}
	if resume.ID == "" {
		id := uuid.New()
		resume.ID = id.String()
		return id, nil
	}
	id, err := uuid.Parse(resume.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid resume id %q: %w", resume.ID, err)
	}
	resume.ID = id.String()
	return id, nil
}

func encodeResume(resume *types.Resume) ([]byte, error) {
	data, err := json.Marshal(resume)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	return data, nil
}

func decodeResume(data []byte) (types.Resume, error) {
	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return resume, fmt.Errorf("failed to unmarshal resume: %w", err)
	}
	return resume, nil
}
