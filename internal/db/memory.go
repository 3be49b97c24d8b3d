package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/placement-prep/internal/types"
)

type memoryEntry struct {
	data      []byte
	fullName  string
	createdAt time.Time
	updatedAt time.Time
}

// MemoryStore keeps resumes in process memory. It is the default backend.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]memoryEntry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SaveResume implements ResumeStore.
func (s *MemoryStore) SaveResume(ctx context.Context, resume *types.Resume) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	id, err := assignID(resume)
	if err != nil {
		return uuid.Nil, err
	}
	data, err := encodeResume(resume)
	if err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	entry := memoryEntry{data: data, fullName: resume.PersonalInfo.FullName, createdAt: now, updatedAt: now}
	if existing, ok := s.entries[id]; ok {
		entry.createdAt = existing.createdAt
	}
	s.entries[id] = entry
	return id, nil
}

// GetResume implements ResumeStore.
func (s *MemoryStore) GetResume(ctx context.Context, id uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	resume, err := decodeResume(entry.data)
	if err != nil {
		return nil, err
	}
	return &Record{ID: id, Resume: resume, CreatedAt: entry.createdAt, UpdatedAt: entry.updatedAt}, nil
}

// DeleteResume implements ResumeStore.
func (s *MemoryStore) DeleteResume(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// ListResumes implements ResumeStore.
func (s *MemoryStore) ListResumes(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	summaries := make([]Summary, 0, len(s.entries))
	for id, entry := range s.entries {
		summaries = append(summaries, Summary{ID: id, FullName: entry.fullName, UpdatedAt: entry.updatedAt})
	}
	s.mu.RUnlock()
	sortSummaries(summaries)
	return summaries, nil
}

// Close implements ResumeStore.
func (s *MemoryStore) Close() error {
	return nil
}

func sortSummaries(summaries []Summary) {
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
		}
		return summaries[i].ID.String() < summaries[j].ID.String()
	})
}
