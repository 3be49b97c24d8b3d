package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonathan/placement-prep/internal/types"
)

const (
	redisKeyPrefix = "resume:"
	redisIndexKey  = "resumes"
)

// RedisStore keeps each resume under resume:<id> and tracks ids in a sorted
// set scored by update time.
type RedisStore struct {
	client *redis.Client
}

type redisEntry struct {
	Data      json.RawMessage `json:"data"`
	FullName  string          `json:"full_name"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ConnectRedis connects to the Redis server at redisURL.
func ConnectRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, &StoreError{Backend: "redis", Message: "invalid redis url", Cause: err}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &StoreError{Backend: "redis", Message: "failed to connect to redis", Cause: err}
	}
	return &RedisStore{client: client}, nil
}

func redisKey(id uuid.UUID) string {
	return redisKeyPrefix + id.String()
}

func (s *RedisStore) load(ctx context.Context, id uuid.UUID) (*redisEntry, error) {
	raw, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Backend: "redis", Message: fmt.Sprintf("failed to get resume %s", id), Cause: err}
	}
	var entry redisEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume entry %s: %w", id, err)
	}
	return &entry, nil
}

// SaveResume implements ResumeStore.
func (s *RedisStore) SaveResume(ctx context.Context, resume *types.Resume) (uuid.UUID, error) {
	id, err := assignID(resume)
	if err != nil {
		return uuid.Nil, err
	}
	data, err := encodeResume(resume)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	entry := redisEntry{Data: data, FullName: resume.PersonalInfo.FullName, CreatedAt: now, UpdatedAt: now}
	existing, err := s.load(ctx, id)
	switch {
	case err == nil:
		entry.CreatedAt = existing.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return uuid.Nil, err
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume entry: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKey(id), raw, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(now.UnixNano()), Member: id.String()})
		return nil
	})
	if err != nil {
		return uuid.Nil, &StoreError{Backend: "redis", Message: fmt.Sprintf("failed to save resume %s", id), Cause: err}
	}
	return id, nil
}

// GetResume implements ResumeStore.
func (s *RedisStore) GetResume(ctx context.Context, id uuid.UUID) (*Record, error) {
	entry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resume, err := decodeResume(entry.Data)
	if err != nil {
		return nil, err
	}
	return &Record{ID: id, Resume: resume, CreatedAt: entry.CreatedAt, UpdatedAt: entry.UpdatedAt}, nil
}

// DeleteResume implements ResumeStore.
func (s *RedisStore) DeleteResume(ctx context.Context, id uuid.UUID) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisKey(id))
		pipe.ZRem(ctx, redisIndexKey, id.String())
		return nil
	})
	if err != nil {
		return &StoreError{Backend: "redis", Message: fmt.Sprintf("failed to delete resume %s", id), Cause: err}
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListResumes implements ResumeStore.
func (s *RedisStore) ListResumes(ctx context.Context) ([]Summary, error) {
	members, err := s.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, &StoreError{Backend: "redis", Message: "failed to list resumes", Cause: err}
	}
	summaries := make([]Summary, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		entry, err := s.load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summary{ID: id, FullName: entry.FullName, UpdatedAt: entry.UpdatedAt})
	}
	sortSummaries(summaries)
	return summaries, nil
}

// Close implements ResumeStore.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
