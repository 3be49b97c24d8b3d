package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-prep/internal/types"
)

func sampleResume(name string) *types.Resume {
	return &types.Resume{
		PersonalInfo: types.PersonalInfo{
			FullName: name,
			Email:    "asha@example.com",
			Summary:  "Final-year CS student building web apps.",
		},
		Experiences: []types.Experience{{Company: "Acme", Position: "Intern", Description: "Built a dashboard used by 200 students"}},
		Skills:      []types.SkillGroup{{Items: []string{"Go", "React"}}},
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store ResumeStore) {
	t.Helper()
	ctx := context.Background()

	first := sampleResume("Asha Rao")
	id, err := store.SaveResume(ctx, first)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id.String(), first.ID)

	got, err := store.GetResume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Asha Rao", got.Resume.PersonalInfo.FullName)
	assert.Equal(t, id.String(), got.Resume.ID)
	assert.Equal(t, []string{"Go", "React"}, got.Resume.Skills[0].Items)
	created := got.CreatedAt

	first.PersonalInfo.FullName = "Asha R."
	again, err := store.SaveResume(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	updated, err := store.GetResume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", updated.Resume.PersonalInfo.FullName)
	assert.True(t, updated.CreatedAt.Equal(created), "created_at must survive an update")
	assert.False(t, updated.UpdatedAt.Before(created))

	second := sampleResume("Vikram Shah")
	secondID, err := store.SaveResume(ctx, second)
	require.NoError(t, err)

	list, err := store.ListResumes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	names := map[uuid.UUID]string{}
	for _, s := range list {
		names[s.ID] = s.FullName
	}
	assert.Equal(t, "Asha R.", names[id])
	assert.Equal(t, "Vikram Shah", names[secondID])

	require.NoError(t, store.DeleteResume(ctx, id))
	_, err = store.GetResume(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteResume(ctx, id), ErrNotFound)

	_, err = store.GetResume(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	list, err = store.ListResumes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, secondID, list[0].ID)

	_, err = store.SaveResume(ctx, &types.Resume{ID: "not-a-uuid"})
	assert.Error(t, err)
	_, err = store.SaveResume(ctx, nil)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "resumes.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "resumes.db")

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	id, err := store.SaveResume(ctx, sampleResume("Asha Rao"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	got, err := reopened.GetResume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.Resume.PersonalInfo.FullName)
}

func TestMemoryStore_ListOrdersByUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	a := sampleResume("A")
	idA, err := store.SaveResume(ctx, a)
	require.NoError(t, err)
	idB, err := store.SaveResume(ctx, sampleResume("B"))
	require.NoError(t, err)

	list, err := store.ListResumes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []uuid.UUID{idB, idA}, []uuid.UUID{list[0].ID, list[1].ID})

	_, err = store.SaveResume(ctx, a)
	require.NoError(t, err)
	list, err = store.ListResumes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{idA, idB}, []uuid.UUID{list[0].ID, list[1].ID})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	resume := sampleResume("Asha Rao")
	id, err := store.SaveResume(ctx, resume)
	require.NoError(t, err)

	resume.PersonalInfo.FullName = "mutated"
	got, err := store.GetResume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.Resume.PersonalInfo.FullName)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore()

	_, err := store.SaveResume(ctx, sampleResume("A"))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.ListResumes(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveResume_KeepsProvidedID(t *testing.T) {
	store := NewMemoryStore()
	want := uuid.New()
	resume := sampleResume("A")
	resume.ID = want.String()

	got, err := store.SaveResume(context.Background(), resume)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		url     string
		want    any
		wantErr bool
	}{
		{name: "empty defaults to memory", url: "", want: &MemoryStore{}},
		{name: "memory scheme", url: "memory://", want: &MemoryStore{}},
		{name: "sqlite file", url: "sqlite://" + filepath.Join(t.TempDir(), "open.db"), want: &SQLiteStore{}},
		{name: "unknown scheme", url: "mongodb://localhost/resumes", wantErr: true},
		{name: "empty sqlite path", url: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			assert.IsType(t, tt.want, store)
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := assert.AnError
	err := &StoreError{Backend: "redis", Message: "failed to connect", Cause: cause}
	assert.Equal(t, "redis store: failed to connect: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &StoreError{Backend: "sqlite", Message: "database path is empty"}
	assert.Equal(t, "sqlite store: database path is empty", bare.Error())
}
