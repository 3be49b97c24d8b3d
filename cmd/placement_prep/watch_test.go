package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-prep/internal/config"
	"github.com/jonathan/placement-prep/internal/observability"
	"github.com/jonathan/placement-prep/internal/rules"
)

// syncBuffer is written from the debounce timer goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

func newTestApp() *app {
	return &app{
		cfg:     config.Defaults(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		loader:  rules.NewLoader(),
		printer: observability.NewPrinter(io.Discard),
	}
}

// startWatcher copies src into a temp dir and watches it until the test ends
func startWatcher(t *testing.T, a *app, strategy, src string) (string, *syncBuffer) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	eng, err := a.newEngine(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out := &syncBuffer{}
	w := &watcher{app: a, eng: eng, path: path, strategy: strategy, out: out}

	done := make(chan error, 1)
	go func() { done <- w.run(ctx, 20*time.Millisecond) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Error("watcher did not stop after cancel")
		}
	})

	// Initial score is printed once the directory is watched
	require.Eventually(t, func() bool {
		return strings.Contains(out.lines()[0], "score=")
	}, time.Second, 5*time.Millisecond)
	return path, out
}

func scoreOf(line string) string {
	return line[strings.Index(line, "score="):]
}

func TestWatcher_RescoresOnWrite(t *testing.T) {
	path, out := startWatcher(t, newTestApp(), config.StrategyVerdict, "testdata/resume.json")

	sparse, err := os.ReadFile("testdata/sparse_resume.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, sparse, 0o644))

	require.Eventually(t, func() bool {
		return len(out.lines()) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	lines := out.lines()
	assert.NotEqual(t, scoreOf(lines[0]), scoreOf(lines[len(lines)-1]))
	assert.Contains(t, lines[0], "verdict=")
}

func TestWatcher_RescoresOnRenameSave(t *testing.T) {
	path, out := startWatcher(t, newTestApp(), config.StrategyVerdict, "testdata/resume.json")

	// unrelated files in the same directory are ignored
	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("draft"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, out.lines(), 1)

	sparse, err := os.ReadFile("testdata/sparse_resume.json")
	require.NoError(t, err)
	tmp := filepath.Join(filepath.Dir(path), ".resume.json.swp")
	require.NoError(t, os.WriteFile(tmp, sparse, 0o644))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool {
		return len(out.lines()) >= 2
	}, 2*time.Second, 5*time.Millisecond)
	lines := out.lines()
	assert.NotEqual(t, scoreOf(lines[0]), scoreOf(lines[len(lines)-1]))
}

func TestWatcher_UsesConfiguredStrategy(t *testing.T) {
	_, out := startWatcher(t, newTestApp(), config.StrategyLegacy, "testdata/resume.json")

	assert.Contains(t, out.lines()[0], "strategy=legacy-weighted")
	assert.NotContains(t, out.lines()[0], "verdict=")
}

func TestWatcher_InvalidSaveIsNotFatal(t *testing.T) {
	a := newTestApp()
	eng, err := a.newEngine(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": `), 0o644))

	out := &syncBuffer{}
	w := &watcher{app: a, eng: eng, path: path, strategy: config.StrategyVerdict, out: out}
	w.rescore()

	assert.Equal(t, []string{""}, out.lines())
}

func TestWatcher_MissingFile(t *testing.T) {
	a := newTestApp()
	w := &watcher{app: a, path: filepath.Join(t.TempDir(), "missing.json"), out: io.Discard}

	err := w.run(context.Background(), time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat resume")
}

func TestWatchCommand_RejectsUnknownStrategy(t *testing.T) {
	_, err := execute(t, "watch", "--strategy", "random", "testdata/resume.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}
