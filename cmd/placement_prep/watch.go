package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jonathan/placement-prep/internal/engine"
	"github.com/jonathan/placement-prep/internal/types"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		jobFile  string
		strategy string
	)
	cmd := &cobra.Command{
		Use:   "watch <resume.json>",
		Short: "Re-score a resume whenever it changes",
		Long: "Watch a resume file and print its score after each edit. Rapid edits are " +
			"debounced so only the last one in a burst is scored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chosen, err := a.resolveStrategy(strategy)
			if err != nil {
				return err
			}
			job, err := readJobFile(jobFile)
			if err != nil {
				return err
			}
			eng, err := a.newEngine(cmd.Context())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &watcher{app: a, eng: eng, path: args[0], strategy: chosen, job: job, out: cmd.OutOrStdout()}
			return w.run(ctx, a.cfg.Debounce())
		},
	}
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Job context JSON to score against")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Scoring strategy: legacy or verdict (default from config)")
	return cmd
}

// watcher re-scores a resume file after debounced changes
type watcher struct {
	app      *app
	eng      *engine.Engine
	path     string
	strategy string
	job      *types.JobContext

	mu  sync.Mutex
	out io.Writer
}

// run watches the file's directory so editors that save by renaming a temp file are seen
func (w *watcher) run(ctx context.Context, debounce time.Duration) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve resume path: %w", err)
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("failed to stat resume: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	w.rescore()

	d := engine.NewDebouncer(debounce, w.rescore)
	defer d.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.app.logger.Debug("resume changed", "path", target, "op", event.Op.String())
				d.Trigger()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.app.logger.Warn("file watcher error", "error", err)
		}
	}
}

// rescore prints one score per line; invalid intermediate saves are reported, not fatal
func (w *watcher) rescore() {
	w.mu.Lock()
	defer w.mu.Unlock()

	resume, err := readResumeFile(w.path)
	if err != nil {
		w.app.logger.Warn("resume not scored", "error", err)
		return
	}
	result, err := scoreResume(w.eng, w.strategy, resume, w.job)
	if err != nil {
		w.app.logger.Error("scoring failed", "error", err)
		return
	}
	if w.app.cfg.Verbose {
		w.app.printScore(result)
	}
	fmt.Fprintf(w.out, "%s %s\n", time.Now().Format(time.TimeOnly), scoreLine(result))
}

func scoreLine(result any) string {
	switch r := result.(type) {
	case types.ATSScore:
		return fmt.Sprintf("score=%d strategy=%s", r.OverallScore, r.Strategy)
	case types.VerdictResult:
		return fmt.Sprintf("score=%d verdict=%s", r.FinalScore, r.Verdict)
	default:
		return fmt.Sprintf("result=%v", r)
	}
}
