package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/placement-prep/internal/config"
	"github.com/jonathan/placement-prep/internal/engine"
	"github.com/jonathan/placement-prep/internal/schemas"
	"github.com/jonathan/placement-prep/internal/types"
)

// newEngine initializes an engine for the configured domain and level
func (a *app) newEngine(ctx context.Context) (*engine.Engine, error) {
	eng := engine.New(
		engine.WithLoader(a.loader),
		engine.WithLogger(a.logger),
		engine.WithLevel(a.cfg.LevelOrDefault()),
	)
	if err := eng.Initialize(ctx, a.cfg.Domain); err != nil {
		return nil, err
	}
	return eng, nil
}

// readResumeFile loads a resume, checking it against the resume schema first
func readResumeFile(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.Resume, data); err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume %s: %w", path, err)
	}
	if err := resume.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	return &resume, nil
}

// readJobFile loads a job context; an empty path yields nil
func readJobFile(path string) (*types.JobContext, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job context file: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.JobContext, data); err != nil {
		return nil, fmt.Errorf("invalid job context %s: %w", path, err)
	}
	var job types.JobContext
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job context %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job context %s: %w", path, err)
	}
	return &job, nil
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveStrategy validates a --strategy value, falling back to the configured one
func (a *app) resolveStrategy(flag string) (string, error) {
	strategy := a.cfg.Strategy
	if flag != "" {
		strategy = flag
	}
	switch strategy {
	case config.StrategyLegacy, config.StrategyVerdict:
		return strategy, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want legacy or verdict)", strategy)
	}
}

// scoreResume runs the selected strategy
func scoreResume(eng *engine.Engine, strategy string, resume *types.Resume, job *types.JobContext) (any, error) {
	if strategy == config.StrategyLegacy {
		return eng.CalculateScore(resume)
	}
	return eng.CalculateVerdict(resume, job)
}

// printScore renders a score result in verbose mode
func (a *app) printScore(result any) {
	switch r := result.(type) {
	case types.ATSScore:
		a.printer.PrintATSScore(&r)
	case types.VerdictResult:
		a.printer.PrintVerdict(&r)
	}
}
