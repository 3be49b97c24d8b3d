// Package engine is the in-process consumer API: initialise a domain once, then score,
// evaluate and suggest against it. Scoring and suggestion calls never fail on bad data;
// a panic is logged and replaced with an empty result.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonathan/placement-prep/internal/evaluation"
	"github.com/jonathan/placement-prep/internal/rules"
	"github.com/jonathan/placement-prep/internal/scoring"
	"github.com/jonathan/placement-prep/internal/suggestions"
	"github.com/jonathan/placement-prep/internal/types"
)

// ErrNotInitialized is returned by every call made before Initialize succeeds
var ErrNotInitialized = errors.New("engine not initialized: call Initialize with a domain first")

// ErrInvalidLevel is returned when an unknown experience level is selected
var ErrInvalidLevel = errors.New("invalid experience level")

// Scorer computes the legacy weighted score
type Scorer interface {
	Score(resume *types.Resume, rules *types.LevelRules) types.ATSScore
}

// Suggester produces field and global suggestions for one level
type Suggester interface {
	Field(text, field, section string) []types.Suggestion
	Global(resume *types.Resume) []types.Suggestion
}

// SuggesterFactory builds a Suggester for the active level and domain display name
type SuggesterFactory func(rules *types.LevelRules, domain string) Suggester

// Option configures an Engine
type Option func(*Engine)

// WithLoader sets the rule loader. Defaults to the package-level loader.
func WithLoader(loader *rules.Loader) Option {
	return func(e *Engine) { e.loader = loader }
}

// WithLogger sets the logger used for recovered panics
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithLevel selects the experience level. Defaults to midLevel.
func WithLevel(level types.Level) Option {
	return func(e *Engine) { e.level = level }
}

// WithScorer replaces the legacy weighted scorer
func WithScorer(s Scorer) Option {
	return func(e *Engine) { e.scorer = s }
}

// WithVerdictScore replaces the verdict strategy settings
func WithVerdictScore(v scoring.VerdictScore) Option {
	return func(e *Engine) { e.verdict = v }
}

// WithSuggesterFactory replaces the suggestion generator
func WithSuggesterFactory(f SuggesterFactory) Option {
	return func(e *Engine) { e.newSuggester = f }
}

// Engine holds the active domain and level. It is safe for concurrent use.
type Engine struct {
	loader       *rules.Loader
	logger       *slog.Logger
	scorer       Scorer
	verdict      scoring.VerdictScore
	newSuggester SuggesterFactory

	mu        sync.RWMutex
	level     types.Level
	rules     *types.DomainRules
	active    *types.LevelRules
	suggester Suggester
}

// New creates an uninitialised Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		loader:  rules.Default(),
		logger:  slog.Default(),
		scorer:  scoring.LegacyWeightedScore{},
		verdict: scoring.NewVerdictScore(),
		newSuggester: func(r *types.LevelRules, domain string) Suggester {
			return suggestions.New(r, domain)
		},
		level: types.LevelMid,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize loads the domain's rules and activates the configured level.
// Load failures are returned as-is so callers can show the hint.
func (e *Engine) Initialize(ctx context.Context, domain string) error {
	if !e.level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, e.level)
	}
	loaded, err := e.loader.LoadRules(ctx, domain)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = loaded
	e.activate()
	return nil
}

// SetLevel switches the active experience level of an initialised engine
func (e *Engine) SetLevel(level types.Level) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = level
	if e.rules != nil {
		e.activate()
	}
	return nil
}

// activate must be called with mu held
func (e *Engine) activate() {
	e.active = e.rules.ForLevel(e.level)
	e.suggester = e.newSuggester(e.active, e.rules.DisplayName)
}

func (e *Engine) snapshot() (*types.LevelRules, Suggester, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.active == nil {
		return nil, nil, ErrNotInitialized
	}
	return e.active, e.suggester, nil
}

// GetSuggestions returns suggestions for a single field value
func (e *Engine) GetSuggestions(value, field, section string) (out []types.Suggestion, err error) {
	_, s, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	defer e.recoverPanic("GetSuggestions", func() { out = []types.Suggestion{} }, "field", field, "section", section)
	return nonNil(s.Field(value, field, section)), nil
}

// GetGlobalSuggestions returns resume-wide suggestions
func (e *Engine) GetGlobalSuggestions(resume *types.Resume) (out []types.Suggestion, err error) {
	_, s, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	defer e.recoverPanic("GetGlobalSuggestions", func() { out = []types.Suggestion{} })
	return nonNil(s.Global(resume)), nil
}

// CalculateScore computes the legacy weighted score. Unexpected failures yield an all-zero score.
func (e *Engine) CalculateScore(resume *types.Resume) (score types.ATSScore, err error) {
	active, _, err := e.snapshot()
	if err != nil {
		return types.ATSScore{}, err
	}
	defer e.recoverPanic("CalculateScore", func() { score = zeroScore() })
	return e.scorer.Score(resume, active), nil
}

// CalculateVerdict computes the ats/hr/jd verdict. job may be nil.
func (e *Engine) CalculateVerdict(resume *types.Resume, job *types.JobContext) (result types.VerdictResult, err error) {
	active, _, err := e.snapshot()
	if err != nil {
		return types.VerdictResult{}, err
	}
	defer e.recoverPanic("CalculateVerdict", func() {
		result = types.VerdictResult{Verdict: types.VerdictFail, Strategy: scoring.StrategyVerdict}
	})
	return e.verdict.Score(resume, active, job), nil
}

// Evaluate runs every rule evaluator. job may be nil.
func (e *Engine) Evaluate(resume *types.Resume, job *types.JobContext) (evals []types.RuleEvaluation, err error) {
	active, _, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	defer e.recoverPanic("Evaluate", func() { evals = []types.RuleEvaluation{} })
	return evaluation.Evaluate(resume, active, job), nil
}

// recoverPanic must be deferred directly. It logs a panic and applies fallback.
func (e *Engine) recoverPanic(op string, fallback func(), attrs ...any) {
	r := recover()
	if r == nil {
		return
	}
	attrs = append([]any{"op", op, "domain", e.Domain(), "panic", fmt.Sprint(r)}, attrs...)
	e.logger.Error("recovered from panic", attrs...)
	fallback()
}

// Rules returns the active level's rules
func (e *Engine) Rules() (*types.LevelRules, error) {
	active, _, err := e.snapshot()
	return active, err
}

// DomainRules returns the full bundle of the active domain
func (e *Engine) DomainRules() (*types.DomainRules, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.rules == nil {
		return nil, ErrNotInitialized
	}
	return e.rules, nil
}

// RequiredSkills returns the active level's required skills
func (e *Engine) RequiredSkills() ([]types.SkillRule, error) {
	active, _, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return active.Rules.RequiredSkills.Skills, nil
}

// PowerWords returns the active level's power word rules
func (e *Engine) PowerWords() (types.PowerWordRules, error) {
	active, _, err := e.snapshot()
	if err != nil {
		return types.PowerWordRules{}, err
	}
	return active.Rules.PowerWords, nil
}

// RedFlags returns the active level's bundle red flags
func (e *Engine) RedFlags() ([]types.RedFlag, error) {
	active, _, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return active.Rules.RedFlags.Flags, nil
}

// StructureGuidelines returns the active level's resume structure rules
func (e *Engine) StructureGuidelines() (types.ResumeStructureRules, error) {
	active, _, err := e.snapshot()
	if err != nil {
		return types.ResumeStructureRules{}, err
	}
	return active.Rules.ResumeStructure, nil
}

// Domain returns the active domain id, or "" before Initialize
func (e *Engine) Domain() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.rules == nil {
		return ""
	}
	return e.rules.Domain
}

// Level returns the selected experience level
func (e *Engine) Level() types.Level {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.level
}

// Initialized reports whether a domain is loaded
func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active != nil
}

func zeroScore() types.ATSScore {
	return types.ATSScore{Breakdown: []types.ScoreBreakdown{}, Strategy: scoring.StrategyLegacy}
}

func nonNil(s []types.Suggestion) []types.Suggestion {
	if s == nil {
		return []types.Suggestion{}
	}
	return s
}
