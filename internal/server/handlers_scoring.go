package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/placement-prep/internal/config"
	"github.com/jonathan/placement-prep/internal/engine"
	"github.com/jonathan/placement-prep/internal/ingestion"
	"github.com/jonathan/placement-prep/internal/schemas"
	"github.com/jonathan/placement-prep/internal/types"
)

// ScoreRequest is the body of POST /domains/{domain}/score and /evaluations
type ScoreRequest struct {
	Resume   json.RawMessage   `json:"resume"`
	Job      *types.JobContext `json:"job,omitempty"`
	Strategy string            `json:"strategy,omitempty"`
	Level    string            `json:"level,omitempty"`
}

// EvaluationsResponse lists every rule result
type EvaluationsResponse struct {
	Evaluations []types.RuleEvaluation `json:"evaluations"`
}

// FieldSuggestionRequest is the body of POST /domains/{domain}/suggestions/field
type FieldSuggestionRequest struct {
	Value   string `json:"value"`
	Field   string `json:"field"`
	Section string `json:"section"`
	Level   string `json:"level,omitempty"`
}

// GlobalSuggestionRequest is the body of POST /domains/{domain}/suggestions/global
type GlobalSuggestionRequest struct {
	Resume json.RawMessage `json:"resume"`
	Level  string          `json:"level,omitempty"`
}

// SuggestionsResponse lists suggestions
type SuggestionsResponse struct {
	Suggestions []types.Suggestion `json:"suggestions"`
}

// JobContextRequest is the body of POST /domains/{domain}/job-context. Exactly one of URL or Text is required.
type JobContextRequest struct {
	URL   string `json:"url,omitempty"`
	Text  string `json:"text,omitempty"`
	Level string `json:"level,omitempty"`
}

// parseResume validates raw against the resume schema and the struct rules
func parseResume(raw json.RawMessage) (*types.Resume, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &ErrValidation{Field: "resume", Message: "resume is required"}
	}
	if err := schemas.ValidateDocument(schemas.Resume, raw); err != nil {
		return nil, err
	}
	var resume types.Resume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return nil, &ErrValidation{Field: "resume", Message: err.Error()}
	}
	if err := resume.Validate(); err != nil {
		return nil, err
	}
	return &resume, nil
}

// score runs the selected strategy
func (s *Server) score(eng *engine.Engine, strategy string, resume *types.Resume, job *types.JobContext) (any, error) {
	if strategy == config.StrategyLegacy {
		return eng.CalculateScore(resume)
	}
	return eng.CalculateVerdict(resume, job)
}

func validateJob(job *types.JobContext) error {
	if job == nil {
		return nil
	}
	return job.Validate()
}

// handleScore scores a resume with the legacy or verdict strategy
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	strategy, err := s.normalizeStrategy(req.Strategy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resume, err := parseResume(req.Resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateJob(req.Job); err != nil {
		s.writeError(w, r, err)
		return
	}
	eng, err := s.engineFor(r.Context(), r.PathValue("domain"), req.Level)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.score(eng, strategy, resume, req.Job)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleEvaluate returns every rule evaluation without aggregation
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	resume, err := parseResume(req.Resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateJob(req.Job); err != nil {
		s.writeError(w, r, err)
		return
	}
	eng, err := s.engineFor(r.Context(), r.PathValue("domain"), req.Level)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	evals, err := eng.Evaluate(resume, req.Job)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, EvaluationsResponse{Evaluations: evals})
}

// handleFieldSuggestions returns suggestions for a single edited field
func (s *Server) handleFieldSuggestions(w http.ResponseWriter, r *http.Request) {
	var req FieldSuggestionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Field) == "" || strings.TrimSpace(req.Section) == "" {
		s.writeError(w, r, &ErrValidation{Field: "field", Message: "field and section are required"})
		return
	}
	eng, err := s.engineFor(r.Context(), r.PathValue("domain"), req.Level)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	suggestions, err := eng.GetSuggestions(req.Value, req.Field, req.Section)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// handleGlobalSuggestions returns whole-resume suggestions
func (s *Server) handleGlobalSuggestions(w http.ResponseWriter, r *http.Request) {
	var req GlobalSuggestionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	resume, err := parseResume(req.Resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	eng, err := s.engineFor(r.Context(), r.PathValue("domain"), req.Level)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	suggestions, err := eng.GetGlobalSuggestions(resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// handleJobContext ingests a posting from a URL or raw text and extracts the job context
func (s *Server) handleJobContext(w http.ResponseWriter, r *http.Request) {
	var req JobContextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	hasURL, hasText := strings.TrimSpace(req.URL) != "", strings.TrimSpace(req.Text) != ""
	if hasURL == hasText {
		s.writeError(w, r, &ErrValidation{Field: "url", Message: "exactly one of url or text is required"})
		return
	}
	if hasURL {
		if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			s.writeError(w, r, &ErrValidation{Field: "url", Message: "url must be an absolute http(s) URL"})
			return
		}
	}

	eng, err := s.engineFor(r.Context(), r.PathValue("domain"), req.Level)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	levelRules, err := eng.Rules()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var posting *ingestion.Posting
	if hasURL {
		posting, err = s.ingester.FromURL(r.Context(), req.URL, levelRules)
	} else {
		posting, err = s.ingester.FromText(req.Text, levelRules)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, posting)
}
