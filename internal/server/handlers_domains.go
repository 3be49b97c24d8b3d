package server

import (
	"context"
	"net/http"

	"github.com/jonathan/placement-prep/internal/engine"
	"github.com/jonathan/placement-prep/internal/rules"
	"github.com/jonathan/placement-prep/internal/types"
)

// DomainsResponse lists the built-in domains
type DomainsResponse struct {
	Domains []string `json:"domains"`
}

// LevelRulesResponse wraps one piece of a level's rules
type LevelRulesResponse struct {
	Domain string      `json:"domain"`
	Level  types.Level `json:"level"`
	Rules  any         `json:"rules"`
}

// engineFor loads the rules for domain at the requested level, or the server default
func (s *Server) engineFor(ctx context.Context, domain, level string) (*engine.Engine, error) {
	lvl := s.level
	if level != "" {
		lvl = types.Level(level)
	}
	eng := engine.New(
		engine.WithLoader(s.loader),
		engine.WithLogger(s.logger),
		engine.WithLevel(lvl),
	)
	if err := eng.Initialize(ctx, domain); err != nil {
		return nil, err
	}
	return eng, nil
}

// handleListDomains returns the built-in domain identifiers
func (s *Server) handleListDomains(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, DomainsResponse{Domains: rules.AvailableDomains()})
}

// handleGetRules returns the full normalized bundle for a domain
func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	eng, err := s.engineFor(r.Context(), r.PathValue("domain"), r.URL.Query().Get("level"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bundle, err := eng.DomainRules()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, bundle)
}

// levelPiece serves one accessor of the active level rules
func (s *Server) levelPiece(w http.ResponseWriter, r *http.Request, get func(*engine.Engine) (any, error)) {
	eng, err := s.engineFor(r.Context(), r.PathValue("domain"), r.URL.Query().Get("level"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	piece, err := get(eng)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, LevelRulesResponse{Domain: eng.Domain(), Level: eng.Level(), Rules: piece})
}

func (s *Server) handleGetRequiredSkills(w http.ResponseWriter, r *http.Request) {
	s.levelPiece(w, r, func(e *engine.Engine) (any, error) { return e.RequiredSkills() })
}

func (s *Server) handleGetPowerWords(w http.ResponseWriter, r *http.Request) {
	s.levelPiece(w, r, func(e *engine.Engine) (any, error) { return e.PowerWords() })
}

func (s *Server) handleGetRedFlags(w http.ResponseWriter, r *http.Request) {
	s.levelPiece(w, r, func(e *engine.Engine) (any, error) { return e.RedFlags() })
}

func (s *Server) handleGetStructure(w http.ResponseWriter, r *http.Request) {
	s.levelPiece(w, r, func(e *engine.Engine) (any, error) { return e.StructureGuidelines() })
}
