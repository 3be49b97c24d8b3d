package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/placement-prep/internal/db"
)

// ResumeResponse is returned after a resume is created or updated
type ResumeResponse struct {
	ID     string          `json:"id"`
	Resume json.RawMessage `json:"resume,omitempty"`
}

// ResumeListResponse lists stored resumes
type ResumeListResponse struct {
	Resumes []db.Summary `json:"resumes"`
	Count   int          `json:"count"`
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid resume ID"}
	}
	return id, nil
}

// readResume decodes and validates a resume body
func (s *Server) readResume(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.decodeJSON(w, r, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// handleCreateResume stores a new resume under a fresh ID
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	raw, err := s.readResume(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resume, err := parseResume(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resume.ID = ""
	id, err := s.store.SaveResume(r.Context(), resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("resume created", "id", id)
	s.jsonResponse(w, http.StatusCreated, ResumeResponse{ID: id.String()})
}

// handleListResumes lists stored resumes, most recently updated first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListResumes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeListResponse{Resumes: summaries, Count: len(summaries)})
}

// handleGetResume returns a stored resume
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleUpdateResume replaces an existing resume
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	raw, err := s.readResume(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resume, err := parseResume(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.store.GetResume(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	resume.ID = id.String()
	if _, err := s.store.SaveResume(r.Context(), resume); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeResponse{ID: id.String()})
}

// handleDeleteResume deletes a stored resume
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleScoreStoredResume scores a stored resume: ?domain=&level=&strategy=
func (s *Server) handleScoreStoredResume(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	query := r.URL.Query()
	domain := query.Get("domain")
	if domain == "" {
		s.writeError(w, r, &ErrValidation{Field: "domain", Message: "domain query parameter is required"})
		return
	}
	strategy, err := s.normalizeStrategy(query.Get("strategy"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	eng, err := s.engineFor(r.Context(), domain, query.Get("level"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.score(eng, strategy, &record.Resume, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
