package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Jmaradona/makeitshorter-sub000/internal/enhance"
	"github.com/Jmaradona/makeitshorter-sub000/internal/server/middleware"
	"github.com/Jmaradona/makeitshorter-sub000/internal/target"
	"github.com/Jmaradona/makeitshorter-sub000/internal/textops"
	"github.com/Jmaradona/makeitshorter-sub000/internal/usage"
)

// targetRequest asks for the word-count target a length mode implies for
// some content. The UI calls this instead of duplicating the counting
// and parsing rules client-side.
type targetRequest struct {
	Content    string            `json:"content"`
	LengthMode target.Mode       `json:"lengthMode"`
	InputType  textops.InputType `json:"inputType"`
}

type targetResponse struct {
	TargetWords int `json:"targetWords"`
	BodyWords   int `json:"bodyWords"`
}

// handleEnhance runs one enhancement request through the pipeline.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req enhance.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	id := s.identity(r)
	result, err := s.enhancer.Enhance(r.Context(), id, &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("[server] enhance failed: %v", err)
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleTarget computes the target word count for a length mode. Quota
// is not consulted; this is a pure calculation.
func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.errorResponse(w, http.StatusBadRequest, "content must not be empty")
		return
	}
	if !req.LengthMode.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "lengthMode must be one of shorter, same, longer")
		return
	}
	if req.InputType == "" {
		req.InputType = textops.TypeEmail
	}

	body := req.Content
	if req.InputType.Structured() {
		body = textops.ExtractParts(req.Content).Body
	}
	s.jsonResponse(w, http.StatusOK, targetResponse{
		TargetWords: target.Compute(req.Content, req.LengthMode, req.InputType),
		BodyWords:   textops.CountWords(body),
	})
}

// handleUsage reports the caller's current quota status without
// consuming any of it.
func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	status, err := s.gate.Check(r.Context(), s.identity(r))
	if err != nil {
		log.Printf("[server] usage check failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "usage status is temporarily unavailable")
		return
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// handleHealth returns server health status including dependency pings.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"status": "ok"}
	healthy := true

	if s.members != nil {
		if err := s.members.Ping(ctx); err != nil {
			checks["postgres"] = "unreachable"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if s.rdb != nil {
		if err := s.rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		checks["status"] = "degraded"
		s.jsonResponse(w, http.StatusServiceUnavailable, checks)
		return
	}
	s.jsonResponse(w, http.StatusOK, checks)
}

// identity resolves the caller: user ID from a validated token, client
// IP otherwise.
func (s *Server) identity(r *http.Request) usage.Identity {
	if userID, ok := middleware.UserID(r); ok {
		return usage.Identity{UserID: userID}
	}
	return usage.Identity{ClientIP: s.extractClientID(r)}
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
