// internal/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime"
	"strings"

	apperrors "salesfit-assessment/internal/common/errors"
	"salesfit-assessment/internal/common/validation"
	"salesfit-assessment/internal/models"
	assessquestionnaire "salesfit-assessment/internal/workers/assessment/assess-questionnaire"
)

type rootResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	HasAPIKey bool   `json:"hasApiKey"`
}

type healthResponse struct {
	Status      string            `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Environment healthEnvironment `json:"environment"`
}

type healthEnvironment struct {
	GoVersion       string `json:"goVersion"`
	HasGoogleAPIKey bool   `json:"hasGoogleApiKey"`
}

type assessResponse struct {
	Success    bool    `json:"success"`
	Assessment string  `json:"assessment"`
	SdeTotal   float64 `json:"sdeTotal"`
	Timestamp  string  `json:"timestamp"`
	RequestID  string  `json:"requestId"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type promptResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, rootResponse{
		Message:   "Backend server is running!",
		Timestamp: s.timestamp(),
		HasAPIKey: s.opts.HasAPIKey,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.timestamp(),
		Environment: healthEnvironment{
			GoVersion:       runtime.Version(),
			HasGoogleAPIKey: s.opts.HasAPIKey,
		},
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   s.timestamp(),
	})
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	requestID := assessquestionnaire.RequestIDFromContext(r.Context())

	body, err := readBody(w, r)
	if err != nil {
		s.errors.WriteError(w, requestID, err)
		return
	}

	result, err := validation.ValidateDocument(body, s.schema)
	if err != nil {
		s.errors.WriteError(w, requestID, apperrors.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if !result.Valid {
		s.errors.WriteError(w, requestID,
			apperrors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}

	var sub models.QuestionnaireSubmission
	if err := json.Unmarshal(body, &sub); err != nil {
		s.errors.WriteError(w, requestID, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	resp, err := s.assessor.Execute(r.Context(), &sub)
	if err != nil {
		s.errors.WriteError(w, requestID, err)
		return
	}

	apperrors.WriteJSON(w, http.StatusOK, assessResponse{
		Success:    true,
		Assessment: resp.AssessmentText,
		SdeTotal:   resp.SdeTotal,
		Timestamp:  resp.Timestamp.UTC().Format(apperrors.TimestampLayout),
		RequestID:  resp.RequestID,
	})
}

func (s *Server) handleGeminiTest(w http.ResponseWriter, r *http.Request) {
	requestID := assessquestionnaire.RequestIDFromContext(r.Context())

	body, err := readBody(w, r)
	if err != nil {
		s.errors.WriteError(w, requestID, err)
		return
	}

	var req promptRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errors.WriteError(w, requestID, apperrors.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.errors.WriteError(w, requestID, apperrors.NewInvalidRequestError("prompt is required"))
		return
	}

	text, err := s.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		s.errors.WriteError(w, requestID, err)
		return
	}

	apperrors.WriteJSON(w, http.StatusOK, promptResponse{
		Success:   true,
		Response:  text,
		Timestamp: s.timestamp(),
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewInvalidRequestError("request body too large")
		}
		return nil, apperrors.NewInvalidRequestError("read request body: " + err.Error())
	}
	return body, nil
}
