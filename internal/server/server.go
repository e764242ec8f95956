// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	apperrors "salesfit-assessment/internal/common/errors"
	"salesfit-assessment/internal/common/logger"
	"salesfit-assessment/internal/common/metrics"
	"salesfit-assessment/internal/common/validation"
	"salesfit-assessment/internal/models"
	assessquestionnaire "salesfit-assessment/internal/workers/assessment/assess-questionnaire"
	normalizechecklist "salesfit-assessment/internal/workers/assessment/normalize-checklist"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

const RequestIDHeader = "X-Request-ID"

// Assessor runs a questionnaire submission through the pipeline.
type Assessor interface {
	Execute(ctx context.Context, sub *models.QuestionnaireSubmission) (*models.AssessmentResponse, error)
}

// PromptGenerator answers free-form prompts.
type PromptGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	AllowedOrigins []string
	HasAPIKey      bool
	// MetricsHandler serves /metrics; nil means promhttp.Handler().
	MetricsHandler http.Handler
}

type Server struct {
	assessor  Assessor
	generator PromptGenerator
	opts      Options
	logger    logger.Logger
	errors    *apperrors.ErrorHandler
	schema    validation.JSONSchema
	now       func() time.Time
}

func New(assessor Assessor, generator PromptGenerator, opts Options, log logger.Logger) *Server {
	if opts.MetricsHandler == nil {
		opts.MetricsHandler = promhttp.Handler()
	}
	log = log.WithFields(map[string]interface{}{"component": "http"})
	return &Server{
		assessor:  assessor,
		generator: generator,
		opts:      opts,
		logger:    log,
		errors:    apperrors.NewErrorHandler(log),
		schema:    normalizechecklist.RequestSchema(),
		now:       time.Now,
	}
}

// Routes builds the router with CORS, request IDs, access logging and panic recovery.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/ready", s.handleReady)
	r.Method(http.MethodGet, "/metrics", s.opts.MetricsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/questionnaire/assess", s.handleAssess)
		r.Post("/gemini/test", s.handleGeminiTest)
	})
	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := assessquestionnaire.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()

		s.logger.Debug("http request", map[string]interface{}{
			"method":     r.Method,
			"route":      route,
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"durationMs": s.now().Sub(start).Milliseconds(),
			"requestId":  assessquestionnaire.RequestIDFromContext(r.Context()),
		})
	})
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(apperrors.TimestampLayout)
}
