// internal/workers/assessment/assess-questionnaire/handler.go
package assessquestionnaire

import (
	"context"
	"net/http"
	"time"

	apperrors "salesfit-assessment/internal/common/errors"
	"salesfit-assessment/internal/common/logger"
	"salesfit-assessment/internal/common/metrics"
	"salesfit-assessment/internal/common/observability"
	"salesfit-assessment/internal/models"
	calculatesde "salesfit-assessment/internal/workers/assessment/calculate-sde"
	composeprompt "salesfit-assessment/internal/workers/assessment/compose-prompt"
	normalizechecklist "salesfit-assessment/internal/workers/assessment/normalize-checklist"
	submitassessment "salesfit-assessment/internal/workers/assessment/submit-assessment"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TaskType = "assess-questionnaire"
)

// Submitter dispatches a composed prompt. *submitassessment.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, in submitassessment.Input) (*models.AssessmentResponse, error)
}

// Handler runs one questionnaire submission through the assessment pipeline.
// It holds no per-request state and is safe for concurrent use.
type Handler struct {
	submitter Submitter
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(submitter Submitter, obs *observability.Observability, log logger.Logger) *Handler {
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Handler{
		submitter: submitter,
		obs:       obs,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
		now: time.Now,
	}
}

// Execute validates, normalizes, computes, composes and submits. The response
// is never nil; when err is non-nil it is negative and err is a StandardError.
func (h *Handler) Execute(ctx context.Context, sub *models.QuestionnaireSubmission) (*models.AssessmentResponse, error) {
	start := h.now()
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = ContextWithRequestID(ctx, requestID)
	}
	log := h.logger.WithFields(map[string]interface{}{"requestId": requestID})

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.String("requestId", requestID))
	defer span.End()

	resp, err := h.execute(ctx, log, requestID, sub)

	outcome := metrics.OutcomeSucceeded
	if err != nil {
		stdErr := apperrors.Normalize(err)
		err = stdErr
		outcome = metrics.OutcomeFailed
		if stdErr.HTTPStatus() < http.StatusInternalServerError {
			outcome = metrics.OutcomeRejected
		}
		span.RecordError(stdErr)
		span.SetStatus(codes.Error, string(stdErr.Code))
		if resp == nil {
			resp = &models.AssessmentResponse{
				Success:      false,
				Timestamp:    h.now().UTC(),
				ErrorMessage: stdErr.Message,
				ErrorDetails: stdErr.Details,
				RequestID:    requestID,
			}
		}
	}

	elapsed := h.now().Sub(start)
	metrics.AssessmentsTotal.WithLabelValues(outcome).Inc()
	metrics.AssessmentDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	h.obs.RecordAssessmentProcessed(ctx, outcome)
	h.obs.RecordAssessmentDuration(ctx, elapsed, outcome)

	log.Info("assessment finished", map[string]interface{}{
		"outcome":    outcome,
		"durationMs": elapsed.Milliseconds(),
	})
	return resp, err
}

func (h *Handler) execute(ctx context.Context, log logger.Logger, requestID string, sub *models.QuestionnaireSubmission) (*models.AssessmentResponse, error) {
	if sub == nil {
		return nil, apperrors.NewInvalidRequestError("request body is empty")
	}

	var info models.BasicInfo
	err := h.stage(ctx, "validate-basic-info", func(context.Context) error {
		if err := sub.BasicInfo.Validate(); err != nil {
			return err
		}
		info = sub.BasicInfo.WithDefaults()
		return nil
	})
	if err != nil {
		return nil, err
	}

	var checklist models.Checklist
	err = h.stage(ctx, normalizechecklist.TaskType, func(context.Context) error {
		var nerr error
		checklist, nerr = normalizechecklist.Normalize(sub.AssessmentChecklist)
		return nerr
	})
	if err != nil {
		return nil, err
	}

	var sde models.SdeResult
	_ = h.stage(ctx, calculatesde.TaskType, func(context.Context) error {
		sde = calculatesde.Calculate(sub.SdeCalculation)
		return nil
	})

	req := models.AssessmentRequest{BasicInfo: info, Sde: sde, Checklist: checklist}
	var prompt string
	err = h.stage(ctx, composeprompt.TaskType, func(context.Context) error {
		var cerr error
		prompt, cerr = composeprompt.ComposeRequest(req)
		return cerr
	})
	if err != nil {
		return nil, err
	}

	affirmative, attention := checklist.Tally()
	log.Info("assessment prompt composed", map[string]interface{}{
		"businessType":    info.BusinessType,
		"sdeTotal":        sde.Total(),
		"affirmative":     affirmative,
		"attention":       attention,
		"promptLength":    len(prompt),
		"composerVersion": composeprompt.ComposerVersion,
	})

	var resp *models.AssessmentResponse
	err = h.stage(ctx, submitassessment.TaskType, func(ctx context.Context) error {
		var serr error
		resp, serr = h.submitter.Submit(ctx, submitassessment.Input{
			Prompt:    prompt,
			SdeTotal:  sde.Total(),
			RequestID: requestID,
		})
		return serr
	})
	return resp, err
}

func (h *Handler) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := h.obs.StartSpan(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
