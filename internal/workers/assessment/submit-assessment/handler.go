// internal/workers/assessment/submit-assessment/handler.go
package submitassessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "salesfit-assessment/internal/common/errors"
	"salesfit-assessment/internal/common/logger"
	"salesfit-assessment/internal/common/metrics"
	"salesfit-assessment/internal/models"
)

const (
	TaskType = "submit-assessment"
)

var (
	ErrLLMTimeout     = errors.New("LLM_TIMEOUT")
	ErrLLMEmptyAnswer = errors.New("LLM_EMPTY_ANSWER")
	ErrLLMPanic       = errors.New("LLM_PANIC")
)

// Generator produces a free-text answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client sends composed prompts to the LLM service. Every call is a single
// attempt; failures are mapped to CONFIGURATION_ERROR or SERVICE_ERROR.
type Client struct {
	config    *Config
	generator Generator
	logger    logger.Logger
	now       func() time.Time
}

func NewClient(config *Config, generator Generator, log logger.Logger) *Client {
	return &Client{
		config:    config,
		generator: generator,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
		now: time.Now,
	}
}

// Submit dispatches an assessment prompt. The returned response is never nil;
// on failure it is negative and err carries the typed cause.
func (c *Client) Submit(ctx context.Context, in Input) (*models.AssessmentResponse, error) {
	log := c.logger.WithFields(map[string]interface{}{"requestId": in.RequestID})
	log.Debug("assessment request received", map[string]interface{}{
		"state":        StateIdle,
		"promptLength": len(in.Prompt),
	})

	text, err := c.dispatch(ctx, log, in.Prompt)
	if err != nil {
		stdErr := apperrors.Normalize(err)
		return &models.AssessmentResponse{
			Success:      false,
			SdeTotal:     in.SdeTotal,
			Timestamp:    c.now().UTC(),
			ErrorMessage: stdErr.Message,
			ErrorDetails: stdErr.Details,
			RequestID:    in.RequestID,
		}, stdErr
	}

	return &models.AssessmentResponse{
		Success:        true,
		AssessmentText: text,
		SdeTotal:       in.SdeTotal,
		Timestamp:      c.now().UTC(),
		RequestID:      in.RequestID,
	}, nil
}

// Generate sends a free-form prompt with the same precondition and failure
// mapping as Submit.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.dispatch(ctx, c.logger, prompt)
}

// Configured reports whether a dispatch would pass the credential check.
func (c *Client) Configured() bool {
	return c.config.HasCredential() && c.generator != nil
}

func (c *Client) dispatch(ctx context.Context, log logger.Logger, prompt string) (string, error) {
	if !c.Configured() {
		log.Warn("assessment request rejected", map[string]interface{}{
			"state":     StateFailed,
			"errorCode": string(apperrors.ErrCodeConfiguration),
		})
		metrics.LLMRequestsTotal.WithLabelValues("unconfigured").Inc()
		return "", apperrors.NewConfigurationError()
	}

	start := c.now()
	log.Info("dispatching prompt to LLM service", map[string]interface{}{
		"state": StateDispatched,
		"model": c.config.Model,
	})

	text, err := c.generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrLLMEmptyAnswer
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded && !errors.Is(err, ErrLLMTimeout) {
			err = fmt.Errorf("%w: %v", ErrLLMTimeout, err)
		}
		log.Error("LLM request failed", map[string]interface{}{
			"state":      StateFailed,
			"error":      err,
			"durationMs": c.now().Sub(start).Milliseconds(),
		})
		metrics.LLMRequestsTotal.WithLabelValues(string(StateFailed)).Inc()
		return "", apperrors.NewServiceError(err)
	}

	log.Info("LLM request completed", map[string]interface{}{
		"state":          StateSucceeded,
		"responseLength": len(text),
		"durationMs":     c.now().Sub(start).Milliseconds(),
	})
	metrics.LLMRequestsTotal.WithLabelValues(string(StateSucceeded)).Inc()
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLLMPanic, r)
		}
	}()
	return c.generator.Generate(ctx, prompt)
}
