// internal/common/errors/errors_test.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors []string
	warns  []string
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.errors = append(l.errors, msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.warns = append(l.warns, msg) }

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeConfiguration, http.StatusInternalServerError},
		{ErrCodeService, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeMissingIndicator, http.StatusBadRequest},
		{ErrCodeUnknownIndicator, http.StatusBadRequest},
		{ErrCodeInvalidRequest, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestNewMissingIndicatorError_Metadata(t *testing.T) {
	err := NewMissingIndicatorError([]string{"company.crmSystem", "futureProspects.goodIndustryProspects"})

	assert.Equal(t, ErrCodeMissingIndicator, err.Code)
	assert.Equal(t, "company", err.Metadata["group"])
	assert.Equal(t, "crmSystem", err.Metadata["indicator"])
	assert.Equal(t, "company.crmSystem, futureProspects.goodIndustryProspects", err.Details)
}

func TestNewServiceError_WrapsCause(t *testing.T) {
	cause := stderrors.New("status 503")
	err := NewServiceError(cause)

	assert.Equal(t, MsgService, err.Message)
	assert.Equal(t, "status 503", err.Details)
	assert.True(t, stderrors.Is(err, cause))
	assert.False(t, err.Retryable)
}

func TestNormalizeAndIsCode(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NewConfigurationError())
	assert.True(t, IsCode(wrapped, ErrCodeConfiguration))
	assert.Equal(t, ErrCodeConfiguration, Normalize(wrapped).Code)

	plain := stderrors.New("unexpected")
	assert.False(t, IsCode(plain, ErrCodeConfiguration))
	norm := Normalize(plain)
	assert.Equal(t, ErrCodeInternal, norm.Code)
	assert.Equal(t, "unexpected", norm.Details)

	assert.Nil(t, Normalize(nil))
}

func TestErrorHandler_WriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantLevel  string
	}{
		{"configuration", NewConfigurationError(), http.StatusInternalServerError, MsgConfiguration, "error"},
		{"service", NewServiceError(stderrors.New("quota exceeded")), http.StatusInternalServerError, MsgService, "error"},
		{"missing indicator", NewMissingIndicatorError([]string{"entrepreneur.replaceableRole"}), http.StatusBadRequest, "Assessment checklist is missing required indicators", "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			rec := httptest.NewRecorder()

			NewErrorHandler(log).WriteError(rec, "req-1", tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, "req-1", body.RequestID)
			assert.NotEmpty(t, body.Timestamp)

			if tt.wantLevel == "error" {
				assert.Len(t, log.errors, 1)
			} else {
				assert.Len(t, log.warns, 1)
			}
		})
	}
}
