// internal/workers/assessment/submit-assessment/handler_test.go
package submitassessment

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "salesfit-assessment/internal/common/errors"
	"salesfit-assessment/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Generator Implementation
// ==========================

type fakeGenerator struct {
	text    string
	err     error
	panics  bool
	block   bool
	calls   int32
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.prompts = append(f.prompts, prompt)
	if f.panics {
		panic("generator exploded")
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.FixedZone("EET", 2*60*60))

func createTestConfig() *Config {
	return &Config{
		APIKey:  "test-key",
		Model:   DefaultModel,
		Timeout: 5 * time.Second,
	}
}

func newTestClient(t *testing.T, cfg *Config, gen Generator) *Client {
	c := NewClient(cfg, gen, logger.NewTestLogger(t))
	c.now = func() time.Time { return fixedNow }
	return c
}

func createTestInput() Input {
	return Input{Prompt: "assess this business", SdeTotal: 42000, RequestID: "req-1"}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestSubmit_Success(t *testing.T) {
	gen := &fakeGenerator{text: "## 1. SALESFIT SCORE\n80/100"}
	client := newTestClient(t, createTestConfig(), gen)

	resp, err := client.Submit(context.Background(), createTestInput())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.Success)
	assert.Equal(t, "## 1. SALESFIT SCORE\n80/100", resp.AssessmentText)
	assert.Equal(t, 42000.0, resp.SdeTotal)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, fixedNow.UTC(), resp.Timestamp)
	assert.Empty(t, resp.ErrorMessage)
	assert.Equal(t, []string{"assess this business"}, gen.prompts)
}

func TestSubmit_MissingCredential(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		gen  *fakeGenerator
	}{
		{"empty key", &Config{Model: DefaultModel}, &fakeGenerator{text: "x"}},
		{"blank key", &Config{APIKey: "   "}, &fakeGenerator{text: "x"}},
		{"nil config", nil, &fakeGenerator{text: "x"}},
		{"no generator", createTestConfig(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gen Generator
			if tt.gen != nil {
				gen = tt.gen
			}
			client := newTestClient(t, tt.cfg, gen)

			resp, err := client.Submit(context.Background(), createTestInput())
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfiguration))
			require.NotNil(t, resp)
			assert.False(t, resp.Success)
			assert.Equal(t, apperrors.MsgConfiguration, resp.ErrorMessage)
			assert.Equal(t, 42000.0, resp.SdeTotal)
			if tt.gen != nil {
				assert.Equal(t, int32(0), atomic.LoadInt32(&tt.gen.calls))
			}
			assert.False(t, client.Configured())
		})
	}
}

func TestSubmit_UpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	client := newTestClient(t, createTestConfig(), gen)

	resp, err := client.Submit(context.Background(), createTestInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeService))

	require.NotNil(t, resp)
	assert.False(t, resp.Success)
	assert.Equal(t, apperrors.MsgService, resp.ErrorMessage)
	assert.Contains(t, resp.ErrorDetails, "quota exceeded")
	assert.Empty(t, resp.AssessmentText)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gen.calls), "must not retry")
}

func TestSubmit_EmptyAnswer(t *testing.T) {
	client := newTestClient(t, createTestConfig(), &fakeGenerator{text: "  \n"})

	resp, err := client.Submit(context.Background(), createTestInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLLMEmptyAnswer))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.ErrorDetails, "LLM_EMPTY_ANSWER")
}

func TestSubmit_GeneratorPanic(t *testing.T) {
	client := newTestClient(t, createTestConfig(), &fakeGenerator{panics: true})

	var (
		resp interface{}
		err  error
	)
	assert.NotPanics(t, func() {
		resp, err = client.Submit(context.Background(), createTestInput())
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLLMPanic))
	assert.NotNil(t, resp)
}

func TestSubmit_Timeout(t *testing.T) {
	client := newTestClient(t, createTestConfig(), &fakeGenerator{block: true})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	resp, err := client.Submit(ctx, createTestInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeService))
	assert.True(t, errors.Is(err, ErrLLMTimeout))
	assert.False(t, resp.Success)
}

func TestGenerate_SharesMapping(t *testing.T) {
	text, err := newTestClient(t, createTestConfig(), &fakeGenerator{text: "pong"}).
		Generate(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", text)

	_, err = newTestClient(t, &Config{}, &fakeGenerator{text: "pong"}).Generate(context.Background(), "ping")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfiguration))

	_, err = newTestClient(t, createTestConfig(), &fakeGenerator{err: errors.New("boom")}).Generate(context.Background(), "ping")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeService))
}

// ==========================
// Config Tests
// ==========================

func TestConfig_HasCredential(t *testing.T) {
	assert.True(t, createTestConfig().HasCredential())
	assert.False(t, (&Config{}).HasCredential())
	var nilCfg *Config
	assert.False(t, nilCfg.HasCredential())
}
