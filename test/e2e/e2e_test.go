// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesfit-assessment/internal/common/config"
	commonhttp "salesfit-assessment/internal/common/http"
	"salesfit-assessment/internal/common/logger"
	"salesfit-assessment/internal/common/observability"
	"salesfit-assessment/internal/server"
	assessquestionnaire "salesfit-assessment/internal/workers/assessment/assess-questionnaire"
	normalizechecklist "salesfit-assessment/internal/workers/assessment/normalize-checklist"
	submitassessment "salesfit-assessment/internal/workers/assessment/submit-assessment"
)

// fakeGemini mimics the generateContent endpoint of the Gemini API.
type fakeGemini struct {
	mu      sync.Mutex
	prompts []string
	status  int
	answer  string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &req)

	f.mu.Lock()
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		f.prompts = append(f.prompts, req.Contents[0].Parts[0].Text)
	}
	status, answer := f.status, f.answer
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"fake upstream failure","status":"UNAVAILABLE"}}`, status)
		return
	}
	resp := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []interface{}{map[string]string{"text": answer}},
				},
				"finishReason": "STOP",
			},
		},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeGemini) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

type stack struct {
	api    *httptest.Server
	gemini *fakeGemini
}

// startStack wires config, the Gemini adapter, the pipeline and the router
// the same way cmd/assessment-server does.
func startStack(t *testing.T, apiKey string, gemini *fakeGemini) *stack {
	t.Helper()
	t.Setenv("GOOGLE_API_KEY", "")

	upstream := httptest.NewServer(gemini)
	t.Cleanup(upstream.Close)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	yaml := fmt.Sprintf(`app:
  name: salesfit-assessment-e2e
  environment: test
server:
  port: 5001
apis:
  genai:
    api_key: "%s"
    base_url: "%s"
    timeout: 10000
logging:
  level: debug
  format: console
`, apiKey, upstream.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0644))

	cfg, err := config.LoadFromFile(cfgPath)
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	obs := observability.New(observability.Options{
		ServiceName: cfg.Observability.ServiceName,
		Registerer:  promclient.NewRegistry(),
	})
	t.Cleanup(obs.Shutdown)

	genaiCfg := submitassessment.LoadConfig(cfg.APIs.GenAI)
	var generator submitassessment.Generator
	if genaiCfg.HasCredential() {
		gen, err := submitassessment.NewGenAIGenerator(context.Background(), genaiCfg, commonhttp.NewClient(genaiCfg.Timeout))
		require.NoError(t, err)
		generator = gen
	}
	llmClient := submitassessment.NewClient(genaiCfg, generator, log)
	pipeline := assessquestionnaire.NewHandler(llmClient, obs, log)

	api := server.New(pipeline, llmClient, server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HasAPIKey:      llmClient.Configured(),
	}, log)

	srv := httptest.NewServer(api.Routes())
	t.Cleanup(srv.Close)
	return &stack{api: srv, gemini: gemini}
}

func submission(answers interface{}) map[string]interface{} {
	return map[string]interface{}{
		"basicInfo": map[string]string{
			"businessType":    "Pizzeria",
			"location":        "Jyväskylä",
			"website":         "",
			"operationPeriod": "8 years",
			"saleTime":        "1-2 years",
		},
		"sdeCalculation": map[string]interface{}{
			"netProfit":        "42000",
			"ownerSalary":      "",
			"personalExpenses": "abc",
			"unusualExpenses":  0,
			"interest":         nil,
			"depreciation":     "",
			"total":            123,
		},
		"assessmentChecklist": answers,
	}
}

func postJSON(t *testing.T, url string, v interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestFullE2E(t *testing.T) {
	gemini := &fakeGemini{status: http.StatusOK, answer: "## ⚠️ AI-GENERATED ASSESSMENT DISCLAIMER\n\n## 1. SALESFIT SCORE & OVERALL READINESS\n**88/100**"}
	st := startStack(t, "e2e-key", gemini)

	t.Log("🚀 Submitting questionnaire through the full stack...")

	status, body := postJSON(t, st.api.URL+"/api/questionnaire/assess", submission(normalizechecklist.UniformAnswers(true)))
	require.Equal(t, http.StatusOK, status, body)

	assert.Equal(t, true, body["success"])
	assert.Equal(t, gemini.answer, body["assessment"])
	assert.Equal(t, 42000.0, body["sdeTotal"])
	assert.NotEmpty(t, body["requestId"])
	assert.NotEmpty(t, body["timestamp"])

	prompts := gemini.Prompts()
	require.Len(t, prompts, 1)
	prompt := prompts[0]
	assert.Contains(t, prompt, "- Business Type: Pizzeria\n")
	assert.Contains(t, prompt, "- Online Presence: Not provided\n")
	assert.Contains(t, prompt, "- **Total SDE: €42,000**")
	assert.Equal(t, 24, strings.Count(prompt, "🟢"))
	assert.Equal(t, 0, strings.Count(prompt, "🔴"))

	t.Log("✅ Full assessment flow successful")
}

func TestE2E_FreeFormPrompt(t *testing.T) {
	gemini := &fakeGemini{status: http.StatusOK, answer: "Hello!"}
	st := startStack(t, "e2e-key", gemini)

	status, body := postJSON(t, st.api.URL+"/api/gemini/test", map[string]string{"prompt": "Say hello"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Hello!", body["response"])
	assert.Equal(t, []string{"Say hello"}, gemini.Prompts())
}

func TestE2E_MissingCredential(t *testing.T) {
	gemini := &fakeGemini{status: http.StatusOK, answer: "unused"}
	st := startStack(t, "", gemini)

	resp, err := http.Get(st.api.URL + "/api/health")
	require.NoError(t, err)
	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, false, health["environment"].(map[string]interface{})["hasGoogleApiKey"])

	status, body := postJSON(t, st.api.URL+"/api/questionnaire/assess", submission(normalizechecklist.UniformAnswers(true)))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Google API key not found in environment variables", body["error"])
	assert.Empty(t, gemini.Prompts())
}

func TestE2E_UpstreamFailure(t *testing.T) {
	gemini := &fakeGemini{status: http.StatusServiceUnavailable}
	st := startStack(t, "e2e-key", gemini)

	status, body := postJSON(t, st.api.URL+"/api/questionnaire/assess", submission(normalizechecklist.UniformAnswers(false)))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to process business assessment", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestE2E_MissingIndicator(t *testing.T) {
	gemini := &fakeGemini{status: http.StatusOK, answer: "unused"}
	st := startStack(t, "e2e-key", gemini)

	answers := normalizechecklist.UniformAnswers(true)
	delete(answers.Company, "crmSystem")

	status, body := postJSON(t, st.api.URL+"/api/questionnaire/assess", submission(answers))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_INDICATOR", body["code"])
	assert.Equal(t, "company.crmSystem", body["details"])
	assert.Empty(t, gemini.Prompts())
}

func TestE2E_BlankCredentialReportedAsMissing(t *testing.T) {
	gemini := &fakeGemini{status: http.StatusOK, answer: "unused"}
	st := startStack(t, "   ", gemini)

	resp, err := http.Get(st.api.URL + "/")
	require.NoError(t, err)
	var root map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&root))
	resp.Body.Close()
	assert.Equal(t, false, root["hasApiKey"])

	status, body := postJSON(t, st.api.URL+"/api/questionnaire/assess", submission(normalizechecklist.UniformAnswers(true)))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "CONFIGURATION_ERROR", body["code"])
	assert.Empty(t, gemini.Prompts())
}
