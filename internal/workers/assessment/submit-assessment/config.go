// internal/workers/assessment/submit-assessment/config.go
package submitassessment

import (
	"strings"
	"time"

	"salesfit-assessment/internal/common/config"
)

const (
	DefaultModel   = "gemini-2.5-pro"
	DefaultTimeout = 120 * time.Second
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// LoadConfig maps the GenAI section of the service configuration.
func LoadConfig(cfg config.GenAIConfig) *Config {
	c := &Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: config.GetDuration(cfg.Timeout),
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c *Config) HasCredential() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}
