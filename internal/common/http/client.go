// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// Client is the outbound transport used for the LLM service. The timeout lives
// here, not in the assessment core.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client; timeout <= 0 means no client-side deadline.
func NewClient(timeout time.Duration) *Client {
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HTTPClient exposes the underlying client for SDKs that take a *http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}
