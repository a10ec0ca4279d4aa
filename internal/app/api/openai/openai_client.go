package openai

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// requestTimeout bounds one API call; uploads of long recordings are slow.
const requestTimeout = 10 * time.Minute

// NewClient builds an OpenAI client. An empty baseURL keeps the public API endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}

	return openai.NewClientWithConfig(cfg)
}
