// Package llm provides the language-model provider boundary: a text
// generation client plus the query enhancement and reranking collaborators
// built on top of it.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hyperjump/eiga/internal/errs"
)

// Defaults for the Ollama generate client.
const (
	DefaultOllamaHost = "http://localhost:11434"
	DefaultModel      = "llama3.2"
	defaultTimeout    = 120 * time.Second
)

// Client generates a completion for a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VisionClient generates a completion for a prompt plus an image. Requires
// a multimodal model.
type VisionClient interface {
	GenerateWithImage(ctx context.Context, prompt string, image []byte) (string, error)
}

// OllamaConfig configures the HTTP generate client.
type OllamaConfig struct {
	Host    string
	Model   string
	Timeout time.Duration
}

// OllamaClient calls Ollama's /api/generate endpoint.
type OllamaClient struct {
	client *http.Client
	cfg    OllamaConfig
}

var (
	_ Client       = (*OllamaClient)(nil)
	_ VisionClient = (*OllamaClient)(nil)
)

// NewOllamaClient creates a client, applying defaults for unset fields.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.Host == "" {
		cfg.Host = DefaultOllamaHost
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &OllamaClient{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs a single non-streaming completion. Transport and status
// errors are ProviderFailure.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, generateRequest{Model: c.cfg.Model, Prompt: prompt})
}

// GenerateWithImage runs a completion with the image attached, base64-encoded
// per the Ollama generate API. The configured model must accept images.
func (c *OllamaClient) GenerateWithImage(ctx context.Context, prompt string, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errs.InvalidArgument("empty image")
	}
	return c.generate(ctx, generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Images: []string{base64.StdEncoding.EncodeToString(image)},
	})
}

func (c *OllamaClient) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errs.ProviderFailure("generate request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errs.ProviderFailure("generate request: status %d: %s", resp.StatusCode, msg)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errs.ProviderFailure("decode generate response: %v", err)
	}
	return out.Response, nil
}
