package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	circuitbreaker "github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

var ErrNotConfigured = errors.New("text generation API key is not configured")

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GeminiClient calls the generateContent REST method of the Gemini API.
type GeminiClient struct {
	config  config.LLMConfig
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func CreateGeminiClient(config config.LLMConfig) *GeminiClient {
	return &GeminiClient{
		config:  config,
		breaker: circuitbreaker.CreateCircuitBreaker("llm"),
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req := httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(c.config.Endpoint, "/"), c.config.Model),
		Method: http.MethodPost,
		Body:   body,
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"x-goog-api-key": c.config.APIKey,
		},
		Timeout: c.config.Timeout,
	}

	respBody, err := c.breaker.Execute(func() ([]byte, error) {
		statusCode, respBody, err := httpclient.SendRequest(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrUpstreamUnavailable, err)
		}
		if statusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: generateContent returned status %d", errs.ErrUpstreamUnavailable, statusCode)
		}
		return respBody, nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Generate").Msg("")
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal generate response: %w", err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 {
		for _, p := range resp.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}

	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("%w: empty completion", errs.ErrUpstreamUnavailable)
	}

	return reply, nil
}
