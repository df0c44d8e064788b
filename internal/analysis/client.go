package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ticketwiz/ticketwiz/internal/config"
)

// Analyzer obtains a raw analysis text for a ticket. Implementations must
// treat failures as reportable, not fatal: the intake flow substitutes the
// default record whenever Analyze errors.
type Analyzer interface {
	Analyze(ctx context.Context, title, description string) (string, error)
}

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("analysis provider not configured")

const promptTemplate = `Analyze this customer support ticket.
Title: %q
Description: %q

Return ONLY a valid JSON object (no markdown formatting) with these fields:
{
    "sentiment_score": (a number between -1 and 1, e.g. -0.8 for angry),
    "priority": ("high", "medium", or "low"),
    "suggested_solution": (a short response advice)
}`

// GeminiClient calls the Generative Language API's generateContent endpoint
// and returns whatever text the model replies with, unparsed.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	logger     *zap.Logger
}

// NewGeminiClient builds a client with a bounded per-call timeout.
func NewGeminiClient(cfg config.AnalysisConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze sends the fixed-shape instruction with the caller-supplied title
// and description interpolated verbatim. A single attempt is made; there is
// no retry policy.
func (c *GeminiClient) Analyze(ctx context.Context, title, description string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	prompt := fmt.Sprintf(promptTemplate, title, description)
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode provider response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("provider error: %s", decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("provider returned no candidates")
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	c.logger.Debug("analysis reply received", zap.Int("length", len(text)))
	return text, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
