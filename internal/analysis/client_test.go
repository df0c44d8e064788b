package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ticketwiz/ticketwiz/internal/config"
)

func testClientConfig(baseURL string) config.AnalysisConfig {
	return config.AnalysisConfig{
		APIKey:         "test-key",
		Model:          "gemini-flash-latest",
		BaseURL:        baseURL,
		TimeoutSeconds: 5,
	}
}

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestAnalyzeSendsPromptAndReturnsRawText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(geminiReply(`{"sentiment_score": 0.4}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(testClientConfig(srv.URL), zap.NewNop())
	raw, err := client.Analyze(context.Background(), "Login broken", "Cannot sign in since Monday")

	require.NoError(t, err)
	assert.Equal(t, `{"sentiment_score": 0.4}`, raw)
	assert.Equal(t, "/models/gemini-flash-latest:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, `"Login broken"`)
	assert.Contains(t, prompt, `"Cannot sign in since Monday"`)
	assert.Contains(t, prompt, "sentiment_score")
	assert.Contains(t, prompt, `"high", "medium", or "low"`)
}

func TestAnalyzeErrorsOnProviderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewGeminiClient(testClientConfig(srv.URL), zap.NewNop())
	_, err := client.Analyze(context.Background(), "t", "d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAnalyzeErrorsOnEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	client := NewGeminiClient(testClientConfig(srv.URL), zap.NewNop())
	_, err := client.Analyze(context.Background(), "t", "d")
	require.Error(t, err)
}

func TestAnalyzeErrorsWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewGeminiClient(testClientConfig(srv.URL), zap.NewNop())
	_, err := client.Analyze(context.Background(), "t", "d")
	require.Error(t, err)
}

func TestAnalyzeRequiresAPIKey(t *testing.T) {
	cfg := testClientConfig("http://127.0.0.1:1")
	cfg.APIKey = ""

	client := NewGeminiClient(cfg, zap.NewNop())
	_, err := client.Analyze(context.Background(), "t", "d")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnalyzeRespectsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewGeminiClient(testClientConfig(srv.URL), zap.NewNop())
	_, err := client.Analyze(ctx, "t", "d")
	require.Error(t, err)
}
