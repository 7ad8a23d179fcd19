package genai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindbloom/pkg/genai"

	"github.com/stretchr/testify/assert"
)

// modelServer fakes the generateContent endpoint, wrapping the given payload
// in a single candidate the way the real API does.
func modelServer(t *testing.T, payload interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.NotEmpty(t, r.URL.Query().Get("key"))

		raw, err := json.Marshal(payload)
		assert.NoError(t, err)

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": string(raw)}},
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestClient_Chat(t *testing.T) {
	server := modelServer(t, genai.GenieResponse{
		Message:     "Take a deep breath.",
		Tone:        "empathetic",
		Suggestions: []string{"Try a short walk"},
	})
	defer server.Close()

	client := genai.NewClient(genai.Config{APIKey: "test-key", BaseURL: server.URL})
	resp := client.Chat(context.Background(), "I'm overwhelmed.", "")

	assert.Equal(t, "Take a deep breath.", resp.Message)
	assert.Equal(t, "empathetic", resp.Tone)
	assert.Equal(t, []string{"Try a short walk"}, resp.Suggestions)
}

func TestClient_AnalyzeMood(t *testing.T) {
	server := modelServer(t, genai.MoodAnalysis{
		Mood:       "sad",
		Confidence: 0.82,
		Insights:   []string{"Expressions of loss"},
	})
	defer server.Close()

	client := genai.NewClient(genai.Config{APIKey: "test-key", BaseURL: server.URL})
	analysis := client.AnalyzeMood(context.Background(), "I miss my old friends.")

	assert.Equal(t, "sad", analysis.Mood)
	assert.Equal(t, 0.82, analysis.Confidence)
}

func TestClient_MotivationalQuote(t *testing.T) {
	server := modelServer(t, genai.Quote{Quote: "Grow anyway.", Author: "Unknown", Theme: "resilience"})
	defer server.Close()

	client := genai.NewClient(genai.Config{APIKey: "test-key", BaseURL: server.URL})
	quote := client.MotivationalQuote(context.Background())

	assert.Equal(t, "Grow anyway.", quote.Quote)
}

func TestClient_FallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{APIKey: "test-key", BaseURL: server.URL})

	analysis := client.AnalyzeMood(context.Background(), "Some text.")
	assert.Equal(t, "neutral", analysis.Mood)

	chat := client.Chat(context.Background(), "Hello", "")
	assert.NotEmpty(t, chat.Message)
	assert.Equal(t, "supportive", chat.Tone)

	quote := client.MotivationalQuote(context.Background())
	assert.Equal(t, "Every moment is a fresh beginning.", quote.Quote)
}

func TestClient_FallbackOnMalformedModelJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "this is not json"}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{APIKey: "test-key", BaseURL: server.URL})
	analysis := client.AnalyzeMood(context.Background(), "Some text.")

	assert.Equal(t, "neutral", analysis.Mood)
}

func TestClient_FallbackWithoutAPIKey(t *testing.T) {
	// No key configured: no request is made and the fallback is returned.
	client := genai.NewClient(genai.Config{})
	analysis := client.AnalyzeMood(context.Background(), "Some text.")

	assert.Equal(t, "neutral", analysis.Mood)
	assert.Equal(t, 0.5, analysis.Confidence)
}
