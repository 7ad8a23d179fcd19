// Package genai is a small client for the Gemini generateContent REST API.
// Every call is best-effort: on any transport, API, or decoding failure the
// methods log the cause and return a canned fallback instead of an error, so
// callers on the journal-save and chat paths never fail because the model is
// unreachable.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-pro"
	defaultTimeout = 5 * time.Second
)

// Config holds Gemini client settings. BaseURL is overridable for tests.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Gemini client. An empty API key is allowed; calls
// will fail and fall back.
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// GenieResponse is the structured reply of the AI companion.
type GenieResponse struct {
	Message     string   `json:"message"`
	Tone        string   `json:"tone"` // supportive|encouraging|empathetic|motivational
	Suggestions []string `json:"suggestions,omitempty"`
}

// MoodAnalysis is the classifier's view of a piece of text.
type MoodAnalysis struct {
	Mood       string   `json:"mood"` // very_happy|happy|neutral|sad|very_sad
	Confidence float64  `json:"confidence"`
	Insights   []string `json:"insights"`
}

// Quote is a generated motivational quote.
type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Theme  string `json:"theme"`
}

const genieSystemPrompt = `You are a supportive AI companion called "Ur Genie" in the MindBloom wellness app.
You embody the wisdom and magical support of a caring genie friend. Your role is to:

- Provide empathetic, supportive responses to users sharing their thoughts and feelings
- Offer gentle encouragement and practical wellness suggestions
- Use magical, mystical language occasionally but keep it natural and helpful
- Be warm, understanding, and non-judgmental
- Suggest breathing exercises, mindfulness practices, or positive activities when appropriate
- Keep responses concise but meaningful (2-4 sentences)

Respond with JSON in this format:
{"message": "Your supportive response", "tone": "supportive|encouraging|empathetic|motivational", "suggestions": ["optional array of helpful suggestions"]}`

const moodSystemPrompt = `Analyze the emotional tone and mood from the given text.
Determine the primary mood and provide insights.

Respond with JSON in this format:
{"mood": "very_happy|happy|neutral|sad|very_sad", "confidence": 0.0-1.0, "insights": ["array of emotional insights"]}`

const quoteSystemPrompt = `Generate an inspiring, uplifting motivational quote.
The quote should be positive, encouraging, and suitable for a wellness app.

Respond with JSON in this format:
{"quote": "The inspirational quote text", "author": "Author name or 'Unknown' if original", "theme": "Brief theme description"}`

// Chat sends the user's message to the companion model. Falls back to a
// supportive default when the model is unreachable.
func (c *Client) Chat(ctx context.Context, userMessage, priorContext string) *GenieResponse {
	prompt := "User message: " + userMessage
	if priorContext != "" {
		prompt = "Previous context: " + priorContext + "\n\n" + prompt
	}

	var resp GenieResponse
	if err := c.generate(ctx, genieSystemPrompt, prompt, &resp); err != nil {
		log.Printf("genai: chat failed, using fallback: %v", err)
		return &GenieResponse{
			Message: "I'm here to support you, though I'm having a magical moment of silence right now. How are you feeling today?",
			Tone:    "supportive",
		}
	}
	return &resp
}

// AnalyzeMood classifies the emotional tone of text. Falls back to neutral
// when the model is unreachable, so journal saves never block on it.
func (c *Client) AnalyzeMood(ctx context.Context, text string) *MoodAnalysis {
	var resp MoodAnalysis
	if err := c.generate(ctx, moodSystemPrompt, text, &resp); err != nil {
		log.Printf("genai: mood analysis failed, using neutral fallback: %v", err)
		return &MoodAnalysis{
			Mood:       "neutral",
			Confidence: 0.5,
			Insights:   []string{"Unable to analyze mood at this time"},
		}
	}
	return &resp
}

// MotivationalQuote generates a quote of the day.
func (c *Client) MotivationalQuote(ctx context.Context) *Quote {
	var resp Quote
	if err := c.generate(ctx, quoteSystemPrompt, "Generate a motivational quote for today", &resp); err != nil {
		log.Printf("genai: quote generation failed, using fallback: %v", err)
		return &Quote{
			Quote:  "Every moment is a fresh beginning.",
			Author: "T.S. Eliot",
			Theme:  "New beginnings",
		}
	}
	return &resp
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and decodes the model's JSON
// reply into out.
func (c *Client) generate(ctx context.Context, systemPrompt, userPrompt string, out interface{}) error {
	if c.config.APIKey == "" {
		return fmt.Errorf("no API key configured")
	}

	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt}}},
		Contents:          []content{{Parts: []part{{Text: userPrompt}}}},
		GenerationConfig:  generationConfig{ResponseMIMEType: "application/json"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.config.BaseURL, c.config.Model, c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generateContent returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("empty response from model")
	}

	raw := genResp.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return nil
}
