// internal/genai/client.go
//
// Gemini content-generation client.
//
// Context
// -------
// Three components create records from generated content: mood muse (plain
// text), couple comics (strict JSON), and couple quiz (strict JSON).  This
// client wraps the Gemini REST generateContent call in two shapes,
// GenerateText and GenerateJSON.  It does not retry, cache, or judge
// quality; callers check that the keys they need are present and non-empty
// and otherwise pass the result straight into a store insert.
//
// Notes
// -----
// • Failures, including malformed JSON from the model, surface as
//   fault.Upstream with a generic client-safe message.
// • The base URL is injectable for tests.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yanizio/keepsake/internal/fault"
	"github.com/yanizio/keepsake/internal/metrics"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is fast enough for interactive generation.
	DefaultModel = "gemini-2.5-flash"
)

// Client talks to the Gemini REST API.  Safe for concurrent use.
type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	model   string
}

// New builds a Client for the production endpoint.  An empty model falls
// back to DefaultModel.
func New(apiKey, model string) *Client {
	return NewWithBaseURL(apiKey, model, defaultBaseURL)
}

// NewWithBaseURL is the test seam.
func NewWithBaseURL(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		hc:      &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// GenerateText runs a text-mode generation and returns the trimmed output.
func (c *Client) GenerateText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	text, err := c.generate(ctx, system, prompt, temperature, "")
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fault.Upstream("generator returned no content", nil)
	}
	return text, nil
}

// GenerateJSON runs a JSON-mode generation and unmarshals the output into
// out.  Model output that is not valid JSON is an upstream failure.
func (c *Client) GenerateJSON(ctx context.Context, system, prompt string, temperature float64, out any) error {
	text, err := c.generate(ctx, system, prompt, temperature, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		metrics.GeneratorCalls.WithLabelValues("gemini", "error").Inc()
		return fault.Upstream("generator returned malformed JSON", err)
	}
	return nil
}

//
// wire types
//

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, system, prompt string, temperature float64, mimeType string) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: temperature, ResponseMimeType: mimeType},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return "", fault.Upstream("encode generation request", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return "", fault.Upstream("build generation request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues("gemini", "error").Inc()
		return "", fault.Upstream("content generation failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeneratorCalls.WithLabelValues("gemini", "error").Inc()
		return "", fault.Upstream("content generation failed",
			fmt.Errorf("status %d; check the API key", resp.StatusCode))
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.GeneratorCalls.WithLabelValues("gemini", "error").Inc()
		return "", fault.Upstream("decode generation response", err)
	}
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		metrics.GeneratorCalls.WithLabelValues("gemini", "error").Inc()
		return "", fault.Upstream("generator returned no candidates", nil)
	}

	metrics.GeneratorCalls.WithLabelValues("gemini", "ok").Inc()
	return strings.TrimSpace(body.Candidates[0].Content.Parts[0].Text), nil
}
