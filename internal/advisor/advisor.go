// Package advisor generates free-text financial guidance through a
// generative language API.
//
// The provider is treated as best effort: any failure, from a missing API
// key to a timeout, results in advice that is marked as not generated.
// Callers resolve that to a static fallback text, a failing provider never
// fails a request.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// FallbackAdvice is returned to clients when no advice could be generated.
const FallbackAdvice = "Keep an eye on your recurring expenses and try to set aside a part of your income every month. Small, consistent savings beat occasional large ones."

// NotEnoughDataAdvice is returned when a user has no transactions to analyze.
const NotEnoughDataAdvice = "There is not enough data for an analysis yet. Record your first transactions!"

// Advice is the outcome of one provider call.
type Advice struct {
	Text      string
	Generated bool // False when the provider was unavailable or misconfigured
}

// Resolve returns the generated text or the fallback if there is none.
func (a Advice) Resolve(fallback string) string {
	if a.Generated {
		return a.Text
	}

	return fallback
}

var errNoAPIKey = errors.New("no API key configured")

// Client calls the generative language API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// New returns a client configured from the environment.
//
// GEMINI_API_KEY holds the API key. ADVISOR_BASE_URL overrides the
// provider endpoint, which tests use to point the client at a local server.
func New() *Client {
	baseURL, ok := os.LookupEnv("ADVISOR_BASE_URL")
	if !ok {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model, ok := os.LookupEnv("ADVISOR_MODEL")
	if !ok {
		model = "gemini-1.5-flash"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		// The provider has unpredictable latency, the timeout bounds how
		// long a dashboard request can hang on it
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Request and response shapes of the generateContent API. Only the fields
// we read are declared.
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
}

// Advise sends the prompt to the provider and returns the advice.
//
// At most one call is made, there are no retries. Failures are logged and
// reported as non-generated advice.
func (c *Client) Advise(ctx context.Context, prompt string) Advice {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("advice generation failed, using fallback")
		return Advice{}
	}

	return Advice{Text: text, Generated: true}
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	var parsed generateResponse
	err = json.NewDecoder(resp.Body).Decode(&parsed)
	if err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("provider returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
