package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client calls the internal ai-service to rewrite a section's content
// on demand. The result is a proposed replacement fragment; the editor
// core sanitizes it and offers it as a diff, never applying it
// directly.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("AI_SERVICE_URL")
	}
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: 60 * time.Second}}
}

// rewriteIntents maps an intent to the instruction sent with the
// section text. Unknown intents fall back to "improve".
var rewriteIntents = map[string]string{
	"improve":   "Rewrite the fragment with stronger, more specific wording. Keep the meaning, structure and approximate length.",
	"shorten":   "Condense the fragment to roughly half its length without dropping concrete facts.",
	"formalize": "Rewrite the fragment in a formal, professional register suitable for a client-facing competence file.",
	"translate": "Translate the fragment to English, preserving all markup.",
}

type rewriteRequest struct {
	Intent       string `json:"intent"`
	Instructions string `json:"instructions"`
	Text         string `json:"text"`
	SectionID    string `json:"section_id"`
	Kind         string `json:"kind"`
}

type rewriteResponse struct {
	HTML   string `json:"html"`
	Output string `json:"output,omitempty"`
}

// Rewrite asks the ai-service for a replacement HTML fragment for one
// section. Failures propagate to the caller, who is expected to show a
// retryable error.
func (c *Client) Rewrite(ctx context.Context, intent, text, sectionID, kind string) (string, error) {
	instructions, ok := rewriteIntents[intent]
	if !ok {
		intent = "improve"
		instructions = rewriteIntents[intent]
	}
	instructions += " Respond with ONLY the rewritten HTML fragment. No commentary, no markdown, no code fences."

	body, err := json.Marshal(rewriteRequest{
		Intent:       intent,
		Instructions: instructions,
		Text:         text,
		SectionID:    sectionID,
		Kind:         kind,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.doPostWithRetry(ctx, "/v1/rewrite", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai-service returned status %d", resp.StatusCode)
	}

	var parsed rewriteResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("ai-service returned non-json content: %w", err)
	}
	if parsed.HTML != "" {
		return parsed.HTML, nil
	}
	if parsed.Output != "" {
		return parsed.Output, nil
	}
	return "", fmt.Errorf("ai-service returned an empty rewrite")
}

// doPostWithRetry performs an HTTP POST to the given path with
// exponential backoff between attempts.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
