// Package enrich is the external AI boundary: one audio buffer in, one
// structured metadata record or failure out. Any failure is total; no
// partial metadata is ever returned.
package enrich

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/podhaven/backend/internal/models"
)

// Enrichment errors. ErrEnrichment is non-fatal for the clip: the caller may
// retry manually or save without metadata.
var (
	ErrEnrichment = errors.New("enrich: metadata generation failed")
	// ErrInFlight means a call is already outstanding; one attempt at a time.
	ErrInFlight = errors.New("enrich: generation already in progress")
)

const (
	defaultModel = "gemini-2.5-flash"
	audioMIME    = "audio/webm"

	instruction = "Analyze this podcast audio segment. Generate a catchy title, " +
		"a 2-sentence engaging summary, and 3 relevant hashtags."
)

// Client talks to a Gemini-style generateContent endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates an enrichment client. An empty model selects the default.
func NewClient(baseURL, apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // audio analysis is slow; no retry on top
		},
	}
}

// Request/response bodies for the generateContent wire format. The response
// schema is declared per request so the result is guaranteed to contain
// title, summary, and tags.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64 audio payload
}

type generationConfig struct {
	ResponseMIMEType string          `json:"response_mime_type"`
	ResponseSchema   json.RawMessage `json:"response_schema"`
}

var responseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"title":   {"type": "STRING"},
		"summary": {"type": "STRING"},
		"tags":    {"type": "ARRAY", "items": {"type": "STRING"}}
	}
}`)

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the clip audio and returns the structured metadata. A single
// blocking attempt: network errors, non-200 statuses, malformed responses,
// and a missing credential all collapse into ErrEnrichment.
func (c *Client) Generate(ctx context.Context, audio []byte) (*models.GeneratedMetadata, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrEnrichment)
	}

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: instruction},
				{InlineData: &inlineData{
					MIMEType: audioMIME,
					Data:     base64.StdEncoding.EncodeToString(audio),
				}},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %v", ErrEnrichment, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: request: %v", ErrEnrichment, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichment, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", ErrEnrichment, resp.StatusCode, string(b))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrEnrichment, err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrEnrichment)
	}

	var meta models.GeneratedMetadata
	text := result.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &meta); err != nil {
		return nil, fmt.Errorf("%w: malformed metadata: %v", ErrEnrichment, err)
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	return &meta, nil
}
