package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/types"
	"github.com/lab9-dev/pythia/pkg/utils/retry"
	"github.com/lab9-dev/pythia/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultTimeout = 30 * time.Second
)

// Client calls the generateContent endpoint of the Gemini REST API.
// Every failure it returns is one of the sentinel errors in
// pkg/domain/types, so callers can map it to a user-facing message
// without inspecting transport details.
type Client struct {
	apiKey            string
	model             string
	baseURL           string
	systemInstruction string
	policy            retry.Policy
	httpClient        *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the API base URL (mainly for tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithSystemInstruction sets the operator-configured system instruction
// sent alongside every prompt.
func WithSystemInstruction(text string) Option {
	return func(c *Client) {
		c.systemInstruction = text
	}
}

// WithRetryPolicy overrides the retry policy for generation calls.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Gemini client. Key and model are required; missing
// values fail here so misconfiguration is caught at startup, not on the
// first user message.
func New(apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("Gemini API key is required")
	}
	if model == "" {
		return nil, goerr.New("Gemini model is required")
	}

	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		policy:  retry.Default(),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the single text payload of the
// first candidate. The call is retried with exponential backoff; the
// final failure is classified into the error taxonomy.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", goerr.Wrap(types.ErrInvalidInput, "prompt is empty")
	}

	return retry.Do(ctx, c.policy, func(ctx context.Context) (string, error) {
		return c.generateOnce(ctx, prompt)
	})
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}
	if c.systemInstruction != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: c.systemInstruction}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", goerr.Wrap(types.ErrGenerationNetwork, "failed to marshal generation request",
			goerr.V("cause", err.Error()))
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", goerr.Wrap(types.ErrGenerationNetwork, "failed to create generation request",
			goerr.V("cause", err.Error()))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", goerr.Wrap(types.ErrGenerationTimeout, "generation request timed out",
				goerr.V("model", c.model))
		}
		return "", goerr.Wrap(types.ErrGenerationNetwork, "generation request failed",
			goerr.V("model", c.model), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(types.ErrGenerationNetwork, "failed to read generation response",
			goerr.V("cause", err.Error()))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to body validation
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return "", goerr.Wrap(types.ErrGenerationConfig, "generation API rejected the request",
			goerr.V("status", resp.StatusCode), goerr.V("body", truncate(string(body), 400)))
	case resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusGatewayTimeout:
		return "", goerr.Wrap(types.ErrGenerationTimeout, "generation API timed out",
			goerr.V("status", resp.StatusCode))
	default:
		return "", goerr.Wrap(types.ErrGenerationNetwork, "generation API returned non-success status",
			goerr.V("status", resp.StatusCode), goerr.V("body", truncate(string(body), 400)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", goerr.Wrap(types.ErrGenerationEmpty, "failed to parse generation response",
			goerr.V("body", truncate(string(body), 400)))
	}

	// Exactly one non-empty text payload is required; anything else is
	// an empty-response failure, distinct from transport failures.
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", goerr.Wrap(types.ErrGenerationEmpty, "generation response has no candidates")
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", goerr.Wrap(types.ErrGenerationEmpty, "generation response text is empty")
	}

	return text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
