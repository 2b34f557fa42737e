package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/model"
	"github.com/lab9-dev/pythia/pkg/domain/types"
	"github.com/lab9-dev/pythia/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultTimeout = 10 * time.Second

	teamPath   = "/api/user/fetchTeam"
	eventsPath = "/api/form/getAllForms"
)

// Client talks to the backend REST API that owns team and event records.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (mainly for tests).
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

// New creates a backend API client.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("backend base URL is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// wireMember is the upstream representation of a roster record. Name is
// nullable upstream; it is mapped to an empty string here and dropped by
// the team cache.
type wireMember struct {
	ID         string            `json:"id"`
	Name       *string           `json:"name"`
	AccessCode string            `json:"accessCode"`
	Year       int               `json:"year"`
	Extra      map[string]string `json:"extra"`
}

type teamResponse struct {
	Success bool         `json:"success"`
	Data    []wireMember `json:"data"`
}

type eventsResponse struct {
	Success bool                `json:"success"`
	Events  []model.EventRecord `json:"events"`
}

// FetchTeam retrieves the full roster from the upstream team endpoint.
func (c *Client) FetchTeam(ctx context.Context) ([]model.TeamMember, error) {
	var out teamResponse
	if err := c.getJSON(ctx, teamPath, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "team endpoint reported failure")
	}

	members := make([]model.TeamMember, 0, len(out.Data))
	for _, m := range out.Data {
		name := ""
		if m.Name != nil {
			name = *m.Name
		}
		members = append(members, model.TeamMember{
			ID:         m.ID,
			Name:       name,
			AccessCode: m.AccessCode,
			Year:       m.Year,
			Extra:      m.Extra,
		})
	}
	return members, nil
}

// FetchEvents retrieves all event records from the upstream forms endpoint.
func (c *Client) FetchEvents(ctx context.Context) ([]model.EventRecord, error) {
	var out eventsResponse
	if err := c.getJSON(ctx, eventsPath, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "events endpoint reported failure")
	}
	return out.Events, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create backend request", goerr.V("url", url))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "backend request failed",
			goerr.V("url", url), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "failed to read backend response",
			goerr.V("url", url), goerr.V("cause", err.Error()))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "backend returned non-success status",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncate(string(body), 400)),
		)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "failed to parse backend response",
			goerr.V("url", url), goerr.V("body", truncate(string(body), 400)))
	}

	return nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
