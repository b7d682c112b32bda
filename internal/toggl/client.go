// Package toggl is a typed client for the Toggl Track v9 REST API.
package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/beardo/toggl-tui/internal/logging"
	"github.com/beardo/toggl-tui/internal/model"
	"github.com/beardo/toggl-tui/internal/timecalc"
)

const (
	// DefaultBaseURL is the versioned REST root of the Toggl Track API.
	DefaultBaseURL = "https://api.track.toggl.com/api/v9"
	// DefaultTimeout bounds every request made by a Client.
	DefaultTimeout = 30 * time.Second
	// CreatedWith identifies this client on entries it creates.
	CreatedWith = "toggl-tui"

	// The API accepts an API key as the basic auth username with this
	// literal as password.
	apiTokenPassword = "api_token"
	contentType      = "application/json; charset=utf-8"
	maxErrorBody     = 256
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient provides the underlying transport. Optional.
	HTTPClient *http.Client
	// Now is the clock used for "today" and new entry start times. Optional.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Client is an authenticated Toggl API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a client that authenticates with apiKey.
func NewClient(cfg Config, apiKey string) *Client {
	return newClient(cfg, apiKey, apiTokenPassword)
}

func newClient(cfg Config, username, password string) *Client {
	cfg = cfg.withDefaults()

	ctx := context.Background()
	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}
	httpClient := oauth2.NewClient(ctx, basicAuth(username, password))
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		now:        cfg.Now,
	}
}

// basicAuth returns a token source that makes the oauth2 transport send an
// HTTP Basic Authorization header.
func basicAuth(username, password string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: base64.StdEncoding.EncodeToString([]byte(username + ":" + password)),
		TokenType:   "Basic",
	})
}

// Login exchanges a username and password for the account's long-lived API
// token.
func Login(ctx context.Context, cfg Config, username, password string) (string, error) {
	c := newClient(cfg, username, password)

	var resp struct {
		APIToken string `json:"api_token"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &resp); err != nil {
		return "", err
	}
	if resp.APIToken == "" {
		return "", &Error{Kind: ErrSerialization, Op: "GET /me", Err: errors.New("response carries no api_token")}
	}
	return resp.APIToken, nil
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*model.Profile, error) {
	var me model.Profile
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// GetCurrent fetches the running time entry. It returns nil when nothing is
// running.
func (c *Client) GetCurrent(ctx context.Context) (*model.Entry, error) {
	var entry *model.Entry
	if err := c.do(ctx, http.MethodGet, "/me/time_entries/current", nil, nil, &entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetMine fetches the caller's time entries in server order (most recent first).
func (c *Client) GetMine(ctx context.Context) ([]model.Entry, error) {
	return c.timeEntries(ctx, nil)
}

// GetToday fetches the entries started since midnight UTC today.
func (c *Client) GetToday(ctx context.Context) ([]model.Entry, error) {
	since := timecalc.StartOfUTCDay(c.now()).Unix()
	return c.timeEntries(ctx, url.Values{"since": {strconv.FormatInt(since, 10)}})
}

func (c *Client) timeEntries(ctx context.Context, query url.Values) ([]model.Entry, error) {
	var entries []model.Entry
	if err := c.do(ctx, http.MethodGet, "/me/time_entries", query, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StopEntry stops the entry with entryID in workspaceID.
func (c *Client) StopEntry(ctx context.Context, workspaceID, entryID int64) error {
	path := fmt.Sprintf("/workspaces/%d/time_entries/%d/stop", workspaceID, entryID)
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil)
}

// StartEntry creates a running entry copying description, billable,
// workspace, task and project from template.
func (c *Client) StartEntry(ctx context.Context, template model.Entry) (*model.Entry, error) {
	payload := model.RestartOf(template, CreatedWith, c.now())
	path := fmt.Sprintf("/workspaces/%d/time_entries", template.WorkspaceID)

	var created model.Entry
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do sends one request and decodes the JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: ErrSerialization, Op: op, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("toggl request failed", "op", op, "elapsed", time.Since(start), "err", err)
		return &Error{Kind: ErrTransport, Op: op, Err: err}
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	logging.Debug("toggl request", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start))
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:       ErrTransport,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, errorBody(data)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: ErrSerialization, Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func errorBody(data []byte) string {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return "empty response"
	}
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
