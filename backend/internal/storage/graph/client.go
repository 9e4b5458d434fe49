// Package graph is the SharePoint permit repository, reached through
// the Microsoft Graph REST API with client-credentials authentication.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mesto-decin/parking-permits/shared/config"
)

const (
	defaultBaseURL  = "https://graph.microsoft.com/v1.0"
	defaultLoginURL = "https://login.microsoftonline.com"
	tokenScope      = "https://graph.microsoft.com/.default"

	// refreshSkew forces a refresh shortly before the token actually
	// expires so in-flight requests never carry a stale one.
	refreshSkew = 60 * time.Second
)

// Client wraps authenticated Graph calls. The access token is acquired
// lazily and cached for its validity lifetime; concurrent callers
// share one token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	loginURL   string
	tenantID   string
	clientID   string
	secret     string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg config.Graph) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		loginURL:   defaultLoginURL,
		tenantID:   cfg.TenantID,
		clientID:   cfg.ClientID,
		secret:     cfg.ClientSecret,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// bearer returns a valid access token, reusing the cached one until
// it nears expiry.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Add(refreshSkew).Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.secret},
		"scope":         {tokenScope},
	}
	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.loginURL, c.tenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("acquire token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("acquire token: status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return c.token, nil
}

// apiError is a non-2xx Graph response.
type apiError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("graph api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// isNotFound matches the itemNotFound code Graph returns for missing
// list items.
func isNotFound(err error) bool {
	apiErr, ok := err.(*apiError)
	return ok && (apiErr.Code == "itemNotFound" || apiErr.StatusCode == http.StatusNotFound)
}

// do performs one authenticated Graph round trip and decodes the JSON
// response into out (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.bearer(ctx)
	if err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call graph api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error.Code == "" {
		return &apiError{StatusCode: resp.StatusCode, Message: string(raw)}
	}
	return &apiError{StatusCode: resp.StatusCode, Code: body.Error.Code, Message: body.Error.Message}
}
