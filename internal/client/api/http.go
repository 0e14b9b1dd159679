package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vagueame/galaxyterm/internal/logging"
)

// nowMillis is a test seam for the cache-busting timestamp on image GETs.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// newRequestID tags each outbound call for log correlation.
func newRequestID() string { return uuid.NewString() }

// HTTPClient is the concrete Client. A single cookie jar holds the
// session credential for the lifetime of the process, the way a browser
// would; all requests go through do(), which attaches an X-Request-Id
// and classifies failures.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given API origin, e.g.
// "http://vagueame.top:5000". A nil logger falls back to a no-op one.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if log == nil {
		log = logging.NewNop()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		log:     log,
	}, nil
}

// do executes one request and decodes a JSON body into out (when out is
// non-nil). Transport failures wrap ErrNetwork, a 401 maps to
// ErrUnauthorized, other non-2xx statuses become *ServerError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	reqID := newRequestID()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "req_id", reqID, "error", err)
		return fmt.Errorf("%s %s: %w: %s", method, path, ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", method, "path", path, "req_id", reqID, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode >= 400:
		msg := decodeMessage(resp.Body)
		return &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w: %s", method, path, ErrNetwork, err)
	}
	return nil
}

// doJSON marshals body as JSON and executes the request.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		r = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, r, "application/json", out)
}

// decodeMessage pulls a human-readable message out of an error body.
// The backend is inconsistent about the key, so try the usual suspects.
func decodeMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// CheckSession probes GET /user. A not-logged-in answer is a normal
// result, never an error.
func (c *HTTPClient) CheckSession(ctx context.Context) (Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodGet, "/user", nil, "", &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Login posts credentials to /login. A success=false body is returned as
// a result, not an error; the session is unchanged in that case.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (AuthResult, error) {
	payload := map[string]string{"email": email, "password": string(password)}
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/login", payload, &res); err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// Signup posts a new account to /signup. Conflicts with existing accounts
// come back with Success=false and ConflictField set.
func (c *HTTPClient) Signup(ctx context.Context, name, email string, password []byte) (AuthResult, error) {
	payload := map[string]string{"name": name, "email": email, "password": string(password)}
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/signup", payload, &res); err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// Logout posts to /logout. Best effort: callers clear local state no
// matter what this returns.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, "", nil)
}

// FetchUserInfo loads the profile+theme record. An unauthorized session
// surfaces as ErrUnauthorized, which is terminal for the caller.
func (c *HTTPClient) FetchUserInfo(ctx context.Context) (UserInfo, error) {
	var body struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Data    UserInfo `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/user-info", nil, "", &body); err != nil {
		return UserInfo{}, err
	}
	if !body.Success {
		if body.Message == "Unauthorized" {
			return UserInfo{}, fmt.Errorf("GET /user-info: %w", ErrUnauthorized)
		}
		return UserInfo{}, &ServerError{StatusCode: http.StatusOK, Message: body.Message}
	}
	return body.Data, nil
}

// UpdateUserInfo sends a partial profile patch. Only set fields travel;
// the server merges them and confirms.
func (c *HTTPClient) UpdateUserInfo(ctx context.Context, patch UserInfoPatch) error {
	if patch.Empty() {
		return fmt.Errorf("update user info: empty patch")
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/user-info", patch, &body); err != nil {
		return err
	}
	if !body.Success {
		return &ServerError{StatusCode: http.StatusOK, Message: body.Message}
	}
	return nil
}
