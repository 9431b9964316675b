package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidtube/internal/common"
)

// envelope is the body shape of every REST response.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// RESTClient talks to the vidtube REST API. Tokens are passed per call and
// sent as a bearer header; the client itself keeps no session state.
type RESTClient struct {
	baseURL string
	http    *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/") + common.APIBasePath,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Login authenticates with a username, or with an email when identifier
// contains "@".
func (c *RESTClient) Login(ctx context.Context, identifier, password string) (*Session, error) {
	body := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		body["email"] = identifier
	} else {
		body["username"] = identifier
	}

	var s Session
	if err := c.do(ctx, http.MethodPost, "/users/login", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RESTClient) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/currentUser", accessToken, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var p TokenPair
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/users/refresh-Token", "", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RESTClient) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/users/logout", accessToken, nil, nil)
}

// Ping checks the healthcheck endpoint.
func (c *RESTClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthcheck", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: healthcheck returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *RESTClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
		}
	}
	return nil
}
