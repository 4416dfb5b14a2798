// Package api implements the Monica REST API client: JSON over HTTPS with
// bearer-token authentication, one method per resource/verb, and a typed
// error taxonomy (see errors.go). Transport and decode failures never
// escape as raw errors; every failure is mapped so callers can match with
// errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultPerPage is the page size used by list calls unless overridden.
const DefaultPerPage = 50

// Client talks to one Monica instance. It is constructed explicitly and
// passed by reference; there is no package-level instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	perPage int
}

// New returns a Client for the given API base URL (e.g.
// "https://app.monicahq.com/api"). The token may be empty and set later
// via SetToken once the user logged in.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		perPage: DefaultPerPage,
	}
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetPerPage overrides the list page size.
func (c *Client) SetPerPage(n int) {
	if n > 0 {
		c.perPage = n
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TokenExpiry parses the configured token as a JWT (Monica API tokens are
// OAuth JWTs) and returns its expiry time, without verifying the signature.
// Returns a zero time when the token carries no expiry or is not a JWT;
// the server remains the authority either way.
func (c *Client) TokenExpiry() time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(c.token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// errorBody is the error envelope Monica returns on failures.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// do issues one request and decodes the response into out (when non-nil).
// Failures are mapped to the package error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", ErrDecoding, err)
		}
		reqBody = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return statusError(resp.StatusCode, eb.Error.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	return nil
}

// get issues a GET for a single-object endpoint and unwraps {"data": ...}.
func get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var env singleEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// list issues a GET for one page of a list endpoint.
func list[T any](ctx context.Context, c *Client, path string, page int, extra url.Values) (Page[T], error) {
	query := url.Values{}
	for k, vs := range extra {
		query[k] = vs
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(c.perPage))

	var env listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: env.Data, Number: page, PerPage: c.perPage, Meta: env.Meta}, nil
}

// create POSTs body and returns the created object.
func create[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var env singleEnvelope[T]
	if err := c.do(ctx, http.MethodPost, path, nil, body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// update PUTs body and returns the updated object.
func update[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var env singleEnvelope[T]
	if err := c.do(ctx, http.MethodPut, path, nil, body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
