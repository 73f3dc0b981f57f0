package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/sethvargo/go-retry"
)

// Dog mirrors the server's catalog entry.
type Dog struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Breeds    []Breed    `json:"breeds"`
	Image     string     `json:"image"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type Breed struct {
	Name string `json:"name"`
}

// DogInput is the body of create and update requests.
type DogInput struct {
	Name   string  `json:"name"`
	Breeds []Breed `json:"breeds"`
	Image  string  `json:"image"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	apiKey     string
	backoff    func() retry.Backoff
}

type Option func(*Client)

// WithAPIKey sends key in X-API-Key on mutating requests.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBackoff replaces the retry schedule used for reads.
func WithBackoff(b func() retry.Backoff) Option {
	return func(c *Client) { c.backoff = b }
}

func defaultBackoff() retry.Backoff {
	return retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		backoff:    defaultBackoff,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

// HasCredentials reports whether mutating requests will carry a token or key.
func (c *Client) HasCredentials() bool { return c.token != "" || c.apiKey != "" }

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, username string, password []byte) error {
	return c.do(ctx, http.MethodPost, "/register", credentials{username, string(password)}, nil, false)
}

// Login exchanges credentials for a session token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username string, password []byte) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", credentials{username, string(password)}, &resp, false); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.read(ctx, "/", nil)
}

func (c *Client) List(ctx context.Context) ([]Dog, error) {
	var dogs []Dog
	if err := c.read(ctx, "/dogs", &dogs); err != nil {
		return nil, err
	}
	return dogs, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Dog, error) {
	var d Dog
	if err := c.read(ctx, "/dogs/"+url.PathEscape(id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) GetByName(ctx context.Context, name string) (*Dog, error) {
	var d Dog
	if err := c.read(ctx, "/dogs?name="+url.QueryEscape(name), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create stores a new entry and returns its id.
func (c *Client) Create(ctx context.Context, in DogInput) (string, error) {
	var resp struct {
		Data string `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/dogs", in, &resp, true); err != nil {
		return "", err
	}
	return resp.Data, nil
}

func (c *Client) Update(ctx context.Context, id string, in DogInput) (*Dog, error) {
	var resp struct {
		Data Dog `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/dogs/"+url.PathEscape(id), in, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/dogs/"+url.PathEscape(id), nil, nil, true)
}

// read performs a GET, retrying while the server is unreachable.
func (c *Client) read(ctx context.Context, path string, out any) error {
	return retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, nil, out, false)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, authorize bool) error {
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
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorize {
		if c.token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
		}
		if c.apiKey != "" {
			req.Header.Set(common.APIKeyHeaderName, c.apiKey)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageResponse
		_ = json.Unmarshal(data, &m)
		return &APIError{StatusCode: resp.StatusCode, Message: m.Message}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
