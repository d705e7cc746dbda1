package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Error string

const (
	ErrNoConnection = Error("no connection to backend")
	ErrUnauthorized = Error("authentication required")
	ErrForbidden    = Error("access denied")
	ErrNotFound     = Error("resource not found")
	ErrRateLimited  = Error("rate limited by backend")
	ErrInvalidEnv   = Error("invalid environment")
)

func (e Error) Error() string {
	return string(e)
}

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "b9s/0.1"
)

type Connection interface {
	Config() *ClientConfig
	ConnectionOK() bool
	CheckConnectivity() bool
	SwitchEnv(name string) error
	ActiveEnv() string
	BaseURL() string
	ServerVersion() string
	EnvNames() []string
	List(ctx context.Context, resource string, q ListQuery) (*PageResult, error)
	Get(ctx context.Context, resource, id string, dest any) error
	Create(ctx context.Context, resource string, body, dest any) error
	Update(ctx context.Context, resource, id string, body, dest any) error
	Delete(ctx context.Context, resource, id string) error
	Action(ctx context.Context, resource, id, action string, body any) error
}

type ClientConfig struct {
	Env     string
	Timeout time.Duration
}

type envClient struct {
	httpClient *http.Client
	base       *url.URL
	token      string
	createdAt  time.Time
}

// APIClient talks to one backend environment at a time. HTTP clients are
// created lazily per environment and cached until the environment switches.
type APIClient struct {
	config        *ClientConfig
	settings      EnvSettings
	clients       map[string]*envClient
	serverVersion string
	connOK        bool
	mx            sync.RWMutex
}

// NewAPIClient creates a new APIClient instance with the provided settings
// and configuration.
func NewAPIClient(settings EnvSettings, cfg *ClientConfig) (*APIClient, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Env == "" {
		name, err := settings.CurrentEnvName()
		if err != nil {
			return nil, err
		}
		cfg.Env = name
	}

	return &APIClient{
		config:   cfg,
		settings: settings,
		clients:  make(map[string]*envClient),
	}, nil
}

// InitConnection creates an APIClient and verifies connectivity to the
// active environment.
func InitConnection(settings EnvSettings, cfg *ClientConfig) (*APIClient, error) {
	client, err := NewAPIClient(settings, cfg)
	if err != nil {
		return nil, err
	}

	if !client.CheckConnectivity() {
		return nil, ErrNoConnection
	}

	return client, nil
}

// Config returns a copy of the client configuration.
func (c *APIClient) Config() *ClientConfig {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return &ClientConfig{
		Env:     c.config.Env,
		Timeout: c.config.Timeout,
	}
}

// ConnectionOK returns whether the backend answered the last health probe.
func (c *APIClient) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.connOK
}

// CheckConnectivity probes the backend health endpoint and caches the
// reported server version on success.
func (c *APIClient) CheckConnectivity() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.Config().Timeout)
	defer cancel()

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &health); err != nil {
		c.mx.Lock()
		c.connOK = false
		c.mx.Unlock()
		return false
	}

	c.mx.Lock()
	c.connOK = true
	c.serverVersion = health.Version
	c.mx.Unlock()

	return true
}

// SwitchEnv switches to a new environment and invalidates the cached client
// for the old one.
func (c *APIClient) SwitchEnv(name string) error {
	if _, err := c.settings.GetEnv(name); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEnv, name)
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.clients, c.config.Env)
	c.config.Env = name
	c.connOK = false
	c.serverVersion = ""

	return c.settings.SetActiveEnv(name)
}

// ActiveEnv returns the currently active environment name.
func (c *APIClient) ActiveEnv() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Env
}

// BaseURL returns the active environment's base URL, or "" when it cannot
// be resolved.
func (c *APIClient) BaseURL() string {
	ec, err := c.getClient()
	if err != nil {
		return ""
	}
	return ec.base.String()
}

// ServerVersion returns the version reported by the last health probe.
func (c *APIClient) ServerVersion() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.serverVersion
}

// EnvNames returns all configured environment names.
func (c *APIClient) EnvNames() []string {
	if c.settings == nil {
		return nil
	}
	names, err := c.settings.EnvNames()
	if err != nil {
		return nil
	}
	return names
}

// List fetches one page of a resource collection.
func (c *APIClient) List(ctx context.Context, resource string, q ListQuery) (*PageResult, error) {
	values := url.Values{}
	if q.Page != nil {
		values.Set("page", strconv.Itoa(*q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if kw := strings.TrimSpace(q.SearchKeyword); kw != "" {
		values.Set("search", kw)
	}
	for k, v := range q.Filters {
		values.Set("filter."+k, v)
	}
	for _, s := range q.Sorting {
		values.Add("sort", s.Key+":"+string(s.Direction))
	}

	var payload PageResult
	if err := c.do(ctx, http.MethodGet, "/api/"+resource+"?"+values.Encode(), nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Get fetches a single resource by id into dest.
func (c *APIClient) Get(ctx context.Context, resource, id string, dest any) error {
	return c.do(ctx, http.MethodGet, "/api/"+resource+"/"+url.PathEscape(id), nil, nil, dest)
}

// Create posts a new resource.
func (c *APIClient) Create(ctx context.Context, resource string, body, dest any) error {
	return c.do(ctx, http.MethodPost, "/api/"+resource, nil, body, dest)
}

// Update replaces a resource by id.
func (c *APIClient) Update(ctx context.Context, resource, id string, body, dest any) error {
	return c.do(ctx, http.MethodPut, "/api/"+resource+"/"+url.PathEscape(id), nil, body, dest)
}

// Delete removes a resource by id.
func (c *APIClient) Delete(ctx context.Context, resource, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/"+resource+"/"+url.PathEscape(id), nil, nil, nil)
}

// Action invokes a named operation on a resource, e.g. an order cancel or a
// notification send.
func (c *APIClient) Action(ctx context.Context, resource, id, action string, body any) error {
	path := "/api/" + resource + "/" + url.PathEscape(id) + "/" + url.PathEscape(action)
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// Reset clears the cached clients and connection state.
func (c *APIClient) Reset() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.clients = make(map[string]*envClient)
	c.connOK = false
	c.serverVersion = ""
}

// getClient retrieves or creates the HTTP client for the active environment.
// Uses the Read-Lock-Upgrade pattern for thread safety.
func (c *APIClient) getClient() (*envClient, error) {
	c.mx.RLock()
	key := c.config.Env
	if ec, ok := c.clients[key]; ok {
		c.mx.RUnlock()
		return ec, nil
	}
	c.mx.RUnlock()

	c.mx.Lock()
	defer c.mx.Unlock()

	// Re-read after acquiring the write lock; the env may have changed.
	key = c.config.Env
	if ec, ok := c.clients[key]; ok {
		return ec, nil
	}

	env, err := c.settings.GetEnv(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnv, key)
	}
	base, err := parseBaseURL(env.URL)
	if err != nil {
		return nil, err
	}
	ec := &envClient{
		httpClient: &http.Client{Timeout: c.config.Timeout},
		base:       base,
		token:      env.Token,
		createdAt:  time.Now(),
	}
	c.clients[key] = ec

	return ec, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, headers map[string]string, body, dest any) error {
	ec, err := c.getClient()
	if err != nil {
		return err
	}

	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	reqURL := ec.base.ResolveReference(rel)

	var payload *bytes.Reader
	if body != nil {
		bb, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(bb)
	} else {
		payload = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ec.token != "" {
		req.Header.Set("Authorization", "Bearer "+ec.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ec.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return WrapStatusError(resp.StatusCode, method+" "+rel.Path, decodeErrorMessage(resp))
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeErrorMessage(resp *http.Response) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return ""
	}
	return e.Message
}

// WrapStatusError maps an HTTP status code to the client error taxonomy.
func WrapStatusError(status int, op, message string) error {
	detail := op
	if message != "" {
		detail = fmt.Sprintf("%s: %s", op, message)
	}
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, detail)
	default:
		return fmt.Errorf("%s failed with status %d", detail, status)
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse environment url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""

	return u, nil
}
