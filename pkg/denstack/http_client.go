package denstack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// LoginPath is the superadmin login endpoint on the auth service.
const LoginPath = "api/v1/auth/super-admin/login"

// ErrNotFound marks endpoints the collaborator does not serve (yet).
var ErrNotFound = errors.New("denstack: endpoint not found")

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	AuthBaseURL      string
	InventoryBaseURL string
	HTTPClient       *http.Client
	Logger           *zap.Logger
}

// HTTPClient talks to the DenStack auth and inventory services.
type HTTPClient struct {
	bases  map[console.Service]string
	client *http.Client
	logger *zap.Logger
}

// StatusError is returned for non-2xx responses other than 401 and 404.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("denstack: %s %s: remote error %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// NewHTTPClient builds a client for live collaborator services.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.AuthBaseURL == "" {
		return nil, fmt.Errorf("denstack: auth base url is required")
	}
	if cfg.InventoryBaseURL == "" {
		cfg.InventoryBaseURL = cfg.AuthBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		bases: map[console.Service]string{
			console.ServiceAuth:      cfg.AuthBaseURL,
			console.ServiceInventory: cfg.InventoryBaseURL,
		},
		client: httpClient,
		logger: logger.Named("denstack"),
	}, nil
}

type loginResponse struct {
	AccessToken string         `json:"accessToken"`
	Superadmin  map[string]any `json:"superadmin"`
}

// Login implements console.AuthClient.
func (c *HTTPClient) Login(ctx context.Context, creds console.Credentials) (console.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, c.url(console.ServiceAuth, LoginPath), "", creds, &resp)
	if err != nil {
		var status *StatusError
		switch {
		case errors.As(err, &status):
			return console.LoginResult{}, &console.AuthFailure{Message: status.Message, StatusCode: status.StatusCode, Err: err}
		case errors.Is(err, console.ErrUnauthorized):
			return console.LoginResult{}, &console.AuthFailure{Message: messageFrom(err), StatusCode: http.StatusUnauthorized, Err: err}
		}
		return console.LoginResult{}, &console.AuthFailure{Err: err}
	}
	return console.LoginResult{
		Token: resp.AccessToken,
		User:  userFromPayload(resp.Superadmin),
	}, nil
}

// Fetch implements console.DataSource.
func (c *HTTPClient) Fetch(ctx context.Context, req console.FetchRequest) (console.SliceData, error) {
	var body any
	endpoint := req.Slice.Endpoint
	if err := c.do(ctx, http.MethodGet, c.url(endpoint.Service, endpoint.Path), req.Token, nil, &body); err != nil {
		return console.SliceData{}, err
	}
	return decodeSlice(req.Slice, body)
}

func (c *HTTPClient) url(service console.Service, path string) string {
	base, ok := c.bases[service]
	if !ok {
		base = c.bases[console.ServiceAuth]
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func (c *HTTPClient) do(ctx context.Context, method, url, token string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("denstack: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("denstack: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("denstack: http request: %w", err)
	}
	defer resp.Body.Close()
	c.logger.Debug("collaborator call",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)
	if resp.StatusCode >= 300 {
		message := readMessage(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return &unauthorizedError{method: method, url: url, message: message}
		case http.StatusNotFound:
			return fmt.Errorf("denstack: %s %s: %w", method, url, ErrNotFound)
		}
		return &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Message: message}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("denstack: decode response: %w", err)
	}
	return nil
}

type unauthorizedError struct {
	method  string
	url     string
	message string
}

func (e *unauthorizedError) Error() string {
	return fmt.Sprintf("denstack: %s %s: unauthorized: %s", e.method, e.url, e.message)
}

func (e *unauthorizedError) Unwrap() error { return console.ErrUnauthorized }

func messageFrom(err error) string {
	var unauthorized *unauthorizedError
	if errors.As(err, &unauthorized) {
		return unauthorized.message
	}
	return ""
}

// readMessage extracts the human-readable message from an error body.
func readMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func decodeSlice(slice console.SliceDefinition, body any) (console.SliceData, error) {
	value := body
	if slice.Endpoint.Envelope != "" {
		root, ok := body.(map[string]any)
		if !ok {
			return console.SliceData{}, fmt.Errorf("denstack: %s response is not an object", slice.Name)
		}
		value, ok = console.Record(root).Lookup(slice.Endpoint.Envelope)
		if !ok {
			return console.SliceData{}, fmt.Errorf("denstack: %s response missing %q", slice.Name, slice.Endpoint.Envelope)
		}
	}
	switch slice.Kind {
	case console.SliceAggregate:
		m, ok := value.(map[string]any)
		if !ok {
			return console.SliceData{}, fmt.Errorf("denstack: %s envelope is not an object", slice.Name)
		}
		return console.SliceData{Aggregate: console.Aggregate(m)}, nil
	default:
		list, ok := value.([]any)
		if !ok {
			return console.SliceData{}, fmt.Errorf("denstack: %s envelope is not a list", slice.Name)
		}
		records := make([]console.Record, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				records = append(records, console.Record(m))
			}
		}
		return console.SliceData{Records: records}, nil
	}
}

func userFromPayload(payload map[string]any) *console.UserRecord {
	if payload == nil {
		return nil
	}
	record := console.Record(payload)
	id := record.Text("_id")
	if id == "" {
		id = record.Text("id")
	}
	attrs := make(map[string]any, len(payload))
	for k, v := range payload {
		switch k {
		case "_id", "id", "name", "email", "role", "password":
			continue
		}
		attrs[k] = v
	}
	if len(attrs) == 0 {
		attrs = nil
	}
	return &console.UserRecord{
		ID:         id,
		Name:       record.Text("name"),
		Email:      record.Text("email"),
		Role:       record.Text("role"),
		Attributes: attrs,
	}
}
