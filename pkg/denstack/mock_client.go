package denstack

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// MockAccount is a login accepted by the mock client.
type MockAccount struct {
	Password string
	Token    string
	User     console.UserRecord
}

// MockData seeds deterministic responses for tests or local demos.
type MockData struct {
	Accounts map[string]MockAccount
	Slices   map[console.SectionID]map[string]console.SliceData
	Errors   map[console.SectionID]map[string]error
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data   MockData
	tokens map[string]struct{}
	mu     sync.RWMutex
}

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	tokens := map[string]struct{}{}
	for _, account := range data.Accounts {
		tokens[account.Token] = struct{}{}
	}
	return &MockClient{data: data, tokens: tokens}
}

// Login accepts any configured account with a matching password.
func (c *MockClient) Login(_ context.Context, creds console.Credentials) (console.LoginResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	account, ok := c.data.Accounts[strings.ToLower(creds.Email)]
	if !ok || account.Password != creds.Password {
		return console.LoginResult{}, &console.AuthFailure{Message: "Invalid email or password", StatusCode: 401}
	}
	user := account.User
	return console.LoginResult{Token: account.Token, User: &user}, nil
}

// Fetch returns the configured slice, or an unauthorized error for unknown tokens.
func (c *MockClient) Fetch(_ context.Context, req console.FetchRequest) (console.SliceData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.tokens[req.Token]; !ok {
		return console.SliceData{}, fmt.Errorf("denstack: mock %s/%s: %w", req.Section, req.Slice.Name, console.ErrUnauthorized)
	}
	return c.sliceLocked(req)
}

// Fixtures serves the seeded slices without checking tokens, for use as a
// fallback behind a live client.
func (c *MockClient) Fixtures() console.DataSource {
	return console.DataSourceFunc(func(_ context.Context, req console.FetchRequest) (console.SliceData, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.sliceLocked(req)
	})
}

func (c *MockClient) sliceLocked(req console.FetchRequest) (console.SliceData, error) {
	if err := c.data.Errors[req.Section][req.Slice.Name]; err != nil {
		return console.SliceData{}, err
	}
	data, ok := c.data.Slices[req.Section][req.Slice.Name]
	if !ok {
		return console.SliceData{}, fmt.Errorf("denstack: mock %s/%s: %w", req.Section, req.Slice.Name, ErrNotFound)
	}
	return cloneSlice(data), nil
}

// SetSlice replaces one slice fixture.
func (c *MockClient) SetSlice(section console.SectionID, name string, data console.SliceData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data.Slices == nil {
		c.data.Slices = map[console.SectionID]map[string]console.SliceData{}
	}
	if c.data.Slices[section] == nil {
		c.data.Slices[section] = map[string]console.SliceData{}
	}
	c.data.Slices[section][name] = cloneSlice(data)
}

// RevokeTokens makes every subsequent fetch answer 401.
func (c *MockClient) RevokeTokens() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = map[string]struct{}{}
}

func cloneSlice(data console.SliceData) console.SliceData {
	out := console.SliceData{}
	if data.Records != nil {
		out.Records = make([]console.Record, len(data.Records))
		for i, r := range data.Records {
			cloned := make(console.Record, len(r))
			for k, v := range r {
				cloned[k] = v
			}
			out.Records[i] = cloned
		}
	}
	if data.Aggregate != nil {
		out.Aggregate = make(console.Aggregate, len(data.Aggregate))
		for k, v := range data.Aggregate {
			out.Aggregate[k] = v
		}
	}
	return out
}
