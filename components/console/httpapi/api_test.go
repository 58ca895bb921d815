package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/commands"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/denstack"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(_ context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

func TestHandleSelectSectionPropagatesInput(t *testing.T) {
	selectCmd := &stubCommander[commands.SelectSectionInput]{}
	api := &Handlers{API: &CommandExecutor{SelectSectionCommander: selectCmd}}
	req := httptest.NewRequest(http.MethodPost, "/admin/console/navigation/section", strings.NewReader(`{"section":"orders"}`))
	rec := httptest.NewRecorder()

	api.HandleSelectSection(rec, req)

	if selectCmd.calls != 1 || selectCmd.last.Section != console.SectionOrders {
		t.Fatalf("expected select to execute with orders, got %+v", selectCmd.last)
	}
	// No navigation querier configured.
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without navigation query, got %d", rec.Code)
	}
}

func TestHandleLoginMapsAuthFailure(t *testing.T) {
	login := &stubCommander[console.Credentials]{err: &console.AuthFailure{Message: "Incorrect password", StatusCode: http.StatusUnauthorized}}
	api := &Handlers{API: &CommandExecutor{LoginCommander: login}}
	buf, _ := json.Marshal(console.Credentials{Email: "root@denstack.io", Password: "nope"})
	rec := httptest.NewRecorder()

	api.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/admin/console/session", bytes.NewReader(buf)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Incorrect password", body["error"])
}

func TestHandleLoginRejectsEmptyBody(t *testing.T) {
	login := &stubCommander[console.Credentials]{}
	api := &Handlers{API: &CommandExecutor{LoginCommander: login}}
	rec := httptest.NewRecorder()
	api.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/admin/console/session", http.NoBody))
	if rec.Code != http.StatusBadRequest || login.calls != 0 {
		t.Fatalf("expected 400 without executing, got %d (%d calls)", rec.Code, login.calls)
	}
}

type resizeRecorder struct{ width int }

func (r *resizeRecorder) Resize(_ context.Context, width int) console.NavigationState {
	r.width = width
	return console.NavigationState{}
}

func TestHandleResizeRejectsInvalidWidth(t *testing.T) {
	service := &resizeRecorder{}
	api := &Handlers{API: &CommandExecutor{ResizeCommander: commands.NewResizeViewportCommand(service, nil)}}
	rec := httptest.NewRecorder()
	api.HandleResize(rec, httptest.NewRequest(http.MethodPost, "/admin/console/navigation/viewport", strings.NewReader(`{"width":0}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if service.width != 0 {
		t.Fatalf("invalid width must not reach the shell")
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&console.AuthFailure{}, http.StatusUnauthorized},
		{console.ErrUnauthorized, http.StatusUnauthorized},
		{errors.Join(errors.New("x"), console.ErrUnknownSection), http.StatusBadRequest},
		{console.ErrInvalidCriteria, http.StatusBadRequest},
		{commands.ErrInvalidInput, http.StatusBadRequest},
		{ErrNotConfigured, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func newDemoServer(t *testing.T) *httptest.Server {
	t.Helper()
	client := denstack.NewMockClient(denstack.DemoData())
	store, err := console.NewSessionStore(context.Background(), console.SessionOptions{Auth: client})
	require.NoError(t, err)
	events := console.NewBroadcastHook()
	shell, err := console.NewShell(console.Options{
		Session:    store,
		Navigation: console.NewNavigationController(1280),
		Source:     client,
		EventHook:  events,
	})
	require.NoError(t, err)
	t.Cleanup(shell.Close)

	mux := http.NewServeMux()
	(&Handlers{API: NewCommandExecutor(shell, nil), Events: events}).Register(mux, "/admin")
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func send(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestConsoleFlowOverHTTP(t *testing.T) {
	server := newDemoServer(t)
	base := server.URL + "/admin/console"

	resp := send(t, http.MethodPost, base+"/session", `{"email":"superadmin@denstack.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = send(t, http.MethodPost, base+"/session", `{"email":"superadmin@denstack.com","password":"denstack"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session console.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	assert.True(t, session.IsAuthenticated)
	assert.Empty(t, session.Token, "token must not leave the process")

	resp = send(t, http.MethodPost, base+"/navigation/section", `{"section":"clinics"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, http.MethodGet, base+"/view?wait=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view console.SectionView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, console.SectionClinics, view.Section)
	assert.Len(t, view.Records, 4)

	resp = send(t, http.MethodPut, base+"/criteria", `{"searchTerm":"dental"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.Len(t, view.Records, 2)
	for _, record := range view.Records {
		assert.Contains(t, strings.ToLower(record.Text("name")+record.Text("email")), "dental")
	}

	resp = send(t, http.MethodPost, base+"/navigation/section", `{"section":"billing"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = send(t, http.MethodDelete, base+"/session", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = send(t, http.MethodGet, base+"/session", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	assert.False(t, session.IsAuthenticated)
}

func TestEventStreamOverSSE(t *testing.T) {
	server := newDemoServer(t)
	base := server.URL + "/admin/console"

	resp, err := http.Get(base + "/events")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	received := make(chan console.Event, 1)
	go func() {
		reader := bufio.NewScanner(resp.Body)
		for reader.Scan() {
			line := reader.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var event console.Event
			if json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event) == nil && event.Reason == "toggle" {
				received <- event
				return
			}
		}
	}()

	toggle := send(t, http.MethodPost, base+"/navigation/toggle", "")
	require.Equal(t, http.StatusOK, toggle.StatusCode)

	select {
	case event := <-received:
		assert.Equal(t, console.EventNavigation, event.Kind)
		assert.True(t, event.Navigation.SidebarCollapsed)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for SSE event")
	}
}

func TestEventStreamOverWebSocket(t *testing.T) {
	server := newDemoServer(t)
	base := server.URL + "/admin/console"

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(base, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	resp := send(t, http.MethodPost, base+"/navigation/section", `{"section":"orders"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var event console.Event
		require.NoError(t, conn.ReadJSON(&event))
		if event.Kind == console.EventNavigation && event.Reason == "select" {
			assert.Equal(t, console.SectionOrders, event.Section)
			return
		}
	}
}

func TestEventStreamsNeedBroadcastHook(t *testing.T) {
	mux := http.NewServeMux()
	(&Handlers{API: &CommandExecutor{}}).Register(mux, "/admin")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/console/events", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
