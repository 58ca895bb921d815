package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/commands"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/queries"
)

// Handlers exposes net/http endpoints backed by an Executor. Events, when
// set, adds the SSE and WebSocket event streams.
type Handlers struct {
	API    Executor
	Events *console.BroadcastHook
}

// Register mounts the console endpoints on mux under prefix (e.g. "/admin").
func (h *Handlers) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("POST "+prefix+"/console/session", h.HandleLogin)
	mux.HandleFunc("DELETE "+prefix+"/console/session", h.HandleLogout)
	mux.HandleFunc("GET "+prefix+"/console/session", h.HandleSession)
	mux.HandleFunc("GET "+prefix+"/console/navigation", h.HandleNavigation)
	mux.HandleFunc("POST "+prefix+"/console/navigation/section", h.HandleSelectSection)
	mux.HandleFunc("POST "+prefix+"/console/navigation/toggle", h.HandleToggleSidebar)
	mux.HandleFunc("POST "+prefix+"/console/navigation/viewport", h.HandleResize)
	mux.HandleFunc("POST "+prefix+"/console/navigation/close", h.HandleCloseDrawer)
	mux.HandleFunc("PUT "+prefix+"/console/criteria", h.HandleUpdateCriteria)
	mux.HandleFunc("GET "+prefix+"/console/view", h.HandleView)
	mux.HandleFunc("POST "+prefix+"/console/refresh", h.HandleRefresh)
	mux.HandleFunc("GET "+prefix+"/console/sections", h.HandleSections)
	if h.Events != nil {
		mux.HandleFunc("GET "+prefix+"/console/events", h.Events.ServeSSE)
		mux.HandleFunc("GET "+prefix+"/console/ws", h.Events.ServeWebSocket)
	}
}

func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds console.Credentials
	if !decode(w, r, &creds) {
		return
	}
	if err := h.API.Login(r.Context(), creds); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	session, err := h.API.Session(r.Context())
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Logout(r.Context()); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.API.Session(r.Context())
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handlers) HandleNavigation(w http.ResponseWriter, r *http.Request) {
	h.respondNavigation(w, r)
}

func (h *Handlers) HandleSelectSection(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectSectionInput
	if !decode(w, r, &payload) {
		return
	}
	if err := h.API.SelectSection(r.Context(), payload); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	h.respondNavigation(w, r)
}

func (h *Handlers) HandleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	if err := h.API.ToggleSidebar(r.Context()); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	h.respondNavigation(w, r)
}

func (h *Handlers) HandleResize(w http.ResponseWriter, r *http.Request) {
	var payload commands.ResizeViewportInput
	if !decode(w, r, &payload) {
		return
	}
	if err := h.API.Resize(r.Context(), payload); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	h.respondNavigation(w, r)
}

func (h *Handlers) HandleCloseDrawer(w http.ResponseWriter, r *http.Request) {
	if err := h.API.CloseDrawer(r.Context()); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	h.respondNavigation(w, r)
}

func (h *Handlers) HandleUpdateCriteria(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateCriteriaInput
	if !decode(w, r, &payload) {
		return
	}
	if err := h.API.UpdateCriteria(r.Context(), payload); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	h.respondView(w, r, false)
}

func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, r.URL.Query().Get("wait") == "true")
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshSectionInput
	if r.ContentLength > 0 && !decode(w, r, &payload) {
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handlers) HandleSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.API.Sections(r.Context())
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (h *Handlers) respondNavigation(w http.ResponseWriter, r *http.Request) {
	nav, err := h.API.Navigation(r.Context())
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, nav)
}

func (h *Handlers) respondView(w http.ResponseWriter, r *http.Request, wait bool) {
	view, err := h.API.View(r.Context(), queries.SectionViewInput{Wait: wait})
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is required")
		}
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}
