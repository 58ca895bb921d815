package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/commands"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/httpapi"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/queries"
)

// Config wires go-router with the console executor and event stream.
type Config[T any] struct {
	Router    router.Router[T]
	API       httpapi.Executor
	Broadcast *console.BroadcastHook
	BasePath  string
	Routes    RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Session    string
	Navigation string
	Section    string
	Toggle     string
	Viewport   string
	Close      string
	Criteria   string
	View       string
	Refresh    string
	Sections   string
	WebSocket  string
}

// Register mounts the console JSON API and WebSocket event stream on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}

	group := cfg.Router.Group(base)
	registerSession(group, cfg.API, routes)
	registerNavigation(group, cfg.API, routes)
	registerView(group, cfg.API, routes)

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func registerSession[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		var creds console.Credentials
		if err := json.Unmarshal(ctx.Body(), &creds); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Login(ctx.Context(), creds); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondSession(ctx, api)
	}))

	r.Delete(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Logout(ctx.Context()); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
	}))

	r.Get(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		return respondSession(ctx, api)
	}))
}

func registerNavigation[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Get(routes.Navigation, router.WrapHandler(func(ctx router.Context) error {
		return respondNavigation(ctx, api)
	}))

	r.Post(routes.Section, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SelectSectionInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.SelectSection(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondNavigation(ctx, api)
	}))

	r.Post(routes.Toggle, router.WrapHandler(func(ctx router.Context) error {
		if err := api.ToggleSidebar(ctx.Context()); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondNavigation(ctx, api)
	}))

	r.Post(routes.Viewport, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ResizeViewportInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Resize(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondNavigation(ctx, api)
	}))

	r.Post(routes.Close, router.WrapHandler(func(ctx router.Context) error {
		if err := api.CloseDrawer(ctx.Context()); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondNavigation(ctx, api)
	}))
}

func registerView[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Put(routes.Criteria, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.UpdateCriteriaInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.UpdateCriteria(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondView(ctx, api, false)
	}))

	r.Get(routes.View, router.WrapHandler(func(ctx router.Context) error {
		return respondView(ctx, api, ctx.Query("wait") == "true")
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshSectionInput
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Get(routes.Sections, router.WrapHandler(func(ctx router.Context) error {
		sections, err := api.Sections(ctx.Context())
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, sections)
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *console.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondSession(ctx router.Context, api httpapi.Executor) error {
	session, err := api.Session(ctx.Context())
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, session)
}

func respondNavigation(ctx router.Context, api httpapi.Executor) error {
	nav, err := api.Navigation(ctx.Context())
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, nav)
}

func respondView(ctx router.Context, api httpapi.Executor, wait bool) error {
	view, err := api.View(ctx.Context(), queries.SectionViewInput{Wait: wait})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, view)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": httpapi.Message(err)})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Session == "" {
		routes.Session = "/console/session"
	}
	if routes.Navigation == "" {
		routes.Navigation = "/console/navigation"
	}
	if routes.Section == "" {
		routes.Section = "/console/navigation/section"
	}
	if routes.Toggle == "" {
		routes.Toggle = "/console/navigation/toggle"
	}
	if routes.Viewport == "" {
		routes.Viewport = "/console/navigation/viewport"
	}
	if routes.Close == "" {
		routes.Close = "/console/navigation/close"
	}
	if routes.Criteria == "" {
		routes.Criteria = "/console/criteria"
	}
	if routes.View == "" {
		routes.View = "/console/view"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/console/refresh"
	}
	if routes.Sections == "" {
		routes.Sections = "/console/sections"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/console/ws"
	}
	return routes
}
