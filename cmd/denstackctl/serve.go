package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console/gorouter"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/httpapi"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/goadmin"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Addr     string `help:"Listen address (defaults to server.addr)."`
	BasePath string `name:"base-path" default:"/admin" help:"Route prefix for the console API."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	addr := cmd.Addr
	if addr == "" {
		addr = rt.Config.Server.Addr
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:    server.Router(),
		API:       httpapi.NewCommandExecutor(rt.Shell, rt.Telemetry),
		Broadcast: rt.Broadcast,
		BasePath:  cmd.BasePath,
	}); err != nil {
		return err
	}

	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: true,
		Shell:         rt.Shell,
		MenuBuilder:   goadmin.LoggingMenuBuilder{Logger: rt.Logger.Named("menu")},
	})
	if err != nil {
		return err
	}
	if err := admin.Bootstrap(ctx); err != nil {
		return err
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rt.Logger.Info("console api listening", zap.String("addr", addr), zap.String("base", cmd.BasePath))
		return server.Serve(addr)
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	success("Server stopped")
	return nil
}
