package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/bnema/platform-intake/internal/adapters/http"
)

const (
	shutdownTimeout      = 10 * time.Second
	sessionSweepInterval = time.Minute
)

type sessionSweeper interface {
	Sweep() int
}

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.cfg.GetString("server.addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return runServer(ctx, app, listener)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

// runServer serves until ctx is done, then drains in-flight requests. The
// governance watcher runs alongside when a catalog file is configured.
func runServer(ctx context.Context, app *app, listener net.Listener) error {
	rt, err := app.buildRuntime(ctx)
	if err != nil {
		_ = listener.Close()
		return err
	}

	router := httpadapter.NewRouter(httpadapter.NewChatHandler(rt.intake, app.logger), app.logger, httpadapter.RouterConfig{
		Metrics:        rt.metrics,
		Gatherer:       rt.registry,
		Health:         rt.health,
		RequestTimeout: app.cfg.GetDuration("server.request_timeout"),
	})
	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info().Str("addr", listener.Addr().String()).Msg("serving chat api")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		app.logger.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if sweeper, ok := rt.sessions.(sessionSweeper); ok {
		g.Go(func() error {
			sweepSessions(gctx, sweeper, sessionSweepInterval, app.logger)
			return nil
		})
	}
	if rt.holder != nil {
		g.Go(func() error {
			return rt.holder.Watch(gctx)
		})
	}

	return g.Wait()
}

// sweepSessions evicts expired sessions until ctx is done so an idle server
// does not hold abandoned conversations.
func sweepSessions(ctx context.Context, sweeper sessionSweeper, interval time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sweeper.Sweep(); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("expired sessions swept")
			}
		}
	}
}
