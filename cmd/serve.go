package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/lyrx/internal/server"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/desertthunder/lyrx/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web front end until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port out of range: %d", shared.ErrInvalidFlag, cfg.Port)
	}

	app, err := web.New(web.Options{
		Client:          r.lyricsClient(),
		Timeout:         r.config.Service.Timeout(),
		ShowResultCount: r.config.Display.ShowResultCount,
		AllowedOrigins:  cfg.AllowedOrigins,
		Logger:          r.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build web app: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Addr(), app.Handler(), r.logger)
	if !cmd.Bool("open") {
		return srv.ListenAndServe(ctx)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	url := "http://" + ln.Addr().String()
	if err := shared.OpenBrowser(url); err != nil {
		r.logger.Warn("could not open browser", "url", url, "error", err)
	}
	return srv.Serve(ctx, ln)
}
