// hamclockd serves the fixed CGI-style endpoint surface a HamClock-style
// desktop client polls: propagation maps, band-condition tables, space-
// weather sliding windows, and assorted proxy feeds, all periodically
// refreshed to disk by a background scheduler (spec.md §1).
//
// Flag parsing with stdlib flag, grounded on apps/proxy/tcpprox.go and
// apps/rtcmlogger/main.go.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/config"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/fetch/activations"
	"github.com/hamprop/backend/internal/fetch/aurora"
	"github.com/hamprop/backend/internal/fetch/contests"
	"github.com/hamprop/backend/internal/fetch/ctyprefix"
	"github.com/hamprop/backend/internal/fetch/drap"
	"github.com/hamprop/backend/internal/fetch/dst"
	"github.com/hamprop/backend/internal/fetch/dxpeditions"
	"github.com/hamprop/backend/internal/fetch/planetaryk"
	"github.com/hamprop/backend/internal/fetch/solarindices"
	"github.com/hamprop/backend/internal/fetch/solarwind"
	"github.com/hamprop/backend/internal/fetch/spacewx"
	"github.com/hamprop/backend/internal/fetch/weathergrid"
	"github.com/hamprop/backend/internal/fetch/xray"
	"github.com/hamprop/backend/internal/httpapi"
	"github.com/hamprop/backend/internal/obslog"
	"github.com/hamprop/backend/internal/propagation"
	"github.com/hamprop/backend/internal/scheduler"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "", "JSON config file")
	flag.StringVar(&configFile, "config", "", "JSON config file")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		os.Stderr.WriteString("cannot load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := obslog.New(cfg.EventLogDirectory, "hamclockd")
	paths := artifact.NewPath(cfg.ArtifactDirectory)

	var background []uint16
	engine := propagation.NewEngine(background, 660, 330, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(allFetchers(paths), logger)
	go func() {
		if err := sched.Run(ctx); err != nil && err != context.Canceled {
			logger.Warn("scheduler stopped", "error", err)
		}
	}()

	router := httpapi.NewRouter(httpapi.Deps{
		Paths:      paths,
		Engine:     engine,
		Logger:     logger,
		PathPrefix: cfg.PathPrefix,
		ProxyMode:  os.Getenv("PROXY_MODE") != "",
	})

	// HTTP/1.0 Connection: close semantics (spec.md §6): no persistent
	// keep-alive connections.
	server := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: router,
	}
	server.SetKeepAlivesEnabled(false)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("hamclockd listening", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func allFetchers(paths artifact.Path) []fetch.Fetcher {
	return []fetch.Fetcher{
		solarindices.Fetcher{Paths: paths},
		planetaryk.Fetcher{Paths: paths},
		xray.Fetcher{Paths: paths},
		solarwind.Fetcher{Paths: paths},
		spacewx.Fetcher{Paths: paths},
		aurora.Fetcher{Paths: paths},
		ctyprefix.Fetcher{Paths: paths},
		dst.Fetcher{Paths: paths},
		activations.Fetcher{Paths: paths},
		dxpeditions.Fetcher{Paths: paths},
		contests.Fetcher{Paths: paths},
		drap.Fetcher{Paths: paths},
		weathergrid.Fetcher{Paths: paths},
	}
}
