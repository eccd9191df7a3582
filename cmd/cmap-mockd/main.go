// Command cmap-mockd serves the cmaptest fake data service on a real
// listener for offline development: point a client at it with
// CMAP_BASE_URL=http://localhost:8951 and the demo API key.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/simonscmap/cmap-go/cmaptest"
	"github.com/simonscmap/cmap-go/internal/logging"
	"github.com/simonscmap/cmap-go/internal/metrics"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", ":8951", "listen address")
	apiKey := flag.String("api-key", cmaptest.DemoAPIKey, "required API key; empty disables authentication")
	flag.Parse()

	zl := logging.Build(logging.Config{
		Level:     os.Getenv("LOG_LEVEL"),
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "cmap-mockd",
	}, os.Stdout)
	appLog := logging.NewSlog(&zl)

	appLog.Info("starting mock data service",
		"addr", *addr,
		"version", Version,
		"auth", *apiKey != "")

	s := cmaptest.NewUnstarted(cmaptest.Options{APIKey: *apiKey, Logger: &zl})
	s.SeedDemo()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Getenv("METRICS_ENABLED") == "true" {
		maddr := os.Getenv("METRICS_ADDR")
		if maddr == "" {
			maddr = ":9090"
		}
		mpath := os.Getenv("METRICS_PATH")
		if mpath == "" {
			mpath = "/metrics"
		}

		p := metrics.Init(metrics.Config{
			Enabled: true,
			Addr:    maddr,
			Path:    mpath,
			Build: metrics.BuildInfo{
				Version:   os.Getenv("BUILD_VERSION"),
				Revision:  os.Getenv("BUILD_REVISION"),
				Branch:    os.Getenv("BUILD_BRANCH"),
				BuildDate: os.Getenv("BUILD_DATE"),
			},
		})
		metrics.Register(p.Registerer())

		mux := http.NewServeMux()
		mux.Handle(mpath, p.Handler())

		msrv := &http.Server{
			Addr:              maddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		go func() {
			log.Printf("metrics: listening on %s%s", maddr, mpath)
			if err := msrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("metrics server exited: %v", err)
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := msrv.Shutdown(shutdownCtx); err != nil {
				log.Printf("metrics: shutdown error: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("http listen", "addr", *addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		appLog.Info("server stopped")
		return 0
	case err := <-errCh:
		appLog.Error("server exited with error", "err", err)
		return 1
	}
}
