package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/handiism/yamusic-downloader/internal/config"
	"github.com/handiism/yamusic-downloader/internal/logging"
	"github.com/handiism/yamusic-downloader/internal/store"
	"github.com/handiism/yamusic-downloader/internal/web"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		addrFlag   = flag.String("addr", "", "Listen address (overrides config)")
		dbFlag     = flag.String("db", "", "Path to the run history database (overrides config)")
		configFlag = flag.String("config", "", "Path to config file")
	)

	flag.Parse()

	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		logging.Fatal("load config: %v", err)
	}
	if *addrFlag != "" {
		settings.ListenAddr = *addrFlag
	}
	if *dbFlag != "" {
		settings.DatabasePath = *dbFlag
	}

	token, err := config.LoadToken()
	if err != nil {
		logging.Fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, settings.DatabasePath)
	if err != nil {
		logging.Fatal("open history store: %v", err)
	}
	defer st.Close()

	srv := &http.Server{
		Addr:         settings.ListenAddr,
		Handler:      web.New(settings, token, st),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("listening on %s", settings.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Wait for a signal or a listener failure, then drain.
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		logging.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Fatal("server error: %v", err)
	}
	logging.Info("server stopped")
}
