// Package main runs tagstudiod, the HTTP daemon fronting a single opened
// library directory: tag/entry storage, saved-search style queries,
// grouping, and filesystem refresh.
package main

// @title TagStudio Library API
// @version 1.0.0
// @description HTTP surface over a local file metadata library.
// @BasePath /api/v1

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/TagStudioDev/TagStudio-sub002/docs"

	"github.com/TagStudioDev/TagStudio-sub002/api"
	"github.com/TagStudioDev/TagStudio-sub002/config"
	"github.com/TagStudioDev/TagStudio-sub002/library"
	"github.com/TagStudioDev/TagStudio-sub002/logger"
)

// Version is overridden at build time via -ldflags.
var Version = "0.1.0-dev"

func main() {
	cfg := config.Load()
	docs.SwaggerInfo.Host = cfg.SwaggerHost

	libraryRoot := flag.String("library-root", cfg.LibraryRoot, "directory to open as a library")
	bindAddr := flag.String("bind-addr", cfg.BindAddr, "HTTP listen address")
	logLevel := flag.String("log-level", cfg.LogLevel, "trace, debug, info, warn, or error")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tagstudiod %s\n", Version)
		return
	}

	if err := logger.SetLevel(*logLevel); err != nil {
		logger.Warnf("ignoring invalid log level %q: %v", *logLevel, err)
	}

	lib, err := library.Open(*libraryRoot)
	if err != nil {
		logger.Fatalf("failed to open library at %q: %v", *libraryRoot, err)
	}
	defer lib.Close()

	router := api.NewRouter(lib, cfg.ScannerBinary)

	srv := &http.Server{
		Addr:         *bindAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		logger.Infof("tagstudiod listening on %s, library root %s", *bindAddr, *libraryRoot)
		logger.Infof("API documentation: http://%s/swagger/", *bindAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Infof("received signal %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	logger.Infof("tagstudiod shutdown complete")
}
