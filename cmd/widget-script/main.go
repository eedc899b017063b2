// Command widget-script prints the home-screen widget script for one
// recipient, ready to paste into a widget runner.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/postcards-home/internal/app"
	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/service/archive"
	"github.com/heartmarshall/postcards-home/internal/service/feed"
)

func main() {
	recipient := flag.String("recipient", "", "household member the widget shows postcards for")
	baseURL := flag.String("base-url", "", "origin the widget polls (defaults to WIDGET_PUBLIC_BASE_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	if *recipient == "" {
		*recipient = cfg.Household.DefaultIdentity
	}
	if *baseURL == "" {
		*baseURL = cfg.Widget.PublicBaseURL
	}
	if *baseURL == "" {
		logger.Error("a base URL is required: pass -base-url or set WIDGET_PUBLIC_BASE_URL")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := app.OpenStorage(ctx, logger, cfg.Storage)
	if err != nil {
		logger.Error("open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close() //nolint:errcheck

	feedSvc := feed.NewService(logger, archive.NewService(logger, store, cfg.Archive, nil))

	script, err := feedSvc.WidgetScript(ctx, *recipient, *baseURL)
	if err != nil {
		logger.Error("render widget script", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Print(script)
}
