// arise-mcp runs the MCP tool server over stdio, backed by the records
// store from the config file. Point an MCP-capable agent at this binary to
// let it read and log workouts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/arise/internal/config"
	arisemcp "github.com/meltforce/arise/internal/mcp"
	"github.com/meltforce/arise/internal/progression"
	"github.com/meltforce/arise/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("arise-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; log to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var store storage.Store
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		store, err = storage.OpenPostgres(context.Background(), cfg.Storage.Database.DSN(), cfg.Storage.Login)
	default:
		store, err = storage.OpenLocal(cfg.Storage.Path)
	}
	if err != nil {
		log.Error("failed to open store", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	records := storage.NewRecords(store, log)
	tracker := progression.NewTracker(records, log)

	s := arisemcp.New(records, tracker, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
