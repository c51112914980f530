package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/musclemap/internal/client"
	"github.com/claude/musclemap/internal/config"
	mcpsrv "github.com/claude/musclemap/internal/mcp"
	"github.com/claude/musclemap/internal/store"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remote := flag.String("remote", "", "MuscleMap server URL; when set, talk to the REST API instead of opening the store directly")
	apiKey := flag.String("api-key", "", "API key for the remote server")
	flag.Parse()

	// MCP talks JSON-RPC on stdout, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcpsrv.DataSource

	if *remote != "" {
		ds = client.New(*remote, *apiKey)
		log.Info("MCP server starting", "version", Version, "mode", "remote", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		st, err := store.Open(context.Background(), store.Options{
			Backend:        cfg.Storage.Backend,
			Path:           cfg.Storage.Path,
			DSN:            cfg.Database.DSN(),
			MigrationsPath: cfg.Storage.MigrationsPath,
		})
		if err != nil {
			log.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
			os.Exit(1)
		}
		defer st.Close()

		ds = mcpsrv.NewLocalSource(st)
		log.Info("MCP server starting", "version", Version, "mode", "local", "backend", cfg.Storage.Backend)
	}

	s := mcpsrv.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}
