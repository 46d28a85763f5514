// arise-sync pushes the local SQLite records to the remote Postgres store,
// so a device that tracked offline can mirror its progression to the synced
// backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/arise/internal/config"
	"github.com/meltforce/arise/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (database section and login are used)")
	localPath := flag.String("local", "", "local records directory (defaults to storage.path from config)")
	dryRun := flag.Bool("dry-run", false, "read local records but don't write to the remote store")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("arise-sync", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Storage.Database.Host == "" {
		log.Error("config has no storage.database section; nothing to sync to")
		os.Exit(1)
	}

	dir := *localPath
	if dir == "" {
		dir = cfg.Storage.Path
	}

	local, err := storage.OpenLocal(dir)
	if err != nil {
		log.Error("failed to open local store", "path", dir, "error", err)
		os.Exit(1)
	}
	defer local.Close()

	ctx := context.Background()

	var remote storage.Store
	if !*dryRun {
		dsn := cfg.Storage.Database.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		remote, err = storage.OpenPostgres(ctx, dsn, cfg.Storage.Login)
		if err != nil {
			log.Error("failed to open remote store", "error", err)
			os.Exit(1)
		}
		defer remote.Close()
	}

	synced := 0

	if w, err := local.DailyWorkout(ctx); err == nil {
		log.Info("local daily workout", "date", w.Date, "completed", w.Completed)
		if remote != nil {
			if err := remote.SaveDailyWorkout(ctx, w); err != nil {
				log.Error("syncing daily workout", "error", err)
				os.Exit(1)
			}
		}
		synced++
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error("reading local daily workout", "error", err)
		os.Exit(1)
	}

	if p, err := local.UserProgress(ctx); err == nil {
		log.Info("local user progress", "level", p.Level, "streak", p.StreakDays, "total", p.TotalWorkoutsCompleted)
		if remote != nil {
			if err := remote.SaveUserProgress(ctx, p); err != nil {
				log.Error("syncing user progress", "error", err)
				os.Exit(1)
			}
		}
		synced++
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error("reading local user progress", "error", err)
		os.Exit(1)
	}

	if n, err := local.LevelUpNotification(ctx); err == nil {
		if remote != nil {
			if err := remote.SaveLevelUpNotification(ctx, n); err != nil {
				log.Error("syncing level up notification", "error", err)
				os.Exit(1)
			}
		}
		synced++
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error("reading local level up notification", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("dry run complete", "records", synced)
		return
	}
	log.Info("sync complete", "records", synced, "login", cfg.Storage.Login)
}
