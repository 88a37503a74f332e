package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scriptdeck/internal/config"
	"scriptdeck/internal/database"
	"scriptdeck/internal/database/repository"
	"scriptdeck/internal/script"
	"scriptdeck/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repositories
	scriptRepo := repository.NewScriptRepo(db)
	kvRepo := repository.NewKVRepo(db)

	httpTimeout := time.Duration(cfg.Runner.HTTPTimeoutMS) * time.Millisecond
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}

	runner := script.NewRunner(
		script.NewHTTPBinding(httpTimeout),
		&script.StoreBinding{KV: kvRepo},
		script.UUIDBinding{},
		script.TextBinding{},
		script.ClockBinding{},
	)

	app, err := tui.New(ctx, cfg, tui.Repos{Scripts: scriptRepo, KV: kvRepo}, runner)
	if err != nil {
		log.Fatalf("tui: %v", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
