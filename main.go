package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"docchat/internal/api"
	"docchat/internal/config"
	"docchat/internal/export"
	"docchat/internal/session"
	"docchat/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	// A .env next to the binary can carry DOCCHAT_API_URL etc. Missing
	// file is the normal case.
	_ = godotenv.Load()

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "docchat: %v\n", err)
		os.Exit(1)
	}

	if err := setupLogging(cfg.DebugLog); err != nil {
		fmt.Fprintf(os.Stderr, "docchat: %v\n", err)
		os.Exit(1)
	}

	sessions := session.NewStore(openStateBackend(cfg.StatePath))
	client := api.NewClient(cfg.APIBaseURL, sessions)

	exporter, err := export.New(cfg.ExportDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docchat: %v\n", err)
		os.Exit(1)
	}

	m := ui.NewModel(cfg, client, sessions, exporter)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "docchat: %v\n", err)
		os.Exit(1)
	}
}

// openStateBackend opens the on-disk session store. When the state file
// cannot be opened the app still runs; the session just will not survive
// a restart.
func openStateBackend(path string) session.Backend {
	backend, err := session.OpenSQLite(path)
	if err != nil {
		log.Printf("state store unavailable, session will not persist: %v", err)
		return session.NewMemoryBackend()
	}
	return backend
}

// setupLogging routes the standard logger to the debug file when one is
// configured and discards it otherwise, keeping the alternate screen
// clean.
func setupLogging(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	log.SetOutput(f)
	return nil
}
