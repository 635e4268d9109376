package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tickler/internal/config"
	"tickler/internal/notify"
	"tickler/internal/scheduler"
	"tickler/internal/store"
	"tickler/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tickler failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}

	s, err := store.Open(repo)
	if err != nil {
		_ = repo.Close()
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	seedWelcomeTask(s)

	runner := scheduler.NewRunner(s, 64)
	runner.Start()
	defer runner.Stop()

	m := update.NewModel(s, notify.Exec{}, cfg, cfgPath, runner.C())
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	s.OnChange(func() { program.Send(update.StateChangedMsg{}) })

	if _, err := program.Run(); err != nil {
		return err
	}
	return s.Persist()
}

func openRepository(cfg config.Config) (store.Repository, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		repo, err := store.OpenSQLite(filepath.Join(cfg.DataDir, "tickler.db"))
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return repo, nil
	default:
		repo, err := store.NewFileRepository(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file backend: %w", err)
		}
		return repo, nil
	}
}

// seedWelcomeTask gives a first launch something to count down to.
func seedWelcomeTask(s *store.Store) {
	if len(s.Tasks()) > 0 {
		return
	}
	due := time.Now().Add(5 * time.Minute)
	_, _ = s.Add(
		"Welcome! Add tasks and press enter to expand notes.",
		due.Format("2006-01-02"),
		due.Format("15:04"),
		"This will remind in **5 minutes**.",
	)
}
