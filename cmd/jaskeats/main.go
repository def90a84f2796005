package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/jaskeats/internal/api"
	"github.com/jask/jaskeats/internal/catalog"
	"github.com/jask/jaskeats/internal/config"
	"github.com/jask/jaskeats/internal/order"
	"github.com/jask/jaskeats/internal/session"
	"github.com/jask/jaskeats/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	gw := api.NewClient(cfg.API.BaseURL, logger)
	sess := session.NewManager(gw)
	cat := catalog.New(gw, logger)
	coord := order.NewCoordinator(gw, cat, logger)

	p := tea.NewProgram(tui.New(ctx, cfg, sess, cat, coord, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// openLogger writes to the configured file; the terminal belongs to the TUI.
func openLogger(cfg config.LogConfig) (*logrus.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(f)
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger, func() { _ = f.Close() }, nil
}
