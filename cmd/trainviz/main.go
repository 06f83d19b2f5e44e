// Command trainviz plays a train program in the terminal.
//
// Usage:
//
//	trainviz [-config trainviz.yaml] [-program intro.yaml] [-init]
//
// Resizing the terminal broadcasts a resize to every running train.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "modernc.org/sqlite"

	"github.com/petrijr/tweentrain"
	"github.com/petrijr/tweentrain/internal/config"
)

func main() {
	configPath := flag.String("config", "trainviz.yaml", "path to the configuration file")
	programPath := flag.String("program", "", "path to a YAML train program (overrides the config)")
	initConfig := flag.Bool("init", false, "write a default configuration file and exit")
	flag.Parse()

	if *initConfig {
		wrote, err := config.EnsureFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		if wrote {
			fmt.Printf("wrote %s\n", *configPath)
		} else {
			fmt.Printf("%s already exists\n", *configPath)
		}
		return
	}

	if err := run(*configPath, *programPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, programPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if programPath != "" {
		cfg.Program = programPath
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	program, err := loadProgram(cfg.Program)
	if err != nil {
		return err
	}

	metrics := &tweentrain.BasicMetrics{}
	observer := tweentrain.NewCompositeObserver(metrics, tweentrain.NewLoggingObserver(logger))

	var stage *tweentrain.LocalStage
	if cfg.Journal != "" {
		db, err := sql.Open("sqlite", cfg.Journal)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer db.Close()

		bundle, err := tweentrain.NewSQLiteBundle(context.Background(), program.Name, db, logger,
			tweentrain.WithStageObserver(observer))
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		stage = bundle.Stage
		logger.Info("journal_opened", slog.String("run", bundle.Run))
	} else {
		stage = tweentrain.NewLocalStage(program.Name, tweentrain.WithStageObserver(observer))
	}

	m, err := newModel(stage, metrics, program, cfg.FrameInterval(), cfg.Stage.Width, cfg.Stage.Height, logger)
	if err != nil {
		return err
	}

	logger.Info("trainviz_started",
		slog.String("program", program.Name),
		slog.Int("fps", cfg.FPS),
		slog.Bool("journal", cfg.Journal != ""),
	)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func loadProgram(path string) (tweentrain.Program, error) {
	if path == "" {
		return tweentrain.ParseProgram([]byte(demoProgram))
	}
	return tweentrain.LoadProgram(path)
}

// openLogger returns a text logger writing to cfg.LogFile. The terminal is
// owned by the TUI, so without a log file logs are discarded.
func openLogger(cfg config.Config) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}
