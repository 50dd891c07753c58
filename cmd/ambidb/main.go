// main is the entry point of the AmbiDB console record manager.
//
// STARTUP SEQUENCE:
//  1. Load configuration (file, environment, defaults)
//  2. Initialise the logger
//  3. Load every record from the flat data file
//  4. Run the interactive menu until "Save and Exit"
//
// RUNNING:
//
//	go run ./cmd/ambidb --config=config/local.yaml
//
// or, with no config file at all:
//
//	STORAGE_PATH=records.txt go run ./cmd/ambidb
//
// Exit status is 0 after a clean save, 1 if loading or saving fails or if
// input ends before the records are saved.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/ambidb/internal/config"
	"github.com/aanand-mishra/ambidb/internal/console"
	"github.com/aanand-mishra/ambidb/internal/logger"
	"github.com/aanand-mishra/ambidb/internal/records"
)

func main() {
	os.Exit(run())
}

func run() int {
	configFlag := flag.String("config", "", "Path to the configuration YAML file")
	dataFlag := flag.String("data", "", "Path to the record data file (overrides storage_path)")
	flag.Parse()

	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad(config.ResolvePath(*configFlag))
	if *dataFlag != "" {
		cfg.StoragePath = *dataFlag
	}

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr; stdout belongs to the menu.
	log := logger.New(cfg.Env, cfg.LogLevel, os.Stderr)
	slog.SetDefault(log)

	log.Debug("starting ambidb",
		slog.String("env", cfg.Env),
		slog.String("data", cfg.StoragePath),
	)

	// ── 3. Load Records ───────────────────────────────────────────────────
	// A corrupted file stops the program here, before any interactive use.
	store, err := records.Open(cfg.StoragePath)
	if err != nil {
		log.Error("failed to load records", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error loading data: %s\n", err)
		return 1
	}
	log.Debug("records loaded", slog.Int("count", store.Len()))

	// ── 4. Run the Menu ───────────────────────────────────────────────────
	prompter, err := console.NewPrompter(os.Stdin, os.Stdout)
	if err != nil {
		log.Error("failed to initialise input", slog.String("error", err.Error()))
		return 1
	}
	defer prompter.Close()

	menu := console.NewMenu(store, console.NewInput(prompter, os.Stdout), os.Stdout)
	if err := menu.Run(); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			log.Warn("input closed before save, changes discarded")
		case errors.Is(err, records.ErrStorageIO):
			log.Error("failed to save records", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "Error saving data: %s\n", err)
		default:
			log.Error("session aborted", slog.String("error", err.Error()))
		}
		return 1
	}
	return 0
}
