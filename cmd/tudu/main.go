package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/idilsaglam/tudu/internal/api"
	"github.com/idilsaglam/tudu/internal/cli"
	"github.com/idilsaglam/tudu/internal/config"
	"github.com/idilsaglam/tudu/internal/logging"
	"github.com/idilsaglam/tudu/internal/speech"
	"github.com/idilsaglam/tudu/internal/tui"
	"github.com/idilsaglam/tudu/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group output by pending/done")
	themeFlag := flag.String("theme", "", "ui theme (classic, neon, mono)")
	configPath := flag.String("config", "", "config file path")
	serverFlag := flag.String("server", "", "remote store URL (overrides config)")
	flag.Parse()

	path := *configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		cfg.ServerURL = *serverFlag
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	ui.SetTheme(cfg.Theme)

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}

	client := api.New(cfg.ServerURL, &http.Client{Timeout: cfg.Timeout()}, logger)
	rec := speech.FromCommand(cfg.Speech.Command, cfg.Speech.Args)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), client, cli.Options{
		Group:   *groupPending,
		Timeout: cfg.Timeout(),
		TUI: tui.Options{
			Recognizer: rec,
			Locale:     cfg.Speech.Locale,
			Timeout:    cfg.Timeout(),
			Logger:     logger,
		},
	})
	closeLog()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
