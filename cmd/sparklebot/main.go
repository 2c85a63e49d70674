package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"sparklebot/pkg/api"
	"sparklebot/pkg/config"
	"sparklebot/pkg/console"
	"sparklebot/pkg/logging"
	"sparklebot/pkg/repl"
	"sparklebot/pkg/session"
	"sparklebot/pkg/worldtime"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run starts the chat and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("sparklebot", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", config.GetConfigPath(), "path to the configuration file (.json, .yaml or .toml)")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		printVersion(stdout)
		return 0
	}

	if err := config.LoadDotEnv(".env", filepath.Join(config.GetConfigDir(), ".env")); err != nil {
		fmt.Fprintf(stderr, "Error loading .env: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config %s: %v\n", *configPath, err)
		return 1
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}

	apiKey, err := cfg.APIKey()
	if err != nil {
		logger.Error("startup_failed", "error", err)
		fmt.Fprintln(stderr, err)
		return 1
	}

	httpClient, err := api.NewHTTPClient(cfg.APITimeout(), cfg.OpenAI.CABundle)
	if err != nil {
		logger.Error("startup_failed", "error", err, "ca_bundle", cfg.OpenAI.CABundle)
		fmt.Fprintf(stderr, "Error configuring TLS: %v\n", err)
		return 1
	}
	transport := api.NewTransport(httpClient)

	renderer := console.NewRenderer(stdout, stderr, console.ColorEnabled(cfg.Color, os.Stdout))

	client := api.NewClient(apiKey, transport)
	client.Endpoint = cfg.OpenAI.APIURL
	client.Model = cfg.OpenAI.Model
	client.Policy.MaxAttempts = cfg.Retry.MaxAttempts
	client.Policy.Delay = cfg.RetryDelay()
	client.Policy.OnRetry = func(attempt, maxAttempts int, err error, wait time.Duration) {
		renderer.Notice(fmt.Sprintf("Retrying... (%d/%d)", attempt, maxAttempts))
	}

	state := session.New(cfg.Session.BotName, cfg.Session.UserName, cfg.Session.Decorate)
	logger.Info("startup",
		"session_id", state.ID,
		"config_path", *configPath,
		"api_url", cfg.OpenAI.APIURL,
		"model", cfg.OpenAI.Model,
		"api_key", logging.MaskSecret(apiKey),
		"max_attempts", cfg.Retry.MaxAttempts,
		"retry_delay", cfg.RetryDelay())

	reader := console.NewReader(cfg.Session.InputHistoryFile)
	defer reader.Close()

	loop := repl.New(reader, renderer, state, client, worldtime.NewFetcher(transport, cfg.TimeLookup.URL))
	loop.IncludeHistory = cfg.OpenAI.IncludeHistory
	loop.MaxInputLength = cfg.Session.MaxInputLength

	if err := loop.Run(ctx); err != nil {
		slog.Error("session_failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
