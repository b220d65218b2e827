package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/streamscout/internal/config"
	"github.com/mmcdole/streamscout/internal/domain"
	"github.com/mmcdole/streamscout/internal/log"
	"github.com/mmcdole/streamscout/internal/repository"
	"github.com/mmcdole/streamscout/internal/search"
	"github.com/mmcdole/streamscout/internal/store"
	"github.com/mmcdole/streamscout/internal/tmdb"
	"github.com/mmcdole/streamscout/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var clearCache bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove all cached content")
	flag.Parse()

	if showVersion {
		fmt.Printf("streamscout %s\n", Version)
		return
	}

	if clearCache {
		if err := config.ClearCache(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cache cleared.")
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting streamscout", "version", Version)

	if !cfg.IsConfigured() || cfg.TMDB.Token == "" {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}

	client, err := tmdb.NewClient(cfg.TMDB.URL, cfg.TMDB.Token, logger)
	if err != nil {
		if errors.Is(err, domain.ErrMissingToken) {
			return fmt.Errorf("no TMDB bearer token configured; set TMDB_BEARER_TOKEN or rerun setup")
		}
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	cacheStore, err := store.NewStore(config.GetCachePath())
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cacheStore.Close()

	handle := config.NewHandle(cfg)
	repo := repository.New(client, cacheStore, handle, logger)
	agg := search.NewAggregator(repo, logger)

	model := tui.NewModel(repo, agg, handle)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow collects region, subscriptions, and the bearer token on
// first run, then persists the configuration.
func runSetupFlow(cfg *config.Config) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("Welcome to streamscout!")
	fmt.Println()

	// Region
	fmt.Printf("Region code [%s]: ", cfg.User.Region)
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if region := strings.ToUpper(strings.TrimSpace(input)); region != "" {
		cfg.User.Region = region
	}

	// Subscriptions
	fmt.Println()
	fmt.Println("Available streaming services:")
	services := domain.AllServices()
	for i, svc := range services {
		fmt.Printf("  %d. %s\n", i+1, svc.DisplayName())
	}
	fmt.Print("Your subscriptions (comma-separated numbers, empty for none): ")
	input, err = reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var subs []string
	for _, tok := range strings.Split(strings.TrimSpace(input), ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(tok, "%d", &n); err != nil || n < 1 || n > len(services) {
			fmt.Printf("  ignoring %q\n", tok)
			continue
		}
		subs = append(subs, string(services[n-1]))
	}
	cfg.User.Subscriptions = subs

	// Bearer token, unless already supplied via environment
	if cfg.TMDB.Token == "" {
		fmt.Println()
		fmt.Print("TMDB bearer token (input hidden): ")
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		cfg.TMDB.Token = strings.TrimSpace(string(tokenBytes))
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()

	return nil
}
