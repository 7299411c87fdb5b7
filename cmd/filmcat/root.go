package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ksenia-gurenko/film-catalog/internal/catalog"
	"github.com/ksenia-gurenko/film-catalog/internal/config"
	"github.com/ksenia-gurenko/film-catalog/internal/logging"
	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

var version = "dev"

// app carries the global flags and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	apiURL     string
	jsonOutput bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "filmcat",
		Short: "Browse the movie catalog from the terminal",
		Long: `filmcat - terminal client for the movie catalog API

Lists, searches and shows movies from a json-server style movies API.
Run 'filmcat fixtures serve' for a local backend with demo data.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: discovered)")
	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "Movies API base URL (overrides config)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output as JSON")

	root.Version = version
	root.SetVersionTemplate("filmcat {{.Version}}\n")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newSearchCmd(a),
		newTopCmd(a),
		newBrowseCmd(a),
		newFixturesCmd(a),
		newConfigCmd(),
	)
	return root
}

// setup loads .env, the config file and the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.Load(a.configPath)
	}
	path, err := config.Discover()
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func (a *app) newService() *catalog.Service {
	client := moviesapi.NewClient(a.cfg.API.BaseURL,
		moviesapi.WithTimeout(a.cfg.API.Timeout),
		moviesapi.WithLogger(a.log),
	)
	a.log.Debug("using movies API", "base_url", client.BaseURL())
	return catalog.New(client,
		catalog.WithLogger(a.log),
		catalog.WithDebounce(a.cfg.Catalog.SearchDebounce),
		catalog.WithRecommendedLimit(a.cfg.Catalog.RecommendedLimit),
	)
}

// explain adds a hint on stderr when err means the API could not be reached
// at all, then returns err unchanged.
func (a *app) explain(cmd *cobra.Command, err error) error {
	if moviesapi.IsTransport(err) {
		cmd.PrintErrf("Не удалось подключиться к %s. Запустите 'filmcat fixtures serve' или укажите --api.\n", a.cfg.API.BaseURL)
	}
	return err
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}
