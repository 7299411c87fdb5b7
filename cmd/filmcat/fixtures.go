package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ksenia-gurenko/film-catalog/internal/fixtures"
)

func newFixturesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Local movies API for development",
	}

	var listen, data string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve fixture movies over HTTP",
		Long: `Serve fixture movies with the same endpoints as the movies API:
GET /movies, GET /movies/{id} and /metrics.

Without --data (or fixtures.data in the config) a bundled demo set is served.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = a.cfg.Fixtures.Listen
			}
			if data == "" {
				data = a.cfg.Fixtures.Data
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := fixtures.Open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var n int
			if data != "" {
				n, err = store.LoadFile(ctx, data)
			} else {
				n, err = store.LoadSample(ctx)
			}
			if err != nil {
				return err
			}
			a.log.Info("fixtures loaded", "movies", n, "source", sourceName(data))

			return fixtures.NewServer(store, a.log).Serve(ctx, listen)
		},
	}
	serve.Flags().StringVar(&listen, "listen", "", "Listen address (default: fixtures.listen)")
	serve.Flags().StringVar(&data, "data", "", "db.json file to serve (default: fixtures.data)")

	cmd.AddCommand(serve)
	return cmd
}

func sourceName(path string) string {
	if path == "" {
		return "sample"
	}
	return path
}
