package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search movies by title",
		Long: `Search movies by title. Matching is a case-insensitive substring match.

Examples:
  filmcat search матрица
  filmcat search "зелёная миля"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			svc := a.newService()

			movies, err := svc.SearchMovies(cmd.Context(), query)
			if err != nil {
				return a.explain(cmd, err)
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, movies)
			}
			if len(movies) == 0 {
				// Suggestions are best effort.
				all, _ := svc.GetMovies(cmd.Context(), moviesapi.ListParams{})
				printEmpty(out, query, all.Movies)
				return nil
			}
			printMovieTable(out, movies)
			return nil
		},
	}
}
