package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTopCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the best rated movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			movies, err := a.newService().GetRecommendedMovies(cmd.Context(), limit)
			if err != nil {
				return a.explain(cmd, err)
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, movies)
			}
			if len(movies) == 0 {
				fmt.Fprintln(out, msgNoMovies)
				return nil
			}
			printMovieTable(out, movies)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of movies (default: catalog.recommended_limit)")
	return cmd
}
