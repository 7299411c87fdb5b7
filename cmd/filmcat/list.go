package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

func newListCmd(a *app) *cobra.Command {
	var params moviesapi.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies page by page",
		Long: `List movies page by page.

Examples:
  filmcat list
  filmcat list --page 2
  filmcat list --genre Драма --sort rating --order desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if params.Limit == 0 {
				params.Limit = a.cfg.Catalog.PageSize
			}
			page, err := a.newService().GetMovies(cmd.Context(), params)
			if err != nil {
				return a.explain(cmd, err)
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, struct {
					Movies any `json:"movies"`
					Total  int `json:"total"`
				}{page.Movies, page.Total})
			}
			if len(page.Movies) == 0 {
				fmt.Fprintln(out, msgNoMovies)
				return nil
			}
			printMovieTable(out, page.Movies)
			fmt.Fprintf(out, "\nСтраница %d, показано %d из %d\n", max(params.Page, 1), len(page.Movies), page.Total)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "Page number")
	f.IntVar(&params.Limit, "limit", 0, "Movies per page (default: catalog.page_size)")
	f.StringVar(&params.Genre, "genre", "", "Only movies of this genre")
	f.IntVar(&params.Year, "year", 0, "Only movies released this year")
	f.StringVar(&params.Sort, "sort", "", "Sort field (title, year, rating, duration)")
	f.StringVar(&params.Order, "order", "", "Sort order (asc or desc)")
	return cmd
}
