package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ksenia-gurenko/film-catalog/internal/catalog"
	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Live search: type a query per line",
		Long: `Live search. Every line read from stdin replaces the current query;
results appear once typing settles. An empty line shows all movies.
End input (Ctrl-D) to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.browse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// browse feeds lines from in to the search stream and prints every result
// until input ends and the result for the final query has been shown.
func (a *app) browse(ctx context.Context, in io.Reader, out io.Writer) error {
	svc := a.newService()
	results, unsubscribe := svc.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	final := make(chan string, 1)
	g.Go(func() error {
		last := ""
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			last = sc.Text()
			svc.SetSearchQuery(last)
		}
		final <- last
		return sc.Err()
	})

	g.Go(func() error {
		defer cancel()

		var (
			shown    string
			anyShown bool
			want     string
			done     bool
		)
		for {
			select {
			case <-ctx.Done():
				return nil
			case q := <-final:
				want, done = q, true
			case r, ok := <-results:
				if !ok {
					return nil
				}
				a.printSearchResult(ctx, out, svc, r)
				shown, anyShown = r.Query, true
			}
			if done && anyShown && shown == want {
				return nil
			}
		}
	})

	return g.Wait()
}

func (a *app) printSearchResult(ctx context.Context, out io.Writer, svc *catalog.Service, r catalog.SearchResult) {
	if a.jsonOutput {
		v := struct {
			Query  string `json:"query"`
			Movies any    `json:"movies"`
			Error  string `json:"error,omitempty"`
		}{Query: r.Query, Movies: r.Movies}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		_ = printJSON(out, v)
		return
	}

	fmt.Fprintf(out, "> %s\n", r.Query)
	switch {
	case r.Err != nil:
		fmt.Fprintln(out, r.Err.Error())
	case len(r.Movies) == 0:
		all, _ := svc.GetMovies(ctx, moviesapi.ListParams{})
		printEmpty(out, r.Query, all.Movies)
	default:
		printMovieTable(out, r.Movies)
	}
	fmt.Fprintln(out)
}
