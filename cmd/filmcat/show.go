package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a movie with recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid movie id %q", args[0])
			}

			d, err := a.newService().LoadDetail(cmd.Context(), id, limit)
			if err != nil {
				return a.explain(cmd, err)
			}

			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), d)
			}
			printMovieDetail(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "recommended", 0, "Number of recommendations (default: catalog.recommended_limit)")
	return cmd
}
