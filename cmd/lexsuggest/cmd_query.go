package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/lexsuggest/internal/api"
	"github.com/spf13/cobra"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Fetch suggestions once and print them as JSON",
		Long: `Fetch suggestions for a single query without debouncing.

The command exits 0 whenever a result is printed, including an empty list
after a provider failure. The "status" field tells the outcomes apart.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.bootstrap(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return app.runQuery(cmd.Context(), strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
}

// runQuery performs one fetch and writes the outcome to out.
func (app *application) runQuery(ctx context.Context, text string, out io.Writer) error {
	res := app.fetcher.Fetch(ctx, text)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(api.SuggestionsResponse{
		Query:       res.Suggestions.Query.String(),
		Suggestions: res.Suggestions.Items,
		Status:      res.Kind.String(),
	}); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
