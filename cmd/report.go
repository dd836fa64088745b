package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/utils"
)

var (
	repData       string
	repApp        string
	repSentiments []string
	repKeyword    string
	repOutputPath string
	repPretty     bool
	repJSON       bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for one app and sentiment selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context(), repData)
		if err != nil {
			return err
		}
		f, err := selection(ds, repApp, repSentiments, repKeyword, cmd.Flags().Changed("sentiment"))
		if err != nil {
			return err
		}
		d := explorer.Build(ds, f, explorerOptions(settings()))

		var out string
		if repJSON {
			b, err := utils.PrettyJSON(d)
			if err != nil {
				return err
			}
			out = string(b)
		} else {
			out = d.Markdown()
		}
		return emit(cmd, out, repOutputPath, repPretty && !repJSON, "report")
	},
}

// emit writes out to path, or prints it, rendering Markdown with glamour
// when pretty is set.
func emit(cmd *cobra.Command, out, path string, pretty bool, what string) error {
	if path != "" {
		if err := utils.EnsureParentDir(path); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := utils.SafeWriteFile(path, []byte(out)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", what, path)
		return nil
	}
	if pretty {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		rendered, err := r.Render(out)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		out = rendered
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repData, "data", "d", "", "cleaned dataset (CSV/TSV/XLSX or SQLite; default from config cleaned_path)")
	reportCmd.Flags().StringVarP(&repApp, "app", "a", "", "app to inspect (default: first app alphabetically)")
	reportCmd.Flags().StringSliceVarP(&repSentiments, "sentiment", "s", nil, "sentiments to include: Positive,Neutral,Negative (default all)")
	reportCmd.Flags().StringVarP(&repKeyword, "keyword", "k", "", "case-insensitive substring the review must contain")
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "optional path to write the report")
	reportCmd.Flags().BoolVar(&repPretty, "pretty", false, "render the report for the terminal")
	reportCmd.Flags().BoolVar(&repJSON, "json", false, "print the dashboard as JSON")
}
