package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/utils"
)

var (
	insData       string
	insOutputPath string
	insPretty     bool
	insJSON       bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Rank apps by negative share and list all-positive apps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context(), insData)
		if err != nil {
			return err
		}
		p := explorer.BuildInsights(ds, explorerOptions(settings()))
		if insJSON {
			b, err := utils.PrettyJSON(p)
			if err != nil {
				return err
			}
			return emit(cmd, string(b), insOutputPath, false, "insights")
		}
		return emit(cmd, p.Markdown(), insOutputPath, insPretty, "insights")
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().StringVarP(&insData, "data", "d", "", "cleaned dataset (default from config cleaned_path)")
	insightsCmd.Flags().StringVarP(&insOutputPath, "output", "o", "", "optional path to write the rankings")
	insightsCmd.Flags().BoolVar(&insPretty, "pretty", false, "render for the terminal")
	insightsCmd.Flags().BoolVar(&insJSON, "json", false, "print the rankings as JSON")
}
