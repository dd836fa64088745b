package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tui"
)

var expData string

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore the cleaned dataset in an interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context(), expData)
		if err != nil {
			return err
		}
		return tui.Run(ds, explorerOptions(settings()))
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().StringVarP(&expData, "data", "d", "", "cleaned dataset (default from config cleaned_path)")
}
