package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appsData   string
	appsCounts bool
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the apps in the cleaned dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context(), appsData)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		apps := ds.Apps()
		if len(apps) == 0 {
			fmt.Fprintln(out, "(no apps)")
			return nil
		}
		var counts map[string]int
		if appsCounts {
			counts = make(map[string]int, len(apps))
			for _, r := range ds.Records() {
				counts[r.App]++
			}
		}
		for _, a := range apps {
			if counts != nil {
				fmt.Fprintf(out, "- %s (%d)\n", a, counts[a])
				continue
			}
			fmt.Fprintln(out, a)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appsCmd)
	appsCmd.Flags().StringVarP(&appsData, "data", "d", "", "cleaned dataset (default from config cleaned_path)")
	appsCmd.Flags().BoolVar(&appsCounts, "counts", false, "show the number of reviews per app")
}
