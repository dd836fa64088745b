package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/preprocess"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/utils"
)

var (
	preInput      string
	preOutput     string
	preSheetName  string
	preSheetIndex int
	preSampleRows int
	preSQLite     string
	prePostgres   string
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Drop reviews without text and add the normalised 'cleaned' column",
	Long: `Reads the raw review table (CSV, TSV or XLSX), drops rows whose
Translated_Review is missing, adds a lowercase letters-and-spaces 'cleaned'
column and writes the cleaned CSV. Optionally mirrors the result into SQLite
or Postgres.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		opt := preprocess.Options{
			Input:       c.RawPath,
			Output:      c.CleanedPath,
			Sheet:       tabular.Options{SheetName: c.SheetName, SheetIndex: c.SheetIndex},
			NAValues:    c.NAValues,
			SampleRows:  c.SampleRows,
			SQLitePath:  c.SQLitePath,
			PostgresDSN: c.PostgresDSN,
			Logger:      logger,
		}
		f := cmd.Flags()
		if f.Changed("input") {
			opt.Input = preInput
		}
		if f.Changed("output") {
			opt.Output = preOutput
		}
		if f.Changed("sheet-name") {
			opt.Sheet.SheetName = preSheetName
		}
		if f.Changed("sheet-index") && preSheetIndex > 0 {
			opt.Sheet.SheetIndex = preSheetIndex
		}
		if f.Changed("sample-rows") && preSampleRows >= 0 {
			opt.SampleRows = preSampleRows
		}
		if f.Changed("sqlite") {
			opt.SQLitePath = preSQLite
		}
		if f.Changed("postgres") {
			opt.PostgresDSN = prePostgres
		}
		for _, p := range []*string{&opt.Input, &opt.Output, &opt.SQLitePath} {
			v, err := utils.ExpandHome(*p)
			if err != nil {
				return err
			}
			*p = v
		}

		res, err := preprocess.Run(cmd.Context(), opt)
		if err != nil {
			var nf *preprocess.InputNotFoundError
			if errors.As(err, &nf) {
				return fmt.Errorf("%w (set --input or raw_path)", err)
			}
			return err
		}
		res.Print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
	preprocessCmd.Flags().StringVarP(&preInput, "input", "i", "", "raw reviews file (default from config raw_path)")
	preprocessCmd.Flags().StringVarP(&preOutput, "output", "o", "", "cleaned CSV path (default from config cleaned_path)")
	preprocessCmd.Flags().StringVar(&preSheetName, "sheet-name", "", "XLSX: sheet name to read")
	preprocessCmd.Flags().IntVar(&preSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	preprocessCmd.Flags().IntVar(&preSampleRows, "sample-rows", 5, "number of cleaned rows to print")
	preprocessCmd.Flags().StringVar(&preSQLite, "sqlite", "", "also write the cleaned table to this SQLite file")
	preprocessCmd.Flags().StringVar(&prePostgres, "postgres", "", "also write the cleaned table to this Postgres DSN")
}
