package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set reviewlens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "raw_path: %s\n", c.RawPath)
		fmt.Fprintf(out, "cleaned_path: %s\n", c.CleanedPath)
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", c.SheetIndex)
		fmt.Fprintf(out, "na_values: %s\n", strings.Join(c.NAValues, ","))
		fmt.Fprintf(out, "sample_rows: %d\n", c.SampleRows)
		if c.SQLitePath != "" {
			fmt.Fprintf(out, "sqlite_path: %s\n", c.SQLitePath)
		}
		if c.PostgresDSN != "" {
			fmt.Fprintf(out, "postgres_dsn: %s\n", maskDSN(c.PostgresDSN))
		}
		fmt.Fprintf(out, "top_words: %d\n", c.TopWords)
		fmt.Fprintf(out, "sample_table_rows: %d\n", c.SampleTableRows)
		fmt.Fprintf(out, "top_apps: %d\n", c.TopApps)
		fmt.Fprintf(out, "perfect_min_reviews: %d\n", c.PerfectMinReviews)
		fmt.Fprintf(out, "cloud_min_chars: %d\n", c.CloudMinChars)
		fmt.Fprintf(out, "server_addr: %s\n", c.ServerAddr)
		fmt.Fprintf(out, "watch: %t\n", c.Watch)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setKey(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "raw_path":
		c.RawPath = val
	case "cleaned_path":
		c.CleanedPath = val
	case "sheet_name":
		c.SheetName = val
	case "sqlite_path":
		c.SQLitePath = val
	case "postgres_dsn":
		c.PostgresDSN = val
	case "server_addr":
		c.ServerAddr = val
	case "na_values":
		var vals []string
		for _, v := range strings.Split(val, ",") {
			if v = strings.TrimSpace(v); v != "" {
				vals = append(vals, v)
			}
		}
		c.NAValues = vals
	case "log_format":
		switch strings.ToLower(val) {
		case "console", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use console or json)", val)
		}
	case "watch":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for watch: %v", val)
		}
		c.Watch = b
	case "sheet_index", "sample_rows", "top_words", "sample_table_rows", "top_apps", "perfect_min_reviews", "cloud_min_chars":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "sheet_index":
			c.SheetIndex = i
		case "sample_rows":
			c.SampleRows = i
		case "top_words":
			c.TopWords = i
		case "sample_table_rows":
			c.SampleTableRows = i
		case "top_apps":
			c.TopApps = i
		case "perfect_min_reviews":
			c.PerfectMinReviews = i
		case "cloud_min_chars":
			c.CloudMinChars = i
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// maskDSN hides the password of a postgres URL or key=value DSN.
func maskDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		rest := dsn[i+3:]
		at := strings.LastIndex(rest, "@")
		colon := strings.Index(rest, ":")
		if at > 0 && colon >= 0 && colon < at {
			return dsn[:i+3] + rest[:colon] + ":****" + rest[at:]
		}
		return dsn
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
