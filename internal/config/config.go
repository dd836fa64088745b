package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultNAValues mirrors the tokens the original pandas reader treated as
// missing. The empty string is deliberately absent: an empty but present
// review is kept.
var DefaultNAValues = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Global configuration structure.
type Global struct {
	RawPath     string   `mapstructure:"raw_path" yaml:"raw_path"`
	CleanedPath string   `mapstructure:"cleaned_path" yaml:"cleaned_path"`
	SheetName   string   `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex  int      `mapstructure:"sheet_index" yaml:"sheet_index"`
	NAValues    []string `mapstructure:"na_values" yaml:"na_values"`
	SampleRows  int      `mapstructure:"sample_rows" yaml:"sample_rows"`

	// Optional mirrors of the cleaned table
	SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"postgres_dsn"`

	// Explorer
	TopWords          int `mapstructure:"top_words" yaml:"top_words"`
	SampleTableRows   int `mapstructure:"sample_table_rows" yaml:"sample_table_rows"`
	TopApps           int `mapstructure:"top_apps" yaml:"top_apps"`
	PerfectMinReviews int `mapstructure:"perfect_min_reviews" yaml:"perfect_min_reviews"`
	CloudMinChars     int `mapstructure:"cloud_min_chars" yaml:"cloud_min_chars"`

	// HTTP dashboard
	ServerAddr string `mapstructure:"server_addr" yaml:"server_addr"`
	Watch      bool   `mapstructure:"watch" yaml:"watch"`

	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Global {
	return &Global{
		RawPath:           "data/googleplaystore_user_reviews.csv",
		CleanedPath:       "data/all_apps_reviews_cleaned.csv",
		SheetIndex:        1,
		NAValues:          append([]string(nil), DefaultNAValues...),
		SampleRows:        5,
		TopWords:          10,
		SampleTableRows:   20,
		TopApps:           5,
		PerfectMinReviews: 5,
		CloudMinChars:     5,
		ServerAddr:        "127.0.0.1:8501",
		LogFormat:         "console",
	}
}

// DefaultPath returns ~/.reviewlens/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".reviewlens", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.reviewlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including a local .env) > config file > defaults.
// CLI flags are applied on top by the command layer.
func Load(cfgFile string) (*Global, error) {
	// A local .env never overrides variables already set in the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("REVIEWLENS")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("raw_path", d.RawPath)
	v.SetDefault("cleaned_path", d.CleanedPath)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("na_values", d.NAValues)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("sqlite_path", "")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("top_words", d.TopWords)
	v.SetDefault("sample_table_rows", d.SampleTableRows)
	v.SetDefault("top_apps", d.TopApps)
	v.SetDefault("perfect_min_reviews", d.PerfectMinReviews)
	v.SetDefault("cloud_min_chars", d.CloudMinChars)
	v.SetDefault("server_addr", d.ServerAddr)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// The default location is optional; an explicit --config is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.fillZeroes(d)
	return &c, nil
}

// fillZeroes restores defaults for numeric knobs explicitly set to zero or
// negative values, which would otherwise disable a panel.
func (c *Global) fillZeroes(d *Global) {
	if c.SheetIndex <= 0 {
		c.SheetIndex = d.SheetIndex
	}
	if c.SampleRows < 0 {
		c.SampleRows = d.SampleRows
	}
	if c.TopWords <= 0 {
		c.TopWords = d.TopWords
	}
	if c.SampleTableRows <= 0 {
		c.SampleTableRows = d.SampleTableRows
	}
	if c.TopApps <= 0 {
		c.TopApps = d.TopApps
	}
	if c.PerfectMinReviews <= 0 {
		c.PerfectMinReviews = d.PerfectMinReviews
	}
	if c.CloudMinChars < 0 {
		c.CloudMinChars = d.CloudMinChars
	}
	if c.ServerAddr == "" {
		c.ServerAddr = d.ServerAddr
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.NAValues == nil {
		c.NAValues = d.NAValues
	}
}
