package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	cfgpkg "github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/config"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/storage"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/utils"
)

// explorerOptions maps the configured sizes onto the dashboard options.
func explorerOptions(c *cfgpkg.Global) explorer.Options {
	opt := explorer.DefaultOptions()
	opt.TopWords = c.TopWords
	opt.SampleRows = c.SampleTableRows
	opt.TopApps = c.TopApps
	opt.PerfectMinReviews = c.PerfectMinReviews
	opt.CloudMinChars = c.CloudMinChars
	return opt
}

func loadOptions(c *cfgpkg.Global) review.LoadOptions {
	return review.LoadOptions{
		NAValues: c.NAValues,
		Sheet:    tabular.Options{SheetName: c.SheetName, SheetIndex: c.SheetIndex},
	}
}

// datasetPath resolves the explorer input: the flag if set, else the
// configured cleaned dataset.
func datasetPath(flag string) (string, error) {
	if flag == "" {
		flag = settings().CleanedPath
	}
	return utils.ExpandHome(flag)
}

// loadDataset reads the cleaned dataset once for this invocation.
func loadDataset(ctx context.Context, flag string) (*review.Dataset, error) {
	path, err := datasetPath(flag)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cleaned dataset not found: %s (run 'reviewlens preprocess' first)", path)
		}
		return nil, err
	}
	start := time.Now()
	ds, err := review.Load(ctx, path, loadOptions(settings()))
	if err != nil {
		return nil, err
	}
	if review.IsDatabase(path) {
		if run, err := storage.LastRun(ctx, path); err == nil {
			logger.Info("reading sqlite mirror",
				zap.String("run_id", run.ID),
				zap.String("source", run.Source),
				zap.Time("written_at", run.At))
		}
	}
	logger.Debug("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", ds.Len()),
		zap.Int("apps", len(ds.Apps())),
		zap.Duration("elapsed", time.Since(start)))
	return ds, nil
}

// selection builds the filter from the shared explorer flags. An empty app
// keeps the default first app; no --sentiment selects all three.
func selection(ds *review.Dataset, app string, sentiments []string, keyword string, sentimentsSet bool) (explorer.Filter, error) {
	f := explorer.DefaultFilter(ds)
	if app != "" {
		f.App = app
	}
	f.Keyword = keyword
	if sentimentsSet {
		set, err := explorer.ParseSentiments(sentiments)
		if err != nil {
			return f, err
		}
		f.Sentiments = set
	}
	return f, nil
}
