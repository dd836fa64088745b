package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/server"
)

var (
	srvData  string
	srvAddr  string
	srvWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		addr := c.ServerAddr
		if cmd.Flags().Changed("addr") && srvAddr != "" {
			addr = srvAddr
		}
		watch := c.Watch
		if cmd.Flags().Changed("watch") {
			watch = srvWatch
		}
		path, err := datasetPath(srvData)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := server.NewStore(ctx, func(ctx context.Context) (*review.Dataset, error) {
			return loadDataset(ctx, path)
		})
		if err != nil {
			return err
		}
		cfgSrv := server.Config{
			Addr:    addr,
			Options: explorerOptions(c),
			Logger:  logger,
		}
		if watch {
			cfgSrv.WatchPath = path
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s on http://%s (Ctrl+C to stop)\n", path, addr)
		return server.New(store, cfgSrv).ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&srvData, "data", "d", "", "cleaned dataset (default from config cleaned_path)")
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (default from config server_addr)")
	serveCmd.Flags().BoolVar(&srvWatch, "watch", false, "reload the dataset when the file changes")
}
