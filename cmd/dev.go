package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftwood-studio/marquee/internal/config"
	"github.com/driftwood-studio/marquee/internal/devcontent"
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Serve pages from a local content directory with file watching",
	Long: `Dev mode replaces the hosted content store with a directory of YAML
documents and watches it: a saved file triggers the same tag invalidation a
production content webhook would, so cached pages refresh as you edit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Dev mode stays usable without real secrets.
		if cfg.Secrets.Revalidate == "" {
			cfg.Secrets.Revalidate = "dev-revalidate"
		}
		if cfg.Secrets.Preview == "" {
			cfg.Secrets.Preview = "dev-preview"
		}

		logger := newLogger(cfg)

		store, err := devcontent.NewStore(cfg.Dev.ContentDir, logger)
		if err != nil {
			return err
		}

		srv, err := buildServer(cfg, store, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := store.Watch(ctx, func(documentType string) {
				srv.InvalidateDocumentType(ctx, documentType)
			}); err != nil {
				logger.Error(ctx, err, "content watcher stopped")
			}
		}()

		return srv.Start(ctx)
	},
}

func init() {
	devCmd.Flags().String("content-dir", "./content", "directory of YAML content documents")
	viper.BindPFlag("dev.content_dir", devCmd.Flags().Lookup("content-dir"))

	rootCmd.AddCommand(devCmd)
}
