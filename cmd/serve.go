package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftwood-studio/marquee/internal/cache"
	"github.com/driftwood-studio/marquee/internal/composer"
	"github.com/driftwood-studio/marquee/internal/config"
	"github.com/driftwood-studio/marquee/internal/content"
	"github.com/driftwood-studio/marquee/internal/logging"
	"github.com/driftwood-studio/marquee/internal/revalidate"
	"github.com/driftwood-studio/marquee/internal/section"
	"github.com/driftwood-studio/marquee/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve pages and the invalidation webhooks against the hosted content store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.RequireServeSecrets(cfg); err != nil {
			return err
		}

		logger := newLogger(cfg)

		client := content.NewClient(content.Config{
			ProjectID:  cfg.Content.ProjectID,
			Dataset:    cfg.Content.Dataset,
			APIVersion: cfg.Content.APIVersion,
			Token:      cfg.Content.Token,
			BaseURL:    cfg.Content.BaseURL,
		}, nil, logger)

		srv, err := buildServer(cfg, client, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8090, "server port")
	serveCmd.Flags().String("host", "localhost", "server host")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))

	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
}

// buildServer wires the pipeline behind the HTTP server: registry, composer,
// dispatch table, render cache.
func buildServer(cfg *config.Config, store content.Store, logger logging.Logger) (*server.Server, error) {
	table := revalidate.DefaultTable()
	if cfg.Revalidate.TableFile != "" {
		loaded, err := revalidate.LoadTable(cfg.Revalidate.TableFile)
		if err != nil {
			return nil, fmt.Errorf("load tag table: %w", err)
		}
		table = loaded
	}

	renderCache := cache.NewRenderCache()
	dispatcher := revalidate.NewDispatcher(table, renderCache, logger)
	comp := composer.New(store, section.NewRegistry(), logger)

	return server.New(cfg, comp, dispatcher, renderCache, logger), nil
}
