package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftwood-studio/marquee/internal/config"
	"github.com/driftwood-studio/marquee/internal/logging"
	"github.com/driftwood-studio/marquee/internal/revalidate"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <documentType>",
	Short: "Show the cache tags invalidated when a document type changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		table := revalidate.DefaultTable()
		if cfg.Revalidate.TableFile != "" {
			table, err = revalidate.LoadTable(cfg.Revalidate.TableFile)
			if err != nil {
				return err
			}
		}

		dispatcher := revalidate.NewDispatcher(table, nopInvalidator{}, logging.NewNopLogger())
		for _, tag := range dispatcher.TagsFor(args[0]) {
			fmt.Println(tag)
		}
		return nil
	},
}

type nopInvalidator struct{}

func (nopInvalidator) PurgeTags(ctx context.Context, tags []revalidate.CacheTag) error { return nil }
func (nopInvalidator) PurgePath(ctx context.Context, path string) error                { return nil }

func init() {
	rootCmd.AddCommand(tagsCmd)
}
