package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"evalgo.org/wnbrowser/internal/loader"
	"evalgo.org/wnbrowser/internal/storage"
)

var loadCmd = &cobra.Command{
	Use:   "load-db",
	Short: "Bulk load the ImageNet release files",
	Long: `Populate the database from the ImageNet flat files in the data
directory: words.txt, gloss.txt, fall11_urls.txt and wordnet.is_a.txt.

The load is restartable; rows already present are skipped.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().String("dir", "", "directory holding the ImageNet files")

	_ = viper.BindPFlag("loader.dir", loadCmd.Flags().Lookup("dir")) //nolint:errcheck
}

func runLoad(cmd *cobra.Command, args []string) error {
	store, err := storage.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	fmt.Printf("Loading ImageNet files from %s\n", cfg.Loader.Dir)

	stats, err := loader.New(store, cfg).Load(ctx)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	fmt.Printf("Loaded %d synsets, %d images, %d hyponym relations (%d rows skipped)\n",
		stats.Synsets, stats.Images, stats.Hyponyms, stats.Skipped)
	return nil
}
