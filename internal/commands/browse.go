package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"evalgo.org/wnbrowser/internal/browser"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the API from the console",
	Long: `Start an interactive console session against a running API server.

The session begins at the API entry point and navigates by the controls
each response advertises; nothing about the resources is built in.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("api-url", "", "base URL of the API server")

	_ = viper.BindPFlag("client.api_url", browseCmd.Flags().Lookup("api-url")) //nolint:errcheck
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	b := browser.New(browser.NewClient(cfg), os.Stdin, os.Stdout)
	return b.Run(ctx)
}
