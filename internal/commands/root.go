// Package commands defines the wnbrowser command line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"evalgo.org/wnbrowser/internal/config"
	"evalgo.org/wnbrowser/internal/version"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wnbrowser",
	Short: "A hypermedia browser for the ImageNet synset hierarchy",
	Long: `Wnbrowser serves the WordNet synset and image catalog of ImageNet as a
self-describing hypermedia API, and ships a console client that drives
the API purely through the controls embedded in its responses.

Synsets, their hyponym relations and their images can be browsed,
created, edited and deleted; the full ImageNet release files can be
bulk loaded into the database.`,
	Version: version.Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	// These should never fail as flags are defined above
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db")) //nolint:errcheck
	_ = viper.BindPFlag("server.debug", rootCmd.PersistentFlags().Lookup("debug")) //nolint:errcheck

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Println(info.String())

		if cmd.Flag("verbose").Changed {
			fmt.Printf("\nDetails:\n")
			fmt.Printf("  Version:    %s\n", info.Version)
			fmt.Printf("  Git Commit: %s\n", info.GitCommit)
			fmt.Printf("  Built:      %s\n", info.BuildTime)
			fmt.Printf("  Go Version: %s\n", info.GoVersion)
			fmt.Printf("  Platform:   %s\n", info.Platform)
		}
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "verbose version output")
}
