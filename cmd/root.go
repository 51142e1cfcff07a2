package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mwdl",
	Short: "Download manga chapters from MangaWorld.",
	Long: `Download manga chapters from MangaWorld, one directory per chapter,
optionally bundling every finished chapter into a PDF, CBZ or EPUB.

Provide a configuration file using one of the following methods:
1. Use the --config <path> or -c <path> flag.
2. Place a config.yaml file in the default user configuration directory (e.g., ~/.config/mwdl/).
3. Place a config.yaml file a folder inside your home directory (e.g., ~/.mwdl/).
4. Place a config.yaml file in the directory of the binary.`,
}

func init() {
	initRootFlags()
	initDownloadFlags()
	initBatchFlags()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(batchCmd)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
