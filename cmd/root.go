/*
Copyright © 2025 docmindhq
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docmind-be",
	Short: "Backend for the docmind AI document platform",
	Long: `docmind-be bundles thin clients for a hosted AI document platform:
chat completion and embeddings, document upload and semantic search, plus
local PDF and spreadsheet extraction and a weaviate-backed chunk index.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "path to the yaml config file")
}
