package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loom/internal/config"
	"loom/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Loom distills social media posts into cross-platform narratives.",
	Long: `Loom reads collected social media posts from CSV, cleans their captions,
extracts candidate narratives per platform with an LLM, and synthesizes
the result into a final cross-platform narrative report.

Example:
  loom clean output/captions.csv --output output/cleaned.csv
  loom report output/cleaned.csv --topic "housing policy"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.loom.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		logger.Error("Failed to load configuration", err)
		os.Exit(1)
	}
}
