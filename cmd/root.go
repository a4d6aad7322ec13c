// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/naka-gawa/github-stats-badge/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-stats",
	Short: "Renders a GitHub account's repository stats as an SVG badge.",
	Long: `github-stats fetches every repository of a GitHub account, sums its stars
and forks, counts private repositories and followers, and writes the result
as an SVG badge (images/stats.svg by default).

Environment:
` + envHelp(),
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func envHelp() string {
	var sb strings.Builder
	for _, v := range config.SupportedEnvVars() {
		fmt.Fprintf(&sb, "  %-24s %s\n", v.Name, v.Desc)
	}
	return sb.String()
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutputPath, "Path of the SVG file to write")
	rootCmd.Flags().Bool("json", false, "Also print the summary as JSON to standard output")
}
