// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/naka-gawa/github-stats-badge/internal/config"
	"github.com/naka-gawa/github-stats-badge/internal/gateway"
	"github.com/naka-gawa/github-stats-badge/internal/usecase"
	"github.com/spf13/cobra"
)

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := config.Load(os.Getenv)
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	cfg.JSON, _ = cmd.Flags().GetBool("json")
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputPath = output
	}

	if err := generate(context.Background(), cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating stats: %v\n", err)
		os.Exit(1)
	}
}

// generate runs one fetch-aggregate-render cycle for cfg.
func generate(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if cfg.Verbose {
		logger.SetOutput(stderr)
	}
	logger.Printf("Generating stats for %s (authenticated: %t)", cfg.Account, cfg.HasCredential())

	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return run(ctx, cfg, usecase.NewAggregator(githubGateway, logger), stdout)
}

func run(ctx context.Context, cfg config.Config, aggregator *usecase.Aggregator, stdout io.Writer) error {
	summary, err := aggregator.Generate(ctx, cfg.Account, cfg.OutputPath)
	if err != nil {
		return err
	}

	if cfg.JSON {
		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary to JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(jsonData))
	}
	fmt.Fprintf(stdout, "Saved %s\n", cfg.OutputPath)
	return nil
}
