package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang-news-insight/internal/analyzer/bootstrap"
	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	inputPath  string
	mode       string
	topN       int
)

var rootCmd = &cobra.Command{
	Use:   "newsinsight",
	Short: "A CLI for the news insight analysis pipeline",
	Long:  `News Insight summarizes financial news, resolves the companies it mentions to tickers and scores the sentiment toward each one.`,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one article body and print the result as JSON",
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	text, err := readInput(cmd.InOrStdin(), inputPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Keep stdout clean for the JSON result.
	appLogger, err := logger.New("error", "console")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	core, err := bootstrap.NewCore(ctx, cfg, appLogger, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize analysis pipeline: %w", err)
	}

	var result interface{}
	switch mode {
	case "summary":
		n := topN
		if n <= 0 {
			n = cfg.Analyzer.SummaryTopN
		}
		result = core.Summarizer.Summarize(text, n)
	case "validate":
		core.DictionaryService.Refresh(ctx)
		result, err = core.Validator.Validate(ctx, text)
	case "insights":
		core.DictionaryService.Refresh(ctx)
		result, err = core.Pipeline.BuildInsights(ctx, text)
	default:
		return fmt.Errorf("unknown mode %q, expected summary, validate or insights", mode)
	}
	if err != nil {
		return fmt.Errorf("failed to analyze text: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func main() {
	analyzeCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	analyzeCmd.Flags().StringVarP(&inputPath, "file", "f", "-", "Article text file, - for stdin")
	analyzeCmd.Flags().StringVarP(&mode, "mode", "m", "insights", "Analysis mode: summary, validate or insights")
	analyzeCmd.Flags().IntVarP(&topN, "top", "n", 0, "Number of summary sentences (summary mode)")

	rootCmd.AddCommand(analyzeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
