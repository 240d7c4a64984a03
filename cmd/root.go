// Package cmd wires the command line interface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/clog"
	"github.com/spf13/cobra"
)

var (
	flagList        bool
	flagModel       string
	flagVariants    string
	flagOutputDir   string
	flagRevision    string
	flagToken       string
	flagConcurrency int
	flagLogLevel    string
	flagLogJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "onnxget",
	Short: "Download ONNX models from the HuggingFace Hub",
	Long: `onnxget downloads ONNX models from the HuggingFace Hub with support for
quantization variants (full, fp16, int8, q4).

Examples:
  onnxget --list
  onnxget --model flan-t5-small
  onnxget --model qwen3 --variants int8,q4
  onnxget --model Xenova/flan-t5-base --variants full,int8`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		configureLogger()
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVar(&flagList, "list", false, "List all available models")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "Model name (from registry) or HuggingFace repo ID (owner/model)")
	rootCmd.Flags().StringVar(&flagVariants, "variants", "", "Comma-separated variants to download (full,fp16,int8,q4). Default: all")
	rootCmd.Flags().StringVar(&flagOutputDir, "output-dir", "models", "Output directory for downloaded models")
	rootCmd.Flags().StringVar(&flagRevision, "revision", "main", "Repository branch, tag or commit SHA")
	rootCmd.Flags().StringVar(&flagToken, "token", os.Getenv("HF_TOKEN"), "HuggingFace access token (defaults to HF_TOKEN)")
	rootCmd.Flags().IntVar(&flagConcurrency, "concurrency", 1, "Number of parallel downloads")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&flagLogJSON, "log-json", false, "Output logs in JSON format")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func configureLogger() {
	var level slog.Level
	switch flagLogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if flagLogJSON {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = clog.New(
			clog.WithWriter(os.Stderr),
			clog.WithLevel(level),
			clog.WithColor(true),
		)
	}
	slog.SetDefault(slog.New(handler))
}
