package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"onnxget/hub"
	"onnxget/registry"
	"onnxget/variant"
)

func run(cmd *cobra.Command, _ []string) error {
	if flagList {
		printRegistry()
		return nil
	}

	if flagModel == "" {
		return goerr.New("--model is required (or use --list to see available models)")
	}

	// Validate variants before touching the network.
	variants, err := variant.Parse(flagVariants)
	if err != nil {
		return err
	}

	repoID, entry, err := registry.Resolve(flagModel)
	if err != nil {
		return err
	}
	slog.Info("Resolved model", "input", flagModel, "repo", repoID)

	repo, err := hub.ParseRepo(repoID)
	if err != nil {
		return err
	}
	repo.Ref = flagRevision

	localDir := filepath.Join(flagOutputDir, registry.LocalDirName(repoID, entry))
	slog.Info("Download directory", "path", localDir)

	client := hub.NewClient(flagToken)

	slog.Info("Fetching repository file list...")
	files, err := client.ListFiles(cmd.Context(), repo)
	if err != nil {
		return err
	}
	slog.Info("Found files in repository", "count", len(files))

	result := variant.Filter(hub.Paths(files), variants)
	if len(result.ONNX) == 0 {
		slog.Warn("No ONNX files found for variants", "variants", variantList(variants))
		printAvailableONNX(files)
		return nil
	}

	printPlan(repo, variants, localDir, files, result)

	dl := &hub.Downloader{
		Client:       client,
		Concurrency:  flagConcurrency,
		ShowProgress: !flagLogJSON,
	}

	slog.Info("Downloading ONNX model files...")
	outcomes := dl.Fetch(cmd.Context(), repo, hub.Select(files, result.ONNX), localDir)

	slog.Info("Downloading config files...")
	outcomes = append(outcomes, dl.Fetch(cmd.Context(), repo, hub.Select(files, result.Config), localDir)...)

	printSummary(hub.Summarize(outcomes), localDir)
	return nil
}

func printRegistry() {
	bold := color.New(color.Bold)
	bold.Println("\nAvailable ONNX Models")
	fmt.Println(strings.Repeat("=", 80))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tREPO\tSIZE (FULL)")
	for _, e := range registry.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t~%dMB\n", e.Name, e.Description, e.Repo, e.SizeMB)
	}
	w.Flush()

	fmt.Println("\nUsage:")
	fmt.Println("  onnxget --model <model_name> [--variants full,int8,q4]")
	fmt.Println("  onnxget --model <huggingface_repo>")
}

func printPlan(repo hub.RepoRef, variants []variant.Variant, localDir string, files []hub.File, result variant.Result) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Downloading: %s\n", color.CyanString(repo.FullName()))
	fmt.Printf("Variants:    %s\n", variantList(variants))
	fmt.Printf("Destination: %s\n", localDir)
	fmt.Println(strings.Repeat("=", 80))

	fmt.Printf("\nSelected files (%d ONNX, %d config):\n",
		len(result.ONNX), len(result.Config))
	hub.PrintTree(os.Stdout, hub.Select(files, append(result.ONNX, result.Config...)))
	fmt.Println()
}

func printAvailableONNX(files []hub.File) {
	fmt.Println("Available ONNX files in repository:")
	for _, f := range files {
		if strings.HasSuffix(f.Path, ".onnx") {
			fmt.Printf("  - %s\n", f.Path)
		}
	}
}

func printSummary(s hub.Summary, localDir string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	if s.Failed > 0 {
		color.Yellow("Download finished with failures")
	} else {
		color.Green("✓ Download Complete!")
	}
	fmt.Printf("  Downloaded: %d\n", s.Downloaded)
	fmt.Printf("  Skipped:    %d (already present)\n", s.Skipped)
	if s.Failed > 0 {
		fmt.Printf("  Failed:     %d\n", s.Failed)
	}
	fmt.Printf("  Location:   %s\n", localDir)
	fmt.Println(strings.Repeat("=", 80))
}

func variantList(variants []variant.Variant) string {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}
