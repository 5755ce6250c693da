package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finlit-labs/finrag-cli/internal/logger"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the vector index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the index from the corpus",
	Long: `Builds the vector index, reusing the cache record when one exists.
With --watch the command keeps running and rebuilds whenever a corpus
file changes.`,
	RunE: runIndexBuild,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Discard the cache and rebuild from scratch",
	RunE:  runIndexRebuild,
}

func init() {
	indexBuildCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "rebuild on corpus changes")
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexRebuildCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	if retrieverService == nil {
		return errors.New("retriever service not configured")
	}

	ctx := cmd.Context()

	stats, err := retrieverService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	printStats(cmd, stats.Documents, stats.Chunks, stats.Dimension, stats.Backend, stats.LoadedFromCache)

	if !indexWatch {
		return nil
	}

	if corpusWatcher == nil {
		return errors.New("corpus watcher not configured")
	}

	changes, err := corpusWatcher.Watch(ctx, settings.CorpusDir)
	if err != nil {
		return fmt.Errorf("watching corpus: %w", err)
	}
	defer corpusWatcher.Stop() //nolint:errcheck

	cmd.Printf("Watching %s for changes (ctrl-c to stop)...\n", settings.CorpusDir)
	for path := range changes {
		logger.Info("corpus change detected: %s", path)
		if err := retrieverService.Rebuild(ctx); err != nil {
			logger.Warn("rebuild after change failed: %v", err)
			continue
		}
		stats, err := retrieverService.Stats(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Rebuilt: %d documents, %d chunks\n", stats.Documents, stats.Chunks)
	}

	return nil
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	if retrieverService == nil {
		return errors.New("retriever service not configured")
	}

	ctx := cmd.Context()

	if err := retrieverService.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	stats, err := retrieverService.Stats(ctx)
	if err != nil {
		return err
	}
	printStats(cmd, stats.Documents, stats.Chunks, stats.Dimension, stats.Backend, stats.LoadedFromCache)
	return nil
}

func printStats(cmd *cobra.Command, docs, chunks, dim int, backend string, cached bool) {
	source := "built from corpus"
	if cached {
		source = "loaded from cache"
	}
	cmd.Printf("Index ready (%s)\n", source)
	cmd.Printf("  Documents: %d\n", docs)
	cmd.Printf("  Chunks:    %d\n", chunks)
	cmd.Printf("  Dimension: %d\n", dim)
	cmd.Printf("  Backend:   %s\n", backend)
}
