package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if retrieverService == nil {
		return errors.New("retriever service not configured")
	}

	stats, err := retrieverService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	cmd.Printf("Corpus:    %s\n", settings.CorpusDir)
	cmd.Printf("Cache:     %s\n", settings.ResolvedCachePath())
	cmd.Printf("Device:    %s\n", settings.Device)
	printStats(cmd, stats.Documents, stats.Chunks, stats.Dimension, stats.Backend, stats.LoadedFromCache)
	return nil
}
