package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

var (
	searchTopK      int
	searchThreshold float64
	searchJSON      bool
	searchBlock     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Embeds the query and returns the closest passages from the corpus.
Results are ordered by distance (lower is better) and labelled with a
relevance tier. The index is built on first use and cached.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of passages (default 3)")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "maximum distance for a passage to count (default 1.5)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchBlock, "block", false, "output a single attributed text block")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrieverService == nil {
		return errors.New("retriever service not configured")
	}

	ctx := cmd.Context()

	if searchBlock {
		block, err := retrieverService.SearchBlock(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		cmd.Println(block)
		return nil
	}

	opts := domain.SearchOptions{
		TopK:           searchTopK,
		ScoreThreshold: searchThreshold,
	}

	results, err := retrieverService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (distance %.3f, relevance %s)\n",
			i+1, results[i].Source, results[i].Score, results[i].Relevance)

		snippet := results[i].Text
		if len(snippet) > 200 {
			snippet = snippet[:200] + "..."
		}
		cmd.Printf("      %s\n", snippet)
		cmd.Println()
	}

	return nil
}
