package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse indexed documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed. Run 'finrag index build' first.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s  %s", docs[i].ID, docs[i].Name)
		if docs[i].Pages > 0 {
			cmd.Printf("  (%d pages)", docs[i].Pages)
		}
		cmd.Println()
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docID := args[0]
	ctx := cmd.Context()

	doc, err := documentStore.GetDocument(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:     %s\n", doc.Name)
	cmd.Printf("  Path:     %s\n", doc.Path)
	if doc.Pages > 0 {
		cmd.Printf("  Pages:    %d\n", doc.Pages)
	}
	cmd.Printf("  Indexed:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))

	chunks, err := documentStore.GetChunks(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}

	cmd.Printf("  Chunks:   %d\n", len(chunks))
	for i := range chunks {
		preview := chunks[i].Content
		if len(preview) > 80 {
			preview = preview[:80] + "..."
		}
		cmd.Printf("\n  [%d] %s\n", chunks[i].Position, preview)
	}

	return nil
}
