// Package cli provides the command-line interface adapter.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driving"
	"github.com/finlit-labs/finrag-cli/internal/logger"
)

// Services injected by main before Execute.
var (
	retrieverService driving.RetrieverService
	documentStore    driven.DocumentStore
	configStore      driven.ConfigStore
	corpusWatcher    driven.CorpusWatcher
	settings         domain.Settings
	version          = "dev"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "finrag",
	Short: "Semantic search over a financial document corpus",
	Long: `finrag builds a local vector index over a directory of PDF and text
documents and answers natural-language queries with the most relevant
passages. The index is cached between runs and rebuilt automatically
when the cache is missing or unreadable.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// Configure injects the services the commands depend on.
func Configure(
	retriever driving.RetrieverService,
	docs driven.DocumentStore,
	config driven.ConfigStore,
	watcher driven.CorpusWatcher,
	s domain.Settings,
	ver string,
) {
	retrieverService = retriever
	documentStore = docs
	configStore = config
	corpusWatcher = watcher
	settings = s
	if ver != "" {
		version = ver
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
