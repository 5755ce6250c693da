// Command finrag is the entry point for the knowledge base CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/cache/file"
	configfile "github.com/finlit-labs/finrag-cli/internal/adapters/driven/config/file"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/device"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/embedding/ollama"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/embedding/openai"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/index"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/loader/filesystem"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/loader/pdf"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/loader/plaintext"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/storage/sqlite"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/watcher"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driving/cli"
	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/core/services"
	"github.com/finlit-labs/finrag-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// defaultCorpusDir is used when neither config nor environment name one.
const defaultCorpusDir = "./corpus"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local overrides for API keys and paths; absence is not an error.
	godotenv.Load() //nolint:errcheck

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settings := resolveSettings(configStore)
	if err := settings.Validate(); err != nil {
		return err
	}

	embedder := resolveEmbedder(configStore)
	defer embedder.Close()

	loader := filesystem.New(pdf.New(), plaintext.New())

	cacheStore, err := file.NewCacheStore(settings.ResolvedCachePath())
	if err != nil {
		return fmt.Errorf("opening cache store: %w", err)
	}

	opts := []services.RetrieverOption{}
	var docStore driven.DocumentStore
	store, err := sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		logger.Warn("document store unavailable, browsing commands disabled: %v", err)
	} else {
		docStore = store
		defer store.Close()
		opts = append(opts, services.WithDocumentStore(store))
	}

	retriever, err := services.NewRetrieverService(settings, loader, embedder, index.Factory{}, cacheStore, opts...)
	if err != nil {
		return err
	}
	defer retriever.Close()

	cli.Configure(retriever, docStore, configStore, watcher.New(), settings, version)
	return cli.Execute()
}

// resolveSettings layers configuration: defaults, then the config file,
// then environment variables.
func resolveSettings(config driven.ConfigStore) domain.Settings {
	settings := domain.DefaultSettings()
	settings.CorpusDir = defaultCorpusDir

	if v := config.GetString("retriever.corpus_dir"); v != "" {
		settings.CorpusDir = v
	}
	if v := config.GetString("retriever.cache_path"); v != "" {
		settings.CachePath = v
	}
	if v := config.GetInt("retriever.chunk_size"); v > 0 {
		settings.ChunkSize = v
	}
	if v := config.GetInt("retriever.chunk_overlap"); v > 0 {
		settings.ChunkOverlap = v
	}
	if v := config.GetInt("retriever.top_k"); v > 0 {
		settings.TopK = v
	}
	if v := config.GetFloat("retriever.score_threshold"); v > 0 {
		settings.ScoreThreshold = v
	}
	if v := config.GetFloat("retriever.tiers.high"); v > 0 {
		settings.Tiers.High = v
	}
	if v := config.GetFloat("retriever.tiers.medium"); v > 0 {
		settings.Tiers.Medium = v
	}

	if v := os.Getenv("FINRAG_CORPUS_DIR"); v != "" {
		settings.CorpusDir = v
	}
	if v := os.Getenv("FINRAG_CACHE_PATH"); v != "" {
		settings.CachePath = v
	}

	settings.Device = device.Resolve(domain.Device(config.GetString("retriever.device")))
	return settings
}

// resolveEmbedder picks the embedding backend. OpenAI is used when
// explicitly configured and a key is present; Ollama is the local
// default.
func resolveEmbedder(config driven.ConfigStore) driven.EmbeddingService {
	provider := config.GetString("embedding.provider")
	apiKey := os.Getenv("OPENAI_API_KEY")

	if provider == "openai" && apiKey != "" {
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     apiKey,
			Model:      config.GetString("embedding.model"),
			Dimensions: config.GetInt("embedding.dimensions"),
		})
		if err == nil {
			logger.Info("using OpenAI embeddings (%s)", svc.ModelName())
			return svc
		}
		logger.Warn("OpenAI embedder unavailable, falling back to Ollama: %v", err)
	}

	return ollama.NewEmbeddingService(ollama.Config{
		BaseURL:    config.GetString("embedding.base_url"),
		Model:      config.GetString("embedding.model"),
		Dimensions: config.GetInt("embedding.dimensions"),
	})
}
