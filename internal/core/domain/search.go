package domain

// Default search parameters. The defaults mirror the distance distribution
// of the all-MiniLM-L6-v2 embedding model under squared Euclidean distance.
const (
	// DefaultTopK is the default number of passages returned per query.
	DefaultTopK = 3

	// DefaultScoreThreshold is the maximum distance for a passage to be
	// considered relevant at all. Lower distance is better.
	DefaultScoreThreshold = 1.5
)

// Relevance is a coarse bucketing of a result's distance score.
type Relevance string

// Relevance tiers, from closest to farthest.
const (
	RelevanceHigh   Relevance = "high"
	RelevanceMedium Relevance = "medium"
	RelevanceLow    Relevance = "low"
)

// Tiers holds the distance cut-offs used to label results.
// Distances below High are labelled high, below Medium labelled medium,
// and everything else (up to the score threshold) labelled low.
type Tiers struct {
	High   float64
	Medium float64
}

// DefaultTiers are tuned for all-MiniLM-L6-v2 squared-L2 distances.
var DefaultTiers = Tiers{High: 0.8, Medium: 1.2}

// For returns the relevance label for a distance score.
func (t Tiers) For(distance float64) Relevance {
	switch {
	case distance < t.High:
		return RelevanceHigh
	case distance < t.Medium:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// TopK is the maximum number of passages to return.
	// Zero or negative falls back to DefaultTopK.
	TopK int

	// ScoreThreshold is the maximum distance for a result to be kept.
	// Zero or negative falls back to DefaultScoreThreshold.
	ScoreThreshold float64
}

// Normalise fills in defaults for unset fields.
func (o SearchOptions) Normalise() SearchOptions {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.ScoreThreshold <= 0 {
		o.ScoreThreshold = DefaultScoreThreshold
	}
	return o
}

// SearchResult is a single ranked passage. Results are transient,
// derived per query, and never persisted.
type SearchResult struct {
	// Text is the retrieved chunk content.
	Text string

	// Source is the originating document file name.
	Source string

	// Score is the raw squared Euclidean distance. Lower is better.
	Score float64

	// Relevance is the tier label computed from Score.
	Relevance Relevance
}

// IndexStats summarises the retriever's current state.
type IndexStats struct {
	// Documents is the number of corpus documents that produced chunks.
	Documents int

	// Chunks is the number of indexed chunks (equals the vector count).
	Chunks int

	// Dimension is the embedding dimension of the index.
	Dimension int

	// Backend names the index backend in use ("flat" or "hnsw").
	Backend string

	// LoadedFromCache reports whether the state came from a cache record.
	LoadedFromCache bool
}
