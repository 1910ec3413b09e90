package entity

// PageRelevanceScore is one page's similarity against the utterance set.
// Transient; produced by the relevance filter and discarded with the run.
type PageRelevanceScore struct {
	PageNumber   int
	MatchedLabel string
	Similarity   float64
	Matched      bool
}
