package service

import (
	"context"
	"fmt"
	"log/slog"

	"patentsearch/model"
	"patentsearch/store"
	"patentsearch/types"
)

const DefaultTopK = 20

// SearchService embeds the query once, runs the filtered vector search and
// annotates each hit with a human-readable explanation.
type SearchService struct {
	logger   *slog.Logger
	store    store.VectorStorer
	embedder model.EmbedderInterface
}

func NewSearchService(storer store.VectorStorer, embedder model.EmbedderInterface) *SearchService {
	return &SearchService{
		logger:   slog.Default(),
		store:    storer,
		embedder: embedder,
	}
}

func (s *SearchService) Search(ctx context.Context, query string, topK int, filters *types.SearchFilters) ([]types.SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &types.SearchError{Cause: err}
	}

	hits, err := s.store.Search(ctx, queryVector, topK, filters)
	if err != nil {
		return nil, &types.SearchError{Cause: err}
	}

	results := make([]types.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = resultFromHit(hit)
	}
	s.logger.Info("search completed", "hits", len(results), "top_k", topK)
	return results, nil
}

func resultFromHit(hit store.ScoredChunk) types.SearchResult {
	chunkType := payloadString(hit.Payload, "chunk_type")
	if chunkType == "" {
		chunkType = string(types.ChunkDescription)
	}
	return types.SearchResult{
		Score:            float64(hit.Score),
		PatentID:         payloadString(hit.Payload, "patent_id"),
		Title:            payloadString(hit.Payload, "title"),
		Assignee:         payloadString(hit.Payload, "assignee"),
		Jurisdiction:     payloadString(hit.Payload, "jurisdiction"),
		FilingYear:       int(payloadInt(hit.Payload, "filing_year")),
		PatentClass:      payloadStrings(hit.Payload, "patent_class"),
		Text:             payloadString(hit.Payload, "text"),
		MatchedChunkType: chunkType,
		Explanation:      buildExplanation(chunkType, hit.Score),
	}
}

// buildExplanation phrases the match by section type. The similarity is
// rounded to 4 decimals here only; the result keeps the raw score.
func buildExplanation(chunkType string, score float32) string {
	similarity := fmt.Sprintf("%.4f", score)
	switch types.ChunkType(chunkType) {
	case types.ChunkClaim:
		return fmt.Sprintf("High semantic similarity (%s) with a patent claim.", similarity)
	case types.ChunkAbstract:
		return fmt.Sprintf("Matched the patent abstract with similarity %s.", similarity)
	default:
		return fmt.Sprintf("Matched the detailed description with similarity %s.", similarity)
	}
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func payloadInt(payload map[string]any, key string) int64 {
	if v, ok := payload[key].(int64); ok {
		return v
	}
	return 0
}

func payloadStrings(payload map[string]any, key string) []string {
	items, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
