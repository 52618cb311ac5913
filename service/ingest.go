package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"patentsearch/model"
	"patentsearch/store"
	"patentsearch/types"
)

// EmptyPolicy decides what happens when a document chunks to nothing:
// EmptyFail raises a typed ingestion error, EmptySkip reports the document
// as skipped. Both behaviors are legitimate depending on the feed, so the
// choice is explicit configuration rather than a hardcoded default.
type EmptyPolicy string

const (
	EmptyFail EmptyPolicy = "fail"
	EmptySkip EmptyPolicy = "skip"
)

type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
	EmptyPolicy  EmptyPolicy
}

// IngestService drives the ingestion pipeline: sections -> chunks ->
// embeddings -> one batch upsert. Nothing is written unless every chunk
// embedded successfully.
type IngestService struct {
	logger   *slog.Logger
	store    store.VectorStorer
	embedder model.EmbedderInterface
	patents  *model.PatentsViewClient
	cfg      IngestConfig
}

func NewIngestService(storer store.VectorStorer, embedder model.EmbedderInterface, patents *model.PatentsViewClient, cfg IngestConfig) *IngestService {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = model.DefaultChunkSize
		cfg.ChunkOverlap = model.DefaultChunkOverlap
	}
	if cfg.EmptyPolicy == "" {
		cfg.EmptyPolicy = EmptyFail
	}
	return &IngestService{
		logger:   slog.Default(),
		store:    storer,
		embedder: embedder,
		patents:  patents,
		cfg:      cfg,
	}
}

func (s *IngestService) IngestText(ctx context.Context, text string, metadata types.PatentMetadata, topic string) (*types.IngestResult, error) {
	sections := model.SplitIntoSections(text)
	chunks := model.CreateChunks(sections, text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)

	if len(chunks) == 0 {
		if s.cfg.EmptyPolicy == EmptySkip {
			s.logger.Info("document skipped, no chunks created", "patent_id", metadata.PatentID)
			return &types.IngestResult{
				Status:   types.IngestSkipped,
				PatentID: metadata.PatentID,
				Reason:   "no chunks created",
			}, nil
		}
		return nil, &types.IngestionError{Cause: types.ErrNoChunks}
	}

	embeddings := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		embedding, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return nil, &types.IngestionError{Cause: fmt.Errorf("embedding chunk %d: %w", i, err)}
		}
		embeddings[i] = embedding
	}

	if err := s.store.Upsert(ctx, chunks, embeddings, metadata, topic); err != nil {
		return nil, &types.IngestionError{Cause: err}
	}

	s.logger.Info("document ingested", "patent_id", metadata.PatentID, "chunks", len(chunks))
	return &types.IngestResult{
		Status:        types.IngestSuccess,
		PatentID:      metadata.PatentID,
		ChunksCreated: len(chunks),
	}, nil
}

// IngestPatentID fetches text and metadata from the patent API and feeds the
// regular text pipeline.
func (s *IngestService) IngestPatentID(ctx context.Context, patentID, topic string) (*types.IngestResult, error) {
	if s.patents == nil {
		return nil, &types.IngestionError{Cause: errors.New("patent API client is not configured")}
	}
	record, err := s.patents.FetchPatent(ctx, patentID)
	if err != nil {
		return nil, &types.IngestionError{Cause: err}
	}
	if strings.TrimSpace(record.Text) == "" {
		return nil, &types.IngestionError{Cause: errors.New("no text extracted from patent API")}
	}
	return s.IngestText(ctx, record.Text, record.Metadata, topic)
}
