package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"patentsearch/types"
)

// ScoredChunk is a raw hit from the vector index: similarity score plus the
// stored payload.
type ScoredChunk struct {
	ID      string
	Score   float32
	Payload map[string]any
}

// VectorStorer owns the patent chunk collection.
type VectorStorer interface {
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, chunks []types.Chunk, embeddings [][]float32, metadata types.PatentMetadata, topic string) error
	Search(ctx context.Context, queryVector []float32, topK int, filters *types.SearchFilters) ([]ScoredChunk, error)
	DeleteCollection(ctx context.Context) error
	Close() error
}

type Config struct {
	Host       string
	Port       int
	Collection string
	Dimension  int
	// ScoreThreshold drops weak hits when set. Nil accepts all similarities.
	ScoreThreshold *float32
}

// QdrantStore implements VectorStorer over the Qdrant gRPC API.
type QdrantStore struct {
	conn           *grpc.ClientConn
	collections    pb.CollectionsClient
	points         pb.PointsClient
	collection     string
	dimension      int
	scoreThreshold *float32
}

func NewQdrantStore(cfg Config) (*QdrantStore, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant connect: %w", err)
	}
	return &QdrantStore{
		conn:           conn,
		collections:    pb.NewCollectionsClient(conn),
		points:         pb.NewPointsClient(conn),
		collection:     cfg.Collection,
		dimension:      cfg.Dimension,
		scoreThreshold: cfg.ScoreThreshold,
	}, nil
}

// indexedFields are the payload fields that get a secondary index so they can
// be filtered on. filing_year is a range-filterable integer, the rest are
// exact-match keywords.
var indexedFields = []struct {
	name string
	kind pb.FieldType
}{
	{"jurisdiction", pb.FieldType_FieldTypeKeyword},
	{"assignee", pb.FieldType_FieldTypeKeyword},
	{"filing_year", pb.FieldType_FieldTypeInteger},
	{"patent_class", pb.FieldType_FieldTypeKeyword},
	{"chunk_type", pb.FieldType_FieldTypeKeyword},
	{"topic", pb.FieldType_FieldTypeKeyword},
}

// EnsureCollection creates the collection and its payload indexes if it does
// not exist yet. An existing collection is left untouched, including its
// vector size. Concurrent creation races are tolerated: a create conflict
// counts as success.
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	resp, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("qdrant list collections: %w", err)
	}
	for _, c := range resp.GetCollections() {
		if c.GetName() == s.collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(s.dimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("qdrant create collection: %w", err)
	}

	for _, f := range indexedFields {
		fieldType := f.kind
		_, err := s.points.CreateFieldIndex(ctx, &pb.CreateFieldIndexCollection{
			CollectionName: s.collection,
			FieldName:      f.name,
			FieldType:      &fieldType,
		})
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			return fmt.Errorf("qdrant create index %s: %w", f.name, err)
		}
	}
	return nil
}

// Upsert writes one point per chunk, each with a fresh UUID, the document
// metadata and the chunk's own fields in the payload. Repeated ingestion of
// the same document creates duplicate points; dedup is the caller's job.
func (s *QdrantStore) Upsert(ctx context.Context, chunks []types.Chunk, embeddings [][]float32, metadata types.PatentMetadata, topic string) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d != %d", len(chunks), len(embeddings))
	}

	points := make([]*pb.PointStruct, len(chunks))
	for i, chunk := range chunks {
		if len(embeddings[i]) != s.dimension {
			return &types.DimensionMismatchError{Want: s.dimension, Got: len(embeddings[i])}
		}
		points[i] = &pb.PointStruct{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: uuid.NewString()}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: embeddings[i]}}},
			Payload: chunkPayload(chunk, metadata, topic),
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert: %w", err)
	}
	return nil
}

// Search runs top-k cosine similarity under the translated filter conjunction.
// Hits come back ordered by descending score with their full payload.
func (s *QdrantStore) Search(ctx context.Context, queryVector []float32, topK int, filters *types.SearchFilters) ([]ScoredChunk, error) {
	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         queryVector,
		Limit:          uint64(topK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
		Filter:         buildFilter(filters),
		ScoreThreshold: s.scoreThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	results := make([]ScoredChunk, len(resp.GetResult()))
	for i, pt := range resp.GetResult() {
		payload := make(map[string]any, len(pt.GetPayload()))
		for k, v := range pt.GetPayload() {
			payload[k] = valueToAny(v)
		}
		results[i] = ScoredChunk{
			ID:      pt.GetId().GetUuid(),
			Score:   pt.GetScore(),
			Payload: payload,
		}
	}
	return results, nil
}

func (s *QdrantStore) DeleteCollection(ctx context.Context) error {
	_, err := s.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: s.collection})
	if err != nil {
		return fmt.Errorf("qdrant delete collection: %w", err)
	}
	return nil
}

func (s *QdrantStore) Close() error {
	return s.conn.Close()
}

var _ VectorStorer = (*QdrantStore)(nil)
