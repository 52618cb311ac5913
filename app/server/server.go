package server

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"patentsearch/app/api"
	"patentsearch/model"
	"patentsearch/service"
	"patentsearch/store"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
}

type Server struct {
	listenAddr string
	logger     *slog.Logger
}

func NewServer(addr string) *Server {
	return &Server{
		listenAddr: addr,
		logger:     slog.Default(),
	}
}

func (s *Server) Stop() {
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()

	storeCfg := store.Config{
		Host:           os.Getenv("QDRANT_HOST"),
		Port:           envInt("QDRANT_PORT", 6334),
		Collection:     envString("QDRANT_COLLECTION", "patent_chunks"),
		Dimension:      envInt("EMBEDDING_DIM", 768),
		ScoreThreshold: envScoreThreshold(),
	}
	vectorStore, err := store.NewQdrantStore(storeCfg)
	if err != nil {
		log.Fatal("error to connect to Qdrant: ", err)
		return
	}
	if err := vectorStore.EnsureCollection(ctx); err != nil {
		log.Fatal("error to create collection: ", err)
		return
	}

	embedder := model.NewOllamaEmbedder(
		os.Getenv("OLLAMA_EMBEDDING_URL"),
		os.Getenv("OLLAMA_EMBEDDING_MODEL"),
		0,
	)
	patents := model.NewPatentsViewClient(os.Getenv("PATENTSVIEW_URL"), 0)

	ingestService := service.NewIngestService(vectorStore, embedder, patents, service.IngestConfig{
		ChunkSize:    envInt("CHUNK_SIZE", model.DefaultChunkSize),
		ChunkOverlap: envInt("CHUNK_OVERLAP", model.DefaultChunkOverlap),
		EmptyPolicy:  service.EmptyPolicy(os.Getenv("INGEST_EMPTY_POLICY")),
	})
	searchService := service.NewSearchService(vectorStore, embedder)

	var (
		app            = fiber.New(config)
		checkHandler   = api.NewCheckHandler()
		requestHandler = api.NewRequestHandler(ingestService, searchService, vectorStore)
		check          = app.Group("/check")
		apiv1          = app.Group("/api/v1")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Post("/ingest/from-text", requestHandler.HandleIngestFromText)
	apiv1.Post("/ingest/from-id", requestHandler.HandleIngestFromID)
	apiv1.Post("/search", requestHandler.HandleSearch)
	apiv1.Delete("/collection", requestHandler.HandleDropCollection)

	if err := app.Listen(s.listenAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
		return
	}
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", name, err)
	}
	return n
}

// envScoreThreshold is optional: unset means no threshold at all, so weak
// matches still come back.
func envScoreThreshold() *float32 {
	v := os.Getenv("SEARCH_SCORE_THRESHOLD")
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Fatalf("invalid SEARCH_SCORE_THRESHOLD: %v", err)
	}
	threshold := float32(f)
	return &threshold
}
