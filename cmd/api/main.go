package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/go-redis/redis/v8"

	"klinik-ai/internal/assistant"
	"klinik-ai/internal/config"
	"klinik-ai/internal/embedding"
	"klinik-ai/internal/handlers"
	"klinik-ai/internal/http"
	"klinik-ai/internal/indexer"
	"klinik-ai/internal/llm"
	"klinik-ai/internal/privacy"
	"klinik-ai/internal/session"
	"klinik-ai/internal/sparse"
	"klinik-ai/internal/storage"
	"klinik-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Initialize primary store
	db, err := storage.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized")

	stores := []storage.CollectionStore{
		storage.NewPatientRepo(db),
		storage.NewDoctorRepo(db),
		storage.NewRegistrationRepo(db),
		storage.NewExaminationRepo(db),
		storage.NewScheduleRepo(db),
	}

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	for _, collection := range storage.Collections() {
		if err := vectorStore.EnsureCollection(ctx, collection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection %s: %v", collection, err)
		}
	}
	slog.Info("Qdrant collections ready", "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	denseClient := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	probe, err := denseClient.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(probe) == 0 || len(probe[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(probe[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	embedder := embedding.NewBuilder(denseClient, sparse.NewEncoder(sparse.DefaultDim), cfg.QdrantVectorSize)

	// Session state
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	sessions := session.NewRedisStore(rdb)

	// Index maintenance, detached from the request path
	pipeline := indexer.NewPipeline(embedder, vectorStore, stores, cfg.QdrantVectorSize)
	refresher := indexer.NewRefresher(ctx, pipeline, logger)
	defer refresher.Close()

	// Assistant engine
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	retriever := assistant.NewHybridRetriever(
		embedder,
		vectorStore,
		stores,
		privacy.DefaultProjector(),
		cfg.RetrievalLimit,
		cfg.ScoreThreshold,
	)
	engine := assistant.NewEngine(retriever, assistant.DefaultRouter(), sessions, llmClient, assistant.Options{
		ChatParams: llm.ChatParams{
			Model:       cfg.LLMModelName,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
		},
		ScoreThreshold: cfg.ScoreThreshold,
	})
	slog.Info("Assistant engine initialized")

	router := http.NewRouter(&http.Deps{
		Engine:    engine,
		Refresher: refresher,
		HealthChecks: map[string]handlers.HealthChecker{
			"vector_store":  vectorStore,
			"session_store": sessions,
		},
	})

	// Rebuild the index in the background once the router is up
	go func() {
		slog.Info("Starting background indexing of collections")
		if err := pipeline.ReindexAll(context.Background()); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully")
		}
	}()

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
