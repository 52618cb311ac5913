package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"patentsearch/loader/service"
	"patentsearch/loader/types"
)

func init() {
	mustLoadEnvVariables()
}

func main() {
	cfg := types.Config{
		APIURL:        envString("LOADER_API_URL", "http://127.0.0.1:8000/api/v1/ingest/from-text"),
		CSVPath:       os.Getenv("LOADER_CSV_PATH"),
		Topic:         os.Getenv("LOADER_TOPIC"),
		MaxWorkers:    envInt("LOADER_MAX_WORKERS", 4),
		MaxTextTokens: envInt("LOADER_MAX_TEXT_TOKENS", 2048),
	}
	if cfg.CSVPath == "" {
		log.Fatal("LOADER_CSV_PATH is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigch
		log.Println("Received shutdown signal, stopping batch...")
		cancel()
	}()

	if err := service.New(cfg).Run(ctx); err != nil {
		log.Fatal("batch ingestion failed: ", err)
	}
}

func mustLoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
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
