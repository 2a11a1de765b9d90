package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ragfront/ragfront-core/internal/adapters/driving/cli"
	"github.com/ragfront/ragfront-core/internal/runtime"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg := runtime.Config{
		DataRoot:      getEnv("DATA_ROOT", "./data"),
		BlobSecret:    getEnv("BLOB_SECRET", "development-secret-change-in-production"),
		BlobBaseURL:   getEnv("BLOB_BASE_URL", "http://localhost:8080"),
		IndexerBinary: getEnv("INDEXER_BINARY", "graphrag"),
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	svcs, err := runtime.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer svcs.Close()

	cli.SetProjectService(svcs.Projects)
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
