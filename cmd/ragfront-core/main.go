package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ragfront/ragfront-core/internal/adapters/driving/http"
	"github.com/ragfront/ragfront-core/internal/runtime"
)

var version = "dev"

func main() {
	// Local overrides for development; absence is fine
	_ = godotenv.Load()

	log.Printf("ragfront-core %s starting", version)

	cfg := runtime.Config{
		DataRoot:            getEnv("DATA_ROOT", "./data"),
		RedisURL:            getEnv("REDIS_URL", ""),
		BlobSecret:          getEnv("BLOB_SECRET", "development-secret-change-in-production"),
		BlobBaseURL:         getEnv("BLOB_BASE_URL", "http://localhost:8080"),
		IndexerBinary:       getEnv("INDEXER_BINARY", "graphrag"),
		ResultCacheCapacity: getEnvInt("RESULT_CACHE_CAPACITY", 0),
		QueryCacheTTL:       time.Duration(getEnvInt("QUERY_CACHE_TTL_SEC", 0)) * time.Second,
		Logger:              slog.Default(),
	}

	svcs, err := runtime.New(cfg)
	if err != nil {
		log.Fatalf("Failed to assemble services: %v", err)
	}
	defer svcs.Close()

	serverCfg := http.Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnvInt("PORT", 8080),
		Version:        version,
		AllowedOrigins: []string{getEnv("CORS_ORIGIN", "*")},
	}
	server := http.NewServer(serverCfg, svcs.Query, svcs.Projects, svcs.ProjectStore, svcs.Blobs)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
