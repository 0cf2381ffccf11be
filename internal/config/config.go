// Package config assembles runtime settings from the environment.
package config

import "lexgraph/internal/util"

// Config carries everything the entry points need to wire the pipeline.
type Config struct {
	Debug bool

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	AIAdapter         string // "openai" (default) or "ollama"
	AICompletionModel string
	AIExtractionModel string
	AIChatURL         string
	AIChatKey         string
	AIMaxConcurrent   int

	CachePath        string
	CacheFlushEvery  int
	CacheKeepBackups int
	ContractsDir     string
}

// Load reads the .env file if present and resolves the configuration.
func Load() Config {
	util.LoadEnv()

	return Config{
		Debug: util.GetEnvBool("DEBUG", false),

		Neo4jURI:      util.GetEnv("NEO4J_URI"),
		Neo4jUser:     util.GetEnvString("NEO4J_USER", "neo4j"),
		Neo4jPassword: util.GetEnv("NEO4J_PASSWORD"),
		Neo4jDatabase: util.GetEnv("NEO4J_DATABASE"),

		AIAdapter:         util.GetEnvString("AI_ADAPTER", "openai"),
		AICompletionModel: util.GetEnv("AI_COMPLETION_MODEL"),
		AIExtractionModel: util.GetEnv("AI_EXTRACTION_MODEL"),
		AIChatURL:         util.GetEnv("AI_CHAT_URL"),
		AIChatKey:         util.GetEnv("AI_CHAT_KEY"),
		AIMaxConcurrent:   util.GetEnvInt("AI_MAX_CONCURRENT_REQUESTS", 1),

		CachePath:        util.GetEnvString("CACHE_PATH", "processed_contracts_cache.json"),
		CacheFlushEvery:  util.GetEnvInt("CACHE_FLUSH_EVERY", 0),
		CacheKeepBackups: util.GetEnvInt("CACHE_KEEP_BACKUPS", 0),
		ContractsDir:     util.GetEnvString("CONTRACTS_DIR", "data/contracts"),
	}
}
