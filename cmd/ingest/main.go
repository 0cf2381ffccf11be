package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"lexgraph/internal/config"
	"lexgraph/pkg/ai"
	olm "lexgraph/pkg/ai/ollama"
	oai "lexgraph/pkg/ai/openai"
	"lexgraph/pkg/batch"
	"lexgraph/pkg/cache"
	"lexgraph/pkg/graphstore"
	loaderio "lexgraph/pkg/loader/io"
	"lexgraph/pkg/logger"
	"lexgraph/pkg/logger/console"
)

func main() {
	cfg := config.Load()

	dir := flag.String("dir", cfg.ContractsDir, "Directory to scan for contract files")
	maxFiles := flag.Int("max", 0, "Maximum number of files to process (0 = all)")
	force := flag.Bool("force", false, "Reprocess files even when cached")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: cfg.Debug,
	}))

	aiClient := newAIClient(cfg)

	store, err := graphstore.Open(ctx, graphstore.OpenParams{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	})
	if err != nil {
		logger.Fatal("Could not open graph store", "err", err)
	}
	defer store.Close(ctx)

	dim := color.New(color.Faint).SprintFunc()
	processor := &batch.Processor{
		Loader:   loaderio.NewIOContractFileLoader(),
		Client:   aiClient,
		Store:    store,
		Cache: cache.NewIndex(cache.NewIndexParams{
			Path:        cfg.CachePath,
			FlushEvery:  cfg.CacheFlushEvery,
			KeepBackups: cfg.CacheKeepBackups,
		}),
		Force:    *force,
		MaxFiles: *maxFiles,
		Progress: func(index, total int, name, message string) {
			fmt.Printf("[%d/%d] %s %s\n", index, total, name, dim(message))
		},
	}

	report, err := processor.Run(ctx, *dir)
	if err != nil {
		logger.Fatal("Batch run failed", "err", err)
	}

	printReport(report)
	metrics := aiClient.GetMetrics()
	if metrics.TotalTokens > 0 {
		fmt.Printf("Model usage: %d tokens (%.1f tok/s)\n", metrics.TotalTokens, metrics.TokenPerSecond)
	}
}

func newAIClient(cfg config.Config) ai.ContractAIClient {
	switch cfg.AIAdapter {
	case "ollama":
		client, err := olm.NewContractOllamaClient(olm.NewContractOllamaClientParams{
			CompletionModel: cfg.AICompletionModel,
			ExtractionModel: cfg.AIExtractionModel,

			BaseURL: cfg.AIChatURL,
			ApiKey:  cfg.AIChatKey,

			MaxConcurrentRequests: int64(cfg.AIMaxConcurrent),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		return client
	default:
		return oai.NewContractOpenAIClient(oai.NewContractOpenAIClientParams{
			CompletionModel: cfg.AICompletionModel,
			ExtractionModel: cfg.AIExtractionModel,

			ChatURL: cfg.AIChatURL,
			ChatKey: cfg.AIChatKey,
		})
	}
}

func printReport(report *batch.Report) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println()
	fmt.Println(green("Ingestion complete"))
	fmt.Print(report.String())

	if report.Failed > 0 {
		fmt.Println(red(fmt.Sprintf("%d file(s) failed, see log above", report.Failed)))
	}
	if report.StatsNote != "" {
		fmt.Println(yellow("Graph statistics were " + report.StatsNote))
	}
}
