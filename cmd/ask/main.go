package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"lexgraph/internal/config"
	"lexgraph/pkg/ai"
	olm "lexgraph/pkg/ai/ollama"
	oai "lexgraph/pkg/ai/openai"
	"lexgraph/pkg/graphstore"
	"lexgraph/pkg/logger"
	"lexgraph/pkg/logger/console"
	"lexgraph/pkg/query"
)

const statsTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	question := flag.String("q", "", "Ask a single question and exit")
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

	translator := query.NewTranslator(store, aiClient)

	if *question != "" {
		fmt.Println(translator.Answer(ctx, *question))
		return
	}

	interactive(ctx, translator, store)
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

func interactive(ctx context.Context, translator *query.Translator, store *graphstore.Store) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Println(boldGreen("Contract graph assistant"))
	fmt.Println("Ask a question about the ingested contracts.")
	fmt.Println("Commands: 'stats' shows graph counts, 'exit' quits.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			return
		case "stats":
			printStats(ctx, store)
			continue
		}

		fmt.Println(boldCyan("Assistant:"), translator.Answer(ctx, input))
		fmt.Println()
	}
}

func printStats(ctx context.Context, store *graphstore.Store) {
	statsCtx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()

	stats, err := store.Stats(statsCtx)
	if err != nil {
		fmt.Println("Graph statistics unavailable:", err)
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %-24s %d\n", key, stats[key])
	}
	fmt.Println()
}
