// Package openai implements ai.ContractAIClient against an OpenAI-compatible
// chat completions endpoint.
package openai

import (
	"sync"

	"lexgraph/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ContractOpenAIClient talks to an OpenAI-compatible API. Create one with
// NewContractOpenAIClient.
type ContractOpenAIClient struct {
	completionModel string
	extractionModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewContractOpenAIClientParams configures a ContractOpenAIClient.
//
// CompletionModel is used for free-text generation (summaries, Cypher,
// answers). ExtractionModel is used for schema-constrained extraction.
// ChatURL may be empty for the default OpenAI endpoint.
type NewContractOpenAIClientParams struct {
	CompletionModel string
	ExtractionModel string

	ChatURL string
	ChatKey string
}

// NewContractOpenAIClient creates a client configured with the provided
// parameters.
func NewContractOpenAIClient(
	params NewContractOpenAIClientParams,
) *ContractOpenAIClient {
	return &ContractOpenAIClient{
		completionModel: params.CompletionModel,
		extractionModel: params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
