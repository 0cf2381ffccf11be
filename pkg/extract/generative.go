package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"lexgraph"
	"lexgraph/internal/util"
	"lexgraph/pkg/ai"
	"lexgraph/pkg/contract"
	"lexgraph/pkg/loader"
	"lexgraph/pkg/logger"
)

const generativeMaxTries = 2

// ContractTypeExtractor produces a structured record for one classified
// contract type. Securities-style and license agreements run full generative
// extraction; simpler agreement types are handled deterministically and
// never call the model.
type ContractTypeExtractor interface {
	Extract(ctx context.Context, client ai.ContractAIClient, text string) Outcome
}

// ExtractorFor returns the extractor capability for a classified type.
func ExtractorFor(t contract.ContractType) ContractTypeExtractor {
	switch t {
	case contract.TypeLicense:
		return &generativeExtractor{
			contractType: contract.TypeLicense,
			prompt:       ai.ExtractLicensePrompt,
		}
	case contract.TypeEmployment:
		return &minimalExtractor{
			contractType: contract.TypeEmployment,
			titlePattern: regexp.MustCompile(`(?i)employment.*?agreement|letter.*?agreement`),
			defaultTitle: "Employment Agreement",
			summary:      "Employment agreement or letter agreement between company and employee",
		}
	case contract.TypeSettlement:
		return &minimalExtractor{
			contractType: contract.TypeSettlement,
			titlePattern: regexp.MustCompile(`(?i)settlement.*?agreement|mutual.*?release`),
			defaultTitle: "Settlement Agreement",
			summary:      "Settlement agreement and mutual release between parties",
		}
	case contract.TypeLease:
		return &minimalExtractor{
			contractType: contract.TypeLease,
			titlePattern: regexp.MustCompile(`(?i)supplemental.*?lease|lease.*?agreement`),
			defaultTitle: "Lease Agreement",
			summary:      "Lease agreement or supplemental lease between landlord and tenant",
		}
	default:
		// securities purchase, warrant, rights and generic all take the
		// securities extraction path
		return &generativeExtractor{
			contractType: t,
			prompt:       ai.ExtractSecuritiesPrompt,
		}
	}
}

type generativeExtractor struct {
	contractType contract.ContractType
	prompt       string
}

func (e *generativeExtractor) Extract(ctx context.Context, client ai.ContractAIClient, text string) Outcome {
	bounded := loader.Truncate(text)
	logger.Debug("[Extract] generative request",
		"type", e.contractType,
		"chars", len(bounded),
		"tokens", loader.TokenCount(bounded),
	)

	prompt := fmt.Sprintf(e.prompt, bounded)

	rec, err := util.RetryWithContext(ctx, generativeMaxTries, func(ctx context.Context) (*contract.Record, error) {
		var rec contract.Record
		err := client.GenerateCompletionWithFormat(
			ctx,
			"contract_record",
			"Structured extraction of a legal contract",
			prompt,
			&rec,
		)
		if err != nil {
			return nil, err
		}
		return &rec, nil
	})
	if err != nil {
		if errors.Is(err, lexgraph.ErrSchemaParse) {
			return SchemaError(err)
		}
		return CallError(err)
	}

	if rec.ContractType == "" {
		rec.ContractType = e.contractType
	}
	return Ok(rec)
}

// minimalExtractor covers agreement types where full generative extraction
// buys little: a title guess and a canned summary suffice.
type minimalExtractor struct {
	contractType contract.ContractType
	titlePattern *regexp.Regexp
	defaultTitle string
	summary      string
}

func (e *minimalExtractor) Extract(ctx context.Context, client ai.ContractAIClient, text string) Outcome {
	title := e.defaultTitle
	if m := e.titlePattern.FindString(text); m != "" {
		title = m
	}

	return Ok(&contract.Record{
		Title:        title,
		ContractType: e.contractType,
		Summary:      e.summary,
	})
}
