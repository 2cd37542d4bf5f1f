// Package llm provides the optional literature summarizer. Summaries
// are presentation only: they never feed back into records, rankings,
// or ROI.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitalctl/vital/internal/model"
	"github.com/vitalctl/vital/internal/pubmed"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the search results
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for summarization
type SummarizeRequest struct {
	// Query is the literature search the articles came from
	Query string

	// Articles is the STRICT allowlist of sources: the summary may
	// only describe these, never outside knowledge
	Articles []pubmed.Article

	// Model overrides the configured model when set
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the summary output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// NewProvider creates a provider from configuration. An empty provider
// name disables summarization (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}

// BuildPrompt constructs the default summarization prompt. The rules
// keep the model inside the fetched abstracts.
func BuildPrompt(query string, articles []pubmed.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing PubMed search results for the query %q.

CRITICAL RULES:
1. Describe ONLY the %d articles listed below. Do not bring in outside studies or background knowledge.
2. If the abstracts disagree or are inconclusive, say so explicitly.
3. Report effect sizes exactly as the abstracts state them.
4. Describe what the evidence shows, not what is true. Use phrases like "the pooled estimate suggests" or "one meta-analysis reports".

Articles:
`, query, len(articles))

	for i, a := range articles {
		fmt.Fprintf(&b, "\n%d. %s (%s %d, PMID %s)\n", i+1, a.Title, a.Journal, a.Year, a.PMID)
		abstract := a.Abstract
		if len(abstract) > 1500 { // keep the prompt bounded
			abstract = abstract[:1500] + "…"
		}
		if abstract != "" {
			fmt.Fprintf(&b, "   %s\n", abstract)
		}
	}

	b.WriteString("\nProvide a 3-5 sentence summary of the strength and direction of the evidence.")
	return b.String()
}
