package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/vitalctl/vital/internal/model"
	"github.com/vitalctl/vital/internal/pubmed"
)

func testArticles() []pubmed.Article {
	return []pubmed.Article{
		{
			PMID:     "12345678",
			Title:    "Physical activity and all-cause mortality",
			Journal:  "BMJ",
			Year:     2016,
			Abstract: "Running lowered mortality, HR 0.73 (95% CI 0.65-0.82).",
		},
	}
}

func TestOpenAIProvider_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header: %s", r.Header.Get("Authorization"))
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Decode request: %v", err)
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "PMID 12345678") {
			t.Error("Expected the article list in the user prompt")
		}

		resp := openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "One meta-analysis reports HR 0.73."}},
			},
			Usage: openai.Usage{TotalTokens: 90},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(model.LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{
		Query:    "running mortality",
		Articles: testArticles(),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if resp.Summary != "One meta-analysis reports HR 0.73." {
		t.Errorf("Unexpected summary: %q", resp.Summary)
	}
	if resp.TokensUsed != 90 {
		t.Errorf("Expected 90 tokens, got %d", resp.TokensUsed)
	}
}

func TestNewOpenAIProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIProvider(model.LLMConfig{}); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	// Disabled when no provider is configured.
	p, err := NewProvider(model.LLMConfig{})
	if err != nil || p != nil {
		t.Errorf("Expected disabled provider, got %v, %v", p, err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "parrot"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	p, err = NewProvider(model.LLMConfig{Provider: "openai", APIKey: "k"})
	if err != nil || p == nil || p.Name() != "openai" {
		t.Errorf("Expected openai provider, got %v, %v", p, err)
	}
}

func TestBuildPrompt_TruncatesLongAbstracts(t *testing.T) {
	long := testArticles()
	long[0].Abstract = strings.Repeat("x", 3000)

	prompt := BuildPrompt("q", long)
	if !strings.Contains(prompt, "…") {
		t.Error("Expected long abstract truncated")
	}
	if strings.Contains(prompt, strings.Repeat("x", 1600)) {
		t.Error("Expected abstract capped at 1500 characters")
	}
}
