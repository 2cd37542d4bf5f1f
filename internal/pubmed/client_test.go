package pubmed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vitalctl/vital/internal/cache"
	"github.com/vitalctl/vital/internal/model"
)

const efetchXML = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>12345678</PMID>
      <Article>
        <Journal>
          <JournalIssue><PubDate><Year>2016</Year></PubDate></JournalIssue>
          <Title>BMJ</Title>
        </Journal>
        <ArticleTitle>Physical activity and all-cause mortality</ArticleTitle>
        <Abstract>
          <AbstractText>Running lowered mortality, HR 0.73 (95% CI 0.65-0.82).</AbstractText>
        </Abstract>
        <AuthorList>
          <Author><LastName>Aune</LastName><Initials>D</Initials></Author>
          <Author><LastName>Norat</LastName><Initials>T</Initials></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func newTestServer(t *testing.T, requests *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt64(requests, 1)
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/esearch.fcgi"):
			term := r.URL.Query().Get("term")
			if !strings.Contains(term, "meta-analysis[pt]") {
				t.Errorf("Expected publication-type filter in term, got %q", term)
			}
			_, _ = w.Write([]byte(`{"esearchresult":{"idlist":["12345678"]}}`))
		case strings.HasPrefix(r.URL.Path, "/efetch.fcgi"):
			if got := r.URL.Query().Get("id"); got != "12345678" {
				t.Errorf("Expected id 12345678, got %q", got)
			}
			_, _ = w.Write([]byte(efetchXML))
		default:
			http.NotFound(w, r)
		}
	}))
}

func testConfig(baseURL string) model.PubMedConfig {
	return model.PubMedConfig{
		BaseURL:           baseURL,
		Email:             "dev@example.com",
		MaxResults:        10,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000, // no throttling in tests
	}
}

func TestClient_Search(t *testing.T) {
	server := newTestServer(t, nil)
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	articles, err := client.Search(context.Background(), "running mortality", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.PMID != "12345678" || a.Year != 2016 || a.Journal != "BMJ" {
		t.Errorf("Unexpected article metadata: %+v", a)
	}
	if len(a.Authors) != 2 || a.Authors[0] != "Aune D" {
		t.Errorf("Unexpected authors: %v", a.Authors)
	}
	if !strings.Contains(a.Abstract, "HR 0.73") {
		t.Errorf("Unexpected abstract: %q", a.Abstract)
	}
}

func TestClient_SearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	articles, err := client.Search(context.Background(), "nonexistent topic", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected no articles, got %d", len(articles))
	}
}

func TestClient_SearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	if _, err := client.Search(context.Background(), "running", 5); err == nil {
		t.Error("Expected error on 500 response")
	}
}

func TestClient_SearchUsesCache(t *testing.T) {
	var requests int64
	server := newTestServer(t, &requests)
	defer server.Close()

	memCache := cache.NewMemory(time.Minute, time.Minute)
	client := NewClient(testConfig(server.URL), memCache)

	for i := 0; i < 2; i++ {
		if _, err := client.Search(context.Background(), "running mortality", 5); err != nil {
			t.Fatalf("Search %d failed: %v", i, err)
		}
	}

	// Second search is fully served from cache.
	if got := atomic.LoadInt64(&requests); got != 2 {
		t.Errorf("Expected 2 upstream requests (esearch + efetch), got %d", got)
	}
}

func TestParseArticles_MalformedXML(t *testing.T) {
	if _, err := parseArticles([]byte("<not-closed")); err == nil {
		t.Error("Expected parse error")
	}
}
