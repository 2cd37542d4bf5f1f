// Package pubmed is a best-effort client for the NCBI E-utilities API,
// used to search for meta-analyses and systematic reviews supporting
// effect estimates. Failures are reported, never fatal to the caller's
// records.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vitalctl/vital/internal/cache"
	"github.com/vitalctl/vital/internal/model"
	"golang.org/x/time/rate"
)

// Article is one search result with the metadata needed for a
// bibliography entry
type Article struct {
	PMID     string
	Title    string
	Journal  string
	Year     int
	Authors  []string
	Abstract string
}

// Client talks to the E-utilities endpoints. Requests are rate limited
// (NCBI allows 3 req/s without an API key) and responses are cached.
type Client struct {
	httpClient *http.Client
	baseURL    string
	email      string
	maxResults int
	limiter    *rate.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration // 0 uses the cache default
}

// NewClient creates a client from config. responseCache may be nil to
// disable caching.
func NewClient(cfg model.PubMedConfig, responseCache cache.Cache) *Client {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		email:      cfg.Email,
		maxResults: maxResults,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cache:      responseCache,
		cacheTTL:   cfg.CacheTTL,
	}
}

// Search queries PubMed for articles matching the query, restricted to
// meta-analyses and systematic reviews. max <= 0 uses the configured
// default. One esearch call resolves PMIDs, one efetch call resolves
// details; there are no retries.
func (c *Client) Search(ctx context.Context, query string, max int) ([]Article, error) {
	if max <= 0 {
		max = c.maxResults
	}

	pmids, err := c.searchIDs(ctx, query, max)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return nil, nil
	}
	return c.fetchDetails(ctx, pmids)
}

// searchIDs runs the esearch request and returns matching PMIDs
func (c *Client) searchIDs(ctx context.Context, query string, max int) ([]string, error) {
	// The publication-type filter keeps results at the top of the
	// evidence hierarchy.
	enhanced := fmt.Sprintf("(%s) AND (meta-analysis[pt] OR systematic review[pt])", query)

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", enhanced)
	params.Set("retmax", strconv.Itoa(max))
	params.Set("retmode", "json")
	if c.email != "" {
		params.Set("email", c.email)
	}

	body, err := c.get(ctx, c.baseURL+"/esearch.fcgi?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("pubmed search: %w", err)
	}

	var result struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("pubmed search: parse response: %w", err)
	}
	return result.ESearchResult.IDList, nil
}

// fetchDetails runs the efetch request for a set of PMIDs
func (c *Client) fetchDetails(ctx context.Context, pmids []string) ([]Article, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")
	if c.email != "" {
		params.Set("email", c.email)
	}

	body, err := c.get(ctx, c.baseURL+"/efetch.fcgi?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("pubmed fetch: %w", err)
	}
	return parseArticles(body)
}

// get performs one rate-limited, cached GET
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	key := cache.Key(requestURL)
	if c.cache != nil {
		if body, found := c.cache.Get(key); found {
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.cacheTTL)
	}
	return body, nil
}

// efetch XML mapping, limited to the fields Article carries

type pubmedArticleSet struct {
	XMLName  xml.Name     `xml:"PubmedArticleSet"`
	Articles []pubmedItem `xml:"PubmedArticle"`
}

type pubmedItem struct {
	PMID     string         `xml:"MedlineCitation>PMID"`
	Title    string         `xml:"MedlineCitation>Article>ArticleTitle"`
	Journal  string         `xml:"MedlineCitation>Article>Journal>Title"`
	Year     string         `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Year"`
	Abstract []string       `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Authors  []pubmedAuthor `xml:"MedlineCitation>Article>AuthorList>Author"`
}

type pubmedAuthor struct {
	LastName string `xml:"LastName"`
	Initials string `xml:"Initials"`
}

func parseArticles(data []byte) ([]Article, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("pubmed fetch: parse xml: %w", err)
	}

	articles := make([]Article, 0, len(set.Articles))
	for _, item := range set.Articles {
		year, _ := strconv.Atoi(item.Year)

		var authors []string
		for _, a := range item.Authors {
			if a.LastName == "" {
				continue
			}
			name := a.LastName
			if a.Initials != "" {
				name += " " + a.Initials
			}
			authors = append(authors, name)
		}

		articles = append(articles, Article{
			PMID:     item.PMID,
			Title:    item.Title,
			Journal:  item.Journal,
			Year:     year,
			Authors:  authors,
			Abstract: strings.Join(item.Abstract, " "),
		})
	}
	return articles, nil
}
