// Package discover finds live job listings for a candidate profile and asks
// the model to rank them. Listings are scraped from a job board's search
// page; the board markup varies, so extraction works through a selector
// fallback chain rather than a fixed schema.
package discover

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/llm"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/prompts"
)

// DefaultSource is the job board queried when none is configured.
const DefaultSource = "https://remotive.com"

// DefaultTimeout bounds the listings page fetch.
const DefaultTimeout = 20 * time.Second

const defaultUserAgent = "Mozilla/5.0 (compatible; MallaLaunchpad/1.0)"

// maxListings caps how many scraped listings are sent to the model.
const maxListings = 15

// Listing is one scraped job posting.
type Listing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// Query describes what the candidate is looking for.
type Query struct {
	Role     string
	Location string
	Skills   []string
}

// Result pairs the scraped listings with the model's ranking advice.
type Result struct {
	Listings []Listing `json:"listings"`
	Advice   string    `json:"advice"`
}

// FetchError reports a failed or unusable listings page fetch.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("discover fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("discover fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NoListingsError indicates the board page parsed cleanly but contained no
// recognizable job listings.
type NoListingsError struct {
	URL string
}

func (e *NoListingsError) Error() string {
	return fmt.Sprintf("no job listings found at %s", e.URL)
}

// ValidationError indicates a missing query field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - is required", e.Field)
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithSource overrides the job board base URL.
func WithSource(base string) Option {
	return func(s *Searcher) { s.source = strings.TrimRight(base, "/") }
}

// WithHTTPClient overrides the HTTP client used for page fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) { s.http = c }
}

// Searcher scrapes a job board and ranks the results with the model.
type Searcher struct {
	client llm.Client
	source string
	http   *http.Client
}

// NewSearcher creates a Searcher backed by the given model client.
func NewSearcher(client llm.Client, opts ...Option) *Searcher {
	s := &Searcher{
		client: client,
		source: DefaultSource,
		http:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search fetches matching listings and asks the model to rank the best fits
// for the candidate's role, location and skills.
func (s *Searcher) Search(ctx context.Context, q Query) (*Result, error) {
	if strings.TrimSpace(q.Role) == "" {
		return nil, &ValidationError{Field: "role"}
	}

	listings, err := s.fetchListings(ctx, q)
	if err != nil {
		return nil, err
	}

	prompt := prompts.Format(prompts.MustGet("assist.json", "discover_rank"), map[string]string{
		"Role":     q.Role,
		"Location": q.Location,
		"Skills":   strings.Join(q.Skills, ", "),
		"Listings": formatListings(listings),
	})
	advice, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Result{Listings: listings, Advice: advice}, nil
}

func (s *Searcher) fetchListings(ctx context.Context, q Query) ([]Listing, error) {
	pageURL := s.searchURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: "failed to parse HTML", Cause: err}
	}

	listings := extractListings(doc, s.source)
	if len(listings) == 0 {
		return nil, &NoListingsError{URL: pageURL}
	}
	if len(listings) > maxListings {
		listings = listings[:maxListings]
	}
	return listings, nil
}

func (s *Searcher) searchURL(q Query) string {
	query := q.Role
	if q.Location != "" {
		query += " " + q.Location
	}
	return s.source + "/remote-jobs/search?query=" + url.QueryEscape(query)
}

// listingSelectors matches a job row across common board layouts.
var listingSelectors = []string{
	".job-tile",
	"li.job",
	"tr.job",
	"article.job",
	"[data-testid='job-listing']",
}

func extractListings(doc *goquery.Document, base string) []Listing {
	var rows *goquery.Selection
	for _, selector := range listingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			rows = sel
			break
		}
	}
	if rows == nil {
		return nil
	}

	var listings []Listing
	rows.Each(func(_ int, row *goquery.Selection) {
		l := Listing{
			Title:    firstText(row, "h2, h3, .job-title, [itemprop='title']"),
			Company:  firstText(row, ".company, .job-company, [itemprop='hiringOrganization']"),
			Location: firstText(row, ".location, .job-location, [itemprop='jobLocation']"),
		}
		if href, ok := row.Find("a[href]").First().Attr("href"); ok {
			l.URL = absoluteURL(base, href)
		}
		if l.Title != "" {
			listings = append(listings, l)
		}
	})
	return listings
}

func firstText(row *goquery.Selection, selector string) string {
	return strings.TrimSpace(row.Find(selector).First().Text())
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + "/" + strings.TrimLeft(href, "/")
}

func formatListings(listings []Listing) string {
	var sb strings.Builder
	for i, l := range listings {
		fmt.Fprintf(&sb, "%d. %s", i+1, l.Title)
		if l.Company != "" {
			fmt.Fprintf(&sb, " at %s", l.Company)
		}
		if l.Location != "" {
			fmt.Fprintf(&sb, " (%s)", l.Location)
		}
		if l.URL != "" {
			fmt.Fprintf(&sb, " - %s", l.URL)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
