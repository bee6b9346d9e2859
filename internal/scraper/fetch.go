package scraper

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/gacha-events/internal/logger"
)

const (
	// UserAgent mimics a desktop browser. The fandom CDN serves a reduced
	// page to generic client strings, which breaks the card galleries.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	Timeout = 25 * time.Second

	// FetchDelay paces requests to the same wiki. Detail pages are fetched
	// sequentially at this interval to stay under the CDN's rate limits.
	FetchDelay = 800 * time.Millisecond
)

type roundTripperFunc func(r *http.Request) (*http.Response, error)

func (fn roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}

func matchDomain(domain string, u *url.URL) bool {
	if domain == "" {
		return true
	}
	h := strings.Trim(strings.ToLower(u.Hostname()), ".")
	d := strings.ToLower(domain)
	if h == d {
		return true
	}
	return strings.HasPrefix(d, ".") && strings.HasSuffix(h, d)
}

func rateLimitRoundTripper(next http.RoundTripper, domain string, limiter *rate.Limiter) http.RoundTripper {
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if matchDomain(domain, r.URL) {
			if err := limiter.Wait(r.Context()); err != nil {
				return nil, err
			}
		}
		if next == nil {
			return http.DefaultTransport.RoundTrip(r)
		}
		return next.RoundTrip(r)
	})
}

// Fetcher retrieves wiki pages, pacing requests to the wiki's domain.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher whose requests to the given domain are
// spaced at least FetchDelay apart. A domain of ".fandom.com" covers all
// wiki subdomains.
func NewFetcher(domain string) *Fetcher {
	limiter := rate.NewLimiter(rate.Every(FetchDelay), 1)
	return &Fetcher{
		client: &http.Client{
			Timeout:   Timeout,
			Transport: rateLimitRoundTripper(nil, domain, limiter),
		},
	}
}

// Get fetches a page and parses it into a goquery document.
func (f *Fetcher) Get(pageURL string) (*goquery.Document, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	logger.RecordTiming("fetch.page", time.Since(start))
	logger.IncrCounter("fetch.pages")
	return doc, nil
}
