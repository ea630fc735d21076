package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"marketscraper/internal/apperror"
)

const (
	defaultBaseURL = "https://databoks.katadata.co.id/marketdata"
	defaultTimeout = 15 * time.Second
)

// defaultHeaders is the header set the live page is known to accept. The
// response is HTML regardless of the Accept value.
var defaultHeaders = map[string]string{
	"Accept":     "application/json",
	"User-Agent": "Mozilla/5.0",
}

// Fetcher retrieves one market page per symbol and parses it into a
// traversable document.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	baseURL string
	headers map[string]string
}

func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout: defaultTimeout,
		baseURL: defaultBaseURL,
		headers: defaultHeaders,
	}
	for _, o := range opts {
		o(f)
	}
	// A caller-supplied client keeps its own timeout and is never mutated;
	// WithTimeout only shapes the default client.
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

type FetcherOption func(*Fetcher)

func WithClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

func WithBaseURL(url string) FetcherOption {
	return func(f *Fetcher) { f.baseURL = strings.TrimRight(url, "/") }
}

func WithHeaders(h map[string]string) FetcherOption {
	return func(f *Fetcher) { f.headers = h }
}

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.timeout = d }
}

// URL returns the page address for a symbol. The path segment is always the
// lower-cased symbol.
func (f *Fetcher) URL(symbol string) string {
	return f.baseURL + "/" + strings.ToLower(symbol)
}

func (f *Fetcher) Fetch(ctx context.Context, symbol string) (*goquery.Document, error) {
	pageURL := f.URL(symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, apperror.Wrap(apperror.Transport, fmt.Sprintf("build request for %s", pageURL), err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, apperror.Wrap(apperror.Transport, fmt.Sprintf("get %s", pageURL), err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, apperror.New(apperror.Transport, fmt.Sprintf("%s returned HTTP %d", pageURL, res.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, apperror.Wrap(apperror.Transport, fmt.Sprintf("parse page for %s", symbol), err)
	}
	return doc, nil
}
