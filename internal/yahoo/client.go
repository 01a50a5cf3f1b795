package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/pretium/internal/models"
)

const (
	// DefaultBaseURL is the base URL for Yahoo Finance quote pages.
	DefaultBaseURL = "https://finance.yahoo.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is a desktop browser user agent; quote pages return a
	// stripped-down document to unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultRateInterval is the default minimum time between quote requests.
	DefaultRateInterval = time.Second
)

// Quote page selectors. The class names are generated by Yahoo's build and
// change when they redeploy; keep them in one place.
const (
	nameSelector          = "h1.yf-xxbei9"
	priceSelector         = "span.yf-ipw1h0"
	previousCloseSelector = `fin-streamer[data-field="regularMarketPreviousClose"]`
	marketCapSelector     = `fin-streamer[data-field="marketCap"]`
	volumeSelector        = `fin-streamer[data-field="regularMarketVolume"]`
)

// Client scrapes quote pages from Yahoo Finance.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets a custom user agent.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateInterval sets the minimum time between quote requests.
func WithRateInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		if interval > 0 {
			c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new quote page client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(DefaultRateInterval), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetQuote fetches and parses the quote page for a symbol. Fields missing
// from the page carry the "Not Found" sentinel; a page without a company
// name heading fails with NotFoundError.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.StockRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{RetryAfter: time.Second}
	}

	reqURL := fmt.Sprintf("%s/quote/%s", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	if c.logger != nil {
		c.logger.Debug().
			Str("symbol", symbol).
			Str("url", reqURL).
			Msg("Fetching quote page")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Symbol: symbol, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}

	name := doc.Find(nameSelector).First()
	if name.Length() == 0 {
		return nil, &NotFoundError{Symbol: symbol}
	}

	record := &models.StockRecord{
		Stock:         strings.TrimSpace(name.Text()),
		Symbol:        symbol,
		CurrentPrice:  textOrNotFound(doc, priceSelector),
		PreviousClose: textOrNotFound(doc, previousCloseSelector),
		MarketCap:     textOrNotFound(doc, marketCapSelector),
		Volume:        textOrNotFound(doc, volumeSelector),
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("symbol", symbol).
			Str("stock", record.Stock).
			Str("price", record.CurrentPrice).
			Msg("Parsed quote page")
	}

	return record, nil
}

func textOrNotFound(doc *goquery.Document, selector string) string {
	node := doc.Find(selector).First()
	if node.Length() == 0 {
		return models.NotFound
	}
	text := strings.TrimSpace(node.Text())
	if text == "" {
		return models.NotFound
	}
	return text
}
