// Package ufcstats scrapes ufcstats.com and feeds the importer.
// The site renders its statistics tables server-side but blocks plain HTTP
// clients, so pages are fetched through a headless browser.
package ufcstats

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	// BaseURL of the statistics site
	BaseURL = "http://ufcstats.com"

	// EventListURL lists completed events, paginated via ?page=N
	EventListURL = BaseURL + "/statistics/events/completed"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to prevent rate limiting
	MinRequestInterval = 2 * time.Second
)

// Client fetches ufcstats.com pages with rate limiting.
type Client struct {
	lastRequest time.Time
	interval    time.Duration

	// Chromedp context for headless browser
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a new ufcstats scraper client.
func NewClient() (*Client, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		lastRequest: time.Time{},
		interval:    MinRequestInterval,
		allocCtx:    allocCtx,
		cancel:      cancel,
	}, nil
}

// Close releases the browser allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// FetchEventList fetches one page of the completed-events listing.
func (c *Client) FetchEventList(ctx context.Context, page int) (*goquery.Document, error) {
	url := EventListURL
	if page > 1 {
		url = fmt.Sprintf("%s?page=%d", EventListURL, page)
	}
	return c.fetchDocument(ctx, url)
}

// FetchPage fetches an arbitrary ufcstats.com URL (event, fighter, or fight
// detail page).
func (c *Client) FetchPage(ctx context.Context, url string) (*goquery.Document, error) {
	return c.fetchDocument(ctx, url)
}

func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	html, err := c.fetchWithRateLimit(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}
	return doc, nil
}

// fetchWithRateLimit fetches content with automatic rate limiting.
func (c *Client) fetchWithRateLimit(ctx context.Context, url string) (string, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			waitTime := c.interval - elapsed
			log.Printf("Rate limiting: waiting %v before next request", waitTime)
			time.Sleep(waitTime)
		}
	}

	html, err := c.fetch(ctx, url)
	c.lastRequest = time.Now()

	return html, err
}

// fetch performs the actual page load using chromedp.
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // Allow tables to render
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)

	if err != nil {
		return "", fmt.Errorf("chromedp error fetching %s: %w", url, err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty page from %s", url)
	}

	return htmlContent, nil
}
