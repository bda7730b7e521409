package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultFirstPage is the public catalog's first listing.
const DefaultFirstPage = "https://pokeapi.co/api/v2/pokemon?limit=20"

// maxBodyBytes caps a single response body. Detail payloads are ~300KB.
const maxBodyBytes = 8 << 20

const userAgent = "bestiary/0.1 (+https://github.com/abelbrown/bestiary)"

// Observer is notified about every finished request. Implementations must be
// goroutine-safe: DetailFetched is called from the fan-out goroutines.
type Observer interface {
	PageFetched(ref string, items int, dur time.Duration, err error)
	DetailFetched(url string, dur time.Duration, err error)
}

// Observers fans a notification out to several observers.
type Observers []Observer

func (o Observers) PageFetched(ref string, items int, dur time.Duration, err error) {
	for _, obs := range o {
		obs.PageFetched(ref, items, dur, err)
	}
}

func (o Observers) DetailFetched(url string, dur time.Duration, err error) {
	for _, obs := range o {
		obs.DetailFetched(url, dur, err)
	}
}

type nopObserver struct{}

func (nopObserver) PageFetched(string, int, time.Duration, error) {}
func (nopObserver) DetailFetched(string, time.Duration, error)    {}

// Client fetches and resolves catalog pages. No caching, no retries.
type Client struct {
	http        *http.Client
	detailLimit int
	latency     time.Duration
	observer    Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithDetailConcurrency bounds how many detail requests run at once.
// Zero starts every detail request together.
func WithDetailConcurrency(n int) Option {
	return func(c *Client) { c.detailLimit = n }
}

// WithLatency delays every page fetch by d before the listing request.
func WithLatency(d time.Duration) Option {
	return func(c *Client) { c.latency = d }
}

// WithObserver attaches request instrumentation.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewClient creates a Client. The default HTTP timeout is 15 seconds.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage retrieves the listing at ref and the details of every listed item.
//
// Detail requests start together and are joined all-or-nothing: the first
// failure cancels the rest and FetchPage returns a *NetworkError with no
// partial page. Items keep the listing order regardless of completion order.
func (c *Client) FetchPage(ctx context.Context, ref string) (Page, error) {
	if ref == "" {
		return Page{}, ErrNoPageRef
	}

	start := time.Now()
	page, err := c.fetchPage(ctx, ref)
	c.observer.PageFetched(ref, len(page.Items), time.Since(start), err)
	return page, err
}

func (c *Client) fetchPage(ctx context.Context, ref string) (Page, error) {
	if c.latency > 0 {
		t := time.NewTimer(c.latency)
		select {
		case <-ctx.Done():
			t.Stop()
			return Page{}, &NetworkError{Op: "list", URL: ref, Err: ctx.Err()}
		case <-t.C:
		}
	}

	base, err := url.Parse(ref)
	if err != nil {
		return Page{}, &NetworkError{Op: "list", URL: ref, Err: err}
	}

	var idx listing
	if err := c.getJSON(ctx, "list", ref, &idx); err != nil {
		return Page{}, err
	}

	items := make([]Item, len(idx.Results))
	g, gctx := errgroup.WithContext(ctx)
	if c.detailLimit > 0 {
		g.SetLimit(c.detailLimit)
	}
	for i, entry := range idx.Results {
		detailURL := resolve(base, entry.URL)
		g.Go(func() error {
			start := time.Now()
			var d detail
			err := c.getJSON(gctx, "detail", detailURL, &d)
			c.observer.DetailFetched(detailURL, time.Since(start), err)
			if err != nil {
				return err
			}
			// Same-position slot keeps listing order.
			items[i] = d.toItem()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Page{}, err
	}

	page := Page{Items: items, Total: idx.Count}
	if idx.Next != nil {
		page.Next = *idx.Next
	}
	return page, nil
}

// getJSON GETs u, decodes the body into v and validates it.
func (c *Client) getJSON(ctx context.Context, op, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &NetworkError{Op: op, URL: u, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return &NetworkError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if err := validate.Struct(v); err != nil {
		return &NetworkError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed body: %w", err)}
	}
	return nil
}

// resolve makes ref absolute against base. Unparseable refs pass through and
// fail at request time.
func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
