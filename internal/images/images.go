// Package images resolves playground image URLs and preloads them. A
// broken or missing URL is never an error: something displayable always
// comes back.
package images

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const fallbackBase = "https://source.unsplash.com/random/800x600/?playground"

// Candidate is the minimal image shape the resolver needs.
type Candidate struct {
	URL string
}

// nowMillis is swapped out in tests.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// ResolveURL picks a usable URL from the candidate list at index. Absolute
// http(s) URLs pass through, site-relative paths are resolved against
// origin, anything else falls back to a generated image keyed by
// fallbackKey. Every result carries a cache-busting parameter so a broken
// cached image is never served twice.
func ResolveURL(candidates []Candidate, index int, origin, fallbackKey string) string {
	if index < 0 || index >= len(candidates) || candidates[index].URL == "" {
		return FallbackURL(fallbackKey)
	}

	url := candidates[index].URL

	if strings.HasPrefix(url, "/") {
		url = strings.TrimRight(origin, "/") + url
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return FallbackURL(fallbackKey)
	}

	return withNocache(url)
}

// FallbackURL generates a stand-in image URL. The key keeps the image
// referentially stable per entity within a session; the nocache parameter
// still defeats stale browser caches.
func FallbackURL(key string) string {
	return fmt.Sprintf("%s&sig=%s&nocache=%d", fallbackBase, key, nowMillis())
}

func withNocache(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%snocache=%d", url, sep, nowMillis())
}

// Preloader warms remote images ahead of rendering.
type Preloader struct {
	client *http.Client
}

func NewPreloader(client *http.Client) *Preloader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Preloader{client: client}
}

// Preload fetches one image; a failed load is reported, never fatal.
func (p *Preloader) Preload(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// PreloadBatches loads images in fixed-size batches: all images within a
// batch load concurrently, the next batch does not start until the
// previous one fully settles. This bounds peak concurrent requests.
func (p *Preloader) PreloadBatches(ctx context.Context, urls []string, batchSize int) {
	if batchSize <= 0 {
		batchSize = 3
	}

	for start := 0; start < len(urls); start += batchSize {
		end := start + batchSize
		if end > len(urls) {
			end = len(urls)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, url := range urls[start:end] {
			url := url
			g.Go(func() error {
				p.Preload(gctx, url)
				return nil // failures settle the batch, they don't abort it
			})
		}
		_ = g.Wait()

		if ctx.Err() != nil {
			return
		}
	}
}
