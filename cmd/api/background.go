package main

import (
	"context"
	"time"
)

// background runs fn on its own goroutine, recovering panics so a
// notification failure can never take the request loop down.
func (app *application) background(fn func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background task panicked", "error", err)
			}
		}()
		fn()
	}()
}

func backgroundContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// warmCacheEvery keeps the playground cache warm and preloads the first
// image of each approved playground, so mobile clients hit a primed CDN.
func (app *application) warmCacheEvery(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		app.warmCache()

		for range ticker.C {
			app.warmCache()
		}
	}()
}

func (app *application) warmCache() {
	ctx, cancel := backgroundContext()
	defer cancel()

	list, usedFallback, err := app.cache.GetAll(ctx)
	if err != nil {
		app.logger.Errorw("cache warmup failed", "error", err)
		return
	}
	if usedFallback {
		app.logger.Warnw("cache warmup served fallback data")
		return
	}

	urls := make([]string, 0, len(list))
	for _, pg := range list {
		if len(pg.Images) > 0 {
			urls = append(urls, pg.Images[0].URL)
		}
	}
	app.preloader.PreloadBatches(ctx, urls, 3)

	app.logger.Infow("cache warmed", "playgrounds", len(list), "preloaded_images", len(urls))
}
