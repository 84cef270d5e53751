package indexer

import (
	"context"
	"log/slog"
)

// Refresher runs index rebuilds as a detached background task. Requests
// are enqueued without waiting; a full queue drops the request, since a
// rebuild already pending covers it. Errors are logged and dropped.
type Refresher struct {
	pipeline *Pipeline
	logger   *slog.Logger
	queue    chan string
	done     chan struct{}
}

// NewRefresher starts the background worker. ctx bounds the lifetime of
// every rebuild the worker runs.
func NewRefresher(ctx context.Context, pipeline *Pipeline, logger *slog.Logger) *Refresher {
	r := &Refresher{
		pipeline: pipeline,
		logger:   logger,
		queue:    make(chan string, 16),
		done:     make(chan struct{}),
	}
	go r.run(ctx)
	return r
}

// Enqueue requests a rebuild of one collection without blocking the caller.
func (r *Refresher) Enqueue(collection string) {
	select {
	case r.queue <- collection:
	default:
		r.logger.Warn("refresh queue full, dropping request", "collection", collection)
	}
}

// Close stops accepting work and waits for the worker to drain.
func (r *Refresher) Close() {
	close(r.queue)
	<-r.done
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)
	for collection := range r.queue {
		if ctx.Err() != nil {
			return
		}
		if err := r.pipeline.Reindex(ctx, collection); err != nil {
			r.logger.Error("background reindex failed", "collection", collection, "error", err)
		}
	}
}
