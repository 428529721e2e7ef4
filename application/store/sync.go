package store

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// defaultSyncTimeout bounds a single remote write
const defaultSyncTimeout = 15 * time.Second

// syncRunner dispatches the remote half of an optimistic mutation as a
// tracked background task. Local state never waits on these; failures
// are logged, not retried and not rolled back. Close cancels everything
// still in flight and waits, so teardown never leaves stray writes.
type syncRunner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      conc.WaitGroup
	logger  *zap.Logger
	timeout time.Duration
}

func newSyncRunner(logger *zap.Logger) *syncRunner {
	ctx, cancel := context.WithCancel(context.Background())
	return &syncRunner{
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
		timeout: defaultSyncTimeout,
	}
}

// Go runs one remote mutation in the background
func (r *syncRunner) Go(operation string, fn func(ctx context.Context) error) {
	r.wg.Go(func() {
		ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			r.logger.Warn("remote sync failed",
				zap.String("operation", operation),
				zap.Error(err),
			)
		}
	})
}

// Close cancels in-flight tasks and waits for them to finish
func (r *syncRunner) Close() {
	r.cancel()
	if recovered := r.wg.WaitAndRecover(); recovered != nil {
		r.logger.Error("sync task panicked", zap.Any("panic", recovered.Value))
	}
}
