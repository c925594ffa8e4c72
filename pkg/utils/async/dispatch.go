package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/utils/apperr"
)

// Dispatch runs handler in a new goroutine detached from the cancellation of
// ctx, keeping its logger. Errors and panics are logged. The returned
// channel is closed when handler returns.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) <-chan struct{} {
	bgCtx := ctxlog.With(context.Background(), ctxlog.From(ctx).With("task", task))
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				apperr.Handle(bgCtx, goerr.New("panic in background task",
					goerr.V("recover", r),
					goerr.V("stack", string(debug.Stack()))))
			}
		}()

		if err := handler(bgCtx); err != nil {
			apperr.Handle(bgCtx, goerr.Wrap(err, "background task failed", goerr.V("task", task)))
		}
	}()

	return done
}
