package signal

import (
	"context"
	"os"
	osSignal "os/signal"
)

// NotifierWithContext calls the `notifyFn` callback function every time one of the
// given signals is received, until the given context is done.
func NotifierWithContext(ctx context.Context, notifyFn func(sig os.Signal), sigs ...os.Signal) {
	sigCh := make(chan os.Signal, 1)
	osSignal.Notify(sigCh, sigs...)

	go func() {
		defer osSignal.Stop(sigCh)

		for {
			select {
			case sig := <-sigCh:
				notifyFn(sig)
			case <-ctx.Done():
				return
			}
		}
	}()
}
