package metrics

import (
	"context"

	coremetrics "github.com/betsim/betroute/core/metrics"
	"github.com/betsim/betroute/internal/eventbus"
)

// FlushEvent is a synchronization marker. The collector closes Done once
// every event published before it has been handed to the sink, letting a
// producer wait for its results to be recorded before shutting down.
type FlushEvent struct {
	Done chan struct{}
}

// StartEventCollector subscribes to the event bus and forwards staging
// results to the sink. It stops when the context is canceled or the bus is
// closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case coremetrics.StagingResult:
					_ = sink.RecordStaging(e)
				case FlushEvent:
					if e.Done != nil {
						close(e.Done)
					}
				}
			}
		}
	}()
}
