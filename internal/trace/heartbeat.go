package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits liveness events while a long directory run is in
// progress. Heartbeats with no span ends in between point at a stuck worker.
type Heartbeat struct {
	done chan struct{}
	stop sync.Once
	wg   sync.WaitGroup
}

// StartHeartbeat returns nil when tracing is off or interval <= 0.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{done: make(chan struct{})}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.beat(t, interval)
	}()
	return h
}

func (h *Heartbeat) beat(t Tracer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	for n := 1; ; n++ {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    goroutineID(),
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d after %s", n, now.Sub(start).Round(time.Millisecond)),
			})
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine. Nil-safe and idempotent.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stop.Do(func() { close(h.done) })
	h.wg.Wait()
}
