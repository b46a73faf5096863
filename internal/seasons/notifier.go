package seasons

import (
	"sync"
	"sync/atomic"

	"github.com/chrissnell/seasonswap/internal/season"
	"go.uber.org/zap"
)

// DefaultNotifyQueue is the number of transitions buffered for a slow consumer.
const DefaultNotifyQueue = 16

// asyncNotifier hands transitions to the downstream notifier on its own goroutine so the tracker
// never waits on a consumer. A full queue drops the transition.
type asyncNotifier struct {
	next   season.Notifier
	logger *zap.SugaredLogger

	mu     sync.RWMutex
	ch     chan season.Transition
	closed bool
	done   chan struct{}

	last    atomic.Pointer[season.Transition]
	count   atomic.Uint64
	dropped atomic.Uint64
}

func newAsyncNotifier(next season.Notifier, queue int, logger *zap.SugaredLogger) *asyncNotifier {
	if queue <= 0 {
		queue = DefaultNotifyQueue
	}
	n := &asyncNotifier{
		next:   next,
		logger: logger,
		ch:     make(chan season.Transition, queue),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *asyncNotifier) SeasonChanged(t season.Transition) {
	n.last.Store(&t)
	n.count.Add(1)

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	select {
	case n.ch <- t:
	default:
		n.dropped.Add(1)
		n.logger.Warnw("season transition notification dropped, consumer is not keeping up",
			"previous", t.Previous.String(), "current", t.Current.String())
	}
}

func (n *asyncNotifier) run() {
	defer close(n.done)
	for t := range n.ch {
		n.logger.Infof("season changed from %s to %s (override: %v)", t.Previous, t.Current, t.OverrideDriven)
		if n.next != nil {
			n.next.SeasonChanged(t)
		}
	}
}

// lastTransition returns the most recent transition, including dropped ones.
func (n *asyncNotifier) lastTransition() (season.Transition, bool) {
	if t := n.last.Load(); t != nil {
		return *t, true
	}
	return season.Transition{}, false
}

// close stops accepting transitions and waits for queued ones to be delivered.
func (n *asyncNotifier) close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.ch)
	n.mu.Unlock()
	<-n.done
}
