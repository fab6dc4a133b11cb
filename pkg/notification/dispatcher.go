package notification

import (
	"fmt"
	"log/slog"
	"sync"
)

type task struct {
	noticeType NoticeType
	system     NotificationSystem
	data       NotificationData
}

// Dispatcher offloads notice delivery to a bounded worker queue so the
// triggering request is not blocked on network I/O. In synchronous mode
// delivery runs inline before Dispatch returns, which keeps failures
// directly observable during development.
type Dispatcher struct {
	manager *NotificationManager
	queue   chan task
	wg      sync.WaitGroup
	sync    bool

	mu     sync.RWMutex
	closed bool
}

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*dispatcherConfig)

type dispatcherConfig struct {
	workers     int
	queueSize   int
	synchronous bool
}

// WithWorkers sets the number of delivery workers
func WithWorkers(n int) DispatcherOption {
	return func(c *dispatcherConfig) {
		c.workers = n
	}
}

// WithQueueSize bounds the pending delivery queue
func WithQueueSize(n int) DispatcherOption {
	return func(c *dispatcherConfig) {
		c.queueSize = n
	}
}

// WithSynchronous makes Dispatch deliver inline instead of queueing
func WithSynchronous(sync bool) DispatcherOption {
	return func(c *dispatcherConfig) {
		c.synchronous = sync
	}
}

// NewDispatcher creates a Dispatcher over the given manager
func NewDispatcher(manager *NotificationManager, opts ...DispatcherOption) *Dispatcher {
	cfg := dispatcherConfig{
		workers:   2,
		queueSize: 64,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Dispatcher{
		manager: manager,
		sync:    cfg.synchronous,
	}

	if !d.sync {
		d.queue = make(chan task, cfg.queueSize)
		for i := 0; i < cfg.workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
	}

	return d
}

// Dispatch hands a notice to the delivery path. In asynchronous mode the
// returned error only reports a full queue; delivery failures surface in the
// operator log, never to the caller, since the triggering response may
// already be on the wire.
func (d *Dispatcher) Dispatch(noticeType NoticeType, system NotificationSystem, data NotificationData) error {
	if d.sync {
		return d.manager.Send(noticeType, system, data)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		slog.Error("Notification dispatcher closed, dropping notice", "notice_type", noticeType, "to", data.To)
		return fmt.Errorf("notification dispatcher closed")
	}

	select {
	case d.queue <- task{noticeType: noticeType, system: system, data: data}:
		return nil
	default:
		slog.Error("Notification queue full, dropping notice", "notice_type", noticeType, "to", data.To)
		return fmt.Errorf("notification queue full")
	}
}

// Close drains the queue and stops the workers. Notices dispatched after
// Close are dropped.
func (d *Dispatcher) Close() {
	if d.sync {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.queue {
		if err := d.manager.Send(t.noticeType, t.system, t.data); err != nil {
			slog.Error("Background notice delivery failed", "notice_type", t.noticeType, "to", t.data.To, "error", err)
		}
	}
}
