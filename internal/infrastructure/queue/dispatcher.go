package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/api/metrics"
	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	maxAttempts    = 3
	retryBackoff   = 200 * time.Millisecond
)

// Deduper remembers event keys that were already recorded.
type Deduper interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// Dispatcher routes application events to a fixed set of workers using
// consistent hashing on the application id, so the events of one application
// are recorded in the order they were published.
type Dispatcher struct {
	workers  []chan domain.ApplicationEvent
	recorder ports.ApplicationEventRecorder
	dedup    Deduper
	log      zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. dedup may be nil.
func NewDispatcher(numWorkers int, recorder ports.ApplicationEventRecorder, dedup Deduper, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.ApplicationEvent, numWorkers),
		recorder: recorder,
		dedup:    dedup,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ApplicationEvent, channelBuffer)
	}
	return d
}

var _ ports.ApplicationEventPublisher = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers exit when ctx is cancelled
// or after Close once their channel is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands the event to the worker responsible for its application.
// It never blocks: when the worker is saturated the event is dropped and logged.
func (d *Dispatcher) Publish(event domain.ApplicationEvent) {
	metrics.ApplicationTransitionsTotal.WithLabelValues(string(event.From), string(event.To)).Inc()

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("application_id", event.ApplicationID).Msg("dispatcher closed, audit event dropped")
		return
	}

	idx := d.shardIndex(event.ApplicationID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Error().
			Str("application_id", event.ApplicationID).
			Str("to", string(event.To)).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// Close stops accepting events and waits until the workers drained their
// queues or ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an application id deterministically to a worker index.
func (d *Dispatcher) shardIndex(applicationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(applicationID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ApplicationEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.handle(ctx, id, event)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, worker int, event domain.ApplicationEvent) {
	start := time.Now()
	key := eventKey(event)

	if d.dedup != nil {
		dup, err := d.dedup.IsDuplicate(ctx, key)
		if err != nil {
			d.log.Warn().Err(err).Str("key", key).Msg("dedup check failed, recording anyway")
		} else if dup {
			metrics.AuditEventsTotal.WithLabelValues("duplicate").Inc()
			return
		}
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = d.recorder.Record(ctx, event); err == nil {
			break
		}
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				attempt = maxAttempts
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}
	}

	if err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		metrics.AuditRecordDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("application_id", event.ApplicationID).
			Str("to", string(event.To)).
			Int("worker_id", worker).
			Msg("audit event recording failed")
		return
	}

	if d.dedup != nil {
		if err := d.dedup.Mark(ctx, key); err != nil {
			d.log.Warn().Err(err).Str("key", key).Msg("dedup mark failed")
		}
	}
	metrics.AuditEventsTotal.WithLabelValues("recorded").Inc()
	metrics.AuditRecordDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
}

// eventKey identifies a transition. Statuses never repeat for one
// application, so the target status is enough to make it unique.
func eventKey(e domain.ApplicationEvent) string {
	return e.ApplicationID + ":" + string(e.From) + ":" + string(e.To)
}
