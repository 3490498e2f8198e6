package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/api/metrics"
	"github.com/talentbridge/job-portal/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Revalidator refreshes the cached view of one identity.
type Revalidator interface {
	Revalidate(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error)
}

// Dispatcher runs background view revalidations on a fixed set of workers.
// Identities are sharded by id so refreshes of one identity never overlap.
type Dispatcher struct {
	workers     []chan domain.Identity
	revalidator Revalidator
	log         zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, revalidator Revalidator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:     make([]chan domain.Identity, numWorkers),
		revalidator: revalidator,
		log:         log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Identity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Schedule queues a revalidation without blocking. When the worker's buffer
// is full the request is dropped; the stale view keeps being served and the
// next lookup schedules again.
func (d *Dispatcher) Schedule(identity domain.Identity) {
	idx := d.shardIndex(identity.ID)
	select {
	case d.workers[idx] <- identity:
		metrics.RevalidationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.RevalidationsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("identity_id", identity.ID).Int("worker_id", idx).Msg("revalidation queue full, dropping")
	}
}

// shardIndex maps an identity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(identityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identityID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Identity) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case identity, ok := <-ch:
			if !ok {
				return
			}
			metrics.RevalidationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			_, err := d.revalidator.Revalidate(ctx, identity)
			metrics.RevalidationDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.RevalidationsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("identity_id", identity.ID).
					Int("worker_id", id).
					Msg("view revalidation failed")
				continue
			}
			metrics.RevalidationsTotal.WithLabelValues("ok").Inc()
		}
	}
}
