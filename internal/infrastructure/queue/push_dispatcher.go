package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/api/metrics"
	"github.com/askstack/qa-platform/internal/core/domain"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	publishTimeout = 3 * time.Second
)

// Publisher delivers a push event to the recipient's real-time channel.
type Publisher interface {
	Publish(ctx context.Context, recipientID string, event domain.PushEvent) error
}

type pushJob struct {
	recipientID string
	event       domain.PushEvent
}

// PushDispatcher routes push events to a fixed set of workers using consistent
// hashing on the recipient ID, so events for one recipient are published in
// the order they were pushed.
type PushDispatcher struct {
	workers   []chan pushJob
	publisher Publisher
	log       zerolog.Logger
}

// NewPushDispatcher creates a PushDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewPushDispatcher(numWorkers int, publisher Publisher, log zerolog.Logger) *PushDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &PushDispatcher{
		workers:   make([]chan pushJob, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan pushJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *PushDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Push enqueues an event for its recipient. It never blocks: when the shard
// is full the event is dropped.
func (d *PushDispatcher) Push(recipientID string, event domain.PushEvent) {
	idx := d.shardIndex(recipientID)
	select {
	case d.workers[idx] <- pushJob{recipientID: recipientID, event: event}:
		metrics.PushQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.PushDroppedTotal.Inc()
		d.log.Warn().
			Str("recipient_id", recipientID).
			Int("worker_id", idx).
			Msg("push queue full, event dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *PushDispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *PushDispatcher) runWorker(ctx context.Context, id int, ch <-chan pushJob) {
	depth := metrics.PushQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.publish(ctx, id, job)
		}
	}
}

func (d *PushDispatcher) publish(ctx context.Context, workerID int, job pushJob) {
	start := time.Now()
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := d.publisher.Publish(pubCtx, job.recipientID, job.event)
	metrics.PushDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PushPublishedTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("recipient_id", job.recipientID).
			Int("worker_id", workerID).
			Msg("push publish failed")
		return
	}
	metrics.PushPublishedTotal.WithLabelValues("ok").Inc()
}
