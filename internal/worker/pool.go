package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/infra"
)

const JobReceipt = "receipt"

// ErrQueueFull is returned when the dispatcher buffer has no room left.
var ErrQueueFull = errors.New("worker: cola de trabajos llena")

// Job is the envelope for every async task.
type Job struct {
	Type   string
	SaleID string
}

// ReceiptRenderer renders the receipt of a committed sale.
type ReceiptRenderer interface {
	SaleReceipt(ctx context.Context, saleID string) (string, error)
}

// Dispatcher queues jobs on a buffered channel consumed by the worker pool.
// Enqueueing never blocks the caller.
type Dispatcher struct {
	jobs    chan Job
	metrics *infra.Metrics
	wg      sync.WaitGroup
}

func NewDispatcher(buffer int, metrics *infra.Metrics) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{jobs: make(chan Job, buffer), metrics: metrics}
}

// EnqueueReceipt queues the receipt rendering of saleID.
func (d *Dispatcher) EnqueueReceipt(saleID string) error {
	return d.enqueue(Job{Type: JobReceipt, SaleID: saleID})
}

func (d *Dispatcher) enqueue(job Job) error {
	select {
	case d.jobs <- job:
		d.metrics.SetReceiptQueueDepth(len(d.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending reports the number of queued jobs.
func (d *Dispatcher) Pending() int { return len(d.jobs) }

// Wait blocks until every worker started by StartWorkerPool has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// StartWorkerPool launches numWorkers goroutines consuming the dispatcher.
// Workers stop when ctx is cancelled; queued jobs left at that point are dropped.
func StartWorkerPool(ctx context.Context, d *Dispatcher, renderer ReceiptRenderer, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		d.wg.Add(1)
		go func(id int) {
			defer d.wg.Done()
			runWorker(ctx, d, renderer, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, d *Dispatcher, renderer ReceiptRenderer, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		case job := <-d.jobs:
			d.metrics.SetReceiptQueueDepth(len(d.jobs))
			processJob(ctx, renderer, job)
		}
	}
}

func processJob(ctx context.Context, renderer ReceiptRenderer, job Job) {
	switch job.Type {
	case JobReceipt:
		path, err := renderer.SaleReceipt(ctx, job.SaleID)
		if err != nil {
			log.Error().Err(err).Str("sale_id", job.SaleID).Msg("receipt job failed")
			return
		}
		log.Info().Str("sale_id", job.SaleID).Str("path", path).Msg("receipt generated")
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type, dropped")
	}
}
