package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gstinvoice/internal/port"
)

// draftTimeout bounds a single order draft.
const draftTimeout = time.Minute

// InvoiceQueueConfig holds settings for the invoice queue worker.
type InvoiceQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	// Lease is how long an order may sit in drafting before another poll
	// reclaims it. It must exceed the draft timeout.
	Lease time.Duration
}

// InvoiceQueueWorker polls for pending imported orders and drafts an
// invoice for each.
type InvoiceQueueWorker struct {
	orderRepo  port.OrderRepository
	invoiceSvc InvoiceService
	cfg        InvoiceQueueConfig
	log        *zap.Logger
	wg         sync.WaitGroup
}

// NewInvoiceQueueWorker creates a new InvoiceQueueWorker.
func NewInvoiceQueueWorker(orderRepo port.OrderRepository, invoiceSvc InvoiceService, cfg InvoiceQueueConfig, log *zap.Logger) *InvoiceQueueWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.Lease <= draftTimeout {
		cfg.Lease = 5 * time.Minute
	}
	return &InvoiceQueueWorker{
		orderRepo:  orderRepo,
		invoiceSvc: invoiceSvc,
		cfg:        cfg,
		log:        log.Named("invoiceQueueWorker"),
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight drafts have finished.
func (w *InvoiceQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	w.log.Info("started",
		zap.Duration("poll", w.cfg.PollInterval),
		zap.Int("concurrency", w.cfg.Concurrency),
		zap.Duration("lease", w.cfg.Lease))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("shutting down, waiting for in-flight drafts")
			w.wg.Wait()
			w.log.Info("shutdown complete")
			return
		case <-ticker.C:
			w.poll(ctx, sem)
		}
	}
}

// poll claims as many pending or abandoned orders as there are free slots
// and drafts them concurrently.
func (w *InvoiceQueueWorker) poll(ctx context.Context, sem chan struct{}) {
	available := w.cfg.Concurrency - len(sem)
	if available <= 0 {
		return
	}

	orders, err := w.orderRepo.ClaimPending(ctx, available, time.Now().Add(-w.cfg.Lease))
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("claiming pending orders", zap.Error(err))
		}
		return
	}

	for i := range orders {
		order := orders[i]

		sem <- struct{}{}
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			defer func() { <-sem }()

			// Detached from the poll context so a draft in progress
			// completes during shutdown.
			draftCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
			defer cancel()

			detail, err := w.invoiceSvc.DraftOrder(draftCtx, &order)
			if err != nil {
				w.log.Warn("drafting order failed",
					zap.String("order_id", order.ID.String()),
					zap.String("order_number", order.OrderNumber),
					zap.Error(err))
				return
			}
			w.log.Info("order drafted",
				zap.String("order_number", order.OrderNumber),
				zap.String("invoice_id", detail.Invoice.ID.String()))
		}()
	}
}

// Wait blocks until every dispatched draft has finished.
func (w *InvoiceQueueWorker) Wait() {
	w.wg.Wait()
}
