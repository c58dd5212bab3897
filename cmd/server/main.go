package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gstinvoice/internal/config"
	"gstinvoice/internal/email/noop"
	"gstinvoice/internal/email/ses"
	"gstinvoice/internal/handler"
	"gstinvoice/internal/logger"
	"gstinvoice/internal/port"
	"gstinvoice/internal/render"
	"gstinvoice/internal/repository/postgres"
	"gstinvoice/internal/router"
	"gstinvoice/internal/service"
	s3storage "gstinvoice/internal/storage/s3"
	"gstinvoice/internal/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		ServiceName: "gstinvoice",
		Environment: cfg.Server.Environment,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	entityRepo := postgres.NewEntityRepo(db)
	productRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)

	// Initialize storage; PDFs are only archived when a bucket is configured
	var storage port.ObjectStorage
	var storagePing handler.Pinger
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3, log)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		storagePing = handler.PingFunc(storage.Ping)
	} else {
		log.Warn("s3 bucket not configured, invoice PDFs will not be archived")
	}

	emailSender, err := newEmailSender(ctx, cfg.Email, log)
	if err != nil {
		return err
	}

	// Initialize services
	entitySvc := service.NewEntityService(entityRepo, log)
	importSvc := service.NewImportService(entityRepo, productRepo, orderRepo, cfg.Invoice, cfg.Import, log)
	invoiceSvc := service.NewInvoiceService(service.InvoiceServiceDeps{
		Entities:      entityRepo,
		Orders:        orderRepo,
		Invoices:      invoiceRepo,
		Storage:       storage,
		Email:         emailSender,
		Renderer:      render.New(),
		Auditor:       validator.NewEngine(validator.NewDefaultRegistry()),
		Config:        cfg.Invoice,
		PresignExpiry: time.Duration(cfg.S3.PresignExpiry) * time.Second,
	}, log)

	var worker *service.InvoiceQueueWorker
	if cfg.Queue.Enabled {
		worker = service.NewInvoiceQueueWorker(orderRepo, invoiceSvc, service.InvoiceQueueConfig{
			PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
			Concurrency:  cfg.Queue.Concurrency,
			Lease:        time.Duration(cfg.Queue.LeaseSecs) * time.Second,
		}, log)
		go worker.Start(ctx)
	}

	// Setup router
	r := router.Setup(router.Handlers{
		Health:  handler.NewHealthHandler(db, storagePing),
		Entity:  handler.NewEntityHandler(entitySvc),
		Import:  handler.NewImportHandler(importSvc),
		Invoice: handler.NewInvoiceHandler(invoiceSvc),
	}, cfg.CORS.AllowedOrigins, log)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if worker != nil {
		worker.Wait()
	}
	return nil
}

func newEmailSender(ctx context.Context, cfg config.EmailConfig, log *zap.Logger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := ses.NewSESSender(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "", "noop":
		return noop.NewNoopSender(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
