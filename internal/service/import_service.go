package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstinvoice/internal/config"
	"gstinvoice/internal/domain"
	"gstinvoice/internal/port"
	"gstinvoice/internal/shopify"
)

// ImportInput is an uploaded storefront export.
type ImportInput struct {
	EntityID uuid.UUID
	FileName string
	Size     int64
	Body     io.Reader
}

// ImportService turns storefront exports into catalogue products and
// pending orders.
type ImportService interface {
	ImportOrders(ctx context.Context, input *ImportInput) (*domain.ImportResult, error)
	ImportProducts(ctx context.Context, input *ImportInput) (*domain.ImportResult, error)
	ListOrders(ctx context.Context, entityID uuid.UUID, status domain.OrderStatus, offset, limit int) ([]domain.Order, int, error)
	ListProducts(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]domain.Product, int, error)
}

type importService struct {
	entityRepo  port.EntityRepository
	productRepo port.ProductRepository
	orderRepo   port.OrderRepository
	invoiceCfg  config.InvoiceConfig
	importCfg   config.ImportConfig
	now         func() time.Time
	log         *zap.Logger
}

// NewImportService creates a new ImportService implementation.
func NewImportService(
	entityRepo port.EntityRepository,
	productRepo port.ProductRepository,
	orderRepo port.OrderRepository,
	invoiceCfg config.InvoiceConfig,
	importCfg config.ImportConfig,
	log *zap.Logger,
) ImportService {
	return &importService{
		entityRepo:  entityRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		invoiceCfg:  invoiceCfg,
		importCfg:   importCfg,
		now:         time.Now,
		log:         log.Named("importService"),
	}
}

func (s *importService) ImportOrders(ctx context.Context, input *ImportInput) (*domain.ImportResult, error) {
	table, err := s.readTable(ctx, input)
	if err != nil {
		return nil, err
	}

	batch, err := shopify.ParseOrders(table, s.options(input.EntityID), s.catalog(ctx, input.EntityID))
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{
		Kind:        domain.ImportKindOrders,
		FileName:    input.FileName,
		TotalRows:   batch.TotalRows,
		SkippedRows: batch.SkippedRows,
		Errors:      batch.Errors,
	}
	for i := range batch.Orders {
		order := &batch.Orders[i]
		created, err := s.orderRepo.Create(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("storing order %s: %w", order.OrderNumber, err)
		}
		if created {
			result.Imported++
		} else {
			result.Duplicates++
		}
	}
	if result.Errors == nil {
		result.Errors = []domain.RowError{}
	}

	s.log.Info("orders imported",
		zap.String("entity_id", input.EntityID.String()),
		zap.String("file", input.FileName),
		zap.Int("rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("row_errors", len(result.Errors)),
	)
	return result, nil
}

func (s *importService) ImportProducts(ctx context.Context, input *ImportInput) (*domain.ImportResult, error) {
	table, err := s.readTable(ctx, input)
	if err != nil {
		return nil, err
	}

	batch, err := shopify.ParseProducts(table, s.options(input.EntityID))
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{
		Kind:        domain.ImportKindProducts,
		FileName:    input.FileName,
		TotalRows:   batch.TotalRows,
		SkippedRows: batch.SkippedRows,
		Errors:      batch.Errors,
	}
	for i := range batch.Products {
		if err := s.productRepo.Upsert(ctx, &batch.Products[i]); err != nil {
			return nil, fmt.Errorf("storing product %s: %w", batch.Products[i].SKU, err)
		}
		result.Imported++
	}
	if result.Errors == nil {
		result.Errors = []domain.RowError{}
	}

	s.log.Info("products imported",
		zap.String("entity_id", input.EntityID.String()),
		zap.String("file", input.FileName),
		zap.Int("imported", result.Imported),
		zap.Int("row_errors", len(result.Errors)),
	)
	return result, nil
}

func (s *importService) ListOrders(ctx context.Context, entityID uuid.UUID, status domain.OrderStatus, offset, limit int) ([]domain.Order, int, error) {
	return s.orderRepo.ListByEntity(ctx, entityID, status, offset, limit)
}

func (s *importService) ListProducts(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]domain.Product, int, error) {
	return s.productRepo.ListByEntity(ctx, entityID, offset, limit)
}

// readTable checks the entity, file type and size before parsing the upload.
func (s *importService) readTable(ctx context.Context, input *ImportInput) (*shopify.Table, error) {
	if _, err := s.entityRepo.GetByID(ctx, input.EntityID); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.FileName)), ".")
	fileType, ok := domain.AllowedImportExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	body := input.Body
	if maxBytes := s.importCfg.MaxFileSizeMB << 20; maxBytes > 0 {
		if input.Size > maxBytes {
			return nil, domain.ErrFileTooLarge
		}
		data, err := io.ReadAll(io.LimitReader(input.Body, maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}
		if int64(len(data)) > maxBytes {
			return nil, domain.ErrFileTooLarge
		}
		body = bytes.NewReader(data)
	}

	table, err := shopify.ReadTable(body, fileType)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFileType) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImportFile, err)
	}
	return table, nil
}

func (s *importService) options(entityID uuid.UUID) shopify.Options {
	return shopify.Options{
		EntityID:         entityID,
		DefaultGSTRate:   s.invoiceCfg.DefaultGSTRate,
		PricesIncludeTax: s.invoiceCfg.PricesIncludeTax,
		DefaultUnit:      s.invoiceCfg.DefaultUnit,
		Currency:         s.invoiceCfg.Currency,
		MaxRows:          s.importCfg.MaxRows,
		Now:              s.now,
	}
}

// catalog looks products up by SKU once per import. Lookup failures are
// treated as a missing product so the row falls back to its own columns.
func (s *importService) catalog(ctx context.Context, entityID uuid.UUID) shopify.Catalog {
	cache := map[string]*domain.Product{}
	return func(sku string) *domain.Product {
		if sku == "" {
			return nil
		}
		if p, ok := cache[sku]; ok {
			return p
		}
		p, err := s.productRepo.GetBySKU(ctx, entityID, sku)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.log.Warn("catalogue lookup failed", zap.String("sku", sku), zap.Error(err))
			}
			p = nil
		}
		cache[sku] = p
		return p
	}
}
