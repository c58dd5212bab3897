package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstinvoice/internal/config"
	"gstinvoice/internal/csvexport"
	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
	"gstinvoice/internal/numbering"
	"gstinvoice/internal/port"
	"gstinvoice/internal/render"
	"gstinvoice/internal/validator"
)

const exportPageSize = 500

// PreviewInput is a stateless build request. Nothing is persisted.
type PreviewInput struct {
	Seller           gst.Party
	Buyer            gst.Party
	Items            []gst.LineItem
	DocumentDiscount decimal.Decimal
}

// InvoiceInput is the DTO for creating or replacing a draft invoice. The
// seller is always the entity's current profile.
type InvoiceInput struct {
	EntityID         uuid.UUID
	Buyer            gst.Party
	Items            []gst.LineItem
	DocumentDiscount decimal.Decimal
	InvoiceDate      *time.Time
	Notes            string
}

// ExportInput selects the invoices written to a register export.
type ExportInput struct {
	EntityID uuid.UUID
	Status   domain.InvoiceStatus
	Format   domain.ExportFormat
}

// InvoiceDetail pairs a stored invoice with its computed amounts and, when
// requested, its audit report.
type InvoiceDetail struct {
	Invoice  *domain.Invoice   `json:"invoice,omitempty"`
	Computed *gst.Invoice      `json:"computed"`
	Audit    *validator.Report `json:"audit,omitempty"`
}

// AuditError is returned by Finalize when error-severity rules fail.
type AuditError struct {
	Report *validator.Report
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("%s: %d error(s)", domain.ErrInvoiceAuditFailed, len(e.Report.Errors))
}

// Is lets errors.Is match domain.ErrInvoiceAuditFailed.
func (e *AuditError) Is(target error) bool {
	return target == domain.ErrInvoiceAuditFailed
}

// InvoiceService defines the invoice lifecycle contract.
type InvoiceService interface {
	Preview(ctx context.Context, input *PreviewInput) (*InvoiceDetail, error)
	CreateManual(ctx context.Context, input *InvoiceInput) (*InvoiceDetail, error)
	CreateFromOrder(ctx context.Context, entityID, orderID uuid.UUID) (*InvoiceDetail, error)
	// DraftOrder drafts an invoice for an already loaded order and records
	// the outcome on the order.
	DraftOrder(ctx context.Context, order *domain.Order) (*InvoiceDetail, error)
	UpdateDraft(ctx context.Context, invoiceID uuid.UUID, input *InvoiceInput) (*InvoiceDetail, error)
	GetByID(ctx context.Context, entityID, invoiceID uuid.UUID) (*InvoiceDetail, error)
	List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error)
	Finalize(ctx context.Context, entityID, invoiceID uuid.UUID) (*InvoiceDetail, error)
	RenderHTML(ctx context.Context, entityID, invoiceID uuid.UUID) (string, error)
	RenderPDF(ctx context.Context, entityID, invoiceID uuid.UUID) ([]byte, error)
	DownloadURL(ctx context.Context, entityID, invoiceID uuid.UUID) (string, error)
	// Export writes the register to w and returns the download file name.
	Export(ctx context.Context, input *ExportInput, w io.Writer) (string, error)
}

// InvoiceServiceDeps groups the collaborators of the invoice service.
// Storage and Email may be nil.
type InvoiceServiceDeps struct {
	Entities      port.EntityRepository
	Orders        port.OrderRepository
	Invoices      port.InvoiceRepository
	Storage       port.ObjectStorage
	Email         port.EmailSender
	Renderer      render.Renderer
	Auditor       *validator.Engine
	Config        config.InvoiceConfig
	PresignExpiry time.Duration
}

type invoiceService struct {
	entityRepo  port.EntityRepository
	orderRepo   port.OrderRepository
	invoiceRepo port.InvoiceRepository
	storage     port.ObjectStorage
	email       port.EmailSender
	renderer    render.Renderer
	auditor     *validator.Engine
	cfg         config.InvoiceConfig
	expiry      time.Duration
	now         func() time.Time
	log         *zap.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(deps InvoiceServiceDeps, log *zap.Logger) InvoiceService {
	expiry := deps.PresignExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &invoiceService{
		entityRepo:  deps.Entities,
		orderRepo:   deps.Orders,
		invoiceRepo: deps.Invoices,
		storage:     deps.Storage,
		email:       deps.Email,
		renderer:    deps.Renderer,
		auditor:     deps.Auditor,
		cfg:         deps.Config,
		expiry:      expiry,
		now:         time.Now,
		log:         log.Named("invoiceService"),
	}
}

func (s *invoiceService) Preview(ctx context.Context, input *PreviewInput) (*InvoiceDetail, error) {
	inv, err := gst.Build(normalizeParty(input.Seller), normalizeParty(input.Buyer), input.Items, input.DocumentDiscount)
	if err != nil {
		return nil, err
	}
	return &InvoiceDetail{Computed: inv, Audit: s.auditor.Audit(ctx, inv)}, nil
}

func (s *invoiceService) CreateManual(ctx context.Context, input *InvoiceInput) (*InvoiceDetail, error) {
	entity, err := s.entityRepo.GetByID(ctx, input.EntityID)
	if err != nil {
		return nil, err
	}
	inv := &domain.Invoice{
		EntityID:         entity.ID,
		Status:           domain.InvoiceStatusDraft,
		Seller:           domain.PartySnapshot(entity.Party()),
		Buyer:            domain.PartySnapshot(normalizeParty(input.Buyer)),
		Items:            input.Items,
		DocumentDiscount: input.DocumentDiscount,
		InvoiceDate:      input.InvoiceDate,
		Notes:            input.Notes,
	}
	computed, err := computeDraft(inv)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.log.Info("draft invoice created",
		zap.String("entity_id", inv.EntityID.String()),
		zap.String("invoice_id", inv.ID.String()),
		zap.String("grand_total", gst.Fixed(inv.GrandTotal)),
	)
	return &InvoiceDetail{Invoice: inv, Computed: computed}, nil
}

func (s *invoiceService) CreateFromOrder(ctx context.Context, entityID, orderID uuid.UUID) (*InvoiceDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, entityID, orderID)
	if err != nil {
		return nil, err
	}
	return s.DraftOrder(ctx, order)
}

func (s *invoiceService) DraftOrder(ctx context.Context, order *domain.Order) (*InvoiceDetail, error) {
	if order.InvoiceID != nil {
		if order.Status != domain.OrderStatusInvoiced {
			s.markInvoiced(ctx, order.ID, *order.InvoiceID)
		}
		return nil, domain.ErrOrderAlreadyInvoiced
	}
	detail, err := s.draftOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrOrderAlreadyInvoiced) {
			// An earlier attempt created the invoice but never marked the
			// order, e.g. a worker that stopped before MarkInvoiced.
			existing, getErr := s.invoiceRepo.GetByOrderID(ctx, order.EntityID, order.ID)
			if getErr != nil {
				s.log.Error("loading existing invoice for order", zap.String("order_id", order.ID.String()), zap.Error(getErr))
				return nil, err
			}
			s.markInvoiced(ctx, order.ID, existing.ID)
			return nil, err
		}
		if markErr := s.orderRepo.MarkFailed(ctx, order.ID, err.Error()); markErr != nil {
			s.log.Error("marking order failed", zap.String("order_id", order.ID.String()), zap.Error(markErr))
		}
		return nil, err
	}
	if err := s.orderRepo.MarkInvoiced(ctx, order.ID, detail.Invoice.ID); err != nil {
		return nil, fmt.Errorf("marking order invoiced: %w", err)
	}
	return detail, nil
}

func (s *invoiceService) markInvoiced(ctx context.Context, orderID, invoiceID uuid.UUID) {
	if err := s.orderRepo.MarkInvoiced(ctx, orderID, invoiceID); err != nil {
		s.log.Error("marking order invoiced",
			zap.String("order_id", orderID.String()),
			zap.String("invoice_id", invoiceID.String()),
			zap.Error(err))
	}
}

func (s *invoiceService) draftOrder(ctx context.Context, order *domain.Order) (*InvoiceDetail, error) {
	entity, err := s.entityRepo.GetByID(ctx, order.EntityID)
	if err != nil {
		return nil, err
	}
	orderID := order.ID
	inv := &domain.Invoice{
		EntityID:         entity.ID,
		OrderID:          &orderID,
		Status:           domain.InvoiceStatusDraft,
		Seller:           domain.PartySnapshot(entity.Party()),
		Buyer:            domain.PartySnapshot(order.Buyer()),
		Items:            order.LineItems(),
		DocumentDiscount: order.DocumentDiscount,
		Notes:            "Order " + order.OrderNumber,
	}
	computed, err := computeDraft(inv)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.log.Info("draft invoice created from order",
		zap.String("entity_id", inv.EntityID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("invoice_id", inv.ID.String()),
	)
	return &InvoiceDetail{Invoice: inv, Computed: computed}, nil
}

func (s *invoiceService) UpdateDraft(ctx context.Context, invoiceID uuid.UUID, input *InvoiceInput) (*InvoiceDetail, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, input.EntityID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.IsFinal() {
		return nil, domain.ErrInvoiceFinalized
	}
	entity, err := s.entityRepo.GetByID(ctx, input.EntityID)
	if err != nil {
		return nil, err
	}

	inv.Seller = domain.PartySnapshot(entity.Party())
	inv.Buyer = domain.PartySnapshot(normalizeParty(input.Buyer))
	inv.Items = input.Items
	inv.DocumentDiscount = input.DocumentDiscount
	inv.InvoiceDate = input.InvoiceDate
	inv.Notes = input.Notes

	computed, err := computeDraft(inv)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateDraft(ctx, inv); err != nil {
		return nil, err
	}
	return &InvoiceDetail{Invoice: inv, Computed: computed}, nil
}

func (s *invoiceService) GetByID(ctx context.Context, entityID, invoiceID uuid.UUID) (*InvoiceDetail, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, entityID, invoiceID)
	if err != nil {
		return nil, err
	}
	computed, err := inv.Compute()
	if err != nil {
		return nil, fmt.Errorf("recomputing invoice %s: %w", inv.ID, err)
	}
	return &InvoiceDetail{Invoice: inv, Computed: computed, Audit: s.auditor.Audit(ctx, computed)}, nil
}

func (s *invoiceService) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, filter)
}

// Finalize audits the draft, assigns the next number and stores the PDF.
// The invoice is final once the number is assigned; a failed upload or
// email is logged and retried lazily by DownloadURL.
func (s *invoiceService) Finalize(ctx context.Context, entityID, invoiceID uuid.UUID) (*InvoiceDetail, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, entityID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.IsFinal() {
		return nil, domain.ErrInvoiceFinalized
	}
	entity, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	computed, err := inv.Compute()
	if err != nil {
		return nil, err
	}
	report := s.auditor.Audit(ctx, computed)
	if !report.Passed {
		s.log.Warn("finalize blocked by audit",
			zap.String("invoice_id", inv.ID.String()),
			zap.Int("errors", len(report.Errors)),
		)
		return nil, &AuditError{Report: report}
	}

	issuedAt := s.now()
	if inv.InvoiceDate != nil {
		issuedAt = *inv.InvoiceDate
	} else {
		inv.InvoiceDate = &issuedAt
	}
	inv.GrandTotal = gst.Round2(computed.Totals.GrandTotal)

	template := s.cfg.NumberTemplate
	if template == "" {
		template = numbering.DefaultTemplate
	}
	err = s.invoiceRepo.Finalize(ctx, inv, func(seq int64) (string, error) {
		return numbering.Format(template, entity.InvoicePrefix, issuedAt, seq)
	})
	if err != nil {
		return nil, err
	}
	computed.IsDraft = false
	computed.Number = *inv.InvoiceNumber

	s.log.Info("invoice finalized",
		zap.String("entity_id", entityID.String()),
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", *inv.InvoiceNumber),
		zap.String("grand_total", gst.Fixed(inv.GrandTotal)),
	)

	if s.storage != nil {
		if err := s.storePDF(ctx, entity, inv, computed); err != nil {
			s.log.Warn("storing invoice pdf failed", zap.String("invoice_id", inv.ID.String()), zap.Error(err))
		} else {
			s.notifyBuyer(ctx, inv, computed)
		}
	}

	return &InvoiceDetail{Invoice: inv, Computed: computed, Audit: report}, nil
}

func (s *invoiceService) RenderHTML(ctx context.Context, entityID, invoiceID uuid.UUID) (string, error) {
	entity, inv, computed, err := s.load(ctx, entityID, invoiceID)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderHTML(renderInput(entity, inv, computed))
}

// RenderPDF serves the stored copy of a final invoice when one exists and
// renders on demand otherwise.
func (s *invoiceService) RenderPDF(ctx context.Context, entityID, invoiceID uuid.UUID) ([]byte, error) {
	entity, inv, computed, err := s.load(ctx, entityID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.PDFKey != nil && s.storage != nil {
		data, err := s.storage.Download(ctx, *inv.PDFKey)
		if err == nil {
			return data, nil
		}
		s.log.Warn("stored pdf unavailable, rendering", zap.String("key", *inv.PDFKey), zap.Error(err))
	}
	return s.renderer.RenderPDF(renderInput(entity, inv, computed))
}

func (s *invoiceService) DownloadURL(ctx context.Context, entityID, invoiceID uuid.UUID) (string, error) {
	if s.storage == nil {
		return "", domain.ErrStorageDisabled
	}
	entity, inv, computed, err := s.load(ctx, entityID, invoiceID)
	if err != nil {
		return "", err
	}
	if !inv.IsFinal() {
		return "", domain.ErrInvoiceNotFinalized
	}
	if inv.PDFKey == nil {
		if err := s.storePDF(ctx, entity, inv, computed); err != nil {
			return "", err
		}
	}
	return s.storage.GetPresignedURL(ctx, *inv.PDFKey, s.expiry)
}

func (s *invoiceService) Export(ctx context.Context, input *ExportInput, w io.Writer) (string, error) {
	if input.Format != domain.ExportFormatCSV && input.Format != domain.ExportFormatXLSX {
		return "", domain.ErrUnsupportedExportType
	}
	entity, err := s.entityRepo.GetByID(ctx, input.EntityID)
	if err != nil {
		return "", err
	}

	var invoices []domain.Invoice
	filter := port.InvoiceFilter{EntityID: input.EntityID, Status: input.Status, Limit: exportPageSize}
	for {
		page, total, err := s.invoiceRepo.List(ctx, filter)
		if err != nil {
			return "", err
		}
		invoices = append(invoices, page...)
		filter.Offset += len(page)
		if len(page) == 0 || filter.Offset >= total {
			break
		}
	}

	switch input.Format {
	case domain.ExportFormatXLSX:
		if err := csvexport.WriteXLSX(w, invoices); err != nil {
			return "", err
		}
	default:
		if _, err := w.Write(csvexport.BOM); err != nil {
			return "", fmt.Errorf("writing bom: %w", err)
		}
		cw := csvexport.NewWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return "", err
		}
		if err := cw.WriteInvoices(invoices); err != nil {
			return "", err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return "", err
		}
	}

	s.log.Info("invoices exported",
		zap.String("entity_id", input.EntityID.String()),
		zap.String("format", string(input.Format)),
		zap.Int("count", len(invoices)),
	)
	return csvexport.BuildFilename(entity.Name, input.Format, s.now()), nil
}

func (s *invoiceService) load(ctx context.Context, entityID, invoiceID uuid.UUID) (*domain.Entity, *domain.Invoice, *gst.Invoice, error) {
	entity, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, nil, nil, err
	}
	inv, err := s.invoiceRepo.GetByID(ctx, entityID, invoiceID)
	if err != nil {
		return nil, nil, nil, err
	}
	computed, err := inv.Compute()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("recomputing invoice %s: %w", inv.ID, err)
	}
	return entity, inv, computed, nil
}

func (s *invoiceService) storePDF(ctx context.Context, entity *domain.Entity, inv *domain.Invoice, computed *gst.Invoice) error {
	pdf, err := s.renderer.RenderPDF(renderInput(entity, inv, computed))
	if err != nil {
		return err
	}
	key := pdfKey(inv)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(pdf),
		ContentType: "application/pdf",
		Size:        int64(len(pdf)),
		Metadata:    map[string]string{"invoice-number": computed.Number},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if err := s.invoiceRepo.SetPDFKey(ctx, inv.EntityID, inv.ID, key); err != nil {
		return err
	}
	inv.PDFKey = &key
	return nil
}

func (s *invoiceService) notifyBuyer(ctx context.Context, inv *domain.Invoice, computed *gst.Invoice) {
	if s.email == nil || inv.Buyer.Email == "" || inv.PDFKey == nil {
		return
	}
	url, err := s.storage.GetPresignedURL(ctx, *inv.PDFKey, s.expiry)
	if err != nil {
		s.log.Warn("presigning invoice link failed", zap.String("invoice_id", inv.ID.String()), zap.Error(err))
		return
	}
	err = s.email.SendInvoiceEmail(ctx, port.InvoiceEmail{
		ToEmail:       inv.Buyer.Email,
		ToName:        inv.Buyer.Name,
		SellerName:    inv.Seller.Name,
		InvoiceNumber: computed.Number,
		GrandTotal:    render.FormatINR(computed.Totals.GrandTotal),
		DownloadURL:   url,
	})
	if err != nil {
		s.log.Warn("sending invoice email failed", zap.String("invoice_id", inv.ID.String()), zap.Error(err))
	}
}

// computeDraft rebuilds the invoice and refreshes its stored grand total.
func computeDraft(inv *domain.Invoice) (*gst.Invoice, error) {
	computed, err := inv.Compute()
	if err != nil {
		return nil, err
	}
	inv.GrandTotal = gst.Round2(computed.Totals.GrandTotal)
	return computed, nil
}

func renderInput(entity *domain.Entity, inv *domain.Invoice, computed *gst.Invoice) render.Input {
	return render.Input{
		Invoice:     computed,
		InvoiceDate: inv.InvoiceDate,
		Notes:       inv.Notes,
		Bank: render.BankDetails{
			BankName:      entity.BankName,
			AccountNumber: entity.AccountNumber,
			IFSCCode:      entity.IFSCCode,
		},
	}
}

func pdfKey(inv *domain.Invoice) string {
	return fmt.Sprintf("invoices/%s/%s.pdf", inv.EntityID, inv.ID)
}

// normalizeParty resolves a party's state to its GST numeric code. Unknown
// values are kept as given so jurisdiction falls back to inter-state.
func normalizeParty(p gst.Party) gst.Party {
	if st, ok := gst.LookupState(p.StateCode); ok {
		p.StateCode = st.GSTCode
		if p.State == "" {
			p.State = st.Name
		}
	}
	return p
}
