package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/handler"
	"gstinvoice/internal/router"
	"gstinvoice/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() (*gin.Engine, *mocks.MockInvoiceService) {
	invoiceSvc := new(mocks.MockInvoiceService)
	up := handler.PingFunc(func(context.Context) error { return nil })
	r := router.Setup(router.Handlers{
		Health:  handler.NewHealthHandler(up, nil),
		Entity:  handler.NewEntityHandler(new(mocks.MockEntityService)),
		Import:  handler.NewImportHandler(new(mocks.MockImportService)),
		Invoice: handler.NewInvoiceHandler(invoiceSvc),
	}, []string{"http://localhost:3000"}, zap.NewNop())
	return r, invoiceSvc
}

func TestSetup_HealthRoutes(t *testing.T) {
	r, _ := newEngine()

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestSetup_ExportRouteIsNotAnInvoiceID(t *testing.T) {
	r, invoiceSvc := newEngine()
	entityID := uuid.New()
	invoiceSvc.On("Export", mock.Anything, mock.Anything, mock.Anything).Return("", "x_invoices_2024-11-03.csv", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/entities/"+entityID.String()+"/invoices/export", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	invoiceSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetup_FinalizeRoute(t *testing.T) {
	r, invoiceSvc := newEngine()
	entityID, invoiceID := uuid.New(), uuid.New()
	invoiceSvc.On("Finalize", mock.Anything, entityID, invoiceID).Return(nil, domain.ErrInvoiceFinalized)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		"/api/v1/entities/"+entityID.String()+"/invoices/"+invoiceID.String()+"/finalize", http.NoBody))

	assert.Equal(t, http.StatusConflict, w.Code)
	invoiceSvc.AssertExpectations(t)
}

func TestSetup_CORSPreflight(t *testing.T) {
	r, _ := newEngine()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/entities", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
