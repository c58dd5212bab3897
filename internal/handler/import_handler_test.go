package handler_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/handler"
	"gstinvoice/internal/service"
	"gstinvoice/mocks"
)

func newImportHandler() (*handler.ImportHandler, *mocks.MockImportService) {
	mockSvc := new(mocks.MockImportService)
	return handler.NewImportHandler(mockSvc), mockSvc
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImportHandler_ImportOrders_Success(t *testing.T) {
	h, mockSvc := newImportHandler()
	entityID := uuid.New()
	content := "Name,Lineitem name\n#1001,Kurta\n"

	mockSvc.On("ImportOrders", mock.Anything, mock.MatchedBy(func(in *service.ImportInput) bool {
		return in.EntityID == entityID && in.FileName == "orders_export.csv" && in.Size == int64(len(content)) && in.Body != nil
	})).Return(&domain.ImportResult{Kind: domain.ImportKindOrders, Imported: 1, Errors: []domain.RowError{}}, nil)

	body, contentType := multipartBody(t, "file", "orders_export.csv", content)
	c, w := newContext(http.MethodPost, "/api/v1/entities/"+entityID.String()+"/imports/orders", body, param("id", entityID.String()))
	c.Request.Header.Set("Content-Type", contentType)

	h.ImportOrders(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":1`)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_ImportProducts_MissingFile(t *testing.T) {
	h, mockSvc := newImportHandler()
	entityID := uuid.New()

	body, contentType := multipartBody(t, "upload", "products.csv", "Handle\n")
	c, w := newContext(http.MethodPost, "/", body, param("id", entityID.String()))
	c.Request.Header.Set("Content-Type", contentType)

	h.ImportProducts(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "ImportProducts", mock.Anything, mock.Anything)
}

func TestImportHandler_ImportProducts_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrUnsupportedFileType, http.StatusBadRequest},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{domain.ErrEntityNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h, mockSvc := newImportHandler()
			mockSvc.On("ImportProducts", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, contentType := multipartBody(t, "file", "products.pdf", "x")
			c, w := newContext(http.MethodPost, "/", body, param("id", uuid.NewString()))
			c.Request.Header.Set("Content-Type", contentType)

			h.ImportProducts(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestImportHandler_ListOrders_StatusFilter(t *testing.T) {
	h, mockSvc := newImportHandler()
	entityID := uuid.New()
	mockSvc.On("ListOrders", mock.Anything, entityID, domain.OrderStatusFailed, 20, 10).
		Return([]domain.Order{{ID: uuid.New(), OrderNumber: "#1001"}}, 21, nil)

	c, w := newContext(http.MethodGet, "/?status=failed&offset=20&limit=10", nil, param("id", entityID.String()))

	h.ListOrders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 21, decodeResponse(t, w).Meta.Total)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_ListOrders_InvalidStatus(t *testing.T) {
	h, _ := newImportHandler()

	c, w := newContext(http.MethodGet, "/?status=shipped", nil, param("id", uuid.NewString()))

	h.ListOrders(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportHandler_ListProducts(t *testing.T) {
	h, mockSvc := newImportHandler()
	entityID := uuid.New()
	mockSvc.On("ListProducts", mock.Anything, entityID, 0, 20).Return([]domain.Product{}, 0, nil)

	c, w := newContext(http.MethodGet, "/", nil, param("id", entityID.String()))

	h.ListProducts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
