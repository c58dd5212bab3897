package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"gstinvoice/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(method, target string, body io.Reader, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	if body == nil {
		body = http.NoBody
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, body)
	c.Params = params
	return c, w
}

func newJSONContext(t *testing.T, method, target string, payload interface{}, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body io.Reader
	switch p := payload.(type) {
	case string:
		body = bytes.NewBufferString(p)
	default:
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	c, w := newContext(method, target, body, params...)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func param(key, value string) gin.Param {
	return gin.Param{Key: key, Value: value}
}
