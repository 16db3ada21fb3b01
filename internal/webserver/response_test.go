package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.JSONSerializer = NewJSONSerializer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestOKEnvelope(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, OK(c, map[string]string{"name": "Simba Cement 50kg"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	var result RestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "OK", result.Code)
	assert.NotNil(t, result.Data)
}

func TestFailEnvelope(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var result RestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "NOT_FOUND", result.Code)
	assert.Equal(t, "Product not found", result.Msg)
}

func TestPagedEnvelope(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, Paged(c, []string{"a", "b"}, 12, 2, 2))

	var result PageResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.PerPage)
}
