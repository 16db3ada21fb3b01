package adminapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Devstep613/doshihardware/config"
	"github.com/Devstep613/doshihardware/internal/app"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

func newMockApp(t *testing.T) (*app.Application, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	application := app.NewApplication(config.DefaultAppConfig())
	application.OverrideDB(gdb)
	return application, mock
}

func newDeleteContext(t *testing.T, application *app.Application, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	webserver.SetApp(c, application)
	return c, rec
}

func TestDeleteMissingRecordNotFound(t *testing.T) {
	cases := []struct {
		name    string
		table   string
		handler echo.HandlerFunc
	}{
		{"product", "products", deleteProduct},
		{"testimonial", "testimonials", deleteTestimonial},
		{"review", "reviews", deleteReview},
		{"inquiry", "inquiries", deleteInquiry},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			application, mock := newMockApp(t)
			mock.ExpectQuery(`SELECT \* FROM "` + tc.table + `"`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			c, rec := newDeleteContext(t, application, "424242")
			require.NoError(t, tc.handler(c))

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "NOT_FOUND")
			assert.NoError(t, mock.ExpectationsWereMet(), "no delete must run for a missing record")
		})
	}
}

func TestDeleteInvalidIDRejected(t *testing.T) {
	application, _ := newMockApp(t)
	c, rec := newDeleteContext(t, application, "not-a-number")
	require.NoError(t, deleteProduct(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
}
