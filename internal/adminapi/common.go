package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/webserver"
	"github.com/Devstep613/doshihardware/pkg/common"
)

// Init registers every back-office route on the web server.
func Init() {
	registerAuthRoutes()
	registerProductRoutes()
	registerTestimonialRoutes()
	registerReviewRoutes()
	registerInquiryRoutes()
	registerExportRoutes()
	registerImageRoutes()
	registerSettingsRoutes()
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return webserver.Fail(c, status, code, msg, detail)
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return webserver.Paged(c, data, total, page, pageSize)
}

// parsePagination reads page/perPage query params with sane bounds.
func parsePagination(c echo.Context) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func handleValidationError(c echo.Context, err error) error {
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
}

// operatorName extracts the logged-in operator from the request token. The
// auth middleware stores a v5 token even though issuing uses v4; the claim
// shape is the same.
func operatorName(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	name, _ := claims["usr"].(string)
	return name
}

// publishChange announces a table mutation so bound cache keys get
// invalidated.
func publishChange(c echo.Context, table, op string, id int64) {
	webserver.GetApp(c).Bus().Publish(table, op, id)
}

// logOperation records an admin action in the operation log.
func logOperation(c echo.Context, action, desc string) {
	err := GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   operatorName(c),
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}).Error
	if err != nil {
		zap.L().Warn("failed to record operation log", zap.String("action", action), zap.Error(err))
	}
}
