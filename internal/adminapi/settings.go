package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/settings", listSettings)
	webserver.ApiPOST("/settings", saveSettings)
}

func listSettings(c echo.Context) error {
	var rows []domain.SysConfig
	query := GetDB(c).Order("type ASC, sort ASC")
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("type = ?", category)
	}
	if err := query.Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	// The private storage key never leaves the back office API in the clear.
	for i := range rows {
		if rows[i].Type == "imagekit" && rows[i].Name == "private_key" && rows[i].Value != "" {
			rows[i].Value = "********"
		}
	}
	return ok(c, rows)
}

func saveSettings(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", nil)
	}
	if len(payload) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No settings provided", nil)
	}
	if err := webserver.GetApp(c).SaveSettings(payload); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save settings", err.Error())
	}
	logOperation(c, "save_settings", "updated system settings")
	return ok(c, map[string]interface{}{"saved": len(payload)})
}
