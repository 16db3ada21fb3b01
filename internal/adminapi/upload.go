package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Devstep613/doshihardware/internal/imagekit"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

type uploadPayload struct {
	File     string `json:"file" validate:"required"`
	FileName string `json:"fileName" validate:"required,max=255"`
}

func registerImageRoutes() {
	webserver.ApiPOST("/images/upload", uploadImage)
}

// uploadImage forwards a base64 image to the configured media CDN and
// returns the hosted URL for use in product records.
func uploadImage(c echo.Context) error {
	var payload uploadPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse upload", nil)
	}
	payload.FileName = strings.TrimSpace(payload.FileName)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	app := webserver.GetApp(c)
	client := imagekit.Client{
		UploadURL:  app.GetSettingsStringValue("imagekit", "upload_url"),
		PrivateKey: app.GetSettingsStringValue("imagekit", "private_key"),
	}

	result, err := client.Upload(payload.File, payload.FileName)
	if errors.Is(err, imagekit.ErrNotConfigured) {
		return fail(c, http.StatusServiceUnavailable, "UPLOAD_NOT_CONFIGURED", "Image uploads are not configured", nil)
	} else if err != nil {
		return fail(c, http.StatusBadGateway, "UPLOAD_FAILED", "Image upload failed", err.Error())
	}

	logOperation(c, "upload_image", fmt.Sprintf("uploaded image %s", result.Name))
	return ok(c, result)
}
