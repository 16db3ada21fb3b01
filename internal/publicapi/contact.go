package publicapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/realtime"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

type contactPayload struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// submitContact records a visitor inquiry. Validation runs before any
// database work so a bad submission costs nothing.
func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Phone = strings.TrimSpace(payload.Phone)
	payload.Message = strings.TrimSpace(payload.Message)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	inq := domain.Inquiry{
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Message:   payload.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&inq).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save message", nil)
	}

	app := webserver.GetApp(c)
	app.Bus().Publish(domain.TableInquiries, realtime.OpInsert, inq.ID)
	app.Mailer().NotifyAsync(
		fmt.Sprintf("New inquiry from %s", inq.Name),
		fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s", inq.Name, inq.Email, inq.Phone, inq.Message),
	)

	return ok(c, map[string]interface{}{"id": fmt.Sprintf("%d", inq.ID), "received": true})
}
