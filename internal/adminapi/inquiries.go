package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/realtime"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

type inquiryPayload struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

func registerInquiryRoutes() {
	webserver.ApiGET("/inquiries", listInquiries)
	webserver.ApiGET("/inquiries/:id", getInquiry)
	webserver.ApiPOST("/inquiries", createInquiry)
	webserver.ApiPUT("/inquiries/:id", updateInquiry)
	webserver.ApiDELETE("/inquiries/:id", deleteInquiry)
}

func listInquiries(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Inquiry{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ? OR email ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", "%"+strings.ToLower(q)+"%", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiries", err.Error())
	}

	var rows []domain.Inquiry
	if err := db.Order("created_at DESC").Offset((page-1)*pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiries", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getInquiry(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid inquiry ID", nil)
	}
	var inq domain.Inquiry
	if err := GetDB(c).Where("id = ?", id).First(&inq).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inquiry not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiry", err.Error())
	}
	return ok(c, inq)
}

func createInquiry(c echo.Context) error {
	var payload inquiryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse inquiry", nil)
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
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create inquiry", err.Error())
	}

	publishChange(c, domain.TableInquiries, realtime.OpInsert, inq.ID)
	logOperation(c, "create_inquiry", fmt.Sprintf("created inquiry from %s (%d)", inq.Name, inq.ID))
	return ok(c, inq)
}

func updateInquiry(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid inquiry ID", nil)
	}
	var inq domain.Inquiry
	if err := GetDB(c).Where("id = ?", id).First(&inq).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inquiry not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiry", err.Error())
	}

	var payload inquiryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse inquiry", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Phone = strings.TrimSpace(payload.Phone)
	payload.Message = strings.TrimSpace(payload.Message)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	inq.Name = payload.Name
	inq.Email = payload.Email
	inq.Phone = payload.Phone
	inq.Message = payload.Message
	inq.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&inq).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update inquiry", err.Error())
	}

	publishChange(c, domain.TableInquiries, realtime.OpUpdate, inq.ID)
	logOperation(c, "update_inquiry", fmt.Sprintf("updated inquiry from %s (%d)", inq.Name, inq.ID))
	return ok(c, inq)
}

func deleteInquiry(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid inquiry ID", nil)
	}
	var inq domain.Inquiry
	if err := GetDB(c).Where("id = ?", id).First(&inq).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inquiry not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiry", err.Error())
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Inquiry{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete inquiry", err.Error())
	}

	publishChange(c, domain.TableInquiries, realtime.OpDelete, id)
	logOperation(c, "delete_inquiry", fmt.Sprintf("deleted inquiry from %s (%d)", inq.Name, id))
	return ok(c, map[string]interface{}{"id": id})
}
