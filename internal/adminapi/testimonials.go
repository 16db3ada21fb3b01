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
	"github.com/Devstep613/doshihardware/pkg/common"
)

type testimonialPayload struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
	Rating  int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// testimonialRow decorates a testimonial for tabular rendering.
type testimonialRow struct {
	domain.Testimonial
	Stars string `json:"stars"`
}

func registerTestimonialRoutes() {
	webserver.ApiGET("/testimonials", listTestimonials)
	webserver.ApiGET("/testimonials/:id", getTestimonial)
	webserver.ApiPOST("/testimonials", createTestimonial)
	webserver.ApiPUT("/testimonials/:id", updateTestimonial)
	webserver.ApiDELETE("/testimonials/:id", deleteTestimonial)
}

func listTestimonials(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Testimonial{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonials", err.Error())
	}

	var rows []domain.Testimonial
	if err := db.Order("created_at DESC").Offset((page-1)*pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonials", err.Error())
	}

	views := make([]testimonialRow, 0, len(rows))
	for _, t := range rows {
		views = append(views, testimonialRow{Testimonial: t, Stars: common.RatingStars(t.Rating)})
	}
	return paged(c, views, total, page, pageSize)
}

func getTestimonial(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID", nil)
	}
	var t domain.Testimonial
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonial", err.Error())
	}
	return ok(c, t)
}

func createTestimonial(c echo.Context) error {
	var payload testimonialPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse testimonial", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Message = strings.TrimSpace(payload.Message)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if payload.Rating == 0 {
		payload.Rating = 5
	}

	now := time.Now()
	t := domain.Testimonial{
		Name:      payload.Name,
		Message:   payload.Message,
		Rating:    payload.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&t).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create testimonial", err.Error())
	}

	publishChange(c, domain.TableTestimonials, realtime.OpInsert, t.ID)
	logOperation(c, "create_testimonial", fmt.Sprintf("created testimonial from %s (%d)", t.Name, t.ID))
	return ok(c, t)
}

func updateTestimonial(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID", nil)
	}
	var t domain.Testimonial
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonial", err.Error())
	}

	var payload testimonialPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse testimonial", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Message = strings.TrimSpace(payload.Message)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if payload.Rating == 0 {
		payload.Rating = 5
	}

	t.Name = payload.Name
	t.Message = payload.Message
	t.Rating = payload.Rating
	t.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&t).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update testimonial", err.Error())
	}

	publishChange(c, domain.TableTestimonials, realtime.OpUpdate, t.ID)
	logOperation(c, "update_testimonial", fmt.Sprintf("updated testimonial from %s (%d)", t.Name, t.ID))
	return ok(c, t)
}

func deleteTestimonial(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID", nil)
	}
	var t domain.Testimonial
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonial", err.Error())
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Testimonial{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete testimonial", err.Error())
	}

	publishChange(c, domain.TableTestimonials, realtime.OpDelete, id)
	logOperation(c, "delete_testimonial", fmt.Sprintf("deleted testimonial from %s (%d)", t.Name, id))
	return ok(c, map[string]interface{}{"id": id})
}
