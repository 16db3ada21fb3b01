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

// lowRatingThreshold marks reviews that deserve back-office attention.
const lowRatingThreshold = 2

type reviewPayload struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
	Rating    int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	ProductId *int64 `json:"product_id,string"`
}

// reviewRow decorates a review with the joined product name and the
// rendering hints the back-office table needs.
type reviewRow struct {
	domain.Review
	ProductName string `json:"product_name"`
	Stars       string `json:"stars"`
	Flagged     bool   `json:"flagged"`
}

// reviewView shapes one review row. Reviews without a product reference are
// shown as "General"; ratings at or below the threshold are flagged so
// negative feedback stands out.
func reviewView(r domain.Review, productName string) reviewRow {
	if productName == "" {
		productName = "General"
	}
	return reviewRow{
		Review:      r,
		ProductName: productName,
		Stars:       common.RatingStars(r.Rating),
		Flagged:     r.Rating <= lowRatingThreshold,
	}
}

func registerReviewRoutes() {
	webserver.ApiGET("/reviews", listReviews)
	webserver.ApiGET("/reviews/:id", getReview)
	webserver.ApiPOST("/reviews", createReview)
	webserver.ApiPUT("/reviews/:id", updateReview)
	webserver.ApiDELETE("/reviews/:id", deleteReview)
}

type reviewJoinRow struct {
	domain.Review
	ProductName string
}

func listReviews(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Review{}).
		Select("reviews.*, products.name AS product_name").
		Joins("LEFT JOIN products ON products.id = reviews.product_id")

	var total int64
	if err := GetDB(c).Model(&domain.Review{}).Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", err.Error())
	}

	var rows []reviewJoinRow
	if err := db.Order("reviews.created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).
		Scan(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", err.Error())
	}

	views := make([]reviewRow, 0, len(rows))
	for _, row := range rows {
		views = append(views, reviewView(row.Review, row.ProductName))
	}
	return paged(c, views, total, page, pageSize)
}

func getReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}
	var r domain.Review
	if err := GetDB(c).Where("id = ?", id).First(&r).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query review", err.Error())
	}
	return ok(c, r)
}

// resolveProductRef verifies a soft product reference; an unknown id is
// dropped rather than rejected, matching the nullable "General" semantics.
func resolveProductRef(db *gorm.DB, productId *int64) *int64 {
	if productId == nil {
		return nil
	}
	var count int64
	db.Model(&domain.Product{}).Where("id = ?", *productId).Count(&count)
	if count == 0 {
		return nil
	}
	return productId
}

func createReview(c echo.Context) error {
	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if payload.Rating == 0 {
		payload.Rating = 5
	}

	now := time.Now()
	r := domain.Review{
		Name:      payload.Name,
		Email:     payload.Email,
		Message:   payload.Message,
		Rating:    payload.Rating,
		ProductId: resolveProductRef(GetDB(c), payload.ProductId),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&r).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create review", err.Error())
	}

	publishChange(c, domain.TableReviews, realtime.OpInsert, r.ID)
	logOperation(c, "create_review", fmt.Sprintf("created review from %s (%d)", r.Name, r.ID))
	return ok(c, r)
}

func updateReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}
	var r domain.Review
	if err := GetDB(c).Where("id = ?", id).First(&r).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query review", err.Error())
	}

	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if payload.Rating == 0 {
		payload.Rating = 5
	}

	r.Name = payload.Name
	r.Email = payload.Email
	r.Message = payload.Message
	r.Rating = payload.Rating
	r.ProductId = resolveProductRef(GetDB(c), payload.ProductId)
	r.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&r).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update review", err.Error())
	}

	publishChange(c, domain.TableReviews, realtime.OpUpdate, r.ID)
	logOperation(c, "update_review", fmt.Sprintf("updated review from %s (%d)", r.Name, r.ID))
	return ok(c, r)
}

func deleteReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}
	var r domain.Review
	if err := GetDB(c).Where("id = ?", id).First(&r).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query review", err.Error())
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Review{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete review", err.Error())
	}

	publishChange(c, domain.TableReviews, realtime.OpDelete, id)
	logOperation(c, "delete_review", fmt.Sprintf("deleted review from %s (%d)", r.Name, id))
	return ok(c, map[string]interface{}{"id": id})
}
