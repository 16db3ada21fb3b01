package publicapi

import (
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

const defaultReviewsLimit = 5

type reviewPayload struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Message   string `json:"message" validate:"required,min=1,max=1000"`
	Rating    int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	ProductId *int64 `json:"product_id,string,omitempty"`
}

// publicReview is the storefront shape of a review. Reviews without a
// product reference read as general store reviews.
type publicReview struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Message     string    `json:"message"`
	Rating      int       `json:"rating"`
	Stars       string    `json:"stars"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type reviewJoinRow struct {
	domain.Review
	ProductName string `json:"product_name"`
}

func publicReviewView(r domain.Review, productName string) publicReview {
	if productName == "" {
		productName = "General"
	}
	return publicReview{
		ID:          r.ID,
		Name:        r.Name,
		Message:     r.Message,
		Rating:      r.Rating,
		Stars:       common.RatingStars(r.Rating),
		ProductName: productName,
		CreatedAt:   r.CreatedAt,
	}
}

func listReviews(c echo.Context) error {
	app := webserver.GetApp(c)
	value, err := app.Cache().GetOrLoad(cacheKeyReviews, func() (interface{}, error) {
		limit := int(app.GetSettingsInt64Value("site", "reviews_limit"))
		if limit <= 0 {
			limit = defaultReviewsLimit
		}
		var rows []reviewJoinRow
		err := GetDB(c).Model(&domain.Review{}).
			Select("reviews.*, products.name AS product_name").
			Joins("LEFT JOIN products ON products.id = reviews.product_id").
			Order("reviews.created_at DESC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		views := make([]publicReview, 0, len(rows))
		for _, row := range rows {
			views = append(views, publicReviewView(row.Review, row.ProductName))
		}
		return views, nil
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load reviews", nil)
	}
	return ok(c, value)
}

func submitReview(c echo.Context) error {
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
		payload.Rating = common.MaxRating
	}

	review := domain.Review{
		Name:      payload.Name,
		Email:     payload.Email,
		Message:   payload.Message,
		Rating:    payload.Rating,
		ProductId: resolveProductRef(GetDB(c), payload.ProductId),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&review).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save review", nil)
	}

	webserver.GetApp(c).Bus().Publish(domain.TableReviews, realtime.OpInsert, review.ID)
	return ok(c, publicReviewView(review, productNameFor(GetDB(c), review.ProductId)))
}

// resolveProductRef drops references to products that no longer exist
// instead of rejecting the submission.
func resolveProductRef(db *gorm.DB, id *int64) *int64 {
	if id == nil {
		return nil
	}
	var count int64
	if err := db.Model(&domain.Product{}).Where("id = ?", *id).Count(&count).Error; err != nil || count == 0 {
		return nil
	}
	return id
}

func productNameFor(db *gorm.DB, id *int64) string {
	if id == nil {
		return ""
	}
	var p domain.Product
	if err := db.Select("name").Where("id = ?", *id).First(&p).Error; err != nil {
		return ""
	}
	return p.Name
}
