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

type productPayload struct {
	Name          string     `json:"name" validate:"required,min=1,max=200"`
	Category      string     `json:"category" validate:"required,min=1,max=100"`
	Price         float64    `json:"price" validate:"gte=0"`
	Description   string     `json:"description" validate:"omitempty,max=5000"`
	ImageUrl      string     `json:"image_url" validate:"omitempty,max=1024"`
	IsFeatured    bool       `json:"is_featured"`
	IsOnOffer     bool       `json:"is_on_offer"`
	OriginalPrice *float64   `json:"original_price" validate:"omitempty,gte=0"`
	DiscountPrice *float64   `json:"discount_price" validate:"omitempty,gte=0"`
	OfferEndDate  *time.Time `json:"offer_end_date"`
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// Filters: q or category
	q := strings.TrimSpace(c.QueryParam("q"))
	category := strings.TrimSpace(c.QueryParam("category"))

	// Sorting: field and order, created_at DESC by default
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"category":   "category",
		"price":      "price",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, okcol := allowed[sortField]
	if !okcol || sortCol == "" {
		sortCol = "created_at"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page-1)*pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func applyProductPayload(p *domain.Product, payload *productPayload) {
	p.Name = strings.TrimSpace(payload.Name)
	p.Category = strings.TrimSpace(payload.Category)
	p.Price = payload.Price
	p.Description = strings.TrimSpace(payload.Description)
	p.ImageUrl = strings.TrimSpace(payload.ImageUrl)
	p.IsFeatured = payload.IsFeatured
	p.IsOnOffer = payload.IsOnOffer
	p.OriginalPrice = payload.OriginalPrice
	p.DiscountPrice = payload.DiscountPrice
	p.OfferEndDate = payload.OfferEndDate
	if !p.IsOnOffer {
		// offer pricing only makes sense while the offer is active
		p.OriginalPrice = nil
		p.DiscountPrice = nil
		p.OfferEndDate = nil
	}
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Category = strings.TrimSpace(payload.Category)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	p := domain.Product{CreatedAt: now, UpdatedAt: now}
	applyProductPayload(&p, &payload)

	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	publishChange(c, domain.TableProducts, realtime.OpInsert, p.ID)
	logOperation(c, "create_product", fmt.Sprintf("created product %s (%d)", p.Name, p.ID))
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Category = strings.TrimSpace(payload.Category)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	applyProductPayload(&p, &payload)
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	publishChange(c, domain.TableProducts, realtime.OpUpdate, p.ID)
	logOperation(c, "update_product", fmt.Sprintf("updated product %s (%d)", p.Name, p.ID))
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}

	publishChange(c, domain.TableProducts, realtime.OpDelete, id)
	logOperation(c, "delete_product", fmt.Sprintf("deleted product %s (%d)", p.Name, id))
	return ok(c, map[string]interface{}{"id": id})
}
