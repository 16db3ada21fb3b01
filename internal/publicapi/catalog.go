package publicapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

// offerView adds the live countdown to an offer row. The rows themselves are
// cached; the remaining time is computed per request so the countdown ticks.
type offerView struct {
	domain.Product
	RemainingSeconds int64 `json:"remaining_seconds"`
}

type priceListItem struct {
	ID            int64    `json:"id,string"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	IsOnOffer     bool     `json:"is_on_offer"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
}

type priceListGroup struct {
	Category string          `json:"category"`
	Items    []priceListItem `json:"items"`
}

type priceListView struct {
	Currency string           `json:"currency"`
	Groups   []priceListGroup `json:"groups"`
}

func loadProducts(c echo.Context, key string, query func(c echo.Context) ([]domain.Product, error)) ([]domain.Product, error) {
	value, err := webserver.GetApp(c).Cache().GetOrLoad(key, func() (interface{}, error) {
		return query(c)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Product), nil
}

func listProducts(c echo.Context) error {
	rows, err := loadProducts(c, cacheKeyProducts, func(c echo.Context) ([]domain.Product, error) {
		var rows []domain.Product
		err := GetDB(c).Order("category ASC, name ASC").Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products", nil)
	}

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		filtered := make([]domain.Product, 0, len(rows))
		for _, p := range rows {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		rows = filtered
	}
	return ok(c, rows)
}

func listFeaturedProducts(c echo.Context) error {
	rows, err := loadProducts(c, cacheKeyFeatured, func(c echo.Context) ([]domain.Product, error) {
		var rows []domain.Product
		err := GetDB(c).Where("is_featured = ?", true).Order("name ASC").Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load featured products", nil)
	}
	return ok(c, rows)
}

func listOffers(c echo.Context) error {
	rows, err := loadProducts(c, cacheKeyOffers, func(c echo.Context) ([]domain.Product, error) {
		var rows []domain.Product
		err := GetDB(c).Where("is_on_offer = ?", true).Order("offer_end_date ASC").Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load offers", nil)
	}

	now := time.Now()
	views := make([]offerView, 0, len(rows))
	for _, p := range rows {
		v := offerView{Product: p}
		if p.OfferEndDate != nil {
			if remaining := p.OfferEndDate.Sub(now); remaining > 0 {
				v.RemainingSeconds = int64(remaining.Seconds())
			}
		}
		views = append(views, v)
	}
	return ok(c, views)
}

func getPriceList(c echo.Context) error {
	value, err := webserver.GetApp(c).Cache().GetOrLoad(cacheKeyPriceList, func() (interface{}, error) {
		var rows []domain.Product
		if err := GetDB(c).Order("category ASC, name ASC").Find(&rows).Error; err != nil {
			return nil, err
		}
		return buildPriceList(rows), nil
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load price list", nil)
	}

	view := value.([]priceListGroup)
	currency := webserver.GetApp(c).GetSettingsStringValue("site", "currency")
	if currency == "" {
		currency = "KSh"
	}
	return ok(c, priceListView{Currency: currency, Groups: view})
}

// buildPriceList groups products by category, preserving the query order.
func buildPriceList(rows []domain.Product) []priceListGroup {
	groups := make([]priceListGroup, 0)
	index := make(map[string]int)
	for _, p := range rows {
		item := priceListItem{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			IsOnOffer: p.IsOnOffer,
		}
		if p.IsOnOffer {
			item.DiscountPrice = p.DiscountPrice
		}
		i, ok := index[p.Category]
		if !ok {
			groups = append(groups, priceListGroup{Category: p.Category})
			i = len(groups) - 1
			index[p.Category] = i
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
