// Package publicapi serves the storefront endpoints. List reads go through
// the shared resource cache; change events published by the back office
// invalidate the bound keys so the site never serves stale collections for
// longer than one request.
package publicapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/internal/app"
	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

// Cache keys for the public collections.
const (
	cacheKeyProducts     = "public_products"
	cacheKeyFeatured     = "public_featured"
	cacheKeyOffers       = "public_offers"
	cacheKeyPriceList    = "public_pricelist"
	cacheKeyTestimonials = "public_testimonials"
	cacheKeyReviews      = "public_reviews"
)

// Init registers the storefront routes and binds each cached collection to
// the table whose changes stale it.
func Init(appctx app.AppContext) {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/featured", listFeaturedProducts)
	webserver.PubGET("/offers", listOffers)
	webserver.PubGET("/pricelist", getPriceList)
	webserver.PubGET("/testimonials", listTestimonials)
	webserver.PubGET("/reviews", listReviews)
	webserver.PubPOST("/reviews", submitReview)
	webserver.PubPOST("/contact", submitContact)

	bindings := []struct {
		table string
		key   string
	}{
		{domain.TableProducts, cacheKeyProducts},
		{domain.TableProducts, cacheKeyFeatured},
		{domain.TableProducts, cacheKeyOffers},
		{domain.TableProducts, cacheKeyPriceList},
		{domain.TableTestimonials, cacheKeyTestimonials},
		{domain.TableReviews, cacheKeyReviews},
	}
	for _, b := range bindings {
		if err := appctx.Invalidator().Bind(b.table, b.key); err != nil {
			zap.L().Error("failed to bind cache invalidation",
				zap.String("table", b.table), zap.String("key", b.key), zap.Error(err))
		}
	}
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

func handleValidationError(c echo.Context, err error) error {
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
}
