package publicapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/webserver"
	"github.com/Devstep613/doshihardware/pkg/common"
)

type publicTestimonial struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	Stars     string    `json:"stars"`
	CreatedAt time.Time `json:"created_at"`
}

func listTestimonials(c echo.Context) error {
	value, err := webserver.GetApp(c).Cache().GetOrLoad(cacheKeyTestimonials, func() (interface{}, error) {
		var rows []domain.Testimonial
		if err := GetDB(c).Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, err
		}
		views := make([]publicTestimonial, 0, len(rows))
		for _, t := range rows {
			views = append(views, publicTestimonial{
				ID:        t.ID,
				Name:      t.Name,
				Message:   t.Message,
				Rating:    t.Rating,
				Stars:     common.RatingStars(t.Rating),
				CreatedAt: t.CreatedAt,
			})
		}
		return views, nil
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load testimonials", nil)
	}
	return ok(c, value)
}
