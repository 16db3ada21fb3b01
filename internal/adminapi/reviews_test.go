package adminapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Devstep613/doshihardware/internal/domain"
)

func TestReviewViewGeneralWhenNoProduct(t *testing.T) {
	row := reviewView(domain.Review{Name: "Jane", Rating: 4}, "")
	assert.Equal(t, "General", row.ProductName)
}

func TestReviewViewKeepsProductName(t *testing.T) {
	row := reviewView(domain.Review{Name: "Jane", Rating: 4}, "Simba Cement 50kg")
	assert.Equal(t, "Simba Cement 50kg", row.ProductName)
}

func TestReviewViewStars(t *testing.T) {
	row := reviewView(domain.Review{Rating: 3}, "")
	assert.Equal(t, "★★★☆☆", row.Stars)
}

func TestReviewViewFlagsLowRatings(t *testing.T) {
	assert.True(t, reviewView(domain.Review{Rating: 1}, "").Flagged)
	assert.True(t, reviewView(domain.Review{Rating: 2}, "").Flagged)
	assert.False(t, reviewView(domain.Review{Rating: 3}, "").Flagged)
	assert.False(t, reviewView(domain.Review{Rating: 5}, "").Flagged)
}
