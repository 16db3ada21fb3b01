package publicapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Devstep613/doshihardware/internal/domain"
)

func TestPublicReviewViewGeneral(t *testing.T) {
	v := publicReviewView(domain.Review{Name: "Jane", Rating: 5}, "")
	assert.Equal(t, "General", v.ProductName)
	assert.Equal(t, "★★★★★", v.Stars)
}

func TestPublicReviewViewWithProduct(t *testing.T) {
	v := publicReviewView(domain.Review{Name: "Jane", Rating: 2}, "Simba Cement 50kg")
	assert.Equal(t, "Simba Cement 50kg", v.ProductName)
	assert.Equal(t, "★★☆☆☆", v.Stars)
}

func TestPublicReviewViewOmitsEmail(t *testing.T) {
	// The storefront shape must not leak the reviewer's address.
	v := publicReviewView(domain.Review{Name: "Jane", Email: "jane@example.com", Rating: 4}, "")
	assert.Equal(t, "Jane", v.Name)
	assert.NotContains(t, []interface{}{v.Name, v.Message, v.ProductName, v.Stars}, "jane@example.com")
}
