package publicapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devstep613/doshihardware/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestBuildPriceListGroupsByCategory(t *testing.T) {
	rows := []domain.Product{
		{ID: 1, Name: "Simba Cement 50kg", Category: "Cement", Price: 780},
		{ID: 2, Name: "Bamburi Cement 50kg", Category: "Cement", Price: 800},
		{ID: 3, Name: "Roofing Sheet 3m", Category: "Roofing", Price: 1250},
	}

	groups := buildPriceList(rows)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cement", groups[0].Category)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "Roofing", groups[1].Category)
	assert.Len(t, groups[1].Items, 1)
	assert.Equal(t, "Roofing Sheet 3m", groups[1].Items[0].Name)
}

func TestBuildPriceListOfferPricing(t *testing.T) {
	rows := []domain.Product{
		{ID: 1, Name: "Water Tank 1000L", Category: "Tanks", Price: 9500,
			IsOnOffer: true, DiscountPrice: f64(8500)},
		{ID: 2, Name: "Water Tank 2000L", Category: "Tanks", Price: 17000,
			DiscountPrice: f64(15000)}, // stale discount on a product no longer on offer
	}

	groups := buildPriceList(rows)
	require.Len(t, groups, 1)
	items := groups[0].Items

	assert.True(t, items[0].IsOnOffer)
	require.NotNil(t, items[0].DiscountPrice)
	assert.Equal(t, 8500.0, *items[0].DiscountPrice)

	assert.False(t, items[1].IsOnOffer)
	assert.Nil(t, items[1].DiscountPrice, "discount only surfaces while the offer is active")
}

func TestBuildPriceListEmpty(t *testing.T) {
	assert.Empty(t, buildPriceList(nil))
}
