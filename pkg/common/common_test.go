package common

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingStars(t *testing.T) {
	assert.Equal(t, "★★★★★", RatingStars(5))
	assert.Equal(t, "★★★☆☆", RatingStars(3))
	assert.Equal(t, "★☆☆☆☆", RatingStars(1))
	assert.Equal(t, "☆☆☆☆☆", RatingStars(0))
}

func TestRatingStarsAlwaysFiveIndicators(t *testing.T) {
	for rating := -2; rating <= 8; rating++ {
		stars := RatingStars(rating)
		assert.Equal(t, MaxRating, utf8.RuneCountInString(stars), "rating %d", rating)
	}
}

func TestRatingStarsClampsOutOfRange(t *testing.T) {
	assert.Equal(t, RatingStars(5), RatingStars(9))
	assert.Equal(t, RatingStars(0), RatingStars(-1))
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)
	assert.True(t, CheckPassword(hashed, "s3cret"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.Positive(t, id)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}
