package webserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `validate:"required,min=1,max=100"`
	Email   string `validate:"required,email,max=255"`
	Phone   string `validate:"omitempty,max=20"`
	Message string `validate:"required,min=1,max=1000"`
}

func TestValidatePassesValidForm(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&contactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+254700000000",
		Message: "Do you stock 32mm PVC pipes?",
	})
	assert.NoError(t, err)
}

func TestValidateOptionalPhoneMayBeEmpty(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&contactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello",
	})
	assert.NoError(t, err)
}

func TestValidateRejectsBadEmail(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&contactForm{
		Name:    "Jane Doe",
		Email:   "not-an-email",
		Message: "Hello",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid email address", err.Error())
}

func TestValidateFieldLimits(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&contactForm{
		Name:    strings.Repeat("a", 101),
		Email:   "jane@example.com",
		Message: "Hello",
	})
	require.Error(t, err)
	assert.Equal(t, "name must be at most 100 characters", err.Error())

	err = cv.Validate(&contactForm{
		Name:    "Jane",
		Email:   "jane@example.com",
		Phone:   strings.Repeat("1", 21),
		Message: "Hello",
	})
	require.Error(t, err)
	assert.Equal(t, "phone must be at most 20 characters", err.Error())

	err = cv.Validate(&contactForm{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: strings.Repeat("m", 1001),
	})
	require.Error(t, err)
	assert.Equal(t, "message must be at most 1000 characters", err.Error())
}

func TestValidateFirstErrorWins(t *testing.T) {
	cv := NewValidator()
	// name and email are both invalid; the earlier field decides the message
	err := cv.Validate(&contactForm{
		Name:    "",
		Email:   "not-an-email",
		Message: "",
	})
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}

type ratingForm struct {
	Rating int `validate:"omitempty,gte=1,lte=5"`
}

func TestValidateRatingRange(t *testing.T) {
	cv := NewValidator()
	assert.NoError(t, cv.Validate(&ratingForm{Rating: 0}))
	assert.NoError(t, cv.Validate(&ratingForm{Rating: 5}))
	assert.Error(t, cv.Validate(&ratingForm{Rating: 6}))
}
