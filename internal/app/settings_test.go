package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Devstep613/doshihardware/internal/domain"
)

func newTestSettings(rows []domain.SysConfig) *SettingsManager {
	m := &SettingsManager{values: make(map[string]string)}
	m.load(rows)
	return m
}

func TestSettingsLookup(t *testing.T) {
	m := newTestSettings([]domain.SysConfig{
		{Type: "site", Name: "currency", Value: "KSh"},
		{Type: "site", Name: "reviews_limit", Value: "8"},
		{Type: "smtp", Name: "enabled", Value: "true"},
	})

	assert.Equal(t, "KSh", m.GetString("site", "currency"))
	assert.Equal(t, int64(8), m.GetInt64("site", "reviews_limit"))
	assert.True(t, m.GetBool("smtp", "enabled"))
}

func TestSettingsMissingKeyZeroValues(t *testing.T) {
	m := newTestSettings(nil)
	assert.Equal(t, "", m.GetString("site", "currency"))
	assert.Equal(t, int64(0), m.GetInt64("site", "reviews_limit"))
	assert.False(t, m.GetBool("smtp", "enabled"))
}

func TestSettingsCategoriesDoNotCollide(t *testing.T) {
	m := newTestSettings([]domain.SysConfig{
		{Type: "smtp", Name: "enabled", Value: "true"},
		{Type: "site", Name: "enabled", Value: "false"},
	})
	assert.True(t, m.GetBool("smtp", "enabled"))
	assert.False(t, m.GetBool("site", "enabled"))
}
