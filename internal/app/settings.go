package app

import (
	"errors"
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/internal/domain"
)

// SettingsManager caches sys_config rows in memory. Values are keyed by
// "category.name"; Set writes through to the database.
type SettingsManager struct {
	db *gorm.DB

	mu     sync.RWMutex
	values map[string]string
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db, values: make(map[string]string)}
}

// Load refreshes the in-memory settings snapshot from the database.
func (m *SettingsManager) Load() {
	var rows []domain.SysConfig
	if err := m.db.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string, len(rows))
	for _, row := range rows {
		m.values[row.Type+"."+row.Name] = row.Value
	}
}

func (m *SettingsManager) load(rows []domain.SysConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		m.values[row.Type+"."+row.Name] = row.Value
	}
}

func (m *SettingsManager) GetString(category, name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[category+"."+name]
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

// Set upserts a setting value and updates the snapshot.
func (m *SettingsManager) Set(category, name, value string) error {
	var row domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = m.db.Create(&domain.SysConfig{
			Type:      category,
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
	case err == nil:
		err = m.db.Model(&domain.SysConfig{}).Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.values[category+"."+name] = value
	m.mu.Unlock()
	return nil
}
