package app

import (
	"github.com/robfig/cron/v3"

	"github.com/Devstep613/doshihardware/config"
	"github.com/Devstep613/doshihardware/internal/cache"
	"github.com/Devstep613/doshihardware/internal/mailer"
	"github.com/Devstep613/doshihardware/internal/realtime"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
	SaveSettings(settings map[string]interface{}) error
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// CacheProvider provides the shared resource cache and its change
// notification plumbing
type CacheProvider interface {
	Cache() *cache.Store
	Bus() *realtime.Bus
	Invalidator() *realtime.Invalidator
}

// MailProvider provides the notification mail sender
type MailProvider interface {
	Mailer() *mailer.Sender
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	CacheProvider
	MailProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
