package app

import (
	"errors"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "doshihardware"

	hashedPassword, err := common.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}

	var operator domain.SysOpr
	err = a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

// defaultSettings lists back-office tunables created on first start.
var defaultSettings = []settingSchema{
	{Key: "site.currency", Default: "KSh", Description: "Currency prefix shown next to prices"},
	{Key: "site.reviews_limit", Default: "5", Description: "Recent reviews shown on the home page"},
	{Key: "smtp.enabled", Default: "false", Description: "Send inquiry notification mail"},
	{Key: "smtp.host", Default: "", Description: "SMTP server host"},
	{Key: "smtp.port", Default: "587", Description: "SMTP server port"},
	{Key: "smtp.username", Default: "", Description: "SMTP username"},
	{Key: "smtp.password", Default: "", Description: "SMTP password"},
	{Key: "smtp.from", Default: "", Description: "Notification sender address"},
	{Key: "smtp.notify_to", Default: "", Description: "Back-office notification recipient"},
	{Key: "imagekit.private_key", Default: "", Description: "ImageKit upload private key"},
	{Key: "imagekit.upload_url", Default: "", Description: "Override ImageKit upload endpoint"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		value := schema.Default
		// credentials may be pre-provisioned through the environment
		if schema.Key == "imagekit.private_key" {
			if ev := os.Getenv("IMAGEKIT_PRIVATE_KEY"); ev != "" {
				value = ev
			}
		}

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  value,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkSampleCatalog seeds a minimal catalog so a fresh install renders
// something.
func (a *Application) checkSampleCatalog() {
	defaultProducts := []domain.Product{
		{Name: "Simba Cement 50kg", Category: "Cement", Price: 780, Description: "Portland cement, 32.5N grade"},
		{Name: "Roofing Sheet 3m", Category: "Roofing", Price: 1250, Description: "Galvanized corrugated iron sheet, gauge 30"},
		{Name: "Water Tank 1000L", Category: "Water Tanks", Price: 9500, Description: "UV-treated plastic storage tank", IsFeatured: true},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
