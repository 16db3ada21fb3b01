package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/realtime"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 1m", func() {
		a.SchedExpireOffers()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.gormDB.
			Where("opt_time < ? ", time.Now().
				Add(-time.Hour*24*365)).Delete(domain.SysOprLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedExpireOffers clears the on-offer state of products whose offer window
// has passed, so countdowns never go negative and expired offers drop off the
// offers page.
func (a *Application) SchedExpireOffers() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	result := a.gormDB.Model(&domain.Product{}).
		Where("is_on_offer = ? AND offer_end_date IS NOT NULL AND offer_end_date < ?", true, time.Now()).
		Updates(map[string]interface{}{
			"is_on_offer":    false,
			"original_price": nil,
			"discount_price": nil,
			"offer_end_date": nil,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		zap.L().Error("offer expiry sweep failed", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		zap.L().Info("expired offers cleared", zap.Int64("count", result.RowsAffected))
		a.bus.Publish(domain.TableProducts, realtime.OpUpdate, 0)
	}
}
