// Package mailer sends back-office notification mail. Delivery is
// best-effort and asynchronous: failures are logged, never surfaced to the
// submitting visitor.
package mailer

import (
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Settings is the SMTP configuration resolved from system settings.
type Settings struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

// SettingsSource resolves the current SMTP settings on each send, so
// back-office settings changes apply without a restart.
type SettingsSource func() Settings

type Sender struct {
	source SettingsSource
	pool   *ants.Pool
}

func NewSender(source SettingsSource) (*Sender, error) {
	pool, err := ants.NewPool(4)
	if err != nil {
		return nil, errors.Wrap(err, "mailer: create worker pool")
	}
	return &Sender{source: source, pool: pool}, nil
}

// NotifyAsync queues a notification mail. Returns immediately; delivery
// happens on the worker pool.
func (s *Sender) NotifyAsync(subject, body string) {
	err := s.pool.Submit(func() {
		if err := s.send(subject, body); err != nil {
			zap.L().Warn("mail notification failed", zap.String("subject", subject), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Warn("mail notification dropped", zap.String("subject", subject), zap.Error(err))
	}
}

func (s *Sender) send(subject, body string) error {
	cfg := s.source()
	if !cfg.Enabled || cfg.Host == "" || cfg.NotifyTo == "" {
		return nil
	}
	m := gomail.NewMessage()
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	m.SetHeader("From", from)
	m.SetHeader("To", cfg.NotifyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}

// Release stops the worker pool.
func (s *Sender) Release() {
	s.pool.Release()
}
