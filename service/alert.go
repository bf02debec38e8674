package service

import (
	"fmt"
	"time"

	"fintrack/config"
	"fintrack/models"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// AlertService sends budget overspend notifications by email.
type AlertService struct {
	cfg *config.EmailConfig
}

// NewAlertService creates the alert service.
func NewAlertService(cfg *config.EmailConfig) *AlertService {
	return &AlertService{cfg: cfg}
}

// Enabled reports whether alert email is configured.
func (s *AlertService) Enabled() bool {
	return s.cfg.Enabled
}

// SendOverspendAlert notifies a user that a category's spend exceeded its
// monthly budget.
func (s *AlertService) SendOverspendAlert(toEmail, username string, category models.Category, spent, budget decimal.Decimal, year, month int) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email alerts are not enabled")
	}

	period := fmt.Sprintf("%s %d", time.Month(month).String(), year)
	subject := fmt.Sprintf("Budget exceeded: %s (%s)", category, period)
	body := s.overspendBody(username, category, spent, budget, period)

	return s.send(toEmail, subject, body)
}

func (s *AlertService) overspendBody(username string, category models.Category, spent, budget decimal.Decimal, period string) string {
	over := spent.Sub(budget)
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 24px; border: 1px solid #eee; border-radius: 8px;">
    <h2 style="color: #dc2626;">Budget exceeded</h2>
    <p>Hi <strong>%s</strong>,</p>
    <p>Your spending in <strong>%s</strong> for <strong>%s</strong> has gone over budget:</p>
    <table style="border-collapse: collapse; width: 100%%;">
      <tr><td style="padding: 6px 12px;">Budgeted</td><td style="padding: 6px 12px; text-align: right;">%s</td></tr>
      <tr><td style="padding: 6px 12px;">Spent</td><td style="padding: 6px 12px; text-align: right;">%s</td></tr>
      <tr style="color: #dc2626; font-weight: bold;"><td style="padding: 6px 12px;">Over by</td><td style="padding: 6px 12px; text-align: right;">%s</td></tr>
    </table>
    <p style="color: #6c757d; font-size: 12px;">This message was sent automatically; please do not reply.</p>
  </div>
</body>
</html>
`, username, category, period, budget.StringFixed(2), spent.StringFixed(2), over.StringFixed(2))
}

func (s *AlertService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
