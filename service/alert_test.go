package service

import (
	"testing"

	"fintrack/config"
	"fintrack/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestAlertService(enabled bool) *AlertService {
	return NewAlertService(&config.EmailConfig{Enabled: enabled})
}

func TestAlertServiceEnabled(t *testing.T) {
	assert.False(t, newTestAlertService(false).Enabled())
	assert.True(t, newTestAlertService(true).Enabled())
}

func TestSendOverspendAlertDisabled(t *testing.T) {
	s := newTestAlertService(false)
	err := s.SendOverspendAlert("a@example.com", "alice", models.CategoryFood,
		decimal.NewFromInt(150), decimal.NewFromInt(120), 2025, 3)
	assert.Error(t, err)
}

func TestOverspendBody(t *testing.T) {
	s := newTestAlertService(true)
	body := s.overspendBody("alice", models.CategoryFood,
		decimal.NewFromInt(150), decimal.NewFromInt(120), "March 2025")

	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "FOOD")
	assert.Contains(t, body, "March 2025")
	assert.Contains(t, body, "150.00")
	assert.Contains(t, body, "120.00")
	// over by 30
	assert.Contains(t, body, "30.00")
}
