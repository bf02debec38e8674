package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is one monthly allocation per (user, category, year, month).
// The composite unique index is the authority on that rule: concurrent
// creates race on the constraint, not on the handler's pre-check.
// Budgets are hard-deleted; a soft-delete column would leave tombstones
// inside the unique index scope and block re-creating a deleted budget.
type Budget struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"uniqueIndex:idx_budget_owner_period;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category  Category        `json:"category" gorm:"size:20;uniqueIndex:idx_budget_owner_period;not null"`
	Year      int             `json:"year" gorm:"uniqueIndex:idx_budget_owner_period;not null"`
	Month     int             `json:"month" gorm:"uniqueIndex:idx_budget_owner_period;not null;check:month_valid,month >= 1 AND month <= 12"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      User            `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Budget) TableName() string {
	return "budgets"
}
