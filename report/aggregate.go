package report

import (
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryTotal is one category's expense sum within a period.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthEntry is one month of a yearly series. Month is the long English
// month name ("January").
type MonthEntry struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// YearEntry is one year of the trailing-years series.
type YearEntry struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotals sums a user's expenses per category over [start, end),
// descending by amount. Categories without expenses are absent; callers
// needing full coverage run the result through FillCategories.
func CategoryTotals(db *gorm.DB, userID uint, start, end time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("category").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// dateTotal is one calendar date's expense sum, the raw grouping the series
// reports bucket from.
type dateTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}

func dateTotals(db *gorm.DB, userID uint, start, end time.Time) ([]dateTotal, error) {
	var rows []dateTotal
	err := db.Model(&models.Expense{}).
		Select("date, COALESCE(SUM(amount), 0) AS amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlySeries returns exactly 12 entries, January through December, for
// the given year. Months without expenses carry an exact zero.
func MonthlySeries(db *gorm.DB, userID uint, year int) ([]MonthEntry, error) {
	start, end := YearRange(year)
	rows, err := dateTotals(db, userID, start, end)
	if err != nil {
		return nil, err
	}

	sums := make(map[time.Month]decimal.Decimal, 12)
	for _, row := range rows {
		m := row.Date.Month()
		sums[m] = sums[m].Add(row.Amount)
	}

	series := make([]MonthEntry, 0, 12)
	for m := time.January; m <= time.December; m++ {
		series = append(series, MonthEntry{
			Month:  m.String(),
			Amount: sums[m],
		})
	}
	return series, nil
}

// YearlySeries returns exactly 5 entries covering the trailing five years
// ending at currentYear, ascending. Years without expenses carry zero.
func YearlySeries(db *gorm.DB, userID uint, currentYear int) ([]YearEntry, error) {
	startYear := currentYear - 4
	start, _ := YearRange(startYear)
	_, end := YearRange(currentYear)
	rows, err := dateTotals(db, userID, start, end)
	if err != nil {
		return nil, err
	}

	sums := make(map[int]decimal.Decimal, 5)
	for _, row := range rows {
		y := row.Date.Year()
		sums[y] = sums[y].Add(row.Amount)
	}

	series := make([]YearEntry, 0, 5)
	for y := startYear; y <= currentYear; y++ {
		series = append(series, YearEntry{
			Year:   y,
			Amount: sums[y],
		})
	}
	return series, nil
}

// monthCategoryTotals buckets a year's date aggregates into per-(category,
// calendar month) sums. Backs the budget report export.
func monthCategoryTotals(db *gorm.DB, userID uint, year int) (map[models.Category]map[int]decimal.Decimal, error) {
	start, end := YearRange(year)
	var rows []struct {
		Category models.Category
		Date     time.Time
		Amount   decimal.Decimal
	}
	err := db.Model(&models.Expense{}).
		Select("category, date, COALESCE(SUM(amount), 0) AS amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("category").
		Group("date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[models.Category]map[int]decimal.Decimal)
	for _, row := range rows {
		byMonth := totals[row.Category]
		if byMonth == nil {
			byMonth = make(map[int]decimal.Decimal)
			totals[row.Category] = byMonth
		}
		m := int(row.Date.Month())
		byMonth[m] = byMonth[m].Add(row.Amount)
	}
	return totals, nil
}
