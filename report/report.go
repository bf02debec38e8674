package report

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/models"
)

// NameValue is a chart-friendly category slice of the dashboard summary.
type NameValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Summary is the dashboard view for one month: what was spent, where, and
// how much of the month's combined budget is left.
type Summary struct {
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	CategoryTotals  []NameValue     `json:"categoryTotals"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
}

// ComparisonRow pairs one budget with the actual spend in its category and
// period.
type ComparisonRow struct {
	Category       models.Category `json:"category"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount"`
	ActualExpense  decimal.Decimal `json:"actualExpense"`
	Difference     decimal.Decimal `json:"difference"`
	PercentageUsed string          `json:"percentageUsed"`
}

// Combined is the full report view: category breakdown, period total, and
// budget-vs-actual rows.
type Combined struct {
	CategoryExpenses []CategoryTotal `json:"categoryExpenses"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	BudgetComparison []ComparisonRow `json:"budgetComparison"`
}

// ExportRow is one line of the downloadable budget report: a budget matched
// to the actual spend of its category in its calendar month.
type ExportRow struct {
	Month           int             `json:"month"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	Category        models.Category `json:"category"`
	BudgetAllocated decimal.Decimal `json:"budgetAllocated"`
}

// BuildSummary computes the dashboard summary for one month. Categories
// without spend are omitted here; only the category report guarantees full
// coverage.
func BuildSummary(db *gorm.DB, userID uint, year, month int) (*Summary, error) {
	start, end := MonthRange(year, month)

	totals, err := CategoryTotals(db, userID, start, end)
	if err != nil {
		return nil, err
	}

	totalExpenses := decimal.Zero
	categoryTotals := make([]NameValue, 0, len(totals))
	for _, t := range totals {
		totalExpenses = totalExpenses.Add(t.Amount)
		categoryTotals = append(categoryTotals, NameValue{
			Name:  string(t.Category),
			Value: t.Amount,
		})
	}

	var totalBudget decimal.Decimal
	err = db.Model(&models.Budget{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Scan(&totalBudget).Error
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalExpenses:   totalExpenses,
		CategoryTotals:  categoryTotals,
		RemainingBudget: totalBudget.Sub(totalExpenses),
	}, nil
}

// CategoryReport returns exactly one row per category for the given year,
// zero-filled, in the fixed category order.
func CategoryReport(db *gorm.DB, userID uint, year int) ([]CategoryTotal, error) {
	start, end := YearRange(year)
	totals, err := CategoryTotals(db, userID, start, end)
	if err != nil {
		return nil, err
	}
	return FillCategories(totals), nil
}

// FillCategories completes a category aggregation so every category appears
// once, in the fixed order, with zero for categories that had no expenses.
// Every report that promises full category coverage goes through here.
func FillCategories(totals []CategoryTotal) []CategoryTotal {
	byCategory := make(map[models.Category]decimal.Decimal, len(totals))
	for _, t := range totals {
		byCategory[t.Category] = t.Amount
	}

	filled := make([]CategoryTotal, 0, len(models.AllCategories()))
	for _, c := range models.AllCategories() {
		filled = append(filled, CategoryTotal{
			Category: c,
			Amount:   byCategory[c],
		})
	}
	return filled
}

// BuildCombined computes the combined report for a year, or for one month
// of it when month is 1-12.
func BuildCombined(db *gorm.DB, userID uint, year, month int) (*Combined, error) {
	start, end := PeriodRange(year, month)

	categoryExpenses, err := CategoryTotals(db, userID, start, end)
	if err != nil {
		return nil, err
	}

	budgetQuery := db.Where("user_id = ? AND year = ?", userID, year)
	if month >= 1 && month <= 12 {
		budgetQuery = budgetQuery.Where("month = ?", month)
	}
	var budgets []models.Budget
	if err := budgetQuery.Find(&budgets).Error; err != nil {
		return nil, err
	}

	totalExpenses := decimal.Zero
	byCategory := make(map[models.Category]decimal.Decimal, len(categoryExpenses))
	for _, t := range categoryExpenses {
		totalExpenses = totalExpenses.Add(t.Amount)
		byCategory[t.Category] = t.Amount
	}

	comparison := make([]ComparisonRow, 0, len(budgets))
	for _, b := range budgets {
		actual := byCategory[b.Category]
		comparison = append(comparison, ComparisonRow{
			Category:       b.Category,
			BudgetAmount:   b.Amount,
			ActualExpense:  actual,
			Difference:     actual.Sub(b.Amount),
			PercentageUsed: PercentageUsed(actual, b.Amount),
		})
	}

	return &Combined{
		CategoryExpenses: categoryExpenses,
		TotalExpenses:    totalExpenses,
		BudgetComparison: comparison,
	}, nil
}

// PercentageUsed formats actual/budget as a percentage with two decimals.
// Computed uniformly, so "no matching expenses" and "exactly zero spend"
// both come out as "0.00". A zero budget amount (rejected at the API, but
// guarded here anyway) reports "0.00" instead of dividing.
func PercentageUsed(actual, budget decimal.Decimal) string {
	if budget.IsZero() {
		return decimal.Zero.StringFixed(2)
	}
	return actual.Div(budget).Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// SpentByCategory returns the per-category spend for one month, used to
// decorate budget listings with their actual spend.
func SpentByCategory(db *gorm.DB, userID uint, year, month int) (map[models.Category]decimal.Decimal, error) {
	start, end := MonthRange(year, month)
	totals, err := CategoryTotals(db, userID, start, end)
	if err != nil {
		return nil, err
	}
	spent := make(map[models.Category]decimal.Decimal, len(totals))
	for _, t := range totals {
		spent[t.Category] = t.Amount
	}
	return spent, nil
}

// BuildExportRows produces the downloadable budget report for a year: one
// row per budget, ascending by month, with the actual spend of the budget's
// category in the budget's calendar month (zero when nothing matches).
func BuildExportRows(db *gorm.DB, userID uint, year int) ([]ExportRow, error) {
	var budgets []models.Budget
	err := db.Where("user_id = ? AND year = ?", userID, year).
		Order("month ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	totals, err := monthCategoryTotals(db, userID, year)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, ExportRow{
			Month:           b.Month,
			TotalSpent:      totals[b.Category][b.Month],
			Category:        b.Category,
			BudgetAllocated: b.Amount,
		})
	}
	return rows, nil
}
