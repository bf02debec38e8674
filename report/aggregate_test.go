package report

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"fintrack/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func TestCategoryTotals(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT category, COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "amount"}).
			AddRow("FOOD", "150.00").
			AddRow("TRANSPORT", "30.00"))

	start, end := MonthRange(2025, 3)
	totals, err := CategoryTotals(db, 1, start, end)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, models.CategoryFood, totals[0].Category)
	assert.True(t, totals[0].Amount.Equal(dec("150")))
	assert.Equal(t, models.CategoryTransport, totals[1].Category)
	assert.True(t, totals[1].Amount.Equal(dec("30")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthlySeries(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// two dates in March, one in November
	mock.ExpectQuery("SELECT date, COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"date", "amount"}).
			AddRow(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "100.00").
			AddRow(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), "50.00").
			AddRow(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "7.25"))

	series, err := MonthlySeries(db, 1, 2025)
	require.NoError(t, err)
	require.Len(t, series, 12)

	assert.Equal(t, "January", series[0].Month)
	assert.Equal(t, "December", series[11].Month)

	// March groups both dates, November keeps its own, the rest are zero
	assert.True(t, series[2].Amount.Equal(dec("150")))
	assert.True(t, series[10].Amount.Equal(dec("7.25")))
	for i, entry := range series {
		if i == 2 || i == 10 {
			continue
		}
		assert.True(t, entry.Amount.IsZero(), "month %s should be zero", entry.Month)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthlySeriesEmptyYear(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT date, COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"date", "amount"}))

	series, err := MonthlySeries(db, 1, 2024)
	require.NoError(t, err)
	require.Len(t, series, 12)
	for _, entry := range series {
		assert.True(t, entry.Amount.IsZero())
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestYearlySeries(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT date, COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"date", "amount"}).
			AddRow(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), "10.00").
			AddRow(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "20.00").
			AddRow(time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC), "5.00"))

	series, err := YearlySeries(db, 1, 2025)
	require.NoError(t, err)
	require.Len(t, series, 5)

	// ascending, ending at the current year
	assert.Equal(t, 2021, series[0].Year)
	assert.Equal(t, 2025, series[4].Year)

	assert.True(t, series[0].Amount.IsZero())
	assert.True(t, series[1].Amount.IsZero())
	assert.True(t, series[2].Amount.Equal(dec("10")))
	assert.True(t, series[3].Amount.IsZero())
	assert.True(t, series[4].Amount.Equal(dec("25")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildSummary(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT category, COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "amount"}).
			AddRow("FOOD", "150.00").
			AddRow("TRANSPORT", "30.00"))
	mock.ExpectQuery("SELECT COALESCE.* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("200.00"))

	summary, err := BuildSummary(db, 1, 2025, 3)
	require.NoError(t, err)

	assert.True(t, summary.TotalExpenses.Equal(dec("180")))
	// 200 budgeted - 180 spent
	assert.True(t, summary.RemainingBudget.Equal(dec("20")))
	// only categories that actually had spend
	require.Len(t, summary.CategoryTotals, 2)
	assert.Equal(t, "FOOD", summary.CategoryTotals[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildCombined(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// expenses: FOOD 100+50, TRANSPORT 30 in March 2025
	mock.ExpectQuery("SELECT category, COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "amount"}).
			AddRow("FOOD", "150.00").
			AddRow("TRANSPORT", "30.00"))

	budgetCols := []string{"id", "user_id", "amount", "category", "year", "month", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows(budgetCols).
			AddRow(1, 1, "120.00", "FOOD", 2025, 3, time.Now(), time.Now()).
			AddRow(2, 1, "60.00", "UTILITIES", 2025, 3, time.Now(), time.Now()))

	combined, err := BuildCombined(db, 1, 2025, 3)
	require.NoError(t, err)

	assert.True(t, combined.TotalExpenses.Equal(dec("180")))
	require.Len(t, combined.BudgetComparison, 2)

	food := combined.BudgetComparison[0]
	assert.Equal(t, models.CategoryFood, food.Category)
	assert.True(t, food.BudgetAmount.Equal(dec("120")))
	assert.True(t, food.ActualExpense.Equal(dec("150")))
	assert.True(t, food.Difference.Equal(dec("30")))
	assert.Equal(t, "125.00", food.PercentageUsed)

	// budget with no matching spend
	utilities := combined.BudgetComparison[1]
	assert.True(t, utilities.ActualExpense.IsZero())
	assert.True(t, utilities.Difference.Equal(dec("-60")))
	assert.Equal(t, "0.00", utilities.PercentageUsed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildExportRows(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	budgetCols := []string{"id", "user_id", "amount", "category", "year", "month", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows(budgetCols).
			AddRow(1, 1, "120.00", "FOOD", 2025, 3, time.Now(), time.Now()).
			AddRow(2, 1, "80.00", "TRANSPORT", 2025, 4, time.Now(), time.Now()))

	// FOOD spend split over two March dates; nothing for TRANSPORT in April
	mock.ExpectQuery("SELECT category, date, COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "date", "amount"}).
			AddRow("FOOD", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "100.00").
			AddRow("FOOD", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), "50.00").
			AddRow("TRANSPORT", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "30.00"))

	rows, err := BuildExportRows(db, 1, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 3, rows[0].Month)
	assert.Equal(t, models.CategoryFood, rows[0].Category)
	assert.True(t, rows[0].TotalSpent.Equal(dec("150")))
	assert.True(t, rows[0].BudgetAllocated.Equal(dec("120")))

	// TRANSPORT spend was in March, budget is for April: no match
	assert.Equal(t, 4, rows[1].Month)
	assert.True(t, rows[1].TotalSpent.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
