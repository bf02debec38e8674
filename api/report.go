package api

import (
	"strconv"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/report"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the aggregate report views.
type ReportHandler struct{}

// NewReportHandler creates the report handler.
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// yearParam reads a year query parameter, defaulting to the current year.
func yearParam(c *gin.Context) (int, bool) {
	s := c.Query("year")
	if s == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1970 || year > 2100 {
		return 0, false
	}
	return year, true
}

// monthParam reads a month query parameter; def is used when absent.
func monthParam(c *gin.Context, def int) (int, bool) {
	s := c.Query("month")
	if s == "" {
		return def, true
	}
	month, err := strconv.Atoi(s)
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}

// GetSummary returns the dashboard summary for one month
// @Summary Expense summary
// @Description Total spend, per-category spend and remaining budget for a month (defaults to the current one)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "year (default: current)"
// @Param month query int false "month 1-12 (default: current)"
// @Success 200 {object} Response{data=report.Summary} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/expenses/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	year, ok := yearParam(c)
	if !ok {
		BadRequest(c, "invalid year")
		return
	}
	month, ok := monthParam(c, int(time.Now().Month()))
	if !ok {
		BadRequest(c, "month must be between 1 and 12")
		return
	}

	summary, err := report.BuildSummary(database.DB, userID, year, month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build summary"))
		return
	}

	Success(c, summary)
}

// GetCategoryReport returns a zero-filled category breakdown for a year
// @Summary Category report
// @Description Yearly spend per category; always exactly one row per category, zero-filled
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "year (default: current)"
// @Success 200 {object} Response{data=[]report.CategoryTotal} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports/category [get]
func (h *ReportHandler) GetCategoryReport(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	year, ok := yearParam(c)
	if !ok {
		BadRequest(c, "invalid year")
		return
	}

	totals, err := report.CategoryReport(database.DB, userID, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build category report"))
		return
	}

	Success(c, totals)
}

// GetMonthlyReport returns the 12-month series for a year
// @Summary Monthly report
// @Description Spend per month for a year; always twelve rows, January through December, zero-filled
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "year (default: current)"
// @Success 200 {object} Response{data=[]report.MonthEntry} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	year, ok := yearParam(c)
	if !ok {
		BadRequest(c, "invalid year")
		return
	}

	series, err := report.MonthlySeries(database.DB, userID, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build monthly report"))
		return
	}

	Success(c, series)
}

// GetYearlyReport returns the trailing five-year series
// @Summary Yearly report
// @Description Spend per year for the trailing five years including the current one; always five rows, ascending
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]report.YearEntry} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports/yearly [get]
func (h *ReportHandler) GetYearlyReport(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	series, err := report.YearlySeries(database.DB, userID, time.Now().Year())
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build yearly report"))
		return
	}

	Success(c, series)
}

// GetCombinedReport returns category breakdown, total and budget comparison
// @Summary Combined report
// @Description Category breakdown, period total and budget-vs-actual comparison for a year or one month of it
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "year (default: current)"
// @Param month query int false "month 1-12 (default: whole year)"
// @Success 200 {object} Response{data=report.Combined} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports [get]
func (h *ReportHandler) GetCombinedReport(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	year, ok := yearParam(c)
	if !ok {
		BadRequest(c, "invalid year")
		return
	}
	// month 0 widens the report to the whole year
	month, ok := monthParam(c, 0)
	if !ok {
		BadRequest(c, "month must be between 1 and 12")
		return
	}

	combined, err := report.BuildCombined(database.DB, userID, year, month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build report"))
		return
	}

	Success(c, combined)
}
