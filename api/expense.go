package api

import (
	"log"
	"strconv"
	"strings"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/report"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler serves expense CRUD and listing.
type ExpenseHandler struct {
	alerts *service.AlertService
}

// NewExpenseHandler creates the expense handler.
func NewExpenseHandler(alerts *service.AlertService) *ExpenseHandler {
	return &ExpenseHandler{alerts: alerts}
}

// ExpenseRequest is the create/update payload. Updates are full
// replacements, so the same shape and validation apply to both.
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" example:"42.50"`
	Description string          `json:"description" example:"groceries"`
	Category    string          `json:"category" example:"FOOD"`
	Date        string          `json:"date" example:"2025-03-05"`
}

// validate checks every field and names the first offending one.
// Runs before any persistence, so a rejected request mutates nothing.
func (r *ExpenseRequest) validate() (time.Time, string) {
	if r.Amount.Sign() <= 0 {
		return time.Time{}, "amount must be greater than zero"
	}
	if strings.TrimSpace(r.Description) == "" {
		return time.Time{}, "description is required"
	}
	if !models.ValidCategory(r.Category) {
		return time.Time{}, "invalid category"
	}
	date, err := time.ParseInLocation("2006-01-02", r.Date, time.Local)
	if err != nil {
		return time.Time{}, "date must be in YYYY-MM-DD format"
	}
	return date, ""
}

// ExpenseListRequest is the list query.
type ExpenseListRequest struct {
	Page     int    `form:"page" example:"1"`
	Limit    int    `form:"limit" example:"10"`
	Category string `form:"category" example:"FOOD"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalExpenses int64 `json:"totalExpenses"`
}

// ExpenseListResponse is one page of expenses.
type ExpenseListResponse struct {
	Expenses   []models.Expense `json:"expenses"`
	Pagination Pagination       `json:"pagination"`
}

// Create records a new expense
// @Summary Create expense
// @Description Record a new expense for the authenticated user
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "expense payload"
// @Success 200 {object} Response{data=models.Expense} "created"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	date, msg := req.validate()
	if msg != "" {
		BadRequest(c, msg)
		return
	}

	expense := models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    models.Category(req.Category),
		Description: req.Description,
		Date:        date,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create expense"))
		return
	}

	h.checkBudgetOverspend(userID, expense.Category, date)

	SuccessWithMessage(c, "created", expense)
}

// checkBudgetOverspend sends an alert email when this expense pushed the
// category over its monthly budget. Failures are logged and never affect
// the request outcome.
func (h *ExpenseHandler) checkBudgetOverspend(userID uint, category models.Category, date time.Time) {
	if h.alerts == nil || !h.alerts.Enabled() {
		return
	}

	year, month := date.Year(), int(date.Month())

	var budget models.Budget
	err := database.DB.
		Where("user_id = ? AND category = ? AND year = ? AND month = ?", userID, category, year, month).
		First(&budget).Error
	if err != nil {
		return
	}

	spent, err := report.SpentByCategory(database.DB, userID, year, month)
	if err != nil {
		log.Printf("overspend check: aggregate failed: %v", err)
		return
	}
	if spent[category].LessThanOrEqual(budget.Amount) {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil || user.Email == "" {
		return
	}

	if err := h.alerts.SendOverspendAlert(user.Email, user.Username, category, spent[category], budget.Amount, year, month); err != nil {
		log.Printf("overspend check: send alert to %s failed: %v", user.Email, err)
	}
}

// List returns a page of the user's expenses
// @Summary List expenses
// @Description List the authenticated user's expenses, newest first, with pagination
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Param category query string false "category filter"
// @Success 200 {object} Response{data=ExpenseListResponse} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	query := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to count expenses"))
		return
	}

	var expenses []models.Expense
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list expenses"))
		return
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	Success(c, ExpenseListResponse{
		Expenses: expenses,
		Pagination: Pagination{
			CurrentPage:   req.Page,
			TotalPages:    totalPages,
			TotalExpenses: total,
		},
	})
}

// Get returns a single expense
// @Summary Get expense
// @Description Fetch one expense by id; 404 when absent or owned by another user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response{data=models.Expense} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	Success(c, expense)
}

// Update replaces an expense
// @Summary Update expense
// @Description Full replacement of amount, description, category and date
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Param request body ExpenseRequest true "expense payload"
// @Success 200 {object} Response{data=models.Expense} "updated"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	date, msg := req.validate()
	if msg != "" {
		BadRequest(c, msg)
		return
	}

	updates := map[string]interface{}{
		"amount":      req.Amount,
		"description": req.Description,
		"category":    req.Category,
		"date":        date,
	}

	if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update expense"))
		return
	}

	database.DB.First(&expense, expense.ID)
	SuccessWithMessage(c, "updated", expense)
}

// Delete removes an expense
// @Summary Delete expense
// @Description Delete one expense by id; 404 when absent or owned by another user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete expense"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
