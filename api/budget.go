package api

import (
	"errors"
	"strconv"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/report"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// duplicateBudgetMessage is the user-facing duplicate error, returned
// identically whether the pre-check or the unique constraint caught it.
const duplicateBudgetMessage = "Budget already exists for this month and category"

// BudgetHandler serves budget CRUD and the spent-augmented listing.
type BudgetHandler struct{}

// NewBudgetHandler creates the budget handler.
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// BudgetRequest is the create/update payload; updates are full replacements.
type BudgetRequest struct {
	Amount   decimal.Decimal `json:"amount" example:"300.00"`
	Category string          `json:"category" example:"FOOD"`
	Month    int             `json:"month" example:"3"`
	Year     int             `json:"year" example:"2025"`
}

// validate checks every field and names the first offending one.
func (r *BudgetRequest) validate() string {
	if r.Amount.Sign() <= 0 {
		return "amount must be greater than zero"
	}
	if !models.ValidCategory(r.Category) {
		return "invalid category"
	}
	if r.Month < 1 || r.Month > 12 {
		return "month must be between 1 and 12"
	}
	if r.Year < 1970 || r.Year > 2100 {
		return "year is out of range"
	}
	return ""
}

// BudgetListRequest is the list query; year and month default to today.
type BudgetListRequest struct {
	Year     int    `form:"year" example:"2025"`
	Month    int    `form:"month" example:"3"`
	Category string `form:"category" example:"FOOD"`
}

// BudgetWithSpent is a budget augmented with the actual spend of its
// category in its period.
type BudgetWithSpent struct {
	models.Budget
	Spent decimal.Decimal `json:"spent"`
}

// List returns the user's budgets for a period, each with computed spend
// @Summary List budgets
// @Description List budgets for a year/month (defaults to the current one), each augmented with actual spend
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param year query int false "year (default: current)"
// @Param month query int false "month 1-12 (default: current)"
// @Param category query string false "category filter"
// @Success 200 {object} Response{data=[]BudgetWithSpent} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req BudgetListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	now := time.Now()
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Month < 1 || req.Month > 12 {
		BadRequest(c, "month must be between 1 and 12")
		return
	}

	query := database.DB.Where("user_id = ? AND year = ? AND month = ?", userID, req.Year, req.Month)
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	var budgets []models.Budget
	if err := query.Order("created_at DESC").Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list budgets"))
		return
	}

	spent, err := report.SpentByCategory(database.DB, userID, req.Year, req.Month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to aggregate expenses"))
		return
	}

	result := make([]BudgetWithSpent, 0, len(budgets))
	for _, b := range budgets {
		result = append(result, BudgetWithSpent{
			Budget: b,
			Spent:  spent[b.Category],
		})
	}

	Success(c, result)
}

// Create adds a budget for one (category, month, year)
// @Summary Create budget
// @Description Create a monthly budget; at most one budget per category and month
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "budget payload"
// @Success 200 {object} Response{data=models.Budget} "created"
// @Failure 400 {object} Response "invalid request or duplicate budget"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if msg := req.validate(); msg != "" {
		BadRequest(c, msg)
		return
	}

	// Friendly pre-check; the unique index is still the authority under
	// concurrent creates.
	var existing models.Budget
	err := database.DB.
		Where("user_id = ? AND category = ? AND year = ? AND month = ?", userID, req.Category, req.Year, req.Month).
		First(&existing).Error
	if err == nil {
		BadRequest(c, duplicateBudgetMessage)
		return
	}

	budget := models.Budget{
		UserID:   userID,
		Amount:   req.Amount,
		Category: models.Category(req.Category),
		Year:     req.Year,
		Month:    req.Month,
	}

	if err := database.DB.Create(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, duplicateBudgetMessage)
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to create budget"))
		return
	}

	SuccessWithMessage(c, "created", budget)
}

// Get returns a single budget
// @Summary Get budget
// @Description Fetch one budget by id; 404 when absent or owned by another user
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response{data=models.Budget} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "budget not found")
		return
	}

	Success(c, budget)
}

// Update replaces a budget
// @Summary Update budget
// @Description Full replacement of amount, category, month and year
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Param request body BudgetRequest true "budget payload"
// @Success 200 {object} Response{data=models.Budget} "updated"
// @Failure 400 {object} Response "invalid request or duplicate budget"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "budget not found")
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if msg := req.validate(); msg != "" {
		BadRequest(c, msg)
		return
	}

	updates := map[string]interface{}{
		"amount":   req.Amount,
		"category": req.Category,
		"year":     req.Year,
		"month":    req.Month,
	}

	if err := database.DB.Model(&budget).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, duplicateBudgetMessage)
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to update budget"))
		return
	}

	database.DB.First(&budget, budget.ID)
	SuccessWithMessage(c, "updated", budget)
}

// Delete removes a budget
// @Summary Delete budget
// @Description Delete one budget by id; 404 when absent or owned by another user
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "budget not found")
		return
	}

	if err := database.DB.Delete(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete budget"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
