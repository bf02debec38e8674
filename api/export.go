package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/report"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves the downloadable budget report.
type ExportHandler struct{}

// NewExportHandler creates the export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportHeaders is the column order of the budget report, CSV and Excel alike.
var exportHeaders = []string{"month", "total_spent", "category", "budgetAllocated"}

// DownloadCSV streams the budget report for a year as CSV
// @Summary Download budget report (CSV)
// @Description One row per budget in the year, matched to the actual spend of its category and month
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param year query int false "year (default: current)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports/download [get]
func (h *ExportHandler) DownloadCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	year, ok := yearParam(c)
	if !ok {
		BadRequest(c, "invalid year")
		return
	}

	rows, err := report.BuildExportRows(database.DB, userID, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build report"))
		return
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write(exportHeaders); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}

	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.Month),
			row.TotalSpent.StringFixed(2),
			string(row.Category),
			row.BudgetAllocated.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "failed to generate CSV")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("budget_report_%d.csv", year)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel streams the budget report for a year as an Excel workbook
// @Summary Download budget report (Excel)
// @Description Same rows as the CSV download, as a styled .xlsx sheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param year query int false "year (default: current)"
// @Success 200 {file} file "Excel file"
// @Failure 400 {object} Response "invalid request"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/reports/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	year, ok := yearParam(c)
	if !ok {
		BadRequest(c, "invalid year")
		return
	}

	rows, err := report.BuildExportRows(database.DB, userID, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build report"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Budget Report"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 18)
	f.SetColWidth(sheetName, "D", "D", 18)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, row := range rows {
		r := i + 2
		spent, _ := row.TotalSpent.Float64()
		allocated, _ := row.BudgetAllocated.Float64()
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), row.Month)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), spent)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), string(row.Category))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), allocated)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("D%d", r), dataStyle)
	}

	filename := fmt.Sprintf("budget_report_%d.xlsx", year)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "failed to generate Excel file")
		return
	}
}
