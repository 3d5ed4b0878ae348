package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/owaies/QuizApp/internal/domain/entity"
	"github.com/owaies/QuizApp/internal/service"
)

var exportHeaders = []string{"Rank", "Username", "User ID", "Score", "Total questions", "Percentage", "Submitted at (UTC)"}

// ExportHandler выгружает журнал результатов для администратора
type ExportHandler struct {
	resultService *service.ResultService
}

// NewExportHandler создает новый обработчик экспорта
func NewExportHandler(resultService *service.ResultService) *ExportHandler {
	return &ExportHandler{resultService: resultService}
}

// ExportResults обрабатывает GET /api/results/export?format=csv|xlsx
func (h *ExportHandler) ExportResults(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		badRequest(c, "Format must be csv or xlsx")
		return
	}

	results, err := h.resultService.RankedResults(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("results_%s", time.Now().UTC().Format("20060102_150405"))
	switch format {
	case "xlsx":
		h.exportXLSX(c, results, filename)
	default:
		h.exportCSV(c, results, filename)
	}
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *ExportHandler) exportCSV(c *gin.Context, results []entity.Result, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeaders)
	for i, r := range results {
		_ = writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(r.Username),
			strconv.FormatUint(uint64(r.UserID), 10),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.TotalQuestions),
			strconv.FormatFloat(r.Percentage, 'f', 2, 64),
			r.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("[ExportHandler] Ошибка записи CSV: %v", err)
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *ExportHandler) exportXLSX(c *gin.Context, results []entity.Result, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Results"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Errorf("[ExportHandler] Ошибка переименования листа: %v", err)
		respondError(c, err)
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Errorf("[ExportHandler] Ошибка создания StreamWriter: %v", err)
		respondError(c, err)
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		respondError(c, err)
		return
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			respondError(c, err)
			return
		}
		row := []interface{}{
			i + 1,
			sanitizeForExcel(r.Username),
			r.UserID,
			r.Score,
			r.TotalQuestions,
			r.Percentage,
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Errorf("[ExportHandler] Ошибка записи строки %d: %v", i+2, err)
			respondError(c, err)
			return
		}
	}

	if err := sw.Flush(); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Errorf("[ExportHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
