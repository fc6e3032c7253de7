package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the requester's expenses and incomes.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

type exportRow struct {
	Kind        string // Spesa / Entrata
	Category    string
	Amount      string
	Description string
	Date        string
}

func (h *ExportHandler) loadRows(userID uint) ([]exportRow, error) {
	var expenses []models.Expense
	if err := h.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	var incomes []models.Income
	if err := h.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&incomes).Error; err != nil {
		return nil, err
	}

	rows := make([]exportRow, 0, len(expenses)+len(incomes))
	for i := range expenses {
		e := &expenses[i]
		rows = append(rows, exportRow{
			Kind:        "Spesa",
			Category:    e.Category,
			Amount:      e.Amount.StringFixed(2),
			Description: e.Description,
			Date:        e.Date.Format("2006-01-02"),
		})
	}
	for i := range incomes {
		in := &incomes[i]
		rows = append(rows, exportRow{
			Kind:        "Entrata",
			Category:    in.Category,
			Amount:      in.Amount.StringFixed(2),
			Description: in.Description,
			Date:        in.Date.Format("2006-01-02"),
		})
	}
	return rows, nil
}

var exportHeaders = []string{"Tipo", "Categoria", "Importo", "Descrizione", "Data"}

// ExportCSV downloads the records as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.loadRows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'esportazione.")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"movimenti_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel detects the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{r.Kind, r.Category, r.Amount, r.Description, r.Date})
	}
}

// ExportXLSX downloads the records as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.loadRows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'esportazione.")
		return
	}

	f := excelize.NewFile()
	sheetName := "Movimenti"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la creazione del foglio.")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Date)
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"movimenti_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'esportazione.")
	}
}
