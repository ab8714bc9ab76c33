package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/harhspalod/ecommerce-main/internal/models"
)

// Service writes purchase report workbooks for the admin panel's export button
type Service struct {
	exportsDir string
}

// NewService creates the export directory when missing
func NewService(exportsDir string) *Service {
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}
	return &Service{exportsDir: exportsDir}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Success  bool
	Message  string
	Filename string
	FilePath string
}

// ExportPurchases writes the enriched purchase rows to a timestamped xlsx file
func (s *Service) ExportPurchases(records []models.PurchaseRecord) (*ExportResult, error) {
	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("purchases_%d.xlsx", timestamp)
	filePath := filepath.Join(s.exportsDir, filename)

	f := excelize.NewFile()

	sheetName := "Purchases"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	columns := []string{
		"id", "customer_name", "customer_email", "customer_phone",
		"product_name", "product_price", "quantity", "price_paid_total",
		"purchase_date",
	}

	for i, col := range columns {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFF00"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", columnToLetter(len(columns))+"1", headerStyle)
	}

	for i, col := range columns {
		colLetter := columnToLetter(i + 1)
		width := 20.0

		switch col {
		case "id":
			width = 38.0
		case "customer_name", "product_name":
			width = 25.0
		case "customer_email":
			width = 30.0
		case "quantity":
			width = 10.0
		}

		f.SetColWidth(sheetName, colLetter, colLetter, width)
	}

	if len(records) > 0 {
		for j, record := range records {
			rowNum := j + 2

			f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), record.ID)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), record.CustomerName)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), record.CustomerEmail)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), record.CustomerPhone)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), record.ProductName)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowNum), record.ProductPrice)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowNum), record.Quantity)
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowNum), record.TotalAmount)
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowNum), record.PurchaseDate)
		}
	} else {
		f.SetCellValue(sheetName, "A2", "no purchases recorded")
	}

	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save Excel file: %w", err)
	}

	return &ExportResult{
		Success:  true,
		Message:  fmt.Sprintf("Successfully exported %d purchases", len(records)),
		Filename: filename,
		FilePath: filePath,
	}, nil
}

// columnToLetter converts a 1-based column number to its Excel letter
func columnToLetter(col int) string {
	var result string
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
