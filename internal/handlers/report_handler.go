package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/services"
	"github.com/harhspalod/ecommerce-main/internal/services/excel"
)

// ReportHandler handles purchase report exports
type ReportHandler struct {
	purchaseService *services.PurchaseService
	excelService    *excel.Service
	exportsDir      string
}

func NewReportHandler(db *gorm.DB, exportsDir string) *ReportHandler {
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	return &ReportHandler{
		purchaseService: services.NewPurchaseService(purchaseRepo, customerRepo, productRepo),
		excelService:    excel.NewService(exportsDir),
		exportsDir:      exportsDir,
	}
}

// ExportPurchases godoc
// @Summary Export purchases to Excel
// @Description Export the enriched purchase history to an xlsx workbook
// @Tags reports
// @Accept json
// @Produce json
// @Param customerId query string false "Customer ID"
// @Param productId query string false "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/reports/purchases/export [get]
func (h *ReportHandler) ExportPurchases(c *gin.Context) {
	records, err := h.purchaseService.History(c.Query("customerId"), c.Query("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.excelService.ExportPurchases(records)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  result.Message,
		"filename": result.Filename,
		"download": fmt.Sprintf("/api/v1/reports/purchases/download/%s", result.Filename),
	})
}

// DownloadPurchaseReport godoc
// @Summary Download an exported purchase report
// @Tags reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param filename path string true "Report filename"
// @Success 200 {file} binary "Excel file"
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/reports/purchases/download/{filename} [get]
func (h *ReportHandler) DownloadPurchaseReport(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	filePath := filepath.Join(h.exportsDir, filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(filePath)
}
