package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/Devstep613/doshihardware/internal/domain"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

type inquiryCsvRow struct {
	ID        int64  `csv:"id"`
	Name      string `csv:"name"`
	Email     string `csv:"email"`
	Phone     string `csv:"phone"`
	Message   string `csv:"message"`
	CreatedAt string `csv:"created_at"`
}

func registerExportRoutes() {
	webserver.ApiGET("/export/inquiries.csv", exportInquiriesCsv)
	webserver.ApiGET("/export/pricelist.xlsx", exportPriceListXlsx)
}

func exportInquiriesCsv(c echo.Context) error {
	var rows []domain.Inquiry
	if err := GetDB(c).Order("created_at DESC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiries", err.Error())
	}

	csvRows := make([]inquiryCsvRow, 0, len(rows))
	for _, r := range rows {
		csvRows = append(csvRows, inquiryCsvRow{
			ID:        r.ID,
			Name:      r.Name,
			Email:     r.Email,
			Phone:     r.Phone,
			Message:   r.Message,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := gocsv.MarshalString(&csvRows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export inquiries", err.Error())
	}

	logOperation(c, "export_inquiries", fmt.Sprintf("exported %d inquiries to csv", len(csvRows)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="inquiries.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}

func exportPriceListXlsx(c echo.Context) error {
	var rows []domain.Product
	if err := GetDB(c).Order("category ASC, name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	xls := excelize.NewFile()
	sheet := "Sheet1"
	headers := []string{"Product", "Category", "Price", "On Offer", "Discount Price", "Offer Ends"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		xls.SetCellValue(sheet, cell, h)
	}
	for i, p := range rows {
		rowNum := i + 2
		xls.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), p.Name)
		xls.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), p.Category)
		xls.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), p.Price)
		xls.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), p.IsOnOffer)
		if p.IsOnOffer && p.DiscountPrice != nil {
			xls.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), *p.DiscountPrice)
		}
		if p.IsOnOffer && p.OfferEndDate != nil {
			xls.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), p.OfferEndDate.Format("2006-01-02 15:04"))
		}
	}

	logOperation(c, "export_pricelist", fmt.Sprintf("exported %d products to xlsx", len(rows)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="pricelist.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return xls.Write(c.Response())
}
