package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/naturebridge/store_backend/models"
)

// GenerateInvoicePDF renders an order invoice as a PDF under
// uploads/invoices and returns its URL.
func GenerateInvoicePDF(order *models.Order, customerName string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.ID.Hex(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "NatureBridge Store")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice: %s", order.ID.Hex()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", customerName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Ship to: %s, %s %s, %s",
		order.ShippingAddress.Address, order.ShippingAddress.City,
		order.ShippingAddress.PostalCode, order.ShippingAddress.Country))
	pdf.Ln(10)

	// Line items table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range order.OrderItems {
		pdf.CellFormat(90, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.Price*float64(item.Qty)), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(150, 7, "Items", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", order.ItemsPrice), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", order.TaxPrice), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "Shipping", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", order.ShippingPrice), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", order.TotalPrice), "", 1, "R", false, 0, "")

	if err := os.MkdirAll(filepath.Join(uploadBaseDir, "invoices"), 0755); err != nil {
		return "", fmt.Errorf("failed to create invoices directory: %v", err)
	}

	filename := fmt.Sprintf("invoice-%s.pdf", order.ID.Hex())
	fullPath := filepath.Join(uploadBaseDir, "invoices", filename)
	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		return "", fmt.Errorf("failed to write invoice PDF: %v", err)
	}

	return fmt.Sprintf("%s/invoices/%s", baseURL, filename), nil
}
