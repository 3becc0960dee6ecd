package services

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/utils"
)

// WriteReceiptPDF renders a consolidated session receipt as a one-column
// A4 document.
func WriteReceiptPDF(w io.Writer, r *SessionReceipt) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Sesion %d", r.SessionID), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Recibo de sesion #%d", r.SessionID), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, r.OpenedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, o := range r.Orders {
		pdf.SetFont("Helvetica", "B", 10)
		header := fmt.Sprintf("Orden #%d (%s)", o.OrderID, o.Status)
		if o.TableID != nil {
			header += fmt.Sprintf(" - mesa %d", *o.TableID)
		}
		pdf.CellFormat(0, 6, header, "B", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, line := range o.Lines {
			name := line.ProductName
			if name == "" {
				name = fmt.Sprintf("Producto %d", line.ProductID)
			}
			pdf.CellFormat(95, 5, tr(name), "", 0, "L", false, 0, "")
			pdf.CellFormat(25, 5, line.Quantity.StringFixed(MoneyScale), "", 0, "R", false, 0, "")
			pdf.CellFormat(30, 5, utils.FormatMoney(line.UnitPrice), "", 0, "R", false, 0, "")
			pdf.CellFormat(30, 5, utils.FormatMoney(line.LineTotal), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(150, 6, "Subtotal", "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, utils.FormatMoney(o.Total), "", 1, "R", false, 0, "")
		if o.Status == models.OrderCancelled {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(0, 5, "Orden cancelada, no suma al total", "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, utils.FormatMoney(r.GrandTotal), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}
