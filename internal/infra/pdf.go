package infra

// pdf.go: printable reports rendered with go-pdf/fpdf on US Letter paper:
//   - inventory snapshot (optionally one branch)
//   - single sale receipt
//   - daily closing summary
//
// Every generator writes into dir (created if needed) and returns the file path.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/yery-max/Proyecto-final/internal/model"
)

// ErrUnsafeReportName is returned when a report file name would leave the
// reports directory.
var ErrUnsafeReportName = errors.New("pdf: nombre de archivo de reporte invalido")

const (
	pdfMargin   = 25.4 // one inch, in mm
	pdfRowH     = 7.0
	allBranches = "Todas"
)

// InventoryBranchLabel is the branch name printed on an unfiltered inventory report.
func InventoryBranchLabel(branch string) string {
	if branch == "" {
		return allBranches
	}
	return branch
}

// GenerateInventoryPDF renders products as a table, repeating the header on
// every page. branch is only used for the title and the file name.
func GenerateInventoryPDF(products []model.Product, branch string, now time.Time, dir string) (string, error) {
	label := InventoryBranchLabel(branch)
	filePath, err := reportPath(dir, fmt.Sprintf("reporte_inventario_%s_%s.pdf", label, now.Format("20060102")))
	if err != nil {
		return "", err
	}

	pdf := newLetterPDF()
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(pdf, "Reporte de Inventario - Sucursal: "+label), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	if len(products) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, tr(pdf, "No hay productos en el inventario para esta selección."), "", 1, "L", false, 0, "")
		return finishPDF(pdf, filePath)
	}

	cols := []float64{38, 70, 25, 30}
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(cols[0], pdfRowH, "SKU", "B", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], pdfRowH, "Nombre", "B", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], pdfRowH, "Stock", "B", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], pdfRowH, "Precio", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	header()
	for _, p := range products {
		if pageBreakNeeded(pdf) {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(cols[0], pdfRowH, tr(pdf, p.SKU), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], pdfRowH, tr(pdf, p.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], pdfRowH, strconv.Itoa(p.Stock), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], pdfRowH, money(p.Price), "", 1, "R", false, 0, "")
	}
	return finishPDF(pdf, filePath)
}

// GenerateReceiptPDF renders the receipt of one sale.
func GenerateReceiptPDF(sale model.Sale, dir string) (string, error) {
	filePath, err := reportPath(dir, fmt.Sprintf("recibo_%s.pdf", sale.ID))
	if err != nil {
		return "", err
	}

	pdf := newLetterPDF()
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Recibo de Venta", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "ID Venta: "+sale.ID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Fecha: "+sale.Timestamp.Format("02/01/2006 15:04:05"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(pdf, "Sucursal: "+sale.Branch), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	cols := []float64{28, 62, 22, 27, 26}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(cols[0], pdfRowH, "SKU", "B", 0, "L", false, 0, "")
	pdf.CellFormat(cols[1], pdfRowH, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(cols[2], pdfRowH, "Cantidad", "B", 0, "R", false, 0, "")
	pdf.CellFormat(cols[3], pdfRowH, "Precio Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(cols[4], pdfRowH, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range sale.Items {
		if pageBreakNeeded(pdf) {
			pdf.AddPage()
		}
		pdf.CellFormat(cols[0], pdfRowH, tr(pdf, it.SKU), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], pdfRowH, tr(pdf, it.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], pdfRowH, strconv.Itoa(it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], pdfRowH, money(it.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4], pdfRowH, money(it.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.Line(pageW/2, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(cols[0]+cols[1]+cols[2]+cols[3], 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(cols[4], 8, money(sale.Total), "", 1, "R", false, 0, "")

	return finishPDF(pdf, filePath)
}

// GenerateClosingPDF renders the daily closing for day. sales must already be
// filtered to that date; generatedAt goes in the footer.
func GenerateClosingPDF(day time.Time, sales []model.Sale, generatedAt time.Time, dir string) (string, error) {
	dayStr := day.Format("2006-01-02")
	filePath, err := reportPath(dir, fmt.Sprintf("cierre_diario_%s.pdf", dayStr))
	if err != nil {
		return "", err
	}

	pdf := newLetterPDF()
	footer := "Reporte generado a las " + generatedAt.Format("15:04:05")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, footer, "", 0, "L", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Reporte de Cierre de Ventas - "+dayStr, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(sales) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, tr(pdf, "No se registraron ventas en esta fecha."), "", 1, "L", false, 0, "")
		return finishPDF(pdf, filePath)
	}

	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr(pdf, "Total de Ventas del Día: "+money(total)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(pdf, fmt.Sprintf("Número de Transacciones: %d", len(sales))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	cols := []float64{38, 38, 30}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(cols[0], pdfRowH, "ID Venta", "B", 0, "L", false, 0, "")
	pdf.CellFormat(cols[1], pdfRowH, "Sucursal", "B", 0, "L", false, 0, "")
	pdf.CellFormat(cols[2], pdfRowH, "Total", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range sales {
		if pageBreakNeeded(pdf) {
			pdf.AddPage()
		}
		pdf.CellFormat(cols[0], pdfRowH, s.ID, "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], pdfRowH, tr(pdf, s.Branch), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], pdfRowH, money(s.Total), "", 1, "R", false, 0, "")
	}
	return finishPDF(pdf, filePath)
}

func newLetterPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	return pdf
}

func pageBreakNeeded(pdf *fpdf.Fpdf) bool {
	_, pageH := pdf.GetPageSize()
	return pdf.GetY()+pdfRowH > pageH-pdfMargin
}

// tr converts UTF-8 text to the cp1252 encoding of the core fonts.
func tr(pdf *fpdf.Fpdf, s string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(s)
}

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

// reportPath resolves name inside dir. name must be a bare file name; branch
// names and sale ids end up in it, so separators are refused.
func reportPath(dir, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrUnsafeReportName, name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func finishPDF(pdf *fpdf.Fpdf, filePath string) (string, error) {
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
