package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yery-max/Proyecto-final/internal/model"
)

var reportDay = time.Date(2024, 6, 14, 21, 0, 5, 0, time.Local)

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func sampleSale(id string) model.Sale {
	return model.Sale{
		ID:        id,
		Timestamp: reportDay.Add(-time.Hour),
		Branch:    "Centro",
		Items: []model.SaleItem{
			model.NewSaleItem("TEC-001", "Teclado Mecánico", 2, decimal.RequireFromString("89.99")),
		},
		Total: decimal.RequireFromString("179.98"),
	}
}

func TestInventoryBranchLabel(t *testing.T) {
	assert.Equal(t, "Todas", InventoryBranchLabel(""))
	assert.Equal(t, "Norte", InventoryBranchLabel("Norte"))
}

func TestGenerateInventoryPDF_ManyPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reportes")
	products := make([]model.Product, 0, 120)
	for i := 0; i < 120; i++ {
		products = append(products, model.Product{
			ID: fmt.Sprintf("id-%d", i), SKU: fmt.Sprintf("SKU-%03d", i), Name: "Producto ñandú",
			Price: decimal.NewFromInt(int64(i)), Stock: i % 7, Branch: "Centro",
		})
	}
	path, err := GenerateInventoryPDF(products, "", reportDay, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reporte_inventario_Todas_20240614.pdf"), path)
	assertPDF(t, path)
}

func TestGenerateReceiptPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := GenerateReceiptPDF(sampleSale("VTA-1a2b3c"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "recibo_VTA-1a2b3c.pdf"), path)
	assertPDF(t, path)
}

func TestGenerateClosingPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := GenerateClosingPDF(reportDay, []model.Sale{sampleSale("VTA-1"), sampleSale("VTA-2")}, reportDay, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cierre_diario_2024-06-14.pdf"), path)
	assertPDF(t, path)
}

func TestGeneratePDF_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	path, err := GenerateReceiptPDF(sampleSale("VTA-1"), file)
	assert.Error(t, err)
	assert.Empty(t, path)
}

func TestReportPath_RefusesEscapingNames(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "reports")

	_, err := GenerateInventoryPDF(nil, "x/../../outside/evil", reportDay, dir)
	assert.ErrorIs(t, err, ErrUnsafeReportName)

	_, err = GenerateReceiptPDF(sampleSale(`..\..\evil`), dir)
	assert.ErrorIs(t, err, ErrUnsafeReportName)

	_, err = GenerateReceiptPDF(sampleSale("../evil"), dir)
	assert.ErrorIs(t, err, ErrUnsafeReportName)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing created, not even the reports dir")
}
