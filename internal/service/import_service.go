package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/store"
)

// CSV header names of the import file.
const (
	colSKU    = "sku"
	colName   = "nombre"
	colPrice  = "precio"
	colStock  = "stock"
	colBranch = "sucursal"
)

var importColumns = []string{colSKU, colName, colPrice, colStock, colBranch}

type ImportService interface {
	BulkImport(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResponse, error)
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResponse, error)
}

type importService struct {
	store   *store.Store
	metrics *infra.Metrics
}

func NewImportService(st *store.Store, metrics *infra.Metrics) ImportService {
	return &importService{store: st, metrics: metrics}
}

// BulkImport merges rows into the catalog in a single transaction: an
// existing (sku, branch) gets the row's stock added, a new pair is created.
// Any bad row aborts the whole import with nothing persisted.
func (s *importService) BulkImport(ctx context.Context, rows []dto.ImportRow) (resp *dto.ImportResponse, err error) {
	started := time.Now()
	defer func() { observe(s.metrics, "bulk_import", started, err) }()

	var created, updated int
	err = s.store.Update(ctx, func(tx *store.Tx) error {
		var err error
		created, updated, err = applyImport(tx, rows)
		return err
	})
	if err != nil {
		log.Warn().Err(err).Int("rows", len(rows)).Msg("bulk import aborted")
		return nil, err
	}

	s.metrics.AddImportedRows(created, updated)
	log.Info().Int("created", created).Int("updated", updated).Msg("bulk import completed")
	return &dto.ImportResponse{
		Created: created,
		Updated: updated,
		Message: fmt.Sprintf("%d creados, %d actualizados.", created, updated),
	}, nil
}

func (s *importService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		s.metrics.ObserveOperation("bulk_import", infra.ResultRejected, time.Now())
		return nil, err
	}
	return s.BulkImport(ctx, rows)
}

// applyImport runs the import pass against tx. The caller discards tx on error.
func applyImport(tx *store.Tx, rows []dto.ImportRow) (created, updated int, err error) {
	for i, row := range rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		p, err := parseImportRow(row)
		if err != nil {
			return 0, 0, &ImportParseError{Line: line, Row: row, Err: err}
		}

		tx.RegisterBranch(p.Branch)
		if existing, ok := tx.FindProduct(p.SKU, p.Branch); ok {
			existing.Stock += p.Stock
			updated++
			continue
		}
		if _, err := addProductTx(tx, p); err != nil {
			return 0, 0, &ImportParseError{Line: line, Row: row, Err: err}
		}
		created++
	}
	return created, updated, nil
}

func parseImportRow(row dto.ImportRow) (model.Product, error) {
	fields := map[string]string{}
	sku := strings.TrimSpace(row.SKU)
	name := strings.TrimSpace(row.Name)
	branch := strings.TrimSpace(row.Branch)
	if sku == "" {
		fields[colSKU] = "required"
	}
	if name == "" {
		fields[colName] = "required"
	}
	if branch == "" {
		fields[colBranch] = "required"
	}
	price, perr := decimal.NewFromString(strings.TrimSpace(row.Price))
	if perr != nil {
		fields[colPrice] = "numeric"
	} else if price.IsNegative() {
		fields[colPrice] = "min"
	}
	stock, serr := strconv.Atoi(strings.TrimSpace(row.Stock))
	if serr != nil {
		fields[colStock] = "numeric"
	} else if stock < 0 {
		fields[colStock] = "min"
	}
	if len(fields) > 0 {
		return model.Product{}, &model.ValidationError{Fields: fields}
	}
	return model.Product{SKU: sku, Name: name, Price: price, Stock: stock, Branch: branch}, nil
}

// ParseCSV reads an import file. The header row must name the columns
// sku, nombre, precio, stock and sucursal in any order (case-insensitive);
// extra columns are ignored. Blank lines are skipped.
func ParseCSV(r io.Reader) ([]dto.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ImportParseError{Line: 1, Err: errors.New("archivo vacio")}
	}
	if err != nil {
		return nil, &ImportParseError{Line: 1, Err: err}
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	var missing []string
	for _, c := range importColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &ImportParseError{Line: 1, Err: fmt.Errorf("faltan columnas: %s", strings.Join(missing, ", "))}
	}

	var rows []dto.ImportRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			line := 0
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &ImportParseError{Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)
		get := func(col string) string {
			if i := index[col]; i < len(record) {
				return record[i]
			}
			return ""
		}
		row := dto.ImportRow{
			Line:   line,
			SKU:    get(colSKU),
			Name:   get(colName),
			Price:  get(colPrice),
			Stock:  get(colStock),
			Branch: get(colBranch),
		}
		for _, c := range importColumns {
			if index[c] >= len(record) {
				return nil, &ImportParseError{Line: line, Row: row, Err: fmt.Errorf("faltan columnas en la fila (%d de %d)", len(record), len(header))}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
