package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yery-max/Proyecto-final/internal/dto"
)

// ErrImportParse matches every *ImportParseError via errors.Is.
var ErrImportParse = errors.New("error al leer el CSV")

// ImportParseError aborts a bulk import. Line is the 1-based line of the
// source file (the header is line 1) or the row position when rows did not
// come from a file.
type ImportParseError struct {
	Line int
	Row  dto.ImportRow
	Err  error
}

func (e *ImportParseError) Error() string {
	return fmt.Sprintf("%s: fila %d: %v", ErrImportParse.Error(), e.Line, e.Err)
}

func (e *ImportParseError) Unwrap() error { return e.Err }

func (e *ImportParseError) Is(target error) bool { return target == ErrImportParse }

// Record returns the raw values of the offending row.
func (e *ImportParseError) Record() string {
	return strings.Join([]string{e.Row.SKU, e.Row.Name, e.Row.Price, e.Row.Stock, e.Row.Branch}, ",")
}
