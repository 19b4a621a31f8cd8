package utils

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors used across services.
var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrNoQuotation      = errors.New("no quotation for part number")
	ErrEmptySheet       = errors.New("input file has no header row")
)

// UnknownColumnError reports every unrecognized column header found in an
// import file. The import is rejected as a whole; the error lists all
// offending labels at once so the operator can fix the file in one pass.
type UnknownColumnError struct {
	Columns []string
}

func (e *UnknownColumnError) Error() string {
	return "unexpected columns: " + quoteJoin(e.Columns)
}

// MissingColumnError reports required column headers absent from an import
// file. Like UnknownColumnError it rejects the import as a whole and lists
// every missing label at once.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return "missing required columns: " + quoteJoin(e.Columns)
}

func quoteJoin(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
