package timeseries

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadXLSX loads a raw table from a sheet of an XLSX workbook. An empty sheet
// name selects the first sheet. The first row is used as header.
func LoadXLSX(filename, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoData
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	return buildTable(rows[0], rows[1:], DefaultCSVOptions())
}

// LoadFile loads a table from a .csv, .tsv or .xlsx file based on its extension.
func LoadFile(filename string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return LoadCSV(filename, DefaultCSVOptions())
	case ".tsv":
		opts := DefaultCSVOptions()
		opts.Delimiter = '\t'
		return LoadCSV(filename, opts)
	case ".xlsx", ".xlsm":
		return LoadXLSX(filename, "")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}
