package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultNAValues lists the cell spellings treated as missing when loading files.
var DefaultNAValues = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "null", "NULL", "None", "#N/A"}

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	HasHeader bool     // Whether CSV has header row (default: true)
	Delimiter rune     // Field delimiter (default: ',')
	SkipRows  int      // Number of rows to skip at start
	NAValues  []string // Cell values loaded as missing (default: DefaultNAValues)
	IDColumn  string   // Column name for row filtering (optional)
	IDFilter  string   // Keep only rows whose IDColumn equals this value
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		HasHeader: true,
		Delimiter: ',',
		NAValues:  DefaultNAValues,
	}
}

// LoadCSV loads a raw table from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a raw table from an io.Reader. Without a header
// row the columns are named column_1..column_N after the widest record;
// with one, cells beyond the header's width are ignored. opts is not
// modified.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	o := *opts
	opts = &o
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		records = append(records, record)
	}

	var header []string
	if opts.HasHeader {
		if len(records) == 0 {
			return nil, ErrNoData
		}
		header, records = records[0], records[1:]
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], "\ufeff")
		}
	} else {
		width := 0
		for _, record := range records {
			width = max(width, len(record))
		}
		header = positionalHeader(width)
	}

	return buildTable(header, records, opts)
}

// LoadCSVColumn loads a specific column from a CSV file as a cleaned series.
func LoadCSVColumn(filename string, column string) (*Series, error) {
	t, err := LoadCSV(filename, DefaultCSVOptions())
	if err != nil {
		return nil, err
	}
	return t.Series(column)
}

// LoadCSVFiltered loads a cleaned series from the rows whose idColumn equals idValue.
func LoadCSVFiltered(filename string, idColumn, idValue, valueColumn string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.IDColumn = idColumn
	opts.IDFilter = idValue
	t, err := LoadCSV(filename, opts)
	if err != nil {
		return nil, err
	}
	return t.Series(valueColumn)
}

// buildTable turns string records into a Table, applying NA tokens and the
// optional row filter. Short rows are padded with missing cells.
func buildTable(header []string, records [][]string, opts *CSVOptions) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrNoData
	}

	na := opts.NAValues
	if na == nil {
		na = DefaultNAValues
	}
	naSet := make(map[string]struct{}, len(na))
	for _, v := range na {
		naSet[v] = struct{}{}
	}

	idIdx := -1
	if opts.IDColumn != "" {
		for i, h := range header {
			if strings.TrimSpace(h) == opts.IDColumn {
				idIdx = i
				break
			}
		}
		if idIdx == -1 {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, opts.IDColumn)
		}
	}

	t := &Table{Columns: make([]Column, len(header))}
	for i, h := range header {
		t.Columns[i] = Column{Name: strings.TrimSpace(h), Values: make([]any, 0, len(records))}
	}

	for _, record := range records {
		if idIdx >= 0 && (idIdx >= len(record) || strings.TrimSpace(record[idIdx]) != opts.IDFilter) {
			continue
		}
		for i := range t.Columns {
			var cell any
			if i < len(record) {
				raw := strings.TrimSpace(record[i])
				if _, missing := naSet[raw]; !missing {
					cell = raw
				}
			}
			t.Columns[i].Values = append(t.Columns[i].Values, cell)
		}
	}

	return t, nil
}

func positionalHeader(n int) []string {
	header := make([]string, n)
	for i := range header {
		header[i] = fmt.Sprintf("column_%d", i+1)
	}
	return header
}
