// Package sheet reads tabular workbooks into rows of text cells.
// It isolates the spreadsheet dependency from the record pipeline.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format identifies a tabular file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Sentinel errors for workbook parsing.
var (
	ErrEmptyInput        = errors.New("input is empty")
	ErrUnreadable        = errors.New("workbook cannot be read")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// DefaultCSVSheetName names the single sheet of a CSV workbook.
const DefaultCSVSheetName = "Sheet1"

// Sheet is one worksheet as rows of formatted cell text.
// Rows may be ragged; trailing empty cells are not guaranteed to be present.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook holds sheets in declaration order.
type Workbook struct {
	Sheets []Sheet
}

// SheetNames returns the sheet names in declaration order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// First returns the first declared sheet, or nil if there is none.
func (w *Workbook) First() *Sheet {
	if len(w.Sheets) == 0 {
		return nil
	}
	return &w.Sheets[0]
}

// Options controls how a workbook is read.
type Options struct {
	Format Format
	// SheetName overrides the CSV sheet name.
	SheetName string
	// FirstOnly skips reading every sheet but the first.
	FirstOnly bool
}

// ParseFormat maps a user-provided name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "xlsx", "xlsm", "xltx", "xltm":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Read parses data according to opts.Format (XLSX when empty).
func Read(data []byte, opts Options) (*Workbook, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	switch opts.Format {
	case "", FormatXLSX:
		return readXLSX(data, opts.FirstOnly)
	case FormatCSV:
		name := opts.SheetName
		if name == "" {
			name = DefaultCSVSheetName
		}
		return readCSV(data, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

func readXLSX(data []byte, firstOnly bool) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	wb := &Workbook{Sheets: make([]Sheet, 0, len(names))}
	for i, name := range names {
		if firstOnly && i > 0 {
			wb.Sheets = append(wb.Sheets, Sheet{Name: name})
			continue
		}
		// GetRows returns cell values with their number format applied,
		// so dates come back as text rather than serial numbers.
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadable, name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	return wb, nil
}

func readCSV(data []byte, name string) (*Workbook, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		rows = append(rows, row)
	}
	return &Workbook{Sheets: []Sheet{{Name: name, Rows: rows}}}, nil
}
