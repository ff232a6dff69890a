package xlsx2docx

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/j3rryl/go-xlsx2docx/internal/sheet"
)

// Format identifies the tabular data format of a source.
type Format = sheet.Format

// Supported data formats.
const (
	FormatXLSX = sheet.FormatXLSX
	FormatCSV  = sheet.FormatCSV
)

// emptyHeader names columns whose header cell is blank.
const emptyHeader = "__EMPTY"

// Loader turns raw tabular bytes into records.
// The zero value reads XLSX workbooks.
type Loader struct {
	Format Format
	// SheetName names the synthetic sheet of formats without sheets (CSV).
	SheetName string
}

// DetectFormat picks a data format from the file extension of path.
// Unknown extensions are read as a workbook.
func DetectFormat(path string) Format {
	f, err := sheet.ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatXLSX
	}
	return f
}

// LoadRecords parses XLSX bytes into records using the default Loader.
func LoadRecords(data []byte) ([]Record, error) {
	return Loader{}.Load(data)
}

// Load parses data and returns the non-empty records of the first sheet.
// Only the first declared sheet is read; later sheets are ignored.
// Returns a *LoadError wrapping ErrCorruptInput or ErrNoData.
func (l Loader) Load(data []byte) ([]Record, error) {
	wb, err := l.workbook(data, true)
	if err != nil {
		return nil, err
	}
	return recordsFromWorkbook(wb)
}

// workbook parses data into a workbook, mapping parser failures to LoadErrors.
func (l Loader) workbook(data []byte, firstOnly bool) (*sheet.Workbook, error) {
	if len(data) == 0 {
		return nil, corruptInput("failed to read data file", sheet.ErrEmptyInput)
	}
	wb, err := sheet.Read(data, sheet.Options{
		Format:    l.Format,
		SheetName: l.SheetName,
		FirstOnly: firstOnly,
	})
	if err != nil {
		if errors.Is(err, sheet.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, corruptInput("failed to read data file", err)
	}
	return wb, nil
}

// recordsFromWorkbook applies the first-sheet, header-row, and empty-row rules.
func recordsFromWorkbook(wb *sheet.Workbook) ([]Record, error) {
	first := wb.First()
	if first == nil {
		return nil, noData("data file contains no sheets")
	}
	rows := trimOrigin(first.Rows)
	if len(rows) == 0 {
		return nil, noData(fmt.Sprintf("sheet %q contains no data", first.Name))
	}

	records := rowsToRecords(rows)
	if len(records) == 0 {
		return nil, noData(fmt.Sprintf("no data records found in sheet %q", first.Name))
	}

	valid := records[:0]
	for _, r := range records {
		if !r.IsEmpty() {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil, noData("all records in data file are empty")
	}
	return valid, nil
}

// trimOrigin drops leading blank rows and leading columns that are blank
// in every row, so a table placed at B2 reads like one placed at A1.
func trimOrigin(rows [][]string) [][]string {
	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil
	}

	skip := -1
	for _, row := range rows {
		lead := 0
		for lead < len(row) && row[lead] == "" {
			lead++
		}
		if lead == len(row) {
			continue
		}
		if skip < 0 || lead < skip {
			skip = lead
		}
	}
	if skip <= 0 {
		return rows
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) > skip {
			out[i] = row[skip:]
		}
	}
	return out
}

func blankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// rowsToRecords converts data rows using rows[0] as headers.
// Every record carries every column; missing cells default to "".
func rowsToRecords(rows [][]string) []Record {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	headers := normalizeHeaders(rows[0], width)

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make([]Field, width)
		for c := range width {
			fields[c] = Field{Name: headers[c]}
			if c < len(row) {
				fields[c].Value = row[c]
			}
		}
		records = append(records, NewRecord(fields...))
	}
	return records
}

// normalizeHeaders pads the header row to width, names blank headers
// __EMPTY, __EMPTY_1, ... and suffixes duplicates with _1, _2, ...
func normalizeHeaders(row []string, width int) []string {
	headers := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int)
	for c := range width {
		base := ""
		if c < len(row) {
			base = row[c]
		}
		if base == "" {
			base = emptyHeader
		}
		name := base
		for used[name] {
			suffix[base]++
			name = base + "_" + strconv.Itoa(suffix[base])
		}
		used[name] = true
		headers[c] = name
	}
	return headers
}
