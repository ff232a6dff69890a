package xlsx2docx

// Notes:
// - Workbooks are built with excelize through internal/fixture.
// - Date cells are written as time.Time, which excelize stores as a serial
//   number with a built-in date format; records must carry the formatted
//   text, never the serial.

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/j3rryl/go-xlsx2docx/internal/fixture"
)

// ---------------------------------------------------------------------------
// TestLoadRecords - Header row, blank cells, and empty rows
// ---------------------------------------------------------------------------

func TestLoadRecords(t *testing.T) {
	t.Parallel()

	data := fixture.Table(t,
		[]any{"name", "age", "city"},
		[]any{"Ada", 36, "London"},
		[]any{"", "", ""},
		[]any{"Bob", nil, "Paris"},
		[]any{"Cy"},
	)

	records, err := LoadRecords(data)
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}

	want := [][]Field{
		{{Name: "name", Value: "Ada"}, {Name: "age", Value: "36"}, {Name: "city", Value: "London"}},
		{{Name: "name", Value: "Bob"}, {Name: "age", Value: ""}, {Name: "city", Value: "Paris"}},
		{{Name: "name", Value: "Cy"}, {Name: "age", Value: ""}, {Name: "city", Value: ""}},
	}
	got := make([][]Field, len(records))
	for i, r := range records {
		got[i] = r.Fields()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRecords_FirstSheetOnly(t *testing.T) {
	t.Parallel()

	data := fixture.XLSX(t,
		fixture.Sheet{Name: "Letters", Rows: [][]any{{"name"}, {"Ada"}}},
		fixture.Sheet{Name: "Ignored", Rows: [][]any{{"name"}, {"Bob"}, {"Cy"}}},
	)

	records, err := LoadRecords(data)
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if v, _ := records[0].Get("name"); v != "Ada" {
		t.Errorf("name = %q, want %q", v, "Ada")
	}
}

func TestLoadRecords_Headers(t *testing.T) {
	t.Parallel()

	data := fixture.Table(t,
		[]any{"name", "", "name", ""},
		[]any{"a", "b", "c", "d"},
	)

	records, err := LoadRecords(data)
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	want := []string{"name", "__EMPTY", "name_1", "__EMPTY_1"}
	if diff := cmp.Diff(want, records[0].Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestLoadRecords_TableOffset - Tables that do not start at A1
// ---------------------------------------------------------------------------

func TestLoadRecords_TableOffset(t *testing.T) {
	t.Parallel()

	rows := [][]any{
		{"Name", "Company"},
		{"John", "Acme"},
	}
	want := []Field{{Name: "Name", Value: "John"}, {Name: "Company", Value: "Acme"}}

	for _, origin := range []string{"A1", "B2", "A3", "D1", "C5"} {
		t.Run(origin, func(t *testing.T) {
			t.Parallel()

			data := fixture.XLSX(t, fixture.Sheet{Name: "Sheet1", Rows: rows, Origin: origin})
			records, err := LoadRecords(data)
			if err != nil {
				t.Fatalf("LoadRecords() error = %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("len(records) = %d, want 1", len(records))
			}
			if diff := cmp.Diff(want, records[0].Fields()); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrimOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]string
		want [][]string
	}{
		{
			name: "already at origin",
			rows: [][]string{{"a", "b"}, {"1", "2"}},
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name: "leading rows and columns",
			rows: [][]string{nil, {}, {"", "a", "b"}, {"", "1"}},
			want: [][]string{{"a", "b"}, {"1"}},
		},
		{
			name: "column kept when any row uses it",
			rows: [][]string{{"", "", "a"}, {"", "x", "1"}},
			want: [][]string{{"", "a"}, {"x", "1"}},
		},
		{
			name: "blank rows inside the table keep their place",
			rows: [][]string{{"", "a"}, nil, {"", "1"}},
			want: [][]string{{"a"}, nil, {"1"}},
		},
		{
			name: "nothing but blanks",
			rows: [][]string{nil, {"", ""}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, trimOrigin(tt.rows)); diff != "" {
				t.Errorf("trimOrigin() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadRecords_DateCells(t *testing.T) {
	t.Parallel()

	data := fixture.Table(t,
		[]any{"name", "joined", "reviewed"},
		[]any{"Ada", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, time.October, 10, 12, 0, 0, 0, time.UTC)},
	)

	records, err := LoadRecords(data)
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	want := []Field{
		{Name: "name", Value: "Ada"},
		{Name: "joined", Value: "03-15-24"},
		{Name: "reviewed", Value: "10/10/24 12:00"},
	}
	if diff := cmp.Diff(want, records[0].Fields()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRecords_CountMatchesNonEmptyRows(t *testing.T) {
	t.Parallel()

	rows := [][]any{{"id", "note"}}
	nonEmpty := 0
	for i := range 40 {
		if i%3 == 0 {
			rows = append(rows, []any{"", ""})
			continue
		}
		rows = append(rows, []any{i, "n"})
		nonEmpty++
	}

	records, err := LoadRecords(fixture.Table(t, rows...))
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) != nonEmpty {
		t.Errorf("len(records) = %d, want %d", len(records), nonEmpty)
	}
	for _, r := range records {
		if r.IsEmpty() {
			t.Errorf("empty record returned: %v", r.Fields())
		}
	}
}

func TestLoader_CSV(t *testing.T) {
	t.Parallel()

	l := Loader{Format: FormatCSV, SheetName: "people"}
	records, err := l.Load([]byte("name,email\nAda,ada@example.com\n,\nBob,\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if v, _ := records[1].Get("email"); v != "" {
		t.Errorf("email = %q, want empty", v)
	}
}

// ---------------------------------------------------------------------------
// TestLoadRecords_Errors - Corrupt and empty sources
// ---------------------------------------------------------------------------

func TestLoadRecords_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		wantErr  error
		wantText string
	}{
		{name: "empty bytes", data: nil, wantErr: ErrCorruptInput, wantText: "failed to read data file"},
		{name: "not a workbook", data: []byte("garbage"), wantErr: ErrCorruptInput, wantText: "failed to read data file"},
		{name: "empty sheet", data: fixture.Table(t), wantErr: ErrNoData, wantText: "contains no data"},
		{name: "header only", data: fixture.Table(t, []any{"name"}), wantErr: ErrNoData, wantText: "no data records found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records, err := LoadRecords(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadRecords() error = %v, want %v", err, tt.wantErr)
			}
			if records != nil {
				t.Errorf("records = %v, want nil", records)
			}
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error %T is not *LoadError", err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestLoader_AllRowsBlank(t *testing.T) {
	t.Parallel()

	l := Loader{Format: FormatCSV}
	_, err := l.Load([]byte("name,age\n,\n,\n"))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Load() error = %v, want ErrNoData", err)
	}
	if !strings.Contains(err.Error(), "all records in data file are empty") {
		t.Errorf("error = %q, want empty-records message", err)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"people.xlsx":    FormatXLSX,
		"people.CSV":     FormatCSV,
		"people":         FormatXLSX,
		"people.numbers": FormatXLSX,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", path, got, want)
		}
	}
}
