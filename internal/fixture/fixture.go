// Package fixture builds small workbooks and Word templates for tests.
package fixture

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a fixture workbook.
type Sheet struct {
	Name string
	Rows [][]any
	// Origin is the cell of Rows[0][0]; "" means A1.
	Origin string
}

// XLSX returns an .xlsx workbook holding sheets in order.
func XLSX(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("fixture: renaming sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("fixture: adding sheet %q: %v", s.Name, err)
		}
		col, top := 1, 1
		if s.Origin != "" {
			var err error
			if col, top, err = excelize.CellNameToCoordinates(s.Origin); err != nil {
				t.Fatalf("fixture: origin %q: %v", s.Origin, err)
			}
		}
		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(col, top+r)
			if err != nil {
				t.Fatalf("fixture: %v", err)
			}
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				t.Fatalf("fixture: writing row %d: %v", r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("fixture: writing workbook: %v", err)
	}
	return buf.Bytes()
}

// Table is shorthand for a single-sheet workbook named "Sheet1".
func Table(t testing.TB, rows ...[]any) []byte {
	t.Helper()
	return XLSX(t, Sheet{Name: "Sheet1", Rows: rows})
}

// Paragraph wraps runs in a <w:p> element. Each run holds one text node.
func Paragraph(runs ...string) string {
	var b bytes.Buffer
	b.WriteString("<w:p>")
	for _, r := range runs {
		b.WriteString(`<w:r><w:rPr><w:b/></w:rPr><w:t>`)
		b.WriteString(r)
		b.WriteString(`</w:t></w:r>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

// Document wraps body XML in a WordprocessingML document element.
func Document(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`
}

// DOCX returns a minimal Word package. parts maps part names to content;
// word/document.xml is required for a valid template.
func DOCX(t testing.TB, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := []string{"[Content_Types].xml"}
	for name := range parts {
		names = append(names, name)
	}
	for _, name := range names {
		content, ok := parts[name]
		if !ok {
			content = `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("fixture: creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("fixture: writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("fixture: closing package: %v", err)
	}
	return buf.Bytes()
}

// Template returns a Word package whose body holds paragraphs.
func Template(t testing.TB, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(p)
	}
	return DOCX(t, map[string]string{"word/document.xml": Document(body.String())})
}

// Part returns the content of a named part in a Word package.
func Part(t testing.TB, doc []byte, name string) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		t.Fatalf("fixture: reading package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("fixture: opening %s: %v", name, err)
		}
		defer func() { _ = rc.Close() }()
		var b bytes.Buffer
		if _, err := b.ReadFrom(rc); err != nil {
			t.Fatalf("fixture: reading %s: %v", name, err)
		}
		return b.String()
	}
	t.Fatalf("fixture: part %s not found", name)
	return ""
}
