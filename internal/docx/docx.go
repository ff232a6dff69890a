// Package docx renders mustache templates stored in Word (DOCX) packages.
//
// A DOCX file is a zip archive; text lives in <w:t> elements of the
// WordprocessingML parts. Word often splits one typed tag across several
// runs, so each tag is first gathered into the run where it opens. The text
// of a whole part is then rendered by the mustache engine with run markers
// in place, and the output is written back run by run, so literal text and
// values keep the formatting of their runs.
//
// Sections ({{#x}}...{{/x}} and {{^x}}...{{/x}}) may span paragraphs. A
// paragraph holding nothing but section tags is removed, as is a paragraph
// whose text lies wholly inside a section that is not shown.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cbroglie/mustache"
)

// Tag delimiters.
const (
	OpenDelim  = "{{"
	CloseDelim = "}}"
)

// MaxPartSize caps the uncompressed size of a single templated part (64MB).
var MaxPartSize int64 = 64 << 20

// mainPart is the required body part of every DOCX package.
const mainPart = "word/document.xml"

// Sentinel errors for template operations.
var (
	ErrInvalidTemplate   = errors.New("invalid DOCX template")
	ErrUnclosedTag       = errors.New("unclosed tag")
	ErrUnopenedTag       = errors.New("unopened tag")
	ErrEmptyTag          = errors.New("empty tag")
	ErrUnbalancedSection = errors.New("unbalanced section")
	ErrPartTooLarge      = errors.New("template part exceeds maximum size")
)

// Template is an opened DOCX template. It is read-only after Open and safe
// for concurrent Render calls.
type Template struct {
	data []byte
	zr   *zip.Reader
}

// Open validates data as a DOCX package.
func Open(data []byte) (*Template, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: template is empty", ErrInvalidTemplate)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	found := false
	for _, f := range zr.File {
		if f.Name == mainPart {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidTemplate, mainPart)
	}
	return &Template{data: data, zr: zr}, nil
}

// Render returns a new DOCX with the template rendered against values.
// Names absent from values render as "" and hide their sections. Values are
// XML-escaped and "\n" becomes a line break. On error no output is returned.
func (t *Template) Render(values map[string]string) ([]byte, error) {
	ctx := scope(values)

	var buf bytes.Buffer
	buf.Grow(len(t.data))
	zw := zip.NewWriter(&buf)

	for _, f := range t.zr.File {
		if !IsTemplatedPart(f.Name) {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copying %s: %w", f.Name, err)
			}
			continue
		}

		content, err := readPart(f)
		if err != nil {
			return nil, err
		}
		out, changed, err := renderPart(content, ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		if !changed {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copying %s: %w", f.Name, err)
			}
			continue
		}

		hdr := &zip.FileHeader{
			Name:     f.Name,
			Comment:  f.Comment,
			Method:   zip.Deflate,
			Modified: f.Modified,
		}
		hdr.SetMode(f.Mode())
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
		if _, err := w.Write(out); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing document: %w", err)
	}
	return buf.Bytes(), nil
}

// Placeholders returns the distinct names the template reads, values and
// section names alike, in document order. Malformed tags and unbalanced
// sections are reported as errors.
func (t *Template) Placeholders() ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	var walk func(tags []mustache.Tag)
	walk = func(tags []mustache.Tag) {
		for _, tag := range tags {
			switch tag.Type() {
			case mustache.Variable, mustache.Section, mustache.InvertedSection:
				if name := tag.Name(); name != "." && !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
			if tag.Type() == mustache.Section || tag.Type() == mustache.InvertedSection {
				walk(tag.Tags())
			}
		}
	}

	for _, f := range t.zr.File {
		if !IsTemplatedPart(f.Name) {
			continue
		}
		content, err := readPart(f)
		if err != nil {
			return nil, err
		}
		p, err := parsePart(string(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		if !p.templated {
			continue
		}
		tmpl, err := p.compile()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		walk(tmpl.Tags())
	}
	return names, nil
}

// IsTemplatedPart reports whether a package part may contain placeholders.
func IsTemplatedPart(name string) bool {
	if path.Ext(name) != ".xml" || path.Dir(name) != "word" {
		return false
	}
	base := strings.TrimSuffix(path.Base(name), ".xml")
	switch {
	case base == "document", base == "footnotes", base == "endnotes":
		return true
	case strings.HasPrefix(base, "header"), strings.HasPrefix(base, "footer"):
		return true
	}
	return false
}

func readPart(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > uint64(MaxPartSize) {
		return nil, fmt.Errorf("%w: %s", ErrPartTooLarge, f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrInvalidTemplate, f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(io.LimitReader(rc, MaxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidTemplate, f.Name, err)
	}
	if int64(len(content)) > MaxPartSize {
		return nil, fmt.Errorf("%w: %s", ErrPartTooLarge, f.Name)
	}
	return content, nil
}

// scope copies values with run markers removed, so no value can forge
// a marker in the rendered text.
func scope(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = stripMarkers(v)
	}
	return out
}
