package xlsx2docx

import (
	"context"
	"path/filepath"
	"strings"
)

// DefaultPreviewCount is the number of filenames Preview resolves when
// asked for zero or fewer.
const DefaultPreviewCount = 3

// Inspect reports the sheets, field names, and record count of a data file.
// It applies the same rules as a batch: only the first sheet is read and
// empty rows are not counted.
func (g *Generator) Inspect(ctx context.Context, dataPath string, format Format) (*InspectResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := readSource(g.fs, "data", dataPath)
	if err != nil {
		return nil, err
	}

	loader := g.loaderFor(dataPath, format)
	wb, err := loader.workbook(data, true)
	if err != nil {
		return nil, err
	}
	records, err := recordsFromWorkbook(wb)
	if err != nil {
		return nil, err
	}

	return &InspectResult{
		SheetNames:     wb.SheetNames(),
		FirstSheetName: wb.First().Name,
		RecordCount:    len(records),
		Fields:         records[0].Names(),
	}, nil
}

// Preview loads the data and template and reports what a batch would do:
// the record count, the placeholders the template uses and which of them
// the data lacks, and the filenames of the first n records. Nothing is
// written.
func (g *Generator) Preview(ctx context.Context, dataPath, templatePath string, opts Options, n int) (*PreviewResult, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultPreviewCount
	}

	data, err := readSource(g.fs, "data", dataPath)
	if err != nil {
		return nil, err
	}
	template, err := readSource(g.fs, "template", templatePath)
	if err != nil {
		return nil, err
	}

	records, err := g.loaderFor(dataPath, opts.Format).Load(data)
	if err != nil {
		return nil, err
	}
	placeholders, err := ValidateTemplate(template)
	if err != nil {
		return nil, err
	}

	fields := records[0].Names()
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}
	missing := []string{}
	for _, p := range placeholders {
		if !known[p] {
			missing = append(missing, p)
		}
	}

	resolver := FilenameResolver{Now: g.now}
	names := newNameSet()
	fileNames := make([]string, 0, min(n, len(records)))
	for i, rec := range records[:min(n, len(records))] {
		fileNames = append(fileNames, names.claim(resolver.Resolve(rec, opts.FileNameTemplate, opts.clean()), i+1))
	}

	return &PreviewResult{
		RecordCount:     len(records),
		SampleRecord:    records[0],
		Fields:          fields,
		TemplateFields:  placeholders,
		MissingFields:   missing,
		OutputFileNames: fileNames,
	}, nil
}

// loaderFor builds the Loader used for dataPath.
func (g *Generator) loaderFor(dataPath string, format Format) Loader {
	l := Loader{Format: Format(strings.ToLower(string(format)))}
	if l.Format == "" {
		l.Format = DetectFormat(dataPath)
	}
	l.SheetName = strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	return l
}
