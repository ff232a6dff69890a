package xlsx2docx

import (
	"fmt"
	"strings"
)

// Default option values.
const (
	DefaultOutputDir        = "./output"
	DefaultFileNameTemplate = "{{name}}"
)

// Options configures one generation batch.
type Options struct {
	OutputDir        string // Output directory (default: "./output")
	FileNameTemplate string // Naming template with {{Field}} placeholders (default: "{{name}}")
	CleanFileName    *bool  // Replace unsafe filename characters (nil = true)
	Verbose          bool   // Log per-record progress and diagnostics
	Format           Format // Data format; empty = detect from path, XLSX for bytes
}

// Bool returns a pointer to b, for optional fields such as CleanFileName.
func Bool(b bool) *bool {
	return &b
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.FileNameTemplate == "" {
		o.FileNameTemplate = DefaultFileNameTemplate
	}
	if o.CleanFileName == nil {
		o.CleanFileName = Bool(true)
	}
	o.Format = Format(strings.ToLower(string(o.Format)))
	return o
}

// Validate checks that o names a known data format.
func (o Options) Validate() error {
	switch strings.ToLower(string(o.Format)) {
	case "", string(FormatXLSX), string(FormatCSV):
		return nil
	default:
		return fmt.Errorf("%w: %q (must be xlsx or csv)", ErrUnsupportedFormat, o.Format)
	}
}

// clean reports the effective CleanFileName value.
func (o Options) clean() bool {
	return o.CleanFileName == nil || *o.CleanFileName
}

// RecordError describes one failed record. Record is 1-based; 0 marks a
// fatal error that stopped the batch before any record was processed.
type RecordError struct {
	Record int    `json:"record" yaml:"record"`
	Error  string `json:"error" yaml:"error"`
}

// GenerationResult is the report of one batch.
type GenerationResult struct {
	Success           bool          `json:"success" yaml:"success"`
	TotalRecords      int           `json:"totalRecords" yaml:"totalRecords"`
	SuccessfulRecords int           `json:"successfulRecords" yaml:"successfulRecords"`
	GeneratedFiles    []string      `json:"generatedFiles" yaml:"generatedFiles"`
	Errors            []RecordError `json:"errors" yaml:"errors"`

	// Fatal holds the error that aborted the batch, if any.
	Fatal error `json:"-" yaml:"-"`
}

// newResult returns an empty result ready for folding outcomes.
func newResult() *GenerationResult {
	return &GenerationResult{
		Success:        true,
		GeneratedFiles: []string{},
		Errors:         []RecordError{},
	}
}

// Outcome is the result of processing a single record.
type Outcome struct {
	Record   int    // 1-based record number
	FilePath string // set on success
	Err      error  // set on failure
}

// add folds one outcome into the result.
func (r *GenerationResult) add(o Outcome) {
	if o.Err != nil {
		r.Errors = append(r.Errors, RecordError{Record: o.Record, Error: o.Err.Error()})
		r.Success = false
		return
	}
	r.GeneratedFiles = append(r.GeneratedFiles, o.FilePath)
	r.SuccessfulRecords++
}

// fail records a fatal error with record number 0.
func (r *GenerationResult) fail(err error) *GenerationResult {
	r.Success = false
	r.Fatal = err
	r.Errors = append(r.Errors, RecordError{Record: 0, Error: err.Error()})
	return r
}

// FailedRecords returns the number of per-record failures, excluding a
// fatal error.
func (r *GenerationResult) FailedRecords() int {
	if r.Fatal != nil {
		return 0
	}
	return len(r.Errors)
}

// InspectResult describes a data source without rendering anything.
type InspectResult struct {
	SheetNames     []string `json:"sheetNames" yaml:"sheetNames"`
	FirstSheetName string   `json:"firstSheetName" yaml:"firstSheetName"`
	RecordCount    int      `json:"recordCount" yaml:"recordCount"`
	Fields         []string `json:"fields" yaml:"fields"`
}

// PreviewResult shows what a batch would produce without writing files.
type PreviewResult struct {
	RecordCount     int      `json:"recordCount" yaml:"recordCount"`
	SampleRecord    Record   `json:"-" yaml:"sampleRecord"`
	Fields          []string `json:"fields" yaml:"fields"`
	TemplateFields  []string `json:"templateFields" yaml:"templateFields"`
	MissingFields   []string `json:"missingFields" yaml:"missingFields"`
	OutputFileNames []string `json:"outputFileNames" yaml:"outputFileNames"`
}
