package xlsx2docx

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrInputMissing = errors.New("file not found")
	ErrCorruptInput = errors.New("corrupt input")
	ErrNoData       = errors.New("no data records found")
	ErrOutputDir    = errors.New("cannot create output directory")

	// Per-record errors.
	ErrRenderFailure = errors.New("document generation failed")
	ErrWriteFailure  = errors.New("failed to write document")

	// Option validation errors.
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// InputError reports a data or template path that cannot be read.
// Kind is "data" or "template".
type InputError struct {
	Kind string
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %v: %s", e.Kind, e.Err, e.Path)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// LoadError reports why the Record Loader rejected a data source.
// Kind is ErrCorruptInput or ErrNoData.
type LoadError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func corruptInput(reason string, err error) *LoadError {
	return &LoadError{Kind: ErrCorruptInput, Reason: reason, Err: err}
}

func noData(reason string) *LoadError {
	return &LoadError{Kind: ErrNoData, Reason: reason}
}

// RenderError reports a template that could not be opened or substituted.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%v: %s", ErrRenderFailure, e.Reason)
}

func (e *RenderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRenderFailure}
	}
	return []error{ErrRenderFailure, e.Err}
}
