package xlsx2docx

import (
	"errors"
	"fmt"

	"github.com/j3rryl/go-xlsx2docx/internal/docx"
)

// Renderer turns template bytes and one record into a rendered document.
// Implementations must be deterministic for a given (template, record) pair
// and must not return partial output on failure.
type Renderer interface {
	Render(template []byte, rec Record) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Renderer = DocxRenderer{}

// DocxRenderer renders Word templates written in mustache syntax:
// {{Name}} values plus {{#Name}}...{{/Name}} and {{^Name}}...{{/Name}}
// sections, which show when the field is non-blank or blank respectively.
// Placeholders without a matching field render as empty text.
type DocxRenderer struct{}

// Render substitutes rec into the DOCX template.
// Returns a *RenderError on an invalid container, malformed placeholders,
// or unbalanced sections.
func (DocxRenderer) Render(template []byte, rec Record) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &RenderError{Reason: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	tmpl, err := docx.Open(template)
	if err != nil {
		return nil, &RenderError{Reason: "template cannot be opened", Err: err}
	}
	out, err = tmpl.Render(rec.Map())
	if err != nil {
		return nil, &RenderError{Reason: renderReason(err), Err: err}
	}
	return out, nil
}

// ValidateTemplate checks that template opens as a DOCX package and that
// its tags are well formed. It returns the names of the fields the template
// reads, section names included.
func ValidateTemplate(template []byte) ([]string, error) {
	tmpl, err := docx.Open(template)
	if err != nil {
		return nil, &RenderError{Reason: "template cannot be opened", Err: err}
	}
	names, err := tmpl.Placeholders()
	if err != nil {
		return nil, &RenderError{Reason: renderReason(err), Err: err}
	}
	return names, nil
}

func renderReason(err error) string {
	switch {
	case errors.Is(err, docx.ErrUnbalancedSection):
		return "template has an unclosed or mismatched section"
	case errors.Is(err, docx.ErrUnclosedTag), errors.Is(err, docx.ErrUnopenedTag), errors.Is(err, docx.ErrEmptyTag):
		return "template has a malformed placeholder"
	default:
		return "rendering failed"
	}
}
