// Package yamlutil keeps goccy/go-yaml behind two calls: strict decoding of
// config files and indented encoding of CLI reports.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the size of a decoded document. Config files are a few
// hundred bytes; anything near the cap is not a config file.
var MaxInputSize = 256 << 10

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes data into v, rejecting unknown and duplicate keys.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case v == nil:
		return ErrNilDestination
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode writes v to w as block-style YAML with two-space indentation and
// indented sequences. Types implementing yaml.InterfaceMarshaler control
// their own shape.
func Encode(w io.Writer, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("yamlutil: writing output: %w", err)
	}
	return nil
}
