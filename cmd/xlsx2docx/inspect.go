package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	xlsx2docx "github.com/j3rryl/go-xlsx2docx"
	"github.com/j3rryl/go-xlsx2docx/internal/yamlutil"
)

// runInspect prints the sheets, columns, and record count of a data file.
func runInspect(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseInspectFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := requireArgs(positional, 1, "xlsx2docx inspect [flags] <data-file>"); err != nil {
		return err
	}

	s, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeFormatFlag(flags.format, s.cfg)
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	log := s.logger(env.Stderr)
	defer func() { _ = log.Sync() }()

	res, err := s.generator(env, log).Inspect(ctx, positional[0], xlsx2docx.Format(s.cfg.Input.Format))
	if err != nil {
		return withHint(err)
	}

	if flags.yaml {
		return yamlutil.Encode(env.Stdout, res)
	}
	printInspect(env.Stdout, res)
	return nil
}

func printInspect(w io.Writer, res *xlsx2docx.InspectResult) {
	fmt.Fprintf(w, "Sheets:  %s\n", strings.Join(res.SheetNames, ", "))
	fmt.Fprintf(w, "Using:   %s\n", res.FirstSheetName)
	fmt.Fprintf(w, "Records: %d\n", res.RecordCount)
	fmt.Fprintln(w, "Fields:")
	for _, f := range res.Fields {
		fmt.Fprintf(w, "  {{%s}}\n", f)
	}
}

// runPreview shows what a batch would produce without writing files.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := requireArgs(positional, 2, "xlsx2docx preview [flags] <data-file> <template-file>"); err != nil {
		return err
	}

	s, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeNameFlags(flags.names, s.cfg)
	mergeFormatFlag(flags.format, s.cfg)
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	log := s.logger(env.Stderr)
	defer func() { _ = log.Sync() }()

	res, err := s.generator(env, log).Preview(ctx, positional[0], positional[1], s.options(), flags.count)
	if err != nil {
		return withHint(err)
	}

	if flags.yaml {
		return yamlutil.Encode(env.Stdout, res)
	}
	printPreview(env.Stdout, res)
	return nil
}

func printPreview(w io.Writer, res *xlsx2docx.PreviewResult) {
	fmt.Fprintf(w, "Records:      %d\n", res.RecordCount)
	fmt.Fprintf(w, "Placeholders: %s\n", strings.Join(res.TemplateFields, ", "))
	if len(res.MissingFields) > 0 {
		fmt.Fprintf(w, "Missing:      %s (will render empty)\n", strings.Join(res.MissingFields, ", "))
	}
	fmt.Fprintln(w, "First record:")
	for _, f := range res.SampleRecord.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", f.Name, f.Value)
	}
	fmt.Fprintln(w, "Filenames:")
	for _, name := range res.OutputFileNames {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
