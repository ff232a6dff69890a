package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// nameFlags holds flags that shape output filenames.
type nameFlags struct {
	template string
	noClean  bool
}

// generateFlags holds all flags for the default generate command.
type generateFlags struct {
	common commonFlags
	names  nameFlags
	output string
	format string
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	common commonFlags
	format string
	yaml   bool
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common commonFlags
	names  nameFlags
	format string
	count  int
	yaml   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log per-record progress")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

// addNameFlags adds filename flags to a FlagSet.
func addNameFlags(fs *flag.FlagSet, f *nameFlags) {
	fs.StringVarP(&f.template, "name", "n", "", "filename template with {{Column}} placeholders")
	fs.BoolVar(&f.noClean, "no-clean", false, "keep characters outside [A-Za-z0-9-_.] in filenames")
}

// addFormatFlag adds the data format override to a FlagSet.
func addFormatFlag(fs *flag.FlagSet, p *string) {
	fs.StringVar(p, "format", "", "data format: xlsx, csv (default: from extension)")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parse runs fs.Parse and marks failures as usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseGenerateFlags parses generate flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newFlagSet("xlsx2docx", printGenerateUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: ./output)")
	addFormatFlag(fs, &f.format)
	addNameFlags(fs, &f.names)
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInspectFlags parses inspect flags and returns positional args.
func parseInspectFlags(args []string, stderr io.Writer) (*inspectFlags, []string, error) {
	f := &inspectFlags{}
	fs := newFlagSet("inspect", printInspectUsage, stderr)

	addFormatFlag(fs, &f.format)
	fs.BoolVar(&f.yaml, "yaml", false, "print the report as YAML")
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newFlagSet("preview", printPreviewUsage, stderr)

	addFormatFlag(fs, &f.format)
	addNameFlags(fs, &f.names)
	fs.IntVar(&f.count, "count", 0, "number of filenames to show (default: 3)")
	fs.BoolVar(&f.yaml, "yaml", false, "print the report as YAML")
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
