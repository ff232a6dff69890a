package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2docx [flags] <data-file> <template-file>")
	fmt.Fprintln(w, "       xlsx2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fill a Word template once per spreadsheet row.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  inspect    Show sheets, columns, and record count of a data file")
	fmt.Fprintln(w, "  preview    Show placeholders and filenames without writing files")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'xlsx2docx help generate' for generation flags.")
}

// printGenerateUsage prints usage for the default generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2docx [flags] <data-file> <template-file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one .docx per non-empty row of the first sheet.")
	fmt.Fprintln(w, "The first row holds column names; {{Column}} in the template")
	fmt.Fprintln(w, "is replaced by the row's value. {{#Column}}...{{/Column}} shows")
	fmt.Fprintln(w, "its content only when the value is non-blank, {{^Column}} only")
	fmt.Fprintln(w, "when it is blank.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: ./output)")
	fmt.Fprintln(w, "  -n, --name <template>     Filename template (default: {{name}})")
	fmt.Fprintln(w, "      --no-clean            Keep characters outside [A-Za-z0-9-_.]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --format <s>          Data format: xlsx, csv (default: from extension)")
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintf(w, "  %d  Batch ran; records that failed are listed but do not fail the run\n", ExitSuccess)
	fmt.Fprintf(w, "  %d  Unexpected error\n", ExitGeneral)
	fmt.Fprintf(w, "  %d  Invalid flags, config, or arguments\n", ExitUsage)
	fmt.Fprintf(w, "  %d  Data or template file missing, or output directory not writable\n", ExitIO)
	fmt.Fprintf(w, "  %d  Data file unreadable or without records\n", ExitData)
	fmt.Fprintln(w, "Missing or unreadable inputs stop the batch before any document is")
	fmt.Fprintln(w, "written, so they exit non-zero even though the summary reports them")
	fmt.Fprintln(w, "as record 0.")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2docx inspect [flags] <data-file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the sheets, columns, and record count of a data file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --format <s>          Data format: xlsx, csv")
	fmt.Fprintln(w, "      --yaml                Print the report as YAML")
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2docx preview [flags] <data-file> <template-file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check a template against the data and show the first filenames.")
	fmt.Fprintln(w, "Nothing is written.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -n, --name <template>     Filename template (default: {{name}})")
	fmt.Fprintln(w, "      --no-clean            Keep characters outside [A-Za-z0-9-_.]")
	fmt.Fprintln(w, "      --count <n>           Number of filenames to show (default: 3)")
	fmt.Fprintln(w, "      --format <s>          Data format: xlsx, csv")
	fmt.Fprintln(w, "      --yaml                Print the report as YAML")
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log per-record progress")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  XLSX2DOCX_CONFIG, XLSX2DOCX_OUTPUT_DIR, XLSX2DOCX_NAME,")
	fmt.Fprintln(w, "  XLSX2DOCX_VERBOSE, XLSX2DOCX_LOG_FORMAT")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: xlsx2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: xlsx2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
