// Package xlsx2docx fills a Word template once per spreadsheet row.
//
// # Quick Start
//
// Run a batch from files on disk:
//
//	result := xlsx2docx.GenerateDocuments(ctx, "people.xlsx", "letter.docx", xlsx2docx.Options{
//	    OutputDir:        "letters",
//	    FileNameTemplate: "{{last}}_{{first}}",
//	})
//	if !result.Success {
//	    for _, e := range result.Errors {
//	        log.Printf("record %d: %s", e.Record, e.Error)
//	    }
//	}
//
// The first row of the first sheet holds column names. Every following row
// that has at least one non-blank cell becomes a Record, and each {{Column}}
// in the template is replaced by that row's value. A batch never stops at a
// failing record: the result lists failures by 1-based record number. Only
// problems that prevent any work (missing inputs, unreadable data, an output
// directory that cannot be created) abort the batch, reported as record 0.
//
// # Batch Pipeline
//
// Each batch runs these stages on the calling goroutine:
//
//  1. Record loading (XLSX via excelize, or CSV), first sheet only
//  2. Output directory creation
//  3. Per record: DOCX rendering, filename resolution, atomic write
//
// # Filenames
//
// FileNameTemplate uses the same {{Column}} syntax as documents. Blank values
// leave their placeholder in place; a name with no substitution at all falls
// back to Document_<unix millis>. With CleanFileName (the default) characters
// outside [A-Za-z0-9-_.] become underscores. Names repeated within a batch
// get the record number appended, so no document overwrites another.
//
// # Configuration
//
// Use functional options to customize the Generator:
//
//	g := xlsx2docx.NewGenerator(
//	    xlsx2docx.WithFS(afero.NewMemMapFs()),
//	    xlsx2docx.WithLogger(zapLogger),
//	)
//	result := g.Generate(ctx, dataPath, templatePath, xlsx2docx.Options{Verbose: true})
//
// Inspect and Preview read the same inputs without writing anything; they
// report the columns, record count, template placeholders, and the first
// filenames a batch would use.
//
// # Template Syntax
//
// Templates use mustache tags. {{Name}} inserts a field. {{#Name}}...{{/Name}}
// shows its content only when the field is non-blank, and {{^Name}}...{{/Name}}
// only when it is blank or missing; inside a section {{.}} is the field value.
// Sections may span paragraphs, and a paragraph that holds nothing but
// section tags is dropped from the output. Partials render as empty text.
// A tag split across formatting runs is still recognized; its value takes
// the formatting of the run where the tag starts.
package xlsx2docx
