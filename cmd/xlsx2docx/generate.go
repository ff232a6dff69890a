package main

import (
	"context"
	"fmt"

	xlsx2docx "github.com/j3rryl/go-xlsx2docx"
)

// runGenerate renders one document per data record.
// A batch with per-record failures still succeeds; only fatal errors are returned.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := requireArgs(positional, 2, "xlsx2docx [flags] <data-file> <template-file>"); err != nil {
		return err
	}

	s, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	if flags.output != "" {
		s.cfg.Output.Dir = flags.output
	}
	mergeNameFlags(flags.names, s.cfg)
	mergeFormatFlag(flags.format, s.cfg)
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	log := s.logger(env.Stderr)
	defer func() { _ = log.Sync() }()

	opts := s.options()
	result := s.generator(env, log).Generate(ctx, positional[0], positional[1], opts)
	if result.Fatal != nil {
		return withHint(result.Fatal)
	}

	printSummary(env, result, opts.WithDefaults().OutputDir, s)
	return nil
}

// printSummary reports the batch outcome.
func printSummary(env *Environment, result *xlsx2docx.GenerationResult, outputDir string, s *settings) {
	if s.verbose {
		for _, f := range result.GeneratedFiles {
			fmt.Fprintf(env.Stdout, "Created %s\n", f)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(env.Stderr, "FAILED record %d: %s\n", e.Record, e.Error)
		}
	}

	if s.quiet {
		return
	}
	fmt.Fprintf(env.Stdout, "Generated %d of %d documents in %s\n",
		result.SuccessfulRecords, result.TotalRecords, outputDir)
	if failed := result.FailedRecords(); failed > 0 && !s.verbose {
		fmt.Fprintf(env.Stderr, "%d record(s) failed; rerun with --verbose for details\n", failed)
	}
}
