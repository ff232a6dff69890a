package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	xlsx2docx "github.com/j3rryl/go-xlsx2docx"
	"github.com/j3rryl/go-xlsx2docx/internal/config"
	"github.com/j3rryl/go-xlsx2docx/internal/hints"
	"github.com/j3rryl/go-xlsx2docx/internal/logger"
)

// Extensions suggested when an input file is missing.
var (
	dataExtensions     = []string{".xlsx", ".xlsm", ".csv"}
	templateExtensions = []string{".docx", ".dotx"}
)

// settings is the resolved configuration of one command run.
type settings struct {
	cfg     *config.Config
	verbose bool
	quiet   bool
}

// loadSettings resolves config file, environment, and common flags.
// Precedence: CLI flags > env vars > config file > defaults.
func loadSettings(common commonFlags, env *Environment) (*settings, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	applyEnvConfig(envCfg, cfg)

	if common.logFormat != "" {
		cfg.Log.Format = common.logFormat
	}

	return &settings{
		cfg:     cfg,
		verbose: common.verbose || envCfg.Verbose,
		quiet:   common.quiet,
	}, nil
}

// mergeNameFlags applies filename flags to cfg. CLI values override config values.
func mergeNameFlags(f nameFlags, cfg *config.Config) {
	if f.template != "" {
		cfg.Output.NameTemplate = f.template
	}
	if f.noClean {
		cfg.Output.CleanFileName = xlsx2docx.Bool(false)
	}
}

// mergeFormatFlag applies --format to cfg.
func mergeFormatFlag(format string, cfg *config.Config) {
	if format != "" {
		cfg.Input.Format = format
	}
}

// options converts the resolved config into library options.
func (s *settings) options() xlsx2docx.Options {
	return xlsx2docx.Options{
		OutputDir:        s.cfg.Output.Dir,
		FileNameTemplate: s.cfg.Output.NameTemplate,
		CleanFileName:    s.cfg.Output.CleanFileName,
		Verbose:          s.verbose,
		Format:           xlsx2docx.Format(s.cfg.Input.Format),
	}
}

// logger returns the diagnostic logger writing to w.
// Without --verbose only errors are logged.
func (s *settings) logger(w io.Writer) *zap.Logger {
	level := s.cfg.Log.Level
	if !s.verbose {
		level = "error"
	}
	return logger.New(level, s.cfg.Log.Format, w)
}

// generator builds a Generator bound to env.
func (s *settings) generator(env *Environment, log *zap.Logger) *xlsx2docx.Generator {
	return xlsx2docx.NewGenerator(
		xlsx2docx.WithFS(env.FS),
		xlsx2docx.WithLogger(log),
		xlsx2docx.WithClock(env.Now),
	)
}

// withHint appends an actionable hint to well-known errors.
func withHint(err error) error {
	var inputErr *xlsx2docx.InputError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &inputErr) && errors.Is(err, xlsx2docx.ErrInputMissing):
		exts := dataExtensions
		if inputErr.Kind == "template" {
			exts = templateExtensions
		}
		return fmt.Errorf("%w%s", err, hints.ForInputMissing(inputErr.Path, exts))
	case errors.Is(err, xlsx2docx.ErrCorruptInput):
		return fmt.Errorf("%w%s", err, hints.ForCorruptData())
	case errors.Is(err, xlsx2docx.ErrNoData):
		return fmt.Errorf("%w%s", err, hints.ForNoData())
	case errors.Is(err, xlsx2docx.ErrRenderFailure):
		return fmt.Errorf("%w%s", err, hints.ForTemplate())
	case errors.Is(err, xlsx2docx.ErrOutputDir):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	return err
}

// requireArgs checks the positional argument count.
func requireArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %d argument(s), got %d\nusage: %s", ErrUsage, n, len(args), usage)
	}
	return nil
}
