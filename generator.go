package xlsx2docx

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Generator runs mail-merge batches: one rendered document per data record.
// Create with NewGenerator. A Generator holds no per-batch state and may be
// reused; each batch runs on the calling goroutine, one record at a time.
type Generator struct {
	fs       afero.Fs
	logger   *zap.Logger
	renderer Renderer
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithFS sets the filesystem used for reading inputs and writing documents.
func WithFS(fsys afero.Fs) Option {
	return func(g *Generator) {
		g.fs = fsys
	}
}

// WithLogger sets the logger for verbose diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithRenderer replaces the DOCX renderer.
func WithRenderer(r Renderer) Option {
	return func(g *Generator) {
		g.renderer = r
	}
}

// WithClock sets the time source for fallback filenames.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a Generator writing to the OS filesystem with the
// DOCX renderer and no logging.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		fs:       afero.NewOsFs(),
		logger:   zap.NewNop(),
		renderer: DocxRenderer{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateDocuments runs a batch from files on the OS filesystem.
func GenerateDocuments(ctx context.Context, dataPath, templatePath string, opts Options) *GenerationResult {
	return NewGenerator().Generate(ctx, dataPath, templatePath, opts)
}

// GenerateDocumentsFromBytes runs a batch from in-memory sources, writing
// documents to the OS filesystem.
func GenerateDocumentsFromBytes(ctx context.Context, data, template []byte, opts Options) *GenerationResult {
	return NewGenerator().GenerateFromBytes(ctx, data, template, opts)
}

// Generate reads the data and template files and renders one document per
// record into opts.OutputDir.
//
// Missing inputs, unreadable or empty data, and an output directory that
// cannot be created abort the batch: the result then carries a single error
// with record number 0. Failures of individual records are recorded with
// their 1-based number and the batch continues. Generate never panics and
// always returns a result.
func (g *Generator) Generate(ctx context.Context, dataPath, templatePath string, opts Options) *GenerationResult {
	opts = opts.WithDefaults()
	result := newResult()
	log := g.batchLogger(opts)

	if err := opts.Validate(); err != nil {
		return g.abort(result, log, err)
	}

	data, err := readSource(g.fs, "data", dataPath)
	if err != nil {
		return g.abort(result, log, err)
	}
	template, err := readSource(g.fs, "template", templatePath)
	if err != nil {
		return g.abort(result, log, err)
	}

	return g.run(ctx, result, log, g.loaderFor(dataPath, opts.Format), data, template, opts)
}

// GenerateFromBytes is Generate for in-memory sources. Data is read as XLSX
// unless opts.Format says otherwise.
func (g *Generator) GenerateFromBytes(ctx context.Context, data, template []byte, opts Options) *GenerationResult {
	opts = opts.WithDefaults()
	result := newResult()
	log := g.batchLogger(opts)

	if err := opts.Validate(); err != nil {
		return g.abort(result, log, err)
	}

	return g.run(ctx, result, log, Loader{Format: opts.Format}, data, template, opts)
}

// run loads records, prepares the output directory, and processes records
// in order. Cancellation is honored until the first record starts; after
// that the batch runs to completion.
func (g *Generator) run(ctx context.Context, result *GenerationResult, log *zap.Logger, loader Loader, data, template []byte, opts Options) *GenerationResult {
	if err := ctx.Err(); err != nil {
		return g.abort(result, log, err)
	}

	records, err := loader.Load(data)
	if err != nil {
		return g.abort(result, log, err)
	}
	result.TotalRecords = len(records)
	log.Info("loaded records",
		zap.Int("count", len(records)),
		zap.Strings("fields", records[0].NonBlankNames()),
	)

	if err := ensureDir(g.fs, opts.OutputDir); err != nil {
		return g.abort(result, log, err)
	}
	if err := ctx.Err(); err != nil {
		return g.abort(result, log, err)
	}

	names := newNameSet()
	resolver := FilenameResolver{Now: g.now}
	for i, rec := range records {
		outcome := g.processRecord(i+1, rec, template, opts, resolver, names, log)
		result.add(outcome)
	}

	log.Info("batch finished",
		zap.Int("succeeded", result.SuccessfulRecords),
		zap.Int("failed", len(result.Errors)),
		zap.String("outputDir", opts.OutputDir),
	)
	return result
}

// processRecord renders, names, and writes one record. Errors never escape
// the record: they are returned in the Outcome.
func (g *Generator) processRecord(number int, rec Record, template []byte, opts Options, resolver FilenameResolver, names *nameSet, log *zap.Logger) (outcome Outcome) {
	outcome.Record = number
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Record: number, Err: &RenderError{Reason: fmt.Sprintf("internal error: %v", r)}}
		}
		if outcome.Err != nil {
			log.Error("record failed", zap.Int("record", number), zap.Error(outcome.Err))
		}
	}()

	doc, err := g.renderer.Render(template, rec)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	name := resolver.Resolve(rec, opts.FileNameTemplate, opts.clean())
	if claimed := names.claim(name, number); claimed != name {
		log.Warn("filename already used in this batch",
			zap.Int("record", number),
			zap.String("filename", name),
			zap.String("renamed", claimed),
		)
		name = claimed
	}
	if !filepath.IsLocal(name) {
		outcome.Err = fmt.Errorf("%w: filename %q escapes the output directory", ErrWriteFailure, name)
		return outcome
	}

	path := filepath.Join(opts.OutputDir, name)
	if err := writeFileAtomic(g.fs, path, doc); err != nil {
		outcome.Err = fmt.Errorf("%w %s: %v", ErrWriteFailure, path, err)
		return outcome
	}

	log.Info("generated", zap.Int("record", number), zap.String("file", path))
	outcome.FilePath = path
	return outcome
}

// abort finalizes result with a fatal error.
func (g *Generator) abort(result *GenerationResult, log *zap.Logger, err error) *GenerationResult {
	log.Error("fatal error", zap.Error(err))
	return result.fail(err)
}

// batchLogger returns the logger for one batch, tagged with a run ID.
// Without Verbose the batch is silent.
func (g *Generator) batchLogger(opts Options) *zap.Logger {
	if !opts.Verbose {
		return zap.NewNop()
	}
	return g.logger.With(zap.String("batch", uuid.NewString()))
}

// nameSet tracks filenames written during one batch.
type nameSet struct {
	used map[string]bool
}

func newNameSet() *nameSet {
	return &nameSet{used: make(map[string]bool)}
}

// claim returns name if unused in this batch, otherwise name with
// "_<record>" inserted before the extension. Comparison ignores case so that
// case-insensitive filesystems do not overwrite either.
func (s *nameSet) claim(name string, record int) string {
	candidate := name
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 0; s.used[strings.ToLower(candidate)]; n++ {
		suffix := "_" + strconv.Itoa(record)
		if n > 0 {
			suffix += "_" + strconv.Itoa(n)
		}
		candidate = base + suffix + ext
	}
	s.used[strings.ToLower(candidate)] = true
	return candidate
}
