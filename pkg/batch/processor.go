package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/imagebatch/core/logger"
	"github.com/dmitrymomot/imagebatch/pkg/imaging"
	"github.com/dmitrymomot/imagebatch/pkg/naming"
	"github.com/dmitrymomot/imagebatch/pkg/sessionstore"
	"github.com/dmitrymomot/imagebatch/pkg/slug"
)

// ErrNoFilesProcessed is returned when a batch produced no output.
var ErrNoFilesProcessed = errors.New("no files processed")

// AllowedExtensions is the case-insensitive extension allow-list.
var AllowedExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "bmp", "tiff"}

// Transformer is the resize and re-encode capability used in optimize mode.
type Transformer interface {
	Transform(ctx context.Context, data []byte) ([]byte, error)
}

// DefaultConcurrency bounds in-flight files per batch.
const DefaultConcurrency = 4

const maxBaseNameLength = 64

// Processor is safe for concurrent use; each call owns its own session.
type Processor struct {
	store       *sessionstore.Store
	transformer Transformer
	counter     naming.Counter
	log         *slog.Logger
	maxFileSize int64
	concurrency int
	outputExt   string
}

// Option configures a Processor.
type Option func(*Processor)

func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

func WithMaxFileSize(n int64) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxFileSize = n
		}
	}
}

// WithConcurrency sets how many files of one batch are processed at once.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithOutputExt sets the extension of transform outputs.
func WithOutputExt(ext string) Option {
	return func(p *Processor) {
		if ext = strings.TrimPrefix(ext, "."); ext != "" {
			p.outputExt = ext
		}
	}
}

// New returns a Processor. A nil counter falls back to an in-process
// naming.AtomicCounter.
func New(store *sessionstore.Store, tr Transformer, counter naming.Counter, opts ...Option) *Processor {
	if counter == nil {
		counter = &naming.AtomicCounter{}
	}
	p := &Processor{
		store:       store,
		transformer: tr,
		counter:     counter,
		log:         logger.Discard(),
		maxFileSize: DefaultMaxFileSize,
		concurrency: DefaultConcurrency,
		outputExt:   imaging.OutputExt,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxFileSize returns the per-file limit.
func (p *Processor) MaxFileSize() int64 { return p.maxFileSize }

// job is one input that passed the prepare phase.
type job struct {
	index int
	input Input
	name  string
}

// Optimize sniffs, transforms and stores every acceptable input.
func (p *Processor) Optimize(ctx context.Context, inputs []Input) (*Result, error) {
	return p.run(ctx, naming.KindOptimize, inputs, func(ctx context.Context, in Input, _ int) (string, bool) {
		return naming.OptimizedName(in.Filename, p.outputExt), true
	})
}

// Rename stores every acceptable input unchanged as {base}-{n}.{ext}, where
// n comes from the shared counter. An empty baseName (after sanitising)
// uses each file's own stem.
func (p *Processor) Rename(ctx context.Context, inputs []Input, baseName string) (*Result, error) {
	base := slug.Make(baseName, slug.MaxLength(maxBaseNameLength))
	return p.run(ctx, naming.KindRename, inputs, func(ctx context.Context, in Input, index int) (string, bool) {
		b := base
		if b == "" {
			if b = slug.Make(naming.Stem(in.Filename), slug.MaxLength(maxBaseNameLength)); b == "" {
				b = naming.FallbackStem
			}
		}
		n, err := p.counter.Next(ctx)
		if err != nil {
			p.log.WarnContext(ctx, "rename index unavailable",
				logger.Filename(in.Filename),
				logger.Count("index", index),
				logger.Error(err),
			)
			return "", false
		}
		return naming.RenamedName(b, n, naming.Ext(in.Filename)), true
	})
}

type namer func(ctx context.Context, in Input, index int) (string, bool)

func (p *Processor) run(ctx context.Context, kind string, inputs []Input, name namer) (*Result, error) {
	sess, err := p.store.CreateSession(ctx, kind)
	if err != nil {
		return nil, err
	}
	log := p.log.With(logger.SessionID(sess.ID), logger.Kind(kind))

	jobs := make([]job, 0, len(inputs))
	for i, in := range inputs {
		if reason := p.reject(in); reason != "" {
			log.InfoContext(ctx, "file skipped", logger.Filename(in.Filename), logger.Reason(reason))
			continue
		}
		out, ok := name(ctx, in, i)
		if !ok {
			continue
		}
		jobs = append(jobs, job{index: i, input: in, name: out})
	}

	records := make([]*FileRecord, len(inputs))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for _, group := range byOutputName(jobs) {
		g.Go(func() error {
			for _, j := range group {
				rec, err := p.process(ctx, sess, kind, j)
				if err != nil {
					log.WarnContext(ctx, "file failed",
						logger.Filename(j.input.Filename),
						logger.Error(err),
					)
					continue
				}
				records[j.index] = rec
			}
			return nil
		})
	}
	_ = g.Wait()

	files := make([]FileRecord, 0, len(jobs))
	for _, r := range records {
		if r != nil {
			files = append(files, *r)
		}
	}

	log.InfoContext(ctx, "batch processed",
		logger.Count("received", len(inputs)),
		logger.Count("processed", len(files)),
	)
	if len(files) == 0 {
		return nil, ErrNoFilesProcessed
	}
	return &Result{SessionID: sess.ID, Files: files}, nil
}

// byOutputName groups jobs sharing an output name, keeping field order both
// across and within groups. A group runs sequentially so the last field
// received is the one left in storage.
func byOutputName(jobs []job) [][]job {
	pos := make(map[string]int, len(jobs))
	var groups [][]job
	for _, j := range jobs {
		i, ok := pos[j.name]
		if !ok {
			i = len(groups)
			pos[j.name] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], j)
	}
	return groups
}

// reject returns a skip reason, or "" when the input may be processed.
func (p *Processor) reject(in Input) string {
	switch {
	case !isFileField(in.Field):
		return "unexpected field " + in.Field
	case in.Filename == "":
		return "missing filename"
	case !allowedExt(in.Filename):
		return "unsupported extension"
	case in.Oversized || int64(len(in.Data)) > p.maxFileSize:
		return "file too large"
	}
	return ""
}

func (p *Processor) process(ctx context.Context, sess *sessionstore.Session, kind string, j job) (*FileRecord, error) {
	out := j.input.Data
	if kind == naming.KindOptimize {
		if _, err := imaging.Sniff(out); err != nil {
			return nil, fmt.Errorf("sniff: %w", err)
		}
		transformed, err := p.transformer.Transform(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
		out = transformed
	}

	written, err := sess.Write(ctx, j.name, out)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", j.name, err)
	}

	original := int64(len(j.input.Data))
	rec := &FileRecord{
		ID:            uuid.NewString(),
		Filename:      j.name,
		OriginalSize:  original,
		OptimizedSize: written,
		DownloadURL:   sess.URL(j.name),
		SessionID:     sess.ID,
	}
	if kind == naming.KindOptimize {
		rec.CompressionRatio = CompressionRatio(original, written)
	}
	return rec, nil
}

func allowedExt(filename string) bool {
	return slices.Contains(AllowedExtensions, strings.ToLower(naming.Ext(filename)))
}
