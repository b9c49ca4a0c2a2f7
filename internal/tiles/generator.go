package tiles

import (
	"context"
	"fmt"
	"time"

	"github.com/MJE43/tile-variations-go/internal/engine"
	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/selector"
	"github.com/MJE43/tile-variations-go/internal/variant"
)

// Mode selects which vectors of the design space get a tile.
type Mode string

const (
	// ModeExhaustive emits every candidate vector in enumeration order.
	ModeExhaustive Mode = "exhaustive"
	// ModeSampled emits Count candidates picked without replacement.
	ModeSampled Mode = "sampled"
)

// DefaultCount is the sample size in sampled mode.
const DefaultCount = 4

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExhaustive, ModeSampled:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, s, ModeExhaustive, ModeSampled)
	}
}

// Options configures a Generator.
type Options struct {
	Mode      Mode
	Count     int
	Ranges    params.Ranges
	Precision int
	Extension string

	// Filter, when set, drops vectors for which the predicate is false.
	Filter *selector.Filter
	// DistinctRotations keeps one vector per rotation class.
	DistinctRotations bool
}

// Summary reports what a run did.
type Summary struct {
	Mode       Mode              `json:"mode"`
	SourceMode engine.SourceMode `json:"source_mode"`
	Candidates int               `json:"candidates"`
	Selected   int               `json:"selected"`
	Emitted    int               `json:"emitted"`
	Duration   time.Duration     `json:"duration"`
	Failed     string            `json:"failed,omitempty"`
}

// Generator produces descriptors. It holds no scene state; every side
// effect goes through the Sink passed to Run.
type Generator struct {
	opts    Options
	sources engine.Sources
	vectors []variant.Vector
}

// NewGenerator validates opts. Precision is used as given, zero included;
// an empty Extension takes DefaultExtension. Count is only read in sampled
// mode.
func NewGenerator(opts Options, sources engine.Sources) (*Generator, error) {
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.Mode == ModeSampled && opts.Count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, opts.Count)
	}
	if err := opts.Ranges.Validate(); err != nil {
		return nil, err
	}
	if opts.Precision < 0 {
		return nil, fmt.Errorf("precision must be >= 0, got %d", opts.Precision)
	}
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}

	return &Generator{
		opts:    opts,
		sources: sources,
		vectors: variant.Enumerate(),
	}, nil
}

// Options returns the effective options.
func (g *Generator) Options() Options { return g.opts }

// Candidates returns the indices that survive the rotation and predicate
// filters, in enumeration order.
func (g *Generator) Candidates() ([]int, error) {
	pool := make([]variant.Vector, 0, len(g.vectors))
	idx := make([]int, 0, len(g.vectors))
	for i, v := range g.vectors {
		if g.opts.DistinctRotations && !v.IsCanonical() {
			continue
		}
		pool = append(pool, v)
		idx = append(idx, i)
	}

	if g.opts.Filter == nil {
		return idx, nil
	}

	out := make([]int, 0, len(idx))
	for k, v := range pool {
		ok, err := g.opts.Filter.Match(idx[k], v)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, idx[k])
		}
	}
	return out, nil
}

// Selection returns the indices to emit: all candidates in exhaustive mode,
// a sample of Count candidates in sampled mode.
func (g *Generator) Selection() ([]int, error) {
	candidates, err := g.Candidates()
	if err != nil {
		return nil, err
	}
	return g.selectFrom(candidates)
}

func (g *Generator) selectFrom(candidates []int) ([]int, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptySpace
	}
	if g.opts.Mode == ModeExhaustive {
		return candidates, nil
	}

	picks, err := engine.SampleIndices(g.sources.ForSelection(), len(candidates), g.opts.Count)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(picks))
	for i, p := range picks {
		out[i] = candidates[p]
	}
	return out, nil
}

// Describe builds the descriptor for the vector at index. The bundle comes
// from the index's own source, so with a seed it does not depend on mode
// or selection.
func (g *Generator) Describe(index int) Descriptor {
	v := g.vectors[index]
	id := variant.Encode(v)
	bundle := params.Sample(g.sources.ForTile(index), g.opts.Ranges)
	return Descriptor{
		Index:    index,
		Vector:   v,
		ID:       id,
		Bundle:   bundle,
		Filename: FormatFilename(id, bundle, g.opts.Precision, g.opts.Extension),
	}
}

// Plan returns the descriptors Run would emit, without side effects.
func (g *Generator) Plan() ([]Descriptor, error) {
	sel, err := g.Selection()
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, len(sel))
	for i, idx := range sel {
		out[i] = g.Describe(idx)
	}
	return out, nil
}

// Run emits each selected descriptor to sink, strictly in order. It stops
// at the first sink error: a tile set is only useful when complete.
func (g *Generator) Run(ctx context.Context, sink Sink) (Summary, error) {
	start := time.Now()
	summary := Summary{Mode: g.opts.Mode, SourceMode: g.sources.Mode()}

	candidates, err := g.Candidates()
	if err != nil {
		return summary, err
	}
	summary.Candidates = len(candidates)

	sel, err := g.selectFrom(candidates)
	if err != nil {
		return summary, err
	}
	summary.Selected = len(sel)

	for _, idx := range sel {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		d := g.Describe(idx)
		if err := sink.Emit(ctx, d); err != nil {
			summary.Failed = d.Filename
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("emit %s: %w", d.Filename, err)
		}
		summary.Emitted++
	}

	summary.Duration = time.Since(start)
	return summary, nil
}
