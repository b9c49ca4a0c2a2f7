package tiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/scene"
	"github.com/MJE43/tile-variations-go/internal/store"
)

// Sink consumes descriptors. Emit is called sequentially, never concurrently.
type Sink interface {
	Emit(ctx context.Context, d Descriptor) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, d Descriptor) error

func (f SinkFunc) Emit(ctx context.Context, d Descriptor) error { return f(ctx, d) }

// MultiSink emits to each sink in order and stops at the first error.
type MultiSink []Sink

func (m MultiSink) Emit(ctx context.Context, d Descriptor) error {
	for _, s := range m {
		if err := s.Emit(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// LogSink prints one "Created file: <path>" line per tile.
type LogSink struct {
	w   io.Writer
	dir string
}

// NewLogSink writes to w. Paths are joined onto dir.
func NewLogSink(w io.Writer, dir string) *LogSink {
	return &LogSink{w: w, dir: dir}
}

func (s *LogSink) Emit(_ context.Context, d Descriptor) error {
	_, err := fmt.Fprintf(s.w, "Created file: %s\n", Path(s.dir, d))
	return err
}

// SceneBinding says where the combination id goes in the scene. Parameter
// bindings come from each range.
type SceneBinding struct {
	Object string
	ID     params.Binding
}

// SceneSink drives a scene collaborator: it assigns the combination id and
// every bound parameter, then saves to the tile's path.
type SceneSink struct {
	scene   scene.Scene
	binding SceneBinding
	ranges  params.Ranges
	dir     string
	logger  *slog.Logger
}

// NewSceneSink returns a sink that mutates sc. Ranges without a binding are
// only reflected in the filename.
func NewSceneSink(sc scene.Scene, binding SceneBinding, ranges params.Ranges, dir string, logger *slog.Logger) *SceneSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SceneSink{scene: sc, binding: binding, ranges: ranges, dir: dir, logger: logger}
}

func (s *SceneSink) Emit(ctx context.Context, d Descriptor) error {
	if !s.binding.ID.IsZero() {
		if err := s.scene.SetParameter(s.binding.Object, s.binding.ID.Modifier, s.binding.ID.Socket, int(d.ID)); err != nil {
			return fmt.Errorf("set %s/%s: %w", s.binding.ID.Modifier, s.binding.ID.Socket, err)
		}
	}

	for i, v := range d.Bundle {
		if i >= len(s.ranges) {
			break
		}
		b := s.ranges[i].Binding
		if b.IsZero() {
			continue
		}
		if err := s.scene.SetParameter(s.binding.Object, b.Modifier, b.Socket, v.Value); err != nil {
			return fmt.Errorf("set %s/%s: %w", b.Modifier, b.Socket, err)
		}
	}

	path := Path(s.dir, d)
	if err := s.scene.SaveTo(path); err != nil {
		s.logger.ErrorContext(ctx, "tile save failed", "path", path, "id", int(d.ID), "error", err)
		return err
	}
	s.logger.DebugContext(ctx, "tile saved", "path", path, "id", int(d.ID))
	return nil
}

// RecordSink appends each tile to a run in the history store.
type RecordSink struct {
	db    store.DB
	runID string
	dir   string
}

// NewRecordSink records tiles under runID.
func NewRecordSink(db store.DB, runID, dir string) *RecordSink {
	return &RecordSink{db: db, runID: runID, dir: dir}
}

func (s *RecordSink) Emit(_ context.Context, d Descriptor) error {
	paramsJSON, err := json.Marshal(d.Bundle)
	if err != nil {
		return err
	}
	return s.db.SaveTiles(s.runID, []store.Tile{{
		Index:         d.Index,
		CombinationID: int(d.ID),
		Flags:         d.Vector.String(),
		ParamsJSON:    string(paramsJSON),
		Filename:      d.Filename,
		Path:          Path(s.dir, d),
	}})
}

// Collector keeps every descriptor it sees.
type Collector struct {
	Descriptors []Descriptor
}

func (c *Collector) Emit(_ context.Context, d Descriptor) error {
	c.Descriptors = append(c.Descriptors, d)
	return nil
}
