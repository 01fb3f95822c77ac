// Package importer wires the PIX reader, strip decoder and mesh assembler
// together according to the import configuration.
package importer

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/pixstrip/internal/config"
	"github.com/Faultbox/pixstrip/internal/mesh"
	"github.com/Faultbox/pixstrip/pkg/formats"
	"github.com/Faultbox/pixstrip/pkg/math"
)

// maxLoggedConflicts bounds the identities listed in the conflict warning.
const maxLoggedConflicts = 16

// Importer turns PIX CSV dumps into meshes.
type Importer struct {
	opts mesh.BuildOptions
	log  *zap.Logger
}

// New creates an importer. A nil logger discards output.
func New(cfg config.ImportConfig, log *zap.Logger) (*Importer, error) {
	opts, err := BuildOptions(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{opts: opts, log: log}, nil
}

// BuildOptions translates the import config into mesh build options.
// The transform is the axis conversion followed by the global scale.
func BuildOptions(cfg config.ImportConfig) (mesh.BuildOptions, error) {
	axes, err := math.AxisConversionNames(cfg.AxisForward, cfg.AxisUp)
	if err != nil {
		return mesh.BuildOptions{}, err
	}

	scale := cfg.GlobalScale
	if scale == 0 {
		scale = 1
	}

	var mode mesh.DecodeMode
	switch strings.ToLower(cfg.DecodeMode) {
	case "", config.DecodeModeStrip:
		mode = mesh.ModeStrip
	case config.DecodeModePhased:
		mode = mesh.ModePhased
	default:
		return mesh.BuildOptions{}, fmt.Errorf("unknown decode mode %q", cfg.DecodeMode)
	}

	return mesh.BuildOptions{
		Decode:      mesh.DecodeOptions{Mode: mode, Reverse: cfg.VertexOrder},
		MirrorX:     cfg.MirrorX,
		MaxIdentity: cfg.MaxIdentity,
		Transform:   axes.Mul(math.Scale(scale, scale, scale)),
	}, nil
}

// Options returns the build options in effect.
func (im *Importer) Options() mesh.BuildOptions {
	return im.opts
}

// Import reads a dump from r and builds its mesh.
func (im *Importer) Import(r io.Reader) (*mesh.Mesh, error) {
	pix, err := formats.ParsePIX(r)
	if err != nil {
		return nil, err
	}
	return im.build(pix)
}

// ImportFile reads a dump from disk and builds its mesh.
func (im *Importer) ImportFile(path string) (*mesh.Mesh, error) {
	pix, err := formats.ParsePIXFile(path)
	if err != nil {
		return nil, err
	}
	m, err := im.build(pix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (im *Importer) build(pix *formats.PIX) (*mesh.Mesh, error) {
	im.log.Debug("parsed vertex records",
		zap.Int("records", pix.Len()),
		zap.Int("columns", len(pix.Header)),
	)

	m, err := mesh.Build(pix.Vertices, im.opts)
	if err != nil {
		return nil, err
	}

	if m.Stats.Empty {
		im.log.Warn("input has no vertex records, mesh is empty")
		return m, nil
	}

	if len(m.Stats.Conflicts) > 0 {
		ids := m.Stats.Conflicts
		if len(ids) > maxLoggedConflicts {
			ids = ids[:maxLoggedConflicts]
		}
		im.log.Warn("vertex identities seen with differing attributes, keeping last",
			zap.Int("count", len(m.Stats.Conflicts)),
			zap.Uint32s("ids", ids),
		)
	}
	if m.Stats.Gaps > 0 {
		im.log.Debug("filled unreferenced identities with zero attributes", zap.Int("gaps", m.Stats.Gaps))
	}

	im.log.Info("mesh built",
		zap.Int("records", m.Stats.Records),
		zap.Int("triangles", m.Stats.Triangles),
		zap.Int("vertices", m.Stats.Vertices),
		zap.Stringer("mode", im.opts.Decode.Mode),
	)
	return m, nil
}
