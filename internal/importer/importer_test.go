package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/pixstrip/internal/config"
	"github.com/Faultbox/pixstrip/internal/mesh"
	"github.com/Faultbox/pixstrip/pkg/formats"
)

const header = "VTX, IDX, POSITION.x, POSITION.y, POSITION.z, POSITION.w, NORMAL.x, NORMAL.y, NORMAL.z, TEXCOORD.x, TEXCOORD.y\n"

func csvRow(id int, x, y, z float64) string {
	return fmt.Sprintf("%d, 0, %g, %g, %g, 1, 0, 1, 0, 0.5, 0.25\n", id, x, y, z)
}

func stripCSV(ids ...int) string {
	var b strings.Builder
	b.WriteString(header)
	for _, id := range ids {
		b.WriteString(csvRow(id, float64(id), 0, 0))
	}
	return b.String()
}

func newObserved(t *testing.T, cfg config.ImportConfig) (*Importer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	im, err := New(cfg, zap.New(core))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return im, logs
}

func TestBuildOptions_Defaults(t *testing.T) {
	opts, err := BuildOptions(config.Default().Import)
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}

	if !opts.MirrorX || !opts.Decode.Reverse {
		t.Error("defaults should mirror and reverse winding")
	}
	if opts.Decode.Mode != mesh.ModeStrip {
		t.Errorf("expected strip mode, got %v", opts.Decode.Mode)
	}
	if opts.MaxIdentity != 1<<24-1 {
		t.Errorf("unexpected max identity %d", opts.MaxIdentity)
	}

	rows := opts.Transform.Rows()
	want := [4][4]float64{{-1, 0, 0, 0}, {0, 0, 1, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}}
	if rows != want {
		t.Errorf("transform = %v, want %v", rows, want)
	}
}

func TestBuildOptions_ScaleAndMode(t *testing.T) {
	cfg := config.Default().Import
	cfg.AxisForward, cfg.AxisUp = "Y", "Z"
	cfg.GlobalScale = 2
	cfg.DecodeMode = "phased"

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}
	if opts.Decode.Mode != mesh.ModePhased {
		t.Errorf("expected phased mode, got %v", opts.Decode.Mode)
	}
	if opts.Transform.At(0, 0) != 2 || opts.Transform.At(1, 1) != 2 || opts.Transform.At(2, 2) != 2 {
		t.Errorf("expected uniform scale 2, got %v", opts.Transform.Rows())
	}
}

func TestBuildOptions_Invalid(t *testing.T) {
	cfg := config.Default().Import
	cfg.AxisUp = "Z"
	if _, err := BuildOptions(cfg); err == nil {
		t.Error("expected error for forward and up on the same axis")
	}

	cfg = config.Default().Import
	cfg.DecodeMode = "list"
	if _, err := BuildOptions(cfg); err == nil {
		t.Error("expected error for unknown decode mode")
	}
}

func TestImport(t *testing.T) {
	cfg := config.Default().Import
	cfg.MirrorX = false
	cfg.VertexOrder = false
	im, logs := newObserved(t, cfg)

	m, err := im.Import(strings.NewReader(stripCSV(0, 1, 2, 3)))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(m.Triangles) != 2 || m.Triangles[1] != [3]uint32{2, 1, 3} {
		t.Errorf("unexpected triangles %v", m.Triangles)
	}
	if m.UVs[0][0] != (mesh.UV{0.5, 0.75}) {
		t.Errorf("expected flipped uv (0.5, 0.75), got %v", m.UVs[0][0])
	}

	if logs.FilterMessage("mesh built").Len() != 1 {
		t.Error("expected a 'mesh built' log entry")
	}
}

func TestImport_Conflicts(t *testing.T) {
	im, logs := newObserved(t, config.Default().Import)

	data := header + csvRow(0, 0, 0, 0) + csvRow(1, 1, 0, 0) + csvRow(2, 2, 0, 0) + csvRow(1, 5, 5, 5)
	m, err := im.Import(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(m.Stats.Conflicts) != 1 || m.Stats.Conflicts[0] != 1 {
		t.Errorf("expected conflict on identity 1, got %v", m.Stats.Conflicts)
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
	if warnings[0].ContextMap()["count"] != int64(1) {
		t.Errorf("unexpected warning fields %v", warnings[0].ContextMap())
	}
}

func TestImport_Empty(t *testing.T) {
	im, logs := newObserved(t, config.Default().Import)

	m, err := im.Import(strings.NewReader(header))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !m.Stats.Empty || len(m.Positions) != 0 {
		t.Errorf("expected empty mesh, got %+v", m.Stats)
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Error("empty input should be reported as a warning")
	}
}

func TestImport_Malformed(t *testing.T) {
	im, _ := newObserved(t, config.Default().Import)

	data := stripCSV(0, 1) + "2, 0, 1, 2, 3, 1, 0, 1, 0\n"
	m, err := im.Import(strings.NewReader(data))
	if !errors.Is(err, formats.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if m != nil {
		t.Error("no mesh should be produced for malformed input")
	}
}

func TestImportFile(t *testing.T) {
	cfg := config.Default().Import
	cfg.MaxIdentity = 10
	im, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	if err := os.WriteFile(good, []byte(stripCSV(0, 1, 2, 3, 4)), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	m, err := im.ImportFile(good)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if m.Stats.Triangles != 3 {
		t.Errorf("expected 3 triangles, got %d", m.Stats.Triangles)
	}

	wide := filepath.Join(dir, "wide.csv")
	if err := os.WriteFile(wide, []byte(stripCSV(0, 1, 11)), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := im.ImportFile(wide); !errors.Is(err, mesh.ErrIdentityRangeExceeded) {
		t.Errorf("expected ErrIdentityRangeExceeded, got %v", err)
	}
}
