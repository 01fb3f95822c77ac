// pixstrip is a CLI utility for rebuilding meshes from PIX triangle-strip CSV dumps.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/internal/config"
	"github.com/Faultbox/pixstrip/internal/export"
	"github.com/Faultbox/pixstrip/internal/importer"
	"github.com/Faultbox/pixstrip/internal/logger"
	"github.com/Faultbox/pixstrip/internal/mesh"
)

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout)
	logger.Sync()

	if errors.Is(err, errUsage) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return errUsage
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		return cmdInfo(args, stdout)
	case "convert", "c":
		return cmdConvert(args, stdout)
	case "config":
		return cmdConfig(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `pixstrip - rebuild meshes from PIX triangle-strip CSV dumps

Usage:
  pixstrip <command> [options]

Commands:
  info <file.csv>                    Show record, triangle and vertex counts
  convert <file.csv> [output]        Convert to obj, stl, stl-ascii or yaml
  config [-save]                     Print (or save) the effective config

Options (all commands):
  -config <path>   Config file (default ./pixstrip.yaml, then user config dir)
  -format <name>   Output format; otherwise taken from the output extension
  -mirror-x        Mirror vertices across X (default true)
  -vertex-order    Reverse triangle corner order (default true)
  -forward, -up    Capture axes (default Z, Y)
  -scale           Global scale (default 1)
  -mode            strip or phased
  -debug           Debug logging

Examples:
  pixstrip info capture.csv
  pixstrip convert capture.csv capture.obj
  pixstrip convert -format stl -mirror-x=false capture.csv - > capture.stl`)
}

// setup parses the shared flags and brings up config and logging.
func setup(name string, args []string, extra func(fs *flag.FlagSet)) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := config.BindFlags(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, errUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return cfg, fs, nil
}

func importMesh(cfg *config.Config, path string) (*mesh.Mesh, error) {
	im, err := importer.New(cfg.Import, logger.Log)
	if err != nil {
		return nil, err
	}
	return im.ImportFile(path)
}

func cmdInfo(args []string, stdout io.Writer) error {
	cfg, fs, err := setup("info", args, nil)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pixstrip info <file.csv>")
		return errUsage
	}

	m, err := importMesh(cfg, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "File:      %s\n", fs.Arg(0))
	fmt.Fprintf(stdout, "Mode:      %s\n", cfg.Import.DecodeMode)
	fmt.Fprintf(stdout, "Records:   %d\n", m.Stats.Records)
	fmt.Fprintf(stdout, "Triangles: %d\n", m.Stats.Triangles)
	fmt.Fprintf(stdout, "Vertices:  %d\n", m.Stats.Vertices)
	fmt.Fprintf(stdout, "Gaps:      %d\n", m.Stats.Gaps)
	fmt.Fprintf(stdout, "Conflicts: %d\n", len(m.Stats.Conflicts))
	if len(m.Positions) > 0 {
		lo, hi := bounds(m.Positions)
		fmt.Fprintf(stdout, "Bounds:    (%g, %g, %g) - (%g, %g, %g)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}
	return nil
}

func cmdConvert(args []string, stdout io.Writer) error {
	cfg, fs, err := setup("convert", args, nil)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pixstrip convert [options] <file.csv> [output]")
		return errUsage
	}

	input := fs.Arg(0)
	output := cfg.Output.Path
	if fs.NArg() > 1 {
		output = fs.Arg(1)
	}

	format, err := outputFormat(cfg, fs, output)
	if err != nil {
		return err
	}

	m, err := importMesh(cfg, input)
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		return export.Write(stdout, format, m)
	}
	if err := export.WriteFile(output, format, m); err != nil {
		return err
	}
	logger.Info("wrote mesh", zap.String("path", output), zap.String("format", string(format)))
	return nil
}

// outputFormat picks the -format flag if given, then the output extension,
// then the configured format.
func outputFormat(cfg *config.Config, fs *flag.FlagSet, output string) (export.Format, error) {
	if f := fs.Lookup("format"); f != nil && f.Value.String() != "" {
		return export.ParseFormat(f.Value.String())
	}
	if format, ok := export.FormatFromPath(output); ok {
		return format, nil
	}
	return export.ParseFormat(cfg.Output.Format)
}

func cmdConfig(args []string, stdout io.Writer) error {
	var save *bool
	cfg, _, err := setup("config", args, func(fs *flag.FlagSet) {
		save = fs.Bool("save", false, "Write the effective config to the user config dir")
	})
	if err != nil {
		return err
	}

	if *save {
		path, err := cfg.Save()
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(stdout, "Saved: %s\n", path)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func bounds(points []r3.Vec) (lo, hi r3.Vec) {
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = r3.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = r3.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}
