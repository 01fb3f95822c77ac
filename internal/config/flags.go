package config

import "flag"

// Flags holds CLI overrides bound to a FlagSet.
// Only flags given on the command line override the config file.
type Flags struct {
	fs *flag.FlagSet

	config      *string
	debug       *bool
	logFile     *string
	format      *string
	mirrorX     *bool
	vertexOrder *bool
	forward     *string
	up          *string
	scale       *float64
	maxIdentity *uint
	mode        *string
}

// BindFlags registers the config flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:          fs,
		config:      fs.String("config", "", "Path to config file"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		logFile:     fs.String("log-file", "", "Also write logs to this file"),
		format:      fs.String("format", "", "Output format: obj, stl, stl-ascii, yaml"),
		mirrorX:     fs.Bool("mirror-x", true, "Mirror all vertices across the X axis"),
		vertexOrder: fs.Bool("vertex-order", true, "Reverse triangle corner order"),
		forward:     fs.String("forward", "", "Forward axis of the capture (X, Y, Z, -X, -Y, -Z)"),
		up:          fs.String("up", "", "Up axis of the capture"),
		scale:       fs.Float64("scale", 0, "Global scale"),
		maxIdentity: fs.Uint("max-identity", 0, "Largest vertex identity accepted"),
		mode:        fs.String("mode", "", "Strip decode mode: strip or phased"),
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// isSet reports whether name was given on the command line.
func (f *Flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
	if *f.format != "" {
		cfg.Output.Format = *f.format
	}
	if f.isSet("mirror-x") {
		cfg.Import.MirrorX = *f.mirrorX
	}
	if f.isSet("vertex-order") {
		cfg.Import.VertexOrder = *f.vertexOrder
	}
	if *f.forward != "" {
		cfg.Import.AxisForward = *f.forward
	}
	if *f.up != "" {
		cfg.Import.AxisUp = *f.up
	}
	if *f.scale > 0 {
		cfg.Import.GlobalScale = *f.scale
	}
	if *f.maxIdentity > 0 {
		cfg.Import.MaxIdentity = uint32(*f.maxIdentity)
	}
	if *f.mode != "" {
		cfg.Import.DecodeMode = *f.mode
	}
}
