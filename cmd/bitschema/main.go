// bitschema compiles a schema file and encodes or decodes packed payloads
// for one of its structures.
//
//	bitschema -s config.bsch --list
//	bitschema -s config.bsch -t Version --encode '{"major": 1, "minor": 2, "patch": 3}'
//	bitschema -s config.bsch -t Version --decode 010203
//	bitschema -s config.bsch -i
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitschema/codec"
	"github.com/wippyai/bitschema/component"
	"github.com/wippyai/bitschema/guest"
	"github.com/wippyai/bitschema/schema"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	schemaPath  string
	typeName    string
	encode      string
	decode      string
	format      string
	logLevel    string
	size        int
	list        bool
	wit         bool
	fullMask    bool
	interactive bool
}

func run(args []string, stdout io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("bitschema", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "YAML config file")
	flagSet.StringVarP(&opts.schemaPath, "schema", "s", "", "schema file")
	flagSet.StringVarP(&opts.typeName, "type", "t", "", "structure to encode or decode")
	flagSet.StringVar(&opts.encode, "encode", "", "JSONC value to encode, or @FILE")
	flagSet.StringVar(&opts.decode, "decode", "", "hex payload to decode")
	flagSet.StringVar(&opts.format, "format", "", "decoded value format: json or cbor")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.IntVar(&opts.size, "size", 0, "encode buffer size (default: structure byte count)")
	flagSet.BoolVar(&opts.list, "list", false, "list structures and exit")
	flagSet.BoolVar(&opts.wit, "wit", false, "print WIT definitions for every structure")
	flagSet.BoolVar(&opts.fullMask, "full-mask", false, "write every optional child regardless of value")
	flagSet.BoolVarP(&opts.interactive, "interactive", "i", false, "interactive mode with TUI")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, flagSet, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Schema == "" {
		return fmt.Errorf("no schema given: use --schema or set schema in --config")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	schema.SetLogger(logger.Named("schema"))
	guest.SetLogger(logger.Named("guest"))

	text, err := os.ReadFile(cfg.Schema)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	compiler := schema.NewCompiler(schema.DefaultCacheSize)
	lib, err := compiler.Compile(string(text))
	if err != nil {
		return fmt.Errorf("compile %s: %w", cfg.Schema, err)
	}
	logger.Debug("schema compiled",
		zap.String("path", cfg.Schema),
		zap.Int("structures", lib.Len()),
		zap.String("fingerprint", lib.Fingerprint()))

	if opts.interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(cfg.Schema, compiler, lib, cfg.Size)
	}

	if opts.list {
		return listStructures(stdout, lib, isTerminal(stdout))
	}
	if opts.wit {
		return printWIT(stdout, lib)
	}

	if opts.typeName == "" {
		return fmt.Errorf("no structure given: use --type, --list or -i")
	}
	h, ok := lib.Get(opts.typeName)
	if !ok {
		return fmt.Errorf("unknown structure %q", opts.typeName)
	}

	switch {
	case opts.encode != "":
		text, err := readValueArg(opts.encode)
		if err != nil {
			return err
		}
		v, err := parseValue(text)
		if err != nil {
			return err
		}
		var mask *codec.Mask
		if opts.fullMask {
			mask = h.FullMask()
		}
		out, err := encodeValue(h, v, mask, cfg.Size)
		if err != nil {
			return fmt.Errorf("encode %s: %w", opts.typeName, err)
		}
		fmt.Fprintf(stdout, "%x\n", out)
	case opts.decode != "":
		v, err := decodeHex(h, opts.decode)
		if err != nil {
			return fmt.Errorf("decode %s: %w", opts.typeName, err)
		}
		out, err := formatValue(v, cfg.Format)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, out)
	default:
		fmt.Fprintf(stdout, "%s\t%d\t%s\n", opts.typeName, h.ByteCount(), h.Descriptor())
	}
	return nil
}

// applyFlags copies flags the user set explicitly over cfg.
func applyFlags(cfg *Config, flagSet *pflag.FlagSet, opts options) {
	if flagSet.Changed("schema") {
		cfg.Schema = opts.schemaPath
	}
	if flagSet.Changed("format") {
		cfg.Format = opts.format
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flagSet.Changed("size") {
		cfg.Size = opts.size
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func listStructures(w io.Writer, lib *schema.Library, styled bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range lib.Names() {
		h, _ := lib.Get(name)
		label := name
		if styled {
			label = nameStyle.Render(name)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", label, h.ByteCount(), h.Descriptor())
	}
	return tw.Flush()
}

func printWIT(w io.Writer, lib *schema.Library) error {
	defs, err := component.Define(lib)
	if err != nil {
		return err
	}
	for i, def := range defs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, component.FormatDef(def))
	}
	return nil
}

var nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
