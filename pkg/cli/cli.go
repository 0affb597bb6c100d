// Package cli implements the cif command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/Fepozopo/cif/pkg/coerce"
	"github.com/Fepozopo/cif/pkg/filter"
)

// Version is set at build time with -ldflags "-X .../pkg/cli.Version=...".
var Version = "0.1.0"

// ReleaseURL is where releases are published.
const ReleaseURL = "https://github.com/" + DefaultRepository + "/releases"

// errUsage marks command-line mistakes; Run exits with status 2 for them.
var errUsage = errors.New("usage error")

// Env carries the process streams so tests can run the command in memory.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type options struct {
	input   string
	output  string
	format  string
	quality int
	config  string
	list    bool
	help    string
	version bool
	update  bool
	verbose bool
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("cif", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "input", "", "input image path, - or STDIN for stdin, pattern:NAME for a built-in tile")
	fs.StringVar(&opts.input, "i", "", "shorthand for -input")
	fs.StringVar(&opts.output, "output", "", "output image path, - or STDOUT for stdout")
	fs.StringVar(&opts.output, "o", "", "shorthand for -output")
	fs.StringVar(&opts.format, "format", "", "encoding for stdout output (png, jpg, gif, tif, bmp)")
	fs.IntVar(&opts.quality, "quality", 0, "JPEG quality 1-100")
	fs.StringVar(&opts.config, "config", "", "path of a TOML config file")
	fs.BoolVar(&opts.list, "list", false, "list filters, optionally of one category, or 'colors'")
	fs.StringVar(&opts.help, "help", "", "describe the parameters of a filter")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.BoolVar(&opts.update, "update", false, "check for a newer release and install it")
	fs.BoolVar(&opts.verbose, "verbose", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: cif [options] FILTER [-param value ...] [FILTER [-param value ...]]...")
		fs.PrintDefaults()
	}
	return fs
}

// Run executes the command with args (without the program name) and returns
// the process exit status.
func Run(args []string, env Env) int {
	err := run(args, env)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(env.Stderr, "cif: %v\n", err)
		return 2
	default:
		fmt.Fprintf(env.Stderr, "cif: %v\n", err)
		return 1
	}
}

func run(args []string, env Env) error {
	var opts options
	fs := newFlagSet(&opts, env.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	rest := fs.Args()

	cfg, err := LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.quality != 0 {
		cfg.Output.JPEGQuality = opts.quality
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	logger, err := newLogger(env.Stderr, cfg.Log.Level, opts.verbose)
	if err != nil {
		return err
	}
	filter.SetLogger(logger)
	defer filter.SetLogger(nil)

	c := coerce.NewCoercer()
	switch {
	case opts.version:
		fmt.Fprintf(env.Stdout, "cif version %s\n%s\n", Version, ReleaseURL)
		return nil
	case opts.update:
		return checkForUpdates(githubReleases{}, cfg.Update.Repository, env.Stdin, env.Stdout)
	case opts.help != "":
		spec, ok := filter.Lookup(opts.help)
		if !ok {
			return fmt.Errorf("%w: %q; try -list", filter.ErrUnknownFilter, opts.help)
		}
		return describeFilter(env.Stdout, spec)
	case opts.list:
		if len(rest) > 0 && strings.EqualFold(rest[0], "colors") {
			return listColors(env.Stdout, c.Colors().Names())
		}
		category := ""
		if len(rest) > 0 {
			category = rest[0]
		}
		return listFilters(env.Stdout, category)
	}

	steps, err := parseChain(rest)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	logger.Debug("parsed filter chain", "filters", len(steps))

	var img image.Image
	if !steps[0].spec.Generator || opts.input != "" {
		if img, err = loadImage(opts.input, env.Stdin, c); err != nil {
			return err
		}
	}
	for _, st := range steps {
		args, err := st.coerce(c, env.Stdin)
		if err != nil {
			return err
		}
		if img, err = filter.Apply(img, st.spec.Name, args); err != nil {
			return fmt.Errorf("filter %s: %w", st.spec.Name, err)
		}
	}
	return saveImage(img, opts.output, env.Stdout, saveOptions{
		format:      cfg.Output.Format,
		jpegQuality: cfg.Output.JPEGQuality,
	})
}
