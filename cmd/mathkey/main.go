// Package main is the entry point for the mathkey formula editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/dshills/mathkey/internal/app"
	"github.com/dshills/mathkey/internal/config"
	"github.com/dshills/mathkey/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options

	logFile    string
	dump       bool
	color      bool
	render     bool
	initConfig bool
	width      int
	height     int
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.initConfig {
		return writeDefaultConfig(os.Stdout)
	}

	logger, closeLog, err := openLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	opts.Logger = logger

	headless := opts.dump || opts.render
	if headless {
		opts.Backend = backend.NewNull(opts.width, opts.height)
		opts.Watch = false
	}

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if headless {
		return runHeadless(application, opts)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runHeadless prints the session built by the startup script instead of
// opening the terminal.
func runHeadless(application *app.Application, opts cliOptions) int {
	e := application.Engine()
	e.Layout(application.Renderer().Provider())

	if opts.render {
		b := opts.Backend.(*backend.Null)
		application.Renderer().SetStatusVisible(false)
		application.Renderer().Render(e)
		_, h := b.Size()
		for y := 0; y < h; y++ {
			if row := strings.TrimRight(b.Row(y), " "); row != "" {
				fmt.Println(row)
			}
		}
	}

	if opts.dump {
		report, err := e.Report()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		out := pretty.Pretty([]byte(report))
		if opts.color {
			out = pretty.Color(out, nil)
		}
		os.Stdout.Write(out)

		summary := gjson.GetMany(report, "width", "ascent", "descent", "children.#")
		fmt.Fprintf(os.Stderr, "%s: width %.1f, height %.1f, %d top-level elements\n",
			e.ID(), summary[0].Float(), summary[1].Float()+summary[2].Float(), summary[3].Int())
	}
	return 0
}

func writeDefaultConfig(w io.Writer) int {
	data, err := config.Default().MarshalTOML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	_, _ = w.Write(data)
	return 0
}

// openLogger logs to -log-file when given. The terminal belongs to the
// editor, so interactive sessions are silent otherwise.
func openLogger(opts cliOptions) (*app.Logger, func(), error) {
	cfg := app.DefaultLoggerConfig()
	if opts.LogLevel != "" {
		cfg.Level = app.ParseLogLevel(opts.LogLevel)
	}

	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		cfg.Output = f
		return app.NewLogger(cfg), func() { _ = f.Close() }, nil
	case opts.dump || opts.render:
		return app.NewLogger(cfg), func() {}, nil
	default:
		return app.NewNullLogger(), func() {}, nil
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", true, "Reload the configuration file when it changes")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run before the first frame")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run before the first frame (shorthand)")
	flag.BoolVar(&opts.dump, "dump", false, "Print the layout report as JSON and exit")
	flag.BoolVar(&opts.color, "color", false, "Colorize -dump output")
	flag.BoolVar(&opts.render, "render", false, "Print the rendered formula and exit")
	flag.IntVar(&opts.width, "width", 80, "Screen width for -render")
	flag.IntVar(&opts.height, "height", 24, "Screen height for -render")
	flag.BoolVar(&opts.initConfig, "init-config", false, "Print the default configuration as TOML and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mathkey - structural math formula editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mathkey [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mathkey                         Edit an empty formula\n")
		fmt.Fprintf(os.Stderr, "  mathkey -s quad.lua -render     Print the formula a script builds\n")
		fmt.Fprintf(os.Stderr, "  mathkey -s quad.lua -dump       Print its layout as JSON\n")
		fmt.Fprintf(os.Stderr, "  mathkey -init-config > %s\n", config.DefaultPath())
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("mathkey %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if opts.ConfigPath == "" {
		if path := config.DefaultPath(); path != "" {
			if _, err := os.Stat(path); err == nil {
				opts.ConfigPath = path
			}
		}
	}

	return opts
}
