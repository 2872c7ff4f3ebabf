package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	tinytcl "github.com/phroun/tinytcl/src"
)

var version = "dev" // set via -ldflags at build time

// options gathered from the command line
type options struct {
	debug       bool
	debugSet    bool
	optLevel    int
	optLevelSet bool
	help        bool
	version     bool
	paths       []string
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr, tinytcl.StdinIsTerminal()))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, interactive bool) int {
	cfgPath := tinytcl.ConfigFilePath()
	if cfgPath != "" {
		_ = tinytcl.WriteDefaultCLIConfig(cfgPath)
	}
	cliConfig, err := tinytcl.LoadCLIConfig(cfgPath)
	if err != nil {
		errorPrintf(stderr, "Warning: %v\n", err)
	}
	applyColor(cliConfig.Color)

	opts, err := parseOptions(args)
	if err != nil {
		errorPrintf(stderr, "Error: %v\n", err)
		showUsage(stderr)
		return 2
	}
	if opts.help {
		showUsage(stdout)
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "tinytcl version %s\n", version)
		return 0
	}
	if len(opts.paths) > 1 {
		errorPrintf(stderr, "Error: expected at most one script file, got %d\n", len(opts.paths))
		showUsage(stderr)
		return 2
	}

	debug := cliConfig.Debug
	if opts.debugSet {
		debug = opts.debug
	}
	optLevel := cliConfig.OptLevel
	if opts.optLevelSet {
		optLevel = opts.optLevel
	}

	config := tinytcl.DefaultConfig()
	config.Debug = debug
	config.OptLevel = tinytcl.OptimizationLevel(optLevel)
	config.Stdout = stdout
	config.Stderr = stderr

	var script, filename string
	switch {
	case len(opts.paths) == 1:
		filename = opts.paths[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			errorPrintf(stderr, "Error: reading script file: %v\n", err)
			return 1
		}
		script = string(content)
	case !interactive:
		content, err := io.ReadAll(stdin)
		if err != nil {
			errorPrintf(stderr, "Error: reading from stdin: %v\n", err)
			return 1
		}
		script = string(content)
		filename = "<stdin>"
	default:
		repl := tinytcl.NewREPL(tinytcl.REPLConfig{
			Debug:       debug,
			OptLevel:    optLevel,
			ShowBanner:  true,
			HistoryFile: cliConfig.HistoryFile,
		}, stdout)
		if err := repl.Run(); err != nil {
			errorPrintf(stderr, "Warning: %v\n", err)
		}
		return 0
	}

	tcl := tinytcl.New(config)
	result, err := tcl.ExecuteNamed(script, filename)
	if err != nil {
		errorPrintf(stderr, "%s\n", tcl.FormatError(err))
		return 1
	}
	fmt.Fprintln(stdout, result)
	return 0
}

func parseOptions(args []string) (*options, error) {
	opts, optind, err := getopt.Getopts(args, "dhVO:")
	if err != nil {
		return nil, err
	}
	o := &options{paths: args[optind:]}
	for _, optV := range opts {
		switch optV.Option {
		case 'd':
			o.debug = true
			o.debugSet = true
		case 'O':
			level, err := strconv.Atoi(optV.Value)
			if err != nil || level < 0 || level > int(tinytcl.OptimizeBasic) {
				return nil, fmt.Errorf("invalid -O parameter %q", optV.Value)
			}
			o.optLevel = level
			o.optLevelSet = true
		case 'h':
			o.help = true
		case 'V':
			o.version = true
		}
	}
	return o, nil
}

// applyColor maps the color setting onto fatih/color, which already turns
// itself off for NO_COLOR and non-terminal output in auto mode
func applyColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// errorPrintf prints an error message, in red when color is enabled
func errorPrintf(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(w, format, args...)
}

func showUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, `Usage: %[1]s [options] [script]
       %[1]s [options] < script
       echo "commands" | %[1]s [options]

Execute a tinytcl script from a file or stdin, or start an interactive
session when stdin is a terminal.

Options:
  -d      Enable debug output
  -O N    Set optimization level (0=no caching, 1=cache parsed scripts, default: 1)
  -h      Show this help and exit
  -V      Show version and exit

Settings are read from ~/.tinytcl/config.toml.
`, name)
}
