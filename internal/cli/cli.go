package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Match selects elements whose attribute fully matches Pattern.
type Match struct {
	Attr    string
	Pattern string
}

type Assign struct {
	Key   string
	Value string
}

type Scale struct {
	Key    string
	Factor float64
}

type Config struct {
	Path         string
	Dialect      string
	DialectFile  string
	KeepComments bool
	Name         string

	Filters   []Match
	SetArgs   []Assign
	ScaleArgs []Scale
	SetValue  *string

	Touches string
	Nets    bool
	Types   bool
	Output  string

	LogLevel  string
	LogFormat string
}

// Edits reports whether any element is mutated.
func (c *Config) Edits() bool {
	return len(c.SetArgs) > 0 || len(c.ScaleArgs) > 0 || c.SetValue != nil
}

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// Parse reads command-line arguments. It returns the config, whether the
// program should exit cleanly, or an *ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("netlist", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
netlist - parse, query and rewrite SPICE netlists.

Usage:
  netlist [options] FILE

Arguments:
  FILE
    Netlist to read, or - for standard input.

Options:
`)
		flagSet.PrintDefaults()
	}

	var filters, setArgs, scaleArgs multiFlag
	dialectFlag := flagSet.String("dialect", "ngspice", "Dialect name: generic, ngspice, hspice, xyce or one from -dialect-file.")
	dialectFileFlag := flagSet.String("dialect-file", "", "HCL file with extra dialect definitions.")
	keepFlag := flagSet.Bool("keep-comments", false, "Keep full-line comments as elements.")
	nameFlag := flagSet.String("name", "", "Circuit name written in the header.")
	flagSet.Var(&filters, "filter", "Select elements by attr=regex. Repeatable, all must match.")
	flagSet.Var(&setArgs, "set-arg", "Set key=value on selected elements. Repeatable.")
	flagSet.Var(&scaleArgs, "scale-arg", "Multiply a numeric arg, key=factor. Repeatable.")
	setValueFlag := flagSet.String("set-value", "", "Replace the value of selected elements.")
	touchesFlag := flagSet.String("touches", "", "Print uids of elements on nets matching this regex.")
	netsFlag := flagSet.Bool("nets", false, "Print per-net port counts and couplings.")
	typesFlag := flagSet.Bool("types", false, "Print the element types present.")
	outFlag := flagSet.String("o", "", "Write the netlist to this file instead of stdout.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected a single netlist file"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := &Config{
		Path:         flagSet.Arg(0),
		Dialect:      *dialectFlag,
		DialectFile:  *dialectFileFlag,
		KeepComments: *keepFlag,
		Name:         *nameFlag,
		Touches:      *touchesFlag,
		Nets:         *netsFlag,
		Types:        *typesFlag,
		Output:       *outFlag,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
	}

	// -set-value "" is a real edit, so look at what was given.
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "set-value" {
			cfg.SetValue = setValueFlag
		}
	})

	for _, f := range filters {
		attr, pattern, ok := strings.Cut(f, "=")
		if !ok || attr == "" {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid -filter %q: want attr=regex", f)}
		}
		cfg.Filters = append(cfg.Filters, Match{Attr: attr, Pattern: pattern})
	}
	for _, s := range setArgs {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid -set-arg %q: want key=value", s)}
		}
		cfg.SetArgs = append(cfg.SetArgs, Assign{Key: key, Value: value})
	}
	for _, s := range scaleArgs {
		key, raw, ok := strings.Cut(s, "=")
		factor, err := strconv.ParseFloat(raw, 64)
		if !ok || key == "" || err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid -scale-arg %q: want key=factor", s)}
		}
		cfg.ScaleArgs = append(cfg.ScaleArgs, Scale{Key: key, Factor: factor})
	}

	return cfg, false, nil
}
