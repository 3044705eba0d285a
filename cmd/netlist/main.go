package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/edp1096/toy-netlist/internal/cli"
	"github.com/edp1096/toy-netlist/internal/dialectfile"
	"github.com/edp1096/toy-netlist/internal/logger"
	"github.com/edp1096/toy-netlist/pkg/circuit"
	"github.com/edp1096/toy-netlist/pkg/netlist"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	d, err := resolveDialect(cfg)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	text, err := readInput(cfg.Path)
	if err != nil {
		return err
	}
	log.Debug("read netlist", "path", cfg.Path, "bytes", len(text), "dialect", d.Name)

	opts := []circuit.Option{circuit.WithKeepComments(cfg.KeepComments), circuit.WithLogger(log)}
	if cfg.Name != "" {
		opts = append(opts, circuit.WithName(cfg.Name))
	}
	ckt, err := circuit.Parse(text, d, opts...)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("parse %s: %v", cfg.Path, err)}
	}

	uids, err := selectElements(ckt, cfg.Filters)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	if cfg.Edits() {
		if err := ckt.Apply(edits(cfg), uids); err != nil {
			return &cli.ExitError{Code: 1, Message: err.Error()}
		}
		log.Info("applied edits", "elements", len(uids))
	}

	queried := false
	if cfg.Touches != "" {
		queried = true
		touching, err := ckt.Touches(cfg.Touches)
		if err != nil {
			return &cli.ExitError{Code: 2, Message: err.Error()}
		}
		for _, uid := range touching {
			e, _ := ckt.Get(uid)
			fmt.Fprintf(outW, "%s\t%s\n", uid, e)
		}
	}
	if cfg.Types {
		queried = true
		for _, t := range ckt.ElementTypes() {
			fmt.Fprintln(outW, t)
		}
	}
	if cfg.Nets {
		queried = true
		if err := printNets(outW, ckt); err != nil {
			return err
		}
	}

	switch {
	case cfg.Output != "":
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		if err := ckt.Write(f); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Output, err)
		}
		log.Info("wrote netlist", "path", cfg.Output, "elements", ckt.Len())
	case !queried:
		return ckt.Write(outW)
	}
	return nil
}

func resolveDialect(cfg *cli.Config) (*netlist.Dialect, error) {
	if cfg.DialectFile == "" {
		return netlist.Lookup(cfg.Dialect)
	}
	loaded, err := dialectfile.Load(cfg.DialectFile)
	if err != nil {
		return nil, err
	}
	return dialectfile.Resolve(loaded, cfg.Dialect)
}

func readInput(path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading netlist: %w", err)
	}
	return string(b), nil
}

// selectElements ANDs the filters. No filter selects every element.
func selectElements(ckt *circuit.Circuit, filters []cli.Match) ([]string, error) {
	uids := ckt.UIDs()
	for _, f := range filters {
		if len(uids) == 0 {
			break
		}
		var err error
		if uids, err = ckt.Filter(f.Attr, f.Pattern, uids...); err != nil {
			return nil, err
		}
	}
	return uids, nil
}

func edits(cfg *cli.Config) circuit.Transform {
	var fns []circuit.Transform
	for _, a := range cfg.SetArgs {
		fns = append(fns, circuit.SetArg(a.Key, a.Value))
	}
	for _, s := range cfg.ScaleArgs {
		fns = append(fns, circuit.ScaleArg(s.Key, s.Factor))
	}
	if cfg.SetValue != nil {
		fns = append(fns, circuit.SetValue(*cfg.SetValue))
	}
	return circuit.Chain(fns...)
}

func printNets(w io.Writer, ckt *circuit.Circuit) error {
	counts := ckt.CountNets()
	nets := make([]string, 0, len(counts))
	for net := range counts {
		nets = append(nets, net)
	}
	sort.Strings(nets)
	for _, net := range nets {
		fmt.Fprintf(w, "%s\t%d\n", net, counts[net])
	}

	m, err := ckt.NetMatrix()
	if err != nil {
		return err
	}
	defer m.Destroy()
	m.Print(w)
	return nil
}
