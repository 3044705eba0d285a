// Package dialectfile loads user dialects from HCL. Each dialect block
// starts from a base dialect and overrides parts of its tables:
//
//	dialect "spectre_lite" {
//	  base         = "ngspice"
//	  eol_comments = "$"
//	  stages       = ["collapse", "braces", "quotes", "assign", "comma", "lower"]
//
//	  statement ".ic" { kind = "statement" }
//	  prefix "K"      { kind = "unsupported" }
//	}
package dialectfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/edp1096/toy-netlist/pkg/element"
	"github.com/edp1096/toy-netlist/pkg/netlist"
)

const unsupported = "unsupported"

type fileRoot struct {
	Dialects []*dialectBlock `hcl:"dialect,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type dialectBlock struct {
	Name           string      `hcl:"name,label"`
	Base           string      `hcl:"base,optional"`
	EOLComments    *string     `hcl:"eol_comments,optional"`
	Stages         []string    `hcl:"stages,optional"`
	CasePreserving []string    `hcl:"case_preserving,optional"`
	Statements     []*mapBlock `hcl:"statement,block"`
	Prefixes       []*mapBlock `hcl:"prefix,block"`
}

type mapBlock struct {
	Key  string `hcl:"key,label"`
	Kind string `hcl:"kind"`
}

// Load reads the dialects defined in an HCL file, in file order.
func Load(path string) ([]*netlist.Dialect, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dialect file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes dialect blocks from src. A base may name a built-in dialect
// or one defined earlier in the same source.
func Parse(src []byte, filename string) ([]*netlist.Dialect, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	var out []*netlist.Dialect
	for _, block := range root.Dialects {
		d, err := translate(block, out)
		if err != nil {
			return nil, fmt.Errorf("%s: dialect %q: %w", filename, block.Name, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Resolve finds name among loaded dialects first, then the built-ins.
func Resolve(loaded []*netlist.Dialect, name string) (*netlist.Dialect, error) {
	for i := len(loaded) - 1; i >= 0; i-- {
		if loaded[i].Name == name {
			return loaded[i].Clone(), nil
		}
	}
	return netlist.Lookup(name)
}

func translate(block *dialectBlock, earlier []*netlist.Dialect) (*netlist.Dialect, error) {
	base := block.Base
	if base == "" {
		base = "generic"
	}
	d, err := Resolve(earlier, base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	d.Name = block.Name

	if block.EOLComments != nil {
		d.EOLComments = *block.EOLComments
	}
	if block.Stages != nil {
		d.Stages = d.Stages[:0]
		for _, s := range block.Stages {
			st, err := netlist.ParseStage(s)
			if err != nil {
				return nil, err
			}
			d.Stages = append(d.Stages, st)
		}
	}
	if block.CasePreserving != nil {
		d.CasePreserving = nil
		for _, kw := range block.CasePreserving {
			d.CasePreserving = append(d.CasePreserving, strings.ToLower(kw))
		}
	}

	for _, st := range block.Statements {
		if !strings.HasPrefix(st.Key, ".") {
			return nil, fmt.Errorf("statement %q must start with '.'", st.Key)
		}
		kind, err := parseKind(st.Kind)
		if err != nil {
			return nil, fmt.Errorf("statement %s: %w", st.Key, err)
		}
		d.Statements[strings.ToLower(st.Key)] = kind
	}
	for _, p := range block.Prefixes {
		if p.Key == "" || strings.HasPrefix(p.Key, ".") || strings.HasPrefix(p.Key, "*") {
			return nil, fmt.Errorf("invalid prefix %q", p.Key)
		}
		kind, err := parseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("prefix %s: %w", p.Key, err)
		}
		d.Prefixes[strings.ToUpper(p.Key)] = kind
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseKind(s string) (element.Kind, error) {
	if s == unsupported {
		return element.KindUnsupported, nil
	}
	if s == "" {
		return "", fmt.Errorf("empty kind, use %q to reject lines", unsupported)
	}
	return element.ParseKind(s)
}
