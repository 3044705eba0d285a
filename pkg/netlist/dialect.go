package netlist

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/edp1096/toy-netlist/pkg/element"
)

// Stage is one order-dependent per-line rewrite of the normalizer.
type Stage string

const (
	StageCollapse Stage = "collapse" // whitespace runs to one space
	StageQuotes   Stage = "quotes"   // spaces inside '...'
	StageAssign   Stage = "assign"   // spaces around '='
	StageComma    Stage = "comma"    // spaces after ','
	StageBraces   Stage = "braces"   // {} to ''
	StageLower    Stage = "lower"    // lowercase unless case preserving
)

func ParseStage(s string) (Stage, error) {
	for _, st := range SequentialStages {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown normalizer stage: %s", s)
}

// Dialect is the syntax table of one simulator flavour.
type Dialect struct {
	Name           string
	EOLComments    string   // characters starting an end-of-line comment
	Stages         []Stage  // per-line rewrites after continuation merge
	CasePreserving []string // keywords whose lines keep their case

	// Statements maps a dot keyword (".model") to a kind. Unknown keywords
	// become generic statements.
	Statements map[string]element.Kind

	// Prefixes maps an upper-case leading identifier prefix to a kind. The
	// longest matching prefix wins; KindUnsupported rejects the line.
	Prefixes map[string]element.Kind

	// Constructors override the default constructor of a kind.
	Constructors map[element.Kind]element.Constructor
}

func (d *Dialect) Clone() *Dialect {
	return &Dialect{
		Name:           d.Name,
		EOLComments:    d.EOLComments,
		Stages:         slices.Clone(d.Stages),
		CasePreserving: slices.Clone(d.CasePreserving),
		Statements:     maps.Clone(d.Statements),
		Prefixes:       maps.Clone(d.Prefixes),
		Constructors:   maps.Clone(d.Constructors),
	}
}

// Constructor resolves the element constructor of kind.
func (d *Dialect) Constructor(kind element.Kind) (element.Constructor, bool) {
	if ctor, ok := d.Constructors[kind]; ok {
		return ctor, true
	}
	return element.ConstructorFor(kind)
}

// Validate checks that every table entry can be built.
func (d *Dialect) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dialect has no name")
	}
	for _, st := range d.Stages {
		if _, err := ParseStage(string(st)); err != nil {
			return fmt.Errorf("dialect %s: %w", d.Name, err)
		}
	}
	for kw, kind := range d.Statements {
		if kind == element.KindUnsupported {
			continue
		}
		if _, ok := d.Constructor(kind); !ok {
			return fmt.Errorf("dialect %s: statement %s has no constructor for %s", d.Name, kw, kind)
		}
	}
	for prefix, kind := range d.Prefixes {
		if kind == element.KindUnsupported {
			continue
		}
		if _, ok := d.Constructor(kind); !ok {
			return fmt.Errorf("dialect %s: prefix %s has no constructor for %s", d.Name, prefix, kind)
		}
	}
	return nil
}

// SequentialStages runs the rewrites in listing order. Spaces inside {...}
// survive a single pass with this order.
var SequentialStages = []Stage{StageCollapse, StageQuotes, StageAssign, StageComma, StageBraces, StageLower}

var bracesOrder = []Stage{StageCollapse, StageBraces, StageQuotes, StageAssign, StageComma, StageLower}

func spice3Prefixes() map[string]element.Kind {
	return map[string]element.Kind{
		"A": element.KindUnsupported,
		"B": element.KindBehavioralSource,
		"C": element.KindCapacitor,
		"D": element.KindDiode,
		"E": element.KindVcvs,
		"F": element.KindCccs,
		"G": element.KindVccs,
		"H": element.KindCcvs,
		"I": element.KindIsource,
		"J": element.KindJfet,
		"K": element.KindUnsupported,
		"L": element.KindInductor,
		"M": element.KindMosfet,
		"N": element.KindUnsupported,
		"O": element.KindLossyTline,
		"P": element.KindUnsupported,
		"Q": element.KindBjt,
		"R": element.KindResistor,
		"S": element.KindVcsw,
		"T": element.KindLosslessTline,
		"U": element.KindRCLine,
		"V": element.KindVsource,
		"W": element.KindIcsw,
		"X": element.KindSubckt,
		"Y": element.KindUnsupported,
		"Z": element.KindMesfet,
	}
}

func spice3Statements() map[string]element.Kind {
	return map[string]element.Kind{
		".model":   element.KindModel,
		".subckt":  element.KindSubcktDef,
		".inc":     element.KindInclude,
		".include": element.KindInclude,
		".lib":     element.KindLibrary,
		".library": element.KindLibrary,
		".option":  element.KindOption,
		".param":   element.KindParam,
		".global":  element.KindGlobal,
	}
}

// Generic is plain SPICE3.
func Generic() *Dialect {
	return &Dialect{
		Name:           "generic",
		EOLComments:    "$",
		Stages:         slices.Clone(bracesOrder),
		CasePreserving: []string{".include", ".inc"},
		Statements:     spice3Statements(),
		Prefixes:       spice3Prefixes(),
	}
}

func Ngspice() *Dialect {
	d := Generic()
	d.Name = "ngspice"
	d.EOLComments = "$;"
	d.Statements[".par"] = element.KindParam
	d.Statements[".func"] = element.KindFunction
	d.Statements[".function"] = element.KindFunction
	d.Statements[".temp"] = element.KindTemp
	d.Prefixes["A"] = element.KindXspice
	d.Prefixes["N"] = element.KindNumericalGss
	d.Prefixes["Y"] = element.KindSingleLossyTline
	d.Prefixes["XC"] = element.KindCapacitor
	d.Prefixes["XM"] = element.KindMosfet
	return d
}

func Hspice() *Dialect {
	d := Generic()
	d.Name = "hspice"
	d.Statements[".par"] = element.KindParam
	d.Statements[".temp"] = element.KindTemp
	for _, p := range []string{"B", "O", "S", "T", "U", "W", "Z"} {
		d.Prefixes[p] = element.KindUnsupported
	}
	d.Prefixes["XC"] = element.KindCapacitor
	d.Prefixes["XM"] = element.KindMosfet
	return d
}

func Xyce() *Dialect {
	d := Generic()
	d.Name = "xyce"
	d.EOLComments = ";"
	d.Statements[".par"] = element.KindParam
	d.Statements[".func"] = element.KindFunction
	d.Statements[".function"] = element.KindFunction
	d.Prefixes["U"] = element.KindUnsupported
	d.Prefixes["XC"] = element.KindCapacitor
	d.Prefixes["XM"] = element.KindMosfet
	for _, p := range []string{"YPDE", "YACC", "YLIN", "YMEMRISTOR"} {
		d.Prefixes[p] = element.KindUnsupported
	}
	d.Constructors = map[element.Kind]element.Constructor{
		element.KindOption: element.NewPackageOption,
	}
	return d
}

var builtins = map[string]func() *Dialect{
	"generic": Generic,
	"ngspice": Ngspice,
	"hspice":  Hspice,
	"xyce":    Xyce,
}

// Lookup returns a fresh copy of a built-in dialect.
func Lookup(name string) (*Dialect, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown dialect: %s (choose one of %v)", name, Names())
	}
	return build(), nil
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
