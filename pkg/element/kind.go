package element

import (
	"fmt"
	"sort"
)

// Kind names an element variant. The string form is what Type() reports.
type Kind string

const (
	KindComment   Kind = "comment"
	KindStatement Kind = "statement"

	// Dot statements
	KindModel     Kind = "model"
	KindInclude   Kind = "include"
	KindLibrary   Kind = "library"
	KindOption    Kind = "option"
	KindFunction  Kind = "function"
	KindTemp      Kind = "temp"
	KindParam     Kind = "param"
	KindGlobal    Kind = "global"
	KindSubcktDef Kind = "subcktdef"

	// Components
	KindXspice           Kind = "xspice"
	KindBehavioralSource Kind = "behavioral_source"
	KindCapacitor        Kind = "capacitor"
	KindDiode            Kind = "diode"
	KindVcvs             Kind = "vcvs"
	KindCccs             Kind = "cccs"
	KindVccs             Kind = "vccs"
	KindCcvs             Kind = "ccvs"
	KindIsource          Kind = "isource"
	KindJfet             Kind = "jfet"
	KindInductor         Kind = "inductor"
	KindMosfet           Kind = "mosfet"
	KindNumericalGss     Kind = "numerical_device_gss"
	KindLossyTline       Kind = "lossy_transmission_line"
	KindBjt              Kind = "bjt"
	KindResistor         Kind = "resistor"
	KindVcsw             Kind = "vcsw"
	KindLosslessTline    Kind = "lossless_transmission_line"
	KindRCLine           Kind = "distributed_rc_line"
	KindVsource          Kind = "vsource"
	KindIcsw             Kind = "icsw"
	KindSubckt           Kind = "subckt"
	KindSingleLossyTline Kind = "single_lossy_transmission_line"
	KindMesfet           Kind = "mesfet"

	// KindUnsupported marks a prefix the dialect knows but refuses.
	KindUnsupported Kind = ""
)

// terminal count per component family
var terminals = map[Kind]int{
	KindCapacitor:        2,
	KindDiode:            2,
	KindCccs:             2,
	KindCcvs:             2,
	KindIsource:          2,
	KindInductor:         2,
	KindResistor:         2,
	KindVsource:          2,
	KindIcsw:             2,
	KindJfet:             3,
	KindRCLine:           3,
	KindMesfet:           3,
	KindVcvs:             4,
	KindVccs:             4,
	KindMosfet:           4,
	KindLossyTline:       4,
	KindVcsw:             4,
	KindLosslessTline:    4,
	KindSingleLossyTline: 4,
}

// Semantic names for the value slot of a component family.
var valueAliases = map[Kind]string{
	KindResistor:  "resistance",
	KindCapacitor: "capacitance",
	KindInductor:  "inductance",
	KindVsource:   "voltage",
	KindIsource:   "current",
	KindDiode:     "model",
	KindJfet:      "model",
	KindMosfet:    "model",
	KindBjt:       "model",
	KindMesfet:    "model",
}

// Terminals returns the fixed port count of a component kind, or 0 when the
// kind has no fixed arity (bjt, subckt, statements).
func (k Kind) Terminals() int {
	return terminals[k]
}

func (k Kind) String() string {
	if k == KindUnsupported {
		return "unsupported"
	}
	return string(k)
}

var known = map[Kind]bool{}

func init() {
	for k := range constructors {
		known[k] = true
	}
}

// ParseKind validates a kind name. The empty string is KindUnsupported.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if k == KindUnsupported || known[k] {
		return k, nil
	}
	return "", fmt.Errorf("unknown element kind: %s", s)
}

// Kinds lists every constructible kind, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(known))
	for k := range known {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
