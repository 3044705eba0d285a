package element

import (
	"fmt"
	"strings"
)

// Element is one parsed netlist statement.
type Element interface {
	UID() string
	Line() string
	Location() string
	Lib() string
	N() int
	SetN(n int)
	Kind() Kind
	Instance() string
	Ports() Ports
	Value() string
	SetValue(v string)
	Args() *Args
	String() string
	Clone() Element
}

// Meta is the parse context attached to every element.
type Meta struct {
	UID      string
	Location string
	Lib      string
	N        int
}

// Constructor builds an element from a normalized line.
type Constructor func(line string, meta Meta) (Element, error)

type Base struct {
	uid      string
	line     string
	location string
	lib      string
	n        int
	kind     Kind
}

func newBase(kind Kind, line string, meta Meta) Base {
	return Base{
		uid:      meta.UID,
		line:     line,
		location: meta.Location,
		lib:      meta.Lib,
		n:        meta.N,
		kind:     kind,
	}
}

func (b *Base) UID() string      { return b.uid }
func (b *Base) Line() string     { return b.line }
func (b *Base) Location() string { return b.location }
func (b *Base) Lib() string      { return b.lib }
func (b *Base) N() int           { return b.n }
func (b *Base) SetN(n int)       { b.n = n }
func (b *Base) Kind() Kind       { return b.kind }
func (b *Base) Instance() string { return "" }
func (b *Base) Ports() Ports     { return nil }
func (b *Base) Value() string    { return "" }
func (b *Base) SetValue(string)  {}
func (b *Base) Args() *Args      { return nil }
func (b *Base) String() string   { return b.line }

// Parent is the innermost scope of the element's location.
func (b *Base) Parent() string {
	if i := strings.LastIndex(b.location, "/"); i >= 0 {
		return b.location[i+1:]
	}
	return b.location
}

// Port binds a terminal name to a net.
type Port struct {
	Terminal string
	Net      string
}

// Ports keeps terminals in positional order n0, n1, ...
type Ports []Port

func newPorts(nets []string) Ports {
	ports := make(Ports, len(nets))
	for i, net := range nets {
		ports[i] = Port{Terminal: fmt.Sprintf("n%d", i), Net: net}
	}
	return ports
}

func (p Ports) Get(terminal string) (string, bool) {
	for _, port := range p {
		if port.Terminal == terminal {
			return port.Net, true
		}
	}
	return "", false
}

// Set rebinds an existing terminal. It reports false for unknown terminals.
func (p Ports) Set(terminal, net string) bool {
	for i := range p {
		if p[i].Terminal == terminal {
			p[i].Net = net
			return true
		}
	}
	return false
}

func (p Ports) Nets() []string {
	nets := make([]string, len(p))
	for i, port := range p {
		nets[i] = port.Net
	}
	return nets
}

func (p Ports) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, port := range p {
		m[port.Terminal] = port.Net
	}
	return m
}

func (p Ports) clone() Ports {
	if p == nil {
		return nil
	}
	return append(Ports(nil), p...)
}

var constructors = map[Kind]Constructor{
	KindComment:          NewComment,
	KindStatement:        NewStatement,
	KindModel:            NewModel,
	KindInclude:          NewInclude,
	KindLibrary:          NewLibrary,
	KindOption:           NewOption,
	KindFunction:         NewFunction,
	KindTemp:             NewTemp,
	KindParam:            NewParam,
	KindGlobal:           NewGlobal,
	KindSubcktDef:        NewSubcktDef,
	KindXspice:           opaque(KindXspice),
	KindBehavioralSource: opaque(KindBehavioralSource),
	KindNumericalGss:     opaque(KindNumericalGss),
	KindBjt:              NewBjt,
	KindSubckt:           NewSubckt,
	KindVsource:          NewSource(KindVsource),
	KindIsource:          NewSource(KindIsource),
	KindCccs:             NewControlled(KindCccs),
	KindCcvs:             NewControlled(KindCcvs),
	KindCapacitor:        NewComponent(KindCapacitor),
	KindDiode:            NewComponent(KindDiode),
	KindInductor:         NewComponent(KindInductor),
	KindResistor:         NewComponent(KindResistor),
	KindIcsw:             NewComponent(KindIcsw),
	KindJfet:             NewComponent(KindJfet),
	KindRCLine:           NewComponent(KindRCLine),
	KindMesfet:           NewComponent(KindMesfet),
	KindVcvs:             NewComponent(KindVcvs),
	KindVccs:             NewComponent(KindVccs),
	KindMosfet:           NewComponent(KindMosfet),
	KindLossyTline:       NewComponent(KindLossyTline),
	KindVcsw:             NewComponent(KindVcsw),
	KindLosslessTline:    NewComponent(KindLosslessTline),
	KindSingleLossyTline: NewComponent(KindSingleLossyTline),
}

// ConstructorFor returns the default constructor of a kind.
func ConstructorFor(kind Kind) (Constructor, bool) {
	ctor, ok := constructors[kind]
	return ctor, ok
}

// New builds an element of the given kind with its default constructor.
func New(kind Kind, line string, meta Meta) (Element, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("no constructor for element kind %s", kind)
	}
	return ctor(line, meta)
}
