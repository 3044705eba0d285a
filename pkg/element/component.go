package element

import (
	"fmt"
	"slices"
	"strings"

	"github.com/edp1096/toy-netlist/internal/consts"
)

// Component is a device line: <instance> <net>... [vname] <value> [args]
type Component struct {
	Base
	instance string
	ports    Ports
	value    string
	args     *Args

	// F/H carry a controlling source before the value.
	controlled bool
	vname      string

	// Waveform sources keep the whole tail as value and have no args.
	compound bool
}

// NewComponent returns the constructor of a fixed-arity family.
func NewComponent(kind Kind) Constructor {
	return func(line string, meta Meta) (Element, error) {
		return newComponent(kind, kind.Terminals(), strings.Fields(line), line, meta)
	}
}

func newComponent(kind Kind, k int, tokens []string, line string, meta Meta) (*Component, error) {
	if len(tokens) < k+2 {
		return nil, &ArityError{Kind: kind, Line: line, Got: len(tokens) - 1, Want: fmt.Sprintf("%d nets and a value", k)}
	}
	return &Component{
		Base:     newBase(kind, line, meta),
		instance: tokens[0],
		ports:    newPorts(tokens[1 : k+1]),
		value:    tokens[k+1],
		args:     ParseArgs(tokens[k+2:]),
	}, nil
}

// NewControlled builds current controlled sources: <instance> <n0> <n1> <vname> <value> [args]
func NewControlled(kind Kind) Constructor {
	return func(line string, meta Meta) (Element, error) {
		tokens := strings.Fields(line)
		if len(tokens) < 5 {
			return nil, &ArityError{Kind: kind, Line: line, Got: len(tokens) - 1, Want: "2 nets, a controlling source and a value"}
		}
		return &Component{
			Base:       newBase(kind, line, meta),
			instance:   tokens[0],
			ports:      newPorts(tokens[1:3]),
			controlled: true,
			vname:      tokens[3],
			value:      tokens[4],
			args:       ParseArgs(tokens[5:]),
		}, nil
	}
}

// NewSource builds independent sources. Four tokens are a literal value; a
// waveform keyword anywhere in the tail makes the whole tail the value.
func NewSource(kind Kind) Constructor {
	return func(line string, meta Meta) (Element, error) {
		tokens := strings.Fields(line)
		if len(tokens) == 4 || !isWaveform(tokens) {
			return newComponent(kind, 2, tokens, line, meta)
		}
		return &Component{
			Base:     newBase(kind, line, meta),
			instance: tokens[0],
			ports:    newPorts(tokens[1:3]),
			value:    strings.Join(tokens[3:], " "),
			compound: true,
		}, nil
	}
}

func isWaveform(tokens []string) bool {
	if len(tokens) < 4 {
		return false
	}
	for _, tok := range tokens[3:] {
		lead, _, _ := strings.Cut(tok, "(")
		if slices.Contains(consts.Waveforms, lead) {
			return true
		}
	}
	return false
}

// NewBjt picks 3 or 4 terminals from the tokens ahead of the first assignment.
func NewBjt(line string, meta Meta) (Element, error) {
	tokens := strings.Fields(line)
	count := firstAssign(tokens, 1) - 1
	switch count {
	case 4:
		return newComponent(KindBjt, 3, tokens, line, meta)
	case 5:
		return newComponent(KindBjt, 4, tokens, line, meta)
	}
	return nil, &ArityError{Kind: KindBjt, Line: line, Got: count, Want: "4 (c b e model) or 5 (c b e s model)"}
}

// NewSubckt builds subcircuit instances: <instance> <net>... <name> [params:] [key=value]...
func NewSubckt(line string, meta Meta) (Element, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil, &ArityError{Kind: KindSubckt, Line: line, Got: len(tokens) - 1, Want: "at least a subcircuit name"}
	}
	name := firstAssign(tokens, 1) - 1
	for name > 1 && tokens[name] == paramsMarker {
		name--
	}
	if name < 1 {
		return nil, &ArityError{Kind: KindSubckt, Line: line, Got: 0, Want: "at least a subcircuit name"}
	}
	return newComponent(KindSubckt, name-1, tokens, line, meta)
}

func (c *Component) Instance() string        { return c.instance }
func (c *Component) SetInstance(inst string) { c.instance = inst }
func (c *Component) Ports() Ports            { return c.ports }
func (c *Component) Value() string           { return c.value }
func (c *Component) SetValue(v string)       { c.value = v }
func (c *Component) Compound() bool          { return c.compound }
func (c *Component) Controlled() bool        { return c.controlled }
func (c *Component) VName() string           { return c.vname }
func (c *Component) SetVName(vname string)   { c.vname = vname }

// Args is nil for compound sources.
func (c *Component) Args() *Args {
	if c.compound {
		return nil
	}
	return c.args
}

func (c *Component) String() string {
	parts := make([]string, 0, len(c.ports)+4)
	parts = append(parts, c.instance)
	parts = append(parts, c.ports.Nets()...)
	if c.controlled {
		parts = append(parts, c.vname)
	}
	parts = append(parts, c.value)
	if !c.compound && c.args.Len() > 0 {
		parts = append(parts, c.args.String())
	}
	return strings.Join(parts, " ")
}

func (c *Component) Clone() Element {
	cp := *c
	cp.ports = c.ports.clone()
	cp.args = c.args.Clone()
	return &cp
}
