package netlist

import (
	"strings"

	"github.com/edp1096/toy-netlist/internal/consts"
)

// Hierarchy tracks subcircuit nesting, library blocks and control sections
// while lines are parsed in order.
type Hierarchy struct {
	scopes  []string
	control bool
	lib     string
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{scopes: []string{consts.RootScope}}
}

// Skip reports lines that produce no element. A control section is skipped
// from .control through .endc inclusive.
func (h *Hierarchy) Skip(line string) bool {
	kw := strings.ToLower(keyword(line))
	if h.control {
		if kw == ".endc" {
			h.control = false
		}
		return true
	}

	switch kw {
	case "", ".end":
		return true
	case ".control":
		h.control = true
		return true
	}
	return false
}

// Enter applies scope changes that hold for the line itself.
func (h *Hierarchy) Enter(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch strings.ToLower(fields[0]) {
	case ".subckt":
		if len(fields) > 1 {
			h.scopes = append(h.scopes, fields[1])
		}
	case ".lib":
		if len(fields) == 2 {
			h.lib = fields[1]
		}
	}
}

// Leave applies scope changes that start after the line.
func (h *Hierarchy) Leave(line string) {
	switch strings.ToLower(keyword(line)) {
	case ".ends":
		if len(h.scopes) > 1 {
			h.scopes = h.scopes[:len(h.scopes)-1]
		}
	case ".endl":
		h.lib = ""
	}
}

func (h *Hierarchy) Location() string {
	return strings.Join(h.scopes, consts.ScopeSep)
}

func (h *Hierarchy) Library() string { return h.lib }
func (h *Hierarchy) Depth() int      { return len(h.scopes) - 1 }
func (h *Hierarchy) InControl() bool { return h.control }
