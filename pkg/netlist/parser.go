package netlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edp1096/toy-netlist/pkg/element"
)

// Parser turns normalized lines into elements of one dialect.
type Parser struct {
	dialect *Dialect
}

func NewParser(d *Dialect) *Parser {
	return &Parser{dialect: d}
}

func (p *Parser) Dialect() *Dialect {
	return p.dialect
}

// Parse normalizes text and builds its elements, numbered from 0.
func Parse(text string, d *Dialect, keepComments bool) ([]element.Element, error) {
	return NewParser(d).Parse(NormalizeText(text, d, keepComments), 0)
}

// Parse builds elements from normalized lines, numbering them from start.
// A classification or arity error aborts the whole input.
func (p *Parser) Parse(lines []string, start int) ([]element.Element, error) {
	h := NewHierarchy()
	seen := make(map[string]struct{})
	elements := make([]element.Element, 0, len(lines))
	n := start

	for _, line := range lines {
		if h.Skip(line) {
			continue
		}
		h.Enter(line)

		kind, err := p.dialect.Classify(line)
		if err != nil {
			var ce *ClassificationError
			if errors.As(err, &ce) {
				ce.N = n
			}
			return nil, err
		}

		stmts := []string{line}
		if kind == element.KindParam {
			stmts = SplitParam(line)
		}

		for _, stmt := range stmts {
			elem, err := p.build(kind, stmt, element.Meta{
				UID:      UID(n, stmt),
				Location: h.Location(),
				Lib:      h.Library(),
				N:        n,
			})
			if err != nil {
				return nil, fmt.Errorf("statement %d: %w", n, err)
			}
			if _, dup := seen[elem.UID()]; dup {
				return nil, fmt.Errorf("statement %d: duplicate uid %s", n, elem.UID())
			}
			seen[elem.UID()] = struct{}{}
			elements = append(elements, elem)
			n++
		}

		h.Leave(line)
	}

	return elements, nil
}

func (p *Parser) build(kind element.Kind, line string, meta element.Meta) (element.Element, error) {
	ctor, ok := p.dialect.Constructor(kind)
	if !ok {
		return nil, fmt.Errorf("dialect %s has no constructor for %s", p.dialect.Name, kind)
	}
	return ctor(line, meta)
}

// SplitParam splits a multi-assignment .param line into one line per
// assignment. Lines with at most one assignment are returned as is.
func SplitParam(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	var assigns []string
	for _, f := range fields[1:] {
		if strings.Contains(f, "=") {
			assigns = append(assigns, f)
		}
	}
	if len(assigns) <= 1 {
		return []string{line}
	}
	lines := make([]string, len(assigns))
	for i, a := range assigns {
		lines[i] = fields[0] + " " + a
	}
	return lines
}
