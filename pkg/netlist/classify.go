package netlist

import (
	"strings"

	"github.com/edp1096/toy-netlist/pkg/element"
)

// Classify maps a normalized line to an element kind.
func (d *Dialect) Classify(line string) (element.Kind, error) {
	switch {
	case strings.HasPrefix(line, "*"):
		return element.KindComment, nil

	case strings.HasPrefix(line, "."):
		if kind, ok := d.Statements[strings.ToLower(keyword(line))]; ok && kind != element.KindUnsupported {
			return kind, nil
		}
		return element.KindStatement, nil
	}

	ident := strings.ToUpper(keyword(line))
	best := ""
	for prefix := range d.Prefixes {
		if len(prefix) > len(best) && strings.HasPrefix(ident, prefix) {
			best = prefix
		}
	}
	if best == "" {
		return "", &ClassificationError{Dialect: d.Name, Line: line, Reason: ReasonUnrecognized}
	}
	if kind := d.Prefixes[best]; kind != element.KindUnsupported {
		return kind, nil
	}
	return "", &ClassificationError{Dialect: d.Name, Line: line, Reason: ReasonUnsupported}
}
