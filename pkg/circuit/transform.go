package circuit

import (
	"fmt"

	"github.com/edp1096/toy-netlist/pkg/element"
	"github.com/edp1096/toy-netlist/pkg/util"
)

// Transform edits one element. It may mutate e and return it, or return a
// replacement.
type Transform func(e element.Element) (element.Element, error)

// SetArg sets key=value on an element that carries args.
func SetArg(key, value string) Transform {
	return func(e element.Element) (element.Element, error) {
		args := e.Args()
		if args == nil {
			return nil, fmt.Errorf("%s %s has no args", e.Kind(), e.UID())
		}
		args.Set(key, value)
		return e, nil
	}
}

func SetValue(value string) Transform {
	return func(e element.Element) (element.Element, error) {
		e.SetValue(value)
		return e, nil
	}
}

func SetAttr(name, value string) Transform {
	return func(e element.Element) (element.Element, error) {
		if err := element.SetAttr(e, name, value); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// ScaleArg multiplies a numeric arg by factor and writes it back with an
// engineering suffix.
func ScaleArg(key string, factor float64) Transform {
	return func(e element.Element) (element.Element, error) {
		args := e.Args()
		raw, ok := args.Get(key)
		if !ok {
			return nil, fmt.Errorf("%s %s has no arg %s", e.Kind(), e.UID(), key)
		}
		v, err := util.ParseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("arg %s: %w", key, err)
		}
		args.Set(key, util.FormatValue(v*factor))
		return e, nil
	}
}

// Chain runs transforms left to right.
func Chain(fns ...Transform) Transform {
	return func(e element.Element) (element.Element, error) {
		var err error
		for _, fn := range fns {
			if e, err = fn(e); err != nil {
				return nil, err
			}
		}
		return e, nil
	}
}
