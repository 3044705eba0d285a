package element

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type getter func(Element) (string, bool)
type setter func(Element, string) error

type accessor struct {
	get getter
	set setter
}

func always(f func(Element) string) getter {
	return func(e Element) (string, bool) { return f(e), true }
}

var common = map[string]accessor{
	"uid":      {get: always(Element.UID)},
	"line":     {get: always(Element.Line)},
	"location": {get: always(Element.Location)},
	"lib":      {get: always(Element.Lib)},
	"type":     {get: always(func(e Element) string { return string(e.Kind()) })},
	"parent": {get: always(func(e Element) string {
		loc := e.Location()
		return loc[strings.LastIndex(loc, "/")+1:]
	})},
	"n": {
		get: always(func(e Element) string { return strconv.Itoa(e.N()) }),
		set: func(e Element, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid sequence index %q: %w", v, err)
			}
			e.SetN(n)
			return nil
		},
	},
	"instance": {
		get: func(e Element) (string, bool) { return e.Instance(), e.Instance() != "" },
		set: func(e Element, v string) error {
			c, ok := e.(*Component)
			if !ok {
				return fmt.Errorf("%s has no instance name", e.Kind())
			}
			c.SetInstance(v)
			return nil
		},
	},
	"value": {
		get: func(e Element) (string, bool) { return e.Value(), hasValue(e) },
		set: func(e Element, v string) error {
			e.SetValue(v)
			return nil
		},
	},
	"args": {
		get: func(e Element) (string, bool) { return e.Args().String(), e.Args() != nil },
	},
}

func hasValue(e Element) bool {
	switch e.(type) {
	case *Component, *Param, *Temp, *SubcktDef, *PackageOption:
		return true
	}
	return false
}

func valueAccessor() accessor {
	return common["value"]
}

// variant returns the accessor of a kind-specific attribute.
func variant(e Element, name string) (accessor, bool) {
	switch v := e.(type) {
	case *Component:
		if valueAliases[v.Kind()] == name {
			return valueAccessor(), true
		}
		switch {
		case name == "vname" && v.controlled:
			return accessor{
				get: always(func(Element) string { return v.vname }),
				set: stringSetter(v.SetVName),
			}, true
		case name == "name" && v.Kind() == KindSubckt:
			return valueAccessor(), true
		}
		if _, ok := v.ports.Get(name); ok {
			return accessor{
				get: func(Element) (string, bool) { return v.ports.Get(name) },
				set: func(_ Element, s string) error {
					v.ports.Set(name, s)
					return nil
				},
			}, true
		}
	case *Model:
		switch name {
		case "name":
			return accessor{always(func(Element) string { return v.Name() }), stringSetter(v.SetName)}, true
		case "model_type":
			return accessor{always(func(Element) string { return v.ModelType() }), stringSetter(v.SetModelType)}, true
		}
	case *Include:
		if name == "filename" {
			return accessor{always(func(Element) string { return v.Filename() }), stringSetter(v.SetFilename)}, true
		}
	case *Library:
		switch name {
		case "filename":
			return accessor{always(func(Element) string { return v.Filename() }), stringSetter(v.SetFilename)}, true
		case "libname":
			return accessor{always(func(Element) string { return v.Libname() }), stringSetter(v.SetLibname)}, true
		}
	case *Param:
		if name == "name" {
			return accessor{always(func(Element) string { return v.Name() }), stringSetter(v.SetName)}, true
		}
	case *Function:
		if name == "name" {
			return accessor{always(func(Element) string { return v.Name() }), stringSetter(v.SetName)}, true
		}
	case *Global:
		if name == "nets" {
			return accessor{get: always(func(Element) string { return strings.Join(v.Nets(), " ") })}, true
		}
	case *SubcktDef:
		switch name {
		case "name":
			return valueAccessor(), true
		case "terminals":
			return accessor{get: always(func(Element) string { return strings.Join(v.Terminals(), " ") })}, true
		}
	case *PackageOption:
		switch name {
		case "pkg":
			return accessor{always(func(Element) string { return v.Pkg() }), stringSetter(v.SetPkg)}, true
		case "setting":
			return accessor{always(func(Element) string { return v.Setting() }), stringSetter(v.SetSetting)}, true
		}
	}
	return accessor{}, false
}

func stringSetter(f func(string)) setter {
	return func(_ Element, s string) error {
		f(s)
		return nil
	}
}

func lookup(e Element, name string) (accessor, bool) {
	if acc, ok := variant(e, name); ok {
		return acc, true
	}
	acc, ok := common[name]
	return acc, ok
}

// Attr reads a named attribute as text. ok is false when the element does
// not carry the attribute.
func Attr(e Element, name string) (string, bool) {
	acc, ok := lookup(e, name)
	if !ok {
		return "", false
	}
	return acc.get(e)
}

// SetAttr writes a named attribute.
func SetAttr(e Element, name, value string) error {
	acc, ok := lookup(e, name)
	if ok {
		if _, present := acc.get(e); !present {
			ok = false
		}
	}
	if !ok {
		return fmt.Errorf("%s %s has no attribute %q", e.Kind(), e.UID(), name)
	}
	if acc.set == nil {
		return fmt.Errorf("attribute %q of %s is read-only", name, e.Kind())
	}
	return acc.set(e, value)
}

// AttrNames lists the attributes an element carries, sorted.
func AttrNames(e Element) []string {
	candidates := []string{"name", "model_type", "vname", "filename", "libname", "nets", "terminals", "pkg", "setting"}
	for alias := range valueAliases {
		candidates = append(candidates, valueAliases[alias])
	}
	for _, p := range e.Ports() {
		candidates = append(candidates, p.Terminal)
	}
	for name := range common {
		candidates = append(candidates, name)
	}

	seen := map[string]bool{}
	var names []string
	for _, name := range candidates {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := Attr(e, name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
