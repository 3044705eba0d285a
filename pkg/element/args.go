package element

import "strings"

type arg struct {
	key   string
	value string
	flag  bool
}

// Args is an ordered key=value bag. Keys without a value are flags.
type Args struct {
	items []arg
}

// ParseArgs splits each token on its first '='.
func ParseArgs(tokens []string) *Args {
	a := &Args{items: make([]arg, 0, len(tokens))}
	for _, tok := range tokens {
		if key, value, ok := strings.Cut(tok, "="); ok {
			a.Set(key, value)
		} else {
			a.SetFlag(tok)
		}
	}
	return a
}

func (a *Args) index(key string) int {
	for i, it := range a.items {
		if it.key == key {
			return i
		}
	}
	return -1
}

// Get returns the value of key. Flags return "" and true.
func (a *Args) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	if i := a.index(key); i >= 0 {
		return a.items[i].value, true
	}
	return "", false
}

// Set assigns key in place, or appends it when new.
func (a *Args) Set(key, value string) {
	if i := a.index(key); i >= 0 {
		a.items[i].value = value
		a.items[i].flag = false
		return
	}
	a.items = append(a.items, arg{key: key, value: value})
}

// SetFlag turns key into a bare flag, appending it when new.
func (a *Args) SetFlag(key string) {
	if i := a.index(key); i >= 0 {
		a.items[i].value = ""
		a.items[i].flag = true
		return
	}
	a.items = append(a.items, arg{key: key, flag: true})
}

func (a *Args) IsFlag(key string) bool {
	if a == nil {
		return false
	}
	i := a.index(key)
	return i >= 0 && a.items[i].flag
}

func (a *Args) Has(key string) bool {
	return a != nil && a.index(key) >= 0
}

func (a *Args) Delete(key string) bool {
	i := a.index(key)
	if i < 0 {
		return false
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	return true
}

// Rename changes a key without moving it. It fails when from is missing or
// to is already taken.
func (a *Args) Rename(from, to string) bool {
	i := a.index(from)
	if i < 0 || (from != to && a.index(to) >= 0) {
		return false
	}
	a.items[i].key = to
	return true
}

func (a *Args) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a.items))
	for i, it := range a.items {
		keys[i] = it.key
	}
	return keys
}

func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

func (a *Args) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, len(a.items))
	for i, it := range a.items {
		if it.flag {
			parts[i] = it.key
		} else {
			parts[i] = it.key + "=" + it.value
		}
	}
	return strings.Join(parts, " ")
}

func (a *Args) Clone() *Args {
	if a == nil {
		return nil
	}
	return &Args{items: append([]arg(nil), a.items...)}
}
