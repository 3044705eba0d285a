package circuit

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/edp1096/toy-netlist/internal/consts"
	"github.com/edp1096/toy-netlist/pkg/element"
	"github.com/edp1096/toy-netlist/pkg/matrix"
	"github.com/edp1096/toy-netlist/pkg/netlist"
)

// Circuit is an ordered set of elements keyed by uid, plus the snapshot
// taken right after the first parse.
type Circuit struct {
	name         string
	dialect      *netlist.Dialect
	keepComments bool
	logger       *slog.Logger

	order    []string
	elements map[string]element.Element
	baseline []element.Element
}

type Option func(*Circuit)

func WithName(name string) Option {
	return func(c *Circuit) { c.name = name }
}

// WithKeepComments keeps full-line comments as Comment elements.
func WithKeepComments(keep bool) Option {
	return func(c *Circuit) { c.keepComments = keep }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Circuit) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an empty circuit of dialect d.
func New(d *netlist.Dialect, opts ...Option) *Circuit {
	c := &Circuit{
		name:     consts.DefaultName,
		dialect:  d,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		elements: make(map[string]element.Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse builds a circuit from netlist text. Any classification or arity
// error discards the whole parse.
func Parse(text string, d *netlist.Dialect, opts ...Option) (*Circuit, error) {
	c := New(d, opts...)
	lines := netlist.NormalizeText(text, d, c.keepComments)
	if err := c.load(lines); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseLines is Parse over lines that were already split.
func ParseLines(lines []string, d *netlist.Dialect, opts ...Option) (*Circuit, error) {
	c := New(d, opts...)
	if err := c.load(netlist.Normalize(lines, d, c.keepComments)); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Circuit) load(lines []string) error {
	c.logger.Debug("parsing netlist", "dialect", c.dialect.Name, "statements", len(lines))

	elems, err := netlist.NewParser(c.dialect).Parse(lines, 0)
	if err != nil {
		c.logger.Debug("parse failed", "dialect", c.dialect.Name, "error", err)
		return err
	}
	for _, e := range elems {
		c.insert(e)
	}
	c.baseline = c.snapshot()

	c.logger.Debug("parsed netlist", "name", c.name, "elements", len(c.order))
	return nil
}

func (c *Circuit) insert(e element.Element) {
	if _, ok := c.elements[e.UID()]; !ok {
		c.order = append(c.order, e.UID())
	}
	c.elements[e.UID()] = e
}

func (c *Circuit) snapshot() []element.Element {
	out := make([]element.Element, len(c.order))
	for i, uid := range c.order {
		out[i] = c.elements[uid].Clone()
	}
	return out
}

func (c *Circuit) Name() string              { return c.name }
func (c *Circuit) Dialect() *netlist.Dialect { return c.dialect }
func (c *Circuit) Len() int                  { return len(c.order) }

func (c *Circuit) UIDs() []string {
	return append([]string(nil), c.order...)
}

func (c *Circuit) Get(uid string) (element.Element, bool) {
	e, ok := c.elements[uid]
	return e, ok
}

// Set replaces the element stored under an existing uid.
func (c *Circuit) Set(uid string, e element.Element) error {
	if _, ok := c.elements[uid]; !ok {
		return fmt.Errorf("unknown uid %s", uid)
	}
	if e == nil {
		return fmt.Errorf("nil element for uid %s", uid)
	}
	c.elements[uid] = e
	return nil
}

// Elements returns the live elements in order.
func (c *Circuit) Elements() []element.Element {
	out := make([]element.Element, len(c.order))
	for i, uid := range c.order {
		out[i] = c.elements[uid]
	}
	return out
}

func (c *Circuit) OfKind(kind element.Kind) []element.Element {
	var out []element.Element
	for _, uid := range c.order {
		if e := c.elements[uid]; e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}

// ElementTypes is the sorted set of kinds present.
func (c *Circuit) ElementTypes() []string {
	seen := make(map[string]struct{})
	for _, e := range c.elements {
		seen[string(e.Kind())] = struct{}{}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (c *Circuit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "* %s\n\n", c.name)
	for _, uid := range c.order {
		sb.WriteString(c.elements[uid].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (c *Circuit) Write(w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

func fullMatch(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Filter returns the uids whose attribute fully matches pattern. Elements
// without the attribute never match. When uids are given only those are
// considered.
func (c *Circuit) Filter(attr, pattern string, uids ...string) ([]string, error) {
	re, err := fullMatch(pattern)
	if err != nil {
		return nil, err
	}

	var allowed map[string]struct{}
	if len(uids) > 0 {
		allowed = make(map[string]struct{}, len(uids))
		for _, uid := range uids {
			allowed[uid] = struct{}{}
		}
	}

	var out []string
	for _, uid := range c.order {
		if allowed != nil {
			if _, ok := allowed[uid]; !ok {
				continue
			}
		}
		v, ok := element.Attr(c.elements[uid], attr)
		if ok && re.MatchString(v) {
			out = append(out, uid)
		}
	}
	return out, nil
}

// Apply runs fn over each listed element and stores the result under the
// same uid.
func (c *Circuit) Apply(fn Transform, uids []string) error {
	for _, uid := range uids {
		e, ok := c.elements[uid]
		if !ok {
			return fmt.Errorf("apply: unknown uid %s", uid)
		}
		out, err := fn(e)
		if err != nil {
			return fmt.Errorf("apply to %s: %w", uid, err)
		}
		if out == nil {
			return fmt.Errorf("apply to %s: transform returned no element", uid)
		}
		c.elements[uid] = out
	}
	return nil
}

// Touches returns the uids of elements with a port on a net fully matching
// pattern.
func (c *Circuit) Touches(pattern string) ([]string, error) {
	re, err := fullMatch(pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, uid := range c.order {
		for _, net := range c.elements[uid].Ports().Nets() {
			if re.MatchString(net) {
				out = append(out, uid)
				break
			}
		}
	}
	return out, nil
}

// CountNets counts the ports attached to each net.
func (c *Circuit) CountNets() map[string]int {
	counts := make(map[string]int)
	for _, uid := range c.order {
		for _, net := range c.elements[uid].Ports().Nets() {
			counts[net]++
		}
	}
	return counts
}

// Append parses more statements into the circuit. Their hierarchy starts at
// root and their sequence numbers continue after the current maximum.
func (c *Circuit) Append(text string) error {
	start := 0
	for _, e := range c.elements {
		start = max(start, e.N()+1)
	}

	lines := netlist.NormalizeText(text, c.dialect, c.keepComments)
	elems, err := netlist.NewParser(c.dialect).Parse(lines, start)
	if err != nil {
		return err
	}
	for _, e := range elems {
		if _, dup := c.elements[e.UID()]; dup {
			return fmt.Errorf("append: duplicate uid %s", e.UID())
		}
	}
	for _, e := range elems {
		c.insert(e)
	}

	c.logger.Debug("appended statements", "elements", len(elems), "first", start)
	return nil
}

// Reset drops every mutation and append since the first parse.
func (c *Circuit) Reset() {
	c.order = c.order[:0]
	c.elements = make(map[string]element.Element, len(c.baseline))
	for _, e := range c.baseline {
		c.insert(e.Clone())
	}
	c.logger.Debug("reset circuit", "elements", len(c.order))
}

// NetMatrix builds the connectivity matrix of the current elements. The
// caller owns the result and should Destroy it.
func (c *Circuit) NetMatrix() (*matrix.NetMatrix, error) {
	var nets []string
	for _, uid := range c.order {
		nets = append(nets, c.elements[uid].Ports().Nets()...)
	}
	m, err := matrix.NewNetMatrix(nets)
	if err != nil {
		return nil, err
	}
	for _, uid := range c.order {
		if err := m.Connect(c.elements[uid].Ports().Nets()); err != nil {
			m.Destroy()
			return nil, fmt.Errorf("element %s: %w", uid, err)
		}
	}
	return m, nil
}
