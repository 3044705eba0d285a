package element

import "strings"

// Statement is a dot statement kept as its token array.
type Statement struct {
	Base
	tokens []string
}

func newStatement(kind Kind, line string, meta Meta) Statement {
	return Statement{Base: newBase(kind, line, meta), tokens: strings.Fields(line)}
}

func NewStatement(line string, meta Meta) (Element, error) {
	s := newStatement(KindStatement, line, meta)
	return &s, nil
}

func (s *Statement) Keyword() string { return s.token(0) }

func (s *Statement) Tokens() []string {
	return append([]string(nil), s.tokens...)
}

func (s *Statement) String() string {
	return strings.Join(s.tokens, " ")
}

func (s *Statement) Clone() Element {
	cp := s.clone()
	return &cp
}

func (s *Statement) clone() Statement {
	cp := *s
	cp.tokens = append([]string(nil), s.tokens...)
	return cp
}

func (s *Statement) token(i int) string {
	if i < len(s.tokens) {
		return s.tokens[i]
	}
	return ""
}

func (s *Statement) setToken(i int, v string) {
	for len(s.tokens) <= i {
		s.tokens = append(s.tokens, "")
	}
	s.tokens[i] = v
}

// Include: .include <path>
type Include struct {
	Statement
}

func NewInclude(line string, meta Meta) (Element, error) {
	return &Include{Statement: newStatement(KindInclude, line, meta)}, nil
}

func (i *Include) Filename() string     { return i.token(1) }
func (i *Include) SetFilename(f string) { i.setToken(1, f) }

func (i *Include) Clone() Element {
	return &Include{Statement: i.clone()}
}

// Library is either a library reference (.lib file name) or the opening
// line of a library block (.lib name).
type Library struct {
	Statement
}

func NewLibrary(line string, meta Meta) (Element, error) {
	return &Library{Statement: newStatement(KindLibrary, line, meta)}, nil
}

// Block reports the two-token block form.
func (l *Library) Block() bool { return len(l.tokens) == 2 }

func (l *Library) Filename() string {
	if l.Block() {
		return ""
	}
	return l.token(1)
}

func (l *Library) Libname() string {
	if l.Block() {
		return l.token(1)
	}
	return l.token(2)
}

func (l *Library) SetFilename(f string) {
	if l.Block() {
		l.tokens = []string{l.tokens[0], f, l.tokens[1]}
		return
	}
	l.setToken(1, f)
}

func (l *Library) SetLibname(name string) {
	if l.Block() {
		l.setToken(1, name)
		return
	}
	l.setToken(2, name)
}

func (l *Library) Clone() Element {
	return &Library{Statement: l.clone()}
}

// Model: .model <name> <type> [args]
type Model struct {
	Statement
	args *Args
}

func NewModel(line string, meta Meta) (Element, error) {
	m := &Model{Statement: newStatement(KindModel, line, meta)}
	if len(m.tokens) > 3 {
		m.args = ParseArgs(m.tokens[3:])
		m.tokens = m.tokens[:3]
	} else {
		m.args = ParseArgs(nil)
	}
	return m, nil
}

func (m *Model) Name() string            { return m.token(1) }
func (m *Model) SetName(name string)     { m.setToken(1, name) }
func (m *Model) ModelType() string       { return m.token(2) }
func (m *Model) SetModelType(typ string) { m.setToken(2, typ) }
func (m *Model) Args() *Args             { return m.args }

func (m *Model) String() string {
	return joinArgs(m.tokens, m.args)
}

func (m *Model) Clone() Element {
	return &Model{Statement: m.clone(), args: m.args.Clone()}
}

// Option: .option [args]
type Option struct {
	Statement
	args *Args
}

func NewOption(line string, meta Meta) (Element, error) {
	o := &Option{Statement: newStatement(KindOption, line, meta)}
	o.args = ParseArgs(o.tokens[1:])
	o.tokens = o.tokens[:1]
	return o, nil
}

func (o *Option) Args() *Args { return o.args }

func (o *Option) String() string {
	return joinArgs(o.tokens, o.args)
}

func (o *Option) Clone() Element {
	return &Option{Statement: o.clone(), args: o.args.Clone()}
}

// PackageOption is the package-scoped option form: .option <pkg> <setting>=<value>
type PackageOption struct {
	Statement
}

func NewPackageOption(line string, meta Meta) (Element, error) {
	return &PackageOption{Statement: newStatement(KindOption, line, meta)}, nil
}

func (o *PackageOption) Pkg() string       { return o.token(1) }
func (o *PackageOption) SetPkg(pkg string) { o.setToken(1, pkg) }

func (o *PackageOption) Setting() string {
	setting, _, _ := strings.Cut(o.token(2), "=")
	return setting
}

func (o *PackageOption) Value() string {
	_, value, _ := strings.Cut(o.token(2), "=")
	return value
}

func (o *PackageOption) SetSetting(setting string) { o.setToken(2, setting+"="+o.Value()) }
func (o *PackageOption) SetValue(v string)         { o.setToken(2, o.Setting()+"="+v) }

func (o *PackageOption) Clone() Element {
	return &PackageOption{Statement: o.clone()}
}

// Function: .func <name>(<args>)=<expr>
type Function struct {
	Statement
}

func NewFunction(line string, meta Meta) (Element, error) {
	return &Function{Statement: newStatement(KindFunction, line, meta)}, nil
}

func (f *Function) Name() string {
	head := f.token(1)
	if i := strings.IndexAny(head, "(="); i >= 0 {
		return head[:i]
	}
	return head
}

func (f *Function) SetName(name string) {
	head := f.token(1)
	f.setToken(1, name+head[len(f.Name()):])
}

func (f *Function) Clone() Element {
	return &Function{Statement: f.clone()}
}

// Param holds exactly one assignment: .param <name>=<value>
type Param struct {
	Statement
}

func NewParam(line string, meta Meta) (Element, error) {
	return &Param{Statement: newStatement(KindParam, line, meta)}, nil
}

func (p *Param) Name() string {
	name, _, _ := strings.Cut(p.token(1), "=")
	return name
}

func (p *Param) Value() string {
	_, value, _ := strings.Cut(p.token(1), "=")
	return value
}

func (p *Param) SetName(name string) { p.setToken(1, name+"="+p.Value()) }
func (p *Param) SetValue(v string)   { p.setToken(1, p.Name()+"="+v) }

func (p *Param) Clone() Element {
	return &Param{Statement: p.clone()}
}

// Global: .global <net>...
type Global struct {
	Statement
}

func NewGlobal(line string, meta Meta) (Element, error) {
	return &Global{Statement: newStatement(KindGlobal, line, meta)}, nil
}

func (g *Global) Nets() []string {
	if len(g.tokens) < 2 {
		return nil
	}
	return append([]string(nil), g.tokens[1:]...)
}

func (g *Global) Clone() Element {
	return &Global{Statement: g.clone()}
}

// Temp: .temp <value>
type Temp struct {
	Statement
}

func NewTemp(line string, meta Meta) (Element, error) {
	return &Temp{Statement: newStatement(KindTemp, line, meta)}, nil
}

func (t *Temp) Value() string     { return t.token(1) }
func (t *Temp) SetValue(v string) { t.setToken(1, v) }

func (t *Temp) Clone() Element {
	return &Temp{Statement: t.clone()}
}

const paramsMarker = "params:"

// SubcktDef opens a subcircuit definition:
// .subckt <name> <terminal>... [params:] [key=value]...
type SubcktDef struct {
	Statement
	args *Args
}

func NewSubcktDef(line string, meta Meta) (Element, error) {
	s := &SubcktDef{Statement: newStatement(KindSubcktDef, line, meta)}
	cut := firstAssign(s.tokens, 1)
	s.args = ParseArgs(s.tokens[cut:])
	s.tokens = s.tokens[:cut]
	return s, nil
}

func (s *SubcktDef) Name() string        { return s.token(1) }
func (s *SubcktDef) SetName(name string) { s.setToken(1, name) }
func (s *SubcktDef) Value() string       { return s.Name() }
func (s *SubcktDef) SetValue(v string)   { s.SetName(v) }
func (s *SubcktDef) Args() *Args         { return s.args }

// Terminals are the formal nets of the definition.
func (s *SubcktDef) Terminals() []string {
	var terms []string
	for _, tok := range s.tokens[min(2, len(s.tokens)):] {
		if tok == paramsMarker {
			break
		}
		terms = append(terms, tok)
	}
	return terms
}

func (s *SubcktDef) String() string {
	return joinArgs(s.tokens, s.args)
}

func (s *SubcktDef) Clone() Element {
	return &SubcktDef{Statement: s.clone(), args: s.args.Clone()}
}

// firstAssign returns the index of the first key=value token at or after from,
// or len(tokens).
func firstAssign(tokens []string, from int) int {
	for i := from; i < len(tokens); i++ {
		if strings.Contains(tokens[i], "=") {
			return i
		}
	}
	return len(tokens)
}

func joinArgs(head []string, args *Args) string {
	line := strings.Join(head, " ")
	if args.Len() > 0 {
		line += " " + args.String()
	}
	return line
}
