package element

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meta() Meta {
	return Meta{UID: "testuid", Location: "root", N: 1}
}

func mustNew(t *testing.T, kind Kind, line string) Element {
	t.Helper()
	e, err := New(kind, line, meta())
	require.NoError(t, err)
	return e
}

func TestArgs(t *testing.T) {
	a := ParseArgs([]string{"l=1u", "w=2u", "off", "expr='a=b'"})

	assert.Equal(t, []string{"l", "w", "off", "expr"}, a.Keys())
	assert.True(t, a.IsFlag("off"))
	v, ok := a.Get("expr")
	assert.True(t, ok)
	assert.Equal(t, "'a=b'", v)

	a.Set("w", "3u")
	a.Set("nf", "2")
	assert.Equal(t, "l=1u w=3u off expr='a=b' nf=2", a.String())

	require.True(t, a.Rename("l", "length"))
	assert.False(t, a.Rename("length", "w"))
	assert.False(t, a.Rename("missing", "x"))
	assert.Equal(t, "length=1u w=3u off expr='a=b' nf=2", a.String())

	a.SetFlag("w")
	assert.Equal(t, "length=1u w off expr='a=b' nf=2", a.String())

	require.True(t, a.Delete("off"))
	assert.Equal(t, 4, a.Len())

	var none *Args
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, "", none.String())
	assert.False(t, none.Has("x"))
}

func TestArgsEmptyValueIsNotFlag(t *testing.T) {
	a := ParseArgs([]string{"x="})
	assert.False(t, a.IsFlag("x"))
	assert.Equal(t, "x=", a.String())
}

func TestComponents(t *testing.T) {
	cases := []struct {
		kind     Kind
		line     string
		instance string
		nets     []string
		value    string
		args     string
		alias    string
	}{
		{KindResistor, "r1 a b 1k tc1=0.1", "r1", []string{"a", "b"}, "1k", "tc1=0.1", "resistance"},
		{KindCapacitor, "c1 out 0 10p", "c1", []string{"out", "0"}, "10p", "", "capacitance"},
		{KindInductor, "l1 a b 1u ic=0", "l1", []string{"a", "b"}, "1u", "ic=0", "inductance"},
		{KindDiode, "d1 a k dmod area=2", "d1", []string{"a", "k"}, "dmod", "area=2", "model"},
		{KindJfet, "j1 d g s jmod", "j1", []string{"d", "g", "s"}, "jmod", "", "model"},
		{KindMosfet, "m1 d g s b nmos l=1u w=2u nf=1", "m1", []string{"d", "g", "s", "b"}, "nmos", "l=1u w=2u nf=1", "model"},
		{KindVcvs, "e1 p n cp cn 10", "e1", []string{"p", "n", "cp", "cn"}, "10", "", ""},
		{KindMesfet, "z1 d g s zmod", "z1", []string{"d", "g", "s"}, "zmod", "", "model"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			e := mustNew(t, tc.kind, tc.line)
			assert.Equal(t, tc.kind, e.Kind())
			assert.Equal(t, tc.instance, e.Instance())
			assert.Equal(t, tc.nets, e.Ports().Nets())
			assert.Equal(t, tc.value, e.Value())
			assert.Equal(t, tc.args, e.Args().String())
			assert.Equal(t, tc.line, e.String())
			if tc.alias != "" {
				v, ok := Attr(e, tc.alias)
				assert.True(t, ok)
				assert.Equal(t, tc.value, v)
			}
		})
	}
}

func TestPortsAreNamedPositionally(t *testing.T) {
	e := mustNew(t, KindMosfet, "m1 d g s b nmos")
	assert.Equal(t, map[string]string{"n0": "d", "n1": "g", "n2": "s", "n3": "b"}, e.Ports().Map())

	require.True(t, e.Ports().Set("n2", "vss"))
	assert.Equal(t, "m1 d g vss b nmos", e.String())
	assert.False(t, e.Ports().Set("n9", "x"))
}

func TestArgsFidelity(t *testing.T) {
	e := mustNew(t, KindMosfet, "m1 d g s b nmos l=1u w=2u nf=1")
	e.Args().Set("w", "3u")
	assert.Equal(t, "m1 d g s b nmos l=1u w=3u nf=1", e.String())
}

func TestSources(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		e := mustNew(t, KindVsource, "v1 vdd 0 1.8")
		assert.Equal(t, "1.8", e.Value())
		require.NotNil(t, e.Args())
		assert.Equal(t, 0, e.Args().Len())
		v, _ := Attr(e, "voltage")
		assert.Equal(t, "1.8", v)
	})

	t.Run("compound", func(t *testing.T) {
		e := mustNew(t, KindVsource, "v1 in 0 dc 0 ac 1")
		assert.Nil(t, e.Args())
		assert.Equal(t, "dc 0 ac 1", e.Value())
		assert.Equal(t, "v1 in 0 dc 0 ac 1", e.String())
		assert.Equal(t, []string{"in", "0"}, e.Ports().Nets())
	})

	t.Run("waveform call", func(t *testing.T) {
		e := mustNew(t, KindIsource, "i1 a b pulse(0 1m 1n 1n 1n 5n 10n)")
		assert.Nil(t, e.Args())
		assert.Equal(t, "pulse(0 1m 1n 1n 1n 5n 10n)", e.Value())
		v, _ := Attr(e, "current")
		assert.Equal(t, e.Value(), v)
	})

	t.Run("trailing args", func(t *testing.T) {
		e := mustNew(t, KindVsource, "v1 a b 1 m=2")
		assert.Equal(t, "1", e.Value())
		assert.Equal(t, "m=2", e.Args().String())
	})

	t.Run("too short", func(t *testing.T) {
		_, err := New(KindVsource, "v1 a b", meta())
		var arity *ArityError
		require.ErrorAs(t, err, &arity)
	})
}

func TestControlledSources(t *testing.T) {
	e := mustNew(t, KindCccs, "f1 a b vsense 2 m=1")
	c := e.(*Component)
	assert.Equal(t, "vsense", c.VName())
	assert.Equal(t, "2", e.Value())
	assert.Equal(t, []string{"a", "b"}, e.Ports().Nets())

	require.NoError(t, SetAttr(e, "vname", "vx"))
	assert.Equal(t, "f1 a b vx 2 m=1", e.String())

	_, err := New(KindCcvs, "h1 a b vsense", meta())
	assert.Error(t, err)
}

func TestBjtArity(t *testing.T) {
	e := mustNew(t, KindBjt, "q1 c b e npn area=2")
	assert.Len(t, e.Ports(), 3)
	assert.Equal(t, "npn", e.Value())

	e = mustNew(t, KindBjt, "q1 c b e sub npn area=2")
	assert.Len(t, e.Ports(), 4)
	assert.Equal(t, "npn", e.Value())
	assert.Equal(t, "q1 c b e sub npn area=2", e.String())

	e = mustNew(t, KindBjt, "q1 c b e npn")
	assert.Len(t, e.Ports(), 3)

	for _, line := range []string{"q1 c b npn", "q1 c b e s x npn", "q1 c b m=1"} {
		_, err := New(KindBjt, line, meta())
		var arity *ArityError
		require.True(t, errors.As(err, &arity), line)
		assert.Equal(t, KindBjt, arity.Kind)
	}
}

func TestSubcktInstance(t *testing.T) {
	e := mustNew(t, KindSubckt, "x1 in out vdd inv w=2u")
	assert.Equal(t, []string{"in", "out", "vdd"}, e.Ports().Nets())
	assert.Equal(t, "inv", e.Value())
	name, ok := Attr(e, "name")
	assert.True(t, ok)
	assert.Equal(t, "inv", name)
	assert.Equal(t, "w=2u", e.Args().String())

	e = mustNew(t, KindSubckt, "x2 a b buf params: w=1 l=2")
	assert.Equal(t, "buf", e.Value())
	assert.Equal(t, []string{"a", "b"}, e.Ports().Nets())
	assert.Equal(t, "x2 a b buf params: w=1 l=2", e.String())

	require.NoError(t, SetAttr(e, "name", "buf2"))
	assert.Equal(t, "x2 a b buf2 params: w=1 l=2", e.String())
}

func TestStatements(t *testing.T) {
	t.Run("include", func(t *testing.T) {
		e := mustNew(t, KindInclude, ".include /Models/NMOS.lib")
		assert.Equal(t, "/Models/NMOS.lib", e.(*Include).Filename())
		assert.Equal(t, ".include /Models/NMOS.lib", e.String())
	})

	t.Run("library reference", func(t *testing.T) {
		e := mustNew(t, KindLibrary, ".lib models.lib tt")
		l := e.(*Library)
		assert.Equal(t, "models.lib", l.Filename())
		assert.Equal(t, "tt", l.Libname())
		l.SetLibname("ff")
		assert.Equal(t, ".lib models.lib ff", e.String())
	})

	t.Run("library block", func(t *testing.T) {
		e := mustNew(t, KindLibrary, ".lib tt")
		l := e.(*Library)
		assert.True(t, l.Block())
		assert.Equal(t, "", l.Filename())
		assert.Equal(t, "tt", l.Libname())
	})

	t.Run("model", func(t *testing.T) {
		e := mustNew(t, KindModel, ".model nch nmos level=54 vth0=0.4")
		m := e.(*Model)
		assert.Equal(t, "nch", m.Name())
		assert.Equal(t, "nmos", m.ModelType())
		m.Args().Set("vth0", "0.45")
		assert.Equal(t, ".model nch nmos level=54 vth0=0.45", e.String())
		v, _ := Attr(e, "model_type")
		assert.Equal(t, "nmos", v)
		typ, _ := Attr(e, "type")
		assert.Equal(t, "model", typ)
	})

	t.Run("param", func(t *testing.T) {
		e := mustNew(t, KindParam, ".param vdd=1.8")
		name, _ := Attr(e, "name")
		assert.Equal(t, "vdd", name)
		assert.Equal(t, "1.8", e.Value())
		e.SetValue("3.3")
		assert.Equal(t, ".param vdd=3.3", e.String())
	})

	t.Run("temp", func(t *testing.T) {
		e := mustNew(t, KindTemp, ".temp 20")
		assert.Equal(t, "20", e.Value())
	})

	t.Run("function", func(t *testing.T) {
		e := mustNew(t, KindFunction, ".func myfunc(x)='x*2'")
		assert.Equal(t, "myfunc", e.(*Function).Name())
		require.NoError(t, SetAttr(e, "name", "f2"))
		assert.Equal(t, ".func f2(x)='x*2'", e.String())
		_, ok := Attr(e, "value")
		assert.False(t, ok)
	})

	t.Run("global", func(t *testing.T) {
		e := mustNew(t, KindGlobal, ".global vdd vss")
		assert.Equal(t, []string{"vdd", "vss"}, e.(*Global).Nets())
		assert.Empty(t, e.Ports())
	})

	t.Run("option", func(t *testing.T) {
		e := mustNew(t, KindOption, ".option reltol=1e-4 post")
		assert.True(t, e.Args().IsFlag("post"))
		assert.Equal(t, ".option reltol=1e-4 post", e.String())
	})

	t.Run("package option", func(t *testing.T) {
		e, err := NewPackageOption(".option timeint method=gear", meta())
		require.NoError(t, err)
		o := e.(*PackageOption)
		assert.Equal(t, "timeint", o.Pkg())
		assert.Equal(t, "method", o.Setting())
		assert.Equal(t, "gear", o.Value())
		o.SetValue("trap")
		assert.Equal(t, ".option timeint method=trap", e.String())
		assert.Equal(t, KindOption, e.Kind())
	})

	t.Run("subckt definition", func(t *testing.T) {
		e := mustNew(t, KindSubcktDef, ".subckt inv in out vdd vss params: w=1u")
		d := e.(*SubcktDef)
		assert.Equal(t, "inv", d.Name())
		assert.Equal(t, "inv", e.Value())
		assert.Equal(t, []string{"in", "out", "vdd", "vss"}, d.Terminals())
		assert.Equal(t, "w=1u", e.Args().String())
		assert.Equal(t, ".subckt inv in out vdd vss params: w=1u", e.String())
		assert.Empty(t, e.Ports())
	})

	t.Run("generic", func(t *testing.T) {
		e := mustNew(t, KindStatement, ".tran 1n 10n")
		assert.Equal(t, ".tran", e.(*Statement).Keyword())
		assert.Equal(t, ".tran 1n 10n", e.String())
		assert.Equal(t, "", e.Instance())
	})
}

func TestPassthrough(t *testing.T) {
	e := mustNew(t, KindComment, "* Keep  THIS")
	assert.Equal(t, "* Keep  THIS", e.String())

	e = mustNew(t, KindXspice, "a1 [in] out amod")
	assert.Equal(t, "a1 [in] out amod", e.String())
	assert.Equal(t, KindXspice, e.Kind())
	assert.Nil(t, e.Args())
}

func TestAttr(t *testing.T) {
	e, err := New(KindResistor, "r1 a b 1k", Meta{UID: "u1", Location: "root/top/inner", Lib: "tt", N: 7})
	require.NoError(t, err)

	for name, want := range map[string]string{
		"uid":        "u1",
		"line":       "r1 a b 1k",
		"location":   "root/top/inner",
		"parent":     "inner",
		"lib":        "tt",
		"n":          "7",
		"type":       "resistor",
		"instance":   "r1",
		"value":      "1k",
		"resistance": "1k",
		"n1":         "b",
	} {
		got, ok := Attr(e, name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := Attr(e, "capacitance")
	assert.False(t, ok)

	require.NoError(t, SetAttr(e, "resistance", "2k"))
	assert.Equal(t, "2k", e.Value())
	require.NoError(t, SetAttr(e, "n0", "vdd"))
	assert.Equal(t, "r1 vdd b 2k", e.String())
	assert.Error(t, SetAttr(e, "capacitance", "1p"))
	assert.Error(t, SetAttr(e, "uid", "x"))

	assert.Contains(t, AttrNames(e), "resistance")
	assert.NotContains(t, AttrNames(e), "model")
}

func TestCloneIsIndependent(t *testing.T) {
	orig := mustNew(t, KindMosfet, "m1 d g s b nmos w=1u")
	cp := orig.Clone()

	cp.Args().Set("w", "9u")
	cp.Ports().Set("n0", "x")
	cp.SetValue("pmos")

	assert.Equal(t, "m1 d g s b nmos w=1u", orig.String())
	assert.Equal(t, "m1 x g s b pmos w=9u", cp.String())

	model := mustNew(t, KindModel, ".model n nmos a=1")
	mcp := model.Clone()
	mcp.Args().Set("a", "2")
	assert.Equal(t, ".model n nmos a=1", model.String())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("mosfet")
	require.NoError(t, err)
	assert.Equal(t, KindMosfet, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindUnsupported, k)

	_, err = ParseKind("flux_capacitor")
	assert.Error(t, err)
	assert.Contains(t, Kinds(), KindBjt)
}
