package netlist

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-netlist/pkg/element"
)

func parse(t *testing.T, d *Dialect, lines ...string) []element.Element {
	t.Helper()
	elems, err := Parse(strings.Join(lines, "\n"), d, false)
	require.NoError(t, err)
	return elems
}

func byInstance(elems []element.Element, instance string) element.Element {
	for _, e := range elems {
		if e.Instance() == instance {
			return e
		}
	}
	return nil
}

func TestParseInverter(t *testing.T) {
	elems, err := Parse(readTestdata(t, "inverter.cir"), Ngspice(), false)
	require.NoError(t, err)
	require.Len(t, elems, 11)

	var lines []string
	for _, e := range elems {
		lines = append(lines, e.String())
	}
	assert.Equal(t, []string{
		".param vdd=1.8",
		".param wn=1u",
		`.include "Models/PTM.lib"`,
		".subckt inv in out vdd vss params: w='wn*2'",
		"m1 out in vss vss nmos l=180n w='w'",
		"m2 out in vdd vdd pmos l=180n w='2*w'",
		".ends inv",
		"vdd vdd 0 dc 'vdd'",
		"vin in 0 pulse(0 1.8 1n 1n 1n 5n 10n)",
		"x1 in out vdd 0 inv w=2u",
		"c1 out 0 10f",
	}, lines)

	for i, e := range elems {
		assert.Equal(t, i, e.N())
	}

	m1 := byInstance(elems, "m1")
	require.NotNil(t, m1)
	assert.Equal(t, "root/inv", m1.Location())
	assert.Equal(t, element.KindMosfet, m1.Kind())

	assert.Equal(t, "root/inv", elems[3].Location())
	assert.Equal(t, "root/inv", elems[6].Location())
	assert.Equal(t, "root", elems[7].Location())

	vdd := byInstance(elems, "vdd")
	require.NotNil(t, vdd)
	assert.Nil(t, vdd.Args())
	assert.Equal(t, "dc 'vdd'", vdd.Value())
}

func TestParseNestedHierarchy(t *testing.T) {
	elems := parse(t, Generic(),
		".subckt module a b",
		".subckt submodule c d",
		"r1 c d 1k",
		".ends submodule",
		"r3 a b 1k",
		".ends module",
		"r2 a b 1k",
	)

	assert.Equal(t, "root/module/submodule", byInstance(elems, "r1").Location())
	assert.Equal(t, "root/module", byInstance(elems, "r3").Location())
	assert.Equal(t, "root", byInstance(elems, "r2").Location())
	assert.Equal(t, "root/module", elems[0].Location())
	assert.Equal(t, "root/module/submodule", elems[1].Location())
	assert.Equal(t, "root/module", elems[5].Location())

	parent, _ := element.Attr(byInstance(elems, "r1"), "parent")
	assert.Equal(t, "submodule", parent)
}

func TestParseUnbalanced(t *testing.T) {
	elems := parse(t, Generic(),
		".ends",
		"r1 a b 1",
		".subckt open x",
		"r2 x 0 1",
	)
	assert.Equal(t, "root", byInstance(elems, "r1").Location())
	assert.Equal(t, "root/open", byInstance(elems, "r2").Location())
}

func TestParseControlSuppression(t *testing.T) {
	elems := parse(t, Ngspice(),
		"r1 a b 1",
		".control",
		"!this is not spice",
		".subckt ghost a",
		"set x = 1",
		".endc",
		"r2 b c 1",
		".end",
	)
	require.Len(t, elems, 2)
	assert.Equal(t, "r1", elems[0].Instance())
	assert.Equal(t, "r2", elems[1].Instance())
	assert.Equal(t, "root", elems[1].Location())
}

func TestParseLibraryBlock(t *testing.T) {
	elems := parse(t, Hspice(),
		".lib tt",
		".model nch nmos vth0=0.4",
		".endl",
		".lib models.lib ff",
		"r1 a b 1",
	)
	require.Len(t, elems, 5)
	assert.Equal(t, "tt", elems[0].Lib())
	assert.Equal(t, "tt", elems[1].Lib())
	assert.Equal(t, "tt", elems[2].Lib())
	assert.Equal(t, "", elems[3].Lib())
	assert.Equal(t, "", elems[4].Lib())
	assert.Equal(t, "ff", elems[3].(*element.Library).Libname())
}

func TestParseParamSplit(t *testing.T) {
	elems := parse(t, Ngspice(), "r0 a b 1", ".param a=1 b=2", ".par c=3 d='c*2'")
	require.Len(t, elems, 5)

	names := []string{}
	for _, e := range elems[1:] {
		name, ok := element.Attr(e, "name")
		require.True(t, ok)
		names = append(names, name)
		assert.Equal(t, element.KindParam, e.Kind())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	assert.Equal(t, ".par d='c*2'", elems[4].String())
	assert.Equal(t, []int{1, 2}, []int{elems[1].N(), elems[2].N()})
	assert.NotEqual(t, elems[1].UID(), elems[2].UID())
}

func TestSplitParam(t *testing.T) {
	assert.Equal(t, []string{".param a=1"}, SplitParam(".param a=1"))
	assert.Equal(t, []string{".param a=1", ".param b=2"}, SplitParam(".param a=1 b=2"))
	assert.Equal(t, []string{".param"}, SplitParam(".param"))
}

func TestParseUIDsUnique(t *testing.T) {
	elems := parse(t, Generic(), "r1 a b 1", "r1 a b 1", ".ends", ".ends", "* not kept")
	seen := map[string]bool{}
	for _, e := range elems {
		assert.False(t, seen[e.UID()], "duplicate uid %s", e.UID())
		seen[e.UID()] = true
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, UID(0, "r1 a b 1"), elems[0].UID())
}

func TestParseFatal(t *testing.T) {
	elems, err := Parse("r1 a b 1\n!bad\nr2 a b 1", Generic(), false)
	assert.Nil(t, elems)
	var ce *ClassificationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.N)
	assert.Equal(t, "!bad", ce.Line)

	elems, err = Parse("q1 c b npn", Generic(), false)
	assert.Nil(t, elems)
	var ae *element.ArityError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, element.KindBjt, ae.Kind)
}

func TestParseStartIndex(t *testing.T) {
	p := NewParser(Generic())
	elems, err := p.Parse([]string{"r1 a b 1", "r2 b c 1"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, elems[0].N())
	assert.Equal(t, 11, elems[1].N())
	assert.Equal(t, UID(11, "r2 b c 1"), elems[1].UID())
}

func TestParseKeepComments(t *testing.T) {
	elems, err := Parse("* Title Line\nR1 a b 1", Generic(), true)
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, element.KindComment, elems[0].Kind())
	assert.Equal(t, "* Title Line", elems[0].String())
}

func TestParseXyceOption(t *testing.T) {
	elems := parse(t, Xyce(), ".option timeint method=gear")
	o, ok := elems[0].(*element.PackageOption)
	require.True(t, ok)
	assert.Equal(t, "timeint", o.Pkg())

	elems = parse(t, Ngspice(), ".option reltol=1e-4")
	assert.IsType(t, &element.Option{}, elems[0])
}
