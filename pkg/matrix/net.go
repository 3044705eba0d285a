package matrix

import (
	"fmt"
	"io"
	"sort"

	"github.com/edp1096/sparse"
)

// NetMatrix is a symmetric net-by-net connectivity matrix. The diagonal
// holds the number of ports attached to a net and an off-diagonal entry the
// number of elements that join the two nets.
type NetMatrix struct {
	Size   int
	nets   []string
	index  map[string]int // 1-based row of a net
	matrix *sparse.Matrix
	linked map[int]map[int]struct{}
	config *sparse.Configuration
}

func NewNetMatrix(nets []string) (*NetMatrix, error) {
	m := &NetMatrix{
		index:  make(map[string]int, len(nets)),
		linked: make(map[int]map[int]struct{}),
	}
	for _, net := range nets {
		if _, ok := m.index[net]; ok {
			continue
		}
		m.nets = append(m.nets, net)
		m.index[net] = len(m.nets)
	}
	m.Size = len(m.nets)
	if m.Size == 0 {
		return m, nil
	}

	m.config = &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(m.Size), m.config)
	if err != nil {
		return nil, fmt.Errorf("creating net matrix: %w", err)
	}
	m.matrix = mat
	return m, nil
}

// Connect records one element attached to nets. Each port adds to its net's
// diagonal and each distinct pair of nets is coupled once.
func (m *NetMatrix) Connect(nets []string) error {
	rows := make([]int, 0, len(nets))
	for _, net := range nets {
		i, ok := m.index[net]
		if !ok {
			return fmt.Errorf("net %q is not in the matrix", net)
		}
		rows = append(rows, i)
	}

	for _, i := range rows {
		m.add(i, i, 1)
	}

	distinct := uniq(rows)
	for a := 0; a < len(distinct); a++ {
		for b := a + 1; b < len(distinct); b++ {
			i, j := distinct[a], distinct[b]
			m.add(i, j, 1)
			m.add(j, i, 1)
		}
	}
	return nil
}

func (m *NetMatrix) add(i, j int, value float64) {
	m.matrix.GetElement(int64(i), int64(j)).Real += value
	if m.linked[i] == nil {
		m.linked[i] = make(map[int]struct{})
	}
	m.linked[i][j] = struct{}{}
}

func (m *NetMatrix) get(i, j int) float64 {
	if _, ok := m.linked[i][j]; !ok {
		return 0
	}
	return m.matrix.GetElement(int64(i), int64(j)).Real
}

// Degree is the number of ports attached to net.
func (m *NetMatrix) Degree(net string) int {
	i, ok := m.index[net]
	if !ok {
		return 0
	}
	return int(m.get(i, i))
}

// Coupling is the number of elements joining a and b.
func (m *NetMatrix) Coupling(a, b string) int {
	i, ok := m.index[a]
	j, ok2 := m.index[b]
	if !ok || !ok2 || i == j {
		return 0
	}
	return int(m.get(i, j))
}

// Neighbors returns the nets coupled to net, in matrix order.
func (m *NetMatrix) Neighbors(net string) []string {
	i, ok := m.index[net]
	if !ok {
		return nil
	}
	var cols []int
	for j := range m.linked[i] {
		if j != i {
			cols = append(cols, j)
		}
	}
	sort.Ints(cols)

	out := make([]string, len(cols))
	for k, j := range cols {
		out[k] = m.nets[j-1]
	}
	return out
}

func (m *NetMatrix) Nets() []string {
	return append([]string(nil), m.nets...)
}

// Degrees maps every net to its port count.
func (m *NetMatrix) Degrees() map[string]int {
	out := make(map[string]int, m.Size)
	for _, net := range m.nets {
		out[net] = m.Degree(net)
	}
	return out
}

// Print writes one row per net: the degree and the coupled nets with counts.
func (m *NetMatrix) Print(w io.Writer) {
	fmt.Fprintf(w, "Net matrix (%dx%d):\n", m.Size, m.Size)
	for _, net := range m.nets {
		fmt.Fprintf(w, "  %s: %d", net, m.Degree(net))
		for _, other := range m.Neighbors(net) {
			fmt.Fprintf(w, " %s*%d", other, m.Coupling(net, other))
		}
		fmt.Fprintln(w)
	}
}

func (m *NetMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}

func uniq(rows []int) []int {
	seen := make(map[int]struct{}, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
