package element

import (
	"fmt"
	"testing"

	"github.com/femtools/febasis/cell"
	"github.com/femtools/febasis/polyset"
	"github.com/femtools/febasis/quadrature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRaviartThomasUnsupportedCell(t *testing.T) {
	for _, ct := range []cell.Type{cell.Interval, cell.Quadrilateral, cell.Hexahedron} {
		_, err := NewRaviartThomas(ct, 1)
		require.Error(t, err, ct.String())
		assert.Contains(t, err.Error(), "unsupported cell type")
	}

	_, err := NewRaviartThomas(cell.Triangle, 0)
	assert.Error(t, err)
}

// Closed-form DOF counts: tdim*dim(P_d) + (number of exact-degree-d modes).
func TestRaviartThomasDofCounts(t *testing.T) {
	for _, tc := range []struct {
		cell cell.Type
		k    int
		want int
	}{
		{cell.Triangle, 1, 3},  // one DOF per edge
		{cell.Triangle, 2, 8},
		{cell.Triangle, 3, 15},
		{cell.Tetrahedron, 1, 4}, // one DOF per face
		{cell.Tetrahedron, 2, 15},
		{cell.Tetrahedron, 3, 36},
	} {
		fe, err := NewRaviartThomas(tc.cell, tc.k)
		require.NoError(t, err, "%s k=%d", tc.cell, tc.k)
		assert.Equal(t, tc.want, fe.NumDofs(), "%s k=%d", tc.cell, tc.k)
		assert.Equal(t, cell.TopologicalDimension(tc.cell), fe.ValueSize())
		assert.Equal(t, tc.k-1, fe.Degree())
	}
}

// TestRaviartThomasNodalProperty rebuilds the defining functionals and
// applies them to the solved basis: functional i on basis j must give the
// Kronecker delta.
func TestRaviartThomasNodalProperty(t *testing.T) {
	for _, ct := range []cell.Type{cell.Triangle, cell.Tetrahedron} {
		for k := 1; k <= 3; k++ {
			t.Run(fmt.Sprintf("%s_k%d", ct, k), func(t *testing.T) {
				fe, err := NewRaviartThomas(ct, k)
				require.NoError(t, err)

				d := k - 1
				tdim := cell.TopologicalDimension(ct)
				pkp1, err := polyset.ComputePolynomialSet(ct, d+1)
				require.NoError(t, err)
				psize := len(pkp1)
				qpts, qwts, err := quadrature.MakeQuadrature(tdim, 2*d+2)
				require.NoError(t, err)
				pkp1AtQ := tabulateSet(pkp1, qpts)

				dual, err := rtDualMatrix(ct, d, tdim, psize, pkp1, pkp1AtQ, qpts, qwts)
				require.NoError(t, err)

				var pairing mat.Dense
				pairing.Mul(dual, fe.Coefficients().T())
				n := fe.NumDofs()
				for i := 0; i < n; i++ {
					for j := 0; j < n; j++ {
						want := 0.0
						if i == j {
							want = 1.0
						}
						assert.InDelta(t, want, pairing.At(i, j), 1e-9, "functional %d basis %d", i, j)
					}
				}
			})
		}
	}
}

// The lowest-order element has one basis function per facet whose normal
// moment over its own facet is one; tabulation at the facet midpoints
// must show a unit normal flux there for the matching function.
func TestRaviartThomasLowestOrderTriangle(t *testing.T) {
	fe, err := NewRaviartThomas(cell.Triangle, 1)
	require.NoError(t, err)

	// Edge midpoints of the reference triangle, in facet order
	mids := mat.NewDense(3, 2, []float64{
		0.5, 0.5,
		0.0, 0.5,
		0.5, 0.0,
	})
	tab, err := fe.Tabulate(mids)
	require.NoError(t, err)

	np, nc := tab.Dims()
	require.Equal(t, 3, np)
	require.Equal(t, 6, nc) // 3 dofs, 2 components

	for i := 0; i < 3; i++ {
		n, err := cell.FacetNormal(cell.Triangle, i)
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			// Normal flux of basis j at midpoint of facet i, against the
			// measure-scaled normal. The degree-0 normal trace is constant
			// along the edge, so the midpoint value times the edge measure
			// is the whole moment.
			flux := n[0]*tab.At(i, j) + n[1]*tab.At(i, 3+j)
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, flux, 1e-10, "facet %d basis %d", i, j)
		}
	}
}

func TestTabulateShape(t *testing.T) {
	fe, err := NewRaviartThomas(cell.Tetrahedron, 2)
	require.NoError(t, err)

	pts := mat.NewDense(4, 3, []float64{
		0.1, 0.1, 0.1,
		0.25, 0.25, 0.25,
		0.5, 0.2, 0.1,
		0.0, 0.0, 0.0,
	})
	tab, err := fe.Tabulate(pts)
	require.NoError(t, err)
	r, c := tab.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, fe.NumDofs()*3, c)
}
