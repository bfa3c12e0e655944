// Package polyset provides orthonormal polynomial sets on reference
// simplices. The sets are Dubiner-type collapsed-coordinate Jacobi bases,
// orthonormal with respect to the unit-simplex measure, ordered by total
// degree so that the leading dim P_{q} entries of any set span P_{q}.
package polyset

import (
	"fmt"
	"math"

	"github.com/femtools/febasis/cell"
	"gonum.org/v1/gonum/mat"
)

// Polynomial is one member of an orthonormal set on a reference cell. Its
// position in the set is fixed by the (graded) mode ordering, so the same
// (cell, degree) request always enumerates identically.
type Polynomial struct {
	cellType cell.Type
	i, j, k  int
}

// Size returns the dimension of the degree-n polynomial space on the cell.
func Size(t cell.Type, n int) (int, error) {
	switch t {
	case cell.Interval:
		return n + 1, nil
	case cell.Triangle:
		return (n + 1) * (n + 2) / 2, nil
	case cell.Tetrahedron:
		return (n + 1) * (n + 2) * (n + 3) / 6, nil
	}
	return 0, fmt.Errorf("polyset: no polynomial set for %s", t)
}

// ComputePolynomialSet enumerates the orthonormal basis of the degree-n
// polynomial space on the cell, graded by total degree.
func ComputePolynomialSet(t cell.Type, n int) ([]Polynomial, error) {
	if n < 0 {
		return nil, fmt.Errorf("polyset: negative degree %d", n)
	}
	size, err := Size(t, n)
	if err != nil {
		return nil, err
	}

	set := make([]Polynomial, 0, size)
	switch t {
	case cell.Interval:
		for q := 0; q <= n; q++ {
			set = append(set, Polynomial{cellType: t, i: q})
		}
	case cell.Triangle:
		for q := 0; q <= n; q++ {
			for j := 0; j <= q; j++ {
				set = append(set, Polynomial{cellType: t, i: q - j, j: j})
			}
		}
	case cell.Tetrahedron:
		for q := 0; q <= n; q++ {
			for i := 0; i <= q; i++ {
				for j := 0; j <= q-i; j++ {
					set = append(set, Polynomial{cellType: t, i: i, j: j, k: q - i - j})
				}
			}
		}
	}
	return set, nil
}

// Tabulate evaluates the polynomial at each row of points (unit-simplex
// coordinates, one column per coordinate).
func (p Polynomial) Tabulate(points *mat.Dense) []float64 {
	np, _ := points.Dims()
	vals := make([]float64, np)
	for row := 0; row < np; row++ {
		switch p.cellType {
		case cell.Interval:
			vals[row] = p.evalInterval(points.At(row, 0))
		case cell.Triangle:
			vals[row] = p.evalTriangle(points.At(row, 0), points.At(row, 1))
		case cell.Tetrahedron:
			vals[row] = p.evalTetrahedron(points.At(row, 0), points.At(row, 1), points.At(row, 2))
		default:
			panic("polyset: tabulate on unsupported cell type")
		}
	}
	return vals
}

func (p Polynomial) evalInterval(x float64) float64 {
	return math.Sqrt2 * jacobiP(2*x-1, 0, 0, p.i)
}

// evalTriangle uses the collapsed (a,b) coordinates of the bi-unit
// triangle; the leading factor 2 restores orthonormality on the unit
// simplex after the affine pullback.
func (p Polynomial) evalTriangle(x, y float64) float64 {
	r, s := 2*x-1, 2*y-1
	a := -1.0
	if s != 1 {
		a = 2*(1+r)/(1-s) - 1
	}
	b := s

	v := 2 * math.Sqrt2 * jacobiP(a, 0, 0, p.i) * jacobiP(b, float64(2*p.i+1), 0, p.j)
	if p.i > 0 {
		v *= math.Pow(1-b, float64(p.i))
	}
	return v
}

func (p Polynomial) evalTetrahedron(x, y, z float64) float64 {
	r, s, t := 2*x-1, 2*y-1, 2*z-1
	a := -1.0
	if s+t != 0 {
		a = 2*(1+r)/(-s-t) - 1
	}
	b := -1.0
	if t != 1 {
		b = 2*(1+s)/(1-t) - 1
	}
	c := t

	v := 8 * jacobiP(a, 0, 0, p.i) *
		jacobiP(b, float64(2*p.i+1), 0, p.j) *
		jacobiP(c, float64(2*p.i+2*p.j+2), 0, p.k)
	if p.i > 0 {
		v *= math.Pow(1-b, float64(p.i))
	}
	if p.i+p.j > 0 {
		v *= math.Pow(1-c, float64(p.i+p.j))
	}
	return v
}
