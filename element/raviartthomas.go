package element

import (
	"fmt"

	"github.com/femtools/febasis/cell"
	"github.com/femtools/febasis/polyset"
	"github.com/femtools/febasis/quadrature"
	"gonum.org/v1/gonum/mat"
)

// rtCounts returns the space dimensions the Raviart-Thomas construction is
// built from for polynomial degree d: nv = dim P_d, ns0 = dim P_{d-1} and
// ns = number of modes of exact degree d.
func rtCounts(tdim, d int) (nv, ns0, ns int) {
	if tdim == 2 {
		nv = (d + 1) * (d + 2) / 2
		ns0 = d * (d + 1) / 2
		ns = d + 1
	} else {
		nv = (d + 1) * (d + 2) * (d + 3) / 6
		ns0 = d * (d + 1) * (d + 2) / 6
		ns = (d + 1) * (d + 2) / 2
	}
	return nv, ns0, ns
}

// tabulateSet evaluates every polynomial of a set at the given points,
// returning one row per polynomial.
func tabulateSet(set []polyset.Polynomial, points *mat.Dense) *mat.Dense {
	np, _ := points.Dims()
	tab := mat.NewDense(len(set), np, nil)
	for j, p := range set {
		tab.SetRow(j, p.Tabulate(points))
	}
	return tab
}

// rtSpanMatrix builds the span matrix of the degree-d Raviart-Thomas space
// inside the vector-valued degree-(d+1) orthonormal set: identity blocks
// for the full vector degree-d space, plus one row per exact-degree-d
// scalar mode for the x*(homogeneous degree d) augmentation, computed by
// quadrature.
func rtSpanMatrix(d, tdim, psize int, pkp1AtQ, qpts *mat.Dense, qwts []float64) *mat.Dense {
	nv, ns0, ns := rtCounts(tdim, d)
	nq := len(qwts)

	w := mat.NewDense(nv*tdim+ns, psize*tdim, nil)
	for j := 0; j < tdim; j++ {
		for i := 0; i < nv; i++ {
			w.Set(nv*j+i, psize*j+i, 1)
		}
	}

	for i := 0; i < ns; i++ {
		for k := 0; k < psize; k++ {
			for j := 0; j < tdim; j++ {
				s := 0.0
				for p := 0; p < nq; p++ {
					s += qwts[p] * pkp1AtQ.At(ns0+i, p) * qpts.At(p, j) * pkp1AtQ.At(k, p)
				}
				w.Set(nv*tdim+i, k+psize*j, s)
			}
		}
	}
	return w
}

// rtDualMatrix builds the dual matrix: facet normal moments against a
// degree-d facet polynomial set (one row per facet test polynomial, all
// component blocks packed into that row), followed for d > 0 by interior
// moments against the degree-(d-1) cell set (one row per test polynomial
// and component).
func rtDualMatrix(t cell.Type, d, tdim, psize int, pkp1 []polyset.Polynomial, pkp1AtQ, qpts *mat.Dense, qwts []float64) (*mat.Dense, error) {
	nv, _, ns := rtCounts(tdim, d)
	dual := mat.NewDense(nv*tdim+ns, psize*tdim, nil)
	c := 0

	facetType := cell.Interval
	if tdim == 3 {
		facetType = cell.Triangle
	}
	pq, err := polyset.ComputePolynomialSet(facetType, d)
	if err != nil {
		return nil, err
	}
	qptsF, qwtsF, err := quadrature.MakeQuadrature(tdim-1, 5*(d+1))
	if err != nil {
		return nil, err
	}
	nqf := len(qwtsF)

	for i := 0; i < tdim+1; i++ {
		facet, err := cell.SubEntityGeometry(t, tdim-1, i)
		if err != nil {
			return nil, err
		}
		normal, err := cell.FacetNormal(t, i)
		if err != nil {
			return nil, err
		}

		// Map the reference facet rule onto the facet
		mapped := mat.NewDense(nqf, tdim, nil)
		for p := 0; p < nqf; p++ {
			for j := 0; j < tdim; j++ {
				x := facet.At(0, j)
				for k := 0; k < tdim-1; k++ {
					x += qptsF.At(p, k) * (facet.At(k+1, j) - facet.At(0, j))
				}
				mapped.Set(p, j, x)
			}
		}

		pkp1AtF := tabulateSet(pkp1, mapped)
		for _, tp := range pq {
			phi := tp.Tabulate(qptsF)
			for axis := 0; axis < tdim; axis++ {
				for k := 0; k < psize; k++ {
					s := 0.0
					for p := 0; p < nqf; p++ {
						s += phi[p] * qwtsF[p] * normal[axis] * pkp1AtF.At(k, p)
					}
					dual.Set(c, psize*axis+k, s)
				}
			}
			c++
		}
	}

	if d > 0 {
		pkm1, err := polyset.ComputePolynomialSet(t, d-1)
		if err != nil {
			return nil, err
		}
		nq := len(qwts)
		for _, tp := range pkm1 {
			phi := tp.Tabulate(qpts)
			qcoeffs := make([]float64, psize)
			for k := 0; k < psize; k++ {
				for p := 0; p < nq; p++ {
					qcoeffs[k] += phi[p] * qwts[p] * pkp1AtQ.At(k, p)
				}
			}
			for axis := 0; axis < tdim; axis++ {
				for k := 0; k < psize; k++ {
					dual.Set(c, psize*axis+k, qcoeffs[k])
				}
				c++
			}
		}
	}
	return dual, nil
}

// NewRaviartThomas constructs the degree-k Raviart-Thomas element on a
// triangle or tetrahedron. The element's basis spans the vector-valued
// degree-(k-1) polynomials augmented by x times the homogeneous
// degree-(k-1) scalars, with facet normal moments and (for k > 1) interior
// moments as degrees of freedom.
func NewRaviartThomas(t cell.Type, k int) (*FiniteElement, error) {
	if t != cell.Triangle && t != cell.Tetrahedron {
		return nil, fmt.Errorf("element: unsupported cell type %s for Raviart-Thomas", t)
	}
	if k < 1 {
		return nil, fmt.Errorf("element: Raviart-Thomas degree must be at least 1, got %d", k)
	}

	d := k - 1
	tdim := cell.TopologicalDimension(t)

	pkp1, err := polyset.ComputePolynomialSet(t, d+1)
	if err != nil {
		return nil, err
	}
	psize := len(pkp1)

	qpts, qwts, err := quadrature.MakeQuadrature(tdim, 2*d+2)
	if err != nil {
		return nil, err
	}
	pkp1AtQ := tabulateSet(pkp1, qpts)

	span := rtSpanMatrix(d, tdim, psize, pkp1AtQ, qpts, qwts)
	dual, err := rtDualMatrix(t, d, tdim, psize, pkp1, pkp1AtQ, qpts, qwts)
	if err != nil {
		return nil, err
	}

	coeffs, err := applyDualMatToBasis(span, dual)
	if err != nil {
		return nil, fmt.Errorf("element: Raviart-Thomas degree %d on %s: %w", k, t, err)
	}

	return &FiniteElement{
		cellType:       t,
		degree:         d,
		embeddedDegree: d + 1,
		valueSize:      tdim,
		coeffs:         coeffs,
	}, nil
}
