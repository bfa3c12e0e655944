// Package element constructs finite elements on reference simplices. The
// construction pattern is shared across element families: assemble a span
// matrix describing the element's polynomial space inside a larger
// orthonormal set, assemble a dual matrix whose rows are the degree-of-
// freedom functionals, then solve the pairing system for the nodal basis
// coefficients.
package element

import (
	"errors"
	"fmt"

	"github.com/femtools/febasis/cell"
	"github.com/femtools/febasis/la"
	"github.com/femtools/febasis/polyset"
	"gonum.org/v1/gonum/mat"
)

// FiniteElement is a constructed element: immutable once built. The
// coefficient matrix maps each degree of freedom to its basis function's
// coefficients against the embedding orthonormal polynomial set, with the
// columns blocked by value component.
type FiniteElement struct {
	cellType cell.Type
	degree   int
	// embeddedDegree is the degree of the orthonormal set the basis
	// coefficients are expressed against (degree+1 for Raviart-Thomas).
	embeddedDegree int
	valueSize      int
	coeffs         *mat.Dense
}

// CellType returns the reference cell the element is defined on.
func (fe *FiniteElement) CellType() cell.Type { return fe.cellType }

// Degree returns the element's polynomial degree.
func (fe *FiniteElement) Degree() int { return fe.degree }

// ValueSize returns the number of components of the element's values.
func (fe *FiniteElement) ValueSize() int { return fe.valueSize }

// NumDofs returns the number of degrees of freedom.
func (fe *FiniteElement) NumDofs() int {
	n, _ := fe.coeffs.Dims()
	return n
}

// Coefficients returns the solved basis coefficient matrix. Callers must
// not modify it.
func (fe *FiniteElement) Coefficients() *mat.Dense { return fe.coeffs }

// Tabulate evaluates every basis function at each row of points. The
// result has one row per point and ndofs*valueSize columns, blocked by
// value component: column c*ndofs+j holds component c of basis function j.
func (fe *FiniteElement) Tabulate(points *mat.Dense) (*mat.Dense, error) {
	set, err := polyset.ComputePolynomialSet(fe.cellType, fe.embeddedDegree)
	if err != nil {
		return nil, err
	}
	psize := len(set)
	np, _ := points.Dims()
	ndofs := fe.NumDofs()

	tab := mat.NewDense(psize, np, nil)
	for k, p := range set {
		tab.SetRow(k, p.Tabulate(points))
	}

	out := mat.NewDense(np, ndofs*fe.valueSize, nil)
	for p := 0; p < np; p++ {
		for c := 0; c < fe.valueSize; c++ {
			for j := 0; j < ndofs; j++ {
				v := 0.0
				for k := 0; k < psize; k++ {
					v += fe.coeffs.At(j, c*psize+k) * tab.At(k, p)
				}
				out.Set(p, c*ndofs+j, v)
			}
		}
	}
	return out, nil
}

// applyDualMatToBasis solves for the nodal basis: given the span matrix W
// and the dual matrix D (same shape, one row per degree of freedom), it
// forms the pairing matrix A = W D^T and returns X = A^{-1} W, so that
// applying functional i to basis function j gives the Kronecker delta.
// A singular pairing means the dual space does not determine the span
// (wrong functional count or degenerate quadrature) and is fatal.
func applyDualMatToBasis(span, dual *mat.Dense) (*mat.Dense, error) {
	sr, sc := span.Dims()
	dr, dc := dual.Dims()
	if sr != dr || sc != dc {
		panic("element: span and dual matrix shapes differ")
	}

	a := la.Dot(span, mat.DenseCopyOf(dual.T()))
	if la.IsSingular(a) {
		return nil, errors.New("element: dual matrix pairing is singular; dual space is ill-posed")
	}
	coeffs, err := la.Solve(a, span)
	if err != nil {
		return nil, fmt.Errorf("element: dual basis solve: %w", err)
	}
	return coeffs, nil
}
