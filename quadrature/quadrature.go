// Package quadrature generates Gauss-Jacobi quadrature rules on the
// reference interval, triangle and tetrahedron. Simplex rules are built as
// collapsed-coordinate products of one-dimensional rules whose Jacobi
// weights absorb the collapse Jacobian, so a requested exactness degree
// holds for the simplex measure.
package quadrature

import (
	"fmt"
	"math"

	"github.com/femtools/febasis/la"
	"gonum.org/v1/gonum/mat"
)

// GaussJacobi returns the n-point Gauss-Jacobi rule on [-1,1] with weight
// (1-x)^alpha. Nodes and weights come from the eigendecomposition of the
// symmetric tridiagonal Jacobi matrix (Golub-Welsch): eigenvalues are the
// nodes and the squared first eigenvector components, scaled by the total
// weight, are the quadrature weights.
func GaussJacobi(alpha float64, n int) (x, w []float64, err error) {
	if n < 1 {
		return nil, nil, fmt.Errorf("quadrature: rule needs at least one point, got %d", n)
	}

	jm := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		h1 := 2*float64(i) + alpha
		d := 0.0
		if i > 0 || alpha > 0 {
			d = -alpha * alpha / (h1 * (h1 + 2))
		}
		jm.Set(i, i, d)
		if i < n-1 {
			fi := float64(i + 1)
			off := 2.0 / (h1 + 2) * math.Sqrt(fi*(fi+alpha)*(fi+alpha)*fi/(h1+1)/(h1+3))
			jm.Set(i+1, i, off)
			jm.Set(i, i+1, off)
		}
	}

	x, v, err := la.Eigh(jm)
	if err != nil {
		return nil, nil, fmt.Errorf("quadrature: jacobi matrix eigensolve: %w", err)
	}

	gamma0 := math.Pow(2, alpha+1) / (alpha + 1)
	w = make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = v.At(0, i) * v.At(0, i) * gamma0
	}
	return x, w, nil
}

// MakeQuadrature returns points (one row per point) and weights of a rule
// on the unit reference simplex of the given dimension, exact for
// polynomials of total degree up to degree. Weights sum to the reference
// volume (1, 1/2 or 1/6).
func MakeQuadrature(dim, degree int) (*mat.Dense, []float64, error) {
	if degree < 0 {
		return nil, nil, fmt.Errorf("quadrature: negative degree %d", degree)
	}
	m := degree/2 + 1

	switch dim {
	case 1:
		ga, wa, err := GaussJacobi(0, m)
		if err != nil {
			return nil, nil, err
		}
		pts := mat.NewDense(m, 1, nil)
		wts := make([]float64, m)
		for i := 0; i < m; i++ {
			pts.Set(i, 0, (1+ga[i])/2)
			wts[i] = wa[i] / 2
		}
		return pts, wts, nil

	case 2:
		ga, wa, err := GaussJacobi(0, m)
		if err != nil {
			return nil, nil, err
		}
		gb, wb, err := GaussJacobi(1, m)
		if err != nil {
			return nil, nil, err
		}
		pts := mat.NewDense(m*m, 2, nil)
		wts := make([]float64, m*m)
		c := 0
		for i := 0; i < m; i++ {
			for j := 0; j < m; j++ {
				pts.Set(c, 0, (1+ga[i])*(1-gb[j])/4)
				pts.Set(c, 1, (1+gb[j])/2)
				wts[c] = wa[i] * wb[j] / 8
				c++
			}
		}
		return pts, wts, nil

	case 3:
		ga, wa, err := GaussJacobi(0, m)
		if err != nil {
			return nil, nil, err
		}
		gb, wb, err := GaussJacobi(1, m)
		if err != nil {
			return nil, nil, err
		}
		gc, wc, err := GaussJacobi(2, m)
		if err != nil {
			return nil, nil, err
		}
		pts := mat.NewDense(m*m*m, 3, nil)
		wts := make([]float64, m*m*m)
		c := 0
		for i := 0; i < m; i++ {
			for j := 0; j < m; j++ {
				for k := 0; k < m; k++ {
					pts.Set(c, 0, (1+ga[i])*(1-gb[j])*(1-gc[k])/8)
					pts.Set(c, 1, (1+gb[j])*(1-gc[k])/4)
					pts.Set(c, 2, (1+gc[k])/2)
					wts[c] = wa[i] * wb[j] * wc[k] / 64
					c++
				}
			}
		}
		return pts, wts, nil
	}
	return nil, nil, fmt.Errorf("quadrature: unsupported dimension %d", dim)
}
