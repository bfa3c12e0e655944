// Package la wraps the vendor dense linear algebra routines used by the
// element constructors: symmetric eigendecomposition, pivoted linear solve,
// a singularity probe and matrix products.
//
// Every entry point copies its operands before handing them to the
// underlying routines, so callers' matrices are never overwritten. Shape
// mismatches between operands are programming errors and panic; numerical
// failures (non-convergence, singular systems) are returned as errors.
package la

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// gemmThreshold is the m*n*k product below which Dot uses a direct
// triple-loop accumulation instead of calling into BLAS. For the tiny
// matrices that dominate element construction the call overhead exceeds
// the work.
const gemmThreshold = 4096

// Eigh computes the eigendecomposition of the symmetric matrix a. Only the
// lower triangle of a is read; the upper triangle is assumed to mirror it.
// It returns the eigenvalues in ascending order and a matrix whose columns
// are the corresponding orthonormal eigenvectors.
func Eigh(a *mat.Dense) ([]float64, *mat.Dense, error) {
	r, c := a.Dims()
	if r != c {
		panic("la: Eigh called with non-square matrix")
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j <= i; j++ {
			s.SetSym(j, i, a.At(i, j))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(s, true); !ok {
		return nil, nil, errors.New("la: syev failed to converge")
	}
	w := eig.Values(nil)
	v := mat.NewDense(r, r, nil)
	eig.VectorsTo(v)
	return w, v, nil
}

// Solve solves a*x = b for x using an LU factorization with partial
// pivoting. a must be square and b must have the same number of rows;
// right-hand sides are the columns of b. The returned x has the shape of b.
// Solve fails with an error if a is exactly singular.
func Solve(a, b *mat.Dense) (*mat.Dense, error) {
	n, c := a.Dims()
	if n != c {
		panic("la: Solve called with non-square matrix")
	}
	br, _ := b.Dims()
	if br != n {
		panic("la: Solve dimension mismatch between a and b")
	}

	lu := mat.DenseCopyOf(a)
	x := mat.DenseCopyOf(b)
	ipiv := make([]int, n)
	if ok := lapack64.Getrf(lu.RawMatrix(), ipiv); !ok {
		return nil, fmt.Errorf("la: getrf: zero pivot at index %d", zeroPivot(lu))
	}
	lapack64.Getrs(blas.NoTrans, lu.RawMatrix(), x.RawMatrix(), ipiv)
	return x, nil
}

// IsSingular reports whether the square matrix a is numerically singular.
// It is a heuristic: a solve against an all-ones right-hand side is
// attempted and a pivot failure in the factorization is taken as
// singularity. It is not a substitute for a rank or condition-number
// computation.
func IsSingular(a *mat.Dense) bool {
	n, c := a.Dims()
	if n != c {
		panic("la: IsSingular called with non-square matrix")
	}

	lu := mat.DenseCopyOf(a)
	ipiv := make([]int, n)
	if ok := lapack64.Getrf(lu.RawMatrix(), ipiv); !ok {
		return true
	}
	ones := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		ones.Set(i, 0, 1)
	}
	lapack64.Getrs(blas.NoTrans, lu.RawMatrix(), ones.RawMatrix(), ipiv)
	return false
}

// DotInto accumulates the product a*b into c, so c must be zeroed first
// when accumulation is not wanted. a is m×k, b is k×n and c is m×n.
func DotInto(a, b, c *mat.Dense) {
	m, ka := a.Dims()
	kb, n := b.Dims()
	cr, cc := c.Dims()
	if ka != kb || cr != m || cc != n {
		panic("la: DotInto dimension mismatch")
	}

	if m*n*ka < gemmThreshold {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				s := c.At(i, j)
				for k := 0; k < ka; k++ {
					s += a.At(i, k) * b.At(k, j)
				}
				c.Set(i, j, s)
			}
		}
		return
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, a.RawMatrix(), b.RawMatrix(), 1, c.RawMatrix())
}

// Dot returns the product a*b in a freshly allocated matrix.
func Dot(a, b *mat.Dense) *mat.Dense {
	m, _ := a.Dims()
	_, n := b.Dims()
	c := mat.NewDense(m, n, nil)
	DotInto(a, b, c)
	return c
}

// zeroPivot returns the index of the first zero diagonal entry of an LU
// factor, for diagnostics after a failed factorization.
func zeroPivot(lu *mat.Dense) int {
	n, _ := lu.Dims()
	for i := 0; i < n; i++ {
		if lu.At(i, i) == 0 {
			return i
		}
	}
	return n - 1
}
