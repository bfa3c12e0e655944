package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestApplyDualMatToBasisIdentityPairing(t *testing.T) {
	// Span: two vectors inside a 3-dimensional coefficient space; dual
	// rows deliberately not orthonormal against them.
	span := mat.NewDense(2, 3, []float64{
		1, 0, 1,
		0, 2, 0,
	})
	dual := mat.NewDense(2, 3, []float64{
		1, 1, 0,
		1, 0, 1,
	})

	coeffs, err := applyDualMatToBasis(span, dual)
	require.NoError(t, err)

	var pairing mat.Dense
	pairing.Mul(dual, coeffs.T())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, pairing.At(i, j), 1e-12)
		}
	}

	// The result must stay inside the span: each coefficient row is a
	// combination of span rows, which here forces column 2 to equal
	// column 0 (from span row 0).
	for i := 0; i < 2; i++ {
		assert.InDelta(t, coeffs.At(i, 0), coeffs.At(i, 2), 1e-12)
	}
}

func TestApplyDualMatToBasisIllPosed(t *testing.T) {
	span := mat.NewDense(2, 3, []float64{
		1, 0, 0,
		0, 1, 0,
	})
	// A dual space that cannot see the second span vector
	dual := mat.NewDense(2, 3, []float64{
		1, 0, 0,
		2, 0, 0,
	})

	_, err := applyDualMatToBasis(span, dual)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ill-posed")
}

func TestApplyDualMatToBasisShapeMismatchPanics(t *testing.T) {
	span := mat.NewDense(2, 3, nil)
	dual := mat.NewDense(3, 3, nil)
	assert.Panics(t, func() { applyDualMatToBasis(span, dual) })
}
