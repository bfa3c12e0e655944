package polyset

import "math"

// jacobiP evaluates the degree-n Jacobi polynomial of type (alpha, beta)
// at x, normalized to unit L2 norm on [-1,1] against the Jacobi weight.
func jacobiP(x, alpha, beta float64, n int) float64 {
	gamma0 := math.Pow(2, alpha+beta+1) / (alpha + beta + 1) *
		math.Gamma(alpha+1) * math.Gamma(beta+1) / math.Gamma(alpha+beta+1)
	pm1 := 1.0 / math.Sqrt(gamma0)
	if n == 0 {
		return pm1
	}

	gamma1 := (alpha + 1) * (beta + 1) / (alpha + beta + 3) * gamma0
	p := ((alpha+beta+2)*x + (alpha - beta)) / 2 / math.Sqrt(gamma1)
	if n == 1 {
		return p
	}

	aold := 2.0 / (2.0 + alpha + beta) * math.Sqrt((alpha+1)*(beta+1)/(alpha+beta+3))
	for i := 1; i < n; i++ {
		h1 := 2*float64(i) + alpha + beta
		fi := float64(i + 1)
		anew := 2.0 / (h1 + 2) * math.Sqrt(fi*(fi+alpha+beta)*(fi+alpha)*(fi+beta)/(h1+1)/(h1+3))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2)
		pm1, p = p, (-aold*pm1+(x-bnew)*p)/anew
		aold = anew
	}
	return p
}
