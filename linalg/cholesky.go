package linalg

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// Cholesky returns the lower-triangular factor L of the symmetric
// positive-definite matrix a, so that L·Lᵀ = a. It uses the
// Cholesky–Banachiewicz ordering, filling L one row at a time.
//
// A pivot a[i,i] - Σ L[i,k]² that is not strictly positive means a is not
// positive definite; Cholesky then returns a *errors.NotPositiveDefiniteError
// instead of letting NaN flow into the factor.
func Cholesky(a []float64) ([]float64, error) {
	n, err := IsSquare(a)
	if err != nil {
		return nil, err
	}
	if !IsSymmetric(a) {
		return nil, errors.NewValidationError("a", "matrix must be symmetric", n)
	}

	l := make([]float64, n*n)
	for i := 0; i < n; i++ {
		ri := i * n
		for j := 0; j <= i; j++ {
			rj := j * n
			s := floats.Dot(l[rj:rj+j], l[ri:ri+j])
			if i == j {
				d := a[ri+i] - s
				if !(d > 0) {
					return nil, errors.NewNotPositiveDefiniteError("Cholesky", i, d)
				}
				l[ri+i] = math.Sqrt(d)
			} else {
				l[ri+j] = (a[ri+j] - s) / l[rj+j]
			}
		}
	}
	return l, nil
}

// Solve solves a·x = b for symmetric positive-definite a by factoring
// a = L·Lᵀ, then solving L·z = b and Lᵀ·x = z.
func Solve(a, b []float64) ([]float64, error) {
	n, err := IsSquare(a)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, errors.NewDimensionError("Solve", n, len(b), 0)
	}
	l, err := Cholesky(a)
	if err != nil {
		return nil, err
	}
	return BackSubstituteTransposed(l, forwardSubstitute(l, b, n))
}

// ForwardSubstitute solves L·z = b for lower-triangular L.
func ForwardSubstitute(l, b []float64) ([]float64, error) {
	n, err := IsSquare(l)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, errors.NewDimensionError("ForwardSubstitute", n, len(b), 0)
	}
	return forwardSubstitute(l, b, n), nil
}

func forwardSubstitute(l, b []float64, n int) []float64 {
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		ri := i * n
		z[i] = (b[i] - floats.Dot(l[ri:ri+i], z[:i])) / l[ri+i]
	}
	return z
}

// BackSubstituteTransposed solves Lᵀ·x = z for lower-triangular L, reading
// Lᵀ column-wise out of L.
func BackSubstituteTransposed(l, z []float64) ([]float64, error) {
	n, err := IsSquare(l)
	if err != nil {
		return nil, err
	}
	if len(z) != n {
		return nil, errors.NewDimensionError("BackSubstituteTransposed", n, len(z), 0)
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		s := z[i]
		for k := i + 1; k < n; k++ {
			s -= l[k*n+i] * x[k]
		}
		x[i] = s / l[i*n+i]
	}
	return x, nil
}
