package linalg

import (
	"math"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// symmetryTol is the relative tolerance used by IsSymmetric. Cross products
// computed in floating point are symmetric only up to rounding.
const symmetryTol = 1e-8

// IsSquare returns the side length of a flattened square matrix.
// An empty slice is a valid 0×0 matrix.
func IsSquare(a []float64) (int, error) {
	n := int(math.Sqrt(float64(len(a))))
	for n*n > len(a) {
		n--
	}
	for (n+1)*(n+1) <= len(a) {
		n++
	}
	if n*n != len(a) {
		return 0, errors.NewDimensionError("IsSquare", n*n, len(a), 0)
	}
	return n, nil
}

// IsSymmetric reports whether a is square and a[i,j] equals a[j,i] within a
// relative tolerance.
func IsSymmetric(a []float64) bool {
	n, err := IsSquare(a)
	if err != nil {
		return false
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			u, v := a[i*n+j], a[j*n+i]
			scale := math.Max(1, math.Max(math.Abs(u), math.Abs(v)))
			if !(math.Abs(u-v) <= symmetryTol*scale) {
				return false
			}
		}
	}
	return true
}

// IsMatrix returns the number of columns of a flattened matrix with the given
// number of rows.
func IsMatrix(a []float64, rows int) (int, error) {
	if rows <= 0 {
		return 0, errors.NewValidationError("rows", "must be positive", rows)
	}
	if len(a)%rows != 0 {
		return 0, errors.NewDimensionError("IsMatrix", rows*(len(a)/rows), len(a), 0)
	}
	return len(a) / rows, nil
}

// IsDesign reports whether x is a valid matrix with the given number of rows
// whose first column is exactly 1 in every row.
func IsDesign(x []float64, rows int) bool {
	_, err := checkDesign("IsDesign", x, rows)
	return err == nil
}

// checkDesign returns the column count of x, or an error describing why x
// is not a design matrix.
func checkDesign(op string, x []float64, rows int) (int, error) {
	p, err := IsMatrix(x, rows)
	if err != nil {
		return 0, err
	}
	if p == 0 {
		return 0, errors.NewDimensionError(op, 1, 0, 1)
	}
	for i := 0; i < rows; i++ {
		if v := x[i*p]; v != 1 {
			return 0, errors.NewInvalidDesignError(op, i, v)
		}
	}
	return p, nil
}

// CheckDesign is the error-returning form of IsDesign. It returns the number
// of columns of x.
func CheckDesign(x []float64, rows int) (int, error) {
	return checkDesign("CheckDesign", x, rows)
}

// Design prepends a column of ones to the rows×k matrix x, giving a
// rows×(k+1) design matrix.
func Design(x []float64, rows int) ([]float64, error) {
	k, err := IsMatrix(x, rows)
	if err != nil {
		return nil, err
	}
	p := k + 1
	out := make([]float64, rows*p)
	for i := 0; i < rows; i++ {
		out[i*p] = 1
		copy(out[i*p+1:(i+1)*p], x[i*k:(i+1)*k])
	}
	return out, nil
}
