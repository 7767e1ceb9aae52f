package linalg

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

func sameLength(op string, a, b []float64) error {
	if len(a) != len(b) {
		return errors.NewDimensionError(op, len(a), len(b), 0)
	}
	return nil
}

// Vadd returns a + b elementwise.
func Vadd(a, b []float64) ([]float64, error) {
	if err := sameLength("Vadd", a, b); err != nil {
		return nil, err
	}
	return floats.AddTo(make([]float64, len(a)), a, b), nil
}

// Vsub returns a - b elementwise.
func Vsub(a, b []float64) ([]float64, error) {
	if err := sameLength("Vsub", a, b); err != nil {
		return nil, err
	}
	return floats.SubTo(make([]float64, len(a)), a, b), nil
}

// Vmul returns a * b elementwise.
func Vmul(a, b []float64) ([]float64, error) {
	if err := sameLength("Vmul", a, b); err != nil {
		return nil, err
	}
	return floats.MulTo(make([]float64, len(a)), a, b), nil
}

// Vdiv returns a / b elementwise. Division by zero follows IEEE 754.
func Vdiv(a, b []float64) ([]float64, error) {
	if err := sameLength("Vdiv", a, b); err != nil {
		return nil, err
	}
	return floats.DivTo(make([]float64, len(a)), a, b), nil
}

// Dot returns the inner product of a and b.
func Dot(a, b []float64) (float64, error) {
	if err := sameLength("Dot", a, b); err != nil {
		return 0, err
	}
	return floats.Dot(a, b), nil
}

// Mean returns the arithmetic mean of x, NaN for an empty slice.
func Mean(x []float64) float64 {
	return stat.Mean(x, nil)
}

// Sum returns the sum of x.
func Sum(x []float64) float64 {
	return floats.Sum(x)
}
