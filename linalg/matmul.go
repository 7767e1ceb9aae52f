package linalg

import (
	"github.com/YuminosukeSato/glmcore/core/parallel"
	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

const (
	// parallelRowThreshold is the number of output rows above which Matmul
	// spreads rows over goroutines.
	parallelRowThreshold = 128
	// parallelWorkThreshold is the m·k·n product below which Matmul always
	// stays on the calling goroutine.
	parallelWorkThreshold = 1 << 16
)

// Matmul returns op(a)·op(b) in row-major order together with its shape,
// where op(a) is aᵀ when transA is set and a otherwise (likewise for b).
// aRows and bRows are the stored row counts of a and b, before any
// transposition. Transposed operands are read through strides and never
// copied.
//
// The number of columns of op(a) must equal the number of rows of op(b);
// otherwise a *errors.DimensionError is returned.
func Matmul(a []float64, aRows int, b []float64, bRows int, transA, transB bool) ([]float64, int, int, error) {
	aCols, err := IsMatrix(a, aRows)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "Matmul: left operand")
	}
	bCols, err := IsMatrix(b, bRows)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "Matmul: right operand")
	}

	// op(a)[i,l] = a[i*ars + l*acs], op(b)[l,j] = b[l*brs + j*bcs]
	m, k, ars, acs := aRows, aCols, aCols, 1
	if transA {
		m, k, ars, acs = aCols, aRows, 1, aCols
	}
	kb, n, brs, bcs := bRows, bCols, bCols, 1
	if transB {
		kb, n, brs, bcs = bCols, bRows, 1, bCols
	}
	if k != kb {
		return nil, 0, 0, errors.NewDimensionError("Matmul", k, kb, 0)
	}

	out := make([]float64, m*n)
	threshold := parallelRowThreshold
	if m*k*n < parallelWorkThreshold {
		threshold = m
	}
	parallel.ParallelizeWithThreshold(m, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			row := out[i*n : (i+1)*n]
			for l := 0; l < k; l++ {
				ail := a[i*ars+l*acs]
				bl := l * brs
				for j := range row {
					row[j] += ail * b[bl+j*bcs]
				}
			}
		}
	})
	return out, m, n, nil
}

// MatVec returns op(a)·v for a matrix a with the given number of rows.
func MatVec(a []float64, rows int, v []float64, trans bool) ([]float64, error) {
	if len(v) == 0 {
		return nil, errors.NewDimensionError("MatVec", 1, 0, 0)
	}
	out, _, _, err := Matmul(a, rows, v, len(v), trans, false)
	if err != nil {
		return nil, err
	}
	return out, nil
}
