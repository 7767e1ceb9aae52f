// Package linalg provides the dense, row-major kernels used by the GLM
// engine: elementwise vector operations, shape validators, a matrix product
// with all four transpose variants, and a Cholesky factorization with the
// triangular solves built on it.
//
// Matrices are plain []float64 in row-major order. The number of rows is
// passed alongside the slice and the number of columns is derived from the
// length, so a malformed shape is always reported as a *errors.DimensionError
// rather than silently truncated.
//
//	x, _ := linalg.Design([]float64{0.5, 1.0, 1.5}, 3) // 3×2, first column 1
//	xtx, _, _, _ := linalg.Matmul(x, 3, x, 3, true, false)
//	beta, err := linalg.Solve(xtx, []float64{1, 2})
package linalg
