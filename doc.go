// Package glmcore provides dense linear algebra and generalized linear model
// fitting for Go, designed for backend services that fit small and
// medium-sized models in-process.
//
// glmcore works on row-major flat []float64 matrices. Every routine checks
// shapes up front and reports problems as typed errors, so that callers can
// tell a malformed design matrix from a numerically degenerate fit.
//
// # Features
//
//   - Vector ops, matrix multiply with transpose flags, Cholesky factor and solve
//   - GLM fitting by IRLS for the Bernoulli, Gaussian, Poisson and Gamma families
//   - Ridge penalty that leaves the intercept unpenalized
//   - Structured errors with stack traces and zerolog / slog logging
//
// # Installation
//
//	go get github.com/YuminosukeSato/glmcore
//
// # Quick Start
//
// Fitting the probability of passing an exam from the hours studied:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/glmcore/glm"
//	    "github.com/YuminosukeSato/glmcore/linalg"
//	)
//
//	func main() {
//	    hours := []float64{0.5, 1.75, 2.5, 3.25, 4.5, 5.5}
//	    passed := []float64{0, 0, 1, 0, 1, 1}
//
//	    // Prepend the intercept column
//	    x, err := linalg.Design(hours, len(hours))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model := glm.New(glm.Bernoulli)
//	    if err := model.Fit(x, passed, 25); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(model.Coefficients(), model.Status())
//	}
//
// # Packages
//
//   - linalg: vector ops, Matmul, Cholesky, Solve and shape validators
//   - glm: exponential families and the IRLS fitting engine
//   - metrics: MSE, RMSE, MAE, R², deviance R² and log loss
//   - preprocessing: column standardization of design matrices
//   - diagnostics: convergence plots with gonum/plot
//   - core/model: fitted state, snapshots and model interfaces
//   - core/parallel: row-chunked parallel loops
//   - pkg/errors: typed errors and warnings
//   - pkg/log: structured logging interface with zerolog and slog backends
//
// # License
//
// glmcore is released under the MIT License.
package glmcore
