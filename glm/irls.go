package glm

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glmcore/linalg"
	"github.com/YuminosukeSato/glmcore/pkg/errors"
	"github.com/YuminosukeSato/glmcore/pkg/log"
)

const algorithmName = "IRLS"

// irls holds the inputs of one fit and the buffers reused by every pass.
type irls struct {
	family  Family
	alpha   float64
	x, y    []float64
	n, p    int
	weights []float64
	offsets []float64

	coef []float64

	nu, mu, dmu, variance []float64
	resid                 []float64 // working residuals
	work                  []float64 // working weights
	wx                    []float64 // rows of x scaled by work, n×p
}

// Fit estimates the coefficients by IRLS from the n×p design matrix x (first
// column all ones) and the response y, running at most maxIter passes.
//
// Hitting maxIter is not an error; check Status or Converged. On error the
// results of any previous fit are left untouched.
func (m *Model) Fit(x, y []float64, maxIter int) (err error) {
	defer errors.Recover(&err, "GLM.Fit")

	logger := m.activeLogger().With(
		log.ModelNameKey, modelName,
		log.FamilyKey, m.family.String(),
		log.OperationKey, log.OperationFit,
	)
	start := time.Now()

	s, err := m.prepare(x, y, maxIter)
	if err != nil {
		logger.Error("GLM fit rejected input", err, log.ErrorCodeKey, errorCode(err))
		return err
	}
	logger.Debug("IRLS started",
		log.SamplesKey, s.n,
		log.FeaturesKey, s.p,
		log.RegularizationKey, s.alpha,
		log.ToleranceKey, m.tol,
		log.MaxIterKey, maxIter,
	)

	history := make([]float64, 0, maxIter)
	prev := math.Inf(1)
	status := MaxIterExceeded
	nIter := 0
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	for iter := 1; iter <= maxIter; iter++ {
		nIter = iter
		s.updateMean()
		grad := s.gradient()
		hess, err := s.hessian()
		if err != nil {
			return err
		}
		s.penalize(grad, hess)

		delta, err := linalg.Solve(hess, grad)
		if err != nil {
			err = errors.NewModelError("GLM.Fit", fmt.Sprintf("degenerate hessian at iteration %d", iter), err)
			logger.Error("IRLS step failed", err, log.IterationKey, iter, log.ErrorCodeKey, errorCode(err))
			return err
		}
		floats.Sub(s.coef, delta)
		if err := errors.CheckNumericalStability("GLM.Fit coefficient update", s.coef, iter); err != nil {
			logger.Error("IRLS diverged", err, log.IterationKey, iter, log.ErrorCodeKey, log.ErrorNumerical)
			return err
		}

		cur := s.family.PenalizedDeviance(s.y, s.mu, s.weights, s.alpha, s.coef)
		if err := errors.CheckScalar("GLM.Fit penalized deviance", cur, iter); err != nil {
			logger.Error("IRLS diverged", err, log.IterationKey, iter, log.ErrorCodeKey, log.ErrorNumerical)
			return err
		}
		history = append(history, cur)
		done, change := hasConverged(cur, prev, m.tol)
		if debug {
			fields := []any{log.IterationKey, iter, log.PenalizedDevianceKey, cur}
			if !math.IsInf(change, 0) {
				fields = append(fields, log.RelChangeKey, change)
			}
			logger.Debug("IRLS iteration", fields...)
		}
		prev = cur
		if done {
			status = Converged
			break
		}
	}

	s.updateMean()
	deviance := s.family.Deviance(s.y, s.mu, s.weights)
	information, err := s.hessian()
	if err != nil {
		return err
	}

	m.coef = s.coef
	m.deviance = deviance
	m.nullDeviance = s.nullDeviance()
	m.information = information
	m.nIter = nIter
	m.status = status
	m.history = history
	m.state.SetFitted(s.p, s.n)

	logger.Info("IRLS finished",
		log.StatusKey, status.String(),
		log.IterationKey, nIter,
		log.DevianceKey, deviance,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	if status == MaxIterExceeded {
		w := errors.NewConvergenceWarning(algorithmName, nIter,
			fmt.Sprintf("penalized deviance did not settle within tolerance %g", m.tol))
		logger.Warn("IRLS did not converge", w)
		errors.Warn(w)
	}
	return nil
}

// FitMatrix is Fit for gonum inputs. x must already contain the intercept column.
func (m *Model) FitMatrix(x mat.Matrix, y mat.Vector, maxIter int) error {
	r, c := x.Dims()
	if y.Len() != r {
		return errors.NewDimensionError("GLM.FitMatrix", r, y.Len(), 0)
	}
	flat := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			flat[i*c+j] = x.At(i, j)
		}
	}
	resp := make([]float64, r)
	for i := range resp {
		resp[i] = y.AtVec(i)
	}
	return m.Fit(flat, resp, maxIter)
}

// prepare validates the inputs and builds the IRLS workspace with the seed
// coefficients.
func (m *Model) prepare(x, y []float64, maxIter int) (*irls, error) {
	if !m.family.valid() {
		return nil, errors.NewValidationError("family", "unknown exponential family", uint8(m.family))
	}
	if math.IsNaN(m.alpha) || math.IsInf(m.alpha, 0) || m.alpha < 0 {
		return nil, errors.NewValidationError("alpha", "must be a finite non-negative number", m.alpha)
	}
	if !(m.tol > 0) || math.IsInf(m.tol, 0) {
		return nil, errors.NewValidationError("tolerance", "must be a finite positive number", m.tol)
	}
	if maxIter < 1 {
		return nil, errors.NewValidationError("maxIter", "must be at least 1", maxIter)
	}
	n := len(y)
	if n == 0 {
		return nil, errors.NewModelError("GLM.Fit", "empty response", errors.ErrEmptyData)
	}
	p, err := linalg.CheckDesign(x, n)
	if err != nil {
		return nil, errors.Wrap(err, "GLM.Fit: design matrix")
	}
	if err := m.family.ValidateResponse(y); err != nil {
		return nil, err
	}

	weights := m.weights
	if weights == nil {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	} else if len(weights) != n {
		return nil, errors.Wrap(errors.NewDimensionError("GLM.Fit", n, len(weights), 0), "weights")
	} else {
		for i, w := range weights {
			if !(w >= 0) || math.IsInf(w, 1) {
				return nil, errors.NewValidationError("weights", fmt.Sprintf("weight %d must be finite and non-negative", i), w)
			}
		}
	}
	offsets := m.offsets
	if offsets == nil {
		offsets = make([]float64, n)
	} else if len(offsets) != n {
		return nil, errors.Wrap(errors.NewDimensionError("GLM.Fit", n, len(offsets), 0), "offsets")
	} else if err := errors.CheckNumericalStability("GLM.Fit offsets", offsets, 0); err != nil {
		return nil, err
	}

	s := &irls{
		family:   m.family,
		alpha:    m.alpha,
		x:        x,
		y:        y,
		n:        n,
		p:        p,
		weights:  weights,
		offsets:  offsets,
		coef:     make([]float64, p),
		nu:       make([]float64, n),
		mu:       make([]float64, n),
		dmu:      make([]float64, n),
		variance: make([]float64, n),
		resid:    make([]float64, n),
		work:     make([]float64, n),
		wx:       make([]float64, n*p),
	}
	s.coef[0] = seedIntercept(m.family, linalg.Mean(y))
	return s, nil
}

// seedIntercept starts the intercept at link(mean(y)) so the first pass
// begins at the intercept-only fit. Boundary means (all zeros for Poisson,
// all ones or zeros for Bernoulli) have no finite link and fall back to the
// raw mean.
func seedIntercept(f Family, mean float64) float64 {
	v := f.link(mean)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return mean
	}
	return v
}

// updateMean evaluates nu = x·coef + offsets and the family quantities at nu.
func (s *irls) updateMean() {
	for i := 0; i < s.n; i++ {
		s.nu[i] = floats.Dot(s.x[i*s.p:(i+1)*s.p], s.coef) + s.offsets[i]
	}
	s.family.invLinkTo(s.mu, s.nu)
	s.family.dInvLinkTo(s.dmu, s.nu, s.mu)
	s.family.varianceTo(s.variance, s.mu)
}

// gradient returns dbeta = -xᵀ r with r the working residuals.
func (s *irls) gradient() []float64 {
	for i := 0; i < s.n; i++ {
		s.resid[i] = s.weights[i] * (s.y[i] - s.mu[i]) * s.dmu[i] / s.variance[i]
	}
	grad := make([]float64, s.p)
	for i := 0; i < s.n; i++ {
		floats.AddScaled(grad, -s.resid[i], s.x[i*s.p:(i+1)*s.p])
	}
	return grad
}

// hessian returns xᵀ diag(w) x with w the working weights.
func (s *irls) hessian() ([]float64, error) {
	for i := 0; i < s.n; i++ {
		s.work[i] = s.weights[i] * s.dmu[i] * s.dmu[i] / s.variance[i]
		floats.ScaleTo(s.wx[i*s.p:(i+1)*s.p], s.work[i], s.x[i*s.p:(i+1)*s.p])
	}
	h, _, _, err := linalg.Matmul(s.x, s.n, s.wx, s.n, true, false)
	if err != nil {
		return nil, errors.Wrap(err, "GLM.Fit: hessian")
	}
	return h, nil
}

// penalize adds the ridge terms. The intercept is excluded in both.
func (s *irls) penalize(grad, hess []float64) {
	if s.alpha == 0 {
		return
	}
	for i := 1; i < s.p; i++ {
		grad[i] += s.alpha * s.coef[i]
		hess[i*s.p+i] += s.alpha
	}
}

// nullDeviance is the deviance of the constant mean equal to the weighted
// mean of y. Offsets are ignored.
func (s *irls) nullDeviance() float64 {
	mean := floats.Dot(s.weights, s.y) / floats.Sum(s.weights)
	mu := make([]float64, s.n)
	for i := range mu {
		mu[i] = mean
	}
	return s.family.Deviance(s.y, mu, s.weights)
}

// hasConverged compares the penalized deviance of this pass with the
// previous one. The first pass (previous = +Inf) never converges.
func hasConverged(current, previous, tol float64) (bool, float64) {
	if math.IsInf(previous, 0) {
		return false, math.Inf(1)
	}
	if previous == 0 {
		if current == 0 {
			return true, 0
		}
		return false, math.Inf(1)
	}
	change := math.Abs(current-previous) / math.Abs(previous)
	return change < tol, change
}

func errorCode(err error) string {
	var (
		dim    *errors.DimensionError
		design *errors.InvalidDesignError
		val    *errors.ValidationError
		num    *errors.NumericalInstabilityError
	)
	switch {
	case errors.As(err, &design):
		return log.ErrorInvalidDesign
	case errors.As(err, &dim):
		return log.ErrorDimensionMismatch
	case errors.Is(err, errors.ErrNotPositiveDefinite):
		return log.ErrorNotPositiveDef
	case errors.As(err, &num):
		return log.ErrorNumerical
	case errors.As(err, &val):
		return log.ErrorInvalidInput
	}
	return log.ErrorInvalidInput
}
