package glm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glmcore/core/model"
	"github.com/YuminosukeSato/glmcore/pkg/errors"
	"github.com/YuminosukeSato/glmcore/pkg/log"
)

const (
	modelName = "GLM"

	// DefaultTolerance is the relative penalized-deviance change below which
	// the IRLS loop stops.
	DefaultTolerance = 1e-5
)

// Status is the terminal state of a fit.
type Status int

const (
	// NotFitted means Fit has not completed successfully.
	NotFitted Status = iota
	// Converged means the relative change of the penalized deviance fell
	// below the tolerance.
	Converged
	// MaxIterExceeded means the iteration cap was reached first.
	MaxIterExceeded
)

func (s Status) String() string {
	switch s {
	case NotFitted:
		return "not_fitted"
	case Converged:
		return "converged"
	case MaxIterExceeded:
		return "max_iter_exceeded"
	}
	return "unknown"
}

func parseStatus(s string) Status {
	switch s {
	case "converged":
		return Converged
	case "max_iter_exceeded":
		return MaxIterExceeded
	}
	return NotFitted
}

// Model is a generalized linear model of a single exponential family.
type Model struct {
	state *model.StateManager

	family  Family
	alpha   float64
	tol     float64
	weights []float64
	offsets []float64
	logger  log.Logger

	coef         []float64
	deviance     float64
	nullDeviance float64
	information  []float64
	nIter        int
	status       Status
	history      []float64
}

// Option configures a Model.
type Option func(*Model)

// WithPenalty sets the ridge penalty strength alpha (default 0).
func WithPenalty(alpha float64) Option {
	return func(m *Model) { m.alpha = alpha }
}

// WithTolerance sets the convergence tolerance (default DefaultTolerance).
func WithTolerance(tol float64) Option {
	return func(m *Model) { m.tol = tol }
}

// WithWeights sets per-observation prior weights. nil means all ones.
func WithWeights(w []float64) Option {
	return func(m *Model) { m.weights = cloneOrNil(w) }
}

// WithOffsets sets per-observation linear-predictor offsets. nil means all zeros.
func WithOffsets(o []float64) Option {
	return func(m *Model) { m.offsets = cloneOrNil(o) }
}

// WithLogger sets the logger used by Fit. By default the package-level
// logger from log.GetLogger is used.
func WithLogger(l log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// New creates an unfitted model of the given family.
func New(family Family, opts ...Option) *Model {
	m := &Model{
		state:        model.NewStateManager(modelName),
		family:       family,
		tol:          DefaultTolerance,
		deviance:     math.NaN(),
		nullDeviance: math.NaN(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetPenalty sets alpha and returns m for chaining.
func (m *Model) SetPenalty(alpha float64) *Model {
	m.alpha = alpha
	return m
}

// SetTolerance sets the convergence tolerance and returns m for chaining.
func (m *Model) SetTolerance(tol float64) *Model {
	m.tol = tol
	return m
}

// SetWeights sets the prior weights (nil clears them) and returns m for chaining.
func (m *Model) SetWeights(w []float64) *Model {
	m.weights = cloneOrNil(w)
	return m
}

// SetOffsets sets the offsets (nil clears them) and returns m for chaining.
func (m *Model) SetOffsets(o []float64) *Model {
	m.offsets = cloneOrNil(o)
	return m
}

// Params returns the hyperparameters of m.
func (m *Model) Params() map[string]interface{} {
	return map[string]interface{}{
		"family":      m.family.String(),
		"alpha":       m.alpha,
		"tolerance":   m.tol,
		"has_weights": m.weights != nil,
		"has_offsets": m.offsets != nil,
	}
}

func (m *Model) activeLogger() log.Logger {
	if m.logger != nil {
		return m.logger
	}
	return log.GetLogger()
}

// Family returns the exponential family of m.
func (m *Model) Family() Family { return m.family }

// Penalty returns the ridge penalty strength.
func (m *Model) Penalty() float64 { return m.alpha }

// Tolerance returns the convergence tolerance.
func (m *Model) Tolerance() float64 { return m.tol }

// IsFitted reports whether Fit has completed successfully.
func (m *Model) IsFitted() bool { return m.state.IsFitted() }

// Coefficients returns a copy of the fitted coefficients, intercept first,
// or nil before fitting.
func (m *Model) Coefficients() []float64 { return cloneOrNil(m.coef) }

// Deviance returns the unpenalized deviance at the final coefficients, or NaN
// before fitting.
func (m *Model) Deviance() float64 { return m.deviance }

// NullDeviance returns the deviance of the intercept-only model whose mean is
// the weighted mean of y, or NaN before fitting.
func (m *Model) NullDeviance() float64 { return m.nullDeviance }

// InformationMatrix returns a copy of the p×p row-major matrix Xᵀ diag(w) X
// evaluated at the final coefficients, or nil before fitting.
func (m *Model) InformationMatrix() []float64 { return cloneOrNil(m.information) }

// InformationDense returns the information matrix as a *mat.SymDense, or nil
// before fitting.
func (m *Model) InformationDense() *mat.SymDense {
	if m.information == nil {
		return nil
	}
	return mat.NewSymDense(len(m.coef), cloneOrNil(m.information))
}

// NIter returns the number of IRLS passes performed by the last fit.
func (m *Model) NIter() int { return m.nIter }

// Status returns the terminal state of the last fit.
func (m *Model) Status() Status { return m.status }

// Converged reports whether the last fit converged.
func (m *Model) Converged() bool { return m.status == Converged }

// DevianceHistory returns a copy of the penalized deviance recorded at each
// IRLS pass.
func (m *Model) DevianceHistory() []float64 { return cloneOrNil(m.history) }

// Result is a copy of everything a fit produced.
type Result struct {
	Family            Family
	Coefficients      []float64
	Deviance          float64
	NullDeviance      float64
	InformationMatrix []float64
	NIter             int
	Status            Status
	DevianceHistory   []float64
}

// Result returns the outcome of the last fit, or a NotFittedError.
func (m *Model) Result() (*Result, error) {
	if err := m.state.RequireFitted("Result"); err != nil {
		return nil, err
	}
	return &Result{
		Family:            m.family,
		Coefficients:      m.Coefficients(),
		Deviance:          m.deviance,
		NullDeviance:      m.nullDeviance,
		InformationMatrix: m.InformationMatrix(),
		NIter:             m.nIter,
		Status:            m.status,
		DevianceHistory:   m.DevianceHistory(),
	}, nil
}

// FitFormula fits from a model formula such as "y ~ x1 + x2" over named
// columns. It is not implemented yet.
func (m *Model) FitFormula(formula string, data map[string][]float64, maxIter int) error {
	return errors.Wrapf(errors.ErrNotImplemented, "GLM.FitFormula(%q)", formula)
}

func cloneOrNil(s []float64) []float64 {
	if s == nil {
		return nil
	}
	return append([]float64(nil), s...)
}

var (
	_ model.Estimator   = (*Model)(nil)
	_ model.Snapshotter = (*Model)(nil)
)
