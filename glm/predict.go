package glm

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/glmcore/linalg"
	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// LinearPredictor returns x·coef + offsets for a row-major design matrix x
// with the same number of columns as the fitted model. offsets may be nil.
func (m *Model) LinearPredictor(x, offsets []float64) ([]float64, error) {
	if err := m.state.RequireFitted("LinearPredictor"); err != nil {
		return nil, err
	}
	p := len(m.coef)
	if len(x)%p != 0 {
		return nil, errors.Wrapf(errors.NewDimensionError("GLM.LinearPredictor", p, len(x), 1),
			"len(x)=%d is not a multiple of the %d fitted columns", len(x), p)
	}
	rows := len(x) / p
	if rows == 0 {
		return []float64{}, nil
	}
	nu, err := linalg.MatVec(x, rows, m.coef, false)
	if err != nil {
		return nil, err
	}
	if offsets != nil {
		if len(offsets) != rows {
			return nil, errors.NewDimensionError("GLM.LinearPredictor", rows, len(offsets), 0)
		}
		floats.Add(nu, offsets)
	}
	return nu, nil
}

// Predict returns the fitted means InvLink(x·coef + offsets).
func (m *Model) Predict(x, offsets []float64) ([]float64, error) {
	nu, err := m.LinearPredictor(x, offsets)
	if err != nil {
		return nil, err
	}
	return m.family.invLinkTo(nu, nu), nil
}
