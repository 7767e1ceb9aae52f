package glm

import (
	"io"

	"github.com/YuminosukeSato/glmcore/core/model"
	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// Snapshot returns the fitted state of m as ModelWeights.
func (m *Model) Snapshot() (*model.ModelWeights, error) {
	if err := m.state.RequireFitted("Snapshot"); err != nil {
		return nil, err
	}
	_, nSamples := m.state.Dimensions()
	return &model.ModelWeights{
		ModelType:         modelName,
		Version:           model.FormatVersion,
		Family:            m.family.String(),
		Coefficients:      m.Coefficients(),
		Deviance:          m.deviance,
		NullDeviance:      m.nullDeviance,
		InformationMatrix: m.InformationMatrix(),
		Iterations:        m.nIter,
		Status:            m.status.String(),
		NSamples:          nSamples,
		Hyperparameters: map[string]interface{}{
			"alpha":     m.alpha,
			"tolerance": m.tol,
		},
		IsFitted: true,
	}, nil
}

// Save writes the snapshot of m to w as JSON.
func (m *Model) Save(w io.Writer) error {
	mw, err := m.Snapshot()
	if err != nil {
		return err
	}
	data, err := mw.ToJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "GLM.Save")
	}
	return nil
}

// Load reads a model written by Save. The returned model predicts like the
// saved one; prior weights, offsets and the deviance history are not stored.
func Load(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "GLM.Load")
	}
	var mw model.ModelWeights
	if err := mw.FromJSON(data); err != nil {
		return nil, err
	}
	return FromWeights(&mw)
}

// FromWeights rebuilds a fitted model from a snapshot.
func FromWeights(mw *model.ModelWeights) (*Model, error) {
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	if mw.ModelType != modelName {
		return nil, errors.NewValidationError("model_type", "not a GLM snapshot", mw.ModelType)
	}
	if !mw.IsFitted {
		return nil, errors.NewValidationError("is_fitted", "snapshot holds no fitted model", false)
	}
	family, err := ParseFamily(mw.Family)
	if err != nil {
		return nil, err
	}
	m := New(family,
		WithPenalty(mw.Float("alpha", 0)),
		WithTolerance(mw.Float("tolerance", DefaultTolerance)),
	)
	m.coef = append([]float64(nil), mw.Coefficients...)
	m.deviance = mw.Deviance
	m.nullDeviance = mw.NullDeviance
	if mw.InformationMatrix != nil {
		m.information = append([]float64(nil), mw.InformationMatrix...)
	}
	m.nIter = mw.Iterations
	m.status = parseStatus(mw.Status)
	m.state.SetFitted(len(m.coef), mw.NSamples)
	return m, nil
}
