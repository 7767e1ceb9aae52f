package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/glmcore/glm"
	"github.com/YuminosukeSato/glmcore/linalg"
	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

func column(x []float64, rows, j int) []float64 {
	c := len(x) / rows
	out := make([]float64, rows)
	for i := range out {
		out[i] = x[i*c+j]
	}
	return out
}

func TestStandardScaler(t *testing.T) {
	x := []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	}
	s := NewStandardScaler(true, true)
	got, err := s.FitTransform(x, 4)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 25}, s.Mean, 1e-12)
	for j := 0; j < 2; j++ {
		m, sd := stat.PopMeanStdDev(column(got, 4, j), nil)
		assert.InDelta(t, 0, m, 1e-12)
		assert.InDelta(t, 1, sd, 1e-12)
	}

	back, err := s.InverseTransform(got, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, x, back, 1e-12)
	assert.Contains(t, s.String(), "n_features=2")
}

func TestStandardScalerOptions(t *testing.T) {
	x := []float64{1, 5, 3, 5}

	noMean := NewStandardScaler(false, true)
	require.NoError(t, noMean.Fit(x, 2))
	assert.Equal(t, []float64{0, 0}, noMean.Mean)
	// constant column keeps unit scale
	assert.Equal(t, 1.0, noMean.Scale[1])

	noStd := NewStandardScaler(true, false)
	got, err := noStd.FitTransform(x, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1, 0}, got)

	assert.Equal(t, map[string]interface{}{"with_mean": true, "with_std": false, "skip_first": false}, noStd.Params())
}

func TestDesignScalerKeepsIntercept(t *testing.T) {
	x, err := linalg.Design([]float64{1, 2, 3, 4, 5}, 5)
	require.NoError(t, err)

	s := NewDesignScaler()
	got, err := s.FitTransform(x, 5)
	require.NoError(t, err)
	assert.True(t, linalg.IsDesign(got, 5))
	assert.Equal(t, 0.0, s.Mean[0])
	assert.Equal(t, 1.0, s.Scale[0])
	assert.InDelta(t, math.Sqrt2, s.Scale[1], 1e-12)
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScaler(true, true)

	var nf *errors.NotFittedError
	_, err := s.Transform([]float64{1, 2}, 1)
	assert.True(t, errors.As(err, &nf))
	_, err = s.InverseTransform([]float64{1, 2}, 1)
	assert.True(t, errors.As(err, &nf))
	assert.NotContains(t, s.String(), "n_features")

	assert.True(t, errors.Is(s.Fit(nil, 1), errors.ErrEmptyData))
	assert.Error(t, s.Fit([]float64{1, 2, 3}, 2))

	require.NoError(t, s.Fit([]float64{1, 2, 3, 4}, 2))
	var de *errors.DimensionError
	_, err = s.Transform([]float64{1, 2, 3}, 1)
	assert.True(t, errors.As(err, &de))

	_, err = s.UnscaleCoefficients([]float64{1, 2})
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestUnscaleCoefficientsRecoversUnscaledFit(t *testing.T) {
	hours := []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5}
	passed := []float64{0, 0, 0, 1, 0, 1, 0, 1, 1, 1}
	x, err := linalg.Design(hours, len(hours))
	require.NoError(t, err)

	raw := glm.New(glm.Bernoulli, glm.WithTolerance(1e-12))
	require.NoError(t, raw.Fit(x, passed, 50))

	s := NewDesignScaler()
	xs, err := s.FitTransform(x, len(hours))
	require.NoError(t, err)
	scaled := glm.New(glm.Bernoulli, glm.WithTolerance(1e-12))
	require.NoError(t, scaled.Fit(xs, passed, 50))

	got, err := s.UnscaleCoefficients(scaled.Coefficients())
	require.NoError(t, err)
	assert.InDeltaSlice(t, raw.Coefficients(), got, 1e-6)
	assert.InDelta(t, raw.Deviance(), scaled.Deviance(), 1e-8)

	_, err = s.UnscaleCoefficients([]float64{1})
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}
