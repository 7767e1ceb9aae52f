package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

var allFamilies = []Family{Bernoulli, Gaussian, Poisson, Gamma}

func TestParseFamily(t *testing.T) {
	tests := []struct {
		name string
		want Family
	}{
		{"bernoulli", Bernoulli},
		{"Binomial", Bernoulli},
		{"logistic", Bernoulli},
		{"gaussian", Gaussian},
		{" normal ", Gaussian},
		{"POISSON", Poisson},
		{"gamma", Gamma},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFamily(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFamily("tweedie")
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	for _, f := range allFamilies {
		got, err := ParseFamily(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	assert.Equal(t, "Family(9)", Family(9).String())
}

func TestLinkInverts(t *testing.T) {
	means := map[Family][]float64{
		Bernoulli: {0.01, 0.2, 0.5, 0.93},
		Gaussian:  {-3, 0, 2.5, 100},
		Poisson:   {0.1, 1, 4, 250},
		Gamma:     {0.5, 1, 7.25},
	}
	for _, f := range allFamilies {
		t.Run(f.String(), func(t *testing.T) {
			mu := means[f]
			got := f.InvLink(f.Link(mu))
			assert.InDeltaSlice(t, mu, got, 1e-12)
		})
	}
}

func TestDInvLinkMatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	nu := []float64{-2, -0.3, 0, 0.8, 1.7}
	for _, f := range allFamilies {
		t.Run(f.String(), func(t *testing.T) {
			mu := f.InvLink(nu)
			got := f.DInvLink(nu, mu)
			for i, v := range nu {
				want := (f.invLink(v+h) - f.invLink(v-h)) / (2 * h)
				assert.InDelta(t, want, got[i], 1e-6, "nu=%v", v)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	mu := []float64{0.25, 2}
	assert.Equal(t, []float64{0.1875, -2}, Bernoulli.Variance(mu))
	assert.Equal(t, []float64{1, 1}, Gaussian.Variance(mu))
	assert.Equal(t, []float64{0.25, 2}, Poisson.Variance(mu))
	assert.Equal(t, []float64{0.0625, 4}, Gamma.Variance(mu))
}

func TestDeviance(t *testing.T) {
	tests := []struct {
		name   string
		family Family
		y, mu  []float64
		want   float64
	}{
		{"bernoulli half", Bernoulli, []float64{1, 0}, []float64{0.5, 0.5}, 4 * math.Ln2},
		{"bernoulli exact", Bernoulli, []float64{1, 0}, []float64{1, 0}, 0},
		{"gaussian", Gaussian, []float64{1, 2, 3}, []float64{1.5, 2, 1}, 4.25},
		{"poisson zero count", Poisson, []float64{0}, []float64{2}, 4},
		{"poisson", Poisson, []float64{2}, []float64{1}, 2 * (2*math.Ln2 - 1)},
		{"gamma exact", Gamma, []float64{3, 0.5}, []float64{3, 0.5}, 0},
		{"gamma", Gamma, []float64{2}, []float64{1}, 2 * (-math.Ln2 + 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.family.Deviance(tt.y, tt.mu, nil), 1e-12)
		})
	}
}

func TestDevianceWeights(t *testing.T) {
	y := []float64{1, 2, 3}
	mu := []float64{1.5, 2, 1}
	// 0.25·2 + 0 + 4·0.5
	assert.InDelta(t, 2.5, Gaussian.Deviance(y, mu, []float64{2, 7, 0.5}), 1e-12)
	assert.Equal(t, Gaussian.Deviance(y, mu, nil), Gaussian.Deviance(y, mu, []float64{1, 1, 1}))
}

func TestPenalizedDevianceSkipsIntercept(t *testing.T) {
	y := []float64{1, 0}
	mu := []float64{0.5, 0.5}
	dev := Bernoulli.Deviance(y, mu, nil)

	got := Bernoulli.PenalizedDeviance(y, mu, nil, 0.5, []float64{10, 2, -1})
	assert.InDelta(t, dev+0.5*(4+1), got, 1e-12)
	assert.Equal(t, dev, Bernoulli.PenalizedDeviance(y, mu, nil, 0, []float64{10, 2}))
	assert.Equal(t, dev, Bernoulli.PenalizedDeviance(y, mu, nil, 3, []float64{10}))
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		family  Family
		y       []float64
		wantErr bool
	}{
		{"bernoulli binary", Bernoulli, []float64{0, 1, 1}, false},
		{"bernoulli proportion", Bernoulli, []float64{0.25}, false},
		{"bernoulli above one", Bernoulli, []float64{0, 2}, true},
		{"bernoulli nan", Bernoulli, []float64{math.NaN()}, true},
		{"gaussian negative", Gaussian, []float64{-4, 3}, false},
		{"gaussian inf", Gaussian, []float64{math.Inf(-1)}, true},
		{"poisson zero", Poisson, []float64{0, 3}, false},
		{"poisson negative", Poisson, []float64{-1}, true},
		{"gamma zero", Gamma, []float64{0}, true},
		{"gamma positive", Gamma, []float64{0.1, 9}, false},
		{"unknown family", Family(42), []float64{1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.family.ValidateResponse(tt.y)
			if tt.wantErr {
				var ve *errors.ValidationError
				assert.True(t, errors.As(err, &ve), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnknownFamilyPanics(t *testing.T) {
	assert.Panics(t, func() { Family(42).InvLink([]float64{0}) })
}
