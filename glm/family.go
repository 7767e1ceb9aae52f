package glm

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// Family is the exponential family of a GLM. The set is closed: every method
// switches over all members, and each member is paired with its canonical
// link (Gamma uses the log link).
type Family uint8

// Bernoulli, ... are the supported families.
const (
	// Bernoulli is binary response with the logit link.
	Bernoulli Family = iota
	// Gaussian is normal response with the identity link.
	Gaussian
	// Poisson is count response with the log link.
	Poisson
	// Gamma is positive continuous response with the log link.
	Gamma
)

var familyNames = [...]string{
	Bernoulli: "bernoulli",
	Gaussian:  "gaussian",
	Poisson:   "poisson",
	Gamma:     "gamma",
}

func (f Family) String() string {
	if !f.valid() {
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
	return familyNames[f]
}

func (f Family) valid() bool {
	return int(f) < len(familyNames)
}

// ParseFamily returns the family with the given (case-insensitive) name.
// "binomial" and "logistic" are accepted for Bernoulli, "normal" for Gaussian.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bernoulli", "binomial", "logistic":
		return Bernoulli, nil
	case "gaussian", "normal":
		return Gaussian, nil
	case "poisson":
		return Poisson, nil
	case "gamma":
		return Gamma, nil
	}
	return 0, errors.NewValidationError("family", "unknown exponential family", name)
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ylogr returns y·ln(r) with the convention 0·ln(anything) = 0.
func ylogr(y, r float64) float64 {
	if y == 0 {
		return 0
	}
	return y * math.Log(r)
}

func (f Family) link(mu float64) float64 {
	switch f {
	case Bernoulli:
		return math.Log(mu / (1 - mu))
	case Gaussian:
		return mu
	case Poisson, Gamma:
		return math.Log(mu)
	}
	panic(fmt.Sprintf("glm: unknown family %v", f))
}

func (f Family) invLink(nu float64) float64 {
	switch f {
	case Bernoulli:
		return logistic(nu)
	case Gaussian:
		return nu
	case Poisson, Gamma:
		return math.Exp(nu)
	}
	panic(fmt.Sprintf("glm: unknown family %v", f))
}

func (f Family) dInvLink(nu, mu float64) float64 {
	switch f {
	case Bernoulli:
		return mu * (1 - mu)
	case Gaussian:
		return 1
	case Poisson, Gamma:
		// d/dnu exp(nu) = exp(nu) = mu
		return mu
	}
	panic(fmt.Sprintf("glm: unknown family %v", f))
}

func (f Family) variance(mu float64) float64 {
	switch f {
	case Bernoulli:
		return mu * (1 - mu)
	case Gaussian:
		return 1
	case Poisson:
		return mu
	case Gamma:
		return mu * mu
	}
	panic(fmt.Sprintf("glm: unknown family %v", f))
}

// unitDeviance is the contribution of one observation to the deviance.
func (f Family) unitDeviance(y, mu float64) float64 {
	switch f {
	case Bernoulli:
		return 2 * (ylogr(y, y/mu) + ylogr(1-y, (1-y)/(1-mu)))
	case Gaussian:
		d := y - mu
		return d * d
	case Poisson:
		return 2 * (ylogr(y, y/mu) - (y - mu))
	case Gamma:
		return 2 * (-math.Log(y/mu) + (y-mu)/mu)
	}
	panic(fmt.Sprintf("glm: unknown family %v", f))
}

// Link maps means to the linear-predictor scale.
func (f Family) Link(mu []float64) []float64 {
	out := make([]float64, len(mu))
	for i, m := range mu {
		out[i] = f.link(m)
	}
	return out
}

// InvLink maps linear predictors to means.
func (f Family) InvLink(nu []float64) []float64 {
	return f.invLinkTo(make([]float64, len(nu)), nu)
}

func (f Family) invLinkTo(dst, nu []float64) []float64 {
	for i, v := range nu {
		dst[i] = f.invLink(v)
	}
	return dst
}

// DInvLink returns the derivative of InvLink at nu, given mu = InvLink(nu).
func (f Family) DInvLink(nu, mu []float64) []float64 {
	return f.dInvLinkTo(make([]float64, len(nu)), nu, mu)
}

func (f Family) dInvLinkTo(dst, nu, mu []float64) []float64 {
	for i := range nu {
		dst[i] = f.dInvLink(nu[i], mu[i])
	}
	return dst
}

// Variance returns the variance function evaluated at mu.
func (f Family) Variance(mu []float64) []float64 {
	return f.varianceTo(make([]float64, len(mu)), mu)
}

func (f Family) varianceTo(dst, mu []float64) []float64 {
	for i, m := range mu {
		dst[i] = f.variance(m)
	}
	return dst
}

// Deviance returns twice the log-likelihood deficit of the fitted means mu
// relative to the saturated model. weights may be nil, meaning all ones.
func (f Family) Deviance(y, mu, weights []float64) float64 {
	var dev float64
	for i := range y {
		d := f.unitDeviance(y[i], mu[i])
		if weights != nil {
			d *= weights[i]
		}
		dev += d
	}
	return dev
}

// PenalizedDeviance returns Deviance plus alpha·Σ coef[i]² over i >= 1.
// The intercept coef[0] is never penalized.
func (f Family) PenalizedDeviance(y, mu, weights []float64, alpha float64, coef []float64) float64 {
	dev := f.Deviance(y, mu, weights)
	if alpha == 0 || len(coef) < 2 {
		return dev
	}
	var ss float64
	for _, c := range coef[1:] {
		ss += c * c
	}
	return dev + alpha*ss
}

// ValidateResponse checks that every y lies in the family's support:
// [0, 1] for Bernoulli, [0, ∞) for Poisson, (0, ∞) for Gamma, and finite
// for Gaussian.
func (f Family) ValidateResponse(y []float64) error {
	for i, v := range y {
		var ok bool
		switch f {
		case Bernoulli:
			ok = v >= 0 && v <= 1
		case Gaussian:
			ok = !math.IsNaN(v) && !math.IsInf(v, 0)
		case Poisson:
			ok = v >= 0 && !math.IsInf(v, 1)
		case Gamma:
			ok = v > 0 && !math.IsInf(v, 1)
		default:
			return errors.NewValidationError("family", "unknown exponential family", uint8(f))
		}
		if !ok {
			return errors.NewValidationError("y", fmt.Sprintf("observation %d is outside the %s support", i, f), v)
		}
	}
	return nil
}
