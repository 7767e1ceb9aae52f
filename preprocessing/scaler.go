// Package preprocessing は計画行列の前処理を提供する
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/glmcore/core/model"
	"github.com/YuminosukeSato/glmcore/linalg"
	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// minScale 未満の標準偏差は 1 として扱う（ゼロ除算を避ける）
const minScale = 1e-8

// StandardScaler は行優先フラット行列の各列を平均0、標準偏差1に変換する。
//
// SkipFirst を立てると先頭列（切片列）はそのまま残る。リッジ罰則は
// 係数の大きさに作用するので、罰則付き GLM の前に列のスケールを揃えるのに使う。
type StandardScaler struct {
	state *model.StateManager

	// Mean は各列の平均値
	Mean []float64

	// Scale は各列の標準偏差（母標準偏差）
	Scale []float64

	// NFeatures は列の数
	NFeatures int

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool

	// SkipFirst は先頭列を変換しないかどうか
	SkipFirst bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(x, rows)
//	xScaled, err := scaler.Transform(x, rows)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager("StandardScaler"),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewDesignScaler は切片列を残して残りの列を標準化するスケーラーを作成する
func NewDesignScaler() *StandardScaler {
	s := NewStandardScaler(true, true)
	s.SkipFirst = true
	return s
}

// Fit は訓練データから列ごとの平均と標準偏差を計算する
func (s *StandardScaler) Fit(x []float64, rows int) error {
	if len(x) == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	c, err := linalg.IsMatrix(x, rows)
	if err != nil {
		return errors.Wrap(err, "StandardScaler.Fit")
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, rows)
	for j := 0; j < c; j++ {
		scale[j] = 1
		if j == 0 && s.SkipFirst {
			continue
		}
		for i := 0; i < rows; i++ {
			col[i] = x[i*c+j]
		}
		m, sd := stat.PopMeanStdDev(col, nil)
		if s.WithMean {
			mean[j] = m
		}
		if s.WithStd && sd >= minScale {
			scale[j] = sd
		}
	}

	s.Mean, s.Scale, s.NFeatures = mean, scale, c
	s.state.SetFitted(c, rows)
	return nil
}

// apply は学習済みの統計情報で各要素を変換する
func (s *StandardScaler) apply(op string, x []float64, rows int, f func(v, mean, scale float64) float64) ([]float64, error) {
	if err := s.state.RequireFitted(op); err != nil {
		return nil, err
	}
	c, err := linalg.IsMatrix(x, rows)
	if err != nil {
		return nil, errors.Wrap(err, "StandardScaler."+op)
	}
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler."+op, s.NFeatures, c, 1)
	}
	out := make([]float64, len(x))
	for i := 0; i < rows; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = f(x[i*c+j], s.Mean[j], s.Scale[j])
		}
	}
	return out, nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(x []float64, rows int) ([]float64, error) {
	return s.apply("Transform", x, rows, func(v, mean, scale float64) float64 {
		return (v - mean) / scale
	})
}

// FitTransform はFitとTransformを同時に実行する
func (s *StandardScaler) FitTransform(x []float64, rows int) ([]float64, error) {
	if err := s.Fit(x, rows); err != nil {
		return nil, err
	}
	return s.Transform(x, rows)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(x []float64, rows int) ([]float64, error) {
	return s.apply("InverseTransform", x, rows, func(v, mean, scale float64) float64 {
		return v*scale + mean
	})
}

// UnscaleCoefficients は標準化後の計画行列で推定した係数を元のスケールの係数に戻す。
// SkipFirst（切片列あり）のスケーラーでのみ使える。
//
//	b[j] = c[j] / scale[j]                       (j >= 1)
//	b[0] = c[0] - Σ c[j] · mean[j] / scale[j]
func (s *StandardScaler) UnscaleCoefficients(coef []float64) ([]float64, error) {
	if err := s.state.RequireFitted("UnscaleCoefficients"); err != nil {
		return nil, err
	}
	if !s.SkipFirst {
		return nil, errors.NewValidationError("SkipFirst", "coefficients can only be unscaled when the intercept column is skipped", false)
	}
	if len(coef) != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.UnscaleCoefficients", s.NFeatures, len(coef), 0)
	}
	out := make([]float64, len(coef))
	out[0] = coef[0]
	for j := 1; j < len(coef); j++ {
		out[j] = coef[j] / s.Scale[j]
		out[0] -= out[j] * s.Mean[j]
	}
	return out, nil
}

// Params はスケーラーのパラメータを返す
func (s *StandardScaler) Params() map[string]interface{} {
	return map[string]interface{}{
		"with_mean":  s.WithMean,
		"with_std":   s.WithStd,
		"skip_first": s.SkipFirst,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, skip_first=%t)", s.WithMean, s.WithStd, s.SkipFirst)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, skip_first=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.SkipFirst, s.NFeatures)
}
