// Package metrics は GLM の当てはまりを評価する指標を提供する
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// checkPair は yTrue と yPred が空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred []float64) error {
	n := len(yTrue)
	if n == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if len(yPred) != n {
		return errors.NewDimensionError(op, n, len(yPred), 0)
	}
	return nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i, y := range yTrue {
		diff := y - yPred[i]
		sum += diff * diff
	}
	return sum / float64(len(yTrue)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i, y := range yTrue {
		sum += math.Abs(y - yPred[i])
	}
	return sum / float64(len(yTrue)), nil
}

// R2Score は決定係数（R²）を計算する。Gaussian 族では DevianceR2 と一致する。
func R2Score(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	yMean := stat.Mean(yTrue, nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i, y := range yTrue {
		tss += (y - yMean) * (y - yMean)
		rss += (y - yPred[i]) * (y - yPred[i])
	}

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "yTrue has no variance", 0))
		return 0, nil
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// DevianceR2 は説明されたデビアンスの割合 1 - deviance/nullDeviance を返す。
// nullDeviance が 0 のときは定義できないので UndefinedMetricWarning を出して 0 を返す。
func DevianceR2(deviance, nullDeviance float64) (float64, error) {
	if math.IsNaN(deviance) || math.IsNaN(nullDeviance) || deviance < 0 || nullDeviance < 0 {
		return 0, errors.NewValueError("DevianceR2", "deviances must be non-negative numbers")
	}
	if nullDeviance == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("DevianceR2", "null deviance is zero", 0))
		return 0, nil
	}
	return 1 - deviance/nullDeviance, nil
}

// logLossEps は確率を (eps, 1-eps) にクリップする幅
const logLossEps = 1e-15

// LogLoss は二値応答に対する平均負対数尤度を計算する。
// Bernoulli 族の deviance / (2n) と一致する（クリップ範囲内のとき）。
func LogLoss(yTrue, prob []float64) (float64, error) {
	if err := checkPair("LogLoss", yTrue, prob); err != nil {
		return 0, err
	}

	var sum float64
	for i, y := range yTrue {
		if y < 0 || y > 1 {
			return 0, errors.NewValidationError("yTrue", "must lie in [0, 1]", y)
		}
		p := math.Min(math.Max(prob[i], logLossEps), 1-logLossEps)
		sum -= y*math.Log(p) + (1-y)*math.Log(1-p)
	}
	return sum / float64(len(yTrue)), nil
}
