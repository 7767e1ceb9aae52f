package model

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// FormatVersion はスナップショット形式のバージョン
const FormatVersion = "1"

// ModelWeights は学習済みモデルの状態を表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（GLM 等）
	ModelType string `json:"model_type"`

	// Version はスナップショット形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Family は指数型分布族の名前
	Family string `json:"family,omitempty"`

	// Coefficients は係数。Coefficients[0] が切片
	Coefficients []float64 `json:"coefficients"`

	// Deviance は最終係数における（罰則なし）デビアンス
	Deviance float64 `json:"deviance"`

	// NullDeviance は切片のみモデルのデビアンス
	NullDeviance float64 `json:"null_deviance"`

	// InformationMatrix は p×p の情報行列（行優先）
	InformationMatrix []float64 `json:"information_matrix,omitempty"`

	// Iterations は実行した IRLS 反復回数
	Iterations int `json:"iterations"`

	// Status は終了状態（converged / max_iter_exceeded）
	Status string `json:"status,omitempty"`

	// NSamples は学習に使ったサンプル数
	NSamples int `json:"n_samples,omitempty"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "model weights: encode")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "model weights: decode")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version != FormatVersion {
		return errors.NewValidationError("version", fmt.Sprintf("unsupported snapshot version (want %s)", FormatVersion), mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	p := len(mw.Coefficients)
	if mw.InformationMatrix != nil && len(mw.InformationMatrix) != p*p {
		return errors.NewDimensionError("ModelWeights.Validate", p*p, len(mw.InformationMatrix), 0)
	}
	for i, c := range mw.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.NewValidationError("coefficients", fmt.Sprintf("coefficient %d is not finite", i), c)
		}
	}
	return nil
}

// Float はハイパーパラメータを float64 として取り出す。JSON 経由では数値は float64 になる。
func (mw *ModelWeights) Float(key string, fallback float64) float64 {
	switch v := mw.Hyperparameters[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := *mw
	clone.Coefficients = append([]float64(nil), mw.Coefficients...)
	if mw.InformationMatrix != nil {
		clone.InformationMatrix = append([]float64(nil), mw.InformationMatrix...)
	}
	clone.Hyperparameters = make(map[string]interface{}, len(mw.Hyperparameters))
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	return &clone
}
