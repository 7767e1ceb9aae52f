package model

// Fitter は学習可能なモデルのインターフェース
//
// x は len(y) 行の行優先フラット行列で、先頭列は切片列 (すべて 1)。
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(x, y []float64, maxIter int) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う。offsets は nil でもよい。
	Predict(x, offsets []float64) ([]float64, error)
}

// ParameterGetter はハイパーパラメータを公開するモデルのインターフェース
type ParameterGetter interface {
	// Params はモデルのハイパーパラメータを返す
	Params() map[string]interface{}
}

// Snapshotter は学習結果を ModelWeights として書き出せるモデルのインターフェース
type Snapshotter interface {
	Snapshot() (*ModelWeights, error)
}

// Estimator は学習・予測・パラメータ取得をまとめたインターフェース
type Estimator interface {
	Fitter
	Predictor
	ParameterGetter
}
