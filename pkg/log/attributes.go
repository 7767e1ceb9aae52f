// Package log defines standard attribute keys for fitting operations.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that log records from kernels and the IRLS engine can be
// filtered consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "GLM".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "glm", "linalg", "diagnostics"
	ComponentKey = "ml.component"
)

// Data Shape
const (
	// SamplesKey indicates the number of observations (rows of the design matrix).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of predictors including the intercept column.
	FeaturesKey = "data.features"
)

// Training progress
const (
	// IterationKey records the current IRLS iteration.
	IterationKey = "training.iteration"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// GLM specific attributes
const (
	// FamilyKey names the exponential family of the model.
	FamilyKey = "glm.family"

	// DevianceKey records the unpenalized deviance.
	DevianceKey = "glm.deviance"

	// PenalizedDevianceKey records the deviance plus the ridge term.
	PenalizedDevianceKey = "glm.penalized_deviance"

	// RelChangeKey records the relative change of the penalized deviance
	// between two iterations.
	RelChangeKey = "glm.rel_change"

	// StatusKey records the terminal state of a fit: "converged" or
	// "max_iter_exceeded".
	StatusKey = "glm.status"
)

// Hyperparameters
const (
	// RegularizationKey records the ridge penalty strength.
	RegularizationKey = "hyperparams.regularization"

	// ToleranceKey records the convergence tolerance.
	ToleranceKey = "hyperparams.tolerance"

	// MaxIterKey records the iteration cap.
	MaxIterKey = "hyperparams.max_iter"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInvalidDesign     = "INVALID_DESIGN"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorNotPositiveDef    = "NOT_POSITIVE_DEFINITE"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
)
