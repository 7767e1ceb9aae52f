/*
Package glm fits generalized linear models by iteratively reweighted least
squares (IRLS), with an optional ridge penalty on every coefficient except
the intercept.

A design matrix is a row-major flat []float64 with len(y) rows whose first
column is exactly 1 (the intercept column). Use linalg.Design to prepend it.

	x, _ := linalg.Design(hours, len(passed))
	m := glm.New(glm.Bernoulli, glm.WithPenalty(0.1))
	if err := m.Fit(x, passed, 25); err != nil {
		return err
	}
	fmt.Println(m.Coefficients(), m.Status())

Each IRLS pass takes one Newton step on the penalized deviance:

	dbeta  = -Xᵀ r + alpha·coef         (intercept excluded from the penalty)
	ddbeta =  Xᵀ diag(w) X + alpha·I    (intercept excluded from the penalty)
	coef  -= ddbeta⁻¹ dbeta

where r and w are the working residuals and weights of the family. The loop
stops once the relative change of the penalized deviance drops below the
tolerance, or after maxIter passes. Running out of passes is not an error:
Status reports MaxIterExceeded and a ConvergenceWarning is emitted through
errors.Warn.

A Model is not safe for concurrent use. Independent Models may be fitted
concurrently.
*/
package glm
