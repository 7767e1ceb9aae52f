package linalg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

func randomMatrix(rng *rand.Rand, rows, cols int) []float64 {
	out := make([]float64, rows*cols)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// randomSPD returns MᵀM + n·I for a random n×n M.
func randomSPD(rng *rand.Rand, n int) []float64 {
	m := randomMatrix(rng, n, n)
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for k := 0; k < n; k++ {
				s += m[k*n+i] * m[k*n+j]
			}
			a[i*n+j] = s
		}
		a[i*n+i] += float64(n)
	}
	return a
}

func transpose(a []float64, rows, cols int) []float64 {
	out := make([]float64, len(a))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = a[i*cols+j]
		}
	}
	return out
}

// naiveMatmul multiplies a (m×k) by b (k×n) with the textbook triple loop.
func naiveMatmul(a, b []float64, m, k, n int) []float64 {
	out := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for l := 0; l < k; l++ {
				s += a[i*k+l] * b[l*n+j]
			}
			out[i*n+j] = s
		}
	}
	return out
}

func TestIsSquare(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		want    int
		wantErr bool
	}{
		{"empty", 0, 0, false},
		{"1x1", 1, 1, false},
		{"3x3", 9, 3, false},
		{"20x20", 400, 20, false},
		{"not square 2", 2, 0, true},
		{"not square 10", 10, 0, true},
		{"one past square", 401, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := IsSquare(make([]float64, tt.length))
			if tt.wantErr {
				var dimErr *errors.DimensionError
				require.True(t, errors.As(err, &dimErr), "want DimensionError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestIsSymmetric(t *testing.T) {
	assert.True(t, IsSymmetric([]float64{4, 12, -16, 12, 37, -43, -16, -43, 98}))
	assert.False(t, IsSymmetric([]float64{1, 2, 3, 4}))
	assert.False(t, IsSymmetric([]float64{1, 2, 3}))
	assert.True(t, IsSymmetric([]float64{1, 2, 2 + 1e-12, 1}), "rounding-level asymmetry is tolerated")
}

func TestIsMatrix(t *testing.T) {
	p, err := IsMatrix(make([]float64, 12), 4)
	require.NoError(t, err)
	assert.Equal(t, 3, p)

	_, err = IsMatrix(make([]float64, 10), 4)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = IsMatrix(make([]float64, 10), 0)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestIsDesign(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		rows int
		want bool
	}{
		{"intercept column", []float64{1, 0.5, 1, 0.7, 1, 2}, 3, true},
		{"intercept only", []float64{1, 1, 1}, 3, true},
		{"one row off", []float64{1, 0.5, 0.9999999, 0.7, 1, 2}, 3, false},
		{"first column zero", []float64{0, 1, 0, 1}, 2, false},
		{"ragged", []float64{1, 2, 1}, 2, false},
		{"no columns", []float64{}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDesign(tt.x, tt.rows))
		})
	}

	_, err := CheckDesign([]float64{1, 5, 2, 6}, 2)
	var designErr *errors.InvalidDesignError
	require.True(t, errors.As(err, &designErr))
	assert.Equal(t, 1, designErr.Row)
	assert.Equal(t, 2.0, designErr.Value)
}

func TestDesign(t *testing.T) {
	x, err := Design([]float64{0.5, 3, 0.75, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 3, 1, 0.75, 4}, x)
	assert.True(t, IsDesign(x, 2))
}

func TestVectorOps(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}

	sum, err := Vadd(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sum)

	diff, err := Vsub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -3, -3}, diff)

	prod, err := Vmul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, prod)

	quot, err := Vdiv(b, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2.5, 2}, quot)

	dot, err := Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, 32.0, dot)

	assert.Equal(t, []float64{1, 2, 3}, a, "inputs are not modified")

	for _, op := range []func(a, b []float64) ([]float64, error){Vadd, Vsub, Vmul, Vdiv} {
		_, err := op(a, []float64{1})
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	}

	assert.Equal(t, 2.0, Mean(a))
	assert.Equal(t, 6.0, Sum(a))
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestMatmulTransposeVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	shapes := [][3]int{{1, 1, 1}, {3, 4, 2}, {5, 1, 6}, {7, 3, 7}, {200, 20, 30}}

	for _, s := range shapes {
		m, k, n := s[0], s[1], s[2]
		a := randomMatrix(rng, m, k)
		b := randomMatrix(rng, k, n)
		at := transpose(a, m, k) // k×m
		bt := transpose(b, k, n) // n×k
		want := naiveMatmul(a, b, m, k, n)

		cases := []struct {
			name           string
			left           []float64
			leftRows       int
			right          []float64
			rightRows      int
			transA, transB bool
		}{
			{"A·B", a, m, b, k, false, false},
			{"(Aᵀ)ᵀ·B", at, k, b, k, true, false},
			{"A·(Bᵀ)ᵀ", a, m, bt, n, false, true},
			{"(Aᵀ)ᵀ·(Bᵀ)ᵀ", at, k, bt, n, true, true},
		}
		for _, c := range cases {
			got, rows, cols, err := Matmul(c.left, c.leftRows, c.right, c.rightRows, c.transA, c.transB)
			require.NoError(t, err, c.name)
			require.Equal(t, m, rows, c.name)
			require.Equal(t, n, cols, c.name)
			assert.InDeltaSlice(t, want, got, 1e-9, "%s shape %v", c.name, s)
		}

		var ref mat.Dense
		ref.Mul(mat.NewDense(m, k, a), mat.NewDense(k, n, b))
		assert.InDeltaSlice(t, ref.RawMatrix().Data, want, 1e-9)
	}
}

func TestMatmulShapeMismatch(t *testing.T) {
	a := make([]float64, 6) // 2×3
	b := make([]float64, 8) // 4×2

	_, _, _, err := Matmul(a, 2, b, 4, false, false)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 4, dimErr.Got)

	// aᵀ is 3×2 and b is 4×2: still incompatible
	_, _, _, err = Matmul(a, 2, b, 4, true, false)
	assert.Error(t, err)

	// a (2×3) · bᵀ (2×4) would need 3 == 2
	_, _, _, err = Matmul(a, 2, b, 4, false, true)
	assert.Error(t, err)

	// aᵀ (3×2) · b[4×2 stored, read as 2×4 after transB]
	out, rows, cols, err := Matmul(a, 2, b, 4, true, true)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	assert.Len(t, out, 12)

	_, _, _, err = Matmul(make([]float64, 5), 2, b, 4, false, false)
	assert.Error(t, err)
}

func TestMatVec(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6} // 3×2
	v, err := MatVec(x, 3, []float64{1, -1}, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, v)

	vt, err := MatVec(x, 3, []float64{1, 1, 1}, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 12}, vt)

	_, err = MatVec(x, 3, []float64{1, 1, 1}, false)
	assert.Error(t, err)
}

func TestCholeskyKnownFactors(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		want []float64
	}{
		{
			name: "4x4",
			a:    []float64{6, 3, 4, 8, 3, 6, 5, 1, 4, 5, 10, 7, 8, 1, 7, 25},
			want: []float64{
				2.449489742783178, 0, 0, 0,
				1.2247448713915892, 2.1213203435596424, 0, 0,
				1.6329931618554523, 1.414213562373095, 2.309401076758503, 0,
				3.2659863237109046, -1.4142135623730956, 1.5877132402714704, 3.1324910215354165,
			},
		},
		{
			name: "3x3 integer factor",
			a:    []float64{4, 12, -16, 12, 37, -43, -16, -43, 98},
			want: []float64{2, 0, 0, 6, 1, 0, -8, 5, 3},
		},
		{
			name: "3x3 with zero",
			a:    []float64{25, 15, -5, 15, 18, 0, -5, 0, 11},
			want: []float64{5, 0, 0, 3, 3, 0, -1, 1, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Cholesky(tt.a)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, l, 1e-9)
		})
	}
}

func TestCholeskyReconstructs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 5, 10, 30} {
		a := randomSPD(rng, n)
		l, err := Cholesky(a)
		require.NoError(t, err)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				require.Zero(t, l[i*n+j], "upper triangle must be zero")
			}
		}

		llt, _, _, err := Matmul(l, n, l, n, false, true)
		require.NoError(t, err)
		assert.InDeltaSlice(t, a, llt, 1e-6, "n=%d", n)

		var ref mat.Cholesky
		require.True(t, ref.Factorize(mat.NewSymDense(n, a)))
		var refL mat.TriDense
		ref.LTo(&refL)
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				assert.InDelta(t, refL.At(i, j), l[i*n+j], 1e-9)
			}
		}
	}
}

func TestCholeskyErrors(t *testing.T) {
	_, err := Cholesky([]float64{1, 2, 3})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = Cholesky([]float64{1, 2, 3, 4})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	// symmetric but indefinite: eigenvalues 3 and -1
	_, err = Cholesky([]float64{1, 2, 2, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotPositiveDefinite))
	var pdErr *errors.NotPositiveDefiniteError
	require.True(t, errors.As(err, &pdErr))
	assert.Equal(t, 1, pdErr.Pivot)
	assert.InDelta(t, -3.0, pdErr.Value, 1e-12)

	_, err = Cholesky([]float64{0})
	assert.True(t, errors.Is(err, errors.ErrNotPositiveDefinite))
}

func TestSolve(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range []int{1, 3, 8, 25} {
		a := randomSPD(rng, n)
		want := randomMatrix(rng, n, 1)
		b, err := MatVec(a, n, want, false)
		require.NoError(t, err)

		x, err := Solve(a, b)
		require.NoError(t, err)
		assert.InDeltaSlice(t, want, x, 1e-8, "n=%d", n)
	}

	_, err := Solve([]float64{4, 0, 0, 4}, []float64{1, 2, 3})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestTriangularSolves(t *testing.T) {
	l := []float64{2, 0, 0, 6, 1, 0, -8, 5, 3}

	z, err := ForwardSubstitute(l, []float64{2, 7, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, z, 1e-12)

	// Lᵀ·x = z with x = (1, 1, 1): Lᵀ rows are (2, 6, -8), (0, 1, 5), (0, 0, 3)
	x, err := BackSubstituteTransposed(l, []float64{0, 6, 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, x, 1e-12)

	_, err = ForwardSubstitute(l, []float64{1})
	assert.Error(t, err)
	_, err = BackSubstituteTransposed(l[:8], []float64{1, 2, 3})
	assert.Error(t, err)
}

func BenchmarkMatmulCrossProduct(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	n, p := 5000, 20
	x := randomMatrix(rng, n, p)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _, _ = Matmul(x, n, x, n, true, false)
	}
}
