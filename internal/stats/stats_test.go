package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCritical_KnownValues(t *testing.T) {
	cases := []struct {
		df   float64
		want float64
	}{
		{1, 12.706204736},
		{4, 2.776445105},
		{9, 2.262157163},
		{29, 2.045229642},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, TCritical(tc.df, DefaultLevel), 1e-6, "df=%v", tc.df)
	}
}

func TestTCritical_Degenerate(t *testing.T) {
	assert.True(t, math.IsNaN(TCritical(0, DefaultLevel)))
	assert.True(t, math.IsNaN(TCritical(-3, DefaultLevel)))
	assert.True(t, math.IsNaN(TCritical(math.NaN(), DefaultLevel)))
	assert.True(t, math.IsNaN(TCritical(5, 0)))
	assert.True(t, math.IsNaN(TCritical(5, 1)))
}

func TestSummarize_OneToFive(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4, 5}, DefaultLevel)

	require.True(t, s.Numeric)
	require.Equal(t, 5, s.N)
	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	assert.InDelta(t, 1.5811388300841898, s.StdDev, 1e-12)
	assert.InDelta(t, 0.7071067811865476, s.StdErr, 1e-12)
	assert.InDelta(t, 2.7764451051977987, s.TCritical, 1e-9)
	assert.InDelta(t, 1.036756838522439, s.Lower, 1e-8)
	assert.InDelta(t, 4.9632431614775605, s.Upper, 1e-8)
}

func TestSummarize_IdenticalValues(t *testing.T) {
	for _, n := range []int{2, 3, 10, 50} {
		values := make([]float64, n)
		for i := range values {
			values[i] = 2.5
		}

		s := Summarize(values, DefaultLevel)
		assert.Equal(t, 2.5, s.Mean, "n=%d", n)
		assert.Equal(t, 0.0, s.StdDev, "n=%d", n)
		assert.Equal(t, 2.5, s.Lower, "n=%d", n)
		assert.Equal(t, 2.5, s.Upper, "n=%d", n)
	}
}

func TestSummarize_SmallSamples(t *testing.T) {
	empty := Summarize(nil, DefaultLevel)
	assert.Equal(t, 0, empty.N)
	for _, v := range empty.Values() {
		assert.True(t, math.IsNaN(v))
	}

	single := Summarize([]float64{7}, DefaultLevel)
	assert.Equal(t, 1, single.N)
	assert.Equal(t, 7.0, single.Mean)
	assert.True(t, math.IsNaN(single.StdDev))
	assert.True(t, math.IsNaN(single.Lower))
	assert.True(t, math.IsNaN(single.Upper))
}

func TestSummarize_SkipsMissing(t *testing.T) {
	s := Summarize([]float64{1, math.NaN(), 3}, DefaultLevel)
	assert.Equal(t, 2, s.N)
	assert.Equal(t, 2.0, s.Mean)
}

func TestSummarize_SymmetricBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		values := make([]float64, 3+rng.Intn(40))
		for i := range values {
			values[i] = rng.NormFloat64()*10 + 100
		}
		s := Summarize(values, DefaultLevel)
		assert.InDelta(t, s.Upper-s.Mean, s.Mean-s.Lower, 1e-9)
	}
}

func TestSummarize_WidthShrinksWithN(t *testing.T) {
	// Unit-variance design: alternating ±1 around zero has a sample
	// variance that tends to 1 from above as n grows.
	prev := math.Inf(1)
	for _, n := range []int{4, 8, 16, 32, 64, 128} {
		values := make([]float64, n)
		for i := range values {
			if i%2 == 0 {
				values[i] = 1
			} else {
				values[i] = -1
			}
		}
		s := Summarize(values, DefaultLevel)
		width := s.Upper - s.Lower
		assert.Less(t, width, prev, "n=%d", n)
		prev = width
	}
}
