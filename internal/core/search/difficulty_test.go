package search

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-vanity/internal/core/matcher"
)

func mustPattern(t *testing.T, prefix, suffix string, ci bool) matcher.Pattern {
	t.Helper()
	p, err := matcher.New(prefix, suffix, ci)
	require.NoError(t, err)
	return p
}

func TestEstimateDifficulty_OneChar(t *testing.T) {
	d := EstimateDifficulty(mustPattern(t, "A", "", false))

	assert.Equal(t, 58.0, d.ExpectedAttempts)
	assert.InDelta(t, 1.0/58, d.ProbabilityPerAttempt, 1e-12)
	// 58·ln2 ≈ 40
	assert.InDelta(t, 40, d.MedianAttempts, 15)
	assert.InDelta(t, 58*math.Ln2, d.MedianAttempts, 1e-9)
}

func TestEstimateDifficulty_CaseInsensitive(t *testing.T) {
	d := EstimateDifficulty(mustPattern(t, "ab", "", true))

	assert.Equal(t, float64(CaseInsensitiveBase), d.Base)
	assert.Equal(t, 34.0*34.0, d.ExpectedAttempts)
}

func TestEstimateDifficulty_BothSumsLengths(t *testing.T) {
	both := EstimateDifficulty(mustPattern(t, "AB", "xyz", false))
	prefix := EstimateDifficulty(mustPattern(t, "ABxyz", "", false))

	assert.Equal(t, 5, both.PatternLength)
	assert.Equal(t, prefix.ExpectedAttempts, both.ExpectedAttempts)
}

func TestEstimateDifficulty_Monotonic(t *testing.T) {
	for _, ci := range []bool{false, true} {
		prev := 0.0
		for l := 1; l <= matcher.MaxPrefixLength+matcher.MaxSuffixLength; l++ {
			base := float64(CaseSensitiveBase)
			if ci {
				base = CaseInsensitiveBase
			}
			d := difficultyFor(base, l)
			assert.Greater(t, d.ExpectedAttempts, prev, "length %d ci=%v", l, ci)
			assert.False(t, math.IsInf(d.ExpectedAttempts, 0))
			prev = d.ExpectedAttempts
		}
	}
}

func TestDifficulty_SuccessProbability(t *testing.T) {
	d := EstimateDifficulty(mustPattern(t, "ABC", "", false))

	assert.Equal(t, 0.0, d.SuccessProbability(0))
	assert.InDelta(t, 0.5, d.SuccessProbability(d.MedianAttempts), 1e-9)
	assert.InDelta(t, 1-math.Exp(-1), d.SuccessProbability(d.ExpectedAttempts), 1e-9)
	assert.InDelta(t, 1-math.Exp(-5), d.SuccessProbability(5*d.ExpectedAttempts), 1e-9)

	assert.InDelta(t, d.MedianAttempts, d.AttemptsFor(0.5), 1e-6)
	assert.Equal(t, 0.0, d.AttemptsFor(0))
	assert.True(t, math.IsInf(d.AttemptsFor(1), 1))
}

func TestDifficulty_Durations(t *testing.T) {
	d := EstimateDifficulty(mustPattern(t, "AB", "", false))

	assert.InDelta(t, float64(58*58*time.Millisecond), float64(d.ExpectedDuration(1000)), float64(time.Microsecond))
	assert.Less(t, d.MedianDuration(1000), d.ExpectedDuration(1000))

	assert.Equal(t, time.Duration(math.MaxInt64), d.ExpectedDuration(0))

	huge := EstimateDifficulty(mustPattern(t, "zzzzzzzz", "zzzzzzzz", false))
	assert.Equal(t, time.Duration(math.MaxInt64), huge.ExpectedDuration(1))
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, EstimateDuration(2000, 1000))
	assert.Equal(t, time.Duration(0), EstimateDuration(0, 1000))
	assert.Equal(t, time.Duration(math.MaxInt64), EstimateDuration(1, -1))
	assert.Equal(t, time.Duration(math.MaxInt64), EstimateDuration(1e30, 1))
}
