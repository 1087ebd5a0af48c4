package selectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Cabina/internal/catalog"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return New(cat)
}

func TestVerify_SelectiveWithRecommendation(t *testing.T) {
	c := newTestChecker(t)

	res := c.Verify(Breaker{Series: "Emax 2", Frame: "E2.2"}, []Breaker{
		{Series: "Tmax", Frame: "T4"},
		{Series: "Tmax", Frame: "T6"},
	})

	assert.True(t, res.Selective)
	assert.Empty(t, res.Issues)
	require.Len(t, res.Checks, 2)
	assert.InDelta(t, 0.4, res.Checks[0].TimeMarginS, 1e-9)
	assert.True(t, res.Checks[0].CurrentOK)
	assert.False(t, res.Checks[1].CurrentOK)
	require.Len(t, res.Recommendations, 1)
	assert.Contains(t, res.Recommendations[0], "T6")
	assert.NotEmpty(t, res.Standards)
}

func TestVerify_UnknownFramesUseDefaults(t *testing.T) {
	c := newTestChecker(t)

	res := c.Verify(Breaker{Frame: "X9"}, []Breaker{{Frame: "Y1"}})
	require.Len(t, res.Checks, 1)
	ch := res.Checks[0]
	assert.True(t, ch.DefaultedFrame)
	assert.Equal(t, 0.8, ch.Upstream.T1)
	assert.Equal(t, 5.0, ch.Upstream.I2)
	assert.Equal(t, 0.1, ch.Settings.T1)
	assert.Equal(t, 3.0, ch.Settings.I2)
	assert.True(t, res.Selective)
}

func TestVerify_TimeMarginIsHardIssue(t *testing.T) {
	rules := catalog.Default().Selectivity
	rules.Tmax = map[string]catalog.TripSettings{"T7": {I1: 0.9, T1: 0.35, I2: 4, T2: 0.08, I3: 8, T3: 0.02}}
	c := &Checker{rules: rules}

	res := c.Verify(Breaker{Series: "Emax 2", Frame: "E1.2"}, []Breaker{{Series: "Tmax", Frame: "T7"}})
	assert.False(t, res.Selective)
	require.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "time margin")
	assert.False(t, res.Checks[0].TimeSelective)
}

func TestVerify_NoDownstream(t *testing.T) {
	res := newTestChecker(t).Verify(Breaker{Frame: "E1.2"}, nil)
	assert.True(t, res.Selective)
	assert.NotNil(t, res.Checks)
	assert.NotNil(t, res.Issues)
	assert.NotNil(t, res.Recommendations)
}
