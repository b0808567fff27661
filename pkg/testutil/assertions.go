package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertPartial checks that the breakdown carries want for rule.
func AssertPartial(t *testing.T, b model.ScoreBreakdown, rule model.RuleName, want valueobject.PartialScore) {
	t.Helper()
	got, ok := b.Partial(rule)
	require.True(t, ok, "rule %s not scored", rule)
	assert.Equal(t, want, got, "rule %s", rule)
}

// AssertDecision checks the decision and the summed total.
func AssertDecision(t *testing.T, b model.ScoreBreakdown, want valueobject.Decision, total int) {
	t.Helper()
	assert.Equal(t, want, b.Decision, "decision")
	assert.Equal(t, total, b.Total, "total")
}
