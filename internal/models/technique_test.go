package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessRate(t *testing.T) {
	cases := []struct {
		success, attempts, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{4, 4, 100},
	}
	for _, c := range cases {
		tech := Technique{SuccessCount: c.success, AttemptCount: c.attempts}
		assert.Equal(t, c.want, tech.SuccessRate(), "%d/%d", c.success, c.attempts)
	}
}

func TestTechniqueJSONIncludesSuccessRate(t *testing.T) {
	tech := NewTechnique()
	tech.Name = "Kimura"
	tech.Category = "submission"
	tech.SuccessCount, tech.AttemptCount = 3, 4

	body, err := json.Marshal(tech)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, float64(75), decoded["successRate"])
	assert.Equal(t, "Kimura", decoded["name"])
	assert.Equal(t, float64(1), decoded["masteryLevel"])
	assert.Equal(t, []any{}, decoded["tags"])
}

func TestCompetitionType(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, CompetitionPast, CompetitionType(now.Add(-time.Minute), now))
	assert.Equal(t, CompetitionUpcoming, CompetitionType(now, now))
	assert.Equal(t, CompetitionUpcoming, CompetitionType(now.AddDate(0, 1, 0), now))
}
