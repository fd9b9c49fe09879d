package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriageSymptomBrakes(t *testing.T) {
	matches := TriageSymptom("There is a loud squealing when I brake")
	require.NotEmpty(t, matches)
	assert.Equal(t, "Brake pad wear or rotor issue", matches[0].LikelyIssue)
	assert.Equal(t, "HIGH", matches[0].Urgency)
}

func TestTriageSymptomMultipleMatches(t *testing.T) {
	matches := TriageSymptom("engine is overheating and the car is pulling to one side")
	issues := make([]string, 0, len(matches))
	for _, m := range matches {
		issues = append(issues, m.LikelyIssue)
	}
	assert.Len(t, matches, 2)
	assert.Contains(t, issues, "Engine overheating / coolant issue")
	assert.Contains(t, issues, "Wheel alignment or tyre pressure issue")
}

func TestTriageSymptomUnknown(t *testing.T) {
	matches := TriageSymptom("the cup holder rattles")
	require.Len(t, matches, 1)
	assert.Equal(t, "UNKNOWN", matches[0].Urgency)
}

func TestTriageSymptomCaseInsensitive(t *testing.T) {
	upper := TriageSymptom("BRAKE SCREECH")
	lower := TriageSymptom("brake screech")
	assert.Equal(t, lower, upper)
}
