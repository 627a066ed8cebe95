// File: services/intelligence/extractor_test.go
package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraction(t *testing.T) {
	ext, err := ParseExtraction(`{"title":"Write report","durationMinutes":60}`)
	require.NoError(t, err)
	require.NotNil(t, ext)
	assert.Equal(t, "Write report", ext.Title)
	assert.Equal(t, 60, ext.DurationMinutes)
	assert.Nil(t, ext.EarliestStart)
	assert.Nil(t, ext.Deadline)
}

func TestParseExtractionStripsFences(t *testing.T) {
	raw := "```json\n{\"title\":\"Call dentist\",\"durationMinutes\":15}\n```"
	ext, err := ParseExtraction(raw)
	require.NoError(t, err)
	require.NotNil(t, ext)
	assert.Equal(t, "Call dentist", ext.Title)
}

func TestParseExtractionWithBounds(t *testing.T) {
	raw := `{"title":"Prep slides","durationMinutes":90,` +
		`"earliestStart":"2025-01-06T09:00:00Z","deadline":"2025-01-08T17:00:00Z"}`
	ext, err := ParseExtraction(raw)
	require.NoError(t, err)
	require.NotNil(t, ext)
	require.NotNil(t, ext.EarliestStart)
	require.NotNil(t, ext.Deadline)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), ext.EarliestStart.UTC())
	assert.Equal(t, time.Date(2025, 1, 8, 17, 0, 0, 0, time.UTC), ext.Deadline.UTC())
}

func TestParseExtractionEmptyTitleMeansChat(t *testing.T) {
	ext, err := ParseExtraction(`{"title":""}`)
	require.NoError(t, err)
	assert.Nil(t, ext)
}

func TestParseExtractionRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "I can't help with that."},
		{"zero duration", `{"title":"Write report","durationMinutes":0}`},
		{"negative duration", `{"title":"Write report","durationMinutes":-30}`},
		{"inverted bounds", `{"title":"Write report","durationMinutes":30,` +
			`"earliestStart":"2025-01-08T00:00:00Z","deadline":"2025-01-06T00:00:00Z"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, err := ParseExtraction(tc.raw)
			assert.Error(t, err)
			assert.Nil(t, ext)
		})
	}
}

func TestBuildExtractionPromptAnchorsTime(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	prompt := BuildExtractionPrompt("schedule a run tomorrow", now)
	assert.Contains(t, prompt, "2025-01-06T08:00:00Z")
	assert.Contains(t, prompt, "schedule a run tomorrow")
}
