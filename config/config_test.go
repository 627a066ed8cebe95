package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "models/gemini-1.5-pro", AppConfig.GeminiModel)
	assert.Equal(t, "America/Los_Angeles", AppConfig.SchedTimezone)
	assert.Equal(t, 5, AppConfig.SchedWindowStartHour)
	assert.Equal(t, 24, AppConfig.SchedWindowEndHour)
	assert.Equal(t, 30, AppConfig.SchedStepMinutes)
	assert.Equal(t, 500, AppConfig.SchedMaxCandidates)
	assert.Equal(t, 7, AppConfig.SyncLookaheadDays)
}

func TestSchedLocationResolves(t *testing.T) {
	LoadConfig()
	loc := SchedLocation()
	assert.Equal(t, "America/Los_Angeles", loc.String())
}
