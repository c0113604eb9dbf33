package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_PORT", "9090")
	t.Setenv("UPCOMING_WINDOW", "12h")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.Equal(t, "clinichub", AppConfig.DatabaseName)
	assert.Equal(t, 12*time.Hour, AppConfig.UpcomingWindow)
	assert.Equal(t, time.Hour, AppConfig.ReminderLead)
	assert.Equal(t, 5, AppConfig.ChatPollSeconds)
	assert.Equal(t, 20, AppConfig.UnreadPollSeconds)
	assert.False(t, IsProduction())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	AppConfig.ClinicTimezone = "Not/AZone"
	assert.Equal(t, time.UTC, Location())

	AppConfig.ClinicTimezone = "Africa/Nairobi"
	loc := Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Africa/Nairobi", loc.String())
}
