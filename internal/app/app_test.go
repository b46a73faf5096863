package app

import (
	"testing"

	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostClock(t *testing.T) {
	c, err := HostClock(config.SettingsData{})
	require.NoError(t, err)
	assert.False(t, c.SetDaysPassed(3), "days passed needs a start day")

	c, err = HostClock(config.SettingsData{StartMonth: "Last Seed", StartDay: 17})
	require.NoError(t, err)
	require.True(t, c.SetDaysPassed(45.5))
	m, ok := c.Month()
	require.True(t, ok)
	assert.Equal(t, season.Frostfall, m)

	_, err = HostClock(config.SettingsData{StartMonth: "Lastseeed", StartDay: 1})
	assert.ErrorContains(t, err, "settings.start_month")
}
