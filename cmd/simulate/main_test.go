package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golangdaddy/cutup/pkg/config"
	"github.com/golangdaddy/cutup/pkg/store"
	"github.com/golangdaddy/cutup/pkg/upgrade"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setFlags overrides the command flags for one test
func setFlags(t *testing.T, n int, vehicle string, save bool) {
	t.Helper()
	oldRuns, oldVehicle, oldSave, oldMax := *runs, *vehicleID, *persist, *maxRun
	t.Cleanup(func() {
		*runs, *vehicleID, *persist, *maxRun = oldRuns, oldVehicle, oldSave, oldMax
	})
	*runs, *vehicleID, *persist, *maxRun = n, vehicle, save, 20*time.Second
}

func loadConfig(t *testing.T) string {
	t.Helper()
	t.Cleanup(viper.Reset)
	require.NoError(t, config.Load(t.TempDir()))

	path := filepath.Join(t.TempDir(), "save.json")
	viper.Set("store.file.path", path)
	return path
}

func TestRun_SavesProfileAndHistory(t *testing.T) {
	path := loadConfig(t)
	setFlags(t, 2, "", true)

	require.NoError(t, run(zerolog.Nop()))

	s := store.NewFileStore(path, zerolog.Nop())
	ctx := context.Background()

	save, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, save.TotalRuns)

	history, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestRun_ReturnsErrorInsteadOfExiting(t *testing.T) {
	path := loadConfig(t)
	setFlags(t, 1, "hypercar", true)

	err := run(zerolog.Nop())
	assert.ErrorIs(t, err, upgrade.ErrVehicleLocked)
	assert.NoFileExists(t, path, "nothing is written when the run fails")
}

func TestRun_ThrowawayProfileDrivesAnyVehicle(t *testing.T) {
	path := loadConfig(t)
	setFlags(t, 1, "hypercar", false)

	require.NoError(t, run(zerolog.Nop()))
	assert.NoFileExists(t, path)
}
