package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golangdaddy/cutup/pkg/config"
	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/golangdaddy/cutup/pkg/scoring"
	"github.com/golangdaddy/cutup/pkg/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Verify both stores implement Store
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

func sampleProfile() *profile.SaveProfile {
	p := profile.Default()
	p.Money = 7300
	p.HighScore = 2200
	p.TotalRuns = 12
	p.TotalEarnings = 19000
	p.Vehicles["sports_coupe"].Owned = true
	p.Vehicles["sports_coupe"].Upgrades[data.UpgradeNitro] = 2
	p.SelectedVehicleID = "sports_coupe"
	return p
}

func sampleRun(money int, at time.Time) RunRecord {
	return NewRunRecord(session.Result{
		Summary:   scoring.Summary{Money: money, ClosePasses: 4, MaxCombo: 3, SpeedBonus: 12},
		VehicleID: "compact_sedan",
		Duration:  42 * time.Second,
		Crashed:   true,
	}, at)
}

// storeContract runs the behavior every store must share
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.Default(), p, "empty store loads a default profile")

	want := sampleProfile()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want.Money = 10
	require.NoError(t, s.Save(ctx, want))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Money, "save overwrites")

	runs, err := s.RecentRuns(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, runs)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.RecordRun(ctx, sampleRun(100*(i+1), base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err = s.RecentRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []int{400, 300, 200}, []int{runs[0].Money, runs[1].Money, runs[2].Money})
	assert.Equal(t, 42*time.Second, runs[0].Duration)
	assert.Equal(t, "compact_sedan", runs[0].VehicleID)
	assert.True(t, runs[0].Crashed)
	assert.True(t, runs[0].FinishedAt.Equal(base.Add(3*time.Minute)))
	assert.NotEqual(t, uuid.Nil, runs[0].ID)

	for _, n := range []int{0, -1} {
		runs, err = s.RecentRuns(ctx, n)
		require.NoError(t, err, "n=%d", n)
		assert.NotNil(t, runs, "n=%d", n)
		assert.Empty(t, runs, "n=%d", n)
	}
}

func TestFileStore(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "save.json"), zerolog.Nop())
	t.Cleanup(func() { s.Close() })
	storeContract(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	storeContract(t, s)
}

func TestFileStore_WritesPersistedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.json")
	s := NewFileStore(path, zerolog.Nop())

	require.NoError(t, s.Save(context.Background(), sampleProfile()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{`"money"`, `"highScore"`, `"totalRuns"`, `"totalEarnings"`, `"selectedVehicleId"`, `"vehicles"`, `"upgrades"`} {
		assert.Contains(t, string(raw), key)
	}
	assert.NoFileExists(t, path+".tmp")
}

func TestFileStore_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"money": 5, "vehicles": {`), 0644))

	p, err := NewFileStore(path, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile.Default(), p)
}

func TestFileStore_PartialFileBackfilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"money": 900}`), 0644))

	p, err := NewFileStore(path, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 900, p.Money)
	assert.Len(t, p.Vehicles, len(data.Vehicles))
}

func TestFileStore_HistoryCapped(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "save.json"), zerolog.Nop())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxHistory+5; i++ {
		require.NoError(t, s.RecordRun(ctx, sampleRun(i, base.Add(time.Duration(i)*time.Second))))
	}

	runs, err := s.RecentRuns(ctx, MaxHistory*2)
	require.NoError(t, err)
	assert.Len(t, runs, MaxHistory)
	assert.Equal(t, MaxHistory+4, runs[0].Money)
}

func TestFileStore_CanceledContext(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "save.json"), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Save(ctx, profile.Default()), context.Canceled)
}

func TestSQLiteStore_CorruptRowFallsBack(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.db.Create(&ProfileRow{ID: profileID, Data: []byte(`{"money": "lots"}`)}).Error)

	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile.Default(), p)
}

func TestSQLiteStore_AssignsMissingRunID(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	rec := sampleRun(50, time.Now())
	rec.ID = uuid.Nil
	require.NoError(t, s.RecordRun(ctx, rec))

	runs, err := s.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEqual(t, uuid.Nil, runs[0].ID)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(config.StoreConfig{Type: "file", File: config.FileStoreConfig{Path: filepath.Join(dir, "save.json")}}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(config.StoreConfig{Type: "sqlite", SQLite: config.SQLiteStoreConfig{Path: filepath.Join(dir, "cutup.db")}}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())
	assert.FileExists(t, filepath.Join(dir, "cutup.db"))

	_, err = Open(config.StoreConfig{Type: "postgres"}, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown store type")
}
