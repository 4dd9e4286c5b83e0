package store

import (
	"context"
	"fmt"
	"time"

	"github.com/golangdaddy/cutup/pkg/config"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/golangdaddy/cutup/pkg/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists the save profile and the run history
type Store interface {
	// Load returns the saved profile, or a default one when nothing usable is stored
	Load(ctx context.Context) (*profile.SaveProfile, error)
	Save(ctx context.Context, p *profile.SaveProfile) error

	RecordRun(ctx context.Context, rec RunRecord) error
	// RecentRuns returns up to n runs, newest first. n <= 0 yields no runs.
	RecentRuns(ctx context.Context, n int) ([]RunRecord, error)

	Close() error
}

// RunRecord is one finished run in the history
type RunRecord struct {
	ID           uuid.UUID     `json:"id"`
	VehicleID    string        `json:"vehicleId"`
	Money        int           `json:"money"`
	ClosePasses  int           `json:"closePasses"`
	MaxCombo     int           `json:"maxCombo"`
	SpeedBonus   int           `json:"speedBonus"`
	Duration     time.Duration `json:"duration"`
	Crashed      bool          `json:"crashed"`
	NewHighScore bool          `json:"newHighScore"`
	FinishedAt   time.Time     `json:"finishedAt"`
}

// NewRunRecord creates a history entry for a finished run
func NewRunRecord(res session.Result, finishedAt time.Time) RunRecord {
	return RunRecord{
		ID:           uuid.New(),
		VehicleID:    res.VehicleID,
		Money:        res.Money,
		ClosePasses:  res.ClosePasses,
		MaxCombo:     res.MaxCombo,
		SpeedBonus:   res.SpeedBonus,
		Duration:     res.Duration,
		Crashed:      res.Crashed,
		NewHighScore: res.NewHighScore,
		FinishedAt:   finishedAt.UTC(),
	}
}

// Open creates the store selected by the config
func Open(cfg config.StoreConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.Type {
	case "sqlite":
		s, err := NewSQLiteStore(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite store: %w", err)
		}
		logger.Info().Str("path", cfg.SQLite.Path).Msg("SQLite save store initialized")
		return s, nil

	case "file", "":
		logger.Info().Str("path", cfg.File.Path).Msg("File save store initialized")
		return NewFileStore(cfg.File.Path, logger), nil

	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
