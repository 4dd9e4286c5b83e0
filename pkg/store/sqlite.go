package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// profileID is the primary key of the single profile row
const profileID = 1

// ProfileRow holds the encoded save profile
type ProfileRow struct {
	ID        uint `gorm:"primaryKey"`
	Data      datatypes.JSON
	UpdatedAt time.Time
}

// TableName sets the profile table name
func (ProfileRow) TableName() string {
	return "profiles"
}

// RunRow is one finished run
type RunRow struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey"`
	VehicleID    string    `gorm:"index"`
	Money        int
	ClosePasses  int
	MaxCombo     int
	SpeedBonus   int
	DurationMs   int64
	Crashed      bool
	NewHighScore bool
	FinishedAt   time.Time `gorm:"index"`
}

// TableName sets the run table name
func (RunRow) TableName() string {
	return "runs"
}

// SQLiteStore keeps the profile and run history in a SQLite database
type SQLiteStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewSQLiteStore opens or creates the database at path. Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// one connection keeps in-memory databases alive and serializes writes
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&ProfileRow{}, &RunRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &SQLiteStore{db: db, logger: log}, nil
}

// Load reads the profile. A missing or corrupt row yields a default profile.
func (s *SQLiteStore) Load(ctx context.Context) (*profile.SaveProfile, error) {
	var row ProfileRow
	err := s.db.WithContext(ctx).First(&row, profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Info().Msg("No saved profile, starting fresh")
		return profile.Default(), nil
	}
	if err != nil {
		return nil, err
	}

	p, err := profile.Decode(row.Data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Saved profile is corrupt, starting fresh")
	}
	return p, nil
}

// Save writes the profile
func (s *SQLiteStore) Save(ctx context.Context, p *profile.SaveProfile) error {
	raw, err := p.Encode()
	if err != nil {
		return err
	}

	row := ProfileRow{ID: profileID, Data: datatypes.JSON(raw)}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Debug().Int("money", p.Money).Msg("Profile saved")
	return nil
}

// RecordRun inserts a run into the history
func (s *SQLiteStore) RecordRun(ctx context.Context, rec RunRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	row := RunRow{
		ID:           rec.ID,
		VehicleID:    rec.VehicleID,
		Money:        rec.Money,
		ClosePasses:  rec.ClosePasses,
		MaxCombo:     rec.MaxCombo,
		SpeedBonus:   rec.SpeedBonus,
		DurationMs:   rec.Duration.Milliseconds(),
		Crashed:      rec.Crashed,
		NewHighScore: rec.NewHighScore,
		FinishedAt:   rec.FinishedAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to n runs, newest first
func (s *SQLiteStore) RecentRuns(ctx context.Context, n int) ([]RunRecord, error) {
	if n <= 0 {
		return []RunRecord{}, ctx.Err()
	}
	var rows []RunRow
	err := s.db.WithContext(ctx).
		Order("finished_at desc").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	runs := make([]RunRecord, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, RunRecord{
			ID:           row.ID,
			VehicleID:    row.VehicleID,
			Money:        row.Money,
			ClosePasses:  row.ClosePasses,
			MaxCombo:     row.MaxCombo,
			SpeedBonus:   row.SpeedBonus,
			Duration:     time.Duration(row.DurationMs) * time.Millisecond,
			Crashed:      row.Crashed,
			NewHighScore: row.NewHighScore,
			FinishedAt:   row.FinishedAt.UTC(),
		})
	}
	return runs, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
