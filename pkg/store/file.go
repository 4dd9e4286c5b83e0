package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/rs/zerolog"
)

// MaxHistory is how many runs the file store keeps
const MaxHistory = 100

// FileStore keeps the profile in a JSON file and the run history next to it
type FileStore struct {
	path        string
	historyPath string
	logger      zerolog.Logger
}

// NewFileStore creates a store writing the profile to path
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	ext := filepath.Ext(path)
	return &FileStore{
		path:        path,
		historyPath: strings.TrimSuffix(path, ext) + "_runs" + ext,
		logger:      logger,
	}
}

// Path returns the profile file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the profile. A missing or corrupt file yields a default profile.
func (s *FileStore) Load(ctx context.Context) (*profile.SaveProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Str("path", s.path).Msg("No save file, starting fresh")
		return profile.Default(), nil
	}
	if err != nil {
		return nil, err
	}

	p, err := profile.Decode(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Save file is corrupt, starting fresh")
		return p, nil
	}
	return p, nil
}

// Save writes the profile
func (s *FileStore) Save(ctx context.Context, p *profile.SaveProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := p.Encode()
	if err != nil {
		return err
	}
	if err := writeFile(s.path, raw); err != nil {
		return err
	}

	s.logger.Debug().Str("path", s.path).Int("money", p.Money).Msg("Profile saved")
	return nil
}

// RecordRun appends a run to the history file, dropping the oldest beyond MaxHistory
func (s *FileStore) RecordRun(ctx context.Context, rec RunRecord) error {
	runs, err := s.readHistory(ctx)
	if err != nil {
		return err
	}

	runs = append(runs, rec)
	if len(runs) > MaxHistory {
		runs = runs[len(runs)-MaxHistory:]
	}

	raw, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(s.historyPath, raw)
}

// RecentRuns returns up to n runs, newest first
func (s *FileStore) RecentRuns(ctx context.Context, n int) ([]RunRecord, error) {
	runs, err := s.readHistory(ctx)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []RunRecord{}, nil
	}

	out := make([]RunRecord, 0, min(n, len(runs)))
	for i := len(runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, runs[i])
	}
	return out, nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) readHistory(ctx context.Context) ([]RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.historyPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var runs []RunRecord
	if err := json.Unmarshal(raw, &runs); err != nil {
		s.logger.Warn().Err(err).Str("path", s.historyPath).Msg("Run history is corrupt, starting over")
		return nil, nil
	}
	return runs, nil
}

// writeFile replaces path through a temp file so a crash never leaves half a save
func writeFile(path string, raw []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
