package config

import (
	"errors"
	"fmt"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "cutup.cfg.json"

// FileStoreConfig holds JSON save file settings
type FileStoreConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// SQLiteStoreConfig holds SQLite save database settings
type SQLiteStoreConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StoreConfig selects and configures the save store
type StoreConfig struct {
	Type   string            `json:"type" mapstructure:"type"`
	File   FileStoreConfig   `json:"file" mapstructure:"file"`
	SQLite SQLiteStoreConfig `json:"sqlite" mapstructure:"sqlite"`
}

// WindowConfig holds desktop window settings
type WindowConfig struct {
	Title string `json:"title" mapstructure:"title"`
	Scale int    `json:"scale" mapstructure:"scale"`
}

// Load sets default values and reads the config file from configDir.
// A missing file leaves the defaults in place; a malformed one is an error.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("store.type", "file")
	viper.SetDefault("store.file.path", "./cutup_save.json")
	viper.SetDefault("store.sqlite.path", "./cutup.db")

	viper.SetDefault("window.title", "Cut Up")
	viper.SetDefault("window.scale", 1)

	setTuningDefaults(data.DefaultTuning())

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setTuningDefaults(t data.Tuning) {
	viper.SetDefault("tuning.lanes", t.Lanes)
	viper.SetDefault("tuning.laneWidth", t.LaneWidth)
	viper.SetDefault("tuning.roadMargin", t.RoadMargin)
	viper.SetDefault("tuning.gameWidth", t.GameWidth)
	viper.SetDefault("tuning.gameHeight", t.GameHeight)

	viper.SetDefault("tuning.baseScrollSpeed", t.BaseScrollSpeed)
	viper.SetDefault("tuning.maxScrollSpeed", t.MaxScrollSpeed)
	viper.SetDefault("tuning.baseAccelerationRate", t.BaseAccelerationRate)
	viper.SetDefault("tuning.baseLaneChangeSpeed", t.BaseLaneChangeSpeed)
	viper.SetDefault("tuning.laneChangeBase", t.LaneChangeBase.String())
	viper.SetDefault("tuning.laneChangeMax", t.LaneChangeMax.String())
	viper.SetDefault("tuning.brakeFactor", t.BrakeFactor)
	viper.SetDefault("tuning.boostDuration", t.BoostDuration.String())
	viper.SetDefault("tuning.boostCooldown", t.BoostCooldown.String())
	viper.SetDefault("tuning.boostMultiplier", t.BoostMultiplier)
	viper.SetDefault("tuning.passMemory", t.PassMemory.String())
	viper.SetDefault("tuning.playerOffsetY", t.PlayerOffsetY)
	viper.SetDefault("tuning.playerWidth", t.PlayerWidth)
	viper.SetDefault("tuning.playerHeight", t.PlayerHeight)

	viper.SetDefault("tuning.closePassDistance", t.ClosePassDistance)
	viper.SetDefault("tuning.closePassReward", t.ClosePassReward)
	viper.SetDefault("tuning.passLineOffset", t.PassLineOffset)
	viper.SetDefault("tuning.comboTimeout", t.ComboTimeout.String())
	viper.SetDefault("tuning.comboLevels", t.ComboLevels)
	viper.SetDefault("tuning.speedBonusThreshold", t.SpeedBonusThreshold)
	viper.SetDefault("tuning.speedBonusRate", t.SpeedBonusRate)

	viper.SetDefault("tuning.spawnInterval", t.SpawnInterval.String())
	viper.SetDefault("tuning.spawnJitter", t.SpawnJitter)
	viper.SetDefault("tuning.multiSpawnChance", t.MultiSpawnChance)
	viper.SetDefault("tuning.multiSpawnDifficulty", t.MultiSpawnDifficulty)
	viper.SetDefault("tuning.maxDifficulty", t.MaxDifficulty)
	viper.SetDefault("tuning.difficultyStep", t.DifficultyStep)
	viper.SetDefault("tuning.difficultyInterval", t.DifficultyInterval.String())
	viper.SetDefault("tuning.trafficSpeedMin", t.TrafficSpeedMin)
	viper.SetDefault("tuning.trafficSpeedSpread", t.TrafficSpeedSpread)
	viper.SetDefault("tuning.spawnY", t.SpawnY)
	viper.SetDefault("tuning.despawnMargin", t.DespawnMargin)
}

// Tuning returns the configured gameplay constants
func Tuning() (data.Tuning, error) {
	// Unmarshal merges every tuning key from defaults and file
	var settings struct {
		Tuning data.Tuning `mapstructure:"tuning"`
	}
	if err := viper.Unmarshal(&settings); err != nil {
		return data.Tuning{}, fmt.Errorf("error decoding tuning: %w", err)
	}
	if err := settings.Tuning.Validate(); err != nil {
		return data.Tuning{}, err
	}
	return settings.Tuning, nil
}

// GetStoreConfig returns the save store settings
func GetStoreConfig() StoreConfig {
	return StoreConfig{
		Type: viper.GetString("store.type"),
		File: FileStoreConfig{
			Path: viper.GetString("store.file.path"),
		},
		SQLite: SQLiteStoreConfig{
			Path: viper.GetString("store.sqlite.path"),
		},
	}
}

// GetWindowConfig returns the desktop window settings
func GetWindowConfig() WindowConfig {
	scale := viper.GetInt("window.scale")
	if scale < 1 {
		scale = 1
	}
	return WindowConfig{
		Title: viper.GetString("window.title"),
		Scale: scale,
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}
