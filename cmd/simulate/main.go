// Command simulate plays autopilot runs without a window to check the game's balance.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/golangdaddy/cutup/pkg/config"
	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/logging"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/golangdaddy/cutup/pkg/session"
	"github.com/golangdaddy/cutup/pkg/store"
	"github.com/golangdaddy/cutup/pkg/upgrade"
	"github.com/rs/zerolog"
)

var (
	configDir = flag.String("config", ".", "Directory holding "+config.FileName)
	runs      = flag.Int("runs", 20, "Number of runs")
	seed      = flag.Uint64("seed", 1, "Seed for the first run; later runs use seed+i")
	vehicleID = flag.String("vehicle", "", "Vehicle to drive (default: the profile's selection)")
	maxRun    = flag.Duration("max", 5*time.Minute, "Run length cap")
	frame     = flag.Duration("frame", time.Second/60, "Simulated frame length")
	persist   = flag.Bool("save", false, "Load the profile from the store and save results back")
)

func main() {
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		logger := logging.NewConsole("info")
		logger.Error().Err(err).Msg("Failed to load config")
		os.Exit(1)
	}
	logger := logging.NewConsole(config.GetString("logLevel"))

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("Simulation failed")
		os.Exit(1)
	}
}

// run plays the requested runs, logging each one and the totals
func run(logger zerolog.Logger) error {
	tuning, err := config.Tuning()
	if err != nil {
		return fmt.Errorf("invalid tuning: %w", err)
	}

	ctx := context.Background()
	save := profile.Default()

	var st store.Store
	if *persist {
		st, err = store.Open(config.GetStoreConfig(), logger)
		if err != nil {
			return fmt.Errorf("failed to open save store: %w", err)
		}
		defer st.Close()
		if save, err = st.Load(ctx); err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
	}

	if *vehicleID != "" {
		if _, ok := data.Vehicle(*vehicleID); ok && !save.Owns(*vehicleID) && !*persist {
			// a throwaway profile may drive anything
			save.Vehicles[*vehicleID].Owned = true
		}
		if err := upgrade.SelectVehicle(save, *vehicleID); err != nil {
			return fmt.Errorf("cannot drive %q: %w", *vehicleID, err)
		}
	}

	var (
		totalMoney  int
		totalPasses int
		crashes     int
		longest     time.Duration
	)
	for i := 0; i < *runs; i++ {
		runSeed := *seed + uint64(i)
		res, err := simulate(save, tuning, runSeed, logger)
		if err != nil {
			return fmt.Errorf("failed to start run: %w", err)
		}

		totalMoney += res.Money
		totalPasses += res.ClosePasses
		longest = max(longest, res.Duration)
		if res.Crashed {
			crashes++
		}

		logger.Info().
			Int("run", i+1).
			Uint64("seed", runSeed).
			Int("money", res.Money).
			Int("closePasses", res.ClosePasses).
			Int("maxCombo", res.MaxCombo).
			Int("speedBonus", res.SpeedBonus).
			Dur("duration", res.Duration).
			Bool("crashed", res.Crashed).
			Bool("newHighScore", res.NewHighScore).
			Msg("Run")

		if st != nil {
			if err := st.RecordRun(ctx, store.NewRunRecord(res, time.Now())); err != nil {
				logger.Error().Err(err).Msg("Failed to record run")
			}
		}
	}

	if *runs > 0 {
		logger.Info().
			Int("runs", *runs).
			Int("crashes", crashes).
			Int("avgMoney", totalMoney / *runs).
			Float64("avgPasses", float64(totalPasses)/float64(*runs)).
			Dur("longest", longest).
			Int("wallet", save.Money).
			Int("highScore", save.HighScore).
			Msg("Summary")
	}

	if st == nil {
		return nil
	}
	if err := st.Save(ctx, save); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	history, err := st.RecentRuns(ctx, store.MaxHistory)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}
	best := 0
	for _, rec := range history {
		best = max(best, rec.Money)
	}
	logger.Info().Int("storedRuns", len(history)).Int("bestStoredRun", best).Msg("History")
	return nil
}

// simulate drives one run with the autopilot until it crashes or hits the cap
func simulate(save *profile.SaveProfile, t data.Tuning, seed uint64, logger zerolog.Logger) (session.Result, error) {
	s, err := session.New(save, t,
		session.WithRand(rand.New(rand.NewPCG(seed, seed^0x5eed))),
		session.WithLogger(logger.Level(zerolog.WarnLevel)),
	)
	if err != nil {
		return session.Result{}, err
	}

	pilot := session.NewAutopilot()
	for !s.Over() && s.Elapsed() < *maxRun {
		pilot.Drive(s)
		s.Tick(*frame)
	}
	res, _ := s.End()
	return res, nil
}
