// Package game wires the run session, the save store and the screens into an ebiten.Game.
package game

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/golangdaddy/cutup/pkg/session"
	"github.com/golangdaddy/cutup/pkg/store"
	"github.com/golangdaddy/cutup/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// recentRunCount is how many past runs the game over screen lists
const recentRunCount = 5

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	ctx           context.Context
	store         store.Store
	save          *profile.SaveProfile
	tuning        data.Tuning
	logger        zerolog.Logger
	rng           *rand.Rand
	currentScreen Screen
}

// NewGame creates a new game instance on a loaded profile
func NewGame(ctx context.Context, st store.Store, save *profile.SaveProfile, t data.Tuning, logger zerolog.Logger) *Game {
	game := &Game{
		ctx:    ctx,
		store:  st,
		save:   save,
		tuning: t,
		logger: logger,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
	}
	game.showTitle()
	return game
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(g.tuning.GameWidth), int(g.tuning.GameHeight)
}

// Profile returns the live save profile
func (g *Game) Profile() *profile.SaveProfile {
	return g.save
}

// Save persists the profile
func (g *Game) Save() error {
	return g.store.Save(g.ctx, g.save)
}

func (g *Game) showTitle() {
	g.currentScreen = ui.NewTitleScreen(g.save.HighScore, g.showMenu)
}

func (g *Game) showMenu() {
	g.currentScreen = ui.NewMenuScreen(g.save.Money, g.save.TotalRuns, g.showGarage, func() {
		g.logger.Info().Int("money", g.save.Money).Int("totalRuns", g.save.TotalRuns).Msg("Profile reset")
		g.save = profile.Default()
		g.persist()
		g.showGarage()
	})
}

func (g *Game) showGarage() {
	g.currentScreen = ui.NewGarageScreen(g.save, g.startRun, g.showShop, g.persist, g.showTitle)
}

func (g *Game) showShop(vehicleID string) {
	g.currentScreen = ui.NewShopScreen(g.save, vehicleID, g.persist, g.showGarage)
}

// startRun begins a run in the selected vehicle
func (g *Game) startRun() {
	seed := g.rng.Uint64()
	s, err := session.New(g.save, g.tuning,
		session.WithRand(rand.New(rand.NewPCG(seed, seed>>1))),
		session.WithLogger(g.logger),
	)
	if err != nil {
		g.logger.Error().Err(err).Str("vehicle", g.save.SelectedVehicleID).Msg("Failed to start run")
		g.showGarage()
		return
	}
	g.currentScreen = NewGameplayScreen(s, seed, g.finishRun)
}

// finishRun records a finished run and shows its summary
func (g *Game) finishRun(result session.Result) {
	if err := g.store.RecordRun(g.ctx, store.NewRunRecord(result, time.Now())); err != nil {
		g.logger.Error().Err(err).Msg("Failed to record run")
	}
	g.persist()

	recent, err := g.store.RecentRuns(g.ctx, recentRunCount)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Failed to read run history")
	}
	g.currentScreen = ui.NewGameOverScreen(result, g.save.Money, recent, g.showGarage, g.startRun)
}

// persist saves the profile, logging failures
func (g *Game) persist() {
	if err := g.Save(); err != nil {
		g.logger.Error().Err(err).Msg("Failed to save profile")
	}
}
