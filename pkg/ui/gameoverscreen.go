package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/golangdaddy/cutup/pkg/session"
	"github.com/golangdaddy/cutup/pkg/store"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOverScreen summarizes a finished run
type GameOverScreen struct {
	result    session.Result
	wallet    int
	recent    []store.RunRecord // Newest first, including this run
	shownAt   time.Time
	onGarage  func()
	onRestart func()
}

// minShowTime keeps a held key from skipping the summary
const minShowTime = 600 * time.Millisecond

// NewGameOverScreen creates the summary for a run. wallet is the balance after the run was paid out.
func NewGameOverScreen(result session.Result, wallet int, recent []store.RunRecord, onGarage, onRestart func()) *GameOverScreen {
	return &GameOverScreen{
		result:    result,
		wallet:    wallet,
		recent:    recent,
		shownAt:   time.Now(),
		onGarage:  onGarage,
		onRestart: onRestart,
	}
}

// Update handles input for the game over screen
func (gs *GameOverScreen) Update() error {
	if time.Since(gs.shownAt) < minShowTime {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if gs.onRestart != nil {
			gs.onRestart()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		inpututil.IsKeyJustPressed(ebiten.KeySpace),
		inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if gs.onGarage != nil {
			gs.onGarage()
		}
	}
	return nil
}

// Draw renders the game over screen
func (gs *GameOverScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(ColorBackground)

	centerX := float64(width) / 2
	heading := "RUN OVER"
	headingColor := color.RGBA{180, 180, 200, 255}
	if gs.result.Crashed {
		heading = "CRASHED"
		headingColor = color.RGBA{255, 80, 80, 255}
	}
	DrawText(screen, heading, centerX, 90, 48, headingColor)

	if gs.result.NewHighScore {
		elapsed := time.Since(gs.shownAt).Seconds()
		pulse := 1.0 + 0.08*math.Sin(elapsed*6)
		DrawText(screen, "NEW HIGH SCORE!", centerX, 150, 24*pulse, ColorGold)
	}

	DrawText(screen, fmt.Sprintf("+$%d", gs.result.Money), centerX, 220, 56, ColorMoney)

	lines := []struct {
		label string
		value string
	}{
		{"Close passes", fmt.Sprintf("%d", gs.result.ClosePasses)},
		{"Best combo", fmt.Sprintf("x%d", gs.result.MaxCombo)},
		{"Speed bonus", fmt.Sprintf("$%d", gs.result.SpeedBonus)},
		{"Time", formatDuration(gs.result.Duration)},
		{"Wallet", fmt.Sprintf("$%d", gs.wallet)},
	}
	y := 300.0
	for _, line := range lines {
		DrawTextAt(screen, line.label, 60, y, 18, ColorText)
		DrawTextAt(screen, line.value, float64(width)-160, y, 18, ColorTextBright)
		y += 36
	}

	if len(gs.recent) > 0 {
		y += 10
		DrawTextAt(screen, "RECENT RUNS", 60, y, 14, ColorGold)
		y += 24
		for _, run := range gs.recent {
			DrawTextAt(screen, fmt.Sprintf("%-14s %5s  x%d", run.VehicleID, formatDuration(run.Duration), run.MaxCombo), 60, y, 12, ColorMuted)
			DrawTextAt(screen, fmt.Sprintf("$%d", run.Money), float64(width)-160, y, 12, ColorMoney)
			y += 20
		}
	}

	if time.Since(gs.shownAt) >= minShowTime {
		DrawText(screen, "Enter: Garage | R: Drive again", centerX, float64(height)-60, 14, ColorMuted)
	}
}

// formatDuration renders a run length as m:ss
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
