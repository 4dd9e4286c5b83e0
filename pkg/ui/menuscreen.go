package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Menu options
const (
	MenuContinue = iota
	MenuNewGame
)

// MenuScreen offers to continue the saved profile or start over
type MenuScreen struct {
	selectedOption int
	confirmReset   bool
	money          int
	totalRuns      int
	onContinue     func() // Callback to keep the loaded profile
	onNewGame      func() // Callback to replace it with a fresh one
}

// NewMenuScreen creates a menu describing the loaded profile
func NewMenuScreen(money, totalRuns int, onContinue, onNewGame func()) *MenuScreen {
	return &MenuScreen{
		selectedOption: MenuContinue,
		money:          money,
		totalRuns:      totalRuns,
		onContinue:     onContinue,
		onNewGame:      onNewGame,
	}
}

// Update handles input for the menu screen
func (ms *MenuScreen) Update() error {
	if ms.confirmReset {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyY):
			ms.confirmReset = false
			if ms.onNewGame != nil {
				ms.onNewGame()
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			ms.confirmReset = false
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		ms.selectedOption = 1 - ms.selectedOption
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if ms.selectedOption == MenuContinue {
			if ms.onContinue != nil {
				ms.onContinue()
			}
			return nil
		}
		// A fresh profile has nothing to lose
		if ms.totalRuns == 0 && ms.money == 0 {
			if ms.onNewGame != nil {
				ms.onNewGame()
			}
			return nil
		}
		ms.confirmReset = true
	}
	return nil
}

// Draw renders the menu screen
func (ms *MenuScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(ColorBackground)

	centerX := float64(width) / 2
	DrawText(screen, "CUT UP", centerX, float64(height)/5, 64, ColorGold)

	buttonWidth := 260.0
	buttonHeight := 50.0
	optionY := float64(height) / 2
	optionSpacing := 80.0
	buttonX := centerX - buttonWidth/2

	labels := []string{"Continue", "New Game"}
	for i, label := range labels {
		bg, fg := ColorPanel, ColorText
		if ms.selectedOption == i {
			bg, fg = ColorHighlight, ColorTextBright
		}
		DrawButton(screen, label, buttonX, optionY+float64(i)*optionSpacing, buttonWidth, buttonHeight, bg, fg)
	}

	summary := fmt.Sprintf("$%d  |  %d runs", ms.money, ms.totalRuns)
	DrawText(screen, summary, centerX, optionY-50, 18, ColorMoney)

	if ms.confirmReset {
		FillRect(screen, 20, float64(height)/2-60, float64(width)-40, 120, ColorPanel)
		StrokeRect(screen, 20, float64(height)/2-60, float64(width)-40, 120, 2, ColorError)
		DrawText(screen, "Erase your garage and money?", centerX, float64(height)/2-20, 18, ColorText)
		DrawText(screen, "Y: Erase   N: Keep", centerX, float64(height)/2+20, 18, ColorError)
		return
	}

	DrawText(screen, "Arrows: Navigate | Enter: Select", centerX, float64(height)-50, 14, ColorMuted)
}
