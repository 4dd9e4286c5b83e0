package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/golangdaddy/cutup/pkg/background"
	"github.com/golangdaddy/cutup/pkg/session"
	"github.com/golangdaddy/cutup/pkg/ui"
	"github.com/golangdaddy/cutup/pkg/vehicle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MPHPerPixelPerSecond converts scroll speed to the speedometer reading
const MPHPerPixelPerSecond = 0.3

const (
	laneChangeCooldown = 100 * time.Millisecond // Between accepted lane-change presses
	crashDelay         = 1300 * time.Millisecond
	popupLife          = 900 * time.Millisecond
	dashLength         = 40.0
	dashGap            = 40.0
)

var (
	asphaltColor = color.RGBA{45, 45, 55, 255}
	markerColor  = color.RGBA{230, 230, 230, 255}
	crashColor   = color.RGBA{255, 60, 60, 255}
	boostColor   = color.RGBA{255, 255, 0, 255}
	burnColor    = color.RGBA{255, 102, 0, 255}
	coolColor    = color.RGBA{102, 102, 102, 255}
)

// popup is a floating reward label
type popup struct {
	text  string
	x, y  float64
	clr   color.Color
	born  time.Duration
	scale float64
}

// GameplayScreen drives one run and renders it
type GameplayScreen struct {
	session *session.Session
	onEnd   func(session.Result) // Callback once the run is over and the crash has played out

	sprites    *carSprites
	leftVerge  *ebiten.Image
	rightVerge *ebiten.Image
	roadOffset float64

	frame         time.Duration
	nextLaneInput time.Duration
	braking       bool
	paused        bool
	showDebug     bool
	crashTimer    time.Duration
	vergeOffset   float64
	reported      bool
	popups        []popup
}

// NewGameplayScreen creates a gameplay screen for a started session
func NewGameplayScreen(s *session.Session, seed uint64, onEnd func(session.Result)) *GameplayScreen {
	t := s.Tuning()
	roadRight := t.RoadMargin + float64(t.Lanes)*t.LaneWidth
	height := int(math.Ceil(t.GameHeight/(2*background.KerbBand))) * 2 * background.KerbBand

	gs := &GameplayScreen{
		session: s,
		onEnd:   onEnd,
		sprites: newCarSprites(),
		frame:   time.Second / time.Duration(ebiten.TPS()),
	}

	if w := int(t.RoadMargin); w > 0 {
		img := background.NewGenerator(w, height).GenerateVerge(seed, w-1)
		gs.leftVerge = ebiten.NewImageFromImage(img)
	}
	if w := int(t.GameWidth - roadRight); w > 0 {
		img := background.NewGenerator(w, height).GenerateVerge(seed+1, 0)
		gs.rightVerge = ebiten.NewImageFromImage(img)
	}
	return gs
}

// Update advances the run by one frame
func (gs *GameplayScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		gs.showDebug = !gs.showDebug
	}

	if gs.session.Over() {
		gs.finishAfterCrash()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		gs.paused = !gs.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		result, _ := gs.session.End()
		gs.report(result)
		return nil
	}
	if gs.paused {
		return nil
	}

	gs.handleInput()

	events := gs.session.Tick(gs.frame)
	travel := gs.session.Player().Speed * gs.frame.Seconds()
	gs.roadOffset = math.Mod(gs.roadOffset+travel, dashLength+dashGap)
	gs.vergeOffset += travel
	gs.collect(events)
	return nil
}

// handleInput maps the keyboard to session commands
func (gs *GameplayScreen) handleInput() {
	now := gs.session.Elapsed()
	left := inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA)
	right := inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD)

	if left && now >= gs.nextLaneInput {
		gs.session.MoveLeft()
		gs.nextLaneInput = now + laneChangeCooldown
	}
	if right && now >= gs.nextLaneInput {
		gs.session.MoveRight()
		gs.nextLaneInput = now + laneChangeCooldown
	}

	down := ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS)
	switch {
	case down && !gs.braking:
		gs.session.Brake()
		gs.braking = true
	case !down && gs.braking:
		gs.session.ReleaseBrake()
		gs.braking = false
	}

	up := ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeySpace)
	if up && !gs.braking {
		gs.session.Boost()
	}
}

// collect turns run events into floating labels
func (gs *GameplayScreen) collect(events []session.Event) {
	now := gs.session.Elapsed()
	playerX := gs.session.Player().X
	playerY := gs.session.Tuning().PlayerY()

	for _, ev := range events {
		switch ev.Kind {
		case session.EventClosePass:
			label := fmt.Sprintf("+$%d", ev.Amount)
			if ev.Combo > 1 {
				label = fmt.Sprintf("+$%d x%g", ev.Amount, ev.Multiplier)
			}
			gs.popups = append(gs.popups, popup{text: label, x: ev.X, y: ev.Y, clr: ui.ColorMoney, born: now, scale: 18})
			if ev.NewMax {
				gs.popups = append(gs.popups, popup{text: fmt.Sprintf("%d COMBO!", ev.Combo), x: playerX, y: playerY - 80, clr: ui.ColorGold, born: now, scale: 22})
			}
		case session.EventDifficultyUp:
			gs.popups = append(gs.popups, popup{text: "TRAFFIC UP", x: gs.session.Tuning().GameWidth / 2, y: 140, clr: ui.ColorError, born: now, scale: 16})
		}
	}

	kept := gs.popups[:0]
	for _, p := range gs.popups {
		if now-p.born < popupLife {
			kept = append(kept, p)
		}
	}
	gs.popups = kept
}

// finishAfterCrash lets the crash linger before leaving the screen
func (gs *GameplayScreen) finishAfterCrash() {
	if gs.reported {
		return
	}
	gs.crashTimer += gs.frame
	if gs.crashTimer < crashDelay {
		return
	}
	result, _ := gs.session.End()
	gs.report(result)
}

func (gs *GameplayScreen) report(result session.Result) {
	if gs.reported {
		return
	}
	gs.reported = true
	if gs.onEnd != nil {
		gs.onEnd(result)
	}
}

// Draw renders the road, traffic, player and HUD
func (gs *GameplayScreen) Draw(screen *ebiten.Image) {
	t := gs.session.Tuning()
	screen.Fill(asphaltColor)

	gs.drawVerges(screen)
	gs.drawLaneMarkers(screen)

	for _, tc := range gs.session.Traffic() {
		gs.sprites.draw(screen, tc.X, tc.Y, tc.Archetype.Width, tc.Archetype.Height, 0, tc.Archetype.Color)
	}

	p := gs.session.Player()
	gs.sprites.draw(screen, p.X, t.PlayerY(), t.PlayerWidth, t.PlayerHeight, gs.playerAngle(p), gs.session.Vehicle().Color)
	if p.Boosting {
		ui.FillRect(screen, p.X-6, t.PlayerY()+t.PlayerHeight/2, 12, 10+6*math.Sin(gs.session.Elapsed().Seconds()*40), burnColor)
	}

	now := gs.session.Elapsed()
	for _, pp := range gs.popups {
		age := float64(now-pp.born) / float64(popupLife)
		ui.DrawText(screen, pp.text, pp.x, pp.y-40*age, pp.scale, pp.clr)
	}

	gs.drawHUD(screen)

	if gs.session.Crashed() {
		ui.DrawText(screen, "CRASH!", t.GameWidth/2, t.GameHeight/2, 56, crashColor)
	} else if gs.paused {
		ui.DrawText(screen, "PAUSED", t.GameWidth/2, t.GameHeight/2, 48, ui.ColorText)
	}

	if gs.showDebug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  cars %d  diff %.1f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), len(gs.session.Traffic()), gs.session.Difficulty()), 4, int(t.GameHeight)-18)
	}
}

// drawVerges scrolls the roadside textures with the road
func (gs *GameplayScreen) drawVerges(screen *ebiten.Image) {
	t := gs.session.Tuning()
	roadRight := t.RoadMargin + float64(t.Lanes)*t.LaneWidth

	for _, v := range []struct {
		img *ebiten.Image
		x   float64
	}{{gs.leftVerge, 0}, {gs.rightVerge, roadRight}} {
		if v.img == nil {
			continue
		}
		h := float64(v.img.Bounds().Dy())
		offset := math.Mod(gs.vergeOffset, h)
		for y := offset - h; y < t.GameHeight; y += h {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(v.x, y)
			screen.DrawImage(v.img, op)
		}
	}
}

// drawLaneMarkers draws the dashed lines between lanes
func (gs *GameplayScreen) drawLaneMarkers(screen *ebiten.Image) {
	t := gs.session.Tuning()
	for lane := 1; lane < t.Lanes; lane++ {
		x := t.RoadMargin + float64(lane)*t.LaneWidth
		for y := gs.roadOffset - dashLength; y < t.GameHeight; y += dashLength + dashGap {
			ui.FillRect(screen, x-2, y, 4, dashLength, markerColor)
		}
	}
}

// playerAngle tilts the car into lane changes and spins it after a crash
func (gs *GameplayScreen) playerAngle(p vehicle.State) float64 {
	if gs.session.Crashed() {
		return 15 + 120*gs.crashTimer.Seconds()
	}
	if !p.ChangingLane {
		return 0
	}
	if p.X > gs.session.Tuning().LaneCenterX(p.TargetLane) {
		return -8
	}
	return 8
}

// drawHUD draws run money, combo, speed and the boost meter
func (gs *GameplayScreen) drawHUD(screen *ebiten.Image) {
	t := gs.session.Tuning()
	score := gs.session.Scoring()
	p := gs.session.Player()

	ui.FillRect(screen, 0, 0, t.GameWidth, 70, color.RGBA{0, 0, 0, 140})
	ui.DrawTextAt(screen, fmt.Sprintf("$%d", score.RunMoney()), 14, 12, 28, ui.ColorMoney)

	if combo := score.Combo(); combo > 0 {
		ui.DrawText(screen, fmt.Sprintf("x%g COMBO!", score.Multiplier()), t.GameWidth/2, 30, 20, ui.ColorGold)
		remaining := float64(score.ComboRemaining()) / float64(t.ComboTimeout)
		ui.DrawMeter(screen, t.GameWidth/2-50, 48, 100, 8, remaining, ui.ColorGold)
	}

	mph := int(math.Floor(p.Speed * MPHPerPixelPerSecond))
	speedText := fmt.Sprintf("%d MPH", mph)
	ui.DrawTextAt(screen, speedText, t.GameWidth-100, 12, 18, color.RGBA{0, 245, 255, 255})

	fill := boostColor
	switch {
	case p.Boosting:
		fill = burnColor
	case p.CoolingDown:
		fill = coolColor
	}
	ui.DrawMeter(screen, t.GameWidth-100, 40, 80, 12, gs.session.BoostCharge(), fill)
}
