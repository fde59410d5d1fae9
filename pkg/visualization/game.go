// Package visualization renders an arena with ebiten: bodies, robot
// headings, sensor cones colored by their current reading, and a small
// control panel. It is a host on top of the engine; all world state
// lives in the arena.
package visualization

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/arena"
	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/ui"
)

var (
	colorBackground = color.RGBA{R: 12, G: 12, B: 28, A: 255}
	colorObstacle   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	colorRobot      = color.RGBA{R: 70, G: 140, B: 255, A: 255}
	colorHeading    = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	colorConeIdle   = color.RGBA{R: 70, G: 200, B: 120, A: 140}
	colorConeHit    = color.RGBA{R: 255, G: 70, B: 70, A: 220}
)

// Game drives the arena at ebiten's fixed tick rate and draws the last
// committed world state every frame.
type Game struct {
	world *arena.Arena

	panel           *ui.Panel
	widgetTimeScale *ui.Slider
	widgetShowCones *ui.Checkbox
	widgetPaused    *ui.Checkbox

	ticks int

	// Rolling averages (exponential) in milliseconds, for the stats
	// overlay.
	updateAvg float64
	drawAvg   float64
}

// NewGame wraps a built arena in an ebiten game.
func NewGame(world *arena.Arena) *Game {
	panel := ui.NewPanel(10, 10, 230, 130)
	g := &Game{
		world:           world,
		panel:           panel,
		widgetTimeScale: panel.AddSlider("Time Scale", 0, 5, world.TimeScale()),
		widgetShowCones: panel.AddCheckbox("Show Sensor Cones", true),
		widgetPaused:    panel.AddCheckbox("Pause", false),
	}
	return g
}

// Update advances the simulation by one frame unless paused.
func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	g.world.SetTimeScale(g.widgetTimeScale.Value)

	if !g.widgetPaused.Value {
		g.world.Tick()
		g.ticks++
	}
	return nil
}

// Draw renders the committed world state.
func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(colorBackground)

	for _, b := range g.world.Bodies() {
		switch body := b.(type) {
		case *arena.DifferentialDriveRobot:
			g.drawRobot(screen, body)
		default:
			pose := b.Pose()
			vector.StrokeCircle(screen, float32(pose.X), float32(pose.Y), float32(b.Radius()),
				2, colorObstacle, true)
		}
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nTicks: %d\nUpdate: %.2fms  Draw: %.2fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.ticks, g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.world.Width())-220, 10)
}

func (g *Game) drawRobot(screen *ebiten.Image, r *arena.DifferentialDriveRobot) {
	pose := r.Pose()
	radius := r.Radius()

	vector.FillCircle(screen, float32(pose.X), float32(pose.Y), float32(radius), colorRobot, true)

	// Heading indicator from center to rim.
	tipX := pose.X + math.Cos(pose.Heading)*radius
	tipY := pose.Y + math.Sin(pose.Heading)*radius
	vector.StrokeLine(screen, float32(pose.X), float32(pose.Y), float32(tipX), float32(tipY),
		2, colorHeading, true)

	if g.widgetShowCones.Value {
		for _, s := range r.Sensors() {
			g.drawSensorCone(screen, s)
		}
	}
}

// drawSensorCone draws the two angular extremes of the cone, red when
// the sensor currently reads a detection. Reading here is safe: sensor
// reads are idempotent and never mutate world state.
func (g *Game) drawSensorCone(screen *ebiten.Image, s *arena.InfraredSensor) {
	clr := colorConeIdle
	if s.Read() {
		clr = colorConeHit
	}

	origin := s.WorldPosition()
	facing := s.AbsoluteAngle()
	for _, edge := range []float64{facing - s.HalfViewAngle(), facing + s.HalfViewAngle()} {
		endX := origin.X + math.Cos(edge)*s.MaxRange()
		endY := origin.Y + math.Sin(edge)*s.MaxRange()
		vector.StrokeLine(screen, float32(origin.X), float32(origin.Y), float32(endX), float32(endY),
			1, clr, true)
	}
}

// Layout maps the window to arena coordinates one-to-one.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.world.Width()), int(g.world.Height())
}
