package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// Board layout: two HUD rows, the framed grid, one help row.
const (
	hudRows     = 2
	footerRows  = 1
	maxCellW    = 4
	defaultHelp = "arrows/wasd: move  p/space: pause  esc: menu  q: quit"
)

// Glyphs for board cells.
const (
	glyphEmpty    = '·'
	glyphHead     = '█'
	glyphBody     = '▓'
	glyphObstacle = '▒'
	glyphFood     = '●'
)

// Particle glyphs, brightest first, picked by remaining life.
var glyphSparks = []rune{'*', '+', '.'}

// layout places the grid on a screen of the given size.
type layout struct {
	cellW    int
	origin   core.Point // top-left cell of the grid, inside the frame
	frame    core.Rect
	tooSmall bool
}

// cellWidth turns the ui scale into columns per cell. Terminal cells are
// roughly twice as tall as wide, so scale 1 draws two columns.
func cellWidth(scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	return core.Clamp(int(math.Round(2*scale)), 1, maxCellW)
}

func computeLayout(screenW, screenH, gridW, gridH int, scale float64) layout {
	cw := cellWidth(scale)
	for cw > 1 && gridW*cw+2 > screenW {
		cw--
	}
	frameW, frameH := gridW*cw+2, gridH+2
	l := layout{cellW: cw}
	if frameW > screenW || frameH+hudRows+footerRows > screenH {
		l.tooSmall = true
		return l
	}
	fx := (screenW - frameW) / 2
	fy := hudRows + (screenH-hudRows-footerRows-frameH)/2
	l.frame = core.NewRect(fx, fy, frameW, frameH)
	l.origin = core.Point{X: fx + 1, Y: fy + 1}
	return l
}

// DrawSession renders the session into dst: HUD, grid and any overlay.
func DrawSession(dst *core.Screen, s *session.Session) {
	dst.Clear()
	st := s.State()
	g := s.Data().Graphics
	l := computeLayout(dst.Width(), dst.Height(), st.Width, st.Height, g.UIScale)

	drawHUD(dst, s)
	if l.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorAccent)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", st.Width+2, st.Height+hudRows+footerRows+2), core.ColorText)
		return
	}

	if s.Shaking() {
		l.frame.X++
		l.origin.X++
	}
	frameColor := core.ColorGrid
	if s.Flashing() {
		frameColor = core.ColorAccent
	}
	dst.DrawBox(l.frame, frameColor)

	for y := range st.Height {
		for x := range st.Width {
			l.cell(dst, core.Point{X: x, Y: y}, glyphEmpty, core.ColorGrid)
		}
	}
	for p := range st.Obstacles {
		l.cell(dst, p, glyphObstacle, core.ColorObstacle)
	}
	if st.Food.In(st.Width, st.Height) {
		l.cell(dst, st.Food, glyphFood, core.ColorFood)
	}
	if sp := s.PowerUps().Spawned(); sp != nil {
		l.cell(dst, sp.Pos, sp.Type.Glyph(), core.ColorPowerUp)
	}
	for i := len(st.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			l.cell(dst, st.Snake[i], glyphHead, core.ColorSnakeHead)
		} else {
			l.cell(dst, st.Snake[i], glyphBody, core.ColorSnakeBody)
		}
	}
	drawParticles(dst, s, l)

	drawOverlay(dst, s, l)
	dst.DrawTextCentered(dst.Height()-1, defaultHelp, core.ColorGrid)
}

// cell fills one grid cell. Only the first column carries the glyph of a
// pickup so wide cells stay readable.
func (l layout) cell(dst *core.Screen, p core.Point, r rune, c core.Color) {
	x := l.origin.X + p.X*l.cellW
	y := l.origin.Y + p.Y
	for i := range l.cellW {
		g := r
		if i > 0 && (r == glyphEmpty || c == core.ColorPowerUp || r == glyphFood) {
			g = ' '
		}
		dst.SetColor(x+i, y, g, c)
	}
}

// drawParticles puts one spark per live particle inside the grid.
func drawParticles(dst *core.Screen, s *session.Session, l layout) {
	st := s.State()
	grid := core.NewRect(l.origin.X, l.origin.Y, st.Width*l.cellW, st.Height)
	for _, p := range s.Particles() {
		x := l.origin.X + int(math.Floor(p.X*float64(l.cellW)))
		y := l.origin.Y + p.Cell().Y
		if !grid.Contains(x, y) {
			continue
		}
		dst.SetColor(x, y, sparkGlyph(p.Life), p.Color)
	}
}

func sparkGlyph(life float64) rune {
	switch {
	case life > 0.3:
		return glyphSparks[0]
	case life > 0.15:
		return glyphSparks[1]
	}
	return glyphSparks[2]
}

func drawHUD(dst *core.Screen, s *session.Session) {
	st := s.State()
	left := fmt.Sprintf(" Score %d  Best %d  Stage %d  Speed %.1f",
		st.Score, s.BestScore(), s.Stage(), game.EffectiveRate(st, s.PowerUps()))
	dst.DrawText(0, 0, left, core.ColorText)

	key := fmt.Sprintf("%s|%s ", st.Difficulty, st.MapMode)
	if st.Obstacled {
		key = fmt.Sprintf("%s|%s|obs ", st.Difficulty, st.MapMode)
	}
	dst.DrawText(dst.Width()-len(key), 0, key, core.ColorAccent)

	if labels := s.PowerUps().ActiveLabels(); len(labels) > 0 {
		dst.DrawText(1, 1, strings.Join(labels, "  "), core.ColorPowerUp)
	}
}

func drawOverlay(dst *core.Screen, s *session.Session, l layout) {
	st := s.State()
	switch {
	case s.OnboardingVisible():
		panel(dst, l,
			"How to play",
			"Arrows or WASD steer the snake",
			"Eat food to grow, avoid walls and yourself",
			"Pickups: S shield  ~ slow  2 double  % phase",
			"P or Space pauses",
			"",
			"Enter to start",
		)
	case st.Status == game.StatusGameOver:
		drawGameOver(dst, s, l)
	case st.Status == game.StatusPaused:
		panel(dst, l, "Paused", "P to continue  Esc for menu")
	case s.Countdown() > 0:
		panel(dst, l, fmt.Sprintf("%d", int(math.Ceil(s.Countdown()))))
	default:
		if text, ok := s.Banner(); ok {
			dst.DrawTextCentered(l.frame.Y, " "+text+" ", core.ColorSelected)
		}
	}
}

func drawGameOver(dst *core.Screen, s *session.Session, l layout) {
	r := s.Result()
	if r == nil {
		panel(dst, l, "Game Over")
		return
	}
	lines := []string{"Game Over", deathText(r.DeathReason), ""}
	score := fmt.Sprintf("Score %d", r.Score)
	if r.NewHighScore {
		score += "  NEW BEST!"
	}
	lines = append(lines,
		score,
		fmt.Sprintf("Stage %d  Food %d  Time %.1fs", r.Stage, r.FoodEaten, r.RunSeconds),
	)
	if len(r.Unlocked) > 0 {
		lines = append(lines, "Unlocked: "+strings.Join(r.Unlocked, ", "))
	}
	lines = append(lines, "", "R to play again  Esc for menu")
	panel(dst, l, lines...)
}

func deathText(r game.DeathReason) string {
	switch r {
	case game.DeathWall:
		return "Hit the wall"
	case game.DeathObstacle:
		return "Hit an obstacle"
	case game.DeathSelfCollision:
		return "Bit your own tail"
	case game.DeathBoardFull:
		return "The board is full!"
	}
	return ""
}

// panel draws a framed message box centred on the grid.
func panel(dst *core.Screen, l layout, lines ...string) {
	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(line)))
	}
	box := core.NewRect(0, 0, w+4, len(lines)+2)
	box.X = l.frame.X + (l.frame.W-box.W)/2
	box.Y = l.frame.Y + (l.frame.H-box.H)/2
	dst.DrawRect(box, ' ', core.ColorText)
	dst.DrawBox(box, core.ColorAccent)
	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line)))/2
		c := core.ColorText
		if i == 0 {
			c = core.ColorSelected
		}
		dst.DrawText(x, box.Y+1+i, line, c)
	}
}
