package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// Visual characters for rendering
const (
	SnowChar     = '▀'
	EarthChar    = '▒'
	IceChar      = '▬'
	CrateChar    = '▣'
	FinishChar   = '┊'
	TreeChar     = '▲'
	TrunkChar    = '█'
	PlayerBody   = '█'
	PlayerHead   = '●'
	hudRows      = 1
	lowTimeAlert = 10 // seconds left when the timer turns alert-colored
	treeWidth    = 150
	treeHeight   = 260
)

var legFrames = []rune{'╱', '│', '╲', '│'}

var toolGlyphs = map[level.CollectibleKind]rune{
	level.KindScrewdriver: '/',
	level.KindWrench:      '%',
	level.KindHammer:      'T',
	level.KindNut:         'o',
	level.KindScrew:       '§',
}

// viewport maps world coordinates onto screen cells below the HUD.
type viewport struct {
	camX   float64
	scaleX float64 // world units per column
	scaleY float64 // world units per row
	cols   int
	rows   int
}

func newViewport(dst *core.Screen, camX, worldW, worldH float64) viewport {
	cols := core.Max(dst.Width(), 1)
	rows := core.Max(dst.Height()-hudRows, 1)
	return viewport{
		camX:   camX,
		scaleX: worldW / float64(cols),
		scaleY: worldH / float64(rows),
		cols:   cols,
		rows:   rows,
	}
}

func (v viewport) col(wx float64) int {
	return int(math.Floor((wx - v.camX) / v.scaleX))
}

func (v viewport) row(wy float64) int {
	return hudRows + int(math.Floor(wy/v.scaleY))
}

// cells returns the screen area covered by r, at least one cell in each direction.
func (v viewport) cells(r core.Rect) (x, y, w, h int) {
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1 := int(math.Ceil((r.Right() - v.camX) / v.scaleX))
	y1 := hudRows + int(math.Ceil(r.Bottom()/v.scaleY))
	return x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1)
}

func (v viewport) visible(r core.Rect) bool {
	return r.Right() >= v.camX && r.X <= v.camX+v.scaleX*float64(v.cols)
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "Level failed to load"
		if g.err != nil {
			msg = g.err.Error()
		}
		drawMessage(dst, "ERROR", msg, "Press Q to quit")
		return
	}

	cfg := g.session.Config()
	lvl := g.session.Level()
	v := newViewport(dst, g.snap.CameraX, cfg.Viewport.Width, cfg.Viewport.Height)

	g.drawTree(dst, v, lvl, cfg.Viewport.Height)
	g.drawFinish(dst, v, lvl)
	drawPlatforms(dst, v, lvl.Platforms)
	drawObstacles(dst, v, lvl.Obstacles)
	g.drawTools(dst, v, lvl.Collectibles)
	g.drawPlayer(dst, v)
	g.drawHUD(dst)

	switch g.snap.State {
	case sim.StateStart:
		drawMessage(dst, g.Title(), "←/→ or A/D to walk, SPACE to jump", "Press ENTER to start")
	case sim.StateWin:
		out, _ := g.session.Outcome()
		drawMessage(dst, "YOU MADE IT!",
			fmt.Sprintf("Tools: %d/%d  |  Time: %ds", out.Collected, out.Total, out.Elapsed),
			"Press R to play again")
	case sim.StateGameOver:
		reason := "Time's up!"
		if g.snap.Reason == sim.ReasonFellIntoPit {
			reason = "You fell into a pit!"
		}
		drawMessage(dst, "GAME OVER", reason, "Press R to restart")
	}
}

func drawPlatforms(dst *core.Screen, v viewport, platforms []level.Platform) {
	for _, p := range platforms {
		if !v.visible(p.Rect) {
			continue
		}
		x, y, w, h := v.cells(p.Rect)
		if p.Kind == level.PlatformFloating {
			dst.FillRect(x, y, w, h, IceChar, core.ColorIce)
			continue
		}
		dst.FillRect(x, y, w, h, EarthChar, core.ColorEarth)
		dst.DrawHLine(x, y, w, SnowChar, core.ColorSnow)
	}
}

func drawObstacles(dst *core.Screen, v viewport, obstacles []level.Obstacle) {
	for _, o := range obstacles {
		if !v.visible(o.Rect) {
			continue
		}
		x, y, w, h := v.cells(o.Rect)
		dst.FillRect(x, y, w, h, CrateChar, core.ColorCrate)
	}
}

func (g *Game) drawTools(dst *core.Screen, v viewport, items []level.Collectible) {
	for _, c := range items {
		if c.Collected || !v.visible(c.Rect) {
			continue
		}
		cx, cy := c.Rect.Center()
		cy += math.Sin(float64(g.snap.Ticks)/18+c.FloatPhase) * 5
		glyph, ok := toolGlyphs[c.Kind]
		if !ok {
			glyph = '?'
		}
		dst.SetColor(v.col(cx), v.row(cy), glyph, core.ColorTool)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	a := g.snap.Actor
	x, y, w, h := v.cells(a.Rect())

	dst.FillRect(x, y, w, h, PlayerBody, core.ColorPlayer)

	headX := x + w/2
	if a.Facing > 0 && w > 1 {
		headX = x + w - 1
	} else if a.Facing < 0 {
		headX = x
	}
	dst.SetColor(headX, y, PlayerHead, core.ColorPlayer)

	if h > 1 {
		legs := legFrames[0]
		if a.Walking && a.OnGround {
			legs = legFrames[a.WalkFrame%len(legFrames)]
		}
		dst.DrawHLine(x, y+h-1, w, legs, core.ColorPlayer)
	}
}

func (g *Game) drawFinish(dst *core.Screen, v viewport, lvl *level.Level) {
	col := v.col(lvl.FinishX)
	if col < 0 || col >= v.cols {
		return
	}
	dst.DrawVLine(col, hudRows, v.rows, FinishChar, core.ColorFinish)
	dst.DrawTextColor(col+1, hudRows, "FINISH", core.ColorFinish)
}

func (g *Game) drawTree(dst *core.Screen, v viewport, lvl *level.Level, floor float64) {
	ground := surfaceAt(lvl, lvl.TreeX+treeWidth/2, floor)
	r := core.NewRect(lvl.TreeX, ground-treeHeight, treeWidth, treeHeight)
	if !v.visible(r) {
		return
	}

	x, y, w, h := v.cells(r)
	crown := core.Max(h-1, 1)
	for i := 0; i < crown; i++ {
		rowW := core.Max(w*(i+1)/crown, 1)
		dst.DrawHLine(x+(w-rowW)/2, y+i, rowW, TreeChar, core.ColorTree)
	}
	if h > 1 {
		dst.SetColor(x+w/2, y+h-1, TrunkChar, core.ColorEarth)
	}
	dst.SetColor(x+w/2, y, '★', core.ColorTool)
}

// surfaceAt returns the top of the highest ground platform under x,
// or floor when there is none.
func surfaceAt(lvl *level.Level, x, floor float64) float64 {
	top := math.Inf(1)
	for _, p := range lvl.Platforms {
		if p.Kind == level.PlatformGround && p.Rect.Contains(x, p.Rect.Y) && p.Rect.Y < top {
			top = p.Rect.Y
		}
	}
	if math.IsInf(top, 1) {
		return floor
	}
	return top
}

func (g *Game) drawHUD(dst *core.Screen) {
	timeColor := core.ColorHUD
	if g.snap.Seconds() <= lowTimeAlert {
		timeColor = core.ColorHUDAlert
	}

	timeText := fmt.Sprintf(" TIME %3ds ", g.snap.Seconds())
	dst.DrawTextColor(1, 0, timeText, timeColor)

	toolsText := fmt.Sprintf(" TOOLS %d/%d ", g.snap.Collected, g.snap.Total)
	dst.DrawTextColor(1+len(timeText), 0, toolsText, core.ColorTool)

	title := " " + g.Title() + " "
	dst.DrawTextColor(dst.Width()-len([]rune(title))-1, 0, title, core.ColorHUD)
}

// drawMessage draws a centered message box.
func drawMessage(dst *core.Screen, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}

	boxW := width + 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
