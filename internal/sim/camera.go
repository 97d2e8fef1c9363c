package sim

import "github.com/vovakirdan/tui-platformer/internal/core"

// CameraX returns the viewport's left edge for an actor at actorX.
// The actor sits a third of the way into the viewport; the view never
// leaves [0, levelW-viewportW]. A level narrower than the viewport pins to 0.
func CameraX(actorX, viewportW, levelW float64) float64 {
	return core.ClampF(actorX-viewportW/3, 0, levelW-viewportW)
}
