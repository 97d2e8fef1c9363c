package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// TreeStopDistance is how far short of the tree autowalk stops and the run is won.
const TreeStopDistance = 50

// StepReport tells the session what happened during one physics step.
type StepReport struct {
	Picked        int  // collectibles picked up this step
	Fell          bool // actor dropped below the viewport: fatal
	Won           bool // autowalk reached the tree; nothing else ran this step
	Blocked       bool // an obstacle stopped horizontal motion
	FinishReached bool // autowalk engaged this step
}

// Step advances the actor by one nominal tick. Velocities are per tick, so
// the step does not scale by elapsed time.
func Step(a *Actor, lvl *level.Level, in core.Intent, cfg config.PlatformerConfig) StepReport {
	var rep StepReport
	ph := cfg.Physics

	if a.AutoWalk {
		a.VX = ph.MoveSpeed * ph.AutoWalkFactor
		a.Facing = 1
		a.Walking = true

		if a.X >= lvl.TreeX-TreeStopDistance {
			a.VX = 0
			a.Walking = false
			rep.Won = true
			return rep
		}
	} else {
		applyIntent(a, in, ph)
	}

	a.VY += ph.Gravity
	a.X += a.VX
	a.Y += a.VY
	if a.X < 0 {
		a.X = 0
	}

	a.OnGround = false
	landOnPlatforms(a, lvl.Platforms, ph.LandingTolerance)
	rep.Blocked = resolveObstacles(a, lvl.Obstacles, cfg.Actor.ProbeInset)
	if a.X < 0 {
		a.X = 0
	}

	rep.Picked = pickUp(a, lvl.Collectibles)

	if a.Y > cfg.Viewport.Height+cfg.Viewport.FallMargin {
		rep.Fell = true
	}

	if !a.AutoWalk && a.X >= lvl.FinishX {
		a.AutoWalk = true
		rep.FinishReached = true
	}

	animate(a, cfg.Animation)
	return rep
}

// applyIntent turns input into velocity. Left wins over right.
func applyIntent(a *Actor, in core.Intent, ph config.Physics) {
	switch {
	case in.MoveLeft:
		a.VX = -ph.MoveSpeed
		a.Facing = -1
		a.Walking = true
	case in.MoveRight:
		a.VX = ph.MoveSpeed
		a.Facing = 1
		a.Walking = true
	default:
		a.VX = 0
		a.Walking = false
	}

	if in.Jump && a.OnGround {
		a.VY = ph.JumpImpulse
		a.OnGround = false
	}
}

// landOnPlatforms snaps a falling actor onto the highest platform it
// crossed this step. Platforms never block sideways motion.
func landOnPlatforms(a *Actor, platforms []level.Platform, tolerance float64) {
	if a.VY <= 0 {
		return
	}

	body := a.Rect()
	prevBottom := a.Bottom() - a.VY
	landed := false
	top := math.Inf(1)

	for _, p := range platforms {
		if !body.Overlaps(p.Rect) {
			continue
		}
		if prevBottom <= p.Rect.Y+tolerance && p.Rect.Y < top {
			top = p.Rect.Y
			landed = true
		}
	}

	if landed {
		a.Y = top - a.H
		a.VY = 0
		a.OnGround = true
	}
}

// resolveObstacles pushes the actor out of solid blocks, one block at a
// time in level order. The probe is narrower than the actor so that
// brushing a block's corner does not stop a run.
func resolveObstacles(a *Actor, obstacles []level.Obstacle, inset float64) bool {
	blocked := false

	for _, ob := range obstacles {
		o := ob.Rect
		if !a.Rect().Inset(inset).Overlaps(o) {
			continue
		}

		overlapLeft := (a.X + a.W - inset) - o.X
		overlapRight := o.Right() - (a.X + inset)
		overlapTop := a.Bottom() - o.Y
		overlapBottom := o.Bottom() - a.Y

		minX := math.Min(overlapLeft, overlapRight)
		minY := math.Min(overlapTop, overlapBottom)

		// Equal overlaps resolve horizontally.
		if minY < minX {
			switch {
			case overlapTop < overlapBottom && a.VY >= 0:
				a.Y = o.Y - a.H
				a.VY = 0
				a.OnGround = true
			case overlapBottom < overlapTop && a.VY < 0:
				a.Y = o.Bottom()
				a.VY = 0
			}
			continue
		}

		if overlapLeft < overlapRight {
			a.X = o.X - a.W + inset
		} else {
			a.X = o.Right() - inset
		}
		a.VX = 0
		blocked = true
	}

	return blocked
}

// pickUp flags every untouched collectible under the actor.
func pickUp(a *Actor, items []level.Collectible) int {
	body := a.Rect()
	picked := 0
	for i := range items {
		if items[i].Collected || !body.Overlaps(items[i].Rect) {
			continue
		}
		items[i].Collected = true
		picked++
	}
	return picked
}

// animate advances the cosmetic walk cycle.
func animate(a *Actor, anim config.Animation) {
	if !a.Walking {
		a.WalkFrame = 0
		return
	}
	a.WalkTimer++
	if a.WalkTimer > anim.WalkTicks {
		a.WalkTimer = 0
		a.WalkFrame = (a.WalkFrame + 1) % anim.WalkFrames
	}
}
