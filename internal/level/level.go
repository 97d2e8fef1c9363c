// Package level describes the static world a run takes place in: ground
// segments, floating platforms, solid obstacles, collectibles and the
// finish/tree triggers. Levels are built from a declarative Layout.
package level

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Layout errors. Build wraps these with details.
var (
	ErrNoGround           = errors.New("level has no ground segments")
	ErrBadGeometry        = errors.New("non-positive level dimension")
	ErrBadFinish          = errors.New("finish and tree must satisfy 0 < finish_x <= tree_x <= width")
	ErrUnknownTemplate    = errors.New("unknown obstacle template")
	ErrUnknownCollectible = errors.New("unknown collectible kind")
)

// PlatformKind distinguishes ground from floating platforms.
// Collision treats both the same.
type PlatformKind int

const (
	PlatformGround PlatformKind = iota
	PlatformFloating
)

// String returns the layout name of the kind.
func (k PlatformKind) String() string {
	if k == PlatformFloating {
		return "floating"
	}
	return "ground"
}

// Platform is a surface the actor can land on from above.
type Platform struct {
	Rect core.Rect
	Kind PlatformKind
}

// Obstacle is a fully solid unit block.
type Obstacle struct {
	Rect core.Rect
}

// Collectible is a pickup. Collected flips to true at most once per run.
type Collectible struct {
	Rect      core.Rect
	Kind      CollectibleKind
	Collected bool
	// FloatPhase offsets the hover animation; it has no gameplay meaning.
	FloatPhase float64
}

// Level is a fully expanded world. Only collectible flags change during a run.
type Level struct {
	ID           string
	Name         string
	Width        float64
	Platforms    []Platform
	Obstacles    []Obstacle
	Collectibles []Collectible
	FinishX      float64 // crossing this engages autowalk
	TreeX        float64 // reaching TreeX - 50 under autowalk wins
}

// CollectedCount returns how many collectibles are flagged collected.
func (l *Level) CollectedCount() int {
	n := 0
	for _, c := range l.Collectibles {
		if c.Collected {
			n++
		}
	}
	return n
}

// Build expands a layout into a fresh Level.
// The same layout always produces the same level.
func Build(layout Layout) (*Level, error) {
	if err := layout.validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", layout.ID, err)
	}

	lvl := &Level{
		ID:           layout.ID,
		Name:         layout.Name,
		Width:        layout.Width,
		Platforms:    make([]Platform, 0, len(layout.Ground)+len(layout.Floating)),
		Collectibles: make([]Collectible, 0, len(layout.Collectibles)),
		FinishX:      layout.FinishX,
		TreeX:        layout.TreeX,
	}

	for _, seg := range layout.Ground {
		lvl.Platforms = append(lvl.Platforms, Platform{
			Rect: core.NewRect(seg.X, layout.GroundY, seg.Width, layout.GroundHeight),
			Kind: PlatformGround,
		})
	}

	for _, p := range layout.Floating {
		lvl.Platforms = append(lvl.Platforms, Platform{
			Rect: core.NewRect(p.X, p.Y, p.Width, layout.FloatingHeight),
			Kind: PlatformFloating,
		})
	}

	for _, o := range layout.Obstacles {
		rects, err := Expand(o.Template, o.X, o.Y, layout.BlockSize)
		if err != nil {
			return nil, fmt.Errorf("level %q: obstacle at x=%v: %w", layout.ID, o.X, err)
		}
		for _, r := range rects {
			lvl.Obstacles = append(lvl.Obstacles, Obstacle{Rect: r})
		}
	}

	rng := rand.New(rand.NewSource(layout.Seed))
	for _, c := range layout.Collectibles {
		kind, ok := ParseCollectibleKind(c.Kind)
		if !ok {
			return nil, fmt.Errorf("level %q: collectible at x=%v: %w: %q", layout.ID, c.X, ErrUnknownCollectible, c.Kind)
		}
		lvl.Collectibles = append(lvl.Collectibles, Collectible{
			Rect:       core.NewRect(c.X, c.Y, layout.CollectibleSize, layout.CollectibleSize),
			Kind:       kind,
			FloatPhase: rng.Float64() * 2 * math.Pi,
		})
	}

	return lvl, nil
}
