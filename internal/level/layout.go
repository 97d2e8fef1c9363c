package level

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Layout is the declarative description of a level, as stored in YAML.
type Layout struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Seed int64  `yaml:"seed,omitempty"` // seeds the cosmetic float phase only

	Width           float64 `yaml:"width"`
	GroundY         float64 `yaml:"ground_y"`
	GroundHeight    float64 `yaml:"ground_height"`
	FloatingHeight  float64 `yaml:"floating_height"`
	BlockSize       float64 `yaml:"block_size"`
	CollectibleSize float64 `yaml:"collectible_size"`

	Ground       []GroundSegment        `yaml:"ground"`
	Floating     []FloatingPlatform     `yaml:"floating"`
	Obstacles    []ObstaclePlacement    `yaml:"obstacles"`
	Collectibles []CollectiblePlacement `yaml:"collectibles"`

	FinishX float64 `yaml:"finish_x"`
	TreeX   float64 `yaml:"tree_x"`
}

// GroundSegment is a stretch of ground; gaps between segments are pits.
type GroundSegment struct {
	X     float64 `yaml:"x"`
	Width float64 `yaml:"width"`
}

// FloatingPlatform is a ledge suspended above the ground.
type FloatingPlatform struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Width float64 `yaml:"width"`
}

// ObstaclePlacement places a template; (X, Y) is its bottom-left block.
type ObstaclePlacement struct {
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Template Template `yaml:"template"`
}

// CollectiblePlacement places a pickup by kind name.
type CollectiblePlacement struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Kind string  `yaml:"kind"`
}

// Clone returns a copy that shares no slices with l.
func (l Layout) Clone() Layout {
	l.Ground = slices.Clone(l.Ground)
	l.Floating = slices.Clone(l.Floating)
	l.Obstacles = slices.Clone(l.Obstacles)
	l.Collectibles = slices.Clone(l.Collectibles)
	return l
}

// layoutDefaults fills sizes a layout file may leave out.
var layoutDefaults = Layout{
	GroundHeight:    80,
	FloatingHeight:  25,
	BlockSize:       50,
	CollectibleSize: 60,
}

// ParseYAML decodes a layout. Missing sizes take defaults; the layout
// is not validated until Build.
func ParseYAML(data []byte) (Layout, error) {
	layout := layoutDefaults
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return layout, nil
}

func (l Layout) validate() error {
	if len(l.Ground) == 0 {
		return ErrNoGround
	}
	if l.Width <= 0 || l.GroundHeight <= 0 || l.FloatingHeight <= 0 || l.BlockSize <= 0 || l.CollectibleSize <= 0 {
		return ErrBadGeometry
	}
	if l.FinishX <= 0 || l.TreeX < l.FinishX || l.TreeX > l.Width {
		return ErrBadFinish
	}
	for _, seg := range l.Ground {
		if seg.Width <= 0 {
			return fmt.Errorf("%w: ground segment at x=%v", ErrBadGeometry, seg.X)
		}
	}
	for _, p := range l.Floating {
		if p.Width <= 0 {
			return fmt.Errorf("%w: floating platform at x=%v", ErrBadGeometry, p.X)
		}
	}
	return nil
}
