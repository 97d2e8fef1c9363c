package sim

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// flatLevel is a single long ground strip with the given obstacle blocks.
func flatLevel(obstacles ...core.Rect) *level.Level {
	lvl := &level.Level{
		ID:        "flat",
		Width:     5000,
		FinishX:   4000,
		TreeX:     4500,
		Platforms: []level.Platform{{Rect: core.NewRect(0, 520, 5000, 80)}},
	}
	for _, r := range obstacles {
		lvl.Obstacles = append(lvl.Obstacles, level.Obstacle{Rect: r})
	}
	return lvl
}

func groundedActor(x float64) Actor {
	a := NewActor(config.DefaultPlatformerConfig().Actor)
	a.X = x
	a.Y = 450
	a.OnGround = true
	return a
}

func TestCameraX(t *testing.T) {
	tests := []struct {
		name     string
		actorX   float64
		levelW   float64
		expected float64
	}{
		{"start pins left", 100, 13600, 0},
		{"actor a third in", 1000, 13600, 600},
		{"end pins right", 13500, 13600, 12400},
		{"narrow level", 500, 800, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CameraX(tc.actorX, 1200, tc.levelW); got != tc.expected {
				t.Errorf("CameraX(%v) = %v, expected %v", tc.actorX, got, tc.expected)
			}
		})
	}
}

func TestStepLandsOnGround(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel()
	a := NewActor(cfg.Actor)

	for tick := 1; tick <= 20; tick++ {
		Step(&a, lvl, core.Intent{}, cfg)
		if a.OnGround {
			if tick != 13 {
				t.Errorf("landed on tick %d, expected 13", tick)
			}
			if a.Y != 450 || a.VY != 0 {
				t.Errorf("landed at y=%v vy=%v, expected y=450 vy=0", a.Y, a.VY)
			}
			return
		}
	}
	t.Fatal("actor never landed")
}

func TestStepLeftBeatsRight(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	a := groundedActor(1000)

	Step(&a, flatLevel(), core.Intent{MoveLeft: true, MoveRight: true}, cfg)

	if a.VX != -cfg.Physics.MoveSpeed || a.Facing != -1 {
		t.Errorf("vx=%v facing=%d, expected left motion", a.VX, a.Facing)
	}
	if a.X != 994 {
		t.Errorf("x = %v, expected 994", a.X)
	}
}

func TestStepNoInputStops(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	a := groundedActor(1000)
	a.VX = 6
	a.Walking = true

	Step(&a, flatLevel(), core.Intent{}, cfg)

	if a.VX != 0 || a.Walking || a.X != 1000 {
		t.Errorf("actor should stop without input: %+v", a)
	}
}

func TestStepJumpOnlyFromGround(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel()
	a := groundedActor(1000)

	Step(&a, lvl, core.Intent{Jump: true}, cfg)
	if a.OnGround {
		t.Fatal("jump should leave the ground")
	}
	vy := a.VY

	Step(&a, lvl, core.Intent{Jump: true}, cfg)
	if a.VY != vy+cfg.Physics.Gravity {
		t.Errorf("mid-air jump changed vy: %v -> %v", vy, a.VY)
	}
}

func TestStepXNeverNegative(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	a := groundedActor(3)

	for i := 0; i < 10; i++ {
		Step(&a, flatLevel(), core.Intent{MoveLeft: true}, cfg)
		if a.X < 0 {
			t.Fatalf("x went negative: %v", a.X)
		}
	}
	if a.X != 0 {
		t.Errorf("x = %v, expected clamp to 0", a.X)
	}
}

func TestStepObstacleBlocksWalk(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	inset := cfg.Actor.ProbeInset
	blocks, err := level.Expand(level.TemplateStacked2, 600, 470, 50)
	if err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}
	lvl := flatLevel(blocks...)
	a := groundedActor(500)

	blocked := false
	for i := 0; i < 60; i++ {
		rep := Step(&a, lvl, core.Intent{MoveRight: true}, cfg)
		blocked = blocked || rep.Blocked
		for _, o := range lvl.Obstacles {
			if a.Rect().Inset(inset).Overlaps(o.Rect) {
				t.Fatalf("tick %d: probe %v penetrates %v", i, a.Rect().Inset(inset), o.Rect)
			}
		}
	}

	if !blocked {
		t.Error("walking into a stack should report a block")
	}
	if want := 600 - a.W + inset; a.X != want {
		t.Errorf("x = %v, expected actor held at %v", a.X, want)
	}
}

func TestStepObstacleBlocksFromRight(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel(core.NewRect(600, 470, 50, 50))
	a := groundedActor(700)

	for i := 0; i < 40; i++ {
		Step(&a, lvl, core.Intent{MoveLeft: true}, cfg)
	}
	if want := 650 - cfg.Actor.ProbeInset; a.X != want {
		t.Errorf("x = %v, expected %v", a.X, want)
	}
}

func TestStepLandsOnObstacle(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel(core.NewRect(300, 470, 50, 50))
	a := NewActor(cfg.Actor)
	a.X = 305
	a.Y = 300

	for i := 0; i < 30; i++ {
		Step(&a, lvl, core.Intent{}, cfg)
	}
	if !a.OnGround || a.Y != 400 {
		t.Errorf("actor should rest on the block: y=%v onGround=%v", a.Y, a.OnGround)
	}
}

func TestStepHeadBump(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel(core.NewRect(100, 300, 50, 50))
	a := groundedActor(105)

	bumped := false
	for i := 0; i < 15; i++ {
		in := core.Intent{Jump: i == 0}
		Step(&a, lvl, in, cfg)
		if a.Y < 350 {
			t.Fatalf("tick %d: head went through the block, y=%v", i, a.Y)
		}
		if a.Y == 350 && a.VY == 0 {
			bumped = true
		}
	}
	if !bumped {
		t.Error("jumping under a block should stop at its bottom face")
	}
}

func TestStepPlatformsDoNotBlockSideways(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel()
	lvl.Platforms = append(lvl.Platforms, level.Platform{
		Rect: core.NewRect(600, 430, 200, 25),
		Kind: level.PlatformFloating,
	})
	a := groundedActor(500)

	for i := 0; i < 30; i++ {
		Step(&a, lvl, core.Intent{MoveRight: true}, cfg)
	}
	if a.X != 680 || a.Y != 450 {
		t.Errorf("actor should walk through a floating platform edge: x=%v y=%v", a.X, a.Y)
	}
}

func TestStepPicksNearestPlatform(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel()
	lvl.Platforms = append(lvl.Platforms,
		level.Platform{Rect: core.NewRect(0, 403, 200, 25), Kind: level.PlatformFloating},
		level.Platform{Rect: core.NewRect(0, 402, 200, 25), Kind: level.PlatformFloating},
	)
	a := NewActor(cfg.Actor)
	a.X = 50
	a.Y = 330
	a.VY = 3

	Step(&a, lvl, core.Intent{}, cfg)
	if !a.OnGround || a.Bottom() != 402 {
		t.Errorf("bottom = %v, expected landing on the higher platform at 402", a.Bottom())
	}
}

func TestStepCollectsOnce(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel()
	lvl.Collectibles = []level.Collectible{{Rect: core.NewRect(1000, 450, 60, 60), Kind: level.KindNut}}
	a := groundedActor(1010)

	picked := 0
	for i := 0; i < 5; i++ {
		picked += Step(&a, lvl, core.Intent{}, cfg).Picked
	}
	if picked != 1 || !lvl.Collectibles[0].Collected {
		t.Errorf("picked = %d, expected exactly 1", picked)
	}
}

func TestStepFinishEngagesAutoWalk(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel()
	a := groundedActor(3998)

	rep := Step(&a, lvl, core.Intent{MoveRight: true}, cfg)
	if !rep.FinishReached || !a.AutoWalk {
		t.Fatal("crossing the finish should engage autowalk")
	}

	prev := a.X
	won := false
	for i := 0; i < 200 && !won; i++ {
		rep = Step(&a, lvl, core.Intent{MoveLeft: true, Jump: true}, cfg)
		if a.X < prev {
			t.Fatalf("autowalk moved left: %v -> %v", prev, a.X)
		}
		prev = a.X
		won = rep.Won
	}
	if !won {
		t.Fatal("autowalk never reached the tree")
	}
	if a.X < lvl.TreeX-TreeStopDistance || a.VX != 0 || a.Walking {
		t.Errorf("won with x=%v vx=%v walking=%v", a.X, a.VX, a.Walking)
	}
}

func TestStepFallReported(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := &level.Level{Width: 2000, FinishX: 1500, TreeX: 1800}
	a := NewActor(cfg.Actor)

	for i := 0; i < 100; i++ {
		if Step(&a, lvl, core.Intent{}, cfg).Fell {
			if a.Y <= 700 {
				t.Errorf("fell at y=%v, expected y > 700", a.Y)
			}
			return
		}
	}
	t.Fatal("actor with no ground never fell")
}

func TestWalkAnimation(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel()
	a := groundedActor(100)

	for i := 1; i <= 20; i++ {
		Step(&a, lvl, core.Intent{MoveRight: true}, cfg)
		switch i {
		case 8:
			if a.WalkFrame != 0 || a.WalkTimer != 8 {
				t.Errorf("tick 8: frame=%d timer=%d", a.WalkFrame, a.WalkTimer)
			}
		case 9:
			if a.WalkFrame != 1 || a.WalkTimer != 0 {
				t.Errorf("tick 9: frame=%d timer=%d", a.WalkFrame, a.WalkTimer)
			}
		case 18:
			if a.WalkFrame != 2 {
				t.Errorf("tick 18: frame=%d", a.WalkFrame)
			}
		}
	}

	Step(&a, lvl, core.Intent{}, cfg)
	if a.WalkFrame != 0 {
		t.Errorf("stopping should reset the walk frame, got %d", a.WalkFrame)
	}
	if a.WalkTimer != 2 {
		t.Errorf("stopping should keep the walk timer, got %d", a.WalkTimer)
	}
}

func TestStepObstacleTieResolvesHorizontally(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := flatLevel(core.NewRect(600, 300, 100, 100))

	// Walking right at 6 per tick from x=562 puts the probe's right edge at
	// 603, three units into the block. VY is zero after gravity.
	tests := []struct {
		name       string
		y          float64
		expectX    float64
		expectY    float64
		expectLand bool
	}{
		{"equal overlaps push back", 233, 565, 233, false},
		{"shallower top overlap lands", 231, 568, 230, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewActor(cfg.Actor)
			a.X, a.Y, a.VY = 562, tc.y, -cfg.Physics.Gravity

			rep := Step(&a, lvl, core.Intent{MoveRight: true}, cfg)

			if a.X != tc.expectX || a.Y != tc.expectY {
				t.Errorf("pose = (%v, %v), expected (%v, %v)", a.X, a.Y, tc.expectX, tc.expectY)
			}
			if a.OnGround != tc.expectLand {
				t.Errorf("OnGround = %v, expected %v", a.OnGround, tc.expectLand)
			}
			if rep.Blocked == tc.expectLand {
				t.Errorf("Blocked = %v, expected %v", rep.Blocked, !tc.expectLand)
			}
		})
	}
}

func TestStepLandingTolerance(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := &level.Level{
		ID:      "ledge",
		Width:   5000,
		FinishX: 4000,
		TreeX:   4500,
		Platforms: []level.Platform{{
			Rect: core.NewRect(0, 400, 300, 25),
			Kind: level.PlatformFloating,
		}},
	}

	// VY is 1 after gravity, so the bottom before the step is y+70.
	tests := []struct {
		name       string
		y          float64 // pose before the step
		expectLand bool
	}{
		{"bottom on the top", 330, true},
		{"bottom at the tolerance", 335, true},
		{"bottom past the tolerance", 335.01, false},
		{"bottom well inside", 345, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewActor(cfg.Actor)
			a.Y, a.VY = tc.y, 1-cfg.Physics.Gravity

			Step(&a, lvl, core.Intent{}, cfg)

			if a.OnGround != tc.expectLand {
				t.Fatalf("OnGround = %v, expected %v", a.OnGround, tc.expectLand)
			}
			if tc.expectLand && (a.Y != 330 || a.VY != 0) {
				t.Errorf("landed pose y=%v vy=%v, expected y=330 vy=0", a.Y, a.VY)
			}
			if !tc.expectLand && a.VY != 1 {
				t.Errorf("VY = %v, expected the fall to continue at 1", a.VY)
			}
		})
	}
}
