package sim

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

const frameDT = 1.0 / 60

func newSession(t *testing.T) *Session {
	t.Helper()
	layout, err := level.EmbeddedByID(level.DefaultID)
	if err != nil {
		t.Fatalf("EmbeddedByID() failed: %v", err)
	}
	s, err := New(config.DefaultPlatformerConfig(), layout)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func newPlaying(t *testing.T) *Session {
	t.Helper()
	s := newSession(t)
	s.Start()
	return s
}

func TestNewRejectsBadInput(t *testing.T) {
	layout, err := level.EmbeddedByID(level.DefaultID)
	if err != nil {
		t.Fatalf("EmbeddedByID() failed: %v", err)
	}

	cfg := config.DefaultPlatformerConfig()
	cfg.Physics.Gravity = 0
	if _, err := New(cfg, layout); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New() with zero gravity error = %v", err)
	}

	layout.Ground = nil
	if _, err := New(config.DefaultPlatformerConfig(), layout); !errors.Is(err, level.ErrNoGround) {
		t.Errorf("New() without ground error = %v", err)
	}
}

func TestTickOutsidePlayingIsNoop(t *testing.T) {
	s := newSession(t)
	if s.State() != StateStart {
		t.Fatalf("new session state = %v, expected start", s.State())
	}

	before := s.Snapshot()
	after := s.Tick(frameDT, core.Intent{MoveRight: true})
	if !reflect.DeepEqual(before, after) {
		t.Error("Tick on the start screen changed state")
	}
	if _, ok := s.Outcome(); ok {
		t.Error("start screen should have no outcome")
	}
}

// Walking right and jumping once the obstacle at x=300 is near clears it.
func TestScenarioJumpOverObstacle(t *testing.T) {
	s := newPlaying(t)
	snap := s.Snapshot()

	for i := 0; i < 60 && snap.Actor.X <= 350; i++ {
		a := snap.Actor
		in := core.Intent{MoveRight: true, Jump: a.OnGround && a.X >= 200 && a.X < 260}
		prev := a.X
		snap = s.Tick(frameDT, in)
		if snap.Actor.X != prev+6 {
			t.Fatalf("tick %d: x went %v -> %v, actor was blocked", i, prev, snap.Actor.X)
		}
	}

	if snap.Actor.X <= 350 {
		t.Fatalf("actor never passed the obstacle, x=%v", snap.Actor.X)
	}
	if snap.State != StatePlaying {
		t.Errorf("state = %v, expected playing", snap.State)
	}
}

func TestScenarioTimeExpires(t *testing.T) {
	s := newPlaying(t)

	var snap Snapshot
	for i := 1; i <= 121; i++ {
		prev := s.Snapshot()
		snap = s.Tick(1, core.Intent{})
		switch {
		case i < 120:
			if snap.State != StatePlaying {
				t.Fatalf("tick %d: state = %v, expected playing", i, snap.State)
			}
		case i == 120:
			if snap.State != StateGameOver || snap.Reason != ReasonTimeExpired {
				t.Fatalf("tick 120: state = %v reason = %v", snap.State, snap.Reason)
			}
			if snap.Seconds() != 0 {
				t.Errorf("timer shows %d, expected 0", snap.Seconds())
			}
		default:
			if !reflect.DeepEqual(prev, snap) {
				t.Error("tick after game over changed state")
			}
		}
	}

	out, ok := s.Outcome()
	if !ok {
		t.Fatal("expected an outcome")
	}
	if out.Won() || out.Reason != ReasonTimeExpired || out.Elapsed != 120 || out.Total != 10 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestTickIgnoresUnusableDT(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"NaN", math.NaN()},
		{"negative", -1},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newPlaying(t)
			var snap Snapshot
			for range 200 {
				snap = s.Tick(tc.dt, core.Intent{})
			}
			if snap.State != StatePlaying {
				t.Fatalf("state = %v, expected playing", snap.State)
			}
			if snap.TimeRemaining != 120 {
				t.Errorf("TimeRemaining = %v, expected 120", snap.TimeRemaining)
			}

			// The clock still runs on good frames afterwards.
			for range 120 {
				snap = s.Tick(1, core.Intent{})
			}
			if snap.State != StateGameOver || snap.Reason != ReasonTimeExpired {
				t.Errorf("state = %v reason = %v, expected game over by timeout", snap.State, snap.Reason)
			}
		})
	}
}

func TestEditingLayoutAfterNew(t *testing.T) {
	layout, err := level.EmbeddedByID(level.DefaultID)
	if err != nil {
		t.Fatalf("EmbeddedByID() failed: %v", err)
	}
	s, err := New(config.DefaultPlatformerConfig(), layout)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	layout.Ground[0].Width = 0
	layout.Collectibles[0].Kind = "saw"
	layout.Obstacles[0].Template = "spiral"
	layout.Floating[0].Width = -1

	s.Reset()
	if s.State() != StatePlaying {
		t.Fatalf("state = %v, expected playing", s.State())
	}
	if got := s.Level().Platforms[0].Rect.W; got != 800 {
		t.Errorf("first ground width = %v, expected 800", got)
	}
}

func TestScenarioAutoWalkWins(t *testing.T) {
	s := newPlaying(t)
	s.actor = groundedActor(11990)

	snap := s.Snapshot()
	for i := 0; i < 300 && snap.State == StatePlaying; i++ {
		in := core.Intent{MoveRight: true}
		if snap.Actor.AutoWalk {
			in = core.Intent{MoveLeft: true, Jump: true}
		}
		prev := snap.Actor.X
		snap = s.Tick(frameDT, in)
		if snap.Actor.X < prev {
			t.Fatalf("actor moved left under autowalk: %v -> %v", prev, snap.Actor.X)
		}
	}

	if snap.State != StateWin {
		t.Fatalf("state = %v, expected win", snap.State)
	}
	out, _ := s.Outcome()
	if !out.Won() || out.Reason != ReasonNone {
		t.Errorf("outcome = %+v", out)
	}
	if out.Elapsed != 1 || out.Collected != 0 || out.Total != 10 {
		t.Errorf("outcome = %+v, expected 1s elapsed and 0/10 collected", out)
	}
}

func TestScenarioFallIntoPit(t *testing.T) {
	s := newPlaying(t)
	// 800..900 is the first gap in the ground.
	s.actor = groundedActor(830)

	snap := s.Snapshot()
	for i := 0; i < 120 && snap.State == StatePlaying; i++ {
		snap = s.Tick(frameDT, core.Intent{})
	}

	if snap.State != StateGameOver || snap.Reason != ReasonFellIntoPit {
		t.Fatalf("state = %v reason = %v, expected gameover/fellIntoPit", snap.State, snap.Reason)
	}
	if snap.Actor.Y <= 700 {
		t.Errorf("game over at y=%v, expected below 700", snap.Actor.Y)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	fresh := newPlaying(t)
	want := fresh.Snapshot()
	wantLevel := fresh.Level()

	tests := []struct {
		name  string
		setup func(t *testing.T, s *Session)
	}{
		{"from start", func(t *testing.T, s *Session) {}},
		{"mid run", func(t *testing.T, s *Session) {
			s.Start()
			for i := 0; i < 50; i++ {
				s.Tick(frameDT, core.Intent{MoveRight: true})
			}
			if s.Snapshot().Collected == 0 {
				t.Fatal("setup should have picked up the first collectible")
			}
		}},
		{"after game over", func(t *testing.T, s *Session) {
			s.Start()
			for i := 0; i < 200; i++ {
				s.Tick(1, core.Intent{})
			}
		}},
		{"after win", func(t *testing.T, s *Session) {
			s.Start()
			s.actor = groundedActor(12160)
			s.actor.AutoWalk = true
			s.Tick(frameDT, core.Intent{})
			if s.State() != StateWin {
				t.Fatal("setup should have won")
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(t)
			tc.setup(t, s)
			s.Reset()

			if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
				t.Errorf("Reset() snapshot = %+v, expected %+v", got, want)
			}
			if !reflect.DeepEqual(s.Level(), wantLevel) {
				t.Error("Reset() level differs from a fresh build")
			}
			if _, ok := s.Outcome(); ok {
				t.Error("Reset() should clear the outcome")
			}
		})
	}
}

func randomFrames(seed int64, n int) []Frame {
	rng := rand.New(rand.NewSource(seed))
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = Frame{
			DT: frameDT,
			Intent: core.Intent{
				MoveLeft:  rng.Intn(5) == 0,
				MoveRight: rng.Intn(3) != 0,
				Jump:      rng.Intn(6) == 0,
			},
		}
	}
	return frames
}

func TestReplayDeterministic(t *testing.T) {
	frames := randomFrames(42, 3000)

	a := Replay(newSession(t), frames)
	b := Replay(newSession(t), frames)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("replays diverged:\n%+v\n%+v", a, b)
	}
	if a.Ticks == 0 {
		t.Error("replay should have run")
	}
}

func TestReplayStopsAtTerminal(t *testing.T) {
	frames := make([]Frame, 200)
	for i := range frames {
		frames[i] = Frame{DT: 1}
	}

	snap := Replay(newSession(t), frames)
	if snap.State != StateGameOver || snap.Ticks != 120 {
		t.Errorf("state = %v after %d ticks, expected gameover after 120", snap.State, snap.Ticks)
	}
}

func TestRandomRunsHoldInvariants(t *testing.T) {
	s := newPlaying(t)
	cfg := s.Config()

	tops := map[float64]bool{}
	for _, p := range s.Level().Platforms {
		tops[p.Rect.Y] = true
	}
	for _, o := range s.Level().Obstacles {
		tops[o.Rect.Y] = true
	}
	maxCamera := s.Level().Width - cfg.Viewport.Width

	collected := 0
	for i, f := range randomFrames(7, 20000) {
		snap := s.Tick(f.DT, f.Intent)
		a := snap.Actor

		if a.X < 0 {
			t.Fatalf("tick %d: x = %v", i, a.X)
		}
		if a.OnGround && !tops[a.Bottom()] {
			t.Fatalf("tick %d: grounded with bottom %v on no surface", i, a.Bottom())
		}
		if snap.CameraX < 0 || snap.CameraX > maxCamera {
			t.Fatalf("tick %d: camera %v out of range", i, snap.CameraX)
		}
		if snap.Collected < collected {
			t.Fatalf("tick %d: collected went down %d -> %d", i, collected, snap.Collected)
		}
		if snap.Collected != s.Level().CollectedCount() {
			t.Fatalf("tick %d: count %d disagrees with flags %d", i, snap.Collected, s.Level().CollectedCount())
		}
		collected = snap.Collected

		if snap.State.Terminal() {
			s.Reset()
			collected = 0
		}
	}
}

func TestParseScript(t *testing.T) {
	data := []byte(`
frames:
  - {right: true, repeat: 3}
  - {dt: 0.5, jump: true, left: true}
`)
	frames, err := ParseScript(data, 0.02)
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}

	want := []Frame{
		{DT: 0.02, Intent: core.Intent{MoveRight: true}},
		{DT: 0.02, Intent: core.Intent{MoveRight: true}},
		{DT: 0.02, Intent: core.Intent{MoveRight: true}},
		{DT: 0.5, Intent: core.Intent{MoveLeft: true, Jump: true}},
	}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("ParseScript() = %+v, expected %+v", frames, want)
	}
}

func TestParseScriptRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "frames: [oops"},
		{"negative repeat", "frames:\n  - {repeat: -1}\n"},
		{"negative dt", "frames:\n  - {dt: -0.1}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tc.data), frameDT); !errors.Is(err, ErrBadScript) {
				t.Errorf("ParseScript() error = %v, expected ErrBadScript", err)
			}
		})
	}
}
