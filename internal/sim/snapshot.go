package sim

import "math"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	State         State
	Reason        Reason
	Actor         Actor
	CameraX       float64
	TimeRemaining float64
	Collected     int
	Total         int
	Taken         []bool // collected flag per collectible, in level order
	Ticks         int    // physics ticks since the last reset
}

// Seconds returns the timer as shown to the player: whole seconds, rounded up.
func (s Snapshot) Seconds() int {
	if s.TimeRemaining <= 0 {
		return 0
	}
	return int(math.Ceil(s.TimeRemaining))
}

// Snapshot captures the current frame.
func (s *Session) Snapshot() Snapshot {
	taken := make([]bool, len(s.level.Collectibles))
	for i, c := range s.level.Collectibles {
		taken[i] = c.Collected
	}

	snap := Snapshot{
		State:         s.state,
		Actor:         s.actor,
		CameraX:       s.cameraX,
		TimeRemaining: s.remaining,
		Collected:     s.collected,
		Total:         len(s.level.Collectibles),
		Taken:         taken,
		Ticks:         s.ticks,
	}
	if s.outcome != nil {
		snap.Reason = s.outcome.Reason
	}
	return snap
}
