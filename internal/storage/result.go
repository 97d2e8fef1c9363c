package storage

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// Outcome and reason values as stored in the results table.
const (
	OutcomeWin        = "win"
	OutcomeGameOver   = "gameover"
	ReasonTimeExpired = "timeExpired"
	ReasonFellIntoPit = "fellIntoPit"
)

// Result is one finished run.
type Result struct {
	ID          int64
	LevelID     string
	Outcome     string // OutcomeWin or OutcomeGameOver
	Reason      string // empty on a win
	Collected   int
	Total       int
	ElapsedSecs int
	CreatedAt   time.Time
}

// Won reports whether the run was won.
func (r Result) Won() bool {
	return r.Outcome == OutcomeWin
}

// NewResult converts a session outcome into a storable result.
func NewResult(levelID string, out sim.Outcome) Result {
	r := Result{
		LevelID:     levelID,
		Outcome:     OutcomeGameOver,
		Reason:      out.Reason.String(),
		Collected:   out.Collected,
		Total:       out.Total,
		ElapsedSecs: out.Elapsed,
	}
	if out.Won() {
		r.Outcome = OutcomeWin
	}
	return r
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID       string
	Runs          int
	Wins          int
	Falls         int
	Timeouts      int
	MostCollected int
	LastPlayed    time.Time
}
