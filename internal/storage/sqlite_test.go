package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/sim"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func win(level string, collected, elapsed int) Result {
	return Result{LevelID: level, Outcome: OutcomeWin, Collected: collected, Total: 10, ElapsedSecs: elapsed}
}

func loss(level, reason string, collected int) Result {
	return Result{LevelID: level, Outcome: OutcomeGameOver, Reason: reason, Collected: collected, Total: 10, ElapsedSecs: 42}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestTopResultsRanksWins(t *testing.T) {
	store := openStore(t)

	for _, r := range []Result{
		win("christmas", 5, 90),
		win("christmas", 10, 110),
		win("christmas", 10, 80),
		loss("christmas", ReasonFellIntoPit, 10),
		win("sprint", 3, 20),
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopResults("christmas", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopResults() returned %d rows, expected 3 wins", len(top))
	}

	expected := []struct{ collected, elapsed int }{{10, 80}, {10, 110}, {5, 90}}
	for i, e := range expected {
		if top[i].Collected != e.collected || top[i].ElapsedSecs != e.elapsed {
			t.Errorf("rank %d = %d tools in %ds, expected %d in %ds",
				i+1, top[i].Collected, top[i].ElapsedSecs, e.collected, e.elapsed)
		}
		if !top[i].Won() || top[i].LevelID != "christmas" {
			t.Errorf("rank %d = %+v", i+1, top[i])
		}
	}

	best, err := store.BestResult("christmas")
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best == nil || best.ElapsedSecs != 80 {
		t.Errorf("BestResult() = %+v", best)
	}
}

func TestBestResultNeverWon(t *testing.T) {
	store := openStore(t)

	if _, err := store.SaveResult(loss("sprint", ReasonTimeExpired, 1)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	best, err := store.BestResult("sprint")
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best != nil {
		t.Errorf("BestResult() = %+v, expected nil", best)
	}
}

func TestRecentResultsNewestFirst(t *testing.T) {
	store := openStore(t)

	store.SaveResult(win("sprint", 1, 30))
	store.SaveResult(loss("sprint", ReasonFellIntoPit, 2))
	store.SaveResult(loss("sprint", ReasonTimeExpired, 3))

	recent, err := store.RecentResults("sprint", 2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentResults() returned %d rows, expected 2", len(recent))
	}
	if recent[0].Reason != ReasonTimeExpired || recent[1].Reason != ReasonFellIntoPit {
		t.Errorf("RecentResults() order = %q, %q", recent[0].Reason, recent[1].Reason)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestSaveResultRequiresLevel(t *testing.T) {
	store := openStore(t)

	if _, err := store.SaveResult(Result{Outcome: OutcomeWin}); !errors.Is(err, ErrNoLevel) {
		t.Errorf("SaveResult() error = %v, expected ErrNoLevel", err)
	}
}

func TestClearResults(t *testing.T) {
	store := openStore(t)

	store.SaveResult(win("christmas", 4, 100))
	store.SaveResult(win("sprint", 2, 20))

	if err := store.ClearResults("christmas"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	if top, _ := store.TopResults("christmas", 10); len(top) != 0 {
		t.Errorf("christmas should be empty, got %d rows", len(top))
	}
	if top, _ := store.TopResults("sprint", 10); len(top) != 1 {
		t.Errorf("sprint should keep its row, got %d", len(top))
	}
}

func TestLevelStats(t *testing.T) {
	store := openStore(t)

	store.SaveResult(win("christmas", 7, 100))
	store.SaveResult(loss("christmas", ReasonFellIntoPit, 9))
	store.SaveResult(loss("christmas", ReasonFellIntoPit, 1))
	store.SaveResult(loss("christmas", ReasonTimeExpired, 3))

	stats, err := store.LevelStats("christmas")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.Wins != 1 || stats.Falls != 2 || stats.Timeouts != 1 || stats.MostCollected != 9 {
		t.Errorf("LevelStats() = %+v", stats)
	}

	empty, err := store.LevelStats("nope")
	if err != nil {
		t.Fatalf("LevelStats(nope) failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("LevelStats(nope) = %+v", empty)
	}
}

func TestNewResult(t *testing.T) {
	tests := []struct {
		name    string
		out     sim.Outcome
		outcome string
		reason  string
	}{
		{"win", sim.Outcome{State: sim.StateWin, Elapsed: 95, Collected: 8, Total: 10}, OutcomeWin, ""},
		{"pit", sim.Outcome{State: sim.StateGameOver, Reason: sim.ReasonFellIntoPit}, OutcomeGameOver, ReasonFellIntoPit},
		{"timer", sim.Outcome{State: sim.StateGameOver, Reason: sim.ReasonTimeExpired}, OutcomeGameOver, ReasonTimeExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResult("christmas", tc.out)
			if r.Outcome != tc.outcome || r.Reason != tc.reason || r.LevelID != "christmas" {
				t.Errorf("NewResult() = %+v", r)
			}
			if r.Collected != tc.out.Collected || r.ElapsedSecs != tc.out.Elapsed {
				t.Errorf("NewResult() dropped counts: %+v", r)
			}
		})
	}
}
