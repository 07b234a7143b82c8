package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreTopScoresOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 300, 200} {
		if _, err := store.SaveScore("hexfall", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("hexfall_zen", 900); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("hexfall", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 300 || scores[1].Score != 200 || scores[2].Score != 100 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("hexfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("hexfall", 150)
	store.SaveScore("hexfall", 450)

	high, err = store.HighScore("hexfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 450 {
		t.Errorf("Expected high score of 450, got %d", high)
	}
}

func TestStoreSaveResult(t *testing.T) {
	store := openTestStore(t)

	results := []GameResult{
		{GameID: "hexfall", Score: 120, Moves: 9, EndReason: "bomb_expired", Seed: 7},
		{GameID: "hexfall", Score: 0, Moves: 0, EndReason: "dead_board", Seed: 8},
		{GameID: "hexfall", Score: 300, Moves: 21, EndReason: "dead_board", Seed: 9},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults("hexfall", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(recent))
	}
	if recent[0].Seed != 9 || recent[0].Moves != 21 || recent[0].EndReason != "dead_board" {
		t.Errorf("Newest result mismatch: %+v", recent[0])
	}

	// zero-score games are not high scores
	scores, _ := store.TopScores("hexfall", 10)
	if len(scores) != 2 {
		t.Errorf("Expected 2 score entries, got %d", len(scores))
	}

	stats, err := store.GetGameStats("hexfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, expected 3", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.BombEndings != 1 || stats.DeadEndings != 2 {
		t.Errorf("endings = %d bomb / %d dead, expected 1 / 2", stats.BombEndings, stats.DeadEndings)
	}
	if stats.AvgMoves != 10 {
		t.Errorf("AvgMoves = %v, expected 10", stats.AvgMoves)
	}
}

func TestStoreStatsForUnplayedGame(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("hexfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(GameResult{GameID: "hexfall", Score: 100, EndReason: "dead_board"})
	store.SaveScore("hexfall", 200)
	store.SaveScore("hexfall_zen", 300)

	if err := store.ClearScores("hexfall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("hexfall", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if results, _ := store.RecentResults("hexfall", 10); len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
	if zen, _ := store.TopScores("hexfall_zen", 10); len(zen) != 1 {
		t.Errorf("Zen scores should not be affected by clearing hexfall")
	}
}
