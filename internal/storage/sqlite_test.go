package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveGame(GameRecord{Score: 42}); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil || high != 42 {
		t.Errorf("HighScore() after reopen = %d, %v; expected 42", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rec := GameRecord{
		Player:  "alice",
		Score:   20480,
		MaxTile: 2048,
		Moves:   950,
		Won:     true,
		Lost:    false,
		Seed:    math.MaxUint64 - 7,
	}

	id, err := store.SaveGame(rec)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveGame() id %q is not a uuid: %v", id, err)
	}

	got, err := store.GameByID(id)
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}

	rec.ID = id
	got.CreatedAt = rec.CreatedAt
	if got != rec {
		t.Errorf("GameByID() = %+v, expected %+v", got, rec)
	}
}

func TestStoreSaveKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	id, err := store.SaveGame(GameRecord{ID: want, Score: 8})
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if id != want {
		t.Errorf("SaveGame() id = %q, expected %q", id, want)
	}

	if _, err := store.SaveGame(GameRecord{ID: want, Score: 16}); err == nil {
		t.Error("duplicate id should fail")
	}
}

func TestStoreGameByIDMissing(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.GameByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GameByID() err = %v, expected ErrNotFound", err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200, 100} {
		if _, err := store.SaveGame(GameRecord{Player: "p", Score: score}); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveGame(GameRecord{Score: (i + 1) * 100})
	}

	// Request only top 3
	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	scores, err = store.TopScores(0)
	if err != nil || len(scores) != 5 {
		t.Errorf("TopScores(0) = %d records, %v; expected 5", len(scores), err)
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Player: "alice", Score: 300})
	store.SaveGame(GameRecord{Player: "bob", Score: 900})
	store.SaveGame(GameRecord{Player: "alice", Score: 500})

	scores, err := store.PlayerScores("alice", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 500 || scores[1].Score != 300 {
		t.Errorf("PlayerScores(alice) = %+v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No games yet
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	store.SaveGame(GameRecord{Score: 100})
	store.SaveGame(GameRecord{Score: 300})
	store.SaveGame(GameRecord{Score: 200})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if empty.Games != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", empty)
	}

	store.SaveGame(GameRecord{Score: 100, MaxTile: 64, Moves: 40, Lost: true})
	store.SaveGame(GameRecord{Score: 300, MaxTile: 2048, Moves: 900, Won: true})
	store.SaveGame(GameRecord{Score: 200, MaxTile: 128, Moves: 60, Lost: true})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	if stats.Games != 3 {
		t.Errorf("Games = %d, expected 3", stats.Games)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %f, expected 200", stats.AvgScore)
	}
	if stats.Wins != 1 {
		t.Errorf("Wins = %d, expected 1", stats.Wins)
	}
	if stats.BestTile != 2048 {
		t.Errorf("BestTile = %d, expected 2048", stats.BestTile)
	}
	if stats.TotalMoves != 1000 {
		t.Errorf("TotalMoves = %d, expected 1000", stats.TotalMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Score: 100})
	store.SaveGame(GameRecord{Score: 200})

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.t2048/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".t2048", "scores.db")); err != nil {
		t.Errorf("Database was not created under HOME: %v", err)
	}
}
