package game

import (
	"path/filepath"
	"testing"
)

func newTestHighScoreService(t *testing.T) *HighScoreService {
	t.Helper()
	service, err := NewHighScoreService(filepath.Join(t.TempDir(), "highscores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { service.Close() })
	return service
}

func TestHighScoreService_OrderAndPaging(t *testing.T) {
	service := newTestHighScoreService(t)

	games := []struct {
		name   string
		score  int
		level  int
		fruits int
	}{
		{"slow", 40, 1, 5},
		{"fast", 40, 5, 5},
		{"best", 120, 2, 11},
		{"boom", -75, 3, 0},
	}
	for _, g := range games {
		if err := service.SavePlayersHighScore(g.name, g.score, g.level, g.fruits); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := service.GetHighScores(10, 0)
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{"best", "fast", "slow", "boom"}
	if len(scores) != len(wantOrder) {
		t.Fatalf("got %d scores, want %d", len(scores), len(wantOrder))
	}
	for i, name := range wantOrder {
		if scores[i].PlayerName != name {
			t.Errorf("rank %d = %s, want %s", i+1, scores[i].PlayerName, name)
		}
	}
	if scores[0].Score != 120 || scores[0].SpeedLevel != 2 || scores[0].FruitsEaten != 11 {
		t.Errorf("top score = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("created_at was not populated")
	}

	page, err := service.GetHighScores(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].PlayerName != "slow" {
		t.Errorf("second page = %+v", page)
	}

	count, err := service.GetTotalScoreCount()
	if err != nil || count != 4 {
		t.Errorf("count = %d, %v; want 4", count, err)
	}
}

func TestHighScoreService_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.db")

	first, err := NewHighScoreService(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.SavePlayersHighScore("kept", 10, 1, 1); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewHighScoreService(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	count, err := second.GetTotalScoreCount()
	if err != nil || count != 1 {
		t.Fatalf("count = %d, %v; want 1", count, err)
	}
}
