package srs

import (
	"testing"

	"github.com/fukushu-cli/fukushu/internal/stats"
)

func withIncorrect(n int) stats.SubjectStats {
	return stats.SubjectStats{
		Meaning: stats.Slot{Complete: true, Incorrect: n},
		Reading: stats.Slot{Complete: true},
	}
}

func TestUpdateCleanCompletion(t *testing.T) {
	tests := []struct {
		from Stage
		want Stage
	}{
		{0, 1},
		{1, 2},
		{4, 5},
		{8, 9},
		{9, 9}, // burned stays burned
	}

	for _, tc := range tests {
		m := NewManager(map[int64]Stage{1: tc.from})
		c := m.Update(1, withIncorrect(0))
		if c.To != tc.want {
			t.Errorf("Update(from %d, clean) = %d, want %d", tc.from, c.To, tc.want)
		}
	}
}

func TestUpdatePenalty(t *testing.T) {
	tests := []struct {
		from      Stage
		incorrect int
		want      Stage
	}{
		{4, 1, 3},  // ceil(1/2) = 1 below guru
		{4, 2, 3},  // ceil(2/2) = 1
		{4, 3, 2},  // ceil(3/2) = 2
		{5, 1, 3},  // doubled at guru and above
		{7, 4, 3},  // ceil(4/2)*2 = 4
		{2, 5, 1},  // floors at 1
		{1, 1, 1},  // never below 1
	}

	for _, tc := range tests {
		m := NewManager(map[int64]Stage{1: tc.from})
		c := m.Update(1, withIncorrect(tc.incorrect))
		if c.To != tc.want {
			t.Errorf("Update(from %d, %d incorrect) = %d, want %d", tc.from, tc.incorrect, c.To, tc.want)
		}
	}
}

func TestProjectIsPure(t *testing.T) {
	m := NewManager(map[int64]Stage{1: 4})

	c := m.Project(1, withIncorrect(0))
	if c.To != 5 {
		t.Errorf("Project = %d, want 5", c.To)
	}
	if got := m.StageOf(1); got != 4 {
		t.Errorf("StageOf = %d after Project, want unchanged 4", got)
	}

	m.Update(1, withIncorrect(0))
	if got := m.StageOf(1); got != 5 {
		t.Errorf("StageOf = %d after Update, want 5", got)
	}
}

func TestWouldBurn(t *testing.T) {
	m := NewManager(map[int64]Stage{1: StageEnlighten, 2: 7})
	if !m.WouldBurn(1) {
		t.Error("WouldBurn(enlightened) = false, want true")
	}
	if m.WouldBurn(2) {
		t.Error("WouldBurn(master) = true, want false")
	}
}

func TestChangeUp(t *testing.T) {
	if !(Change{From: 4, To: 5}).Up() {
		t.Error("4→5 not reported as up")
	}
	if (Change{From: 5, To: 3}).Up() {
		t.Error("5→3 reported as up")
	}
}

func TestStageNames(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{0, "Initiate"},
		{1, "Apprentice"},
		{4, "Apprentice"},
		{5, "Guru"},
		{7, "Master"},
		{8, "Enlightened"},
		{9, "Burned"},
	}

	for _, tc := range tests {
		if got := tc.stage.Name(); got != tc.want {
			t.Errorf("Stage(%d).Name() = %q, want %q", tc.stage, got, tc.want)
		}
	}
}

func TestNilStageMap(t *testing.T) {
	m := NewManager(nil)
	if got := m.StageOf(42); got != StageInitiate {
		t.Errorf("StageOf on nil map = %d, want 0", got)
	}
	if c := m.Update(42, withIncorrect(0)); c.To != 1 {
		t.Errorf("Update on nil map = %d, want 1", c.To)
	}
}
