// Package srs applies completed-item review results to spaced
// repetition stages. The stage map mirrors the one the review queue
// reports at session start; updates are emitted back to the host.
package srs

import "github.com/fukushu-cli/fukushu/internal/stats"

// Stage is a spaced repetition stage, 1 (apprentice) through 9
// (burned). Stage 0 means the item has never been reviewed.
type Stage int

const (
	StageInitiate   Stage = 0
	StageGuruFloor  Stage = 5
	StageEnlighten  Stage = 8
	StageBurned     Stage = 9
)

// Name returns the display name for a stage.
func (s Stage) Name() string {
	switch {
	case s <= 0:
		return "Initiate"
	case s <= 4:
		return "Apprentice"
	case s <= 6:
		return "Guru"
	case s == 7:
		return "Master"
	case s == 8:
		return "Enlightened"
	default:
		return "Burned"
	}
}

// Change describes a stage transition produced by a completed item.
type Change struct {
	SubjectID int64
	From      Stage
	To        Stage
}

// Up reports whether the stage moved up.
func (c Change) Up() bool { return c.To > c.From }

// Manager holds the per-subject stage map for a session and computes
// stage transitions when items complete.
type Manager struct {
	stages map[int64]Stage
}

// NewManager creates a manager over the host-reported stage map. A nil
// map is allowed; lookups then start every item at stage 0.
func NewManager(stages map[int64]Stage) *Manager {
	if stages == nil {
		stages = make(map[int64]Stage)
	}
	return &Manager{stages: stages}
}

// StageOf returns the current stage for a subject.
func (m *Manager) StageOf(subjectID int64) Stage {
	return m.stages[subjectID]
}

// WouldBurn reports whether a clean completion of this subject would
// move it to the burned stage.
func (m *Manager) WouldBurn(subjectID int64) bool {
	return m.stages[subjectID] == StageEnlighten
}

// Project computes the stage transition a completed item would
// produce, without applying it. Used for the pending-verdict popup.
func (m *Manager) Project(subjectID int64, s stats.SubjectStats) Change {
	from := m.stages[subjectID]
	return Change{SubjectID: subjectID, From: from, To: next(from, s.TotalIncorrect())}
}

// Update applies a completed item's stats to its stage. Call only when
// both question-type slots are complete. A clean item moves up one
// stage; misses move it down, twice as far at guru and above.
func (m *Manager) Update(subjectID int64, s stats.SubjectStats) Change {
	from := m.stages[subjectID]
	to := next(from, s.TotalIncorrect())
	m.stages[subjectID] = to
	return Change{SubjectID: subjectID, From: from, To: to}
}

func next(from Stage, incorrect int) Stage {
	if incorrect == 0 {
		if from >= StageBurned {
			return StageBurned
		}
		return from + 1
	}
	penalty := Stage((incorrect + 1) / 2)
	if from >= StageGuruFloor {
		penalty *= 2
	}
	to := from - penalty
	if to < 1 {
		to = 1
	}
	return to
}
