// Package stats tracks per-subject completion counters and session-wide
// progress for one review session.
package stats

import (
	"math"

	"github.com/fukushu-cli/fukushu/internal/subject"
)

// Slot tracks one question type's progress for a subject.
type Slot struct {
	Incorrect int
	Complete  bool
}

// SubjectStats holds both question-type slots for one subject within a
// session. The reading slot is pre-completed for kinds without a
// distinct reading question.
type SubjectStats struct {
	Meaning Slot
	Reading Slot
}

// ItemComplete reports whether both slots are complete.
func (s SubjectStats) ItemComplete() bool {
	return s.Meaning.Complete && s.Reading.Complete
}

// TotalIncorrect is the combined miss count across both slots.
func (s SubjectStats) TotalIncorrect() int {
	return s.Meaning.Incorrect + s.Reading.Incorrect
}

// SessionStats are the session-wide progress counters.
type SessionStats struct {
	Complete  int
	Remaining int
	Correct   int
	Answered  int
}

// PercentCorrect is round(100*correct/answered), or 100 before any
// answer has been recorded.
func (s SessionStats) PercentCorrect() int {
	if s.Answered == 0 {
		return 100
	}
	return int(math.Round(100 * float64(s.Correct) / float64(s.Answered)))
}

// PercentComplete is the session completion percentage.
func (s SessionStats) PercentComplete() int {
	total := s.Complete + s.Remaining
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Complete) / float64(total)))
}

// Aggregator owns the session-scoped subject stats cache and the
// session counters. It trusts its caller to commit each verdict exactly
// once; the state machine enforces that.
type Aggregator struct {
	cache       map[int64]SubjectStats
	session     SessionStats
	initialized bool
	remaining   func() int
}

// NewAggregator creates an aggregator. remaining reports the externally
// known remaining-item count; it is consulted lazily the first time
// session counters are touched.
func NewAggregator(remaining func() int) *Aggregator {
	return &Aggregator{
		cache:     make(map[int64]SubjectStats),
		remaining: remaining,
	}
}

func (a *Aggregator) initSession() {
	if a.initialized {
		return
	}
	a.initialized = true
	if a.remaining != nil {
		a.session.Remaining = a.remaining()
	}
}

// statsFor loads the cached stats for a subject, initializing the
// pre-completed reading slot for kinds without a reading question.
func (a *Aggregator) statsFor(id int64, kind subject.Kind) SubjectStats {
	if s, ok := a.cache[id]; ok {
		return s
	}
	return SubjectStats{
		Reading: Slot{Complete: kind == subject.KindRadical || kind == subject.KindKanaVocabulary},
	}
}

// apply computes the post-verdict stats without touching the cache.
func apply(s SubjectStats, qtype subject.QuestionType, passed bool) SubjectStats {
	slot := &s.Meaning
	if qtype == subject.QuestionReading {
		slot = &s.Reading
	}
	if passed {
		slot.Complete = true
	} else {
		slot.Incorrect++
	}
	return s
}

// Result is the pair of snapshots produced by a preview or commit.
type Result struct {
	Subject      SubjectStats
	Session      SessionStats
	ItemComplete bool
}

// Preview computes the stats a commit of this verdict would produce,
// without recording anything. Used for display while the verdict is
// still pending.
func (a *Aggregator) Preview(id int64, kind subject.Kind, qtype subject.QuestionType, passed bool) Result {
	a.initSession()
	before := a.statsFor(id, kind)
	sub := apply(before, qtype, passed)
	ses := a.session
	ses.Answered++
	if passed {
		ses.Correct++
	}
	// Complete moves only on the transition, never twice for one item.
	if sub.ItemComplete() && !before.ItemComplete() {
		ses.Complete++
		ses.Remaining--
	}
	return Result{Subject: sub, Session: ses, ItemComplete: sub.ItemComplete()}
}

// Commit records the verdict: the subject's slot is updated in the
// cache and the session counters advance. Must be called exactly once
// per verdict cycle.
func (a *Aggregator) Commit(id int64, kind subject.Kind, qtype subject.QuestionType, passed bool) Result {
	r := a.Preview(id, kind, qtype, passed)
	a.cache[id] = r.Subject
	a.session = r.Session
	return r
}

// SubjectSnapshot returns the committed stats for a subject.
func (a *Aggregator) SubjectSnapshot(id int64, kind subject.Kind) SubjectStats {
	return a.statsFor(id, kind)
}

// Session returns the current committed session counters.
func (a *Aggregator) Session() SessionStats {
	a.initSession()
	return a.session
}
