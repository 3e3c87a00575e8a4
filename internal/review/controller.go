// Package review implements the two-phase answer submission protocol:
// a first submit that evaluates and classifies the answer, a
// confirmation window in which the verdict can be overridden or the
// question retyped, and a final commit that records the stats.
package review

import (
	"errors"
	"strings"
	"time"

	"github.com/fukushu-cli/fukushu/internal/checker"
	"github.com/fukushu-cli/fukushu/internal/config"
	"github.com/fukushu-cli/fukushu/internal/kana"
	"github.com/fukushu-cli/fukushu/internal/srs"
	"github.com/fukushu-cli/fukushu/internal/stats"
	"github.com/fukushu-cli/fukushu/internal/subject"
	"github.com/fukushu-cli/fukushu/internal/verdict"
)

// State is the submission protocol state.
type State string

const (
	// StateFirstSubmit means no unconfirmed verdict exists for the
	// current question.
	StateFirstSubmit State = "first_submit"
	// StateSecondSubmit means a verdict is pending confirmation.
	StateSecondSubmit State = "second_submit"
)

// incorrectPlaceholder is substituted when a passing answer is forced
// incorrect; it is guaranteed not to match any accepted answer.
const incorrectPlaceholder = "xxxxxx"

// Outcome describes what a Submit call did.
type Outcome int

const (
	// OutcomeIgnored: no state change (delay gate active, or no open
	// question).
	OutcomeIgnored Outcome = iota
	// OutcomeShaken: the answer was empty or unusable for the question
	// type; it was never evaluated.
	OutcomeShaken
	// OutcomeWarned: the verdict carries an exception message; the
	// protocol stays in first_submit for a corrected resubmit.
	OutcomeWarned
	// OutcomeAwaitingConfirm: the verdict is pending; overrides are
	// available until the next submit commits it.
	OutcomeAwaitingConfirm
	// OutcomeCommitted: the pending verdict was recorded and the
	// question closed.
	OutcomeCommitted
	// OutcomeReset: the question was reset for retyping; nothing was
	// recorded.
	OutcomeReset
)

// AnswerCheck is the snapshot taken when a first verdict is accepted.
// Only the cursor mutates afterward, advancing as the user cycles
// through acceptable answers.
type AnswerCheck struct {
	Answer             string
	Passed             bool
	Accurate           bool
	MultipleAnswers    bool
	CorrectAnswers     []string
	CorrectAnswerIndex int
}

// nextCorrectAnswer returns the answer at the cursor and advances it,
// wrapping modulo the list length.
func (a *AnswerCheck) nextCorrectAnswer() (string, bool) {
	if len(a.CorrectAnswers) == 0 {
		return "", false
	}
	ans := a.CorrectAnswers[a.CorrectAnswerIndex]
	a.CorrectAnswerIndex = (a.CorrectAnswerIndex + 1) % len(a.CorrectAnswers)
	return ans, true
}

// Verdict is a pending or committed verdict with its answer text.
type Verdict struct {
	Answer          string
	Passed          bool
	Accurate        bool
	MultipleAnswers bool
	Category        verdict.Category
	Exception       string
	Note            string
}

// SubmitResult reports the outcome of a submit or override.
type SubmitResult struct {
	Outcome Outcome
	Verdict Verdict

	// Delayed is set when a mistake or burn delay gates advancement.
	Delayed     bool
	DelayPeriod time.Duration

	// Preview holds the would-be stats while awaiting confirmation;
	// Final holds the committed stats.
	Preview stats.Result
	Final   stats.Result

	// SRSChange is the stage transition for a completed item. On a
	// preview it is the projected change; on a commit, the applied one.
	SRSChange *srs.Change
}

// AnsweredEvent is delivered to the listener whenever a verdict is
// displayed (pending or overridden).
type AnsweredEvent struct {
	Subject      *subject.Subject
	Stats        stats.SubjectStats
	QuestionType subject.QuestionType
	Answer       string
	Passed       bool
}

// Listener receives host notifications from the controller.
type Listener interface {
	QuestionAnswered(AnsweredEvent)
	QuestionReset(session stats.SessionStats)
}

// Clock abstracts time for the delay gate.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// OverrideTarget selects an override action.
type OverrideTarget string

const (
	OverrideCorrect   OverrideTarget = "correct"
	OverrideIncorrect OverrideTarget = "incorrect"
	OverrideRetype    OverrideTarget = "retype"
	// OverrideToggle flips the pending verdict to its opposite.
	OverrideToggle OverrideTarget = "toggle"
)

// Controller owns all mutable state for one review session. Exactly one
// question is open at a time; every transition happens synchronously
// inside a Submit or Override call.
type Controller struct {
	settings *config.Settings
	checker  checker.Checker
	trans    checker.Transliterator
	agg      *stats.Aggregator
	srs      *srs.Manager
	listener Listener
	clock    Clock

	state    State
	subj     *subject.Subject
	qtype    subject.QuestionType
	synonyms []string

	first      *AnswerCheck
	pending    *Verdict
	delayUntil time.Time
	overridden bool
}

// Option configures optional collaborators.
type Option func(*Controller)

// WithSRS attaches a spaced repetition manager.
func WithSRS(m *srs.Manager) Option { return func(c *Controller) { c.srs = m } }

// WithListener attaches a host notification listener.
func WithListener(l Listener) Option { return func(c *Controller) { c.listener = l } }

// WithClock replaces the delay gate clock. Used in tests.
func WithClock(clk Clock) Option { return func(c *Controller) { c.clock = clk } }

// New creates a review controller. The checker, transliterator, stats
// aggregator and settings are required; construction fails without
// them rather than deferring the failure to answer time.
func New(settings *config.Settings, chk checker.Checker, trans checker.Transliterator, agg *stats.Aggregator, opts ...Option) (*Controller, error) {
	switch {
	case settings == nil:
		return nil, errors.New("review: settings required")
	case chk == nil:
		return nil, errors.New("review: answer checker required")
	case trans == nil:
		return nil, errors.New("review: transliterator required")
	case agg == nil:
		return nil, errors.New("review: stats aggregator required")
	}
	c := &Controller{
		settings: settings,
		checker:  chk,
		trans:    trans,
		agg:      agg,
		clock:    realClock{},
		state:    StateFirstSubmit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns the protocol state.
func (c *Controller) State() State { return c.state }

// Pending returns the pending verdict, or nil outside second_submit.
func (c *Controller) Pending() *Verdict { return c.pending }

// First returns the first-answer snapshot, or nil outside second_submit.
func (c *Controller) First() *AnswerCheck { return c.first }

// Overridden reports whether the pending verdict was changed by an
// override since the first submit.
func (c *Controller) Overridden() bool { return c.overridden }

// DelayActive reports whether the delay gate is currently dropping
// submits.
func (c *Controller) DelayActive() bool {
	return !c.delayUntil.IsZero() && c.clock.Now().Before(c.delayUntil)
}

// DelayRemaining returns how long the delay gate stays active.
func (c *Controller) DelayRemaining() time.Duration {
	if !c.DelayActive() {
		return 0
	}
	return c.delayUntil.Sub(c.clock.Now())
}

// StartQuestion opens a new question. It fails while a verdict is still
// pending for the previous one.
func (c *Controller) StartQuestion(subj *subject.Subject, qtype subject.QuestionType, synonyms []string) error {
	if c.state != StateFirstSubmit || c.pending != nil {
		return errors.New("review: previous question still pending")
	}
	if subj == nil {
		return errors.New("review: nil subject")
	}
	c.subj = subj
	c.qtype = qtype
	c.synonyms = synonyms
	c.first = nil
	c.pending = nil
	c.overridden = false
	c.delayUntil = time.Time{}
	return nil
}

// Subject returns the open question's subject, or nil.
func (c *Controller) Subject() *subject.Subject { return c.subj }

// QuestionType returns the open question's type.
func (c *Controller) QuestionType() subject.QuestionType { return c.qtype }

// Submit drives the protocol one step. In first_submit the answer is
// evaluated and classified; in second_submit the pending verdict is
// committed and the answer argument is ignored. With lightning mode on,
// an ungated first submit chains straight into the commit; the chain is
// a loop, not recursion, so consecutive auto-advances never grow the
// stack.
func (c *Controller) Submit(answer string) SubmitResult {
	res := c.submitOnce(answer)
	for res.Outcome == OutcomeAwaitingConfirm && !res.Delayed && c.settings.LightningEnabled {
		res = c.submitOnce(answer)
	}
	return res
}

func (c *Controller) submitOnce(answer string) SubmitResult {
	if c.DelayActive() {
		return SubmitResult{Outcome: OutcomeIgnored}
	}
	if c.subj == nil {
		return SubmitResult{Outcome: OutcomeIgnored}
	}
	switch c.state {
	case StateFirstSubmit:
		return c.firstSubmit(answer)
	case StateSecondSubmit:
		return c.commit()
	}
	return SubmitResult{Outcome: OutcomeIgnored}
}

func (c *Controller) firstSubmit(answer string) SubmitResult {
	answer = strings.TrimSpace(answer)
	if c.qtype == subject.QuestionReading {
		answer = c.trans.ToKana(answer)
	}
	if answer == "" || !questionTypeAndResponseMatch(c.qtype, answer) {
		return SubmitResult{Outcome: OutcomeShaken}
	}

	raw := c.checker.Evaluate(c.qtype, answer, c.subj, c.synonyms)
	ref := verdict.Classify(raw, c.qtype, c.subj, answer, c.synonyms, c.trans, c.settings.Policy())

	v := Verdict{
		Answer:          answer,
		Passed:          ref.Passed,
		Accurate:        ref.Accurate,
		MultipleAnswers: ref.MultipleAnswers,
		Category:        ref.Category,
		Exception:       ref.Exception,
		Note:            ref.Note,
	}

	// An exception message keeps the question open for a corrected
	// resubmit; nothing is snapshotted.
	if v.Exception != "" {
		return SubmitResult{Outcome: OutcomeWarned, Verdict: v}
	}

	c.first = &AnswerCheck{
		Answer:          answer,
		Passed:          v.Passed,
		Accurate:        v.Accurate,
		MultipleAnswers: v.MultipleAnswers,
		CorrectAnswers:  c.subj.AcceptedAnswers(c.qtype, c.synonyms),
	}
	c.pending = &v
	c.state = StateSecondSubmit
	c.overridden = false

	res := SubmitResult{Outcome: OutcomeAwaitingConfirm, Verdict: v}
	res.Preview = c.previewAndNotify()
	if d, period := c.evalDelay(&v, res.Preview); d {
		c.armDelay(period)
		res.Delayed = true
		res.DelayPeriod = period
	}
	if res.Preview.ItemComplete && c.srs != nil {
		ch := c.srs.Project(c.subj.ID, res.Preview.Subject)
		res.SRSChange = &ch
	}
	return res
}

func (c *Controller) commit() SubmitResult {
	v := *c.pending
	final := c.agg.Commit(c.subj.ID, c.subj.Kind, c.qtype, v.Passed)

	res := SubmitResult{Outcome: OutcomeCommitted, Verdict: v, Final: final}
	if final.ItemComplete && c.srs != nil {
		ch := c.srs.Update(c.subj.ID, final.Subject)
		res.SRSChange = &ch
	}

	c.first = nil
	c.pending = nil
	c.subj = nil
	c.synonyms = nil
	c.delayUntil = time.Time{}
	c.state = StateFirstSubmit
	return res
}

// previewAndNotify computes the would-be stats for the pending verdict
// and fires the answered notification.
func (c *Controller) previewAndNotify() stats.Result {
	preview := c.agg.Preview(c.subj.ID, c.subj.Kind, c.qtype, c.pending.Passed)
	if c.listener != nil {
		c.listener.QuestionAnswered(AnsweredEvent{
			Subject:      c.subj,
			Stats:        preview.Subject,
			QuestionType: c.qtype,
			Answer:       c.pending.Answer,
			Passed:       c.pending.Passed,
		})
	}
	return preview
}

// evalDelay decides whether entering second_submit gates advancement,
// and for how long.
func (c *Controller) evalDelay(v *Verdict, preview stats.Result) (bool, time.Duration) {
	s := c.settings
	mistake := (!v.Passed && s.DelayWrong) ||
		(v.Passed && ((!v.Accurate && s.DelaySlightlyOff) ||
			(v.MultipleAnswers && s.DelayMultiMeaning)))
	if mistake {
		return true, secondsToDuration(s.DelayPeriod)
	}
	if c.burnWarningApplies(v, preview) {
		return true, secondsToDuration(s.BurnDelayPeriod)
	}
	return false, 0
}

// burnWarningApplies reports whether committing this verdict would burn
// the item and the settings ask for a warning delay first.
func (c *Controller) burnWarningApplies(v *Verdict, preview stats.Result) bool {
	if c.srs == nil || !v.Passed || !preview.ItemComplete {
		return false
	}
	if !c.srs.WouldBurn(c.subj.ID) || preview.Subject.TotalIncorrect() > 0 {
		return false
	}
	switch c.settings.WarnBurn {
	case config.BurnWarnAlways:
		return true
	case config.BurnWarnCheated:
		return c.overridden
	}
	return false
}

func (c *Controller) armDelay(period time.Duration) {
	c.delayUntil = c.clock.Now().Add(period)
}

// Override mutates or discards the pending verdict. It reports false,
// with no state change, when the target is not permitted or no verdict
// is pending. Retype is also the cancel path out of a mid-delay
// second_submit; the other targets clear an active delay as well.
func (c *Controller) Override(target OverrideTarget) (SubmitResult, bool) {
	if c.state != StateSecondSubmit || c.pending == nil {
		return SubmitResult{Outcome: OutcomeIgnored}, false
	}
	if target == OverrideToggle {
		if c.pending.Passed {
			target = OverrideIncorrect
		} else {
			target = OverrideCorrect
		}
	}

	switch target {
	case OverrideCorrect:
		if !(c.settings.AllowChangeCorrect || c.first.Passed) {
			return SubmitResult{Outcome: OutcomeIgnored}, false
		}
		answer := c.first.Answer
		if !c.first.Passed {
			next, ok := c.first.nextCorrectAnswer()
			if !ok {
				return SubmitResult{Outcome: OutcomeIgnored}, false
			}
			answer = next
		}
		c.delayUntil = time.Time{}
		c.overridden = true
		c.pending = &Verdict{Answer: answer, Passed: true, Accurate: true}
		res := SubmitResult{Outcome: OutcomeAwaitingConfirm, Verdict: *c.pending}
		res.Preview = c.previewAndNotify()
		if c.burnWarningApplies(c.pending, res.Preview) {
			c.armDelay(secondsToDuration(c.settings.BurnDelayPeriod))
			res.Delayed = true
			res.DelayPeriod = secondsToDuration(c.settings.BurnDelayPeriod)
		}
		if res.Preview.ItemComplete && c.srs != nil {
			ch := c.srs.Project(c.subj.ID, res.Preview.Subject)
			res.SRSChange = &ch
		}
		return res, true

	case OverrideIncorrect:
		if !(c.pending.Passed && (c.settings.AllowChangeIncorrect || !c.first.Passed)) {
			return SubmitResult{Outcome: OutcomeIgnored}, false
		}
		answer := incorrectPlaceholder
		if !c.first.Passed {
			answer = c.first.Answer
		}
		c.delayUntil = time.Time{}
		c.overridden = true
		c.pending = &Verdict{Answer: answer}
		res := SubmitResult{Outcome: OutcomeAwaitingConfirm, Verdict: *c.pending}
		res.Preview = c.previewAndNotify()
		return res, true

	case OverrideRetype:
		if !c.settings.AllowRetyping {
			return SubmitResult{Outcome: OutcomeIgnored}, false
		}
		c.delayUntil = time.Time{}
		c.first = nil
		c.pending = nil
		c.overridden = false
		c.state = StateFirstSubmit
		if c.listener != nil {
			c.listener.QuestionReset(c.agg.Session())
		}
		return SubmitResult{Outcome: OutcomeReset}, true
	}

	return SubmitResult{Outcome: OutcomeIgnored}, false
}

// questionTypeAndResponseMatch rejects answers that cannot possibly be
// of the right shape for the question type before evaluation.
func questionTypeAndResponseMatch(qtype subject.QuestionType, answer string) bool {
	if qtype == subject.QuestionReading {
		return kana.IsKana(answer)
	}
	return true
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
