package review

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/fukushu-cli/fukushu/internal/config"
	"github.com/fukushu-cli/fukushu/internal/deck"
	rev "github.com/fukushu-cli/fukushu/internal/review"
	"github.com/fukushu-cli/fukushu/internal/srs"
	"github.com/fukushu-cli/fukushu/internal/stats"
	"github.com/fukushu-cli/fukushu/internal/store"
	"github.com/fukushu-cli/fukushu/internal/subject"
	"github.com/fukushu-cli/fukushu/internal/ui/components"
	"github.com/fukushu-cli/fukushu/internal/ui/layout"
)

// Screen drives one review session: it feeds queued questions to the
// controller, renders verdicts and routes override keys.
type Screen struct {
	ctrl     *rev.Controller
	settings *config.Settings
	dk       *deck.Deck
	agg      *stats.Aggregator
	st       *store.Store // nil disables history
	session  string

	queue []deck.Question
	input components.AnswerInput

	banner  string
	note    string
	shake   bool
	delayed bool
	popup   *srs.Change
	done    bool
	errMsg  string
}

// New creates a review screen over the given question queue. The store
// may be nil when history recording is disabled.
func New(ctrl *rev.Controller, settings *config.Settings, dk *deck.Deck, queue []deck.Question, agg *stats.Aggregator, st *store.Store, sessionID string) *Screen {
	return &Screen{
		ctrl:     ctrl,
		settings: settings,
		dk:       dk,
		agg:      agg,
		st:       st,
		session:  sessionID,
		queue:    queue,
		input:    components.NewAnswerInput("Your answer...", layout.ContentWidth),
	}
}

// Done reports whether the queue has been exhausted.
func (s *Screen) Done() bool { return s.done }

// Lightning reports whether auto-advance is enabled.
func (s *Screen) Lightning() bool { return s.settings.LightningEnabled }

// ShowBolt reports whether the lightning indicator should be drawn.
func (s *Screen) ShowBolt() bool { return s.settings.ShowLightningButton }

func (s *Screen) Init() tea.Cmd {
	if err := s.startCurrent(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.input.Init()
}

// Title returns the screen name for the header.
func (s *Screen) Title() string {
	if s.done {
		return "Session Complete"
	}
	return "Reviews"
}

// KeyHints lists the footer bindings for the current phase.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.done {
		return []layout.KeyHint{{Key: "Enter", Description: "Finish"}}
	}

	var hints []layout.KeyHint
	if s.input.Locked() {
		hints = []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "+", Description: "Mark right"},
			{Key: "-", Description: "Mark wrong"},
			{Key: "Backspace", Description: "Retype"},
		}
	} else {
		hints = []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	}
	if s.settings.ShowLightningButton {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "Lightning"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (*Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case shakeDoneMsg:
		s.shake = false
		return s, nil

	case delayDoneMsg:
		s.delayed = false
		return s, nil

	case srsPopupDoneMsg:
		s.popup = nil
		return s, nil

	case persistDoneMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case sessionEndMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyMsg) (*Screen, tea.Cmd) {
	if s.done {
		if msg.String() == "enter" {
			return s, tea.Quit
		}
		return s, nil
	}

	switch msg.String() {
	case "enter":
		return s.submit()

	case "+":
		if s.input.Locked() {
			return s.override(rev.OverrideCorrect)
		}

	case "-":
		if s.input.Locked() {
			return s.override(rev.OverrideIncorrect)
		}

	case "backspace", "esc":
		if s.input.Locked() {
			return s.retype()
		}

	case "ctrl+l":
		s.settings.LightningEnabled = !s.settings.LightningEnabled
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) submit() (*Screen, tea.Cmd) {
	overridden := s.ctrl.Overridden()
	res := s.ctrl.Submit(s.input.Value())

	switch res.Outcome {
	case rev.OutcomeIgnored:
		return s, nil

	case rev.OutcomeShaken:
		s.shake = true
		return s, tickCmd(300*time.Millisecond, shakeDoneMsg{})

	case rev.OutcomeWarned:
		s.banner = res.Verdict.Exception
		s.shake = true
		return s, tickCmd(300*time.Millisecond, shakeDoneMsg{})

	case rev.OutcomeAwaitingConfirm:
		s.input.Lock(res.Verdict.Answer, res.Verdict.Passed, res.Verdict.Accurate)
		s.note = res.Verdict.Note
		var cmd tea.Cmd
		if res.Delayed {
			s.delayed = true
			cmd = tickCmd(res.DelayPeriod, delayDoneMsg{})
		}
		return s, cmd

	case rev.OutcomeCommitted:
		return s.advance(res, overridden)
	}

	return s, nil
}

func (s *Screen) override(target rev.OverrideTarget) (*Screen, tea.Cmd) {
	res, ok := s.ctrl.Override(target)
	if !ok {
		return s, nil
	}
	if s.settings.ShowCorrectedAnswer {
		s.input.Lock(res.Verdict.Answer, res.Verdict.Passed, res.Verdict.Accurate)
	} else {
		s.input.Mark(res.Verdict.Passed, res.Verdict.Accurate)
	}
	s.note = res.Verdict.Note
	s.delayed = false
	return s, nil
}

func (s *Screen) retype() (*Screen, tea.Cmd) {
	if _, ok := s.ctrl.Override(rev.OverrideRetype); !ok {
		return s, nil
	}
	s.input.Unlock()
	s.banner = ""
	s.note = ""
	s.delayed = false
	return s, s.input.Init()
}

// advance records the committed verdict and moves to the next question.
// Failed questions go to the back of the queue.
func (s *Screen) advance(res rev.SubmitResult, overridden bool) (*Screen, tea.Cmd) {
	var cmds []tea.Cmd

	q := s.queue[0]
	s.queue = s.queue[1:]
	if !res.Verdict.Passed {
		s.queue = append(s.queue, q)
	}

	if s.st != nil {
		cmds = append(cmds, s.persistAnswer(q, res, overridden))
	}

	if res.SRSChange != nil && s.settings.SRSMsgPeriod > 0 {
		s.popup = res.SRSChange
		cmds = append(cmds, tickCmd(secondsToDuration(s.settings.SRSMsgPeriod), srsPopupDoneMsg{}))
	}

	s.input.Unlock()
	s.banner = ""
	s.note = ""
	s.delayed = false

	if len(s.queue) == 0 {
		s.done = true
		cmds = append(cmds, s.finishSession())
		return s, tea.Batch(cmds...)
	}

	if err := s.startCurrent(); err != nil {
		s.errMsg = err.Error()
		return s, tea.Batch(cmds...)
	}
	cmds = append(cmds, s.input.Init())
	return s, tea.Batch(cmds...)
}

func (s *Screen) startCurrent() error {
	q := s.queue[0]
	return s.ctrl.StartQuestion(q.Subject, q.Type, s.dk.SynonymsFor(q.Subject.ID))
}

func (s *Screen) persistAnswer(q deck.Question, res rev.SubmitResult, overridden bool) tea.Cmd {
	rec := store.AnswerRecord{
		SessionID:    s.session,
		SubjectID:    q.Subject.ID,
		Characters:   q.Subject.Characters,
		QuestionType: string(q.Type),
		Answer:       res.Verdict.Answer,
		Passed:       res.Verdict.Passed,
		Category:     string(res.Verdict.Category),
		Overridden:   overridden,
		AnsweredAt:   time.Now(),
	}
	return func() tea.Msg {
		return persistDoneMsg{Err: s.st.RecordAnswer(context.Background(), rec)}
	}
}

func (s *Screen) finishSession() tea.Cmd {
	if s.st == nil {
		return nil
	}
	sess := s.agg.Session()
	return func() tea.Msg {
		err := s.st.FinishSession(context.Background(), s.session,
			sess.Answered, sess.Correct, sess.Complete)
		return sessionEndMsg{Err: err}
	}
}

func (s *Screen) currentSubject() *subject.Subject {
	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[0].Subject
}

func tickCmd(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
