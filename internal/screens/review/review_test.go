package review

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/fukushu-cli/fukushu/internal/checker"
	"github.com/fukushu-cli/fukushu/internal/config"
	"github.com/fukushu-cli/fukushu/internal/deck"
	rev "github.com/fukushu-cli/fukushu/internal/review"
	"github.com/fukushu-cli/fukushu/internal/stats"
	"github.com/fukushu-cli/fukushu/internal/store"
	"github.com/fukushu-cli/fukushu/internal/subject"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(t *testing.T, mutate func(*config.Settings)) (*Screen, *stats.Aggregator) {
	t.Helper()
	settings := config.Defaults()
	settings.DelayWrong = false
	if mutate != nil {
		mutate(&settings)
	}

	dk := &deck.Deck{
		Name: "test",
		Subjects: []*subject.Subject{
			{
				ID: 1, Kind: subject.KindVocabulary, Characters: "犬",
				Meanings:          []string{"dog"},
				Readings:          []subject.Reading{{Value: "いぬ", Primary: true}},
				ComponentReadings: []string{"けん"},
			},
		},
	}
	agg := stats.NewAggregator(func() int { return len(dk.Subjects) })
	ctrl, err := rev.New(&settings, checker.DefaultChecker{}, checker.KanaTransliterator{}, agg)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	s := New(ctrl, &settings, dk, dk.BuildQueue(nil), agg, nil, "")
	s.Init()
	return s, agg
}

func typeAnswer(s *Screen, text string) *Screen {
	for _, r := range text {
		s, _ = s.Update(keyPress(r))
	}
	return s
}

func TestScreenTitle(t *testing.T) {
	s, _ := testScreen(t, nil)
	if s.Title() != "Reviews" {
		t.Errorf("Title = %q, want Reviews", s.Title())
	}
}

func TestSubmitLocksInputOnVerdict(t *testing.T) {
	s, _ := testScreen(t, nil)

	s = typeAnswer(s, "dog")
	s, _ = s.Update(specialKey(tea.KeyEnter))

	if !s.input.Locked() {
		t.Error("input not locked after verdict")
	}
	hints := s.KeyHints()
	if len(hints) == 0 || hints[0].Key != "Enter" {
		t.Errorf("hints = %+v, want confirm hints", hints)
	}
}

func TestConfirmAdvancesToNextQuestion(t *testing.T) {
	s, agg := testScreen(t, nil)

	s = typeAnswer(s, "dog")
	s, _ = s.Update(specialKey(tea.KeyEnter))
	s, _ = s.Update(specialKey(tea.KeyEnter))

	if s.input.Locked() {
		t.Error("input still locked after commit")
	}
	if got := agg.Session().Answered; got != 1 {
		t.Errorf("answered = %d, want 1", got)
	}
	if len(s.queue) != 1 {
		t.Errorf("queue length = %d, want 1 remaining question", len(s.queue))
	}
}

func TestFailedQuestionRequeued(t *testing.T) {
	s, _ := testScreen(t, nil)
	initial := len(s.queue)

	s = typeAnswer(s, "cat")
	s, _ = s.Update(specialKey(tea.KeyEnter))
	s, _ = s.Update(specialKey(tea.KeyEnter))

	if len(s.queue) != initial {
		t.Errorf("queue length = %d after failed commit, want requeued %d", len(s.queue), initial)
	}
}

func TestRetypeUnlocksInput(t *testing.T) {
	s, _ := testScreen(t, nil)

	s = typeAnswer(s, "cat")
	s, _ = s.Update(specialKey(tea.KeyEnter))
	if !s.input.Locked() {
		t.Fatal("input not locked")
	}

	s, _ = s.Update(specialKey(tea.KeyBackspace))
	if s.input.Locked() {
		t.Error("input still locked after retype")
	}
	if s.input.Value() != "" {
		t.Errorf("input value = %q after retype, want empty", s.input.Value())
	}
}

func TestWarnedAnswerShowsBanner(t *testing.T) {
	s, _ := testScreen(t, nil)

	// Drain the meaning question first so the reading question is current.
	s = typeAnswer(s, "dog")
	s, _ = s.Update(specialKey(tea.KeyEnter))
	s, _ = s.Update(specialKey(tea.KeyEnter))

	s = typeAnswer(s, "ken")
	s, _ = s.Update(specialKey(tea.KeyEnter))

	if s.input.Locked() {
		t.Error("input locked on warned answer, want still editable")
	}
	if s.banner == "" {
		t.Error("no banner on warned answer")
	}
}

func TestLightningToggleKey(t *testing.T) {
	s, _ := testScreen(t, nil)

	if s.Lightning() {
		t.Fatal("lightning on by default")
	}
	s, _ = s.Update(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	if !s.Lightning() {
		t.Error("ctrl+l did not enable lightning")
	}
}

func TestLightningToggleWorksWithHiddenButton(t *testing.T) {
	s, _ := testScreen(t, func(c *config.Settings) { c.ShowLightningButton = false })

	s, _ = s.Update(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	if !s.Lightning() {
		t.Error("ctrl+l ignored while the button is hidden")
	}
	if s.ShowBolt() {
		t.Error("bolt indicator shown while the button is hidden")
	}
}

func TestSessionCompletes(t *testing.T) {
	s, agg := testScreen(t, nil)

	answers := map[subject.QuestionType]string{
		subject.QuestionMeaning: "dog",
		subject.QuestionReading: "inu",
	}
	for i := 0; i < 2; i++ {
		s = typeAnswer(s, answers[s.queue[0].Type])
		s, _ = s.Update(specialKey(tea.KeyEnter))
		s, _ = s.Update(specialKey(tea.KeyEnter))
	}

	if !s.Done() {
		t.Fatal("screen not done after clearing the queue")
	}
	if got := agg.Session(); got.Complete != 1 || got.Remaining != 0 {
		t.Errorf("session = %+v, want complete 1 remaining 0", got)
	}
	if s.Title() != "Session Complete" {
		t.Errorf("Title = %q, want Session Complete", s.Title())
	}
	if view := s.View(80, 24); view == "" {
		t.Error("empty summary view")
	}
}

// runCmds executes a command tree synchronously and collects the
// produced messages.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmds(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestCommittedAnswerRecorded(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	sid, err := st.StartSession(context.Background())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	settings := config.Defaults()
	settings.DelayWrong = false
	dk := &deck.Deck{
		Name: "test",
		Subjects: []*subject.Subject{
			{
				ID: 1, Kind: subject.KindVocabulary, Characters: "温泉",
				Meanings: []string{"hot spring"},
				Readings: []subject.Reading{{Value: "おんせん", Primary: true}},
			},
		},
	}
	agg := stats.NewAggregator(func() int { return len(dk.Subjects) })
	ctrl, err := rev.New(&settings, checker.DefaultChecker{}, checker.KanaTransliterator{}, agg)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	s := New(ctrl, &settings, dk, dk.BuildQueue(nil), agg, st, sid)
	s.Init()

	s = typeAnswer(s, "hot sprng")
	s, _ = s.Update(specialKey(tea.KeyEnter))
	s, cmd := s.Update(specialKey(tea.KeyEnter))
	for _, msg := range runCmds(cmd) {
		s, _ = s.Update(msg)
	}
	if s.errMsg != "" {
		t.Fatalf("screen error: %s", s.errMsg)
	}

	sum, err := st.Summarize(context.Background())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Answered != 1 || sum.Correct != 1 {
		t.Errorf("summary = %+v, want one correct answer", sum)
	}
	if sum.ByCategory["typo"] != 1 {
		t.Errorf("ByCategory = %v, want typo counted once", sum.ByCategory)
	}
}

func TestViewRendersQuestion(t *testing.T) {
	s, _ := testScreen(t, nil)
	if view := s.View(80, 24); view == "" {
		t.Error("empty question view")
	}
}
