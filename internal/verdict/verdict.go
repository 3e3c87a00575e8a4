// Package verdict refines the matcher's base verdict: it classifies
// near-miss answers into exception categories and applies the
// user-configured policy for each category.
package verdict

import (
	"strings"

	"github.com/fukushu-cli/fukushu/internal/checker"
	"github.com/fukushu-cli/fukushu/internal/subject"
)

// Action is the configured response to an exception category.
type Action string

const (
	ActionIgnore    Action = "ignore"
	ActionWarn      Action = "warn"
	ActionMarkWrong Action = "wrong"
)

// Category classifies a near-miss answer. A verdict carries at most one
// category; classification is first-match-wins.
type Category string

const (
	CategoryNone                 Category = ""
	CategoryTypo                 Category = "typo"
	CategoryAnswerTypeMismatch   Category = "answer_type_mismatch"
	CategoryWrongNCount          Category = "wrong_n_count"
	CategorySmallKana            Category = "small_kana"
	CategoryKanjiReadingForVocab Category = "kanji_reading_for_vocab"
	CategoryKanjiMeaningForVocab Category = "kanji_meaning_for_vocab"
)

// Policy maps exception categories to configured actions. Missing
// entries default to warn.
type Policy map[Category]Action

// ActionFor returns the configured action for a category.
func (p Policy) ActionFor(c Category) Action {
	if a, ok := p[c]; ok {
		return a
	}
	return ActionWarn
}

// Messages attached to refined verdicts.
const (
	msgTypoWarn    = "Your answer was close, but not exact"
	msgTypoWrong   = "Your answer was not exact, as required by your settings."
	msgWantMeaning = "Oops, we want the meaning, not the reading."
	msgWantReading = "Oops, we want the reading, not the meaning."
)

// Refined is the classified, policy-adjusted verdict.
type Refined struct {
	Passed          bool
	Accurate        bool
	MultipleAnswers bool
	Category        Category
	Exception       string // empty when no message should be shown
	Note            string // informational only, never gates advancement
}

// categoryMarkers maps matcher exception-message substrings to the
// specific categories. The substring matching is a compatibility shim
// for matchers that report exceptions as free text; a structured
// category from the matcher would replace it.
var categoryMarkers = []struct {
	substr   string
	category Category
}{
	{"want the vocabulary meaning, not the kanji meaning", CategoryKanjiMeaningForVocab},
	{"want the vocabulary reading, not the kanji reading", CategoryKanjiReadingForVocab},
	{"forget that ん", CategoryWrongNCount},
	{"watch out for the small", CategorySmallKana},
}

// Classify refines a raw verdict in fixed priority order: typo first,
// then cross-type detection, then the specific message-matched
// categories. Policy is applied per category; ignore never changes
// pass/fail, it only suppresses the message.
func Classify(raw checker.RawVerdict, qtype subject.QuestionType, subj *subject.Subject, answer string, synonyms []string, trans checker.Transliterator, policy Policy) Refined {
	r := Refined{
		Passed:          raw.Passed,
		Accurate:        raw.Accurate,
		MultipleAnswers: raw.MultipleAnswers,
	}
	// A matcher-internal sentinel exception carries no message.
	if !raw.Sentinel {
		r.Exception = raw.Exception
	}

	switch {
	case raw.Passed && !raw.Accurate && qtype == subject.QuestionMeaning:
		r.Category = CategoryTypo
		applyTypoAction(&r, policy.ActionFor(CategoryTypo))
		return r

	case !raw.Passed && detectTypeMismatch(qtype, subj, answer, synonyms, trans):
		r.Category = CategoryAnswerTypeMismatch
		switch policy.ActionFor(CategoryAnswerTypeMismatch) {
		case ActionIgnore, ActionMarkWrong:
			// A mismatch never earns credit; anything but warn just
			// drops the message.
			r.Exception = ""
		default:
			// On a meaning question a checker message already on the
			// verdict wins; on a reading question the mismatch message
			// replaces it.
			if qtype == subject.QuestionMeaning {
				if r.Exception == "" {
					r.Exception = msgWantMeaning
				}
			} else {
				r.Exception = msgWantReading
			}
		}
		return r
	}

	if r.Exception != "" {
		lower := strings.ToLower(r.Exception)
		for _, m := range categoryMarkers {
			if strings.Contains(lower, strings.ToLower(m.substr)) {
				r.Category = m.category
				applySpecificAction(&r, policy.ActionFor(m.category))
				return r
			}
		}
	}

	r.Category = CategoryNone
	return r
}

func applyTypoAction(r *Refined, action Action) {
	switch action {
	case ActionWarn:
		r.Exception = msgTypoWarn
	case ActionMarkWrong:
		r.Passed = false
		r.Exception = ""
		r.Note = msgTypoWrong
	default:
		r.Exception = ""
	}
}

func applySpecificAction(r *Refined, action Action) {
	switch action {
	case ActionMarkWrong:
		r.Passed = false
		r.Exception = ""
	case ActionIgnore:
		r.Exception = ""
	}
	// Warn keeps the matcher-reported pass state and message.
}

// detectTypeMismatch reports whether a failed answer looks like a valid
// answer for the other question type: a reading typed where a meaning
// was wanted, or a meaning typed where a reading was wanted.
func detectTypeMismatch(qtype subject.QuestionType, subj *subject.Subject, answer string, synonyms []string, trans checker.Transliterator) bool {
	if qtype == subject.QuestionMeaning {
		asKana := trans.ToKana(answer)
		for _, r := range subj.AllReadings() {
			if r == asKana {
				return true
			}
		}
		return false
	}

	answerAsKana := trans.ToHiraganaLoose(strings.ToLower(answer))
	for _, m := range subj.AcceptedAnswers(subject.QuestionMeaning, synonyms) {
		if trans.ToHiraganaLoose(subject.NormalizeMeaning(m)) == answerAsKana {
			return true
		}
	}
	return false
}
