// Package checker evaluates a typed answer against a subject's accepted
// answers and produces the base verdict consumed by the verdict pipeline.
package checker

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/fukushu-cli/fukushu/internal/kana"
	"github.com/fukushu-cli/fukushu/internal/subject"
)

// RawVerdict is the matcher's base verdict for one submitted answer.
// Passed with Accurate=false means an accepted-but-imperfect (typo)
// match. Exception carries an advisory message; Sentinel marks a
// matcher-internal exception with no user-facing message.
type RawVerdict struct {
	Passed          bool
	Accurate        bool
	MultipleAnswers bool
	Exception       string
	Sentinel        bool
}

// Checker compares a typed answer against a subject's accepted-answer
// set for one question type. Implementations must be synchronous and
// side-effect free.
type Checker interface {
	Evaluate(qtype subject.QuestionType, answer string, subj *subject.Subject, synonyms []string) RawVerdict
}

// Transliterator converts typed text toward a phonetic (kana)
// representation. Used for cross-type detection.
type Transliterator interface {
	ToKana(text string) string
	ToHiraganaLoose(text string) string
}

// KanaTransliterator is the default Transliterator backed by the kana
// package.
type KanaTransliterator struct{}

func (KanaTransliterator) ToKana(text string) string          { return kana.ToKana(text) }
func (KanaTransliterator) ToHiraganaLoose(text string) string { return kana.ToHiraganaLoose(text) }

// Exception messages emitted by the default checker. The verdict
// classifier keys on substrings of these.
const (
	msgKanjiMeaningForVocab = "We want the vocabulary meaning, not the kanji meaning."
	msgKanjiReadingForVocab = "We want the vocabulary reading, not the kanji reading."
	msgWrongNCount          = "Did you forget that ん is typed as \"nn\"?"
	msgSmallKanaFmt         = "Watch out for the small %s!"
)

// DefaultChecker matches meanings with typo tolerance and readings
// exactly, emitting advisory exceptions for the recognizable near-miss
// shapes.
type DefaultChecker struct{}

var _ Checker = DefaultChecker{}

// Evaluate implements Checker.
func (DefaultChecker) Evaluate(qtype subject.QuestionType, answer string, subj *subject.Subject, synonyms []string) RawVerdict {
	if qtype == subject.QuestionReading {
		return evaluateReading(answer, subj)
	}
	return evaluateMeaning(answer, subj, synonyms)
}

func evaluateMeaning(answer string, subj *subject.Subject, synonyms []string) RawVerdict {
	normalized := subject.NormalizeMeaning(answer)
	accepted := subj.AcceptedAnswers(subject.QuestionMeaning, synonyms)
	multiple := len(distinctMeanings(subj.Meanings)) > 1

	for _, b := range subj.BlacklistedMeanings() {
		if subject.NormalizeMeaning(b) == normalized {
			return RawVerdict{MultipleAnswers: multiple}
		}
	}

	exact := false
	fuzzy := false
	for _, a := range accepted {
		na := subject.NormalizeMeaning(a)
		if na == normalized {
			exact = true
			break
		}
		if withinTypoTolerance(normalized, na) {
			fuzzy = true
		}
	}
	switch {
	case exact:
		return RawVerdict{Passed: true, Accurate: true, MultipleAnswers: multiple}
	case fuzzy:
		return RawVerdict{Passed: true, Accurate: false, MultipleAnswers: multiple}
	}

	// Single-character vocabulary answered with the kanji's meaning.
	if subj.Kind == subject.KindVocabulary && isSingleCharacter(subj.Characters) {
		for _, m := range subj.ComponentMeanings {
			if subject.NormalizeMeaning(m) == normalized {
				return RawVerdict{Exception: msgKanjiMeaningForVocab, MultipleAnswers: multiple}
			}
		}
	}

	return RawVerdict{MultipleAnswers: multiple}
}

func evaluateReading(answer string, subj *subject.Subject) RawVerdict {
	accepted := subj.AcceptedAnswers(subject.QuestionReading, nil)
	for _, a := range accepted {
		if a == answer {
			return RawVerdict{Passed: true, Accurate: true}
		}
	}

	// Big kana typed where a small one belongs.
	for _, a := range accepted {
		if kana.HasSmallKana(a) && kana.EnlargeSmallKana(a) == answer {
			return RawVerdict{Exception: fmt.Sprintf(msgSmallKanaFmt, smallKanaIn(a))}
		}
	}

	// Same reading up to the number of ん.
	for _, a := range accepted {
		if kana.CountN(a) != kana.CountN(answer) && stripN(a) == stripN(answer) {
			return RawVerdict{Exception: msgWrongNCount}
		}
	}

	// Single-character vocabulary answered with one of the kanji's
	// readings instead of the vocabulary reading.
	if subj.Kind == subject.KindVocabulary && isSingleCharacter(subj.Characters) {
		for _, r := range subj.ComponentReadings {
			if r == answer {
				return RawVerdict{Exception: msgKanjiReadingForVocab}
			}
		}
	}

	return RawVerdict{}
}

// withinTypoTolerance accepts a meaning whose edit distance from an
// accepted answer is small relative to the answer's length. Short
// answers get no slack.
func withinTypoTolerance(typed, accepted string) bool {
	tol := typoTolerance(len([]rune(accepted)))
	if tol == 0 {
		return false
	}
	return levenshtein.Distance(typed, accepted, nil) <= tol
}

func typoTolerance(n int) int {
	switch {
	case n <= 3:
		return 0
	case n <= 5:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

func distinctMeanings(meanings []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range meanings {
		n := subject.NormalizeMeaning(m)
		if !seen[n] {
			seen[n] = true
			out = append(out, m)
		}
	}
	return out
}

func isSingleCharacter(s string) bool {
	return len([]rune(s)) == 1
}

func smallKanaIn(s string) string {
	for _, r := range s {
		if kana.EnlargeSmallKana(string(r)) != string(r) {
			return string(r)
		}
	}
	return ""
}

func stripN(s string) string {
	return strings.ReplaceAll(s, "ん", "")
}
