// Package subject defines the review items being quizzed and the
// accepted-answer sets derived from them.
package subject

import "strings"

// Kind identifies the type of a review item.
type Kind string

const (
	KindRadical        Kind = "radical"
	KindKanji          Kind = "kanji"
	KindVocabulary     Kind = "vocabulary"
	KindKanaVocabulary Kind = "kana_vocabulary"
)

// QuestionType selects which half of a subject is being tested.
type QuestionType string

const (
	QuestionMeaning QuestionType = "meaning"
	QuestionReading QuestionType = "reading"
)

// AuxiliaryType tags auxiliary meanings/readings.
type AuxiliaryType string

const (
	AuxWhitelist AuxiliaryType = "whitelist"
	AuxBlacklist AuxiliaryType = "blacklist"
	AuxNote      AuxiliaryType = "note"
)

// Reading is a single accepted reading for a subject.
type Reading struct {
	Value   string        `json:"value"`
	Primary bool          `json:"primary,omitempty"`
	Type    AuxiliaryType `json:"type,omitempty"` // set on auxiliary readings only
}

// Meaning is a single auxiliary meaning with its acceptance tag.
type Meaning struct {
	Value string        `json:"value"`
	Type  AuxiliaryType `json:"type"`
}

// Subject is one review item. It is immutable for the duration of a
// question; the review queue owns it.
type Subject struct {
	ID         int64  `json:"id"`
	Kind       Kind   `json:"kind"`
	Characters string `json:"characters"`

	Meanings          []string  `json:"meanings"`
	AuxiliaryMeanings []Meaning `json:"auxiliary_meanings,omitempty"`

	Readings          []Reading `json:"readings,omitempty"`
	AuxiliaryReadings []Reading `json:"auxiliary_readings,omitempty"`

	// Kanji-only reading groups. PrimaryReadingType names which group
	// is the accepted one ("onyomi", "kunyomi" or "nanori").
	Onyomi             []string `json:"onyomi,omitempty"`
	Kunyomi            []string `json:"kunyomi,omitempty"`
	Nanori             []string `json:"nanori,omitempty"`
	PrimaryReadingType string   `json:"primary_reading_type,omitempty"`

	// For single-character vocabulary, the component kanji's meanings
	// and readings. Used to recognize kanji-vs-vocabulary confusion.
	ComponentMeanings []string `json:"component_meanings,omitempty"`
	ComponentReadings []string `json:"component_readings,omitempty"`
}

// RequiresReading reports whether the subject's kind has a distinct
// reading question. Radicals and kana vocabulary do not.
func (s *Subject) RequiresReading() bool {
	return s.Kind != KindRadical && s.Kind != KindKanaVocabulary
}

// primaryReadings returns the kanji reading group named by
// PrimaryReadingType.
func (s *Subject) primaryReadings() []string {
	switch s.PrimaryReadingType {
	case "kunyomi":
		return s.Kunyomi
	case "nanori":
		return s.Nanori
	default:
		return s.Onyomi
	}
}

// AcceptedAnswers returns the ordered list of acceptable answers for the
// given question type. For kanji readings only the primary reading group
// is accepted; for other kinds, readings plus whitelisted auxiliaries.
// For meanings, user synonyms come first, then meanings, then
// whitelisted auxiliary meanings.
func (s *Subject) AcceptedAnswers(qtype QuestionType, synonyms []string) []string {
	if qtype == QuestionReading {
		if s.Kind == KindKanji {
			return append([]string(nil), s.primaryReadings()...)
		}
		var out []string
		for _, r := range s.Readings {
			if r.Value != "" {
				out = append(out, r.Value)
			}
		}
		for _, r := range s.AuxiliaryReadings {
			if r.Type == AuxWhitelist && r.Value != "" {
				out = append(out, r.Value)
			}
		}
		return out
	}

	var out []string
	out = append(out, synonyms...)
	out = append(out, s.Meanings...)
	for _, m := range s.AuxiliaryMeanings {
		if m.Type == AuxWhitelist && m.Value != "" {
			out = append(out, m.Value)
		}
	}
	return out
}

// AllReadings returns every reading the subject answers to, including
// whitelisted auxiliaries and all kanji reading groups. Used to detect a
// reading typed where a meaning was wanted.
func (s *Subject) AllReadings() []string {
	var out []string
	for _, r := range s.Readings {
		if r.Value != "" {
			out = append(out, r.Value)
		}
	}
	for _, r := range s.AuxiliaryReadings {
		if r.Type == AuxWhitelist && r.Value != "" {
			out = append(out, r.Value)
		}
	}
	out = append(out, s.Onyomi...)
	out = append(out, s.Kunyomi...)
	out = append(out, s.Nanori...)
	return out
}

// BlacklistedMeanings returns meanings that must be rejected outright.
func (s *Subject) BlacklistedMeanings() []string {
	var out []string
	for _, m := range s.AuxiliaryMeanings {
		if m.Type == AuxBlacklist {
			out = append(out, m.Value)
		}
	}
	return out
}

// NormalizeMeaning canonicalizes a meaning string for comparison:
// trimmed, lower-cased, inner whitespace collapsed.
func NormalizeMeaning(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
