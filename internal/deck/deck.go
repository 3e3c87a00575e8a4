// Package deck loads the set of subjects reviewed in a session and
// builds the question queue over them.
package deck

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/fukushu-cli/fukushu/internal/srs"
	"github.com/fukushu-cli/fukushu/internal/subject"
)

// Deck is a reviewable set of subjects with their per-user extras.
type Deck struct {
	Name     string             `json:"name"`
	Subjects []*subject.Subject `json:"subjects"`

	// Synonyms maps subject IDs to user-defined meaning synonyms.
	Synonyms map[int64][]string `json:"synonyms,omitempty"`

	// Stages maps subject IDs to their current SRS stage.
	Stages map[int64]srs.Stage `json:"stages,omitempty"`
}

// LoadFile reads a deck from a JSON file.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	if err := validateDeck(data); err != nil {
		return nil, fmt.Errorf("deck %q: %w", path, err)
	}
	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse deck: %w", err)
	}
	for _, s := range d.Subjects {
		if s.RequiresReading() && len(s.AcceptedAnswers(subject.QuestionReading, nil)) == 0 {
			return nil, fmt.Errorf("subject %d (%s) has no readings", s.ID, s.Characters)
		}
	}
	return &d, nil
}

// Question is one pending question in the session queue.
type Question struct {
	Subject *subject.Subject
	Type    subject.QuestionType
}

// BuildQueue produces the shuffled question queue for a deck: one
// meaning question per subject, plus a reading question for kinds that
// have one.
func (d *Deck) BuildQueue(rng *rand.Rand) []Question {
	var q []Question
	for _, s := range d.Subjects {
		q = append(q, Question{Subject: s, Type: subject.QuestionMeaning})
		if s.RequiresReading() {
			q = append(q, Question{Subject: s, Type: subject.QuestionReading})
		}
	}
	if rng != nil {
		rng.Shuffle(len(q), func(i, j int) { q[i], q[j] = q[j], q[i] })
	}
	return q
}

// SynonymsFor returns the user synonyms for a subject.
func (d *Deck) SynonymsFor(id int64) []string {
	if d.Synonyms == nil {
		return nil
	}
	return d.Synonyms[id]
}

// Demo returns the built-in demonstration deck.
func Demo() *Deck {
	return &Deck{
		Name: "demo",
		Subjects: []*subject.Subject{
			{
				ID: 1, Kind: subject.KindRadical, Characters: "大",
				Meanings: []string{"big", "large"},
			},
			{
				ID: 2, Kind: subject.KindKanji, Characters: "犬",
				Meanings:           []string{"dog"},
				Onyomi:             []string{"けん"},
				Kunyomi:            []string{"いぬ"},
				PrimaryReadingType: "kunyomi",
			},
			{
				ID: 3, Kind: subject.KindKanji, Characters: "人",
				Meanings:           []string{"person"},
				Onyomi:             []string{"じん", "にん"},
				Kunyomi:            []string{"ひと"},
				PrimaryReadingType: "onyomi",
			},
			{
				ID: 4, Kind: subject.KindVocabulary, Characters: "犬",
				Meanings:          []string{"dog"},
				Readings:          []subject.Reading{{Value: "いぬ", Primary: true}},
				ComponentMeanings: []string{"dog"},
				ComponentReadings: []string{"けん"},
			},
			{
				ID: 5, Kind: subject.KindVocabulary, Characters: "温泉",
				Meanings: []string{"hot spring", "onsen"},
				Readings: []subject.Reading{{Value: "おんせん", Primary: true}},
			},
			{
				ID: 6, Kind: subject.KindVocabulary, Characters: "今日",
				Meanings: []string{"today"},
				Readings: []subject.Reading{{Value: "きょう", Primary: true}},
			},
			{
				ID: 7, Kind: subject.KindKanaVocabulary, Characters: "すごい",
				Meanings: []string{"amazing", "incredible"},
			},
		},
		Stages: map[int64]srs.Stage{
			1: 4, 2: 2, 3: 1, 4: 5, 5: 8, 6: 3, 7: 6,
		},
	}
}
