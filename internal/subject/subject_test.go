package subject

import (
	"reflect"
	"testing"
)

func TestNormalizeMeaning(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hot Spring", "hot spring"},
		{"  hot   spring ", "hot spring"},
		{"DOG", "dog"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := NormalizeMeaning(tc.input); got != tc.want {
			t.Errorf("NormalizeMeaning(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestRequiresReading(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindRadical, false},
		{KindKanaVocabulary, false},
		{KindKanji, true},
		{KindVocabulary, true},
	}

	for _, tc := range tests {
		s := &Subject{Kind: tc.kind}
		if got := s.RequiresReading(); got != tc.want {
			t.Errorf("RequiresReading(%s) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestAcceptedAnswersMeaningOrder(t *testing.T) {
	s := &Subject{
		Kind:     KindVocabulary,
		Meanings: []string{"hot spring"},
		AuxiliaryMeanings: []Meaning{
			{Value: "onsen", Type: AuxWhitelist},
			{Value: "hot water", Type: AuxBlacklist},
		},
	}

	got := s.AcceptedAnswers(QuestionMeaning, []string{"spa"})
	want := []string{"spa", "hot spring", "onsen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AcceptedAnswers(meaning) = %v, want %v", got, want)
	}
}

func TestAcceptedAnswersKanjiPrimaryGroup(t *testing.T) {
	s := &Subject{
		Kind:    KindKanji,
		Onyomi:  []string{"けん"},
		Kunyomi: []string{"いぬ"},
	}

	s.PrimaryReadingType = "kunyomi"
	if got := s.AcceptedAnswers(QuestionReading, nil); !reflect.DeepEqual(got, []string{"いぬ"}) {
		t.Errorf("kunyomi primary = %v, want [いぬ]", got)
	}

	s.PrimaryReadingType = "onyomi"
	if got := s.AcceptedAnswers(QuestionReading, nil); !reflect.DeepEqual(got, []string{"けん"}) {
		t.Errorf("onyomi primary = %v, want [けん]", got)
	}
}

func TestAcceptedAnswersVocabularyReadings(t *testing.T) {
	s := &Subject{
		Kind: KindVocabulary,
		Readings: []Reading{
			{Value: "いぬ", Primary: true},
		},
		AuxiliaryReadings: []Reading{
			{Value: "ドッグ", Type: AuxWhitelist},
			{Value: "けん", Type: AuxBlacklist},
		},
	}

	got := s.AcceptedAnswers(QuestionReading, nil)
	want := []string{"いぬ", "ドッグ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AcceptedAnswers(reading) = %v, want %v", got, want)
	}
}

func TestAllReadingsIncludesEveryGroup(t *testing.T) {
	s := &Subject{
		Kind:     KindKanji,
		Readings: []Reading{{Value: "いぬ"}},
		Onyomi:   []string{"けん"},
		Kunyomi:  []string{"いぬ"},
		Nanori:   []string{"たか"},
	}

	got := s.AllReadings()
	for _, want := range []string{"けん", "いぬ", "たか"} {
		found := false
		for _, r := range got {
			if r == want {
				found = true
			}
		}
		if !found {
			t.Errorf("AllReadings() = %v, missing %q", got, want)
		}
	}
}

func TestBlacklistedMeanings(t *testing.T) {
	s := &Subject{
		AuxiliaryMeanings: []Meaning{
			{Value: "hot water", Type: AuxBlacklist},
			{Value: "onsen", Type: AuxWhitelist},
		},
	}

	got := s.BlacklistedMeanings()
	if !reflect.DeepEqual(got, []string{"hot water"}) {
		t.Errorf("BlacklistedMeanings = %v, want [hot water]", got)
	}
}
