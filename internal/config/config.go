// Package config loads and validates the application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fukushu-cli/fukushu/internal/verdict"
)

// BurnWarning selects when to warn before burning an item.
type BurnWarning string

const (
	BurnWarnNever   BurnWarning = "never"
	BurnWarnCheated BurnWarning = "cheated"
	BurnWarnAlways  BurnWarning = "always"
)

// Settings holds every user-configurable option. The zero value is not
// usable; start from Defaults().
type Settings struct {
	// Change-answer permissions.
	AllowRetyping        bool `toml:"allow_retyping"`
	AllowChangeCorrect   bool `toml:"allow_change_correct"`
	AllowChangeIncorrect bool `toml:"allow_change_incorrect"`
	ShowCorrectedAnswer  bool `toml:"show_corrected_answer"`

	// Careless-mistake actions.
	TypoAction                 verdict.Action `toml:"typo_action"`
	WrongAnswerTypeAction      verdict.Action `toml:"wrong_answer_type_action"`
	WrongNumberNAction         verdict.Action `toml:"wrong_number_n_action"`
	SmallKanaAction            verdict.Action `toml:"small_kana_action"`
	KanjiReadingForVocabAction verdict.Action `toml:"kanji_reading_for_vocab_action"`
	KanjiMeaningForVocabAction verdict.Action `toml:"kanji_meaning_for_vocab_action"`

	// Mistake delay.
	DelayWrong        bool    `toml:"delay_wrong"`
	DelayMultiMeaning bool    `toml:"delay_multi_meaning"`
	DelaySlightlyOff  bool    `toml:"delay_slightly_off"`
	DelayPeriod       float64 `toml:"delay_period"` // seconds

	// Burn reviews.
	WarnBurn        BurnWarning `toml:"warn_burn"`
	BurnDelayPeriod float64     `toml:"burn_delay_period"` // seconds

	// Lightning mode.
	ShowLightningButton bool    `toml:"show_lightning_button"`
	LightningEnabled    bool    `toml:"lightning_enabled"`
	SRSMsgPeriod        float64 `toml:"srs_msg_period"` // seconds, 0 = no popup

	// Automatic item info.
	AutoInfoCorrect      bool `toml:"autoinfo_correct"`
	AutoInfoIncorrect    bool `toml:"autoinfo_incorrect"`
	AutoInfoMultiMeaning bool `toml:"autoinfo_multi_meaning"`
	AutoInfoSlightlyOff  bool `toml:"autoinfo_slightly_off"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		AllowRetyping:              true,
		AllowChangeCorrect:         false,
		ShowCorrectedAnswer:        false,
		AllowChangeIncorrect:       false,
		TypoAction:                 verdict.ActionIgnore,
		WrongAnswerTypeAction:      verdict.ActionWarn,
		WrongNumberNAction:         verdict.ActionWarn,
		SmallKanaAction:            verdict.ActionWarn,
		KanjiReadingForVocabAction: verdict.ActionWarn,
		KanjiMeaningForVocabAction: verdict.ActionWarn,
		DelayWrong:                 true,
		DelayMultiMeaning:          false,
		DelaySlightlyOff:           false,
		DelayPeriod:                1.5,
		WarnBurn:                   BurnWarnNever,
		BurnDelayPeriod:            1.5,
		ShowLightningButton:        true,
		LightningEnabled:           false,
		SRSMsgPeriod:               1.2,
	}
}

// Policy builds the verdict policy table from the configured actions.
func (s Settings) Policy() verdict.Policy {
	return verdict.Policy{
		verdict.CategoryTypo:                 s.TypoAction,
		verdict.CategoryAnswerTypeMismatch:   s.WrongAnswerTypeAction,
		verdict.CategoryWrongNCount:          s.WrongNumberNAction,
		verdict.CategorySmallKana:            s.SmallKanaAction,
		verdict.CategoryKanjiReadingForVocab: s.KanjiReadingForVocabAction,
		verdict.CategoryKanjiMeaningForVocab: s.KanjiMeaningForVocabAction,
	}
}

// Advisory is a non-blocking configuration warning reported at load
// time. It never affects the review flow.
type Advisory struct {
	Option  string
	Message string
}

// Validate reports configuration inconsistencies as advisories.
func (s Settings) Validate() []Advisory {
	var out []Advisory
	if s.AutoInfoCorrect && s.LightningEnabled {
		out = append(out, Advisory{
			Option:  "autoinfo_correct",
			Message: "lightning mode advances past the item info; disable lightning to see it",
		})
	}
	if s.AutoInfoIncorrect && s.LightningEnabled && !s.DelayWrong {
		out = append(out, Advisory{
			Option:  "autoinfo_incorrect",
			Message: "enable delay_wrong or disable lightning mode, or the item info will be skipped",
		})
	}
	if s.WrongAnswerTypeAction == verdict.ActionIgnore {
		out = append(out, Advisory{
			Option:  "wrong_answer_type_action",
			Message: "ignore only hides the message; a wrong answer type is still marked wrong",
		})
	}
	for opt, a := range map[string]verdict.Action{
		"typo_action":                    s.TypoAction,
		"wrong_answer_type_action":       s.WrongAnswerTypeAction,
		"wrong_number_n_action":          s.WrongNumberNAction,
		"small_kana_action":              s.SmallKanaAction,
		"kanji_reading_for_vocab_action": s.KanjiReadingForVocabAction,
		"kanji_meaning_for_vocab_action": s.KanjiMeaningForVocabAction,
	} {
		switch a {
		case verdict.ActionIgnore, verdict.ActionWarn, verdict.ActionMarkWrong:
		default:
			out = append(out, Advisory{
				Option:  opt,
				Message: fmt.Sprintf("unknown action %q, treating as warn", a),
			})
		}
	}
	return out
}

// DefaultPath resolves the settings file path in priority order:
// FUKUSHU_CONFIG env var, then $XDG_CONFIG_HOME/fukushu/config.toml,
// then ~/.config/fukushu/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv("FUKUSHU_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fukushu", "config.toml"), nil
}

// Load reads settings from path, layered over Defaults(). A missing
// file is not an error; the defaults are returned.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// Save writes settings to path, creating the parent directory.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
