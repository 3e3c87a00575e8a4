// Package kana converts romaji input to hiragana the way an IME would,
// so answers typed in romaji can be compared against kana answer sets.
package kana

import "strings"

// romajiTable maps romaji sequences to hiragana, longest match first.
var romajiTable = map[string]string{
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"sha": "しゃ", "shu": "しゅ", "sho": "しょ",
	"sya": "しゃ", "syu": "しゅ", "syo": "しょ",
	"cha": "ちゃ", "chu": "ちゅ", "cho": "ちょ",
	"tya": "ちゃ", "tyu": "ちゅ", "tyo": "ちょ",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	"ja": "じゃ", "ju": "じゅ", "jo": "じょ", "ji": "じ",
	"jya": "じゃ", "jyu": "じゅ", "jyo": "じょ",
	"zya": "じゃ", "zyu": "じゅ", "zyo": "じょ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	"shi": "し", "chi": "ち", "tsu": "つ", "thi": "てぃ", "dhi": "でぃ",
	"fu": "ふ", "vu": "ゔ",
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"sa": "さ", "si": "し", "su": "す", "se": "せ", "so": "そ",
	"ta": "た", "ti": "ち", "tu": "つ", "te": "て", "to": "と",
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"ha": "は", "hi": "ひ", "hu": "ふ", "he": "へ", "ho": "ほ",
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"ya": "や", "yu": "ゆ", "yo": "よ",
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"wa": "わ", "wi": "うぃ", "we": "うぇ", "wo": "を",
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"za": "ざ", "zi": "じ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"da": "だ", "di": "ぢ", "du": "づ", "de": "で", "do": "ど",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	"fa": "ふぁ", "fi": "ふぃ", "fe": "ふぇ", "fo": "ふぉ",
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	"nn": "ん", "n'": "ん",
	"xya": "ゃ", "xyu": "ゅ", "xyo": "ょ", "xtu": "っ", "xtsu": "っ",
	"lya": "ゃ", "lyu": "ゅ", "lyo": "ょ", "ltu": "っ", "ltsu": "っ",
	"xa": "ぁ", "xi": "ぃ", "xu": "ぅ", "xe": "ぇ", "xo": "ぉ",
	"la": "ぁ", "li": "ぃ", "lu": "ぅ", "le": "ぇ", "lo": "ぉ",
	"-": "ー",
}

const maxRomajiLen = 4

func isConsonant(b byte) bool {
	switch b {
	case 'a', 'i', 'u', 'e', 'o', 'n', '\'', '-':
		return false
	}
	return b >= 'a' && b <= 'z'
}

// ToKana converts romaji text to hiragana using greedy longest-match
// conversion. A trailing lone "n" becomes ん, matching IME behavior on
// commit. Characters that are already kana, or that cannot be converted,
// pass through unchanged.
func ToKana(text string) string {
	var out strings.Builder
	s := strings.ToLower(text)
	i := 0
	for i < len(s) {
		// Doubled consonant → っ.
		if i+1 < len(s) && s[i] == s[i+1] && isConsonant(s[i]) {
			out.WriteString("っ")
			i++
			continue
		}
		// Syllabic n before a non-vowel.
		if s[i] == 'n' && (i+1 >= len(s) || (s[i+1] != 'a' && s[i+1] != 'i' && s[i+1] != 'u' && s[i+1] != 'e' && s[i+1] != 'o' && s[i+1] != 'y' && s[i+1] != 'n' && s[i+1] != '\'')) {
			out.WriteString("ん")
			i++
			continue
		}
		matched := false
		for l := maxRomajiLen; l >= 1; l-- {
			if i+l > len(s) {
				continue
			}
			if h, ok := romajiTable[s[i:i+l]]; ok {
				out.WriteString(h)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			// Pass through (kana, punctuation, unconvertible ASCII).
			r := []rune(s[i:])
			out.WriteRune(r[0])
			i += len(string(r[0]))
		}
	}
	result := out.String()
	if strings.HasSuffix(result, "n") {
		result = strings.TrimSuffix(result, "n") + "ん"
	}
	return KatakanaToHiragana(result)
}

// KatakanaToHiragana folds katakana codepoints onto hiragana.
func KatakanaToHiragana(text string) string {
	var out strings.Builder
	for _, r := range text {
		if r >= 0x30A1 && r <= 0x30F6 {
			r -= 0x60
		}
		out.WriteRune(r)
	}
	return out.String()
}

// ToHiraganaLoose converts text rune by rune, folding katakana and
// converting any convertible romaji fragments, without IME commit rules.
// Used to test whether a typed meaning is really a reading.
func ToHiraganaLoose(text string) string {
	var out strings.Builder
	for _, r := range strings.ToLower(text) {
		c := string(r)
		if h, ok := romajiTable[c]; ok {
			out.WriteString(h)
			continue
		}
		out.WriteString(KatakanaToHiragana(c))
	}
	return out.String()
}

// smallKanaPairs maps each small kana to its full-size counterpart.
var smallKanaPairs = map[rune]rune{
	'ゃ': 'や', 'ゅ': 'ゆ', 'ょ': 'よ', 'っ': 'つ',
	'ぁ': 'あ', 'ぃ': 'い', 'ぅ': 'う', 'ぇ': 'え', 'ぉ': 'お',
}

// EnlargeSmallKana replaces every small kana in text with its full-size
// counterpart. Comparing the result against an accepted reading detects
// big-kana-for-small mistakes (ゆ typed instead of ゅ).
func EnlargeSmallKana(text string) string {
	var out strings.Builder
	for _, r := range text {
		if big, ok := smallKanaPairs[r]; ok {
			out.WriteRune(big)
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// HasSmallKana reports whether text contains any small kana.
func HasSmallKana(text string) bool {
	for _, r := range text {
		if _, ok := smallKanaPairs[r]; ok {
			return true
		}
	}
	return false
}

// CountN counts occurrences of ん in text.
func CountN(text string) int {
	return strings.Count(text, "ん")
}

// IsKana reports whether text consists entirely of kana (and the long
// vowel mark).
func IsKana(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		hira := r >= 0x3041 && r <= 0x3096
		kata := r >= 0x30A1 && r <= 0x30F6
		if !hira && !kata && r != 'ー' {
			return false
		}
	}
	return true
}
