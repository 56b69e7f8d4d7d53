package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord lowercases, strips diacritics (NFD decomposition, combining
// marks dropped, so "camión" -> "camion" and "ñ" -> "n") and validates that
// only a-z remain within the accepted length bounds. ok is false for any
// submission containing characters outside the alphabet.
func NormalizeWord(raw string) (normalized string, ok bool) {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	decomposed := norm.NFD.String(lowered)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r < 'a' || r > 'z' {
			return "", false
		}
		b.WriteRune(r)
	}

	word := b.String()
	if len(word) < MinWordLength || len(word) > MaxWordLength {
		return "", false
	}
	return word, true
}

// validateNickname trims and bounds-checks a display name. Uniqueness within
// a room is checked separately, case-insensitively.
func validateNickname(raw string) (string, bool) {
	nick := strings.TrimSpace(raw)
	n := len([]rune(nick))
	return nick, n >= MinNicknameLength && n <= MaxNicknameLength
}

// checkSubmission applies the synchronous part of the validation pipeline,
// in order, short-circuiting on the first failure. The dictionary lookup
// (the only check that may block) is dispatched by the caller afterwards.
func (r *Room) checkSubmission(playerID, rawWord string) (word string, reason Reason, ok bool) {
	if r.status != StatusPlaying {
		return "", ReasonNotPlaying, false
	}
	if playerID != r.currentPlayerID {
		return "", ReasonNotYourTurn, false
	}
	word, valid := NormalizeWord(rawWord)
	if !valid {
		return "", ReasonInvalidCharacters, false
	}
	if !strings.Contains(word, r.currentPrompt) {
		return word, ReasonMissingPrompt, false
	}
	if _, used := r.usedWords[word]; used {
		return word, ReasonWordRepeated, false
	}
	return word, "", true
}
