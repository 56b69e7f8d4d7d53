// Package dictionary provides the prompt/word oracle for Spanish games: a
// syllable table for prompt fragments and an in-memory dictionary for
// validity checks. Both are normalized with the same rules the game engine
// applies to submissions, so lookups compare like with like.
package dictionary

import (
	"context"
	_ "embed"
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/Carincrack/explosive-word-game/game"
)

//go:embed words_es.txt
var embeddedWords string

var ErrEmptyWordList = errors.New("empty word list")

type Service struct {
	words   map[string]struct{}
	prompts []string
}

// New builds the service from the embedded word list and syllable table.
func New() (*Service, error) {
	return NewFromWords(strings.Fields(embeddedWords), spanishSyllables)
}

// NewFromWords builds the service from caller-supplied words and prompts.
// Entries that do not survive normalization are dropped.
func NewFromWords(words, prompts []string) (*Service, error) {
	s := &Service{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		normalized, ok := game.NormalizeWord(w)
		if !ok {
			continue
		}
		s.words[normalized] = struct{}{}
	}
	for _, p := range prompts {
		normalized, ok := game.NormalizeWord(p)
		if !ok {
			continue
		}
		s.prompts = append(s.prompts, normalized)
	}
	if len(s.words) == 0 || len(s.prompts) == 0 {
		return nil, ErrEmptyWordList
	}
	return s, nil
}

func (s *Service) NextPrompt() string {
	return s.prompts[rand.IntN(len(s.prompts))]
}

func (s *Service) CheckWord(ctx context.Context, word string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := s.words[word]
	return ok, nil
}

// Size reports how many words are loaded, for startup logging.
func (s *Service) Size() int { return len(s.words) }
