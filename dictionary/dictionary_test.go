package dictionary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carincrack/explosive-word-game/game"
)

func TestNewFromWords(t *testing.T) {
	t.Parallel()

	t.Run("entries are normalized on load", func(t *testing.T) {
		svc, err := NewFromWords([]string{"Camión", "perro", "x", "dos palabras"}, []string{"ar"})
		require.NoError(t, err)

		ctx := context.Background()
		ok, err := svc.CheckWord(ctx, "camion")
		require.NoError(t, err)
		assert.True(t, ok, "accent-stripped form is the stored form")

		ok, _ = svc.CheckWord(ctx, "perro")
		assert.True(t, ok)

		assert.Equal(t, 2, svc.Size(), "entries that fail normalization are dropped")
	})

	t.Run("empty word list rejected", func(t *testing.T) {
		_, err := NewFromWords(nil, []string{"ar"})
		assert.ErrorIs(t, err, ErrEmptyWordList)
	})

	t.Run("empty prompt list rejected", func(t *testing.T) {
		_, err := NewFromWords([]string{"perro"}, nil)
		assert.ErrorIs(t, err, ErrEmptyWordList)
	})
}

func TestCheckWord(t *testing.T) {
	t.Parallel()

	svc, err := NewFromWords([]string{"perro", "gato"}, []string{"rr"})
	require.NoError(t, err)

	ctx := context.Background()

	ok, err := svc.CheckWord(ctx, "perro")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckWord(ctx, "dragón")
	require.NoError(t, err)
	assert.False(t, ok, "lookups expect pre-normalized input")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.CheckWord(cancelled, "perro")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbeddedDictionary(t *testing.T) {
	t.Parallel()

	svc, err := New()
	require.NoError(t, err)
	assert.Greater(t, svc.Size(), 100)

	// every prompt must be playable by the engine's own rules
	for range 50 {
		prompt := svc.NextPrompt()
		normalized, ok := game.NormalizeWord(prompt)
		require.True(t, ok, "prompt %q fails normalization", prompt)
		assert.Equal(t, prompt, normalized)
	}

	ok, err := svc.CheckWord(context.Background(), "perro")
	require.NoError(t, err)
	assert.True(t, ok)
}
