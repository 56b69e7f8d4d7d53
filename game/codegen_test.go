package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	t.Run("codes use the unambiguous alphabet", func(t *testing.T) {
		for range 50 {
			code, err := generateCode(func(string) bool { return false })
			require.NoError(t, err)
			assert.Len(t, code, codeLength)
			for _, c := range code {
				assert.Contains(t, codeAlphabet, string(c))
			}
			assert.NotContains(t, code, "O")
			assert.NotContains(t, code, "0")
			assert.NotContains(t, code, "I")
			assert.NotContains(t, code, "1")
		}
	})

	t.Run("retries on collision", func(t *testing.T) {
		collisions := 0
		code, err := generateCode(func(string) bool {
			collisions++
			return collisions <= 3
		})
		require.NoError(t, err)
		assert.NotEmpty(t, code)
		assert.Equal(t, 4, collisions)
	})

	t.Run("gives up when the space looks exhausted", func(t *testing.T) {
		attempts := 0
		_, err := generateCode(func(string) bool {
			attempts++
			return true
		})
		assert.ErrorIs(t, err, ErrCodeGenerationExhausted)
		assert.Equal(t, codeAttempts, attempts)
	})
}

func TestRandomCode_Distribution(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 200 {
		seen[randomCode()] = struct{}{}
	}
	// 200 draws from a 32^5 space colliding would be suspicious
	assert.Greater(t, len(seen), 195)

	for code := range seen {
		assert.Equal(t, strings.ToUpper(code), code)
	}
}
