package crypto

import (
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/Carincrack/explosive-word-game/domain"
)

type Argon2idHasher struct {
	params *argon2id.Params
}

// NewArgon2idHasher creates a hasher with the given difficulty parameters.
// memory is in kilobytes.
func NewArgon2idHasher(time, memory, keyLength, saltLength uint32, parallelism uint8) *Argon2idHasher {
	return &Argon2idHasher{
		params: &argon2id.Params{
			Memory:      memory,
			Iterations:  time,
			Parallelism: parallelism,
			SaltLength:  saltLength,
			KeyLength:   keyLength,
		},
	}
}

func (h *Argon2idHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.UnexpectedPasswordHashComparisonError, err)
	}
	return hash, nil
}

func (h *Argon2idHasher) Compare(hash, password string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.UnexpectedPasswordHashComparisonError, err)
	}
	return match, nil
}
