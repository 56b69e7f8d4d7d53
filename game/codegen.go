package game

import "crypto/rand"

// Room codes are short, human-enterable and avoid glyphs that read
// ambiguously when shouted across a table (0/O, 1/I).
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 5
	codeAttempts = 100
)

func randomCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

// generateCode retries until taken reports a free code, giving up after a
// bounded number of attempts rather than spinning forever on a saturated
// code space.
func generateCode(taken func(string) bool) (string, error) {
	for range codeAttempts {
		code := randomCode()
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}
