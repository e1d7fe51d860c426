package utils

import "math/rand"

const Digits = "0123456789"

// NewNumericCode returns length characters picked from alphabet (Digits
// when empty). It is not cryptographically random.
func NewNumericCode(length int, alphabet string) string {
	if alphabet == "" {
		alphabet = Digits
	}
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
