package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateShortCode returns a random code of the given length with every
// symbol drawn uniformly from alphabet. crypto/rand keeps codes unguessable;
// uniqueness is the caller's problem.
func GenerateShortCode(alphabet string, length int) (string, error) {
	if len(alphabet) == 0 || length <= 0 {
		return "", fmt.Errorf("invalid code parameters: alphabet=%d length=%d", len(alphabet), length)
	}

	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}
