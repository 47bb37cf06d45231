// Package password generates random alphanumeric passwords.
package password

import (
	"crypto/rand"
	"math/big"

	"github.com/cockroachdb/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator draws characters uniformly from [A-Za-z0-9] using crypto/rand.
type Generator struct{}

// New creates a Generator.
func New() *Generator {
	return &Generator{}
}

// Generate returns a password of exactly length characters. A zero length
// yields the empty string.
func (g *Generator) Generate(length int) (string, error) {
	if length < 0 {
		return "", errors.Newf("invalid password length %d", length)
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random bytes")
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
