package security

import (
	"crypto/rand"
	"math/big"

	"github.com/juju/errors"
)

// Temporary credentials omit look-alike characters (0/O, 1/l/I).
const (
	TemporaryCredentialLength   = 12
	TemporaryCredentialAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

var (
	errNegativeLength = errors.NotValidf("negative length")
	errEmptyAlphabet  = errors.NotValidf("empty alphabet")
)

// TemporaryCredential draws a credential for reset and recovery flows.
func TemporaryCredential() (string, error) {
	return RandomString(TemporaryCredentialLength, TemporaryCredentialAlphabet)
}

// RandomString draws length characters uniformly from alphabet using
// crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	size := big.NewInt(int64(len(alphabet)))
	drawn := make([]byte, length)
	for i := range drawn {
		index, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", errors.Annotate(err, "read random source")
		}
		drawn[i] = alphabet[index.Int64()]
	}
	return string(drawn), nil
}
