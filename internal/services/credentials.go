package services

import (
	"strings"

	"github.com/juju/errors"
	"github.com/terraincognita07/nutrismart/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type CredentialMode string

const (
	CredentialModePlain  CredentialMode = "plain"
	CredentialModeBcrypt CredentialMode = "bcrypt"
)

var ErrCredentialResetUnsupported = errors.NotValidf("credential reset in plain mode")

func ParseCredentialMode(raw string) (CredentialMode, error) {
	switch mode := CredentialMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "", CredentialModePlain:
		return CredentialModePlain, nil
	case CredentialModeBcrypt:
		return CredentialModeBcrypt, nil
	default:
		return "", errors.NotValidf("credential mode %q", raw)
	}
}

// CredentialPolicy decides how credentials are stored and compared.
type CredentialPolicy interface {
	Mode() CredentialMode
	Seal(raw string) (string, error)
	Matches(stored string, raw string) bool
	// Reveal reports the cleartext credential when the storage allows it.
	Reveal(stored string) (string, bool)
}

func NewCredentialPolicy(mode CredentialMode) (CredentialPolicy, error) {
	switch mode {
	case CredentialModePlain:
		return plainCredentials{}, nil
	case CredentialModeBcrypt:
		return bcryptCredentials{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, errors.NotValidf("credential mode %q", mode)
	}
}

type plainCredentials struct{}

func (plainCredentials) Mode() CredentialMode { return CredentialModePlain }

func (plainCredentials) Seal(raw string) (string, error) { return raw, nil }

func (plainCredentials) Matches(stored string, raw string) bool { return stored == raw }

func (plainCredentials) Reveal(stored string) (string, bool) { return stored, true }

type bcryptCredentials struct {
	cost int
}

func (bcryptCredentials) Mode() CredentialMode { return CredentialModeBcrypt }

func (policy bcryptCredentials) Seal(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), policy.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errors.Annotate(ErrInvalidCredential, "longer than 72 bytes")
	}
	if err != nil {
		return "", errors.Annotate(err, "hash credential")
	}
	return string(hash), nil
}

func (bcryptCredentials) Matches(stored string, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)) == nil
}

func (bcryptCredentials) Reveal(string) (string, bool) { return "", false }

func generateTemporaryCredential() (string, error) {
	return security.TemporaryCredential()
}
