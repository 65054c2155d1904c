package cli

import (
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/terraincognita07/nutrismart/internal/i18n"
	"github.com/terraincognita07/nutrismart/internal/nutrition"
)

type CredentialResetter interface {
	ResetCredential(email string) (string, error)
}

// RunResetCredentialCommand issues a temporary credential for email and
// prints it to out.
func RunResetCredentialCommand(users CredentialResetter, messages *i18n.Manager, language string, email string, out io.Writer) error {
	if email == "" {
		return errors.NotValidf("empty email")
	}
	if !nutrition.ValidateEmail(email) {
		return errors.NotValidf("email address %q", email)
	}

	temporary, err := users.ResetCredential(email)
	if err != nil {
		fmt.Fprintln(out, messages.Translate(language, errorMessageKey(err)))
		return errors.Annotatef(err, "reset credential for %s", email)
	}

	fmt.Fprintln(out, messages.Translatef(language, "reset.success", email))
	fmt.Fprintln(out, messages.Translatef(language, "reset.temporary", temporary))
	return nil
}
