package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	jujuerrors "github.com/juju/errors"
	"github.com/terraincognita07/nutrismart/internal/services"
)

type stubResetter struct {
	temporary string
	err       error
	email     string
}

func (stub *stubResetter) ResetCredential(email string) (string, error) {
	stub.email = email
	return stub.temporary, stub.err
}

func TestRunResetCredentialCommandPrintsTemporaryCredential(t *testing.T) {
	resetter := &stubResetter{temporary: "Tmp23456789x"}
	var output bytes.Buffer

	err := RunResetCredentialCommand(resetter, newMessagesForTest(t), "en", "ana@example.com", &output)
	if err != nil {
		t.Fatalf("RunResetCredentialCommand() error: %v", err)
	}
	if resetter.email != "ana@example.com" {
		t.Fatalf("reset email = %q", resetter.email)
	}
	if !strings.Contains(output.String(), "Temporary password: Tmp23456789x") {
		t.Fatalf("output = %q", output.String())
	}
}

func TestRunResetCredentialCommandValidatesEmail(t *testing.T) {
	resetter := &stubResetter{}
	for _, email := range []string{"", "not-an-email"} {
		err := RunResetCredentialCommand(resetter, newMessagesForTest(t), "en", email, &bytes.Buffer{})
		if !jujuerrors.Is(err, jujuerrors.NotValid) {
			t.Fatalf("RunResetCredentialCommand(%q) = %v, want NotValid", email, err)
		}
	}
	if resetter.email != "" {
		t.Fatal("invalid email must not reach the service")
	}
}

func TestRunResetCredentialCommandReportsServiceErrors(t *testing.T) {
	resetter := &stubResetter{err: services.ErrCredentialResetUnsupported}
	var output bytes.Buffer

	err := RunResetCredentialCommand(resetter, newMessagesForTest(t), "pt", "ana@example.com", &output)
	if !errors.Is(err, services.ErrCredentialResetUnsupported) {
		t.Fatalf("RunResetCredentialCommand() = %v, want ErrCredentialResetUnsupported", err)
	}
	if !strings.Contains(output.String(), "Redefinição indisponível") {
		t.Fatalf("output = %q", output.String())
	}
}
