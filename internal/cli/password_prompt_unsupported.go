//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"bufio"
	"errors"
	"os"
)

func readSecretNoEcho(_ *os.File, _ *bufio.Reader) (string, error) {
	return "", errors.New("unsupported platform")
}
