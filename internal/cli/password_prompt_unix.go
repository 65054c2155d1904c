//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"bufio"
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// readSecretNoEcho turns terminal echo off while one line is read from
// reader, which must be buffering terminal.
func readSecretNoEcho(terminal *os.File, reader *bufio.Reader) (string, error) {
	if terminal == nil {
		return "", errors.New("terminal unavailable")
	}

	fd := int(terminal.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return "", err
	}
	originalTermios := *termios
	updatedTermios := originalTermios
	updatedTermios.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &updatedTermios); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &originalTermios)
	}()

	return readLine(reader)
}
