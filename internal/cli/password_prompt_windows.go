//go:build windows

package cli

import (
	"bufio"
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

func readSecretNoEcho(terminal *os.File, reader *bufio.Reader) (string, error) {
	if terminal == nil {
		return "", errors.New("terminal unavailable")
	}

	handle := windows.Handle(terminal.Fd())
	var originalMode uint32
	if err := windows.GetConsoleMode(handle, &originalMode); err != nil {
		return "", err
	}

	updatedMode := originalMode &^ windows.ENABLE_ECHO_INPUT
	if err := windows.SetConsoleMode(handle, updatedMode); err != nil {
		return "", err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, originalMode)
	}()

	return readLine(reader)
}
