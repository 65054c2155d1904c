package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// errInvalidNumber is returned by Prompter.Float for unparsable input.
var errInvalidNumber = errors.New("invalid number")

// Prompter reads answers line by line. Secrets are read without echo when
// the input is a terminal.
type Prompter struct {
	reader   *bufio.Reader
	out      io.Writer
	terminal *os.File
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	prompter := &Prompter{reader: bufio.NewReader(in), out: out}
	if file, ok := in.(*os.File); ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())) {
		prompter.terminal = file
	}
	return prompter
}

func (prompter *Prompter) Line(label string) (string, error) {
	fmt.Fprint(prompter.out, label)
	line, err := readLine(prompter.reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret reads a credential. Surrounding blanks are kept; the services
// decide how to normalize.
func (prompter *Prompter) Secret(label string) (string, error) {
	fmt.Fprint(prompter.out, label)
	if prompter.terminal == nil {
		return readLine(prompter.reader)
	}
	secret, err := readSecretNoEcho(prompter.terminal, prompter.reader)
	fmt.Fprintln(prompter.out)
	return secret, err
}

// Float accepts both "1.75" and "1,75".
func (prompter *Prompter) Float(label string) (float64, error) {
	raw, err := prompter.Line(label)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, errInvalidNumber
	}
	return value, nil
}

// Choice reads a 1-based menu option; zero is returned for anything that is
// not a number.
func (prompter *Prompter) Choice(label string) (int, error) {
	raw, err := prompter.Line(label)
	if err != nil {
		return 0, err
	}
	choice, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return choice, nil
}

func (prompter *Prompter) Confirm(label string, yes string) (bool, error) {
	raw, err := prompter.Line(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(raw, yes), nil
}

// readLine returns one line without its terminator. A final line without
// newline is returned as is; io.EOF is reported only when nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
