package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// Prompt reads one line from stdin.
func Prompt(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt+": ")
	return readLine(stdin)
}

// Password reads a line from the terminal without echo. When stdin is not a
// terminal it falls back to a plain line read.
func Password(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt+": ")
		return readLine(stdin)
	}

	fmt.Fprint(os.Stderr, prompt+": ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", fmt.Errorf("no input provided")
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
