// Package admin guards the manual Ramadan override behind an access code.
package admin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// DefaultCode is the access code when none is configured.
const DefaultCode = "786786"

// ErrAuthFailure is returned when the access code does not match.
var ErrAuthFailure = errors.New("invalid access code")

// FailureMessage is shown to the user on ErrAuthFailure.
const FailureMessage = "Invalid Access Code"

// Gate compares access codes against a bcrypt hash. It has no lockout.
type Gate struct {
	hash []byte
}

// NewGate hashes code (DefaultCode when empty) and returns a Gate for it.
func NewGate(code string) (*Gate, error) {
	if strings.TrimSpace(code) == "" {
		code = DefaultCode
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash access code: %w", err)
	}
	return &Gate{hash: hash}, nil
}

// Check returns ErrAuthFailure unless code matches.
func (g *Gate) Check(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrAuthFailure
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(code)); err != nil {
		return ErrAuthFailure
	}
	return nil
}

// ReadCode prompts on out and reads a code from in. When in is a terminal the
// input is not echoed.
func ReadCode(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter Access Code: ")

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read access code: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read access code: %w", err)
	}
	return strings.TrimSpace(line), nil
}
