// Package console lets a human operator judge scenarios on a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/rescuebot/internal/domain"
	"golang.org/x/term"
)

// ErrInputClosed is returned when input ends before an answer is given.
var ErrInputClosed = errors.New("input closed")

const (
	deployPrompt  = "To which location should RescueBot be deployed?"
	invalidDeploy = "Invalid response! " + deployPrompt
	invalidYesNo  = "Invalid input. Please type 'yes' or 'no'."
)

// Console reads answers line by line from in and writes prompts to out.
// It implements pipeline.Judge.
// The "> " input marker is only echoed when in is a terminal.
type Console struct {
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
}

// New creates a Console.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, interactive: isTerminal(in)}
}

// Interactive reports whether answers come from a terminal.
func (c *Console) Interactive() bool { return c.interactive }

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Choose presents the scenario and returns the 0-based location the
// operator picks. Invalid answers are re-prompted.
func (c *Console) Choose(ctx context.Context, s *domain.Scenario) (int, error) {
	fmt.Fprint(c.out, s.Describe())
	fmt.Fprintln(c.out, deployPrompt)
	for {
		answer, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(s.Locations) {
			return n - 1, nil
		}
		fmt.Fprintln(c.out, invalidDeploy)
	}
}

// Confirm asks a yes/no question until it gets one of the two.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintln(c.out, question)
	for {
		answer, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
		fmt.Fprintln(c.out, invalidYesNo)
	}
}

// Proceed asks whether to keep judging; suitable for pipeline.Options.Proceed.
func (c *Console) Proceed(ctx context.Context) (bool, error) {
	return c.Confirm(ctx, "Would you like to continue? (yes/no)")
}

// Consent asks whether decisions may be saved to the user log.
func (c *Console) Consent(ctx context.Context) (bool, error) {
	return c.Confirm(ctx, "Do you consent to have your decisions saved to a file? (yes/no)")
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.interactive {
		fmt.Fprint(c.out, "> ")
	}
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}
