package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/output"
	"github.com/JonSteinn/vspy/internal/templates"
)

// Prompter reads answers line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints "msg: " and returns the trimmed answer. A final line without
// a newline is accepted; io.EOF is returned only when nothing was read.
func (p *Prompter) Ask(msg string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", msg)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskDefault is Ask with a fallback shown in brackets and used for an
// empty answer or closed input.
func (p *Prompter) AskDefault(msg, def string) (string, error) {
	if def != "" {
		msg = fmt.Sprintf("%s [%s]", msg, def)
	}
	answer, err := p.Ask(msg)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
		return def, nil
	}
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskName asks until a valid project name is entered.
func (p *Prompter) AskName() (string, error) {
	for {
		name, err := p.Ask("Enter project name")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", verrors.NewValidationError(
					"no project name given", "", "name",
					"pass --name when stdin is not a terminal",
				)
			}
			return "", err
		}
		if err := templates.ValidateProjectName(name); err != nil {
			fmt.Fprintln(p.out, "Name contains invalid characters")
			output.Debug("rejected project name", "name", name)
			continue
		}
		return name, nil
	}
}
