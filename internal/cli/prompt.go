package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// Prompter asks the user for a line of input.
type Prompter interface {
	Prompt(question, def string) (string, error)
}

var errPromptAborted = errors.New("prompt aborted")

// linePrompter reads from the terminal with readline-style editing.
type linePrompter struct{}

// NewLinePrompter returns a [Prompter] backed by the controlling terminal.
func NewLinePrompter() Prompter {
	return linePrompter{}
}

func (linePrompter) Prompt(question, def string) (string, error) {
	state := liner.NewLiner()
	defer state.Close()

	state.SetCtrlCAborts(true)

	answer, err := state.PromptWithSuggestion(fmt.Sprintf("%s: ", question), def, -1)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errPromptAborted
		}

		return "", fmt.Errorf("reading answer: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}

	return answer, nil
}

// readerPrompter reads answers line by line from a non-terminal stdin.
type readerPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p readerPrompter) Prompt(question, def string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s [%s]: ", question, def)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", errPromptAborted
		}

		return "", fmt.Errorf("reading answer: %w", err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}

	return answer, nil
}

// newPrompter picks line editing when both stdin and stdout are terminals
// and plain line reads otherwise. liner draws its prompt on stdout and
// refuses to run when stdout is redirected, as in p=$(vn reserve --prompt).
// The plain prompter writes questions to errOut so stdout stays scriptable.
func newPrompter(in io.Reader, out, errOut io.Writer) Prompter {
	if in == nil {
		return nil
	}

	if isTerminal(in) && isTerminal(out) {
		return NewLinePrompter()
	}

	return readerPrompter{in: bufio.NewReader(in), out: errOut}
}
