package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/shinji-kodama/dotenv-prompt/internal/model"
)

// Prompter asks every question and returns after all answers are in.
// Implementations must not return a partial AnswerSet together with a nil
// error.
type Prompter interface {
	Ask(ctx context.Context, questions []model.Question) (model.AnswerSet, error)
}

// ForTerminal picks the Prompter suited to the given streams:
// Defaults when assumeYes is set, Interactive when in is a terminal,
// and Line otherwise.
func ForTerminal(in *os.File, out *os.File, assumeYes bool) Prompter {
	if assumeYes {
		return Defaults{}
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	if term.IsTerminal(int(in.Fd())) {
		return &Interactive{Stdin: in, Stdout: out}
	}
	return NewLine(in, out)
}

// Defaults answers every question with its default value.
type Defaults struct{}

// Ask implements Prompter.
func (Defaults) Ask(ctx context.Context, questions []model.Question) (model.AnswerSet, error) {
	answers := make(model.AnswerSet, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		answers[q.Name] = q.Default
	}
	return answers, nil
}

// Interactive prompts on a terminal using promptui. The default is shown
// next to the label and returned when the user just presses Enter.
type Interactive struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Ask implements Prompter.
func (p *Interactive) Ask(ctx context.Context, questions []model.Question) (model.AnswerSet, error) {
	answers := make(model.AnswerSet, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pr := promptui.Prompt{
			Label:   q.Message,
			Default: q.Default,
			Stdin:   p.Stdin,
			Stdout:  p.Stdout,
		}
		value, err := pr.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
				return nil, model.ErrPromptCancelled
			}
			return nil, fmt.Errorf("prompt for %s: %w", q.Name, err)
		}
		if value == "" {
			value = q.Default
		}
		answers[q.Name] = value
	}
	return answers, nil
}

// Line reads one line of input per question. It is used when stdin is not
// a terminal, e.g. `printf 'a\n\n' | dotenv-prompt VAR1 VAR2`.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a Line prompter reading from in and writing prompts to
// out. A nil out discards the prompt text.
func NewLine(in io.Reader, out io.Writer) *Line {
	if out == nil {
		out = io.Discard
	}
	return &Line{in: bufio.NewReader(in), out: out}
}

// Ask implements Prompter.
//
// Each prompt is rendered as "? Value for NAME (default) ". The trailing
// line terminator ("\n" or "\r\n") is stripped from the answer; everything
// else, including surrounding spaces, is kept as typed. Input that ends
// before the last question is answered cancels the prompt. A final line
// without a terminator still counts as an answer.
func (p *Line) Ask(ctx context.Context, questions []model.Question) (model.AnswerSet, error) {
	answers := make(model.AnswerSet, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := fmt.Fprintf(p.out, "? %s (%s) ", q.Message, q.Default); err != nil {
			return nil, fmt.Errorf("prompt for %s: %w", q.Name, err)
		}

		line, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return nil, model.ErrPromptCancelled
			}
			return nil, fmt.Errorf("prompt for %s: %w", q.Name, err)
		}

		value := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if value == "" {
			value = q.Default
		}
		answers[q.Name] = value
	}
	return answers, nil
}
