// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt is the input provider behind every interactive question
// the tools ask. Validation lives in the Ask* helpers, which re-ask until
// the answer parses; the Prompter only moves text. A scripted reader can
// drive the whole flow in tests and pipelines.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrAborted reports that the user cancelled an interactive form.
var ErrAborted = errors.New("input aborted")

// Prompter asks one question at a time and shows validation warnings.
type Prompter interface {
	// Ask shows label and returns the user's answer without the line ending.
	// It returns io.EOF once the input source is exhausted.
	Ask(label string) (string, error)

	// Say shows an informational line.
	Say(msg string)

	// Warn tells the user why the previous answer was rejected.
	Warn(msg string)
}

var warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))

// LinePrompter reads newline-terminated answers from a reader and writes
// labels and warnings to a writer.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a Prompter over in and out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask writes label and reads one line. A final unterminated line is
// returned as an answer; io.EOF is reported only when nothing was read.
func (p *LinePrompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Say writes msg on its own line.
func (p *LinePrompter) Say(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Warn writes msg on its own line in the warning style.
func (p *LinePrompter) Warn(msg string) {
	fmt.Fprintln(p.out, warnStyle.Render(msg))
}

// FormPrompter asks each question with a huh input field. It needs a
// terminal on both ends.
type FormPrompter struct {
	out io.Writer
}

// NewFormPrompter returns a terminal Prompter that writes warnings to out.
func NewFormPrompter(out io.Writer) *FormPrompter {
	return &FormPrompter{out: out}
}

// Ask runs a single-field form titled label.
func (p *FormPrompter) Ask(label string) (string, error) {
	var answer string
	err := huh.NewInput().
		Title(strings.TrimSpace(label)).
		Value(&answer).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

// Say writes msg on its own line.
func (p *FormPrompter) Say(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Warn writes msg on its own line in the warning style.
func (p *FormPrompter) Warn(msg string) {
	fmt.Fprintln(p.out, warnStyle.Render(msg))
}

// Detect picks the form prompter when both in and out are terminals and
// plain is false, and the line prompter otherwise.
func Detect(in, out *os.File, plain bool) Prompter {
	if !plain && isTerminal(in) && isTerminal(out) {
		return NewFormPrompter(out)
	}
	return NewLinePrompter(in, out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
