package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type lineResult struct {
	text string
	err  error
}

// Line prompts with plain text and numbered menus over any reader and writer.
type Line struct {
	in    *bufio.Reader
	out   io.Writer
	lines chan lineResult
}

// NewLine returns a line prompter reading from r and writing to w.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{in: bufio.NewReader(r), out: w}
}

// pump feeds lines to readLine so that a blocked read never outlives ctx.
func (l *Line) pump() {
	for {
		s, err := l.in.ReadString('\n')
		if s != "" {
			l.lines <- lineResult{text: s}
		}
		if err != nil {
			l.lines <- lineResult{err: err}
			close(l.lines)
			return
		}
	}
}

func (l *Line) readLine(ctx context.Context) (string, error) {
	if l.lines == nil {
		l.lines = make(chan lineResult)
		go l.pump()
	}
	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case r, ok := <-l.lines:
		if !ok || r.err != nil {
			// End of input is the closest a pipe gets to Ctrl+C.
			return "", ErrInterrupted
		}
		return strings.TrimSpace(r.text), nil
	}
}

// Text implements Prompter.
func (l *Line) Text(ctx context.Context, message, defaultValue string, validate ValidateFunc) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(l.out, "%s (%s): ", message, defaultValue)
		} else {
			fmt.Fprintf(l.out, "%s: ", message)
		}

		value, err := l.readLine(ctx)
		if err != nil {
			fmt.Fprintln(l.out)
			return "", err
		}
		if value == "" {
			value = defaultValue
		}
		if validate != nil {
			if err := validate(value); err != nil {
				fmt.Fprintf(l.out, "  %v\n", err)
				continue
			}
		}
		return value, nil
	}
}

// Select implements Prompter.
func (l *Line) Select(ctx context.Context, message string, choices []Choice) (string, error) {
	def := defaultIndex(choices)
	if def < 0 {
		return "", errNoChoices
	}

	for {
		fmt.Fprintf(l.out, "\n%s\n", message)
		for i, c := range choices {
			suffix := ""
			if c.Disabled {
				suffix = " (unavailable)"
			}
			fmt.Fprintf(l.out, "  %d) %s%s\n", i+1, c.Label, suffix)
		}
		fmt.Fprintf(l.out, "Enter number [1-%d] (%d): ", len(choices), def+1)

		line, err := l.readLine(ctx)
		if err != nil {
			fmt.Fprintln(l.out)
			return "", err
		}
		if line == "" {
			return choices[def].Value, nil
		}

		num, err := strconv.Atoi(line)
		if err != nil || num < 1 || num > len(choices) {
			fmt.Fprintf(l.out, "  invalid selection %q: choose 1-%d\n", line, len(choices))
			continue
		}
		if choices[num-1].Disabled {
			fmt.Fprintf(l.out, "  %q is not available here\n", choices[num-1].Label)
			continue
		}
		return choices[num-1].Value, nil
	}
}
