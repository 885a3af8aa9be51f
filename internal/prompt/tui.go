package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// outcome records how a prompt model finished.
type outcome int

const (
	pending outcome = iota
	answered
	interrupted
	dismissed
)

func (o outcome) err() error {
	switch o {
	case interrupted:
		return ErrInterrupted
	case dismissed:
		return ErrDismissed
	default:
		return nil
	}
}

// textModel is a single-line input with inline validation.
type textModel struct {
	message  string
	fallback string
	validate ValidateFunc
	input    textinput.Model
	err      error
	value    string
	outcome  outcome
}

func newTextModel(message, defaultValue string, validate ValidateFunc) textModel {
	ti := textinput.New()
	ti.Placeholder = defaultValue
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	return textModel{
		message:  message,
		fallback: defaultValue,
		validate: validate,
		input:    ti,
	}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			m.outcome = interrupted
			return m, tea.Quit
		case tea.KeyEsc:
			m.outcome = dismissed
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				value = m.fallback
			}
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.value = value
			m.outcome = answered
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.outcome == answered {
		return questionStyle.Render(m.message) + " " + m.value + "\n"
	}
	if m.outcome != pending {
		return ""
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.message) + "\n")
	b.WriteString(inputStyle.Render(m.input.View()) + "\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(hintStyle.Render("(enter to confirm, esc to skip, ctrl+c to cancel)") + "\n")
	return b.String()
}

// selectModel is a cursor-driven single choice list.
type selectModel struct {
	message string
	choices []Choice
	cursor  int
	err     error
	outcome outcome
}

func newSelectModel(message string, choices []Choice) selectModel {
	return selectModel{
		message: message,
		choices: choices,
		cursor:  defaultIndex(choices),
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.outcome = interrupted
		return m, tea.Quit
	case "esc":
		m.outcome = dismissed
		return m, tea.Quit
	case "up", "k":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.choices) - 1
		}
		m.err = nil
	case "down", "j":
		m.cursor++
		if m.cursor >= len(m.choices) {
			m.cursor = 0
		}
		m.err = nil
	case "enter":
		if m.choices[m.cursor].Disabled {
			m.err = fmt.Errorf("%q is not available here", m.choices[m.cursor].Label)
			return m, nil
		}
		m.outcome = answered
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.outcome == answered {
		return questionStyle.Render(m.message) + " " + m.choices[m.cursor].Label + "\n"
	}
	if m.outcome != pending {
		return ""
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.message) + "\n")
	for i, c := range m.choices {
		switch {
		case i == m.cursor:
			b.WriteString(selectedItemStyle.Render("> "+c.Label) + "\n")
		case c.Disabled:
			b.WriteString(disabledItemStyle.Render(c.Label) + "\n")
		default:
			b.WriteString(itemStyle.Render(c.Label) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	return b.String()
}

// TUI prompts with one short-lived bubbletea program per question.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI returns a TUI prompter bound to a terminal.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrInterrupted
		}
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}

// Text implements Prompter.
func (t *TUI) Text(ctx context.Context, message, defaultValue string, validate ValidateFunc) (string, error) {
	final, err := t.run(ctx, newTextModel(message, defaultValue, validate))
	if err != nil {
		return "", err
	}
	m := final.(textModel)
	if err := m.outcome.err(); err != nil {
		return "", err
	}
	return m.value, nil
}

// Select implements Prompter.
func (t *TUI) Select(ctx context.Context, message string, choices []Choice) (string, error) {
	if defaultIndex(choices) < 0 {
		return "", errNoChoices
	}
	final, err := t.run(ctx, newSelectModel(message, choices))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if err := m.outcome.err(); err != nil {
		return "", err
	}
	return m.choices[m.cursor].Value, nil
}
