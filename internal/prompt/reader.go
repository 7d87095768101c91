package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PlainReader reads answers line by line. It shows the default inline as
// "[default]" and returns it for an empty line.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader creates a reader over in that writes questions to out.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine implements LineReader.
func (p *PlainReader) ReadLine(question string, def *string) (string, error) {
	label := question
	if def != nil && *def != "" {
		label += " [" + *def + "]"
	}
	fmt.Fprint(p.out, label+": ")

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" && def != nil {
		return *def, nil
	}
	return line, nil
}

// TextInputReader reads answers through a single-line terminal input whose
// buffer starts out holding the default.
type TextInputReader struct {
	in  io.Reader
	out io.Writer
}

// NewTextInputReader creates a terminal reader.
func NewTextInputReader(in io.Reader, out io.Writer) *TextInputReader {
	return &TextInputReader{in: in, out: out}
}

// ReadLine implements LineReader.
func (r *TextInputReader) ReadLine(question string, def *string) (string, error) {
	ti := textinput.New()
	ti.Prompt = question + ": "
	ti.CharLimit = 255
	if def != nil {
		ti.SetValue(*def)
		ti.CursorEnd()
	}
	ti.Focus()

	final, err := tea.NewProgram(inputModel{input: ti}, tea.WithInput(r.in), tea.WithOutput(r.out)).Run()
	if err != nil {
		return "", fmt.Errorf("running input: %w", err)
	}

	m, ok := final.(inputModel)
	if !ok || m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

type inputModel struct {
	input   textinput.Model
	done    bool
	aborted bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View()
}
