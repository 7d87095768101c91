package prompt

import (
	"io"
)

// Asker asks a sequence of questions through one reader.
type Asker struct {
	reader LineReader
	out    io.Writer
}

// NewAsker creates an Asker.
func NewAsker(reader LineReader, out io.Writer) *Asker {
	return &Asker{reader: reader, out: out}
}

// NewTerminalAsker picks the terminal input when interactive is true and
// plain line reading otherwise.
func NewTerminalAsker(in io.Reader, out io.Writer, interactive bool) *Asker {
	if interactive {
		return NewAsker(NewTextInputReader(in, out), out)
	}
	return NewAsker(NewPlainReader(in, out), out)
}

// Ask asks a new question built from text and opts.
func (a *Asker) Ask(text string, opts ...Option) (string, error) {
	return a.AskQuestion(NewQuestion(text, opts...))
}

// AskQuestion asks q.
func (a *Asker) AskQuestion(q *Question) (string, error) {
	return q.Ask(a.reader, a.out)
}
