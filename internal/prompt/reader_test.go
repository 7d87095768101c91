package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainReader(t *testing.T) {
	def := "application.local"

	tests := []struct {
		name  string
		input string
		def   *string
		want  string
	}{
		{"typed answer", "shop.local\n", &def, "shop.local"},
		{"bare enter with default", "\n", &def, def},
		{"bare enter without default", "\n", nil, ""},
		{"windows line ending", "Shop\r\n", nil, "Shop"},
		{"last line without newline", "Shop", nil, "Shop"},
		{"spaces are kept", "  Shop  \n", nil, "  Shop  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPlainReader(strings.NewReader(tt.input), io.Discard)
			got, err := r.ReadLine("Question", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlainReader_EOF(t *testing.T) {
	r := NewPlainReader(strings.NewReader(""), io.Discard)
	_, err := r.ReadLine("Question", nil)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPlainReader_ShowsQuestion(t *testing.T) {
	var out bytes.Buffer
	def := ""
	r := NewPlainReader(strings.NewReader("\n"), &out)

	got, err := r.ReadLine("Password", &def)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "Password: ", out.String(), "an empty default is not shown")
}

func newTestInputModel(def string) inputModel {
	ti := textinput.New()
	ti.Prompt = "Domain: "
	ti.SetValue(def)
	ti.CursorEnd()
	ti.Focus()
	return inputModel{input: ti}
}

func TestInputModel_EnterKeepsPrefilledDefault(t *testing.T) {
	m := newTestInputModel("application.local")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := updated.(inputModel)

	require.NotNil(t, cmd)
	assert.True(t, final.done)
	assert.Equal(t, "application.local", final.input.Value())
	assert.Contains(t, final.View(), "Domain: application.local")
}

func TestInputModel_Typing(t *testing.T) {
	var model tea.Model = newTestInputModel("shop")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(".local")})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "shop.local", model.(inputModel).input.Value())
}

func TestInputModel_Abort(t *testing.T) {
	updated, _ := newTestInputModel("x").Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, updated.(inputModel).aborted)

	updated, _ = newTestInputModel("x").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, updated.(inputModel).aborted)
}
