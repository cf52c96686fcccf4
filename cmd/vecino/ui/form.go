package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form cycles focus across a set of text inputs. Tab/shift+tab (and
// up/down) move focus; the active input receives everything else.
type Form struct {
	Inputs []textinput.Model
	Labels []string
	focus  int
}

// NewForm builds a form from label/placeholder pairs.
func NewForm(st Styles, fields ...[2]string) Form {
	f := Form{}
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field[1]
		ti.CharLimit = 256
		ti.Width = 40
		ti.PromptStyle = st.Prompt
		ti.TextStyle = st.Input
		if i == 0 {
			ti.Focus()
		}
		f.Labels = append(f.Labels, field[0])
		f.Inputs = append(f.Inputs, ti)
	}
	return f
}

// Value returns the trimmed value of input i.
func (f *Form) Value(i int) string {
	return strings.TrimSpace(f.Inputs[i].Value())
}

// SetValue sets input i.
func (f *Form) SetValue(i int, v string) {
	f.Inputs[i].SetValue(v)
}

// Focused returns the focused input index.
func (f *Form) Focused() int { return f.focus }

// Next moves focus forward, wrapping around.
func (f *Form) Next() { f.setFocus((f.focus + 1) % len(f.Inputs)) }

// Prev moves focus backward, wrapping around.
func (f *Form) Prev() { f.setFocus((f.focus - 1 + len(f.Inputs)) % len(f.Inputs)) }

func (f *Form) setFocus(i int) {
	for j := range f.Inputs {
		if j == i {
			f.Inputs[j].Focus()
		} else {
			f.Inputs[j].Blur()
		}
	}
	f.focus = i
}

// Update routes focus-cycling keys, then forwards the message to the
// focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.Next()
			return nil
		case "shift+tab", "up":
			f.Prev()
			return nil
		}
	}
	var cmd tea.Cmd
	f.Inputs[f.focus], cmd = f.Inputs[f.focus].Update(msg)
	return cmd
}

// View renders labels and inputs stacked.
func (f *Form) View(st Styles) string {
	var b strings.Builder
	for i := range f.Inputs {
		b.WriteString(st.Label.Render(f.Labels[i]) + "\n")
		b.WriteString(f.Inputs[i].View() + "\n")
	}
	return b.String()
}
