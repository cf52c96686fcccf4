package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a transient view layered over the current page. Opening or
// closing a modal never touches the page router's state.
type Modal interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Modal, tea.Cmd)
	View(st Styles, width, height int) string
}

// ModalStack is the overlay controller. While the stack is non-empty all
// key input is trapped by the topmost modal; esc dismisses it.
type ModalStack struct {
	stack []Modal
}

// Active reports whether any overlay is showing.
func (m *ModalStack) Active() bool { return len(m.stack) > 0 }

// Len reports the overlay depth.
func (m *ModalStack) Len() int { return len(m.stack) }

// Push layers a modal on top and runs its Init.
func (m *ModalStack) Push(modal Modal) tea.Cmd {
	m.stack = append(m.stack, modal)
	return modal.Init()
}

// Pop dismisses the topmost modal.
func (m *ModalStack) Pop() {
	if len(m.stack) > 0 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

// Update routes a message to the topmost modal only (focus trap). Escape
// closes the top overlay without reaching the modal or the page below.
func (m *ModalStack) Update(msg tea.Msg) tea.Cmd {
	if !m.Active() {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			m.Pop()
			return nil
		}
	case CloseModalMsg:
		m.Pop()
		return nil
	}

	top := m.stack[len(m.stack)-1]
	updated, cmd := top.Update(msg)
	m.stack[len(m.stack)-1] = updated
	return cmd
}

// View renders the topmost modal centered in the window.
func (m *ModalStack) View(st Styles, width, height int) string {
	if !m.Active() {
		return ""
	}
	top := m.stack[len(m.stack)-1]
	box := st.ModalBox.Render(top.View(st, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
