package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/model"
)

// SearchLoadedMsg carries the searchable business list.
type SearchLoadedMsg struct {
	List []model.Business
	Res  api.Result
}

// SearchModel filters the business directory by name, category or barrio.
type SearchModel struct {
	client *api.Client
	styles Styles

	input   textinput.Model
	all     []model.Business
	matches []model.Business
	cursor  int
	loading bool
	errText string
}

// NewSearchModel builds the search page.
func NewSearchModel(st Styles, client *api.Client) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Buscar por nombre, categoría o barrio..."
	ti.CharLimit = 128
	ti.Width = 50
	ti.PromptStyle = st.Prompt
	ti.Focus()
	return SearchModel{client: client, styles: st, input: ti}
}

// Load fetches the directory once; filtering is local.
func (m SearchModel) Load() (SearchModel, tea.Cmd) {
	m.loading = true
	m.errText = ""
	client := m.client
	return m, func() tea.Msg {
		list, res := client.ListBusinesses(context.Background())
		return SearchLoadedMsg{List: list, Res: res}
	}
}

func (m SearchModel) filter() SearchModel {
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if q == "" {
		m.matches = m.all
	} else {
		m.matches = m.matches[:0]
		for _, biz := range m.all {
			hay := strings.ToLower(biz.Name + " " + biz.Category + " " + biz.Barrio + " " + biz.City)
			if strings.Contains(hay, q) {
				m.matches = append(m.matches, biz)
			}
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
	return m
}

// Update handles search input and selection.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SearchLoadedMsg:
		m.loading = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		m.all = msg.List
		return m.filter(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor < len(m.matches) {
				id := m.matches[m.cursor].ID
				return m, func() tea.Msg { return OpenBusinessMsg{ID: id} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m.filter(), cmd
}

// View renders the search page.
func (m SearchModel) View() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Buscar Negocios") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	if m.loading {
		b.WriteString(st.Muted.Render("Cargando directorio..."))
		return b.String()
	}
	if m.errText != "" {
		b.WriteString(st.Error.Render(m.errText))
		return b.String()
	}
	if len(m.matches) == 0 {
		b.WriteString(st.Muted.Render("Sin resultados."))
		return b.String()
	}

	for i, biz := range m.matches {
		line := biz.Name
		if biz.Category != "" {
			line += " · " + biz.Category
		}
		if biz.Barrio != "" {
			line += " · " + biz.Barrio
		}
		if i == m.cursor {
			b.WriteString(st.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + st.Help.Render("enter: abrir perfil"))
	return b.String()
}
