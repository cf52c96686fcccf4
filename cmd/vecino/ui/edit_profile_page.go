package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/model"
)

// ProfileSaveResultMsg carries the outcome of a profile save.
type ProfileSaveResultMsg struct {
	User model.User
	Res  api.Result
}

// EditProfileModel edits the logged-in user's own record. A successful save
// must re-persist the merged identity, which the shell does on
// ProfileSavedMsg.
type EditProfileModel struct {
	client *api.Client
	styles Styles

	user    model.User
	form    Form
	busy    bool
	errText string
}

// NewEditProfileModel builds the edit form.
func NewEditProfileModel(st Styles, client *api.Client) EditProfileModel {
	return EditProfileModel{
		client: client,
		styles: st,
		form: NewForm(st,
			[2]string{"Nombre", ""},
			[2]string{"Teléfono / WhatsApp", ""},
			[2]string{"Ciudad", ""},
			[2]string{"Barrio", ""},
		),
	}
}

// Load prefills the form from the current identity.
func (m EditProfileModel) Load(user model.User) (EditProfileModel, tea.Cmd) {
	m.user = user
	m.errText = ""
	m.form.SetValue(0, user.Name)
	m.form.SetValue(1, user.Phone)
	m.form.SetValue(2, user.City)
	m.form.SetValue(3, user.Barrio)
	return m, nil
}

// Update handles edit input and the save round-trip.
func (m EditProfileModel) Update(msg tea.Msg) (EditProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !m.busy {
			return m.submit()
		}

	case ProfileSaveResultMsg:
		m.busy = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		merged := msg.User
		if !merged.Valid() {
			// API did not echo the record; merge locally so the session
			// still converges on what was saved.
			merged = m.user
			merged.Name = m.form.Value(0)
			merged.Phone = m.form.Value(1)
			merged.City = m.form.Value(2)
			merged.Barrio = m.form.Value(3)
		}
		return m, func() tea.Msg { return ProfileSavedMsg{User: merged} }
	}
	return m, m.form.Update(msg)
}

func (m EditProfileModel) submit() (EditProfileModel, tea.Cmd) {
	if m.form.Value(0) == "" {
		m.errText = "El nombre no puede quedar vacío."
		return m, nil
	}

	m.busy = true
	m.errText = ""
	client := m.client
	id := m.user.ID
	fields := map[string]any{
		"nombre":   m.form.Value(0),
		"telefono": m.form.Value(1),
		"ciudad":   m.form.Value(2),
		"barrio":   m.form.Value(3),
	}
	return m, func() tea.Msg {
		user, res := client.UpdateUser(context.Background(), id, fields)
		return ProfileSaveResultMsg{User: user, Res: res}
	}
}

// View renders the edit form.
func (m EditProfileModel) View() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Editar Perfil") + "\n\n")
	b.WriteString(m.form.View(st))
	if m.busy {
		b.WriteString("\n" + st.Muted.Render("Guardando..."))
	}
	if m.errText != "" {
		b.WriteString("\n" + st.Error.Render(m.errText))
	}
	b.WriteString("\n\n" + st.Help.Render("enter: guardar"))
	return b.String()
}
