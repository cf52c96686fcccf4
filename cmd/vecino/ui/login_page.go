package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/model"
	"vecindario/internal/nav"
	"vecindario/internal/session"
)

// LoginResultMsg carries the authentication outcome.
type LoginResultMsg struct {
	User model.User
	Res  api.Result
}

// LoginModel is the sign-in form: role toggle, phone, password.
type LoginModel struct {
	client   *api.Client
	sessions *session.Store
	styles   Styles

	role    model.Role
	form    Form
	busy    bool
	errText string
}

// NewLoginModel builds the login page.
func NewLoginModel(st Styles, client *api.Client, sessions *session.Store) LoginModel {
	form := NewForm(st,
		[2]string{"Teléfono / WhatsApp", "+57..."},
		[2]string{"Contraseña", ""},
	)
	form.Inputs[1].EchoMode = textinput.EchoPassword
	return LoginModel{
		client:   client,
		sessions: sessions,
		styles:   st,
		role:     model.RoleCustomer,
		form:     form,
	}
}

// Update handles login input and submission.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			if m.role == model.RoleCustomer {
				m.role = model.RoleBusiness
			} else {
				m.role = model.RoleCustomer
			}
			return m, nil
		case "enter":
			if !m.busy {
				return m.submit()
			}
			return m, nil
		case "ctrl+r":
			return m, Navigate(nav.PageRegister)
		}

	case LoginResultMsg:
		m.busy = false
		if !msg.Res.OK || !msg.Res.Get("ok").Bool() {
			m.errText = msg.Res.ErrText()
			if m.errText == "" {
				m.errText = "Error al iniciar sesión"
			}
			return m, nil
		}
		// Persist identity plus the one-shot redirect marker before the
		// shell re-runs its startup routing.
		user := msg.User
		if err := m.sessions.Set(user); err != nil {
			m.errText = "No se pudo guardar la sesión."
			return m, nil
		}
		redirect := nav.PageCustomerDashboard
		if user.IsBusiness() {
			redirect = nav.PageBusinessDashboard
		}
		_ = m.sessions.SetRedirect(redirect.String())
		return m, func() tea.Msg { return LoggedInMsg{User: user} }
	}

	return m, m.form.Update(msg)
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	phone := m.form.Value(0)
	password := m.form.Value(1)
	if phone == "" || password == "" {
		m.errText = "Teléfono y contraseña son obligatorios."
		return m, nil
	}

	m.busy = true
	m.errText = ""
	client := m.client
	req := api.LoginRequest{Role: string(m.role), Phone: phone, Password: password}
	return m, func() tea.Msg {
		user, res := client.Login(context.Background(), req)
		return LoginResultMsg{User: user, Res: res}
	}
}

// View renders the login form.
func (m LoginModel) View() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Iniciar Sesión") + "\n\n")

	roleLabel := "Cliente"
	if m.role == model.RoleBusiness {
		roleLabel = "Negocio"
	}
	b.WriteString(st.Label.Render("Tipo de usuario: ") + st.Subtitle.Render(roleLabel) + st.Muted.Render("  (ctrl+t cambia)") + "\n\n")
	b.WriteString(m.form.View(st))

	if m.busy {
		b.WriteString("\n" + st.Muted.Render("Ingresando..."))
	}
	if m.errText != "" {
		b.WriteString("\n" + st.Error.Render(m.errText))
	}
	b.WriteString("\n\n" + st.Help.Render("enter: ingresar · ctrl+r: crear cuenta"))
	return b.String()
}
