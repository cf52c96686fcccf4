package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"vecindario/internal/api"
	"vecindario/internal/model"
	"vecindario/internal/nav"
)

// CategoriesLoadedMsg carries the category list for business sign-up.
type CategoriesLoadedMsg struct {
	List []model.Category
	Res  api.Result
}

// RegisterResultMsg carries the sign-up outcome.
type RegisterResultMsg struct{ Res api.Result }

// registerForm is the validated sign-up payload.
type registerForm struct {
	Name     string `validate:"required,min=2"`
	Phone    string `validate:"required,min=7"`
	Password string `validate:"required,min=6"`
}

// RegisterModel is the account creation form. Business accounts pick a
// category from /api/categorias and add a business name and address.
type RegisterModel struct {
	client *api.Client
	styles Styles

	role       model.Role
	form       Form
	categories []model.Category
	catIdx     int
	validate   *validator.Validate
	busy       bool
	errText    string
	okText     string
}

// NewRegisterModel builds the register page.
func NewRegisterModel(st Styles, client *api.Client) RegisterModel {
	form := NewForm(st,
		[2]string{"Nombre", "Ej: María Rodríguez"},
		[2]string{"Teléfono / WhatsApp", "+57..."},
		[2]string{"Contraseña", "mínimo 6 caracteres"},
		[2]string{"Ciudad", ""},
		[2]string{"Barrio", ""},
		[2]string{"Nombre del negocio", "solo cuentas de negocio"},
		[2]string{"Dirección exacta", "solo cuentas de negocio"},
	)
	form.Inputs[2].EchoMode = textinput.EchoPassword
	return RegisterModel{
		client:   client,
		styles:   st,
		role:     model.RoleCustomer,
		form:     form,
		validate: validator.New(),
	}
}

// Load fetches the categories.
func (m RegisterModel) Load() (RegisterModel, tea.Cmd) {
	client := m.client
	return m, func() tea.Msg {
		list, res := client.ListCategories(context.Background())
		return CategoriesLoadedMsg{List: list, Res: res}
	}
}

// Update handles registration input and submission.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case CategoriesLoadedMsg:
		// A missing category list only degrades the picker; the API
		// message is not worth an inline error here.
		if msg.Res.OK {
			m.categories = msg.List
		}
		return m, nil

	case RegisterResultMsg:
		m.busy = false
		if !msg.Res.OK || !msg.Res.Get("ok").Bool() {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		m.okText = "Cuenta creada. Ya puedes iniciar sesión."
		return m, Navigate(nav.PageLogin)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			if m.role == model.RoleCustomer {
				m.role = model.RoleBusiness
			} else {
				m.role = model.RoleCustomer
			}
			return m, nil
		case "ctrl+k":
			if len(m.categories) > 0 {
				m.catIdx = (m.catIdx + 1) % len(m.categories)
			}
			return m, nil
		case "enter":
			if !m.busy {
				return m.submit()
			}
			return m, nil
		case "ctrl+l":
			return m, Navigate(nav.PageLogin)
		}
	}
	return m, m.form.Update(msg)
}

func (m RegisterModel) submit() (RegisterModel, tea.Cmd) {
	input := registerForm{
		Name:     m.form.Value(0),
		Phone:    m.form.Value(1),
		Password: m.form.Value(2),
	}
	if err := m.validate.Struct(input); err != nil {
		m.errText = "Faltan campos: nombre, teléfono y contraseña (mínimo 6)."
		return m, nil
	}

	req := api.RegisterRequest{
		Role:     string(m.role),
		Name:     input.Name,
		Phone:    input.Phone,
		Password: input.Password,
		City:     m.form.Value(3),
		Barrio:   m.form.Value(4),
	}
	if m.role == model.RoleBusiness {
		req.BusinessName = m.form.Value(5)
		req.Address = m.form.Value(6)
		if req.BusinessName == "" {
			m.errText = "El nombre del negocio es obligatorio para cuentas de negocio."
			return m, nil
		}
		if len(m.categories) > 0 {
			req.CategoryID = m.categories[m.catIdx].ID
		}
	}

	m.busy = true
	m.errText = ""
	client := m.client
	return m, func() tea.Msg {
		return RegisterResultMsg{Res: client.Register(context.Background(), req)}
	}
}

// View renders the registration form.
func (m RegisterModel) View() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Crear Cuenta") + "\n\n")

	roleLabel := "Cliente"
	if m.role == model.RoleBusiness {
		roleLabel = "Negocio"
	}
	b.WriteString(st.Label.Render("Tipo de cuenta: ") + st.Subtitle.Render(roleLabel) + st.Muted.Render("  (ctrl+t cambia)") + "\n")

	if m.role == model.RoleBusiness {
		cat := "sin categorías"
		if len(m.categories) > 0 {
			cat = m.categories[m.catIdx].Name
		}
		b.WriteString(st.Label.Render("Categoría: ") + cat + st.Muted.Render("  (ctrl+k cambia)") + "\n")
	}
	b.WriteString("\n" + m.form.View(st))

	if m.busy {
		b.WriteString("\n" + st.Muted.Render("Registrando..."))
	}
	if m.errText != "" {
		b.WriteString("\n" + st.Error.Render(m.errText))
	}
	if m.okText != "" {
		b.WriteString("\n" + st.Success.Render(m.okText))
	}
	b.WriteString("\n\n" + st.Help.Render("enter: registrar · ctrl+l: ya tengo cuenta"))
	return b.String()
}
