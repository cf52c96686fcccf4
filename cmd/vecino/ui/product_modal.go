package ui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"vecindario/internal/api"
)

// productForm is the validated create/update payload.
type productForm struct {
	Name  string `validate:"required,min=2"`
	Price string `validate:"omitempty,numeric"`
}

// ProductFormModal creates or edits a product from the business dashboard.
type ProductFormModal struct {
	client     *api.Client
	businessID int64
	productID  int64 // 0 = create
	form       Form
	validate   *validator.Validate
	saving     bool
	errText    string
}

type productSavedMsg struct{ res api.Result }

// NewProductFormModal builds the form. productID 0 creates a new product.
func NewProductFormModal(st Styles, client *api.Client, businessID, productID int64, name, description, price string) *ProductFormModal {
	form := NewForm(st,
		[2]string{"Nombre", "Ej: Pan integral"},
		[2]string{"Descripción", "opcional"},
		[2]string{"Precio", "opcional, solo números"},
	)
	form.SetValue(0, name)
	form.SetValue(1, description)
	form.SetValue(2, price)
	return &ProductFormModal{
		client:     client,
		businessID: businessID,
		productID:  productID,
		form:       form,
		validate:   validator.New(),
	}
}

func (m *ProductFormModal) Init() tea.Cmd { return nil }

func (m *ProductFormModal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !m.saving {
			return m, m.submit()
		}

	case productSavedMsg:
		m.saving = false
		if !msg.res.OK {
			m.errText = msg.res.ErrText()
			return m, nil
		}
		return m, tea.Batch(
			CloseModal(),
			func() tea.Msg { return ProductsChangedMsg{} },
		)
	}
	return m, m.form.Update(msg)
}

func (m *ProductFormModal) submit() tea.Cmd {
	input := productForm{Name: m.form.Value(0), Price: m.form.Value(2)}
	if err := m.validate.Struct(input); err != nil {
		m.errText = "Revisa el nombre y el precio del producto."
		return nil
	}

	payload := api.ProductPayload{
		Name:        m.form.Value(0),
		Description: m.form.Value(1),
	}
	if input.Price != "" {
		if f, err := strconv.ParseFloat(input.Price, 64); err == nil {
			payload.Price = &f
		}
	}

	m.saving = true
	m.errText = ""
	client, businessID, productID := m.client, m.businessID, m.productID
	return func() tea.Msg {
		ctx := context.Background()
		if productID > 0 {
			return productSavedMsg{res: client.UpdateProduct(ctx, productID, payload)}
		}
		return productSavedMsg{res: client.CreateProduct(ctx, businessID, payload)}
	}
}

func (m *ProductFormModal) View(st Styles, width, height int) string {
	var b strings.Builder
	title := "Nuevo Producto"
	if m.productID > 0 {
		title = "Editar Producto"
	}
	b.WriteString(st.Title.Render(title) + "\n\n")
	b.WriteString(m.form.View(st))
	if m.errText != "" {
		b.WriteString("\n" + st.Error.Render(m.errText))
	}
	if m.saving {
		b.WriteString("\n" + st.Muted.Render("Guardando..."))
	}
	b.WriteString("\n" + st.Help.Render("enter: guardar · esc: cancelar"))
	return b.String()
}
