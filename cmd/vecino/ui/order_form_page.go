package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"vecindario/internal/api"
	"vecindario/internal/model"
	"vecindario/internal/session"
	"vecindario/internal/whatsapp"
)

// OrderFormLoadedMsg carries the data the form needs: either one business
// with its products (specific mode) or the selectable business list.
type OrderFormLoadedMsg struct {
	BusinessID int64
	Business   model.Business
	Businesses []model.Business
	Products   []model.Product
	Res        api.Result
}

// OrderProductsMsg carries products after the selected business changes.
type OrderProductsMsg struct {
	BusinessID int64
	Products   []model.Product
}

// OrderSubmitMsg carries the create-order outcome.
type OrderSubmitMsg struct {
	OrderID int64
	WaURL   string
	Res     api.Result
}

// orderInput is the validated form payload.
type orderInput struct {
	BusinessID int64  `validate:"required,gt=0"`
	Name       string `validate:"required,min=2"`
	Quantity   int    `validate:"required,gt=0"`
}

// OrderFormModel places an order against a business. With a preselected
// business it loads that business and its products; otherwise it offers
// the whole directory.
type OrderFormModel struct {
	client   *api.Client
	sessions *session.Store
	styles   Styles
	validate *validator.Validate

	preselected int64
	businesses  []model.Business
	business    model.Business
	bizIdx      int
	products    []model.Product
	prodIdx     int // 0 = "Pedido General", i+1 = products[i]
	form        Form
	busy        bool
	loading     bool
	errText     string
}

// NewOrderFormModel builds the order form.
func NewOrderFormModel(st Styles, client *api.Client, sessions *session.Store) OrderFormModel {
	form := NewForm(st,
		[2]string{"Cantidad", "1"},
		[2]string{"Tu nombre", "Ej: María Rodríguez"},
		[2]string{"Tu WhatsApp", "con código de país"},
		[2]string{"Mensaje / descripción", "Ej: Si no hay pan integral, tráeme pan blanco..."},
	)
	form.SetValue(0, "1")
	return OrderFormModel{
		client:   client,
		sessions: sessions,
		styles:   st,
		validate: validator.New(),
		form:     form,
	}
}

// Load prepares the form. businessID 0 means general mode.
func (m OrderFormModel) Load(businessID int64) (OrderFormModel, tea.Cmd) {
	m.preselected = businessID
	m.loading = true
	m.errText = ""
	m.prodIdx = 0

	// Pre-fill from the stored identity, like the web form did.
	if u := m.sessions.Current(); u != nil {
		m.form.SetValue(1, u.Name)
		m.form.SetValue(2, u.Phone)
	}

	client := m.client
	if businessID > 0 {
		return m, func() tea.Msg {
			var (
				biz      model.Business
				products []model.Product
				bizRes   api.Result
			)
			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() error {
				biz, bizRes = client.GetBusiness(ctx, businessID)
				return nil
			})
			g.Go(func() error {
				products, _ = client.ListProducts(ctx, businessID)
				return nil
			})
			_ = g.Wait()
			return OrderFormLoadedMsg{BusinessID: businessID, Business: biz, Products: products, Res: bizRes}
		}
	}
	return m, func() tea.Msg {
		list, res := client.ListBusinesses(context.Background())
		return OrderFormLoadedMsg{Businesses: list, Res: res}
	}
}

func (m OrderFormModel) currentBusiness() (model.Business, bool) {
	if m.preselected > 0 {
		return m.business, m.business.ID > 0
	}
	if len(m.businesses) == 0 {
		return model.Business{}, false
	}
	return m.businesses[m.bizIdx], true
}

func (m OrderFormModel) selectedProduct() *model.Product {
	if m.prodIdx == 0 || m.prodIdx > len(m.products) {
		return nil
	}
	return &m.products[m.prodIdx-1]
}

// Update handles form input and submission.
func (m OrderFormModel) Update(msg tea.Msg) (OrderFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case OrderFormLoadedMsg:
		m.loading = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		if msg.BusinessID > 0 {
			m.business = msg.Business
			m.products = msg.Products
		} else {
			m.businesses = msg.Businesses
			m.bizIdx = 0
			if biz, ok := m.currentBusiness(); ok {
				return m, m.loadProducts(biz.ID)
			}
		}
		return m, nil

	case OrderProductsMsg:
		if biz, ok := m.currentBusiness(); ok && biz.ID == msg.BusinessID {
			m.products = msg.Products
			m.prodIdx = 0
		}
		return m, nil

	case OrderSubmitMsg:
		m.busy = false
		if !msg.Res.OK || msg.OrderID == 0 {
			m.errText = msg.Res.ErrText()
			if m.errText == "" {
				m.errText = "Error al procesar el pedido. Inténtalo más tarde."
			}
			return m, nil
		}
		orderID, waURL := msg.OrderID, msg.WaURL
		return m, func() tea.Msg { return OrderPlacedMsg{OrderID: orderID, WaURL: waURL} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+b":
			if m.preselected == 0 && len(m.businesses) > 0 {
				m.bizIdx = (m.bizIdx + 1) % len(m.businesses)
				return m, m.loadProducts(m.businesses[m.bizIdx].ID)
			}
			return m, nil
		case "ctrl+p":
			if len(m.products) > 0 {
				m.prodIdx = (m.prodIdx + 1) % (len(m.products) + 1)
			}
			return m, nil
		case "enter":
			if !m.busy && !m.loading {
				return m.submit()
			}
			return m, nil
		}
	}
	return m, m.form.Update(msg)
}

func (m OrderFormModel) loadProducts(businessID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		list, _ := client.ListProducts(context.Background(), businessID)
		return OrderProductsMsg{BusinessID: businessID, Products: list}
	}
}

func (m OrderFormModel) submit() (OrderFormModel, tea.Cmd) {
	biz, ok := m.currentBusiness()
	if !ok {
		m.errText = "Por favor, selecciona un negocio."
		return m, nil
	}

	quantity, _ := strconv.Atoi(m.form.Value(0))
	input := orderInput{BusinessID: biz.ID, Name: m.form.Value(1), Quantity: quantity}
	if err := m.validate.Struct(input); err != nil {
		m.errText = "Revisa el negocio, tu nombre y la cantidad (mayor a cero)."
		return m, nil
	}

	product := m.selectedProduct()
	message := m.form.Value(3)
	if message == "" && product == nil {
		m.errText = "Especifica el producto o deja un mensaje detallado."
		return m, nil
	}

	order := model.Order{
		BusinessID:   biz.ID,
		CustomerName: input.Name,
		Message:      message,
		Quantity:     quantity,
	}
	if product != nil {
		id := product.ID
		order.ProductID = &id
	}

	phone := m.form.Value(2)
	if u := m.sessions.Current(); u != nil {
		id := u.ID
		order.CustomerID = &id
		if phone == "" {
			phone = u.Phone
		}
	} else if phone == "" {
		m.errText = "Se requiere tu número de WhatsApp para pedidos sin cuenta."
		return m, nil
	}
	order.CustomerPhone = phone

	productLabel := ""
	if product != nil {
		productLabel = fmt.Sprintf("%s (ID: %d)", product.Name, product.ID)
	}

	m.busy = true
	m.errText = ""
	client := m.client
	businessName := biz.Name
	businessPhone := biz.Phone
	return m, func() tea.Msg {
		orderID, res := client.CreateOrder(context.Background(), order)
		if !res.OK || orderID == 0 {
			return OrderSubmitMsg{Res: res}
		}
		text := whatsapp.OrderMessage(orderID, order.CustomerName, order.CustomerPhone,
			businessName, productLabel, order.Quantity, order.Message)
		return OrderSubmitMsg{
			OrderID: orderID,
			WaURL:   whatsapp.Link(businessPhone, text),
			Res:     res,
		}
	}
}

// View renders the order form.
func (m OrderFormModel) View() string {
	st := m.styles
	var b strings.Builder

	if m.loading {
		return st.Muted.Render("Cargando información del negocio...")
	}

	biz, ok := m.currentBusiness()
	if m.preselected > 0 && !ok {
		return st.Error.Render(fmt.Sprintf("No se pudo cargar el negocio (ID: %d).", m.preselected))
	}

	title := "Hacer Nuevo Pedido"
	if ok {
		title = "Hacer Pedido a " + biz.Name
	}
	b.WriteString(st.Title.Render(title) + "\n\n")

	if m.preselected == 0 {
		label := "-- Elige un negocio --"
		if ok {
			label = biz.Name
			if biz.City != "" || biz.Barrio != "" {
				label += fmt.Sprintf(" (%s / %s)", biz.City, biz.Barrio)
			}
		}
		b.WriteString(st.Label.Render("Negocio: ") + label + st.Muted.Render("  (ctrl+b cambia)") + "\n")
	}

	prodLabel := "Pedido General"
	if p := m.selectedProduct(); p != nil {
		prodLabel = p.Name
		if p.Price != nil {
			prodLabel += fmt.Sprintf(" · $%.0f", *p.Price)
		}
	} else if len(m.products) == 0 {
		prodLabel = "sin productos publicados"
	}
	b.WriteString(st.Label.Render("Producto: ") + prodLabel + st.Muted.Render("  (ctrl+p cambia)") + "\n\n")

	b.WriteString(m.form.View(st))
	if m.busy {
		b.WriteString("\n" + st.Muted.Render("Enviando..."))
	}
	if m.errText != "" {
		b.WriteString("\n" + st.Error.Render(m.errText))
	}
	b.WriteString("\n\n" + st.Help.Render("enter: enviar pedido"))
	return b.String()
}
