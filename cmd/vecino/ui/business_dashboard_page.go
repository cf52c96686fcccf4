package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/model"
	"vecindario/internal/nav"
)

// BusinessOrdersMsg carries the orders placed against the business.
type BusinessOrdersMsg struct {
	List []model.Order
	Res  api.Result
}

// OwnProductsMsg carries the business's own product list.
type OwnProductsMsg struct {
	List []model.Product
	Res  api.Result
}

type dashboardTab int

const (
	tabOrders dashboardTab = iota
	tabProducts
)

// BusinessDashboardModel manages incoming orders and the product catalog.
type BusinessDashboardModel struct {
	client *api.Client
	styles Styles

	user     model.User
	tab      dashboardTab
	orders   []model.Order
	products []model.Product
	cursor   int
	loading  bool
	errText  string
}

// NewBusinessDashboardModel builds the business dashboard.
func NewBusinessDashboardModel(st Styles, client *api.Client) BusinessDashboardModel {
	return BusinessDashboardModel{client: client, styles: st}
}

func (m BusinessDashboardModel) businessID() int64 {
	if m.user.BusinessID > 0 {
		return m.user.BusinessID
	}
	return m.user.ID
}

// Load fetches orders and products for the owning user.
func (m BusinessDashboardModel) Load(user model.User) (BusinessDashboardModel, tea.Cmd) {
	m.user = user
	m.loading = true
	m.errText = ""
	client := m.client
	id := m.businessID()
	return m, tea.Batch(
		func() tea.Msg {
			list, res := client.OrdersByBusiness(context.Background(), id)
			return BusinessOrdersMsg{List: list, Res: res}
		},
		func() tea.Msg {
			list, res := client.ListProducts(context.Background(), id)
			return OwnProductsMsg{List: list, Res: res}
		},
	)
}

func (m BusinessDashboardModel) reloadProducts() tea.Cmd {
	client := m.client
	id := m.businessID()
	return func() tea.Msg {
		list, res := client.ListProducts(context.Background(), id)
		return OwnProductsMsg{List: list, Res: res}
	}
}

// Update handles dashboard messages.
func (m BusinessDashboardModel) Update(msg tea.Msg) (BusinessDashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case BusinessOrdersMsg:
		m.loading = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		m.orders = msg.List
		return m, nil

	case OwnProductsMsg:
		if msg.Res.OK {
			m.products = msg.List
		}
		return m, nil

	case OrderActionMsg:
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		return m.Load(m.user)

	case ProductsChangedMsg:
		return m, m.reloadProducts()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BusinessDashboardModel) handleKey(msg tea.KeyMsg) (BusinessDashboardModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.tab == tabOrders {
			m.tab = tabProducts
		} else {
			m.tab = tabOrders
		}
		m.cursor = 0
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
		return m, nil
	case "e":
		return m, Navigate(nav.PageEditProfile)
	case "r":
		return m.Load(m.user)
	}

	if m.tab == tabOrders {
		return m.handleOrderKey(msg)
	}
	return m.handleProductKey(msg)
}

func (m BusinessDashboardModel) handleOrderKey(msg tea.KeyMsg) (BusinessDashboardModel, tea.Cmd) {
	if m.cursor >= len(m.orders) {
		return m, nil
	}
	id := m.orders[m.cursor].ID
	client := m.client

	switch msg.String() {
	case "c":
		return m, func() tea.Msg {
			return OrderActionMsg{Res: client.UpdateOrderStatus(context.Background(), id, model.OrderConfirmed)}
		}
	case "x":
		return m, func() tea.Msg {
			return OrderActionMsg{Res: client.UpdateOrderStatus(context.Background(), id, model.OrderCancelled)}
		}
	case "d":
		return m, func() tea.Msg {
			return OrderActionMsg{Res: client.DeleteOrder(context.Background(), id)}
		}
	}
	return m, nil
}

func (m BusinessDashboardModel) handleProductKey(msg tea.KeyMsg) (BusinessDashboardModel, tea.Cmd) {
	client := m.client
	switch msg.String() {
	case "n":
		modal := NewProductFormModal(m.styles, client, m.businessID(), 0, "", "", "")
		return m, func() tea.Msg { return OpenModalMsg{Modal: modal} }
	case "enter":
		if m.cursor < len(m.products) {
			p := m.products[m.cursor]
			price := ""
			if p.Price != nil {
				price = strconv.FormatFloat(*p.Price, 'f', -1, 64)
			}
			modal := NewProductFormModal(m.styles, client, m.businessID(), p.ID, p.Name, p.Description, price)
			return m, func() tea.Msg { return OpenModalMsg{Modal: modal} }
		}
	case "d":
		if m.cursor < len(m.products) {
			id := m.products[m.cursor].ID
			return m, func() tea.Msg {
				res := client.DeleteProduct(context.Background(), id)
				if !res.OK {
					return OrderActionMsg{Res: res}
				}
				return ProductsChangedMsg{}
			}
		}
	}
	return m, nil
}

func (m BusinessDashboardModel) itemCount() int {
	if m.tab == tabOrders {
		return len(m.orders)
	}
	return len(m.products)
}

// View renders the business dashboard.
func (m BusinessDashboardModel) View() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render(fmt.Sprintf("Panel de %s", m.user.Name)) + "\n\n")

	ordersTab := "Pedidos"
	productsTab := "Productos"
	if m.tab == tabOrders {
		ordersTab = st.Selected.Render(" " + ordersTab + " ")
	} else {
		productsTab = st.Selected.Render(" " + productsTab + " ")
	}
	b.WriteString(ordersTab + "  " + productsTab + st.Muted.Render("  (tab cambia)") + "\n\n")

	if m.loading {
		b.WriteString(st.Muted.Render("Cargando..."))
		return b.String()
	}
	if m.errText != "" {
		b.WriteString(st.Error.Render(m.errText) + "\n")
	}

	if m.tab == tabOrders {
		m.renderOrders(&b)
	} else {
		m.renderProducts(&b)
	}
	return b.String()
}

func (m BusinessDashboardModel) renderOrders(b *strings.Builder) {
	st := m.styles
	if len(m.orders) == 0 {
		b.WriteString(st.Muted.Render("No hay pedidos entrantes.") + "\n")
	}
	for i, o := range m.orders {
		line := fmt.Sprintf("#%d · %s · x%d · %s", o.ID, o.CustomerName, o.Quantity, renderStatus(st, o.Status))
		if i == m.cursor {
			b.WriteString(st.Selected.Render("> ") + line + "\n")
			if o.Message != "" {
				b.WriteString("  " + st.Muted.Render(truncate(o.Message, 70)) + "\n")
			}
			if o.CustomerPhone != "" {
				b.WriteString("  " + st.Muted.Render("Tel: "+o.CustomerPhone) + "\n")
			}
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + st.Help.Render("c: confirmar · x: cancelar · d: eliminar · e: perfil · r: recargar"))
}

func (m BusinessDashboardModel) renderProducts(b *strings.Builder) {
	st := m.styles
	if len(m.products) == 0 {
		b.WriteString(st.Muted.Render("Aún no publicas productos.") + "\n")
	}
	for i, p := range m.products {
		line := p.Name
		if p.Price != nil {
			line += fmt.Sprintf(" · $%.0f", *p.Price)
		}
		if i == m.cursor {
			b.WriteString(st.Selected.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + st.Help.Render("n: nuevo · enter: editar · d: eliminar · e: perfil"))
}
