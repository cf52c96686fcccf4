package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/model"
	"vecindario/internal/nav"
)

// CustomerOrdersMsg carries the customer's order history.
type CustomerOrdersMsg struct {
	List []model.Order
	Res  api.Result
}

// OrderActionMsg reports the outcome of a confirm/cancel/delete action.
type OrderActionMsg struct{ Res api.Result }

// CustomerDashboardModel shows a customer's orders and account actions.
type CustomerDashboardModel struct {
	client *api.Client
	styles Styles

	user    model.User
	orders  []model.Order
	cursor  int
	loading bool
	errText string
}

// NewCustomerDashboardModel builds the customer dashboard.
func NewCustomerDashboardModel(st Styles, client *api.Client) CustomerDashboardModel {
	return CustomerDashboardModel{client: client, styles: st}
}

// Load fetches the order history for user.
func (m CustomerDashboardModel) Load(user model.User) (CustomerDashboardModel, tea.Cmd) {
	m.user = user
	m.loading = true
	m.errText = ""
	client := m.client
	id := user.ID
	return m, func() tea.Msg {
		list, res := client.OrdersByCustomer(context.Background(), id)
		return CustomerOrdersMsg{List: list, Res: res}
	}
}

// Update handles dashboard messages.
func (m CustomerDashboardModel) Update(msg tea.Msg) (CustomerDashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case CustomerOrdersMsg:
		m.loading = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		m.orders = msg.List
		if m.cursor >= len(m.orders) {
			m.cursor = 0
		}
		return m, nil

	case OrderActionMsg:
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		return m.Load(m.user)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.orders)-1 {
				m.cursor++
			}
		case "x":
			if m.cursor < len(m.orders) && m.orders[m.cursor].Status != model.OrderCancelled {
				id := m.orders[m.cursor].ID
				client := m.client
				return m, func() tea.Msg {
					return OrderActionMsg{Res: client.UpdateOrderStatus(context.Background(), id, model.OrderCancelled)}
				}
			}
		case "o":
			return m, func() tea.Msg { return OpenOrderMsg{} }
		case "e":
			return m, Navigate(nav.PageEditProfile)
		case "r":
			return m.Load(m.user)
		}
	}
	return m, nil
}

// View renders the customer dashboard.
func (m CustomerDashboardModel) View() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render(fmt.Sprintf("Hola, %s", m.user.Name)) + "\n\n")

	if m.loading {
		b.WriteString(st.Muted.Render("Cargando tus pedidos..."))
		return b.String()
	}
	if m.errText != "" {
		b.WriteString(st.Error.Render(m.errText) + "\n")
	}

	b.WriteString(st.Subtitle.Render("Mis Pedidos") + "\n")
	if len(m.orders) == 0 {
		b.WriteString(st.Muted.Render("Todavía no has hecho pedidos.") + "\n")
	}
	for i, o := range m.orders {
		line := fmt.Sprintf("#%d · negocio %d · x%d · %s", o.ID, o.BusinessID, o.Quantity, renderStatus(st, o.Status))
		if i == m.cursor {
			b.WriteString(st.Selected.Render("> ") + line + "\n")
			if o.Message != "" {
				b.WriteString("  " + st.Muted.Render(truncate(o.Message, 70)) + "\n")
			}
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + st.Help.Render("o: nuevo pedido · x: cancelar pedido · e: editar perfil · r: recargar"))
	return b.String()
}

func renderStatus(st Styles, status model.OrderStatus) string {
	switch status {
	case model.OrderConfirmed:
		return st.Success.Render(string(status))
	case model.OrderCancelled:
		return st.Error.Render(string(status))
	default:
		return st.Muted.Render(string(model.OrderPending))
	}
}
