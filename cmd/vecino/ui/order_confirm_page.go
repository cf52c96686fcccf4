package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/whatsapp"
)

// ConfirmLoadedMsg carries the reconstructed WhatsApp link for an order
// that was opened by id alone.
type ConfirmLoadedMsg struct {
	OrderID int64
	WaURL   string
	Res     api.Result
}

// CopiedMsg reports the clipboard outcome.
type CopiedMsg struct{ Err error }

// OrderConfirmModel is the terminal page of the order flow: it shows the
// WhatsApp handoff link and lets the user copy it. When opened with only
// an order id (deep navigation, signal bus) it fetches the order and
// rebuilds the link server-side data allows.
type OrderConfirmModel struct {
	client *api.Client
	styles Styles

	orderID int64
	waURL   string
	loading bool
	copied  bool
	errText string
}

// NewOrderConfirmModel builds the confirmation page.
func NewOrderConfirmModel(st Styles, client *api.Client) OrderConfirmModel {
	return OrderConfirmModel{client: client, styles: st}
}

// Load shows a known link directly, or resolves the order when only the
// id is available.
func (m OrderConfirmModel) Load(orderID int64, waURL string) (OrderConfirmModel, tea.Cmd) {
	m.orderID = orderID
	m.waURL = waURL
	m.copied = false
	m.errText = ""
	m.loading = false

	if waURL != "" || orderID == 0 {
		return m, nil
	}

	m.loading = true
	client := m.client
	return m, func() tea.Msg {
		detail, res := client.GetOrder(context.Background(), orderID)
		if !res.OK {
			return ConfirmLoadedMsg{OrderID: orderID, Res: res}
		}
		url := ""
		switch {
		case detail.WaPhone != "" && detail.WaEncodedText != "":
			url = fmt.Sprintf("https://wa.me/%s?text=%s",
				whatsapp.SanitizePhone(detail.WaPhone), detail.WaEncodedText)
		case detail.BusinessPhone != "":
			text := whatsapp.OrderMessage(orderID,
				detail.Order.CustomerName, detail.Order.CustomerPhone,
				detail.BusinessName, "", detail.Order.Quantity, detail.Order.Message)
			url = whatsapp.Link(detail.BusinessPhone, text)
		}
		return ConfirmLoadedMsg{OrderID: orderID, WaURL: url, Res: res}
	}
}

// Update handles confirm-page messages.
func (m OrderConfirmModel) Update(msg tea.Msg) (OrderConfirmModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ConfirmLoadedMsg:
		if msg.OrderID != m.orderID {
			return m, nil
		}
		m.loading = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		if msg.WaURL == "" {
			m.errText = "El pedido existe pero no tiene datos de WhatsApp."
			return m, nil
		}
		m.waURL = msg.WaURL
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.errText = "No se pudo copiar al portapapeles."
		} else {
			m.copied = true
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "c" && m.waURL != "" {
			url := m.waURL
			return m, func() tea.Msg { return CopiedMsg{Err: clipboard.WriteAll(url)} }
		}
	}
	return m, nil
}

// View renders the confirmation.
func (m OrderConfirmModel) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Success.Render("¡Pedido Registrado!") + "\n\n")
	if m.orderID > 0 {
		b.WriteString(st.Label.Render("Número de pedido: ") + fmt.Sprintf("#%d", m.orderID) + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(st.Muted.Render("Recuperando el enlace de WhatsApp..."))
	case m.errText != "":
		b.WriteString(st.Error.Render(m.errText))
	case m.waURL != "":
		b.WriteString("Envía tu pedido por WhatsApp con este enlace:\n\n")
		b.WriteString(st.WaLink.Render(m.waURL) + "\n")
		if m.copied {
			b.WriteString("\n" + st.Success.Render("Enlace copiado al portapapeles."))
		}
	default:
		b.WriteString(st.Muted.Render("No hay enlace disponible para este pedido."))
	}

	b.WriteString("\n\n" + st.Help.Render("c: copiar enlace · esc: volver al inicio"))
	return b.String()
}
