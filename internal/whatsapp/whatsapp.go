// Package whatsapp builds the wa.me deep links the client hands an order off
// to once the API has registered it.
package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var phoneRe = regexp.MustCompile(`[^0-9+]`)

// SanitizePhone strips everything but digits and '+' from a phone number.
func SanitizePhone(phone string) string {
	return phoneRe.ReplaceAllString(phone, "")
}

// Link builds a wa.me URL that opens a chat with phone and pre-fills text.
func Link(phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", SanitizePhone(phone), url.QueryEscape(text))
}

// OrderMessage formats the conversation opener for a freshly created order.
func OrderMessage(orderID int64, customerName, customerPhone, businessName, productLabel string, quantity int, detail string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*PEDIDO NUEVO #*%d\n", orderID)
	b.WriteString("Cliente: " + customerName)
	if customerPhone != "" {
		b.WriteString(" (" + customerPhone + ")")
	}
	b.WriteString("\n")
	if businessName == "" {
		businessName = "Desconocido"
	}
	fmt.Fprintf(&b, "Negocio: %s\n---\n", businessName)
	if productLabel == "" {
		productLabel = "Pedido General"
	}
	fmt.Fprintf(&b, "Artículo: %s\n", productLabel)
	fmt.Fprintf(&b, "*Cantidad:* %d\n", quantity)
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = "Sin mensaje adicional."
	}
	fmt.Fprintf(&b, "Detalle: %s\n---", detail)
	return b.String()
}
