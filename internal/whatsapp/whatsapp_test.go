package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestSanitizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+57 300 123 4567", "+573001234567"},
		{"(300) 123-4567", "3001234567"},
		{"300.123.4567 ext 2", "30012345672"},
		{"", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := SanitizePhone(c.in); got != c.want {
			t.Errorf("SanitizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLink(t *testing.T) {
	got := Link("+57 300 123-4567", "hola, ¿tienes pan?")
	if !strings.HasPrefix(got, "https://wa.me/+573001234567?text=") {
		t.Fatalf("unexpected link prefix: %q", got)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if text := u.Query().Get("text"); text != "hola, ¿tienes pan?" {
		t.Errorf("text round-trip = %q", text)
	}
}

func TestOrderMessage(t *testing.T) {
	msg := OrderMessage(42, "María", "+573001234567", "Panadería El Trigal", "Pan integral (ID: 7)", 3, "Sin sal, por favor")

	for _, want := range []string{
		"*PEDIDO NUEVO #*42",
		"Cliente: María (+573001234567)",
		"Negocio: Panadería El Trigal",
		"Artículo: Pan integral (ID: 7)",
		"*Cantidad:* 3",
		"Detalle: Sin sal, por favor",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestOrderMessageDefaults(t *testing.T) {
	msg := OrderMessage(1, "Ana", "", "", "", 1, "  ")

	for _, want := range []string{
		"Cliente: Ana\n",
		"Negocio: Desconocido",
		"Artículo: Pedido General",
		"Detalle: Sin mensaje adicional.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "()") {
		t.Errorf("empty phone should not render parentheses:\n%s", msg)
	}
}
