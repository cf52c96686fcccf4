package model

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"cliente", RoleCustomer},
		{"negocio", RoleBusiness},
		{"admin", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, c := range cases {
		if got := ParseRole(c.in); got != c.want {
			t.Errorf("ParseRole(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeBusinessFieldVariants(t *testing.T) {
	v := gjson.Parse(`{
		"id": 9,
		"nombre_negocio": "Panadería El Trigal",
		"propietario": "Luis",
		"telefono_negocio": "3001234567",
		"imagen": "trigal.jpg",
		"es_destacado": true
	}`)
	b := NormalizeBusiness(v)

	if b.ID != 9 {
		t.Errorf("ID = %d", b.ID)
	}
	if b.Name != "Panadería El Trigal" {
		t.Errorf("nombre_negocio variant not picked up: %q", b.Name)
	}
	if b.Phone != "3001234567" {
		t.Errorf("telefono_negocio variant not picked up: %q", b.Phone)
	}
	if b.ImageRef != "trigal.jpg" {
		t.Errorf("imagen variant not picked up: %q", b.ImageRef)
	}
	if !b.Featured {
		t.Error("es_destacado not picked up")
	}
}

func TestNormalizeBusinessPrefersCanonicalNames(t *testing.T) {
	v := gjson.Parse(`{"id":1,"nombre":"A","nombre_negocio":"B","telefono":"1","telefono_negocio":"2","imagen_url":"u","imagen":"i"}`)
	b := NormalizeBusiness(v)
	if b.Name != "A" || b.Phone != "1" || b.ImageRef != "u" {
		t.Errorf("canonical fields should win: %+v", b)
	}
}

func TestNormalizeBusinessListEnvelopes(t *testing.T) {
	for _, payload := range []string{
		`{"negocios":[{"id":1,"nombre":"A"},{"id":2,"nombre":"B"}]}`,
		`{"items":[{"id":1,"nombre":"A"},{"id":2,"nombre":"B"}]}`,
		`[{"id":1,"nombre":"A"},{"id":2,"nombre":"B"}]`,
	} {
		got := NormalizeBusinessList(gjson.Parse(payload))
		if len(got) != 2 || got[0].Name != "A" || got[1].ID != 2 {
			t.Errorf("payload %s normalized to %+v", payload, got)
		}
	}

	if got := NormalizeBusinessList(gjson.Parse(`{"msg":"nada"}`)); len(got) != 0 {
		t.Errorf("non-list payload should normalize empty, got %+v", got)
	}
}

func TestNormalizeProductPrice(t *testing.T) {
	p := NormalizeProduct(gjson.Parse(`{"id":1,"nombre":"Pan","precio":2500}`))
	if p.Price == nil || *p.Price != 2500 {
		t.Errorf("price not captured: %+v", p.Price)
	}

	p = NormalizeProduct(gjson.Parse(`{"id":2,"nombre":"Pan"}`))
	if p.Price != nil {
		t.Errorf("missing price should stay nil, got %v", *p.Price)
	}

	p = NormalizeProduct(gjson.Parse(`{"id":3,"nombre":"Pan","precio":null}`))
	if p.Price != nil {
		t.Errorf("null price should stay nil, got %v", *p.Price)
	}
}

func TestNormalizeOrderNullableIDs(t *testing.T) {
	o := NormalizeOrder(gjson.Parse(`{"id":5,"negocio_id":2,"producto_id":null,"cliente_id":9,"cantidad":3,"estado":"pendiente"}`))
	if o.ProductID != nil {
		t.Errorf("null producto_id should stay nil, got %v", *o.ProductID)
	}
	if o.CustomerID == nil || *o.CustomerID != 9 {
		t.Errorf("cliente_id not captured: %v", o.CustomerID)
	}
	if o.Status != OrderPending {
		t.Errorf("estado = %q", o.Status)
	}
}

func TestUserValid(t *testing.T) {
	if (User{Name: "x"}).Valid() {
		t.Error("user without id should be invalid")
	}
	if !(User{ID: 1}).Valid() {
		t.Error("user with id should be valid")
	}
}
