// Package model defines the client-side data shapes for the marketplace:
// users, businesses, products, orders and categories. The remote API speaks
// a loose JSON dialect with several spellings for the same field, so every
// type comes with a Normalize* constructor that folds the variants into one
// canonical struct.
package model

import (
	"github.com/tidwall/gjson"
)

// Role is the closed set of account kinds the API recognizes. Anything else
// parses to RoleUnknown and is treated as "no privileges".
type Role string

const (
	RoleCustomer Role = "cliente"
	RoleBusiness Role = "negocio"
	RoleUnknown  Role = ""
)

// ParseRole maps a raw role tag to a Role.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleCustomer:
		return RoleCustomer
	case RoleBusiness:
		return RoleBusiness
	default:
		return RoleUnknown
	}
}

// User is the authenticated identity. BusinessID is only meaningful when
// Role == RoleBusiness.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"nombre"`
	Role       Role   `json:"tipo"`
	Phone      string `json:"telefono"`
	Email      string `json:"email,omitempty"`
	City       string `json:"ciudad,omitempty"`
	Barrio     string `json:"barrio,omitempty"`
	BusinessID int64  `json:"negocio_id,omitempty"`
}

// Valid reports whether the record can act as a session identity.
// A user without a positive id is garbage, whatever else it carries.
func (u User) Valid() bool {
	return u.ID > 0
}

// IsCustomer reports role == cliente.
func (u User) IsCustomer() bool { return u.Role == RoleCustomer }

// IsBusiness reports role == negocio.
func (u User) IsBusiness() bool { return u.Role == RoleBusiness }

// NormalizeUser builds a User from a loose API object.
func NormalizeUser(v gjson.Result) User {
	return User{
		ID:         v.Get("id").Int(),
		Name:       v.Get("nombre").String(),
		Role:       ParseRole(v.Get("tipo").String()),
		Phone:      firstString(v, "telefono", "telefono_negocio"),
		Email:      v.Get("email").String(),
		City:       v.Get("ciudad").String(),
		Barrio:     v.Get("barrio").String(),
		BusinessID: v.Get("negocio_id").Int(),
	}
}

// Business is a merchant entity as listed and displayed by the client.
type Business struct {
	ID          int64
	Name        string
	OwnerName   string
	Category    string
	Description string
	Address     string
	City        string
	Barrio      string
	Phone       string
	Hours       string
	ImageRef    string
	Sponsored   bool
	Featured    bool
}

// NormalizeBusiness folds the API's field variants
// (nombre/nombre_negocio/propietario, telefono/telefono_negocio,
// imagen_url/imagen) into a Business.
func NormalizeBusiness(v gjson.Result) Business {
	return Business{
		ID:          v.Get("id").Int(),
		Name:        firstString(v, "nombre", "nombre_negocio", "propietario"),
		OwnerName:   v.Get("propietario").String(),
		Category:    v.Get("categoria").String(),
		Description: v.Get("descripcion").String(),
		Address:     v.Get("direccion_exacta").String(),
		City:        v.Get("ciudad").String(),
		Barrio:      v.Get("barrio").String(),
		Phone:       firstString(v, "telefono", "telefono_negocio"),
		Hours:       v.Get("horario").String(),
		ImageRef:    firstString(v, "imagen_url", "imagen"),
		Sponsored:   v.Get("es_patrocinador").Bool(),
		Featured:    v.Get("es_destacado").Bool(),
	}
}

// NormalizeBusinessList accepts either {negocios:[...]}, {items:[...]} or a
// bare array and returns the normalized slice.
func NormalizeBusinessList(v gjson.Result) []Business {
	list := firstArray(v, "negocios", "items")
	out := make([]Business, 0, len(list))
	for _, item := range list {
		out = append(out, NormalizeBusiness(item))
	}
	return out
}

// Product belongs to a business. Price is nil when the merchant did not
// publish one.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       *float64
	ImageRef    string
}

// NormalizeProduct builds a Product from a loose API object.
func NormalizeProduct(v gjson.Result) Product {
	p := Product{
		ID:          v.Get("id").Int(),
		Name:        v.Get("nombre").String(),
		Description: v.Get("descripcion").String(),
		ImageRef:    firstString(v, "imagen_url", "imagen"),
	}
	if price := v.Get("precio"); price.Exists() && price.Type != gjson.Null {
		f := price.Float()
		p.Price = &f
	}
	return p
}

// NormalizeProductList accepts {productos:[...]} or a bare array.
func NormalizeProductList(v gjson.Result) []Product {
	list := firstArray(v, "productos")
	out := make([]Product, 0, len(list))
	for _, item := range list {
		out = append(out, NormalizeProduct(item))
	}
	return out
}

// OrderStatus is the order lifecycle tag.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pendiente"
	OrderConfirmed OrderStatus = "confirmado"
	OrderCancelled OrderStatus = "cancelado"
)

// Order is a customer request against a business, optionally pinned to a
// product. CustomerID is nil for anonymous (not logged in) orders.
type Order struct {
	ID            int64       `json:"id,omitempty"`
	BusinessID    int64       `json:"negocio_id"`
	ProductID     *int64      `json:"producto_id"`
	CustomerID    *int64      `json:"cliente_id"`
	CustomerName  string      `json:"cliente_nombre"`
	CustomerPhone string      `json:"cliente_telefono"`
	Message       string      `json:"mensaje"`
	Quantity      int         `json:"cantidad"`
	Status        OrderStatus `json:"estado,omitempty"`
}

// NormalizeOrder builds an Order from a loose API object.
func NormalizeOrder(v gjson.Result) Order {
	o := Order{
		ID:            v.Get("id").Int(),
		BusinessID:    v.Get("negocio_id").Int(),
		CustomerName:  v.Get("cliente_nombre").String(),
		CustomerPhone: v.Get("cliente_telefono").String(),
		Message:       v.Get("mensaje").String(),
		Quantity:      int(v.Get("cantidad").Int()),
		Status:        OrderStatus(v.Get("estado").String()),
	}
	if pid := v.Get("producto_id"); pid.Exists() && pid.Type != gjson.Null {
		n := pid.Int()
		o.ProductID = &n
	}
	if cid := v.Get("cliente_id"); cid.Exists() && cid.Type != gjson.Null {
		n := cid.Int()
		o.CustomerID = &n
	}
	return o
}

// NormalizeOrderList accepts {pedidos:[...]} or a bare array.
func NormalizeOrderList(v gjson.Result) []Order {
	list := firstArray(v, "pedidos")
	out := make([]Order, 0, len(list))
	for _, item := range list {
		out = append(out, NormalizeOrder(item))
	}
	return out
}

// Category is a business category used by registration and search.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// NormalizeCategoryList accepts {categorias:[...]} or a bare array.
func NormalizeCategoryList(v gjson.Result) []Category {
	list := firstArray(v, "categorias")
	out := make([]Category, 0, len(list))
	for _, item := range list {
		out = append(out, Category{ID: item.Get("id").Int(), Name: item.Get("nombre").String()})
	}
	return out
}

// firstString returns the first non-empty string among the named fields.
func firstString(v gjson.Result, keys ...string) string {
	for _, k := range keys {
		if s := v.Get(k).String(); s != "" {
			return s
		}
	}
	return ""
}

// firstArray returns the first array found under the named keys, falling
// back to the value itself when the payload is a bare array.
func firstArray(v gjson.Result, keys ...string) []gjson.Result {
	for _, k := range keys {
		if arr := v.Get(k); arr.IsArray() {
			return arr.Array()
		}
	}
	if v.IsArray() {
		return v.Array()
	}
	return nil
}
