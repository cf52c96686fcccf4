package api

import (
	"context"
	"fmt"

	"vecindario/internal/model"
)

// Typed wrappers over the REST routes the client consumes. Each returns the
// normalized model value plus the raw envelope so callers can surface the
// API's own message on failure.

// ListBusinesses fetches all businesses.
func (c *Client) ListBusinesses(ctx context.Context) ([]model.Business, Result) {
	res := c.GetJSON(ctx, "/api/negocios")
	if !res.OK {
		return nil, res
	}
	return model.NormalizeBusinessList(res.Get("@this")), res
}

// GetBusiness fetches one business profile.
func (c *Client) GetBusiness(ctx context.Context, id int64) (model.Business, Result) {
	res := c.GetJSON(ctx, fmt.Sprintf("/api/negocios/%d", id))
	if !res.OK {
		return model.Business{}, res
	}
	return model.NormalizeBusiness(res.Get("negocio")), res
}

// ListProducts fetches the products of a business.
func (c *Client) ListProducts(ctx context.Context, businessID int64) ([]model.Product, Result) {
	res := c.GetJSON(ctx, fmt.Sprintf("/api/negocios/%d/productos", businessID))
	if !res.OK {
		return nil, res
	}
	return model.NormalizeProductList(res.Get("@this")), res
}

// ListCategories fetches the registration/search categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, Result) {
	res := c.GetJSON(ctx, "/api/categorias")
	if !res.OK {
		return nil, res
	}
	return model.NormalizeCategoryList(res.Get("@this")), res
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Role     string `json:"tipo"`
	Phone    string `json:"telefono"`
	Password string `json:"password"`
}

// Login authenticates and returns the user record on success. The session
// cookie lands in the client's jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) (model.User, Result) {
	res := c.PostJSON(ctx, "/api/auth/login", req)
	if !res.OK || !res.Get("ok").Bool() {
		return model.User{}, res
	}
	return model.NormalizeUser(res.Get("user")), res
}

// RegisterRequest carries the sign-up form. Business-only fields stay empty
// for customers.
type RegisterRequest struct {
	Role         string `json:"tipo"`
	Name         string `json:"nombre"`
	Phone        string `json:"telefono"`
	Password     string `json:"password"`
	City         string `json:"ciudad,omitempty"`
	Barrio       string `json:"barrio,omitempty"`
	BusinessName string `json:"nombre_negocio,omitempty"`
	CategoryID   int64  `json:"categoria_id,omitempty"`
	Address      string `json:"direccion_exacta,omitempty"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Result {
	return c.PostJSON(ctx, "/api/auth/register", req)
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) Result {
	return c.PostJSON(ctx, "/api/auth/logout", struct{}{})
}

// UpdateUser saves profile fields and returns the merged record when the
// API echoes it back.
func (c *Client) UpdateUser(ctx context.Context, id int64, fields map[string]any) (model.User, Result) {
	res := c.PutJSON(ctx, fmt.Sprintf("/api/usuarios/%d", id), fields)
	if !res.OK {
		return model.User{}, res
	}
	return model.NormalizeUser(res.Get("user")), res
}

// UploadUserImage uploads a profile/business image.
func (c *Client) UploadUserImage(ctx context.Context, id int64, filename string, content []byte) Result {
	return c.PostMultipart(ctx, fmt.Sprintf("/api/usuarios/%d/upload_imagen", id), filename, content)
}

// CreateOrder registers an order and returns its id.
func (c *Client) CreateOrder(ctx context.Context, o model.Order) (int64, Result) {
	res := c.PostJSON(ctx, "/api/pedidos", o)
	if !res.OK {
		return 0, res
	}
	return res.Get("pedido_id").Int(), res
}

// OrderDetail is the single-order payload used by the confirmation view to
// rebuild the WhatsApp handoff when only the order id survived.
type OrderDetail struct {
	Order         model.Order
	WaPhone       string // numero_ws
	WaEncodedText string // texto_codificado
	BusinessPhone string // negocio_telefono
	BusinessName  string
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id int64) (OrderDetail, Result) {
	res := c.GetJSON(ctx, fmt.Sprintf("/api/pedidos/%d", id))
	if !res.OK {
		return OrderDetail{}, res
	}
	p := res.Get("pedido")
	return OrderDetail{
		Order:         model.NormalizeOrder(p),
		WaPhone:       p.Get("numero_ws").String(),
		WaEncodedText: p.Get("texto_codificado").String(),
		BusinessPhone: p.Get("negocio_telefono").String(),
		BusinessName:  p.Get("negocio_nombre").String(),
	}, res
}

// OrdersByCustomer lists a customer's orders.
func (c *Client) OrdersByCustomer(ctx context.Context, customerID int64) ([]model.Order, Result) {
	res := c.GetJSON(ctx, fmt.Sprintf("/api/pedidos/cliente/%d", customerID))
	if !res.OK {
		return nil, res
	}
	return model.NormalizeOrderList(res.Get("@this")), res
}

// OrdersByBusiness lists the orders placed against a business.
func (c *Client) OrdersByBusiness(ctx context.Context, businessID int64) ([]model.Order, Result) {
	res := c.GetJSON(ctx, fmt.Sprintf("/api/pedidos/negocio/%d", businessID))
	if !res.OK {
		return nil, res
	}
	return model.NormalizeOrderList(res.Get("@this")), res
}

// UpdateOrderStatus moves an order through its lifecycle.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) Result {
	return c.PutJSON(ctx, fmt.Sprintf("/api/pedidos/%d", id), map[string]any{"estado": status})
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, id int64) Result {
	return c.DeleteJSON(ctx, fmt.Sprintf("/api/pedidos/%d", id))
}

// ProductPayload is the create/update body for a product.
type ProductPayload struct {
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion,omitempty"`
	Price       *float64 `json:"precio,omitempty"`
	ImageRef    string   `json:"imagen_url,omitempty"`
}

// CreateProduct adds a product to a business.
func (c *Client) CreateProduct(ctx context.Context, businessID int64, p ProductPayload) Result {
	return c.PostJSON(ctx, fmt.Sprintf("/api/negocios/%d/productos", businessID), p)
}

// UpdateProduct saves product fields.
func (c *Client) UpdateProduct(ctx context.Context, productID int64, p ProductPayload) Result {
	return c.PutJSON(ctx, fmt.Sprintf("/api/productos/%d", productID), p)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, productID int64) Result {
	return c.DeleteJSON(ctx, fmt.Sprintf("/api/productos/%d", productID))
}
