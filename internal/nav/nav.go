// Package nav owns the client's navigation state: which page is current,
// which business/order is selected, and the visible location history. Every
// transition goes through a named operation on Router; views never poke the
// state directly. Role guards are applied at render time via Resolve, and a
// failed guard silently falls back to home; it is navigation, not an error.
package nav

import (
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"vecindario/internal/model"
	"vecindario/internal/session"
)

// Page is the closed set of renderable views.
type Page int

const (
	PageHome Page = iota
	PageLogin
	PageRegister
	PageSearch
	PageCustomerDashboard
	PageBusinessDashboard
	PageEditProfile
	PageBusinessProfile
	PageOrderForm
	PageOrderConfirm
)

var pageTags = map[Page]string{
	PageHome:              "home",
	PageLogin:             "login",
	PageRegister:          "register",
	PageSearch:            "search",
	PageCustomerDashboard: "dashboard-cliente",
	PageBusinessDashboard: "dashboard-negocio",
	PageEditProfile:       "editar-perfil",
	PageBusinessProfile:   "business-profile",
	PageOrderForm:         "pedido",
	PageOrderConfirm:      "pedido-confirm",
}

// String returns the page tag, also used by the persisted redirect marker.
func (p Page) String() string {
	if tag, ok := pageTags[p]; ok {
		return tag
	}
	return "home"
}

// ParsePage maps a tag back to a Page. Unknown tags resolve to home; the
// mapping is total by construction.
func ParsePage(tag string) Page {
	for p, t := range pageTags {
		if t == tag {
			return p
		}
	}
	return PageHome
}

// State is the navigation value object. BusinessID/OrderID are zero when
// nothing is selected.
type State struct {
	Current    Page
	BusinessID int64
	OrderID    int64
}

var businessPathRe = regexp.MustCompile(`^/negocios/(\d+)`)

// MatchBusinessPath extracts a business id from a deep-link path.
func MatchBusinessPath(path string) (int64, bool) {
	m := businessPathRe.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// BusinessPath is the canonical shareable path for a business profile.
func BusinessPath(id int64) string {
	return fmt.Sprintf("/negocios/%d", id)
}

// History is the push-state location stack. Its head is the visible
// location shown in the header and accepted back as a startup argument.
type History struct {
	entries []string
}

// NewHistory starts the stack at initial ("/" when empty).
func NewHistory(initial string) *History {
	if initial == "" {
		initial = "/"
	}
	return &History{entries: []string{initial}}
}

// Location returns the current visible path.
func (h *History) Location() string {
	return h.entries[len(h.entries)-1]
}

// Push makes path the visible location without discarding the trail.
func (h *History) Push(path string) {
	h.entries = append(h.entries, path)
}

// Back pops to the previous location and returns it. The root entry is
// never popped.
func (h *History) Back() string {
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	return h.Location()
}

// Len reports the stack depth.
func (h *History) Len() int { return len(h.entries) }

// Router performs all navigation transitions. It runs on the UI event loop,
// so state access is sequential and unlocked.
type Router struct {
	state    State
	sessions *session.Store
	history  *History
	log      *zap.Logger
}

// NewRouter creates a router over the given session store.
func NewRouter(sessions *session.Store, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		sessions: sessions,
		history:  NewHistory("/"),
		log:      log,
	}
}

// State returns the current navigation state.
func (r *Router) State() State { return r.state }

// Location returns the visible location path.
func (r *Router) Location() string { return r.history.Location() }

// History exposes the location stack.
func (r *Router) History() *History { return r.history }

// SetPage is the unconditional tag change. It always succeeds.
func (r *Router) SetPage(p Page) {
	r.state.Current = p
	r.log.Debug("page change", zap.String("page", p.String()))
}

// GoToDashboard resolves to the role's dashboard. No-op without a session.
func (r *Router) GoToDashboard() {
	u := r.sessions.Current()
	if u == nil {
		return
	}
	if u.IsBusiness() {
		r.SetPage(PageBusinessDashboard)
	} else {
		r.SetPage(PageCustomerDashboard)
	}
}

// OpenBusinessProfile selects a business, switches to its profile view and
// reflects the id into the visible location so the view is shareable.
func (r *Router) OpenBusinessProfile(id int64) {
	r.state.BusinessID = id
	r.SetPage(PageBusinessProfile)
	r.history.Push(BusinessPath(id))
}

// OpenOrderForm transitions to the order form. A positive id preselects
// that business; zero clears any previous selection so the form opens in
// general mode.
func (r *Router) OpenOrderForm(businessID int64) {
	r.state.BusinessID = businessID
	r.SetPage(PageOrderForm)
}

// OpenOrderConfirm selects an order and shows the confirmation view.
func (r *Router) OpenOrderConfirm(orderID int64) {
	r.state.OrderID = orderID
	r.SetPage(PageOrderConfirm)
}

// Logout clears the session (memory and disk) and resets to home.
func (r *Router) Logout() {
	r.sessions.Clear()
	r.state = State{Current: PageHome}
	r.history.Push("/")
}

// Resolve applies render-time guards and returns the page that must
// actually be rendered. The mapping is total: every tag yields exactly one
// view, and a guard failure yields home.
func (r *Router) Resolve() Page {
	u := r.sessions.Current()
	switch r.state.Current {
	case PageCustomerDashboard:
		if u == nil || !u.IsCustomer() {
			return PageHome
		}
	case PageBusinessDashboard:
		if u == nil || !u.IsBusiness() {
			return PageHome
		}
	case PageEditProfile:
		if u == nil {
			return PageHome
		}
	}
	return r.state.Current
}

// Bootstrap runs the startup routing decision: restore a persisted session
// and land on the pending redirect or the role's dashboard; without a
// session, honor a business-profile deep link in the initial path.
func (r *Router) Bootstrap(initialPath string) {
	if u := r.sessions.Load(); u != nil {
		if redirect := r.sessions.TakeRedirect(); redirect != "" {
			r.SetPage(ParsePage(redirect))
			return
		}
		r.GoToDashboard()
		return
	}

	if id, ok := MatchBusinessPath(initialPath); ok {
		r.OpenBusinessProfile(id)
		return
	}
	r.SetPage(PageHome)
}

// CurrentUser is a convenience passthrough for views that render
// differently for logged-in users.
func (r *Router) CurrentUser() *model.User {
	return r.sessions.Current()
}
