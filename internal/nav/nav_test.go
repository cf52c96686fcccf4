package nav

import (
	"testing"

	"vecindario/internal/model"
	"vecindario/internal/session"
)

func newTestRouter(t *testing.T) (*Router, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	return NewRouter(store, nil), store
}

func TestParsePage(t *testing.T) {
	for _, p := range []Page{
		PageHome, PageLogin, PageRegister, PageSearch,
		PageCustomerDashboard, PageBusinessDashboard, PageEditProfile,
		PageBusinessProfile, PageOrderForm, PageOrderConfirm,
	} {
		if got := ParsePage(p.String()); got != p {
			t.Errorf("ParsePage(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if got := ParsePage("no-such-page"); got != PageHome {
		t.Errorf("unknown tag should parse to home, got %v", got)
	}
}

func TestMatchBusinessPath(t *testing.T) {
	cases := []struct {
		path string
		id   int64
		ok   bool
	}{
		{"/negocios/7", 7, true},
		{"/negocios/42/extra", 42, true},
		{"/negocios/", 0, false},
		{"/negocios/abc", 0, false},
		{"/otros/7", 0, false},
		{"/negocios/0", 0, false},
	}
	for _, c := range cases {
		id, ok := MatchBusinessPath(c.path)
		if id != c.id || ok != c.ok {
			t.Errorf("MatchBusinessPath(%q) = (%d, %v), want (%d, %v)", c.path, id, ok, c.id, c.ok)
		}
	}
}

func TestHistoryNeverPopsRoot(t *testing.T) {
	h := NewHistory("")
	if h.Location() != "/" {
		t.Fatalf("empty initial should default to /, got %q", h.Location())
	}

	h.Push("/negocios/1")
	h.Push("/negocios/2")
	if got := h.Back(); got != "/negocios/1" {
		t.Errorf("Back = %q", got)
	}
	if got := h.Back(); got != "/" {
		t.Errorf("Back = %q", got)
	}
	if got := h.Back(); got != "/" {
		t.Errorf("Back below root should stay at root, got %q", got)
	}
}

func TestOpenBusinessProfile(t *testing.T) {
	r, _ := newTestRouter(t)
	r.OpenBusinessProfile(42)

	if r.State().Current != PageBusinessProfile {
		t.Errorf("page = %v", r.State().Current)
	}
	if r.State().BusinessID != 42 {
		t.Errorf("business id = %d", r.State().BusinessID)
	}
	if r.Location() != "/negocios/42" {
		t.Errorf("location = %q", r.Location())
	}
}

func TestGuardsFallBackToHome(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, p := range []Page{PageCustomerDashboard, PageBusinessDashboard, PageEditProfile} {
		r.SetPage(p)
		if got := r.Resolve(); got != PageHome {
			t.Errorf("guarded page %v without session resolved to %v, want home", p, got)
		}
	}
}

func TestGuardsRespectRole(t *testing.T) {
	r, store := newTestRouter(t)
	if err := store.Set(model.User{ID: 1, Name: "Ana", Role: model.RoleCustomer}); err != nil {
		t.Fatal(err)
	}

	r.SetPage(PageCustomerDashboard)
	if got := r.Resolve(); got != PageCustomerDashboard {
		t.Errorf("customer dashboard for customer resolved to %v", got)
	}

	r.SetPage(PageBusinessDashboard)
	if got := r.Resolve(); got != PageHome {
		t.Errorf("business dashboard for customer should resolve to home, got %v", got)
	}

	r.SetPage(PageEditProfile)
	if got := r.Resolve(); got != PageEditProfile {
		t.Errorf("edit profile with session resolved to %v", got)
	}
}

func TestGoToDashboardWithoutSessionIsNoop(t *testing.T) {
	r, _ := newTestRouter(t)
	r.SetPage(PageSearch)
	r.GoToDashboard()
	if got := r.State().Current; got != PageSearch {
		t.Errorf("GoToDashboard without session changed page to %v", got)
	}
}

func TestBootstrapDeepLinkWithoutSession(t *testing.T) {
	r, _ := newTestRouter(t)
	r.Bootstrap("/negocios/7")

	if r.State().Current != PageBusinessProfile || r.State().BusinessID != 7 {
		t.Errorf("deep link not honored: %+v", r.State())
	}
}

func TestBootstrapRestoresSessionToDashboard(t *testing.T) {
	dir := t.TempDir()
	store := session.NewStore(dir)
	if err := store.Set(model.User{ID: 2, Name: "Luis", Role: model.RoleBusiness}); err != nil {
		t.Fatal(err)
	}

	// Simulate a fresh start over the same state dir.
	r := NewRouter(session.NewStore(dir), nil)
	r.Bootstrap("/")
	if got := r.State().Current; got != PageBusinessDashboard {
		t.Errorf("restored business session should land on its dashboard, got %v", got)
	}
}

func TestBootstrapConsumesRedirectMarker(t *testing.T) {
	dir := t.TempDir()
	store := session.NewStore(dir)
	if err := store.Set(model.User{ID: 3, Name: "Ana", Role: model.RoleCustomer}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetRedirect(PageSearch.String()); err != nil {
		t.Fatal(err)
	}

	fresh := session.NewStore(dir)
	r := NewRouter(fresh, nil)
	r.Bootstrap("/")
	if got := r.State().Current; got != PageSearch {
		t.Errorf("redirect marker not honored, got %v", got)
	}
	if fresh.TakeRedirect() != "" {
		t.Error("redirect marker should be consumed by Bootstrap")
	}
}

func TestBootstrapSessionWinsOverDeepLink(t *testing.T) {
	dir := t.TempDir()
	store := session.NewStore(dir)
	if err := store.Set(model.User{ID: 4, Name: "Ana", Role: model.RoleCustomer}); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(session.NewStore(dir), nil)
	r.Bootstrap("/negocios/7")
	if got := r.State().Current; got != PageCustomerDashboard {
		t.Errorf("session restore should win over deep link, got %v", got)
	}
}

func TestLogoutResetsEverything(t *testing.T) {
	r, store := newTestRouter(t)
	if err := store.Set(model.User{ID: 5, Name: "Ana", Role: model.RoleCustomer}); err != nil {
		t.Fatal(err)
	}
	r.OpenBusinessProfile(9)

	r.Logout()
	if r.State().Current != PageHome || r.State().BusinessID != 0 {
		t.Errorf("logout should reset state, got %+v", r.State())
	}
	if store.Current() != nil {
		t.Error("logout should clear the session")
	}
	if r.Location() != "/" {
		t.Errorf("location after logout = %q", r.Location())
	}
}
