package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/imageref"
	"vecindario/internal/model"
	"vecindario/internal/session"
	"vecindario/internal/signal"
)

func okResult() api.Result {
	return api.Result{OK: true, Status: 200, Data: []byte("{}")}
}

func failedResult() api.Result {
	return api.Result{OK: false, Status: 0, Data: []byte(`{"msg":"sin red"}`)}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// testClient points at a closed port; tests only exercise message handling
// and never execute the returned fetch commands.
func testClient(t *testing.T) *api.Client {
	t.Helper()
	return api.NewClient("http://127.0.0.1:1", nil)
}

func sampleBusinesses() []model.Business {
	return []model.Business{
		{ID: 1, Name: "Panadería El Trigal", Category: "Panadería", Barrio: "Centro", Featured: true},
		{ID: 2, Name: "Ferretería La Tuerca", Category: "Ferretería", Barrio: "Norte"},
		{ID: 3, Name: "Verduras Doña Rosa", Category: "Mercado", Barrio: "Centro"},
	}
}

func TestHomeRendersBusinesses(t *testing.T) {
	bus := signal.NewBus()
	defer bus.Close()
	resolver := imageref.NewResolver("http://localhost:5000", "http:")

	m := NewHomeModel(DefaultStyles(), testClient(t), bus, resolver)
	m, _ = m.Load()
	m, _ = m.Update(BusinessesLoadedMsg{List: sampleBusinesses(), Res: okResult()})

	view := m.View()
	for _, name := range []string{"Panadería El Trigal", "Ferretería La Tuerca", "Verduras Doña Rosa"} {
		if !strings.Contains(view, name) {
			t.Errorf("home view missing %q", name)
		}
	}
	// The featured business also headlines the banner.
	if !strings.Contains(view, "★ Panadería El Trigal") {
		t.Errorf("featured banner missing:\n%s", view)
	}
}

func TestHomeStaleCarouselTickIgnored(t *testing.T) {
	bus := signal.NewBus()
	defer bus.Close()
	resolver := imageref.NewResolver("", "http:")

	m := NewHomeModel(DefaultStyles(), testClient(t), bus, resolver)
	m, _ = m.Load()
	list := sampleBusinesses()
	list[1].Featured = true
	m, _ = m.Update(BusinessesLoadedMsg{List: list, Res: okResult()})

	m = m.Stop()
	m, cmd := m.Update(CarouselTickMsg{Gen: 0})
	if cmd != nil {
		t.Error("stale tick must not reschedule the carousel")
	}
}

func TestHomeErrorOffersRetry(t *testing.T) {
	bus := signal.NewBus()
	defer bus.Close()
	resolver := imageref.NewResolver("", "http:")

	m := NewHomeModel(DefaultStyles(), testClient(t), bus, resolver)
	m, _ = m.Load()
	m, _ = m.Update(BusinessesLoadedMsg{Res: failedResult()})

	view := m.View()
	if !strings.Contains(view, "Error de comunicación con el servidor.") {
		t.Errorf("transport failure text missing:\n%s", view)
	}
	if !strings.Contains(view, "'r'") {
		t.Errorf("retry hint missing:\n%s", view)
	}
}

func TestHomeSelectionEmitsOpenBusiness(t *testing.T) {
	bus := signal.NewBus()
	defer bus.Close()
	resolver := imageref.NewResolver("", "http:")

	m := NewHomeModel(DefaultStyles(), testClient(t), bus, resolver)
	m, _ = m.Update(BusinessesLoadedMsg{List: sampleBusinesses(), Res: okResult()})

	_, cmd := m.Update(key("v"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(OpenBusinessMsg)
	if !ok {
		t.Fatalf("expected OpenBusinessMsg, got %T", cmd())
	}
	if msg.ID != 1 {
		t.Errorf("selected id = %d", msg.ID)
	}
}

func TestSearchFiltersLocally(t *testing.T) {
	m := NewSearchModel(DefaultStyles(), testClient(t))
	m, _ = m.Load()
	m, _ = m.Update(SearchLoadedMsg{List: sampleBusinesses(), Res: okResult()})

	for _, r := range "tuerca" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	view := m.View()
	if !strings.Contains(view, "Ferretería La Tuerca") {
		t.Errorf("match missing:\n%s", view)
	}
	if strings.Contains(view, "Panadería El Trigal") {
		t.Errorf("non-match should be filtered out:\n%s", view)
	}
}

func TestSearchEnterOpensProfile(t *testing.T) {
	m := NewSearchModel(DefaultStyles(), testClient(t))
	m, _ = m.Update(SearchLoadedMsg{List: sampleBusinesses(), Res: okResult()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(OpenBusinessMsg)
	if !ok || msg.ID != 2 {
		t.Fatalf("expected OpenBusinessMsg{ID:2}, got %#v", cmd())
	}
}

// stubModal records which messages reach it.
type stubModal struct {
	seen []string
}

func (s *stubModal) Init() tea.Cmd { return nil }
func (s *stubModal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.seen = append(s.seen, k.String())
	}
	return s, nil
}
func (s *stubModal) View(st Styles, width, height int) string { return "stub" }

func TestModalStackFocusTrap(t *testing.T) {
	var stack ModalStack
	bottom := &stubModal{}
	top := &stubModal{}

	stack.Push(bottom)
	stack.Push(top)
	if stack.Len() != 2 {
		t.Fatalf("stack len = %d", stack.Len())
	}

	stack.Update(key("x"))
	if len(top.seen) != 1 || top.seen[0] != "x" {
		t.Errorf("top modal should receive input, saw %v", top.seen)
	}
	if len(bottom.seen) != 0 {
		t.Errorf("buried modal must not receive input, saw %v", bottom.seen)
	}
}

func TestModalStackEscPops(t *testing.T) {
	var stack ModalStack
	m := &stubModal{}
	stack.Push(m)

	stack.Update(key("esc"))
	if stack.Active() {
		t.Error("esc should dismiss the modal")
	}
	if len(m.seen) != 0 {
		t.Errorf("esc must not reach the modal, saw %v", m.seen)
	}
}

func TestModalStackCloseMsgPops(t *testing.T) {
	var stack ModalStack
	stack.Push(&stubModal{})
	stack.Update(CloseModalMsg{})
	if stack.Active() {
		t.Error("CloseModalMsg should dismiss the modal")
	}
}

func TestFormTabCyclesFocus(t *testing.T) {
	f := NewForm(DefaultStyles(),
		[2]string{"Uno", ""},
		[2]string{"Dos", ""},
	)

	f.Update(key("tab"))
	for _, r := range "hola" {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if f.Value(1) != "hola" {
		t.Errorf("second field value = %q", f.Value(1))
	}
	if f.Value(0) != "" {
		t.Errorf("first field should be untouched, got %q", f.Value(0))
	}
}

func orderFormForTest(t *testing.T, store *session.Store) OrderFormModel {
	t.Helper()
	m := NewOrderFormModel(DefaultStyles(), testClient(t), store)
	m, _ = m.Load(0)
	m, _ = m.Update(OrderFormLoadedMsg{Businesses: sampleBusinesses(), Res: okResult()})
	return m
}

func TestOrderFormValidatesName(t *testing.T) {
	m := orderFormForTest(t, session.NewStore(t.TempDir()))
	m.form.SetValue(1, "") // nombre
	m.form.SetValue(3, "dos panes")

	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("invalid form must not submit")
	}
	if !strings.Contains(m.View(), "Revisa el negocio, tu nombre y la cantidad") {
		t.Errorf("validation error missing:\n%s", m.View())
	}
}

func TestOrderFormRequiresProductOrMessage(t *testing.T) {
	m := orderFormForTest(t, session.NewStore(t.TempDir()))
	m.form.SetValue(1, "María")
	m.form.SetValue(2, "+573001234567")
	m.form.SetValue(3, "")

	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("empty order must not submit")
	}
	if !strings.Contains(m.View(), "Especifica el producto o deja un mensaje") {
		t.Errorf("product/message error missing:\n%s", m.View())
	}
}

func TestOrderFormAnonymousNeedsPhone(t *testing.T) {
	m := orderFormForTest(t, session.NewStore(t.TempDir()))
	m.form.SetValue(1, "María")
	m.form.SetValue(2, "")
	m.form.SetValue(3, "dos panes")

	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("anonymous order without phone must not submit")
	}
	if !strings.Contains(m.View(), "Se requiere tu número de WhatsApp") {
		t.Errorf("phone requirement missing:\n%s", m.View())
	}
}

func TestOrderFormLoggedInSubmits(t *testing.T) {
	store := session.NewStore(t.TempDir())
	if err := store.Set(model.User{ID: 9, Name: "María", Role: model.RoleCustomer, Phone: "+573001234567"}); err != nil {
		t.Fatal(err)
	}

	m := orderFormForTest(t, store)
	m.form.SetValue(3, "dos panes")

	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatalf("valid order should submit, error: %s", m.errText)
	}
	if !m.busy {
		t.Error("submitting form should be busy")
	}
}

func TestOrderFormPrefillsFromSession(t *testing.T) {
	store := session.NewStore(t.TempDir())
	if err := store.Set(model.User{ID: 9, Name: "María", Role: model.RoleCustomer, Phone: "+573001234567"}); err != nil {
		t.Fatal(err)
	}

	m := NewOrderFormModel(DefaultStyles(), testClient(t), store)
	m, _ = m.Load(0)
	if m.form.Value(1) != "María" || m.form.Value(2) != "+573001234567" {
		t.Errorf("prefill = (%q, %q)", m.form.Value(1), m.form.Value(2))
	}
}

func TestOrderConfirmShowsKnownLink(t *testing.T) {
	m := NewOrderConfirmModel(DefaultStyles(), testClient(t))
	m, cmd := m.Load(42, "https://wa.me/573001234567?text=hola")
	if cmd != nil {
		t.Error("known link needs no fetch")
	}

	view := m.View()
	if !strings.Contains(view, "#42") {
		t.Errorf("order number missing:\n%s", view)
	}
	if !strings.Contains(view, "https://wa.me/573001234567?text=hola") {
		t.Errorf("wa link missing:\n%s", view)
	}
}

func TestOrderConfirmFetchesWhenOnlyID(t *testing.T) {
	m := NewOrderConfirmModel(DefaultStyles(), testClient(t))
	m, cmd := m.Load(42, "")
	if cmd == nil {
		t.Fatal("id-only load should fetch the order")
	}

	m, _ = m.Update(ConfirmLoadedMsg{OrderID: 42, WaURL: "https://wa.me/1?text=x", Res: okResult()})
	if !strings.Contains(m.View(), "https://wa.me/1?text=x") {
		t.Errorf("reconstructed link missing:\n%s", m.View())
	}

	// A stale result for another order changes nothing.
	m, _ = m.Update(ConfirmLoadedMsg{OrderID: 7, WaURL: "https://wa.me/2?text=y", Res: okResult()})
	if strings.Contains(m.View(), "wa.me/2") {
		t.Error("stale confirm load must be ignored")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hola", 10); got != "hola" {
		t.Errorf("truncate short = %q", got)
	}
	got := truncate("una descripción bastante larga para la tarjeta", 10)
	if len([]rune(got)) > 10 {
		t.Errorf("truncate long = %q (len %d)", got, len([]rune(got)))
	}
}
