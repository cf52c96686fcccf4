package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vecindario/cmd/vecino/ui"
	"vecindario/internal/api"
	"vecindario/internal/imageref"
	"vecindario/internal/nav"
	"vecindario/internal/session"
	"vecindario/internal/signal"
)

// Signals surfaced from the bus into the update loop.
type busOpenBusinessMsg struct{ id int64 }
type busOpenOrderMsg struct{ id int64 }

// appModel is the single bubbletea root. It owns the router, the modal
// stack and every page model; pages communicate upward through ui messages
// and the signal bus, never by touching each other.
type appModel struct {
	log      *zap.Logger
	router   *nav.Router
	sessions *session.Store
	client   *api.Client
	bus      *signal.Bus
	styles   ui.Styles

	cancel     context.CancelFunc
	businessCh <-chan int64
	orderCh    <-chan int64

	modals ui.ModalStack

	home         ui.HomeModel
	login        ui.LoginModel
	register     ui.RegisterModel
	search       ui.SearchModel
	customerDash ui.CustomerDashboardModel
	businessDash ui.BusinessDashboardModel
	editProfile  ui.EditProfileModel
	profile      ui.BusinessProfileModel
	orderForm    ui.OrderFormModel
	orderConfirm ui.OrderConfirmModel

	// WhatsApp URL handed from the order form to the confirm page. Consumed
	// on activation so a re-entry by id alone refetches.
	pendingWaURL string

	// Startup command produced by activating the Bootstrap page; Init
	// cannot mutate the model, so newApp activates eagerly.
	initCmd tea.Cmd

	width  int
	height int
}

func newApp(log *zap.Logger, client *api.Client, sessions *session.Store, styles ui.Styles, initialPath string) (appModel, error) {
	router := nav.NewRouter(sessions, log)
	bus := signal.NewBus()

	// Protocol-relative image references complete with the API's scheme.
	scheme := "http:"
	if u, err := url.Parse(client.BaseURL()); err == nil && u.Scheme != "" {
		scheme = u.Scheme + ":"
	}
	resolver := imageref.NewResolver(client.BaseURL(), scheme)

	ctx, cancel := context.WithCancel(context.Background())
	businessCh, err := bus.Subscribe(ctx, signal.TopicOpenBusiness)
	if err != nil {
		cancel()
		return appModel{}, fmt.Errorf("subscribe %s: %w", signal.TopicOpenBusiness, err)
	}
	orderCh, err := bus.Subscribe(ctx, signal.TopicOpenOrder)
	if err != nil {
		cancel()
		return appModel{}, fmt.Errorf("subscribe %s: %w", signal.TopicOpenOrder, err)
	}

	a := appModel{
		log:        log,
		router:     router,
		sessions:   sessions,
		client:     client,
		bus:        bus,
		styles:     styles,
		cancel:     cancel,
		businessCh: businessCh,
		orderCh:    orderCh,

		home:         ui.NewHomeModel(styles, client, bus, resolver),
		login:        ui.NewLoginModel(styles, client, sessions),
		register:     ui.NewRegisterModel(styles, client),
		search:       ui.NewSearchModel(styles, client),
		customerDash: ui.NewCustomerDashboardModel(styles, client),
		businessDash: ui.NewBusinessDashboardModel(styles, client),
		editProfile:  ui.NewEditProfileModel(styles, client),
		profile:      ui.NewBusinessProfileModel(styles, client, resolver),
		orderForm:    ui.NewOrderFormModel(styles, client, sessions),
		orderConfirm: ui.NewOrderConfirmModel(styles, client),

		width:  80,
		height: 24,
	}

	router.Bootstrap(initialPath)
	a, a.initCmd = a.activate()
	return a, nil
}

func waitBusinessSignal(ch <-chan int64) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return busOpenBusinessMsg{id: id}
	}
}

func waitOrderSignal(ch <-chan int64) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return busOpenOrderMsg{id: id}
	}
}

// Init starts the bus pumps and the Bootstrap page's load.
func (a appModel) Init() tea.Cmd {
	return tea.Batch(
		waitBusinessSignal(a.businessCh),
		waitOrderSignal(a.orderCh),
		a.initCmd,
	)
}

// activate loads the model behind the currently resolved page and returns
// its startup command. Leaving home tears down its carousel timer.
func (a appModel) activate() (appModel, tea.Cmd) {
	page := a.router.Resolve()
	if page != nav.PageHome {
		a.home = a.home.Stop()
	}

	user := a.router.CurrentUser()
	switch page {
	case nav.PageHome:
		var cmd tea.Cmd
		a.home, cmd = a.home.Load()
		return a, cmd
	case nav.PageRegister:
		var cmd tea.Cmd
		a.register, cmd = a.register.Load()
		return a, cmd
	case nav.PageSearch:
		var cmd tea.Cmd
		a.search, cmd = a.search.Load()
		return a, cmd
	case nav.PageCustomerDashboard:
		var cmd tea.Cmd
		a.customerDash, cmd = a.customerDash.Load(*user)
		return a, cmd
	case nav.PageBusinessDashboard:
		var cmd tea.Cmd
		a.businessDash, cmd = a.businessDash.Load(*user)
		return a, cmd
	case nav.PageEditProfile:
		var cmd tea.Cmd
		a.editProfile, cmd = a.editProfile.Load(*user)
		return a, cmd
	case nav.PageBusinessProfile:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Load(a.router.State().BusinessID)
		return a, cmd
	case nav.PageOrderForm:
		var cmd tea.Cmd
		a.orderForm, cmd = a.orderForm.Load(a.router.State().BusinessID)
		return a, cmd
	case nav.PageOrderConfirm:
		var cmd tea.Cmd
		waURL := a.pendingWaURL
		a.pendingWaURL = ""
		a.orderConfirm, cmd = a.orderConfirm.Load(a.router.State().OrderID, waURL)
		return a, cmd
	}
	return a, nil
}

func (a appModel) shutdown() {
	a.cancel()
	if err := a.bus.Close(); err != nil {
		a.log.Warn("bus close", zap.Error(err))
	}
}

// Update is the central dispatcher: shell transitions first, then the modal
// focus trap, then the resolved page.
func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.home = a.home.SetSize(msg.Width)
		a.profile = a.profile.SetSize(msg.Width)
		return a, nil

	case busOpenBusinessMsg:
		a.router.OpenBusinessProfile(msg.id)
		model, cmd := a.activate()
		return model, tea.Batch(cmd, waitBusinessSignal(a.businessCh))

	case busOpenOrderMsg:
		a.router.OpenOrderForm(msg.id)
		model, cmd := a.activate()
		return model, tea.Batch(cmd, waitOrderSignal(a.orderCh))

	case ui.NavigateMsg:
		a.router.SetPage(msg.Page)
		return a.activate()

	case ui.OpenBusinessMsg:
		a.router.OpenBusinessProfile(msg.ID)
		return a.activate()

	case ui.OpenOrderMsg:
		a.router.OpenOrderForm(msg.BusinessID)
		return a.activate()

	case ui.LoggedInMsg:
		// The login flow persists a redirect marker the way the web client
		// persisted one across its reload; consume it here.
		if redirect := a.sessions.TakeRedirect(); redirect != "" {
			a.router.SetPage(nav.ParsePage(redirect))
		} else {
			a.router.GoToDashboard()
		}
		a.log.Info("login", zap.Int64("user_id", msg.User.ID), zap.String("role", string(msg.User.Role)))
		return a.activate()

	case ui.LogoutMsg:
		a.router.Logout()
		return a.activate()

	case ui.ProfileSavedMsg:
		if err := a.sessions.Set(msg.User); err != nil {
			a.log.Warn("session update", zap.Error(err))
		}
		a.router.GoToDashboard()
		return a.activate()

	case ui.OrderPlacedMsg:
		a.pendingWaURL = msg.WaURL
		a.router.OpenOrderConfirm(msg.OrderID)
		a.log.Info("order placed", zap.Int64("order_id", msg.OrderID))
		return a.activate()

	case ui.OpenModalMsg:
		cmd := a.modals.Push(msg.Modal)
		return a, cmd

	case ui.CloseModalMsg:
		cmd := a.modals.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Async results flow to the top modal (if any) and the current page.
	var cmds []tea.Cmd
	if a.modals.Active() {
		cmds = append(cmds, a.modals.Update(msg))
	}
	model, cmd := a.routeToPage(msg)
	cmds = append(cmds, cmd)
	return model, tea.Batch(cmds...)
}

func (a appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.shutdown()
		return a, tea.Quit
	}

	// Modals trap everything else, including esc.
	if a.modals.Active() {
		cmd := a.modals.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "esc":
		if a.router.Resolve() != nav.PageHome {
			a.router.SetPage(nav.PageHome)
			return a.activate()
		}
		return a, nil
	case "ctrl+h":
		a.router.SetPage(nav.PageHome)
		return a.activate()
	case "ctrl+f":
		a.router.SetPage(nav.PageSearch)
		return a.activate()
	case "ctrl+d":
		if a.router.CurrentUser() == nil {
			a.router.SetPage(nav.PageLogin)
		} else {
			a.router.GoToDashboard()
		}
		return a.activate()
	case "ctrl+x":
		if a.router.CurrentUser() != nil {
			a.router.Logout()
			return a.activate()
		}
		return a, nil
	}

	return a.routeToPage(msg)
}

func (a appModel) routeToPage(msg tea.Msg) (appModel, tea.Cmd) {
	var cmd tea.Cmd
	switch a.router.Resolve() {
	case nav.PageHome:
		a.home, cmd = a.home.Update(msg)
	case nav.PageLogin:
		a.login, cmd = a.login.Update(msg)
	case nav.PageRegister:
		a.register, cmd = a.register.Update(msg)
	case nav.PageSearch:
		a.search, cmd = a.search.Update(msg)
	case nav.PageCustomerDashboard:
		a.customerDash, cmd = a.customerDash.Update(msg)
	case nav.PageBusinessDashboard:
		a.businessDash, cmd = a.businessDash.Update(msg)
	case nav.PageEditProfile:
		a.editProfile, cmd = a.editProfile.Update(msg)
	case nav.PageBusinessProfile:
		a.profile, cmd = a.profile.Update(msg)
	case nav.PageOrderForm:
		a.orderForm, cmd = a.orderForm.Update(msg)
	case nav.PageOrderConfirm:
		a.orderConfirm, cmd = a.orderConfirm.Update(msg)
	}
	return a, cmd
}

func (a appModel) pageView() string {
	switch a.router.Resolve() {
	case nav.PageLogin:
		return a.login.View()
	case nav.PageRegister:
		return a.register.View()
	case nav.PageSearch:
		return a.search.View()
	case nav.PageCustomerDashboard:
		return a.customerDash.View()
	case nav.PageBusinessDashboard:
		return a.businessDash.View()
	case nav.PageEditProfile:
		return a.editProfile.View()
	case nav.PageBusinessProfile:
		return a.profile.View()
	case nav.PageOrderForm:
		return a.orderForm.View()
	case nav.PageOrderConfirm:
		return a.orderConfirm.View()
	default:
		return a.home.View()
	}
}

// View renders header, body (or modal overlay) and the global help line.
func (a appModel) View() string {
	st := a.styles

	header := st.Header.Render(" Vecindario ") + " " + st.Location.Render(a.router.Location())
	if u := a.router.CurrentUser(); u != nil {
		header += "  " + st.Muted.Render(fmt.Sprintf("%s (%s)", u.Name, u.Role))
	}

	body := a.pageView()
	if a.modals.Active() {
		body = a.modals.View(st, a.width, max(a.height-4, 8))
	}

	help := st.Help.Render("ctrl+h: inicio · ctrl+f: buscar · ctrl+d: mi panel · ctrl+x: salir de sesión · ctrl+c: salir")

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(body)
	b.WriteString("\n" + help + "\n")
	return b.String()
}
