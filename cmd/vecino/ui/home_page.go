package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/api"
	"vecindario/internal/imageref"
	"vecindario/internal/model"
	"vecindario/internal/signal"
)

const carouselInterval = 4 * time.Second

// BusinessesLoadedMsg carries the home page fetch result.
type BusinessesLoadedMsg struct {
	List []model.Business
	Res  api.Result
}

// CarouselTickMsg rotates the featured banner. Gen ties a tick to the
// carousel generation that scheduled it so stale timers from a torn-down
// view are ignored.
type CarouselTickMsg struct{ Gen int }

// HomeModel renders the landing view: featured carousel, business grid and
// the quick-view modal entry points.
type HomeModel struct {
	client   *api.Client
	bus      *signal.Bus
	resolver *imageref.Resolver
	styles   Styles

	spinner  spinner.Model
	loading  bool
	errText  string
	featured []model.Business
	regular  []model.Business
	cursor   int
	slide    int
	gen      int
	active   bool
	width    int
}

// NewHomeModel builds the home page.
func NewHomeModel(st Styles, client *api.Client, bus *signal.Bus, resolver *imageref.Resolver) HomeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner
	return HomeModel{
		client:   client,
		bus:      bus,
		resolver: resolver,
		styles:   st,
		spinner:  sp,
		width:    80,
	}
}

// Load fetches the business list.
func (m HomeModel) Load() (HomeModel, tea.Cmd) {
	m.loading = true
	m.errText = ""
	m.active = true
	client := m.client
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			list, res := client.ListBusinesses(context.Background())
			return BusinessesLoadedMsg{List: list, Res: res}
		},
	)
}

// Stop tears the view down: the carousel generation is bumped so any timer
// still in flight acts on nothing.
func (m HomeModel) Stop() HomeModel {
	m.active = false
	m.gen++
	return m
}

func (m HomeModel) all() []model.Business {
	out := make([]model.Business, 0, len(m.featured)+len(m.regular))
	out = append(out, m.featured...)
	return append(out, m.regular...)
}

func (m HomeModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(carouselInterval, func(time.Time) tea.Msg {
		return CarouselTickMsg{Gen: gen}
	})
}

// SetSize updates layout bounds.
func (m HomeModel) SetSize(width int) HomeModel {
	m.width = width
	return m
}

// Update handles home page messages.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case BusinessesLoadedMsg:
		m.loading = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		m.featured = m.featured[:0]
		m.regular = m.regular[:0]
		for _, biz := range msg.List {
			if biz.Featured {
				m.featured = append(m.featured, biz)
			} else {
				m.regular = append(m.regular, biz)
			}
		}
		m.cursor = 0
		m.slide = 0
		if len(m.featured) > 1 {
			return m, m.tick()
		}
		return m, nil

	case CarouselTickMsg:
		if !m.active || msg.Gen != m.gen || len(m.featured) < 2 {
			return m, nil
		}
		m.slide = (m.slide + 1) % len(m.featured)
		return m, m.tick()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		items := m.all()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(items) {
				modal := NewBusinessQuickModal(items[m.cursor], m.bus, m.resolver)
				return m, func() tea.Msg { return OpenModalMsg{Modal: modal} }
			}
		case "v":
			if m.cursor < len(items) {
				id := items[m.cursor].ID
				return m, func() tea.Msg { return OpenBusinessMsg{ID: id} }
			}
		case "o":
			var id int64
			if m.cursor < len(items) {
				id = items[m.cursor].ID
			}
			return m, func() tea.Msg { return OpenOrderMsg{BusinessID: id} }
		case "r":
			// Manual retry; the gateway itself never retries.
			return m.Load()
		}
	}
	return m, nil
}

// View renders the landing page.
func (m HomeModel) View() string {
	st := m.styles
	var b strings.Builder

	if m.loading {
		return fmt.Sprintf("%s Cargando negocios...", m.spinner.View())
	}
	if m.errText != "" {
		b.WriteString(st.Error.Render(m.errText) + "\n")
		b.WriteString(st.Help.Render("El servidor no respondió. Vuelve a intentarlo con 'r'.") + "\n")
		return b.String()
	}

	if len(m.featured) > 0 {
		banner := m.featured[m.slide]
		label := fmt.Sprintf("★ %s", banner.Name)
		if banner.Category != "" {
			label += " · " + banner.Category
		}
		b.WriteString(st.Featured.Render(label))
		b.WriteString(st.Muted.Render(fmt.Sprintf("  (%d/%d)", m.slide+1, len(m.featured))) + "\n\n")
	}

	items := m.all()
	if len(items) == 0 {
		b.WriteString(st.Muted.Render("No hay negocios registrados todavía.") + "\n")
		return b.String()
	}

	for i, biz := range items {
		line := biz.Name
		if biz.Category != "" {
			line += " · " + biz.Category
		}
		if biz.Phone != "" {
			line += " · " + biz.Phone
		}
		if biz.Sponsored {
			line += " " + st.Badge.Render("patrocinador")
		}
		if i == m.cursor {
			b.WriteString(st.Selected.Render("> "+line) + "\n")
			if biz.Description != "" {
				b.WriteString("  " + st.Muted.Render(truncate(biz.Description, m.width-4)) + "\n")
			}
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + st.Help.Render("↑/↓: navegar · enter: vista rápida · v: perfil · o: pedido"))
	return b.String()
}
