package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/imageref"
	"vecindario/internal/model"
	"vecindario/internal/signal"
)

// BusinessQuickModal is the quick-view overlay opened from a business card.
// It does not navigate by itself: the "open full profile" and "order here"
// actions go out over the signal bus, exactly like any deeply nested view
// would request them, and the shell reacts to the broadcast.
type BusinessQuickModal struct {
	biz   model.Business
	bus   *signal.Bus
	image *SmartImage
}

// NewBusinessQuickModal builds the overlay for one business.
func NewBusinessQuickModal(biz model.Business, bus *signal.Bus, resolver *imageref.Resolver) *BusinessQuickModal {
	return &BusinessQuickModal{
		biz:   biz,
		bus:   bus,
		image: NewSmartImage(resolver, biz.ImageRef),
	}
}

// Init probes the business image.
func (m *BusinessQuickModal) Init() tea.Cmd {
	return m.image.Probe()
}

// Update handles the quick actions.
func (m *BusinessQuickModal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case ImageProbeMsg:
		return m, m.image.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "p", "enter":
			id := m.biz.ID
			bus := m.bus
			return m, func() tea.Msg {
				_ = bus.PublishOpenBusiness(id)
				return CloseModalMsg{}
			}
		case "o":
			id := m.biz.ID
			bus := m.bus
			return m, func() tea.Msg {
				_ = bus.PublishOpenOrder(id)
				return CloseModalMsg{}
			}
		}
	}
	return m, nil
}

// View renders the quick card.
func (m *BusinessQuickModal) View(st Styles, width, height int) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(m.biz.Name) + "\n")
	if m.biz.Category != "" {
		b.WriteString(st.Subtitle.Render(m.biz.Category) + "\n")
	}
	b.WriteString(m.image.View(st, 40) + "\n")
	if m.biz.Description != "" {
		b.WriteString(m.biz.Description + "\n")
	}
	if m.biz.Address != "" {
		b.WriteString(st.Muted.Render(m.biz.Address) + "\n")
	}
	if m.biz.Phone != "" {
		b.WriteString(st.Muted.Render(fmt.Sprintf("Tel: %s", m.biz.Phone)) + "\n")
	}
	if m.biz.Hours != "" {
		b.WriteString(st.Muted.Render(m.biz.Hours) + "\n")
	}
	b.WriteString("\n" + st.Help.Render("p/enter: ver perfil · o: hacer pedido · esc: cerrar"))
	return b.String()
}
