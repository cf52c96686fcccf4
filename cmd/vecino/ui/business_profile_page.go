package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"golang.org/x/sync/errgroup"

	"vecindario/internal/api"
	"vecindario/internal/imageref"
	"vecindario/internal/model"
)

// ProfileLoadedMsg carries a business profile plus its products.
type ProfileLoadedMsg struct {
	BusinessID int64
	Business   model.Business
	Products   []model.Product
	Res        api.Result
}

// BusinessProfileModel is the deep-linkable public profile of one business.
type BusinessProfileModel struct {
	client   *api.Client
	resolver *imageref.Resolver
	styles   Styles
	renderer *glamour.TermRenderer

	businessID int64
	business   model.Business
	products   []model.Product
	image      *SmartImage
	spinner    spinner.Model
	loading    bool
	errText    string
	width      int
}

// NewBusinessProfileModel builds the profile page.
func NewBusinessProfileModel(st Styles, client *api.Client, resolver *imageref.Resolver) BusinessProfileModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	var renderer *glamour.TermRenderer
	if st.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(72))
	} else {
		renderer, _ = glamour.NewTermRenderer(glamour.WithStylePath("light"), glamour.WithWordWrap(72))
	}

	return BusinessProfileModel{
		client:   client,
		resolver: resolver,
		styles:   st,
		renderer: renderer,
		image:    NewSmartImage(resolver, ""),
		spinner:  sp,
		width:    80,
	}
}

// Load fetches the business and its products concurrently.
func (m BusinessProfileModel) Load(businessID int64) (BusinessProfileModel, tea.Cmd) {
	m.businessID = businessID
	m.loading = true
	m.errText = ""
	client := m.client
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			var (
				biz      model.Business
				products []model.Product
				bizRes   api.Result
			)
			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() error {
				biz, bizRes = client.GetBusiness(ctx, businessID)
				return nil
			})
			g.Go(func() error {
				products, _ = client.ListProducts(ctx, businessID)
				return nil
			})
			_ = g.Wait()
			return ProfileLoadedMsg{
				BusinessID: businessID,
				Business:   biz,
				Products:   products,
				Res:        bizRes,
			}
		},
	)
}

// SetSize updates layout bounds.
func (m BusinessProfileModel) SetSize(width int) BusinessProfileModel {
	m.width = width
	return m
}

// Update handles profile messages.
func (m BusinessProfileModel) Update(msg tea.Msg) (BusinessProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ProfileLoadedMsg:
		if msg.BusinessID != m.businessID {
			// Stale load from a superseded navigation.
			return m, nil
		}
		m.loading = false
		if !msg.Res.OK {
			m.errText = msg.Res.ErrText()
			return m, nil
		}
		m.business = msg.Business
		m.products = msg.Products
		return m, m.image.Reset(m.business.ImageRef)

	case ImageProbeMsg:
		return m, m.image.Update(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "o" {
			id := m.businessID
			return m, func() tea.Msg { return OpenOrderMsg{BusinessID: id} }
		}
	}
	return m, nil
}

// View renders the profile.
func (m BusinessProfileModel) View() string {
	st := m.styles
	if m.loading {
		return fmt.Sprintf("%s Cargando información del negocio...", m.spinner.View())
	}
	if m.errText != "" {
		return st.Error.Render(fmt.Sprintf("No se pudo cargar el negocio (ID: %d). %s", m.businessID, m.errText))
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(m.business.Name))
	if m.business.Category != "" {
		b.WriteString("  " + st.Badge.Render(m.business.Category))
	}
	b.WriteString("\n")
	b.WriteString(m.image.View(st, min(m.width-4, 48)) + "\n")

	if m.business.Description != "" {
		desc := m.business.Description
		if m.renderer != nil {
			if out, err := m.renderer.Render(desc); err == nil {
				desc = strings.TrimSpace(out)
			}
		}
		b.WriteString(desc + "\n")
	}

	var details []string
	if m.business.Address != "" {
		details = append(details, m.business.Address)
	}
	if m.business.City != "" || m.business.Barrio != "" {
		details = append(details, strings.TrimSpace(m.business.City+" / "+m.business.Barrio))
	}
	if m.business.Hours != "" {
		details = append(details, "Horario: "+m.business.Hours)
	}
	if m.business.Phone != "" {
		details = append(details, "Tel: "+m.business.Phone)
	}
	if len(details) > 0 {
		b.WriteString(st.Muted.Render(strings.Join(details, " · ")) + "\n")
	}

	b.WriteString("\n" + st.Subtitle.Render("Productos") + "\n")
	if len(m.products) == 0 {
		b.WriteString(st.Muted.Render("Este negocio aún no publica productos.") + "\n")
	}
	for _, p := range m.products {
		line := "• " + p.Name
		if p.Price != nil {
			line += fmt.Sprintf(" · $%.0f", *p.Price)
		}
		if p.Description != "" {
			line += " · " + truncate(p.Description, m.width-len(line)-4)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + st.Help.Render("o: hacer pedido a este negocio"))
	return b.String()
}
