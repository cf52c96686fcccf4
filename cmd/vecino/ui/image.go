package ui

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/imageref"
)

// probeClient verifies image candidates with a short independent timeout so
// a dead CDN cannot stall the page load path.
var probeClient = &http.Client{Timeout: 5 * time.Second}

// ImageProbeMsg reports the outcome of checking one candidate URL.
type ImageProbeMsg struct {
	Raw string
	URL string
	OK  bool
}

// SmartImage walks an image candidate chain and renders a framed box for
// whatever candidate currently works. Inline data URIs are renderable by
// definition; network candidates are verified with a HEAD probe and the
// cursor advances on failure until the placeholder is reached.
type SmartImage struct {
	resolver *imageref.Resolver
	image    *imageref.Image
	resolved bool
}

// NewSmartImage starts a cursor over the chain for raw.
func NewSmartImage(resolver *imageref.Resolver, raw string) *SmartImage {
	return &SmartImage{
		resolver: resolver,
		image:    resolver.NewImage(raw),
	}
}

// Reset rebinds to a new raw reference. The chain is recomputed only when
// the reference actually changed.
func (s *SmartImage) Reset(raw string) tea.Cmd {
	s.image.Reset(s.resolver, raw)
	s.resolved = false
	return s.Probe()
}

// Probe checks the current candidate. Data URIs resolve immediately.
func (s *SmartImage) Probe() tea.Cmd {
	current := s.image.Current()
	raw := s.image.Raw()
	if strings.HasPrefix(current, "data:") {
		return func() tea.Msg {
			return ImageProbeMsg{Raw: raw, URL: current, OK: true}
		}
	}
	return func() tea.Msg {
		if !strings.HasPrefix(current, "http://") && !strings.HasPrefix(current, "https://") {
			// Origin-relative path with no origin to resolve against.
			return ImageProbeMsg{Raw: raw, URL: current, OK: false}
		}
		resp, err := probeClient.Head(current)
		if err != nil {
			return ImageProbeMsg{Raw: raw, URL: current, OK: false}
		}
		resp.Body.Close()
		return ImageProbeMsg{Raw: raw, URL: current, OK: resp.StatusCode < 400}
	}
}

// Update consumes probe results. A failed candidate advances the cursor and
// issues the next probe; the placeholder never advances.
func (s *SmartImage) Update(msg tea.Msg) tea.Cmd {
	probe, ok := msg.(ImageProbeMsg)
	if !ok || probe.URL != s.image.Current() {
		return nil
	}
	if probe.OK {
		s.resolved = true
		return nil
	}
	if s.image.Fail() {
		return s.Probe()
	}
	s.resolved = true
	return nil
}

// Resolved reports whether the cursor has settled on a working candidate.
func (s *SmartImage) Resolved() bool { return s.resolved }

// View renders the image frame. The terminal cannot paint the bitmap, so
// the box shows the resolved source, or the "Sin imagen" placeholder text.
func (s *SmartImage) View(st Styles, width int) string {
	label := "Sin imagen"
	current := s.image.Current()
	if !strings.HasPrefix(current, "data:") {
		if s.resolved {
			label = fmt.Sprintf("🖼 %s", truncate(current, width-6))
		} else {
			label = "cargando imagen..."
		}
	}
	return st.ImageBox.Width(width).Render(label)
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
