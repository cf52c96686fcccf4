package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"vecindario/internal/model"
	"vecindario/internal/nav"
)

// Messages exchanged between page models and the app shell. Pages never
// touch the router directly; they emit one of these and the shell performs
// the named transition.

// NavigateMsg requests an unconditional page change.
type NavigateMsg struct{ Page nav.Page }

// OpenBusinessMsg requests the business-profile view for a business.
type OpenBusinessMsg struct{ ID int64 }

// OpenOrderMsg requests the order form, optionally pinned to a business.
type OpenOrderMsg struct{ BusinessID int64 }

// LoggedInMsg reports a successful login; the user is already persisted.
type LoggedInMsg struct{ User model.User }

// LogoutMsg requests session teardown.
type LogoutMsg struct{}

// ProfileSavedMsg carries the merged user record after a profile save.
type ProfileSavedMsg struct{ User model.User }

// OrderPlacedMsg reports a registered order and its WhatsApp handoff URL.
type OrderPlacedMsg struct {
	OrderID int64
	WaURL   string
}

// OpenModalMsg layers a transient view on top of the current page.
type OpenModalMsg struct{ Modal Modal }

// CloseModalMsg dismisses the topmost overlay.
type CloseModalMsg struct{}

// ProductsChangedMsg tells the business dashboard to reload its products.
type ProductsChangedMsg struct{}

// Navigate wraps a NavigateMsg in a command.
func Navigate(p nav.Page) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Page: p} }
}

// CloseModal wraps a CloseModalMsg in a command.
func CloseModal() tea.Cmd {
	return func() tea.Msg { return CloseModalMsg{} }
}
