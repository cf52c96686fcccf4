package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vecindario/cmd/vecino/ui"
	"vecindario/internal/api"
	"vecindario/internal/session"
)

type plainModal struct{}

func (plainModal) Init() tea.Cmd                               { return nil }
func (m plainModal) Update(msg tea.Msg) (ui.Modal, tea.Cmd)    { return m, nil }
func (plainModal) View(st ui.Styles, width, height int) string { return "overlay" }

func testApp(t *testing.T) appModel {
	t.Helper()
	client := api.NewClient("http://127.0.0.1:1", nil)
	sessions := session.NewStore(t.TempDir())
	app, err := newApp(zap.NewNop(), client, sessions, ui.DefaultStyles(), "/")
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(app.shutdown)
	return app
}

// The returned model must carry the modal-stack mutation: a pushed overlay
// stays on the model handed back to the runtime, and a dismissed one is gone
// from it.
func TestUpdateReturnsModelWithPushedModal(t *testing.T) {
	a := testApp(t)

	model, _ := a.Update(ui.OpenModalMsg{Modal: plainModal{}})
	got, ok := model.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", model)
	}
	if !got.modals.Active() {
		t.Fatal("pushed modal missing from the returned model")
	}
}

func TestUpdateReturnsModelWithPoppedModal(t *testing.T) {
	a := testApp(t)

	model, _ := a.Update(ui.OpenModalMsg{Modal: plainModal{}})
	a = model.(appModel)

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(appModel)
	if a.modals.Active() {
		t.Fatal("esc-dismissed modal still on the returned model")
	}

	model, _ = a.Update(ui.OpenModalMsg{Modal: plainModal{}})
	a = model.(appModel)
	model, _ = a.Update(ui.CloseModalMsg{})
	a = model.(appModel)
	if a.modals.Active() {
		t.Fatal("CloseModalMsg-dismissed modal still on the returned model")
	}
}
