package tui

import (
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the RootModel to another page. Payload, when set, is
// re-delivered to the target page after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the login flow.
type LoginResult struct {
	Err      error
	Username string
	UserID   int64
}

// RegisterResult reports the outcome of an account registration.
type RegisterResult struct {
	Err      error
	Username string
}

// RegisterSuccessNotice is shown on the menu page after a registration.
type RegisterSuccessNotice struct {
	Username string
}

// notesChangedMsg is emitted whenever the shared cache reports a change.
type notesChangedMsg struct{}

// trashEventMsg carries a deferred-deletion scheduler notification.
type trashEventMsg struct {
	event service.TrashEvent
}

type refreshDoneMsg struct {
	err error
}

type saveDoneMsg struct {
	note models.Note
	err  error
}

type deleteRequestedMsg struct {
	id  string
	err error
}
