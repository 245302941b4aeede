package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel routes between the pre-auth pages (menu, login, register). It
// owns the global ctrl+c quit, NavigateTo handling, and closing the program
// once a login succeeds so the note session can start.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	quitByUser bool
	resultID   int64
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string) RootModel {
	return RootModel{
		pages:   pages,
		current: pages[startPage],
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			r.quitByUser = true
			return r, tea.Quit
		}

	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}
		r.current = next

		if msg.Payload != nil {
			payload := msg.Payload
			return r, func() tea.Msg { return payload }
		}
		return r, r.current.Init()

	case LoginResult:
		// quitting here hands control to the note session loop
		if msg.Err == nil {
			setSessionUserID(msg.UserID)
			r.resultID = msg.UserID
			return r, tea.Quit
		}
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.current == nil {
		return renderPage("TUI", "", "")
	}
	return r.current.View()
}
