package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// menuEntry binds a visible label to the page it opens.
type menuEntry struct {
	label string
	page  string
}

// MenuModel is the entry page shown before authentication. It offers login
// and registration; the note list itself lives behind the session pages.
type MenuModel struct {
	entries []menuEntry
	idx     int
	status  string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		entries: []menuEntry{
			{label: "Войти", page: "login"},
			{label: "Зарегистрироваться", page: "register"},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		if msg.Username != "" {
			m.status = "Пользователь " + msg.Username + " успешно зарегистрирован"
		} else {
			m.status = "Регистрация прошла успешно"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.idx > 0 {
				m.idx--
			}
		case "down", "j":
			if m.idx < len(m.entries)-1 {
				m.idx++
			}
		case "enter":
			page := m.entries[m.idx].page
			return m, func() tea.Msg { return NavigateTo{Page: page} }
		}
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	b.WriteString("Заметки под рукой. Войдите, чтобы открыть свои записи.\n\n")

	for i, entry := range m.entries {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(entry.label)
		b.WriteString("\n")
	}

	return renderPage("GO NOTE KEEPER", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация")
}
