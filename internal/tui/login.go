// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel renders the sign-in form. A successful submit produces a
// [LoginResult] message which [RootModel] turns into an authenticated note
// session.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	login      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	login := newFormInput("login", 20)
	login.Focus()

	password := newFormInput("password", 256)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &LoginModel{
		ctx:      ctx,
		auth:     auth,
		login:    login,
		password: password,
	}
}

// newFormInput is shared by the login and register forms.
func newFormInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.login, cmd = m.login.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// submit validates the form and dispatches the async login command.
// Re-entry while a login is in flight is ignored.
func (m *LoginModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	login := strings.TrimSpace(m.login.Value())
	pass := m.password.Value()
	if login == "" || pass == "" {
		m.errMsg = "Логин и пароль обязательны"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		userID, err := auth.Login(ctx, models.User{Login: login, Password: pass})
		return LoginResult{Err: err, Username: login, UserID: userID}
	}
}

func (m *LoginModel) toggleFocus() {
	if m.focus == 0 {
		m.login.Blur()
		m.password.Focus()
		m.focus = 1
	} else {
		m.password.Blur()
		m.login.Focus()
		m.focus = 0
	}
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Логин:  [")
	b.WriteString(m.login.View())
	b.WriteString("]\n")
	b.WriteString("Пароль: [")
	b.WriteString(m.password.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Войти...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("ВХОД", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
