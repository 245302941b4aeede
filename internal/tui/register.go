package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// registration form field indices
const (
	regFieldName = iota
	regFieldLogin
	regFieldPassword
	regFieldRepeat
	regFieldCount
)

var regFieldLabels = [regFieldCount]string{
	"Имя", "Логин", "Пароль", "Повтор пароля",
}

// RegisterModel renders the sign-up form. On success it resets the form and
// returns to the menu with a [RegisterSuccessNotice] payload so the menu can
// confirm the new account.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     [regFieldCount]textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	m := &RegisterModel{ctx: ctx, auth: auth}

	m.inputs[regFieldName] = newFormInput("name", 0)
	m.inputs[regFieldLogin] = newFormInput("login", 20)
	m.inputs[regFieldPassword] = newFormInput("password", 0)
	m.inputs[regFieldRepeat] = newFormInput("repeat password", 0)

	for _, i := range []int{regFieldPassword, regFieldRepeat} {
		m.inputs[i].EchoMode = textinput.EchoPassword
		m.inputs[i].EchoCharacter = '*'
	}

	m.inputs[regFieldName].Focus()
	return m
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.Err)
			return m, nil
		}

		m.errMsg = ""
		m.resetForm()
		username := msg.Username
		return m, func() tea.Msg {
			return NavigateTo{
				Page:    "menu",
				Payload: RegisterSuccessNotice{Username: username},
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab":
			m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates the form and dispatches the async register command.
func (m *RegisterModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	name := strings.TrimSpace(m.inputs[regFieldName].Value())
	login := strings.TrimSpace(m.inputs[regFieldLogin].Value())
	pass := strings.TrimSpace(m.inputs[regFieldPassword].Value())
	repeat := strings.TrimSpace(m.inputs[regFieldRepeat].Value())

	if name == "" || login == "" || pass == "" || repeat == "" {
		m.errMsg = "Все поля обязательны"
		return nil
	}
	if pass != repeat {
		m.errMsg = "Пароли не совпадают"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		_, err := auth.Register(ctx, models.User{Name: name, Login: login, Password: pass})
		return RegisterResult{Err: err, Username: login}
	}
}

func (m *RegisterModel) View() string {
	var b strings.Builder

	for i, label := range regFieldLabels {
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", 14-len([]rune(label))))
		b.WriteString("[")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Зарегистрироваться...]\n")
	} else {
		b.WriteString("\n[Зарегистрироваться]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("РЕГИСТРАЦИЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}

func (m *RegisterModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.setFocus(0)
}

func (m *RegisterModel) setFocus(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = (idx + regFieldCount) % regFieldCount
	m.inputs[m.focus].Focus()
}
