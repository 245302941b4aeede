package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/notecache"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusPane identifies which of the three surfaces owns the keyboard.
type focusPane int

const (
	paneSidebar focusPane = iota
	paneList
	paneDetail
)

var errNoteIDNotSet = errors.New("id заметки не установлен")

type undoDoneMsg struct {
	err error
}

// mainLoopModel hosts the three surfaces (sidebar, list, detail) over one
// shared cache. Every surface renders from the visibility filter, so a note
// hidden by a pending deletion disappears from all three at once.
type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	userID   int64

	notes   []models.Note
	idx     int
	focus   focusPane
	loading bool

	editing   bool
	editID    string // empty while creating
	editTitle textinput.Model
	editBody  textarea.Model
	editFocus int
	saving    bool

	// undoID is the note whose grace period is currently running; the
	// status line shows the undo affordance while it is set.
	undoID string

	status string
	errMsg string

	width  int
	height int

	changes     <-chan struct{}
	unsubscribe func()

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, userID int64) mainLoopModel {
	effectiveUserID := userID
	if effectiveUserID == 0 {
		effectiveUserID = getSessionUserID()
	}
	if effectiveUserID > 0 {
		setSessionUserID(effectiveUserID)
	}

	changes, unsubscribe := services.Cache.Subscribe()

	return mainLoopModel{
		ctx:         ctx,
		services:    services,
		userID:      effectiveUserID,
		focus:       paneList,
		loading:     true,
		changes:     changes,
		unsubscribe: unsubscribe,
	}
}

// release detaches the model from the cache subscription. Called once the
// bubbletea program has finished.
func (m mainLoopModel) release() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdRefresh(), m.waitCacheChange(), m.waitTrashEvent())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.reload()
		return m, nil
	case notesChangedMsg:
		m.reload()
		return m, m.waitCacheChange()
	case trashEventMsg:
		m.applyTrashEvent(msg.event)
		m.reload()
		return m, m.waitTrashEvent()
	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка сохранения: %v", msg.err)
			return m, nil
		}
		m.editing = false
		m.status = "Заметка сохранена"
		m.errMsg = ""
		m.reload()
		m.selectNote(msg.note.ID)
		return m, nil
	case deleteRequestedMsg:
		switch {
		case errors.Is(msg.err, service.ErrAlreadyPending):
			m.status = "Период отмены перезапущен │ u: отменить"
			m.errMsg = ""
		case msg.err != nil:
			m.errMsg = fmt.Sprintf("Ошибка удаления: %v", msg.err)
		}
		return m, nil
	case undoDoneMsg:
		if msg.err != nil {
			m.errMsg = "Отменить уже нельзя: удаление подтверждается"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			return m.updateEditing(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.editing {
		return m.updateEditing(msg)
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % 3
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.notes)-1 {
			m.idx++
		}
	case "enter":
		if _, ok := m.current(); !ok {
			m.status = "Нет заметок"
			return m, nil
		}
		m.focus = paneDetail
	case "esc":
		if m.focus == paneDetail {
			m.focus = paneList
		}
	case "a":
		m.startEdit(models.Note{})
		return m, textinput.Blink
	case "e":
		note, ok := m.current()
		if !ok {
			m.status = "Нет заметок"
			return m, nil
		}
		m.startEdit(note)
		return m, textinput.Blink
	case "d", "ctrl+d":
		note, ok := m.current()
		if !ok {
			m.status = "Нет заметок"
			return m, nil
		}
		if strings.TrimSpace(note.ID) == "" {
			m.errMsg = fmt.Sprintf("Ошибка удаления: %v", errNoteIDNotSet)
			return m, nil
		}
		return m, m.cmdRequestDelete(note.ID)
	case "u":
		if m.undoID == "" {
			m.status = "Нечего отменять"
			return m, nil
		}
		return m, m.cmdUndo(m.undoID)
	case "c":
		note, ok := m.current()
		if !ok || strings.TrimSpace(note.Content) == "" {
			m.status = "Нечего копировать"
			return m, nil
		}
		if err := clipboard.WriteAll(note.Content); err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
			return m, nil
		}
		m.status = "Скопировано"
	case "s":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.status = "Обновление..."
		m.errMsg = ""
		return m, m.cmdRefresh()
	case "l":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *mainLoopModel) applyTrashEvent(ev service.TrashEvent) {
	switch ev.Kind {
	case service.TrashScheduled:
		m.undoID = ev.NoteID
		m.status = "Заметка перемещена в корзину │ u: отменить"
		m.errMsg = ""
	case service.TrashUndone:
		if m.undoID == ev.NoteID {
			m.undoID = ""
		}
		m.status = "Удаление отменено"
		m.errMsg = ""
	case service.TrashCommitted:
		if m.undoID == ev.NoteID {
			m.undoID = ""
		}
		m.status = "Заметка удалена"
	case service.TrashCommitFailed:
		if m.undoID == ev.NoteID {
			m.undoID = ""
		}
		m.errMsg = "Не удалось удалить на сервере: заметка восстановлена"
	}
}

// reload re-derives the visible projection from the shared cache and clamps
// the cursor.
func (m *mainLoopModel) reload() {
	m.notes = m.services.Viewer.Visible(notecache.AllNotesKey(m.userID))
	if m.idx >= len(m.notes) {
		m.idx = len(m.notes) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

// selectNote moves the cursor to the note with the given id, if it is
// currently visible.
func (m *mainLoopModel) selectNote(id string) {
	for i, note := range m.notes {
		if note.ID == id {
			m.idx = i
			return
		}
	}
}

// noteLabel prefers the title, falling back to the first content line for
// notes saved without one.
func noteLabel(note models.Note) string {
	if strings.TrimSpace(note.Title) != "" {
		return note.Title
	}
	if line := firstLine(note.Content); line != "" {
		return line
	}
	return "(без названия)"
}

func (m mainLoopModel) current() (models.Note, bool) {
	if len(m.notes) == 0 || m.idx < 0 || m.idx >= len(m.notes) {
		return models.Note{}, false
	}
	return m.notes[m.idx], true
}

// ── editing ──────────────────────────────────────────────────────────────────

func (m *mainLoopModel) startEdit(note models.Note) {
	title := textinput.New()
	title.Placeholder = "Название"
	title.Width = 50
	title.SetValue(note.Title)
	title.Focus()

	body := textarea.New()
	body.Placeholder = "Текст заметки"
	body.SetWidth(60)
	body.SetHeight(10)
	body.SetValue(note.Content)

	m.editing = true
	m.editID = note.ID
	m.editTitle = title
	m.editBody = body
	m.editFocus = 0
	m.errMsg = ""
	m.status = ""
}

func (m mainLoopModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.editing = false
			m.saving = false
			return m, nil
		case "tab", "shift+tab":
			if m.editFocus == 0 {
				m.editFocus = 1
				m.editTitle.Blur()
				m.editBody.Focus()
			} else {
				m.editFocus = 0
				m.editBody.Blur()
				m.editTitle.Focus()
			}
			return m, nil
		case "ctrl+s":
			if m.saving {
				return m, nil
			}
			title := strings.TrimSpace(m.editTitle.Value())
			if title == "" {
				m.errMsg = "Нужно название"
				return m, nil
			}
			m.errMsg = ""
			m.saving = true
			return m, m.cmdSave(m.editID, models.NoteFields{
				Title:   title,
				Content: m.editBody.Value(),
			})
		}
	}

	var cmd tea.Cmd
	if m.editFocus == 0 {
		m.editTitle, cmd = m.editTitle.Update(msg)
	} else {
		m.editBody, cmd = m.editBody.Update(msg)
	}
	return m, cmd
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m mainLoopModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	notes := m.services.Notes
	userID := m.userID

	return func() tea.Msg {
		return refreshDoneMsg{err: notes.Refresh(ctx, userID)}
	}
}

func (m mainLoopModel) waitCacheChange() tea.Cmd {
	changes := m.changes

	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return notesChangedMsg{}
	}
}

func (m mainLoopModel) waitTrashEvent() tea.Cmd {
	events := m.services.Trash.Events()

	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return trashEventMsg{event: ev}
	}
}

// cmdSave summarizes the content first, then creates or updates. A
// summarizer failure never blocks the mutation: the note is saved without a
// summary.
func (m mainLoopModel) cmdSave(id string, fields models.NoteFields) tea.Cmd {
	ctx := m.ctx
	notes := m.services.Notes
	summary := m.services.Summary
	userID := m.userID

	return func() tea.Msg {
		if s, err := summary.Summarize(ctx, fields.Content); err == nil {
			fields.Summary = s
		}

		var (
			saved models.Note
			err   error
		)
		if id == "" {
			saved, err = notes.Create(ctx, userID, fields)
		} else {
			saved, err = notes.Update(ctx, userID, id, fields)
		}
		return saveDoneMsg{note: saved, err: err}
	}
}

func (m mainLoopModel) cmdRequestDelete(id string) tea.Cmd {
	ctx := m.ctx
	trash := m.services.Trash

	return func() tea.Msg {
		return deleteRequestedMsg{id: id, err: trash.RequestDelete(ctx, id)}
	}
}

func (m mainLoopModel) cmdUndo(id string) tea.Cmd {
	trash := m.services.Trash

	return func() tea.Msg {
		return undoDoneMsg{err: trash.Undo(id)}
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

const sidebarWidth = 22

func (m mainLoopModel) View() string {
	if m.editing {
		return m.viewEdit()
	}

	sidebar := m.paneRender(paneSidebar, m.viewSidebar())
	list := m.paneRender(paneList, m.viewList())
	detail := m.paneRender(paneDetail, m.viewDetail())

	row := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, list, detail)

	return row + "\n" + m.viewFooter()
}

func (m mainLoopModel) paneRender(p focusPane, content string) string {
	if p == m.focus {
		return focusedPaneStyle.Render(content)
	}
	return paneStyle.Render(content)
}

func (m mainLoopModel) viewSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Заметки (%d)", len(m.notes))))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("загрузка...")
		return b.String()
	}
	if len(m.notes) == 0 {
		b.WriteString("-")
		return b.String()
	}

	for i, note := range m.notes {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(fitText(noteLabel(note), sidebarWidth-4))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %-32s │ %s\n", "Название", "Обновлено"))
	b.WriteString("  " + strings.Repeat("─", 32) + "─┼─" + strings.Repeat("─", 16))
	b.WriteString("\n")

	if len(m.notes) == 0 {
		b.WriteString("  нет заметок")
		return b.String()
	}

	for i, note := range m.notes {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-32s │ %s\n",
			cursor,
			fitText(noteLabel(note), 32),
			note.UpdatedAt.Format("2006-01-02 15:04")))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m mainLoopModel) viewDetail() string {
	note, ok := m.current()
	if !ok {
		return "-"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(noteLabel(note)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("обновлено " + note.UpdatedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n")

	if strings.TrimSpace(note.Summary) != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Кратко: " + note.Summary))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fitText(note.Content, 600))

	return b.String()
}

func (m mainLoopModel) viewFooter() string {
	var b strings.Builder

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	} else if m.undoID != "" {
		b.WriteString(undoStyle.Render(m.status))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("a: новая │ e: изменить │ d: удалить │ u: отменить │ c: копировать │ s: обновить │ tab: панель │ l: выход из аккаунта │ q: выход"))
	return b.String()
}

func (m mainLoopModel) viewEdit() string {
	var b strings.Builder
	b.WriteString("Название │ [")
	b.WriteString(m.editTitle.View())
	b.WriteString("]\n\n")
	b.WriteString(m.editBody.View())
	b.WriteString("\n")

	if m.saving {
		b.WriteString("\n[Сохранение...]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	title := "НОВАЯ ЗАМЕТКА"
	if m.editID != "" {
		title = "ИЗМЕНЕНИЕ ЗАМЕТКИ"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "ctrl+s: сохранить │ tab: след. поле │ esc: отмена")
}
