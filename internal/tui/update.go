package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/intima/internal/cli"
	"github.com/julianstephens/intima/internal/models"
	"github.com/julianstephens/intima/internal/tui/components/loglist"
)

// chromeHeight is the space taken by the tab bar, status line and help
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.logList.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.emotionList.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		return m, nil

	case journalLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.logList.SetLogs(msg.logs, cli.EmotionTypes(msg.emotions))
		m.emotionList.SetEmotions(msg.emotions)
		return m, nil

	case opDoneMsg:
		m.err = msg.err
		m.status = msg.status
		return m, m.loadJournal()

	case loglist.AddLogMsg:
		cmd := m.openLogForm(nil)
		return m, cmd

	case loglist.EditLogMsg:
		l := msg.Log
		cmd := m.openLogForm(&l)
		return m, cmd

	case loglist.DeleteLogMsg:
		m.logToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateLogs:
		m.logList, cmd = m.logList.Update(msg)
	case StateEmotions:
		m.emotionList, cmd = m.emotionList.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case StateLogs:
		return m.logList.Filtering()
	case StateEmotions:
		return m.emotionList.Filtering()
	}
	return false
}

// openLogForm shows the entry form. A nil log creates a new entry.
func (m *Model) openLogForm(l *models.Log) tea.Cmd {
	m.editingLog = l
	m.logForm = &LogFormModel{}
	m.status = ""
	m.err = nil

	content := huh.NewText().
		Title("Entry").
		Validate(func(s string) error {
			if s == "" {
				return errors.New("entry cannot be empty")
			}
			return nil
		}).
		Value(&m.logForm.Content)

	if l != nil {
		m.logForm.Content = l.Content
		m.form = huh.NewForm(huh.NewGroup(content))
	} else {
		m.form = huh.NewForm(huh.NewGroup(
			content,
			huh.NewInput().
				Title("How are you feeling?").
				Description("Optional, e.g. calm or anxious").
				Value(&m.logForm.Emotion),
		))
	}

	m.previousState = m.state
	m.state = StateEditing
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		values, editing := *m.logForm, m.editingLog
		m.closeForm()
		if editing != nil {
			return m, m.updateLog(*editing, values.Content)
		}
		return m, m.createLog(values.Content, values.Emotion)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.logForm = nil
	m.editingLog = nil
	m.state = m.previousState
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		id := m.logToDeleteID
		m.logToDeleteID = 0
		m.state = m.previousState
		return m, m.deleteLog(id)
	case key.Matches(keyMsg, m.keys.Cancel):
		m.logToDeleteID = 0
		m.state = m.previousState
	}
	return m, nil
}
