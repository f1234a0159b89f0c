package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/intima/internal/models"
	"github.com/julianstephens/intima/internal/storage"
	"github.com/julianstephens/intima/internal/tui/components/emotionlist"
	"github.com/julianstephens/intima/internal/tui/components/loglist"
)

type SessionState int

const (
	StateLogs SessionState = iota
	StateEmotions
	StateEditing
	StateConfirmDelete
)

// tabCount is the number of browsable tabs; states after them are overlays
const tabCount = 2

type LogFormModel struct {
	Content string
	Emotion string
}

type Model struct {
	store         storage.Provider
	user          models.User
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	logList       loglist.Model
	emotionList   emotionlist.Model
	form          *huh.Form
	logForm       *LogFormModel
	editingLog    *models.Log
	logToDeleteID int64
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

// NewModel opens a journal browser for user. Data is loaded by Init.
func NewModel(store storage.Provider, user models.User) Model {
	return Model{
		store:       store,
		user:        user,
		state:       StateLogs,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		logList:     loglist.New(0, 0),
		emotionList: emotionlist.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadJournal()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateLogs:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateLogs {
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}
