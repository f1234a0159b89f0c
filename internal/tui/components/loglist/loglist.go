package loglist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/intima/internal/constants"
	"github.com/julianstephens/intima/internal/models"
)

type AddLogMsg struct{}

type EditLogMsg struct {
	Log models.Log
}

type DeleteLogMsg struct {
	ID int64
}

type Item struct {
	Log     models.Log
	Emotion string
}

func (i Item) Title() string {
	title := i.Log.Date.Local().Format(constants.DateTimeFormat)
	if i.Emotion != "" {
		title += " · " + i.Emotion
	}
	return title
}

func (i Item) Description() string {
	desc := strings.Join(strings.Fields(i.Log.Content), " ")
	if desc == "" {
		return "(empty)"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Log.Content + " " + i.Emotion }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new entry"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("entry", "entries")

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

// SetLogs shows logs newest first, labelled with the type of their linked emotion
func (m *Model) SetLogs(logs []models.Log, emotions map[int64]string) {
	items := make([]list.Item, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		l := logs[i]
		item := Item{Log: l}
		if l.HasEmotion() {
			item.Emotion = emotions[*l.EmotionID]
		}
		items = append(items, item)
	}
	m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}

// Filtering reports whether the user is typing a filter, when keys belong to the list
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddLogMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditLogMsg{Log: item.Log} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteLogMsg{ID: item.Log.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
