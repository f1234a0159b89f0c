package emotionlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/intima/internal/models"
)

type Item struct {
	Emotion models.Emotion
}

func (i Item) Title() string { return i.Emotion.Type }

func (i Item) Description() string {
	if i.Emotion.LogID == nil {
		return "not attached to an entry"
	}
	return fmt.Sprintf("entry #%d", *i.Emotion.LogID)
}

func (i Item) FilterValue() string { return i.Emotion.Type }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Emotions"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("emotion", "emotions")
	return Model{list: l}
}

func (m *Model) SetEmotions(emotions []models.Emotion) {
	items := make([]list.Item, len(emotions))
	for i, e := range emotions {
		items[i] = Item{Emotion: e}
	}
	m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
