package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	errs "github.com/julianstephens/intima/internal/errors"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateLogs:
		content = docStyle.Render(m.logList.View())
	case StateEmotions:
		content = docStyle.Render(m.emotionList.View())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Journal", "Emotions"} {
		active := m.state == SessionState(i) ||
			(m.state >= tabCount && m.previousState == SessionState(i))
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, userStyle.Render(m.user.Username))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render(errs.Format(m.err))
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete entry %d?", m.logToDeleteID)),
			"Emotions recorded against it are deleted too.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
