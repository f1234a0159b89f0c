package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/intima/internal/constants"
	"github.com/julianstephens/intima/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// maxContentWidth keeps long journal entries from blowing up list tables
const maxContentWidth = 60

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func RenderUsers(users []models.User) string {
	t := newTable("ID", "USERNAME")
	for _, u := range users {
		t.Row(strconv.FormatInt(u.ID, 10), u.Username)
	}
	return t.Render()
}

// RenderLogs prints logs with the type of their linked emotion, looked up in emotions
func RenderLogs(logs []models.Log, emotions map[int64]string) string {
	t := newTable("ID", "USER", "DATE", "EMOTION", "CONTENT")
	for _, l := range logs {
		emotion := "-"
		if l.HasEmotion() {
			emotion = emotions[*l.EmotionID]
			if emotion == "" {
				emotion = "#" + strconv.FormatInt(*l.EmotionID, 10)
			}
		}
		t.Row(
			strconv.FormatInt(l.ID, 10),
			strconv.FormatInt(l.UserID, 10),
			l.Date.Local().Format(constants.DateTimeFormat),
			emotion,
			Truncate(l.Content, maxContentWidth),
		)
	}
	return t.Render()
}

func RenderEmotions(emotions []models.Emotion) string {
	t := newTable("ID", "USER", "LOG", "TYPE")
	for _, e := range emotions {
		logID := "-"
		if e.LogID != nil {
			logID = strconv.FormatInt(*e.LogID, 10)
		}
		t.Row(strconv.FormatInt(e.ID, 10), strconv.FormatInt(e.UserID, 10), logID, e.Type)
	}
	return t.Render()
}

// EmotionTypes indexes emotion types by id
func EmotionTypes(emotions []models.Emotion) map[int64]string {
	types := make(map[int64]string, len(emotions))
	for _, e := range emotions {
		types[e.ID] = e.Type
	}
	return types
}

// Truncate shortens s to at most n runes on a single line
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
