package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/intima/internal/models"
)

// opTimeout bounds each store call made from the UI
const opTimeout = 10 * time.Second

type journalLoadedMsg struct {
	logs     []models.Log
	emotions []models.Emotion
	err      error
}

// opDoneMsg reports the outcome of a write; the journal is reloaded afterwards
type opDoneMsg struct {
	status string
	err    error
}

func (m Model) loadJournal() tea.Cmd {
	store, userID := m.store, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		logs, err := store.GetLogsByUserID(ctx, userID)
		if err != nil {
			return journalLoadedMsg{err: err}
		}
		all, err := store.GetAllEmotions(ctx)
		if err != nil {
			return journalLoadedMsg{err: err}
		}

		var emotions []models.Emotion
		for _, e := range all {
			if e.UserID == userID {
				emotions = append(emotions, e)
			}
		}
		return journalLoadedMsg{logs: logs, emotions: emotions}
	}
}

// createLog saves a new entry and, when an emotion is given, records it against the entry
func (m Model) createLog(content, emotion string) tea.Cmd {
	store, userID := m.store, m.user.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		id, err := store.CreateLog(ctx, userID, content, time.Now(), nil)
		if err != nil {
			return opDoneMsg{err: err}
		}
		if emotion = strings.TrimSpace(emotion); emotion != "" {
			emotionID, err := store.CreateEmotion(ctx, userID, &id, emotion)
			if err != nil {
				return opDoneMsg{err: err}
			}
			if _, err := store.UpdateLogByID(ctx, id, content, &emotionID); err != nil {
				return opDoneMsg{err: err}
			}
		}
		return opDoneMsg{status: fmt.Sprintf("Saved entry %d", id)}
	}
}

func (m Model) updateLog(l models.Log, content string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		ok, err := store.UpdateLogByID(ctx, l.ID, content, l.EmotionID)
		if err != nil {
			return opDoneMsg{err: err}
		}
		if !ok {
			return opDoneMsg{err: fmt.Errorf("entry %d no longer exists", l.ID)}
		}
		return opDoneMsg{status: fmt.Sprintf("Updated entry %d", l.ID)}
	}
}

func (m Model) deleteLog(id int64) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		ok, err := store.DeleteLogByID(ctx, id)
		if err != nil {
			return opDoneMsg{err: err}
		}
		if !ok {
			return opDoneMsg{err: fmt.Errorf("entry %d no longer exists", id)}
		}
		return opDoneMsg{status: fmt.Sprintf("Deleted entry %d", id)}
	}
}
