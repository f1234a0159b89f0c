package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/intima/internal/models"
	"github.com/julianstephens/intima/internal/storage/sqlite"
	"github.com/julianstephens/intima/internal/tui/components/loglist"
)

func setupTestModel(t *testing.T) (Model, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "intima.db"), sqlite.WithPasswordCost(bcrypt.MinCost))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := t.Context()
	userID, err := store.CreateUser(ctx, "alice", "pw")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	otherID, err := store.CreateUser(ctx, "bob", "pw")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second"} {
		if _, err := store.CreateLog(ctx, userID, content, base.Add(time.Duration(i)*time.Hour), nil); err != nil {
			t.Fatalf("failed to create log: %v", err)
		}
	}
	if _, err := store.CreateLog(ctx, otherID, "not alice's", base, nil); err != nil {
		t.Fatalf("failed to create log: %v", err)
	}

	m := NewModel(store, models.User{ID: userID, Username: "alice"})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, m.Init()())
	return m, store
}

// update applies msg and returns the resulting model
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// updateRun applies msg and feeds the produced command's message back in
func updateRun(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out := cmd(); out != nil {
			m = update(t, m, out)
		}
	}
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelLoadsOnlyTheUsersEntries(t *testing.T) {
	m, _ := setupTestModel(t)

	items := m.logList.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries for alice, got %d", len(items))
	}
	if first := items[0].(loglist.Item); first.Log.Content != "second" {
		t.Errorf("expected newest entry first, got %q", first.Log.Content)
	}
}

func TestTabSwitching(t *testing.T) {
	m, _ := setupTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateEmotions {
		t.Fatalf("state after tab = %v, want StateEmotions", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateLogs {
		t.Fatalf("state after second tab = %v, want StateLogs", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateEmotions {
		t.Fatalf("state after shift+tab = %v, want StateEmotions", m.state)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, store := setupTestModel(t)
	selected := m.logList.Items()[0].(loglist.Item).Log

	m = updateRun(t, m, keyPress('d'))
	if m.state != StateConfirmDelete || m.logToDeleteID != selected.ID {
		t.Fatalf("expected delete confirmation for %d, got state %v id %d", selected.ID, m.state, m.logToDeleteID)
	}

	m = update(t, m, keyPress('n'))
	if m.state != StateLogs {
		t.Fatalf("state after cancel = %v, want StateLogs", m.state)
	}
	if l, _ := store.GetLogByID(t.Context(), selected.ID); l == nil {
		t.Fatal("entry deleted despite cancel")
	}

	m = updateRun(t, m, keyPress('d'))
	m = updateRun(t, m, keyPress('y'))
	if m.err != nil {
		t.Fatalf("delete failed: %v", m.err)
	}
	if l, _ := store.GetLogByID(t.Context(), selected.ID); l != nil {
		t.Fatal("entry still present after confirmed delete")
	}

	// opDoneMsg triggers a reload; apply it
	m = update(t, m, m.loadJournal()())
	if len(m.logList.Items()) != 1 {
		t.Errorf("expected 1 entry after delete, got %d", len(m.logList.Items()))
	}
}

func TestCreateLogWithEmotion(t *testing.T) {
	m, store := setupTestModel(t)

	msg := m.createLog("went for a run", "energized")()
	done, ok := msg.(opDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("createLog returned %#v", msg)
	}
	m = update(t, m, done)
	m = update(t, m, m.loadJournal()())

	items := m.logList.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(items))
	}
	var created loglist.Item
	for _, it := range items {
		if li := it.(loglist.Item); li.Log.Content == "went for a run" {
			created = li
		}
	}
	if created.Emotion != "energized" || !created.Log.HasEmotion() {
		t.Fatalf("new entry not linked to its emotion: %+v", created)
	}

	e, err := store.GetEmotionByID(t.Context(), *created.Log.EmotionID)
	if err != nil || e == nil || e.LogID == nil || *e.LogID != created.Log.ID {
		t.Errorf("emotion not attached to entry: %+v, %v", e, err)
	}
	if len(m.emotionList.Items()) != 1 {
		t.Errorf("expected 1 emotion in the emotions tab, got %d", len(m.emotionList.Items()))
	}
}

func TestUpdateLogKeepsEmotion(t *testing.T) {
	m, store := setupTestModel(t)
	ctx := t.Context()

	l := m.logList.Items()[0].(loglist.Item).Log
	emotionID, err := store.CreateEmotion(ctx, l.UserID, &l.ID, "tired")
	if err != nil {
		t.Fatal(err)
	}
	l.EmotionID = &emotionID
	if _, err := store.UpdateLogByID(ctx, l.ID, l.Content, l.EmotionID); err != nil {
		t.Fatal(err)
	}

	if done := m.updateLog(l, "rewritten")().(opDoneMsg); done.err != nil {
		t.Fatalf("updateLog failed: %v", done.err)
	}

	got, err := store.GetLogByID(ctx, l.ID)
	if err != nil || got == nil {
		t.Fatalf("GetLogByID = %+v, %v", got, err)
	}
	if got.Content != "rewritten" || got.EmotionID == nil || *got.EmotionID != emotionID {
		t.Errorf("unexpected entry after edit: %+v", got)
	}
}

func TestEscapeClosesForm(t *testing.T) {
	m, _ := setupTestModel(t)

	m = updateRun(t, m, keyPress('a'))
	if m.state != StateEditing || m.form == nil {
		t.Fatalf("expected the entry form, got state %v", m.state)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateLogs || m.form != nil {
		t.Errorf("expected form closed, got state %v", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t)

	next, cmd := m.Update(keyPress('q'))
	if !next.(Model).quitting || cmd == nil {
		t.Fatal("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
