package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-klokku-bridge/internal/coordinator"
	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

type stubSelector struct {
	state    selection.State
	selected []string
	err      error
}

func (s *stubSelector) State() selection.State { return s.state }

func (s *stubSelector) Select(_ context.Context, name string) error {
	s.selected = append(s.selected, name)
	return s.err
}

func (s *stubSelector) Subscribe(func(selection.State)) func() { return func() {} }

func (s *stubSelector) UniqueID() string { return "klokku_weekly_plan_select_7" }

type stubRefresher struct {
	calls int
	err   error
}

func (r *stubRefresher) Refresh(context.Context) (models.Snapshot, error) {
	r.calls++
	return models.Snapshot{}, r.err
}

func newTestModel(sel *stubSelector, ref *stubRefresher) pickerModel {
	return newPickerModel(context.Background(), sel, ref, models.NewAppBuildInfo("1.0.0", "", ""))
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func update(t *testing.T, m pickerModel, msg tea.Msg) (pickerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(pickerModel)
	require.True(t, ok)
	return pm, cmd
}

// runCmd выполняет команду и возвращает первое сообщение, не являющееся
// тиком спиннера.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			switch got := c().(type) {
			case selectDoneMsg, refreshDoneMsg:
				return got
			}
		}
		t.Fatal("batch has no result message")
	}
	return msg
}

func TestNewPickerModel_CursorOnCurrent(t *testing.T) {
	sel := &stubSelector{state: selection.State{CurrentOption: "Reading", Options: []string{"Work", "Reading"}}}

	m := newTestModel(sel, &stubRefresher{})

	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "Reading *")
}

func TestUpdate_Navigation(t *testing.T) {
	sel := &stubSelector{state: selection.State{Options: []string{"Work", "Reading", "Sleep"}}}
	m := newTestModel(sel, &stubRefresher{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, runeKey("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "курсор не выходит за конец списка")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, runeKey("k"))
	m, _ = update(t, m, runeKey("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_SelectSuccess(t *testing.T) {
	sel := &stubSelector{state: selection.State{CurrentOption: "Work", Options: []string{"Work", "Reading"}}}
	m := newTestModel(sel, &stubRefresher{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.busy)

	msg := runCmd(t, cmd)
	assert.Equal(t, []string{"Reading"}, sel.selected)

	m, _ = update(t, m, msg)
	assert.False(t, m.busy)
	assert.Nil(t, m.overlay)
	assert.Contains(t, m.status, "Reading")
}

func TestUpdate_SelectFailureShowsOverlay(t *testing.T) {
	sel := &stubSelector{
		state: selection.State{Options: []string{"Work"}},
		err:   selection.ErrSelectionNotFound,
	}
	m := newTestModel(sel, &stubRefresher{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, runCmd(t, cmd))

	require.NotNil(t, m.overlay)
	assert.Contains(t, m.View(), "no longer available")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.overlay)
}

func TestUpdate_EnterWithoutOptions(t *testing.T) {
	sel := &stubSelector{state: selection.State{Options: []string{}}}
	m := newTestModel(sel, &stubRefresher{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Contains(t, m.View(), "No options yet")
}

func TestUpdate_Refresh(t *testing.T) {
	ref := &stubRefresher{err: &coordinator.FetchError{Reason: "failed to fetch budgets", Err: errors.New("dial tcp: connection refused")}}
	m := newTestModel(&stubSelector{}, ref)

	m, cmd := update(t, m, runeKey("r"))
	m, _ = update(t, m, runCmd(t, cmd))

	assert.Equal(t, 1, ref.calls)
	require.NotNil(t, m.overlay)
	assert.Contains(t, m.overlay.message, "unreachable")
}

func TestUpdate_BusyIgnoresKeys(t *testing.T) {
	sel := &stubSelector{state: selection.State{Options: []string{"Work", "Reading"}}}
	m := newTestModel(sel, &stubRefresher{})
	m.busy = true

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_StateKeepsCursorOnName(t *testing.T) {
	sel := &stubSelector{state: selection.State{Options: []string{"Work", "Reading"}}}
	m := newTestModel(sel, &stubRefresher{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m, _ = update(t, m, stateMsg{state: selection.State{Options: []string{"Sleep", "Work", "Reading"}}})
	assert.Equal(t, 2, m.cursor)

	m, _ = update(t, m, stateMsg{state: selection.State{CurrentOption: "Sleep", Options: []string{"Sleep"}}})
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_Copy(t *testing.T) {
	m := newTestModel(&stubSelector{}, &stubRefresher{})
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := update(t, m, runeKey("c"))
	m, _ = update(t, m, runCmd(t, cmd))

	assert.Equal(t, "klokku_weekly_plan_select_7", copied)
	assert.Contains(t, m.status, "Copied")

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	m, cmd = update(t, m, runeKey("c"))
	m, _ = update(t, m, runCmd(t, cmd))
	assert.Contains(t, m.status, "no clipboard")

	m, _ = update(t, m, clearStatusMsg{})
	assert.Empty(t, m.status)
}

func TestUpdate_InfoWindow(t *testing.T) {
	m := newTestModel(&stubSelector{}, &stubRefresher{})

	m, _ = update(t, m, runeKey("i"))
	assert.Contains(t, m.View(), "Version: 1.0.0")
	assert.Contains(t, m.View(), "Commit: N/A")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showInfo)
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(&stubSelector{}, &stubRefresher{})

	m, cmd := update(t, m, runeKey("q"))

	assert.True(t, m.quit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not found", err: selection.ErrSelectionNotFound, want: "no longer available"},
		{name: "auth", err: coordinator.ErrAuthenticationFailed, want: "rejected the credential"},
		{name: "timeout", err: errors.New("Get \"http://x\": context deadline exceeded"), want: "unreachable"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, humanizeError(tt.err), tt.want)
		})
	}
}
