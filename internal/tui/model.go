package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

const maxOptionWidth = 48

type pickerModel struct {
	ctx       context.Context
	selector  Selector
	refresher Refresher
	buildInfo models.AppBuildInfo
	copyFn    func(string) error

	state    selection.State
	cursor   int
	busy     bool
	spinner  spinner.Model
	status   string
	overlay  *errorOverlayModel
	showInfo bool
	quit     bool
}

func newPickerModel(ctx context.Context, selector Selector, refresher Refresher, info models.AppBuildInfo) pickerModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := pickerModel{
		ctx:       ctx,
		selector:  selector,
		refresher: refresher,
		buildInfo: info,
		copyFn:    clipboard.WriteAll,
		spinner:   sp,
	}
	m.setState(selector.State())

	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.setState(msg.state)
		return m, nil

	case selectDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.overlay = &errorOverlayModel{message: humanizeError(msg.err)}
			return m, nil
		}
		m.status = fmt.Sprintf("Current option: %s", msg.name)
		return m, cmdClearStatus()

	case refreshDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.overlay = &errorOverlayModel{message: humanizeError(msg.err)}
			return m, nil
		}
		m.status = "Refreshed"
		return m, cmdClearStatus()

	case copiedMsg:
		m.status = fmt.Sprintf("Copied %q", msg.text)
		return m, cmdClearStatus()

	case copyFailedMsg:
		m.status = "Copy failed: " + msg.err.Error()
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quit = true
		return m, tea.Quit
	}

	if m.overlay != nil {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.overlay = nil
		}
		return m, nil
	}

	if m.showInfo {
		if key.Matches(msg, keys.esc, keys.info) {
			m.showInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quit = true
		return m, tea.Quit

	case key.Matches(msg, keys.info):
		m.showInfo = true

	case m.busy:
		// один запрос за раз

	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.down):
		if m.cursor < len(m.state.Options)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.enter):
		if len(m.state.Options) == 0 {
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.cmdSelect(m.state.Options[m.cursor]))

	case key.Matches(msg, keys.refresh):
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.cmdRefresh())

	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy(m.selector.UniqueID())
	}

	return m, nil
}

// setState replaces the shown state and keeps the cursor on the same name
// when it is still offered.
func (m *pickerModel) setState(s selection.State) {
	var selected string
	if m.cursor < len(m.state.Options) {
		selected = m.state.Options[m.cursor]
	}

	m.state = s
	m.cursor = 0

	if i := slices.Index(s.Options, selected); selected != "" && i >= 0 {
		m.cursor = i
		return
	}
	if i := slices.Index(s.Options, s.CurrentOption); i >= 0 {
		m.cursor = i
	}
}

func (m pickerModel) cmdSelect(name string) tea.Cmd {
	return func() tea.Msg {
		return selectDoneMsg{name: name, err: m.selector.Select(m.ctx, name)}
	}
}

func (m pickerModel) cmdRefresh() tea.Cmd {
	return func() tea.Msg {
		_, err := m.refresher.Refresh(m.ctx)
		return refreshDoneMsg{err: err}
	}
}

func (m pickerModel) cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := m.copyFn(text); err != nil {
			return copyFailedMsg{err: err}
		}
		return copiedMsg{text: text}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m pickerModel) View() string {
	if m.overlay != nil {
		return appStyle.Render(m.overlay.View())
	}
	if m.showInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo, m.selector.UniqueID()))
	}

	var b strings.Builder
	if len(m.state.Options) == 0 {
		b.WriteString("No options yet. Press r to refresh.")
	}
	for i, name := range m.state.Options {
		if i > 0 {
			b.WriteString("\n")
		}

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		line := fitText(name, maxOptionWidth)
		if name == m.state.CurrentOption {
			line = currentStyle.Render(line + " *")
		}
		b.WriteString(prefix + line)
	}

	b.WriteString("\n\n")
	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " working...")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	default:
		current := m.state.CurrentOption
		if current == "" {
			current = "-"
		}
		b.WriteString("Current: " + current)
	}

	hotKeys := "↑/↓ move • enter select • r refresh • c copy id • i about • q quit"
	return appStyle.Render(renderPage("KLOKKU", b.String(), hotKeys))
}
