package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/heron/internal/domain"
)

type screen int

const (
	screenCalc screen = iota
	screenHistory
)

var sideLabels = [3]string{"side_ab", "side_bc", "side_ca"}

type historyItem struct {
	entry domain.RunIndexEntry
}

func (h historyItem) Title() string {
	label := h.entry.BatchName
	if label == "" {
		label = string(h.entry.Source)
	}
	return h.entry.StartedAt.Local().Format("2006-01-02 15:04:05") + "  " + label
}

func (h historyItem) Description() string {
	return fmt.Sprintf("%d triangle(s), %d invalid • %s", h.entry.Count, h.entry.Failures, h.entry.ID)
}

func (h historyItem) FilterValue() string { return h.entry.ID + " " + h.entry.BatchName }

type model struct {
	theme Theme
	deps  Deps

	scr    screen
	inputs [3]textinput.Model
	focus  int

	// Live preview of the current inputs.
	preview    domain.Calculation
	previewErr error
	complete   bool

	saving  bool
	lastID  string
	toast   string
	history list.Model
}

func Run(deps Deps) error {
	p := tea.NewProgram(wrapSafe(newModel(deps), deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	m := model{
		theme: DefaultTheme(),
		deps:  deps,
		scr:   screenCalc,
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = sideLabels[i]
		ti.Prompt = fmt.Sprintf("%-8s ", sideLabels[i])
		ti.CharLimit = 11
		ti.Width = 14
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "History"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	m.history = l

	return m
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.history.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case calcSavedMsg:
		m.saving = false
		m.lastID = msg.id
		switch {
		case domain.IsKind(msg.err, domain.KindInvalidTriangle):
			m.toast = "Saved as rejected: " + userMessage(msg.err)
		case msg.err != nil:
			m.toast = userMessage(msg.err)
		case msg.id != "":
			m.toast = "Saved " + msg.id
		default:
			m.toast = "Computed (history disabled)"
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.runs))
		for _, r := range msg.runs {
			items = append(items, historyItem{entry: r})
		}
		cmd := m.history.SetItems(items)
		m.scr = screenHistory
		m.toast = ""
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.scr == screenHistory {
			return m.updateHistory(msg)
		}
		return m.updateCalc(msg)
	}

	if m.scr == screenHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
	return m.updateFocused(msg)
}

func (m model) updateCalc(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "down":
		return m.setFocus((m.focus + 1) % len(m.inputs))

	case "shift+tab", "up":
		return m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))

	case "enter":
		if m.saving {
			return m, nil
		}
		if !m.complete {
			m.toast = userMessage(m.previewErr)
			if m.previewErr == nil {
				m.toast = "Enter all three sides"
			}
			return m, nil
		}
		if m.deps.Compute == nil {
			m.toast = "Saving is disabled"
			return m, nil
		}
		m.saving = true
		m.toast = "Saving…"
		return m, cmdSaveCalculation(m.deps, m.preview.Triangle)

	case "ctrl+r":
		if m.deps.History == nil {
			m.toast = "No workspace: history is unavailable"
			return m, nil
		}
		return m, cmdLoadHistory(m.deps)
	}

	return m.updateFocused(msg)
}

func (m model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.history.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "b", "q":
			m.scr = screenCalc
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m, m.inputs[m.focus].Focus()
}

func (m model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.recompute()
	return m, cmd
}

// recompute refreshes the live preview from the current inputs.
func (m *model) recompute() {
	m.complete = false
	m.previewErr = nil

	var sides [3]int
	for i, in := range m.inputs {
		v := strings.TrimSpace(in.Value())
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			m.previewErr = domain.InvalidInput("tui.parse_sides", "%s %q is not an integer", sideLabels[i], v)
			return
		}
		if !domain.SideInRange(n) {
			m.previewErr = domain.InvalidInput("tui.parse_sides", "%s %d is out of range (max magnitude %d)", sideLabels[i], n, domain.MaxSide)
			return
		}
		sides[i] = n
	}

	m.preview, m.previewErr = m.deps.Calculator.Compute("", domain.NewTriangle(sides[0], sides[1], sides[2]))
	m.complete = true
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("Heron") + "\n" +
		m.theme.Subtitle.Render("Triangle perimeter and area") + "\n"

	var banner string
	if m.deps.WorkspaceRoot != "" {
		banner = m.theme.Help.Render("Workspace: " + m.deps.WorkspaceRoot)
	} else {
		banner = m.theme.Help.Render("No workspace: results are not saved (triangle-area init)")
	}

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Subtitle.Render(clampString(m.toast, 72))
	}

	switch m.scr {
	case screenCalc:
		var form strings.Builder
		for i := range m.inputs {
			form.WriteString(m.inputs[i].View())
			form.WriteString("\n")
		}
		form.WriteString("\n")
		form.WriteString(renderPreview(m.theme, m.preview, m.previewErr, m.complete))

		help := m.theme.Help.Render("tab/↑/↓ move • enter save • ctrl+r history • esc quit")
		return wrap.Render(header + "\n" + banner + "\n\n" + m.theme.Card.Render(form.String()) + toast + "\n" + help)

	case screenHistory:
		help := m.theme.Help.Render("↑/↓ navigate • / search • esc back")
		return wrap.Render(header + "\n" + banner + "\n\n" + m.theme.Card.Render(m.history.View()) + toast + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
