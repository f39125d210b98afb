package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicToast = "Unexpected error (see logs)"

// safeModel keeps the program alive when the calculator model panics: the
// panic is logged with its stack and the model falls back to the form.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.update", r)
			s.m.scr = screenCalc
			s.m.saving = false
			s.m.toast = panicToast
			tm, cmd = s, nil
		}
	}()

	next, c := s.m.Update(msg)
	switch v := next.(type) {
	case model:
		s.m = v
	case safeModel:
		s = v
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = panicToast
		}
	}()
	return s.m.View()
}

func (s safeModel) logPanic(where string, r any) {
	s.log.Error("panic.recovered",
		"where", where,
		"screen", int(s.m.scr),
		"focus", s.m.focus,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = safeModel{}
