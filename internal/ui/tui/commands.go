package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/heron/internal/domain"
)

const saveTimeout = 10 * time.Second

func cmdSaveCalculation(deps Deps, t domain.Triangle) tea.Cmd {
	return func() tea.Msg {
		if deps.Compute == nil {
			return calcSavedMsg{err: errors.New("compute use case is nil")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		calc, id, err := deps.Compute.Execute(ctx, "", t)
		return calcSavedMsg{calc: calc, id: id, err: err}
	}
}

func cmdLoadHistory(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.History == nil {
			return historyLoadedMsg{err: errors.New("history store is nil")}
		}
		runs, err := deps.History.ListRuns()
		return historyLoadedMsg{runs: runs, err: err}
	}
}
