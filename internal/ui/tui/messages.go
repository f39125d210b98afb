package tui

import "github.com/aalvaropc/heron/internal/domain"

type calcSavedMsg struct {
	calc domain.Calculation
	id   string
	err  error
}

type historyLoadedMsg struct {
	runs []domain.RunIndexEntry
	err  error
}
