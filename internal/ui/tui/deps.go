package tui

import (
	"log/slog"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
	"github.com/aalvaropc/heron/internal/usecase"
)

type Deps struct {
	// Compute saves a calculation on enter; nil disables saving.
	Compute *usecase.ComputeTriangle
	// History lists saved runs; nil when running outside a workspace.
	History ports.ArtifactStore

	// Calculator drives the live preview while typing.
	Calculator domain.Calculator

	WorkspaceRoot string

	Logger *slog.Logger
	Debug  bool
}
