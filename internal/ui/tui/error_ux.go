package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/heron/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error into a short status line.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace not found"
			}
			if strings.Contains(oe.Op, "yamlbatch") {
				return "Batch not found"
			}
			return "Not found"

		case domain.KindInvalidTriangle:
			return "Not a valid triangle"

		case domain.KindInvalidInput:
			if msg := inputDetail(oe.Err); msg != "" {
				return msg
			}
			return "Invalid input"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		case domain.KindExecution:
			return "Could not save (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

// inputDetail strips the sentinel prefix from an invalid-input cause.
func inputDetail(err error) string {
	if err == nil {
		return ""
	}
	s := strings.TrimSpace(err.Error())
	s = strings.TrimPrefix(s, domain.ErrInvalidInput.Error()+": ")
	s = strings.TrimSuffix(s, ": "+domain.ErrInvalidInput.Error())
	if s == "" || s == domain.ErrInvalidInput.Error() {
		return ""
	}
	return s
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
