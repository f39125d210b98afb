package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/infra/promfmt"
)

func printCalculation(w io.Writer, c domain.Calculation, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"run_id": runID,
			"result": c,
		})
	case "prom":
		return promfmt.Write(w, []domain.Calculation{c})
	case "pretty", "":
		printPrettyCalculation(w, c, runID)
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func printRun(w io.Writer, run domain.RunArtifact, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"run_id": runID,
			"run":    run,
		})
	case "prom":
		return promfmt.Write(w, run.Results)
	case "pretty", "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported format %q (expected pretty|json|prom)", format)
}

func printPrettyCalculation(w io.Writer, c domain.Calculation, runID string) {
	if c.Name != "" {
		fmt.Fprintf(w, "Name:       %s\n", c.Name)
	}
	fmt.Fprintf(w, "Triangle:   %s\n", c.Triangle)
	fmt.Fprintf(w, "Perimeter:  %d\n", c.Perimeter)
	fmt.Fprintf(w, "Area:       %s\n", areaText(c))
	fmt.Fprintf(w, "Mode:       %s\n", modeText(c.Mode))
	if runID != "" {
		fmt.Fprintf(w, "Run ID:     %s\n", runID)
	}
}

func printPrettyRun(w io.Writer, run domain.RunArtifact, runID string) {
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Batch:      %s\n", run.BatchName)
	fmt.Fprintf(w, "Started:    %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:   %s\n", total)
	if runID != "" {
		fmt.Fprintf(w, "Run ID:     %s\n", runID)
	}
	fmt.Fprintln(w)

	for _, c := range run.Results {
		status := "OK"
		if !c.Valid {
			status = "FAIL"
		}
		fmt.Fprintf(w, "- [%s] %s %s\n", status, c.Name, c.Triangle)
		fmt.Fprintf(w, "  perimeter: %d\n", c.Perimeter)
		fmt.Fprintf(w, "  area:      %s\n", areaText(c))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d triangle(s), %d invalid\n", len(run.Results), run.Failures())
}

// areaText renders the area, flagging NaN and strict-mode rejections.
func areaText(c domain.Calculation) string {
	if c.Error != "" {
		return "NaN (rejected: " + c.Error + ")"
	}
	s := strconv.FormatFloat(c.Area, 'g', -1, 64)
	if !c.Valid {
		return s + " (invalid triangle)"
	}
	return s
}

func modeText(m domain.SemiPerimeterMode) string {
	if m == domain.ModeExact {
		return "exact semi-perimeter"
	}
	return "truncated semi-perimeter (integer division)"
}
