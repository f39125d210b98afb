package domain

import "time"

// RunSource tells where a run's triangles came from.
type RunSource string

const (
	SourceCLI   RunSource = "cli"
	SourceBatch RunSource = "batch"
	SourceJSON  RunSource = "json"
	SourceTUI   RunSource = "tui"
)

// RunArtifact is a persisted set of calculations.
type RunArtifact struct {
	Source    RunSource `json:"source"`
	BatchName string    `json:"batch_name,omitempty"`
	BatchPath string    `json:"batch_path,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Results []Calculation `json:"results"`
}

// Failures counts results that are not a finite area.
func (r RunArtifact) Failures() int {
	n := 0
	for _, c := range r.Results {
		if !c.Valid {
			n++
		}
	}
	return n
}

// RunIndexEntry is one line of the run index.
type RunIndexEntry struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Source    RunSource `json:"source"`
	BatchName string    `json:"batch_name,omitempty"`
	Count     int       `json:"count"`
	Failures  int       `json:"failures"`
	StartedAt time.Time `json:"started_at"`
}
