// Package promfmt renders calculations in the Prometheus text exposition
// format, suitable for a node_exporter textfile collector.
package promfmt

import (
	"io"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/aalvaropc/heron/internal/domain"
)

const (
	metricPerimeter = "triangle_perimeter"
	metricArea      = "triangle_area"
	metricValid     = "triangle_valid"
)

// Write emits one gauge family per measurement. Each calculation becomes a
// sample labelled by name and semi-perimeter mode. NaN areas are kept as NaN.
func Write(w io.Writer, results []domain.Calculation) error {
	families := []*dto.MetricFamily{
		newFamily(metricPerimeter, "Triangle perimeter (sum of the three sides)."),
		newFamily(metricArea, "Triangle area from Heron's formula."),
		newFamily(metricValid, "1 if the computed area is a finite number, else 0."),
	}

	for i, c := range results {
		labels := labelsFor(i, c)
		valid := 0.0
		if c.Valid {
			valid = 1
		}
		families[0].Metric = append(families[0].Metric, gauge(labels, float64(c.Perimeter)))
		families[1].Metric = append(families[1].Metric, gauge(labels, c.Area))
		families[2].Metric = append(families[2].Metric, gauge(labels, valid))
	}

	for _, mf := range families {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func newFamily(name, help string) *dto.MetricFamily {
	n, h := name, help
	return &dto.MetricFamily{
		Name: &n,
		Help: &h,
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func labelsFor(i int, c domain.Calculation) []*dto.LabelPair {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "triangle-" + strconv.Itoa(i+1)
	}
	mode := string(c.Mode)
	if mode == "" {
		mode = string(domain.ModeTruncate)
	}
	return []*dto.LabelPair{
		label("mode", mode),
		label("name", name),
	}
}

func label(name, value string) *dto.LabelPair {
	n, v := name, value
	return &dto.LabelPair{Name: &n, Value: &v}
}

func gauge(labels []*dto.LabelPair, v float64) *dto.Metric {
	val := v
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: &val},
	}
}
