package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// dataTimelineForGraph периоды уже отсортированы по ключу, подписи берутся как есть
type dataTimelineForGraph struct {
	labels    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataTimelineForGraph(buckets []models.TimeBucketCount, nameYAxis, nameGraph string) dataTimelineForGraph {
	d := dataTimelineForGraph{
		labels:    make([]string, 0, len(buckets)),
		yValues:   make([]float64, 0, len(buckets)),
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
	for _, b := range buckets {
		d.labels = append(d.labels, b.Name)
		d.yValues = append(d.yValues, float64(b.Value))
	}
	return d
}

func (d dataTimelineForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataTimelineForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataTimelineForGraph) getYValues() []float64 {
	return d.yValues
}

// xValues порядковые номера периодов для линейного графика
func (d dataTimelineForGraph) xValues() []float64 {
	x := make([]float64, len(d.labels))
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

func (d dataTimelineForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.labels), minBarWidth)
}

func (d dataTimelineForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.labels))
	for i, label := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor:         drawing.ColorLime.WithAlpha(40),
				TextVerticalAlign: 100,
			},
		})
	}
	return bars
}
