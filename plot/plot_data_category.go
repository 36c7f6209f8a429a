package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// dataCategoryForGraph серия {name, value} категориального представления
type dataCategoryForGraph struct {
	labels    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataCategoryForGraph(counts []models.CategoryCount, nameYAxis, nameGraph string) dataCategoryForGraph {
	d := dataCategoryForGraph{
		labels:    make([]string, 0, len(counts)),
		yValues:   make([]float64, 0, len(counts)),
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
	for _, c := range counts {
		d.labels = append(d.labels, c.Name)
		d.yValues = append(d.yValues, float64(c.Value))
	}
	return d
}

func (d dataCategoryForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataCategoryForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataCategoryForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataCategoryForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.labels), minBarWidth)
}

func (d dataCategoryForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.labels))
	for i, label := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}
