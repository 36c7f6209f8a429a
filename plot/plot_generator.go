package plot

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// ErrNoData пустую серию или серию из нулей go-chart нарисовать не может
var ErrNoData = errors.New("nothing to draw")

func DrawCategoryBar(title string, counts []models.CategoryCount) ([]byte, error) {
	return DrawPlotBar(NewDataCategoryForGraph(counts, "Leads", title))
}

func DrawTimelineBar(title string, buckets []models.TimeBucketCount) ([]byte, error) {
	return DrawPlotBar(NewDataTimelineForGraph(buckets, "Leads", title))
}

// DrawTrendLine линия с заливкой по периодам временного ряда
func DrawTrendLine(title string, buckets []models.TimeBucketCount) ([]byte, error) {
	data := NewDataTimelineForGraph(buckets, "Leads", title)
	maxY := findMaxValue(data.getYValues())
	if len(buckets) < 2 || maxY <= 0 {
		// для одной точки линия вырождается
		return DrawPlotBar(data)
	}

	xValues := data.xValues()
	series := &chart.ContinuousSeries{
		XValues: xValues,
		YValues: data.getYValues(),
		Style: chart.Style{
			StrokeColor: drawing.ColorBlue,
			FillColor:   drawing.ColorBlue.WithAlpha(60),
			StrokeWidth: 2,
		},
	}

	ticks := make([]chart.Tick, 0, len(xValues))
	for i, x := range xValues {
		ticks = append(ticks, chart.Tick{Value: x, Label: data.labels[i]})
	}

	width, height := data.calculateChartDimensions(60)
	graph := chart.Chart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: customizePaddingXBottom(data.generateBarValues()),
			},
			FillColor:   drawing.ColorWhite,
			StrokeWidth: 1,
			StrokeColor: drawing.ColorFromHex("efefef"),
		},
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Style: chart.Style{TextRotationDegrees: 88},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  data.getNameYAxis(),
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(maxY)},
			Ticks: generateGrid(maxY),
		},
		Series: []chart.Series{series},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	maxY := findMaxValue(data.getYValues())
	if len(barValues) == 0 || maxY <= 0 {
		return nil, ErrNoData
	}

	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)
	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		FontSize:    160,
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: niceMax(maxY),
		},
		Style: chart.Style{
			StrokeWidth: 2, // Толщина линии
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		Ticks: generateGrid(maxY),
		GridMinorStyle: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			DotWidth:    1,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0}, // Пунктирная линия
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}
	buffer := bytes.NewBuffer([]byte{})

	// Отрисовываем график в формате PNG
	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}

	return buffer.Bytes(), nil
}

// chartDimensions ширина растет с числом столбцов, высота 9:16 от ширины
func chartDimensions(count int, minBarWidth float64) (width, height int) {
	if count <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if count < 2 {
		x = 10.0
	} else if count < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100        // отступ для оси Y и подписей
		spacingRatio = 0.2        // соотношение отступа между столбцами к ширине столбца
		aspectRatio  = 9.0 / 16.0 // соотношение сторон по умолчанию
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(count) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

// niceMax верхняя граница оси, кратная шагу сетки
func niceMax(maxValue float64) float64 {
	step := calculateGridStep(maxValue)
	if step == 0 {
		return maxValue
	}
	return math.Ceil(maxValue/step) * step
}

func generateGrid(maxValue float64) []chart.Tick {
	step := calculateGridStep(maxValue)
	if step == 0 {
		return nil
	}
	top := niceMax(maxValue)
	ticks := make([]chart.Tick, 0)
	for i := 0; float64(i)*step <= top+step/2; i++ {
		value := float64(i) * step
		ticks = append(ticks, chart.Tick{Value: value, Label: fmt.Sprintf("%.0f", value)})
	}
	return ticks
}

func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}

	// Находим порядок величины максимального значения
	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	// Нормализуем значение к диапазону [1, 10)
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	// счетчики целые, дробный шаг сетки не нужен
	if finalStep < 1 {
		return 1
	}
	// Округляем большие шаги до "красивых" чисел
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return int(count * 8)
}
