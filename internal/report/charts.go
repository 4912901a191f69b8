package report

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
	"github.com/ecotrilha/ecodata-cli/internal/utils"
)

// chartCities limits line charts to the largest cities so the legend stays
// readable.
const chartCities = 10

// Charts renders the PNG chart set into dir and returns the files written.
// Any error is reported to the caller, which logs it and continues the run.
func Charts(t *dataset.EnrichedTable, corr *stats.Matrix, dir string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("criar diretório de gráficos: %w", err)
	}

	topCities, err := stats.Compare(t, dataset.ColPopulation, 0, chartCities)
	if err != nil {
		return nil, err
	}
	cities := make([]string, 0, len(topCities))
	for _, cv := range topCities {
		cities = append(cities, cv.City)
	}

	var written []string
	evolutions := []struct {
		variable string
		title    string
	}{
		{dataset.ColEnergy, "Evolução do Consumo de Energia (MWh)"},
		{dataset.ColAirQuality, "Evolução da Qualidade do Ar (índice)"},
		{dataset.ColCO2, "Evolução das Emissões de CO2 (ton)"},
		{dataset.ColTemperature, "Evolução da Temperatura Média (°C)"},
	}
	for _, ev := range evolutions {
		path := filepath.Join(dir, "evolucao_"+ev.variable+".png")
		if err := evolutionChart(t, ev.variable, ev.title, cities, path); err != nil {
			return written, fmt.Errorf("gráfico %s: %w", ev.variable, err)
		}
		written = append(written, path)
	}

	barPath := filepath.Join(dir, "comparacao_"+dataset.ColEnergy+".png")
	if err := comparisonChart(t, dataset.ColEnergy, "Top 10 — Consumo Médio de Energia", barPath); err != nil {
		return written, fmt.Errorf("gráfico de comparação: %w", err)
	}
	written = append(written, barPath)

	if corr != nil {
		heatPath := filepath.Join(dir, "matriz_correlacao.png")
		if err := correlationChart(corr, heatPath); err != nil {
			return written, fmt.Errorf("matriz de correlação: %w", err)
		}
		written = append(written, heatPath)
	}
	return written, nil
}

// evolutionChart draws one line per city across the years.
func evolutionChart(t *dataset.EnrichedTable, variable, title string, cities []string, path string) error {
	m, ok := dataset.MetricByName(variable)
	if !ok {
		return fmt.Errorf("variável desconhecida: %q", variable)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Ano"
	p.Y.Label.Text = variable
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, city := range cities {
		type point struct {
			year int
			val  float64
		}
		var pts []point
		for j := range t.Records {
			r := &t.Records[j]
			if r.City != city {
				continue
			}
			if v := m.Get(r); !math.IsNaN(v) {
				pts = append(pts, point{r.Year, v})
			}
		}
		if len(pts) == 0 {
			continue
		}
		sort.Slice(pts, func(a, b int) bool { return pts[a].year < pts[b].year })
		xys := make(plotter.XYs, len(pts))
		for k, pt := range pts {
			xys[k].X = float64(pt.year)
			xys[k].Y = pt.val
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(city, line)
	}
	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}

// comparisonChart draws the top-10 ranking of a variable as a bar chart.
func comparisonChart(t *dataset.EnrichedTable, variable, title, path string) error {
	ranking, err := stats.Compare(t, variable, 0, stats.CompareTopN)
	if err != nil {
		return err
	}
	if len(ranking) == 0 {
		return nil
	}

	values := make(plotter.Values, len(ranking))
	names := make([]string, len(ranking))
	for i, cv := range ranking {
		values[i] = cv.Value
		names[i] = cv.City
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = variable
	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -1
	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}

// corrGrid adapts a correlation matrix to the plotter heat-map interface.
type corrGrid struct{ m *stats.Matrix }

func (g corrGrid) Dims() (int, int)   { n := len(g.m.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

func correlationChart(corr *stats.Matrix, path string) error {
	p := plot.New()
	p.Title.Text = "Matriz de Correlação"
	heat := plotter.NewHeatMap(corrGrid{m: corr}, palette.Heat(12, 1))
	heat.Min, heat.Max = -1, 1
	p.Add(heat)

	ticks := make([]plot.Tick, len(corr.Columns))
	for i, name := range corr.Columns {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = -1
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return p.Save(9*vg.Inch, 8*vg.Inch, path)
}
