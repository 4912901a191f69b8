// Package report is the reporting collaborator: it renders a markdown run
// report and PNG charts from the analysis results. Its failures are meant to
// be logged by the caller, never to abort the pipeline.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrilha/ecodata-cli/internal/cleaning"
	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
	"github.com/ecotrilha/ecodata-cli/internal/utils"
)

// Summary aggregates everything one pipeline run produced.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	Input      string
	Validation *dataset.Validation
	Cleaning   *cleaning.Report

	Stats           []stats.Description
	Anomalies       map[string][]stats.Anomaly
	AnomalyMethod   string
	Trends          []stats.TrendRecord
	Correlations    *stats.Matrix
	Ranking         []stats.CityValue
	RankingVariable string
	RankingYear     int
	Insights        []string
}

// NewSummary stamps a fresh run identity.
func NewSummary(input string) *Summary {
	return &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Input:     input,
	}
}

// Write renders the report and writes it atomically.
func (s *Summary) Write(path string) error {
	return utils.SafeWriteFile(path, []byte(s.Markdown()))
}

// Markdown renders a compact run report.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[RELATÓRIO DE ANÁLISE AMBIENTAL]\n")
	b.WriteString(fmt.Sprintf("Execução: %s\n", s.RunID))
	b.WriteString(fmt.Sprintf("Início: %s\n", s.StartedAt.Format(time.RFC3339)))
	if s.Input != "" {
		b.WriteString(fmt.Sprintf("Entrada: %s\n", s.Input))
	}

	if s.Validation != nil {
		v := s.Validation
		b.WriteString("\n[VALIDAÇÃO]\n")
		b.WriteString(fmt.Sprintf("Registros: %d | Colunas: %d | Duplicatas: %d | Nulos: %d\n",
			v.Rows, len(v.Columns), v.Duplicates, v.TotalNulls()))
		for _, col := range v.Columns {
			if n := v.NullCounts[col]; n > 0 {
				b.WriteString(fmt.Sprintf("- %s: %d nulos (%.2f%%)\n",
					col, n, float64(n)*100/float64(v.Rows)))
			}
		}
	}

	if s.Cleaning != nil {
		c := s.Cleaning
		b.WriteString("\n[LIMPEZA]\n")
		b.WriteString(fmt.Sprintf("Duplicatas removidas: %d\n", c.DuplicatesRemoved))
		for _, col := range sortedKeys(c.NullsFilled) {
			b.WriteString(fmt.Sprintf("- %s: %d nulos preenchidos\n", col, c.NullsFilled[col]))
		}
		for _, col := range sortedKeys(c.OutliersTreated) {
			b.WriteString(fmt.Sprintf("- %s: %d outliers tratados\n", col, c.OutliersTreated[col]))
		}
	}

	if len(s.Stats) > 0 {
		b.WriteString("\n[ESTATÍSTICAS DESCRITIVAS]\n")
		for _, d := range s.Stats {
			b.WriteString(fmt.Sprintf(
				"- %s: n=%d, média %.4g, desvio %.4g, min %.4g, mediana %.4g, max %.4g\n",
				d.Column, d.Count, d.Mean, d.Std, d.Min, d.Median, d.Max))
		}
	}

	if len(s.Anomalies) > 0 {
		b.WriteString(fmt.Sprintf("\n[ANOMALIAS — método %s]\n", strings.ToUpper(s.AnomalyMethod)))
		for _, col := range sortedAnomalyKeys(s.Anomalies) {
			rows := s.Anomalies[col]
			b.WriteString(fmt.Sprintf("- %s: %d\n", col, len(rows)))
			for _, a := range rows {
				b.WriteString(fmt.Sprintf("  • %s %d: %.4g\n", a.City, a.Year, a.Value))
			}
		}
	}

	if len(s.Trends) > 0 {
		b.WriteString("\n[TENDÊNCIAS]\n")
		for _, tr := range s.Trends {
			annual := "indefinida"
			if !math.IsNaN(tr.AnnualChange) {
				annual = fmt.Sprintf("%.2f%% ao ano", tr.AnnualChange)
			}
			b.WriteString(fmt.Sprintf("- %s / %s: %s (%s)\n", tr.City, tr.Variable, tr.Trend, annual))
		}
	}

	if s.Correlations != nil {
		pairs := s.Correlations.StrongPairs(stats.StrongCorrelation)
		if len(pairs) > 0 {
			b.WriteString("\n[CORRELAÇÕES FORTES]\n")
			for _, p := range pairs {
				b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
			}
		}
	}

	if len(s.Ranking) > 0 {
		b.WriteString(fmt.Sprintf("\n[COMPARAÇÃO — %s", s.RankingVariable))
		if s.RankingYear > 0 {
			b.WriteString(fmt.Sprintf(", %d", s.RankingYear))
		}
		b.WriteString("]\n")
		for i, cv := range s.Ranking {
			b.WriteString(fmt.Sprintf("%2d. %s: %.4g\n", i+1, cv.City, cv.Value))
		}
	}

	if len(s.Insights) > 0 {
		b.WriteString("\n[INSIGHTS]\n")
		for _, in := range s.Insights {
			b.WriteString(in)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnomalyKeys(m map[string][]stats.Anomaly) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
