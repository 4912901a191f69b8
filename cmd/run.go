package cmd

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecotrilha/ecodata-cli/internal/cleaning"
	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/report"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
)

var (
	runOutputPath string
	runChartsDir  string
	runReportPath string
	runMethod     string
	runCompareVar string
	runYear       int
	runNoCharts   bool
)

var runCmd = &cobra.Command{
	Use:   "run <entrada.csv>",
	Short: "Executa o pipeline completo de limpeza e análise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		delim, err := delimiterRune()
		if err != nil {
			return err
		}
		outputPath := firstNonEmpty(runOutputPath, cfg.OutputPath)
		chartsDir := firstNonEmpty(runChartsDir, cfg.ChartsDir)
		reportPath := firstNonEmpty(runReportPath, cfg.ReportPath)
		method := firstNonEmpty(runMethod, cfg.AnomalyMethod)
		compareVar := firstNonEmpty(runCompareVar, cfg.CompareVariable)
		year := runYear
		if year == 0 {
			year = cfg.CompareYear
		}

		banner("ANÁLISE DE DADOS AMBIENTAIS PARA SOLUÇÕES SUSTENTÁVEIS NAS CIDADES")
		summary := report.NewSummary(input)

		// Coleta
		banner("ETAPA 1: COLETA DE DADOS")
		table, err := dataset.Load(input, delim)
		if err != nil {
			return err
		}
		years := table.Years()
		fmt.Printf("✓ Dados carregados: %d registros de %d cidades\n", table.Len(), len(table.Cities()))
		if len(years) > 0 {
			fmt.Printf("  Período: %d - %d\n", years[0], years[len(years)-1])
		}

		// Validação
		banner("ETAPA 2: VALIDAÇÃO DOS DADOS")
		validation := dataset.Validate(table)
		printValidation(validation)
		summary.Validation = validation

		// Limpeza e métricas derivadas
		banner("ETAPA 3: PREPARAÇÃO E LIMPEZA DE DADOS")
		cleanRep := cleaning.Clean(table)
		printCleaning(cleanRep)
		enriched := cleaning.Derive(table)
		fmt.Printf("✓ Limpeza concluída: %d registros válidos, %d métricas derivadas\n",
			enriched.Len(), len(dataset.DerivedHeader()))
		summary.Cleaning = cleanRep

		// Análise exploratória
		banner("ETAPA 4: ANÁLISE EXPLORATÓRIA DE DADOS")

		fmt.Println("\n--- 4.1 Estatísticas Descritivas ---")
		summary.Stats = stats.Describe(enriched)
		for _, d := range summary.Stats {
			fmt.Printf("  %s: média %.4g, desvio %.4g, mediana %.4g\n", d.Column, d.Mean, d.Std, d.Median)
		}

		fmt.Printf("\n--- 4.2 Identificação de Anomalias (método: %s) ---\n", strings.ToUpper(method))
		anomalies, err := stats.Detect(enriched, method)
		if err != nil {
			return err
		}
		summary.Anomalies = anomalies
		summary.AnomalyMethod = method
		if len(anomalies) == 0 {
			fmt.Println("  Nenhuma anomalia encontrada")
		}
		for _, col := range sortedColumns(anomalies) {
			fmt.Printf("  %s: %d anomalias\n", col, len(anomalies[col]))
		}

		fmt.Println("\n--- 4.3 Análise de Tendências Temporais ---")
		trends := stats.Trends(enriched)
		summary.Trends = trends
		printTrendDigest(trends)

		fmt.Println("\n--- 4.4 Análise de Correlações ---")
		corr := stats.Correlations(enriched)
		summary.Correlations = corr
		for _, p := range corr.StrongPairs(stats.StrongCorrelation) {
			fmt.Printf("  %s ~ %s: r=%.3f\n", p.A, p.B, p.R)
		}

		fmt.Println("\n--- 4.5 Comparação entre Cidades ---")
		ranking, err := stats.Compare(enriched, compareVar, year, cfg.CompareTopN)
		if err != nil {
			return err
		}
		summary.Ranking = ranking
		summary.RankingVariable = compareVar
		summary.RankingYear = year
		for i, cv := range ranking {
			fmt.Printf("  %2d. %s: %.4g\n", i+1, cv.City, cv.Value)
		}

		// Insights
		banner("ETAPA 5: GERAÇÃO DE INSIGHTS")
		insights := stats.Insights(enriched, trends)
		summary.Insights = insights
		for _, in := range insights {
			fmt.Println(in)
		}

		// Visualização: falhas aqui não interrompem o pipeline.
		if !runNoCharts {
			banner("ETAPA 6: VISUALIZAÇÃO DOS DADOS")
			files, err := report.Charts(enriched, corr, chartsDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Aviso: falha ao gerar gráficos: %v\n", err)
				fmt.Fprintln(os.Stderr, "  Continuando com a análise...")
			}
			for _, f := range files {
				fmt.Printf("✓ Gráfico salvo: %s\n", f)
			}
		}

		// Comunicação dos resultados
		banner("ETAPA 7: COMUNICAÇÃO DOS RESULTADOS")
		if err := dataset.WriteEnriched(enriched, outputPath, delim); err != nil {
			return fmt.Errorf("salvar dados limpos: %w", err)
		}
		fmt.Printf("✓ Dados limpos salvos em %q\n", outputPath)
		if err := summary.Write(reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Aviso: falha ao salvar relatório: %v\n", err)
		} else {
			fmt.Printf("✓ Relatório salvo em %q\n", reportPath)
		}

		fmt.Println("\n✓ ANÁLISE CONCLUÍDA COM SUCESSO!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "caminho do CSV limpo de saída")
	runCmd.Flags().StringVar(&runChartsDir, "charts-dir", "", "diretório para os gráficos PNG")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "caminho do relatório markdown")
	runCmd.Flags().StringVar(&runMethod, "method", "", "método de detecção de anomalias: iqr | zscore")
	runCmd.Flags().StringVar(&runCompareVar, "compare-var", "", "variável da comparação entre cidades")
	runCmd.Flags().IntVar(&runYear, "year", 0, "ano da comparação (0 = média de todos os anos)")
	runCmd.Flags().BoolVar(&runNoCharts, "no-charts", false, "não gerar gráficos")
}

func banner(title string) {
	line := strings.Repeat("=", 80)
	fmt.Printf("\n%s\n%s\n%s\n", line, title, line)
}

func printValidation(v *dataset.Validation) {
	fmt.Printf("Total de registros: %d\n", v.Rows)
	fmt.Printf("Registros duplicados: %d\n", v.Duplicates)
	if v.TotalNulls() == 0 {
		fmt.Println("Nenhum valor nulo encontrado")
		return
	}
	fmt.Println("Valores nulos por coluna:")
	for _, col := range v.Columns {
		if n := v.NullCounts[col]; n > 0 {
			fmt.Printf("  - %s: %d (%.2f%%)\n", col, n, float64(n)*100/float64(v.Rows))
		}
	}
}

func printCleaning(rep *cleaning.Report) {
	if rep.DuplicatesRemoved > 0 {
		fmt.Printf("✓ Removidas %d duplicatas\n", rep.DuplicatesRemoved)
	}
	for _, col := range sortedCounts(rep.NullsFilled) {
		fmt.Printf("✓ Preenchidos %d valores nulos em %q\n", rep.NullsFilled[col], col)
	}
	for _, col := range sortedCounts(rep.OutliersTreated) {
		fmt.Printf("✓ Tratados %d outliers em %q\n", rep.OutliersTreated[col], col)
	}
}

// sortedColumns keeps the console listing order stable across runs.
func sortedColumns(m map[string][]stats.Anomaly) []string {
	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func sortedCounts(m map[string]int) []string {
	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// printTrendDigest prints one line per (city, variable) trend, skipping
// undefined annual changes.
func printTrendDigest(trends []stats.TrendRecord) {
	for _, tr := range trends {
		if math.IsNaN(tr.AnnualChange) {
			fmt.Printf("  %s / %s: %s (variação indefinida)\n", tr.City, tr.Variable, tr.Trend)
			continue
		}
		fmt.Printf("  %s / %s: %s (%.2f%% ao ano)\n", tr.City, tr.Variable, tr.Trend, tr.AnnualChange)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
