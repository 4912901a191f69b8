package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecotrilha/ecodata-cli/internal/cleaning"
	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
)

var (
	cmpVariable string
	cmpYear     int
	cmpTopN     int
)

var compareCmd = &cobra.Command{
	Use:   "compare <entrada.csv>",
	Short: "Compara cidades em relação a uma variável",
	Long: `Executa limpeza e derivação de métricas e imprime o ranking das
cidades para a variável escolhida. Com --year, compara os valores daquele
ano; sem --year, compara a média de todos os anos.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim, err := delimiterRune()
		if err != nil {
			return err
		}
		variable := firstNonEmpty(cmpVariable, cfg.CompareVariable)
		year := cmpYear
		if year == 0 {
			year = cfg.CompareYear
		}
		topN := cmpTopN
		if topN == 0 {
			topN = cfg.CompareTopN
		}

		table, err := dataset.Load(args[0], delim)
		if err != nil {
			return err
		}
		cleaning.Clean(table)
		enriched := cleaning.Derive(table)

		ranking, err := stats.Compare(enriched, variable, year, topN)
		if err != nil {
			return err
		}
		if year > 0 {
			fmt.Printf("Ranking de %s em %d:\n", variable, year)
		} else {
			fmt.Printf("Ranking de %s (média de todos os anos):\n", variable)
		}
		for i, cv := range ranking {
			fmt.Printf("%2d. %s: %.4g\n", i+1, cv.City, cv.Value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&cmpVariable, "variable", "", "variável da comparação")
	compareCmd.Flags().IntVar(&cmpYear, "year", 0, "ano da comparação (0 = média de todos os anos)")
	compareCmd.Flags().IntVar(&cmpTopN, "top", 0, "quantidade de cidades no ranking")
}
