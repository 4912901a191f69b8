package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate <entrada.csv>",
	Short: "Valida a estrutura e a qualidade dos dados sem modificá-los",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim, err := delimiterRune()
		if err != nil {
			return err
		}
		table, err := dataset.Load(args[0], delim)
		if err != nil {
			return err
		}

		v := dataset.Validate(table)
		fmt.Println("=== VALIDAÇÃO DOS DADOS ===")
		fmt.Printf("Total de registros: %d\n", v.Rows)
		fmt.Printf("Colunas: %d\n", len(v.Columns))
		fmt.Printf("Registros duplicados: %d\n", v.Duplicates)
		fmt.Println("\nTipos de dados:")
		for _, col := range v.Columns {
			fmt.Printf("  - %s: %s\n", col, v.DTypes[col])
		}
		if v.TotalNulls() == 0 {
			fmt.Println("\nNenhum valor nulo encontrado")
			return nil
		}
		fmt.Println("\nValores nulos por coluna:")
		for _, col := range v.Columns {
			if n := v.NullCounts[col]; n > 0 {
				fmt.Printf("  - %s: %d (%.2f%%)\n", col, n, float64(n)*100/float64(v.Rows))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
