package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/ecotrilha/ecodata-cli/internal/config"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Mostra ou altera a configuração padrão",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Mostra a configuração efetiva",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("Nenhuma configuração carregada")
			return nil
		}
		fmt.Printf("output_path: %s\n", cfg.OutputPath)
		fmt.Printf("charts_dir: %s\n", cfg.ChartsDir)
		fmt.Printf("report_path: %s\n", cfg.ReportPath)
		fmt.Printf("delimiter: %s\n", cfg.Delimiter)
		fmt.Printf("anomaly_method: %s\n", cfg.AnomalyMethod)
		fmt.Printf("compare_variable: %s\n", cfg.CompareVariable)
		fmt.Printf("compare_year: %d\n", cfg.CompareYear)
		fmt.Printf("compare_top_n: %d\n", cfg.CompareTopN)
		fmt.Printf("generate_seed: %d\n", cfg.GenerateSeed)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <chave> <valor>",
	Short: "Altera um valor de configuração e salva em disco",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "output_path":
			cfg.OutputPath = val
		case "charts_dir":
			cfg.ChartsDir = val
		case "report_path":
			cfg.ReportPath = val
		case "delimiter":
			switch val {
			case ",", ";", "tab":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("delimitador inválido: %q (use ',', ';' ou 'tab')", val)
			}
		case "anomaly_method":
			switch val {
			case stats.MethodIQR, stats.MethodZScore:
				cfg.AnomalyMethod = val
			default:
				return fmt.Errorf("método inválido: %q (use iqr ou zscore)", val)
			}
		case "compare_variable":
			cfg.CompareVariable = val
		case "compare_year":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("compare_year inválido: %v", val)
			}
			cfg.CompareYear = i
		case "compare_top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("compare_top_n inválido: %v", val)
			}
			cfg.CompareTopN = i
		case "generate_seed":
			s, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("generate_seed inválido: %v", val)
			}
			cfg.GenerateSeed = s
		default:
			return fmt.Errorf("chave desconhecida: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Configuração salva")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
