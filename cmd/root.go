package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/ecotrilha/ecodata-cli/internal/config"
)

var (
	// Global flags
	cfgFile       string
	flagDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "ecodata",
	Short: "ecodata: análise de dados ambientais de cidades brasileiras",
	Long: `ecodata é uma ferramenta de linha de comando que limpa, organiza e
analisa dados ambientais anuais de cidades (energia, ar, resíduos, água,
CO₂, temperatura e população), derivando métricas per capita, detectando
anomalias e tendências e gerando gráficos e um relatório de insights.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Erro:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo de configuração (padrão: ~/.ecodata/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "delimitador do CSV: ',' | ';' | 'tab'")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so data commands still run.
		fmt.Fprintf(os.Stderr, "⚠ Aviso: falha ao carregar configuração: %v\n", err)
		cfg = &cfgpkg.Global{}
		return
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("delimiter") && flagDelimiter != "" {
		cfg.Delimiter = flagDelimiter
	}
}

// delimiterRune resolves the configured delimiter to a rune.
func delimiterRune() (rune, error) {
	s := ","
	if cfg != nil && cfg.Delimiter != "" {
		s = cfg.Delimiter
	}
	switch s {
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("delimitador não suportado: %q", s)
	}
}
