package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	OutputPath      string `mapstructure:"output_path" yaml:"output_path"`
	ChartsDir       string `mapstructure:"charts_dir" yaml:"charts_dir"`
	ReportPath      string `mapstructure:"report_path" yaml:"report_path"`
	Delimiter       string `mapstructure:"delimiter" yaml:"delimiter"`
	AnomalyMethod   string `mapstructure:"anomaly_method" yaml:"anomaly_method"`
	CompareVariable string `mapstructure:"compare_variable" yaml:"compare_variable"`
	CompareYear     int    `mapstructure:"compare_year" yaml:"compare_year"`
	CompareTopN     int    `mapstructure:"compare_top_n" yaml:"compare_top_n"`
	GenerateSeed    int64  `mapstructure:"generate_seed" yaml:"generate_seed"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.ecodata/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".ecodata")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("ECODATA")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("output_path", "dados_ambientais_limpos.csv")
	v.SetDefault("charts_dir", "graficos")
	v.SetDefault("report_path", "relatorio.md")
	v.SetDefault("delimiter", ",")
	v.SetDefault("anomaly_method", "iqr")
	v.SetDefault("compare_variable", "consumo_energia_mwh")
	v.SetDefault("compare_year", 0)
	v.SetDefault("compare_top_n", 10)
	v.SetDefault("generate_seed", 42)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".ecodata")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
