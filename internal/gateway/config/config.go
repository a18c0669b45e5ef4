package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"docpulse/internal/metrics"
	"docpulse/internal/scan"
)

type Config struct {
	Port     string
	Env      string
	ScanRoot string
	Scanner  ScannerConfig
	Report   ReportConfig
}

// ScannerConfig is the immutable discovery and scoring policy loaded once
// per process and passed into each parse call explicitly.
type ScannerConfig struct {
	IgnoreDirs          []string `yaml:"ignore_dirs"`
	Indicators          []string `yaml:"indicators"`
	MaxDepth            int      `yaml:"max_depth"`
	Workers             int      `yaml:"workers"`
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	ReadmeExcerptLimit  int      `yaml:"readme_excerpt_limit"`
}

type ReportConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8082", "server port")
	root := flag.String("root", "", "scan root directory")
	settings := flag.String("config", "", "path to settings.yaml")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	scanRoot := strings.TrimSpace(*root)
	if scanRoot == "" {
		scanRoot = strings.TrimSpace(os.Getenv("DOCPULSE_ROOT"))
	}
	if scanRoot == "" {
		scanRoot = "."
	}

	scanner, err := loadScannerConfig(*settings)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     *port,
		Env:      env,
		ScanRoot: scanRoot,
		Scanner:  scanner,
		Report:   loadReportConfig(),
	}, nil
}

func defaultScannerConfig() ScannerConfig {
	opts := scan.DefaultOptions()
	return ScannerConfig{
		IgnoreDirs:          opts.IgnoreDirs,
		Indicators:          opts.Indicators,
		Workers:             4,
		SimilarityThreshold: metrics.DefaultThreshold,
		ReadmeExcerptLimit:  opts.ReadmeExcerptLimit,
	}
}

// loadScannerConfig merges the yaml settings file over defaults so partial
// files stay valid. A missing file yields the defaults; a malformed file is
// a configuration error.
func loadScannerConfig(path string) (ScannerConfig, error) {
	cfg := defaultScannerConfig()

	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv("DOCPULSE_CONFIG"))
	}
	if path == "" {
		path = "config/settings.yaml"
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}
	var file ScannerConfig
	if err := yaml.Unmarshal(b, &file); err != nil {
		return ScannerConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.IgnoreDirs) > 0 {
		cfg.IgnoreDirs = file.IgnoreDirs
	}
	if len(file.Indicators) > 0 {
		cfg.Indicators = file.Indicators
	}
	if file.MaxDepth > 0 {
		cfg.MaxDepth = file.MaxDepth
	}
	if file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	if file.SimilarityThreshold > 0 {
		cfg.SimilarityThreshold = file.SimilarityThreshold
	}
	if file.ReadmeExcerptLimit > 0 {
		cfg.ReadmeExcerptLimit = file.ReadmeExcerptLimit
	}
	return cfg, nil
}

// ScanOptions converts the scanner section into per-call discovery options.
func (c ScannerConfig) ScanOptions() scan.Options {
	return scan.Options{
		IgnoreDirs:         c.IgnoreDirs,
		Indicators:         c.Indicators,
		MaxDepth:           c.MaxDepth,
		ReadmeExcerptLimit: c.ReadmeExcerptLimit,
	}
}

func loadReportConfig() ReportConfig {
	endpoint := strings.TrimSpace(os.Getenv("REPORT_S3_ENDPOINT"))
	return ReportConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_S3_REGION")), "us-east-1"),
		AccessKey: strings.TrimSpace(os.Getenv("REPORT_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("REPORT_S3_SECRET_KEY")),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_S3_BUCKET")), "docpulse-reports"),
		UseSSL:    parseBool(os.Getenv("REPORT_S3_USE_SSL")),
	}
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
