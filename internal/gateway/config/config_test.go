package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadScannerConfig_Defaults(t *testing.T) {
	cfg, err := loadScannerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must fall back to defaults: %v", err)
	}
	if cfg.Workers != 4 {
		t.Fatalf("workers=%d", cfg.Workers)
	}
	if cfg.SimilarityThreshold != 0.6 {
		t.Fatalf("threshold=%v", cfg.SimilarityThreshold)
	}
	if len(cfg.IgnoreDirs) == 0 || len(cfg.Indicators) == 0 {
		t.Fatalf("default lists empty: %+v", cfg)
	}
}

func TestLoadScannerConfig_PartialFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	yaml := "workers: 8\nsimilarity_threshold: 0.8\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := loadScannerConfig(path)
	if err != nil {
		t.Fatalf("loadScannerConfig: %v", err)
	}
	if cfg.Workers != 8 {
		t.Fatalf("workers=%d want 8", cfg.Workers)
	}
	if cfg.SimilarityThreshold != 0.8 {
		t.Fatalf("threshold=%v want 0.8", cfg.SimilarityThreshold)
	}
	// Untouched keys keep their defaults.
	if len(cfg.IgnoreDirs) == 0 {
		t.Fatalf("ignore dirs lost in merge")
	}
}

func TestLoadScannerConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("workers: [not an int\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadScannerConfig(path); err == nil {
		t.Fatalf("malformed yaml accepted")
	}
}

func TestScanOptions(t *testing.T) {
	cfg := ScannerConfig{
		IgnoreDirs:         []string{".git"},
		Indicators:         []string{"go.mod"},
		MaxDepth:           3,
		ReadmeExcerptLimit: 500,
	}
	opts := cfg.ScanOptions()
	if len(opts.IgnoreDirs) != 1 || len(opts.Indicators) != 1 {
		t.Fatalf("lists not carried: %+v", opts)
	}
	if opts.MaxDepth != 3 || opts.ReadmeExcerptLimit != 500 {
		t.Fatalf("scalars not carried: %+v", opts)
	}
}

func TestLoadReportConfig(t *testing.T) {
	t.Setenv("REPORT_S3_ENDPOINT", "")
	if cfg := loadReportConfig(); cfg.Enabled {
		t.Fatalf("enabled without endpoint")
	}

	t.Setenv("REPORT_S3_ENDPOINT", "minio.local:9000")
	t.Setenv("REPORT_S3_BUCKET", "")
	t.Setenv("REPORT_S3_USE_SSL", "true")
	cfg := loadReportConfig()
	if !cfg.Enabled || !cfg.UseSSL {
		t.Fatalf("env not honored: %+v", cfg)
	}
	if cfg.Bucket != "docpulse-reports" {
		t.Fatalf("bucket default: %q", cfg.Bucket)
	}
	if cfg.Region != "us-east-1" {
		t.Fatalf("region default: %q", cfg.Region)
	}
}
