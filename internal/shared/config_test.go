package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Output.Prefix != "OCR_" {
		t.Errorf("expected default prefix OCR_, got %q", config.Output.Prefix)
	}
	if config.Run.Jobs != 1 {
		t.Errorf("expected default jobs 1, got %d", config.Run.Jobs)
	}
	if config.Run.Verbose {
		t.Error("expected verbose off by default")
	}
	if config.Engine.Command != "ocrmypdf" {
		t.Errorf("expected default engine ocrmypdf, got %q", config.Engine.Command)
	}
	if config.History.Path != "" {
		t.Errorf("expected history disabled by default, got %q", config.History.Path)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a full file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[output]
prefix = "SCAN_"
overwrite = true

[run]
jobs = 4
verbose = true
rate = 2.5

[engine]
command = "tesseract"
args = ["--oem", "1"]

[history]
path = "runs.db"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Output.Prefix != "SCAN_" || !config.Output.Overwrite {
			t.Errorf("unexpected output section %+v", config.Output)
		}
		if config.Run.Jobs != 4 || !config.Run.Verbose || config.Run.Rate != 2.5 {
			t.Errorf("unexpected run section %+v", config.Run)
		}
		if config.Engine.Command != "tesseract" || len(config.Engine.Args) != 2 {
			t.Errorf("unexpected engine section %+v", config.Engine)
		}
		if config.History.Path != "runs.db" {
			t.Errorf("unexpected history section %+v", config.History)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[output\nprefix = "), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes a loadable default file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config does not load: %v", err)
		}
		if config.Output.Prefix != "OCR_" {
			t.Errorf("expected default prefix, got %q", config.Output.Prefix)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected an error when the file exists")
		}
	})
}
